package main

import (
	"context"
	"database/sql"
	"io"
	"log/slog"
	"path/filepath"
	"slices"
	"testing"

	"github.com/calepayson/marko-polo/pkg/markov"
)

// setupTestDB opens a fresh SQLite database in a temporary directory.
func setupTestDB(t *testing.T) (*sql.DB, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	db, err := openDB(context.Background(), path)
	if err != nil {
		t.Fatalf("openDB() failed: %v", err)
	}
	t.Cleanup(func() {
		_ = db.Close()
	})
	return db, path
}

func seedCorpus(t *testing.T, db *sql.DB, lines ...any) {
	t.Helper()
	if _, err := db.Exec(`CREATE TABLE corpus (line TEXT);`); err != nil {
		t.Fatalf("failed to create corpus table: %v", err)
	}
	for _, line := range lines {
		if _, err := db.Exec(`INSERT INTO corpus (line) VALUES (?);`, line); err != nil {
			t.Fatalf("failed to insert corpus line: %v", err)
		}
	}
}

func TestLoadCorpusLines(t *testing.T) {
	db, _ := setupTestDB(t)
	seedCorpus(t, db, "one fish two fish.", nil, "- skipped line", "red fish!")

	lines, err := loadCorpusLines(context.Background(), db, DefaultConfig().Corpus.Query)
	if err != nil {
		t.Fatalf("loadCorpusLines() failed: %v", err)
	}
	want := []string{"one fish two fish.", "", "- skipped line", "red fish!"}
	if !slices.Equal(lines, want) {
		t.Errorf("loadCorpusLines() = %q, want %q", lines, want)
	}
}

func TestLoadCorpusLinesSplitsMultilineRows(t *testing.T) {
	db, _ := setupTestDB(t)
	seedCorpus(t, db, "first part\n\nsecond part\n", "third\r\nfourth", "")

	lines, err := loadCorpusLines(context.Background(), db, DefaultConfig().Corpus.Query)
	if err != nil {
		t.Fatalf("loadCorpusLines() failed: %v", err)
	}
	want := []string{"first part", "", "second part", "third\r", "fourth", ""}
	if !slices.Equal(lines, want) {
		t.Errorf("loadCorpusLines() = %q, want %q", lines, want)
	}

	m, err := markov.BuildModelFromLines(context.Background(), slices.Values(lines))
	if err != nil {
		t.Fatalf("BuildModelFromLines() failed: %v", err)
	}
	// The blank line inside the first row resets the context before "second".
	if _, ok := m.Lookup(m.NewContext().Push("first").Push("part")); ok {
		t.Error("[_, first, part] should not continue across the blank line")
	}
	if table, ok := m.Lookup(m.NewContext()); !ok || table.Count("second") != 1 {
		t.Error("expected the blank line inside a row to start a new unit at \"second\"")
	}
}

func TestLoadCorpusLinesBadQuery(t *testing.T) {
	db, _ := setupTestDB(t)

	if _, err := loadCorpusLines(context.Background(), db, "SELECT line FROM missing_table"); err == nil {
		t.Error("loadCorpusLines() on a missing table returned no error")
	}
}

func TestRecordQuotes(t *testing.T) {
	db, _ := setupTestDB(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	// Twice, to confirm the schema setup is idempotent.
	for range 2 {
		if err := setupQuoteSchema(db); err != nil {
			t.Fatalf("setupQuoteSchema() failed: %v", err)
		}
	}

	const seed = uint64(1) << 63
	quotes := []string{"first quote.", "second quote!"}
	if err := recordQuotes(context.Background(), db, logger, seed, quotes); err != nil {
		t.Fatalf("recordQuotes() failed: %v", err)
	}

	rows, err := db.Query(`SELECT quote_text, seed FROM markov_quotes ORDER BY quote_id;`)
	if err != nil {
		t.Fatalf("failed to query quotes: %v", err)
	}
	defer func(rows *sql.Rows) {
		_ = rows.Close()
	}(rows)

	var got []string
	for rows.Next() {
		var text string
		var stored int64
		if err = rows.Scan(&text, &stored); err != nil {
			t.Fatalf("failed to scan quote: %v", err)
		}
		if uint64(stored) != seed {
			t.Errorf("stored seed = %d, want %d", uint64(stored), seed)
		}
		got = append(got, text)
	}
	if err = rows.Err(); err != nil {
		t.Fatalf("rows error: %v", err)
	}
	if !slices.Equal(got, quotes) {
		t.Errorf("recorded quotes = %q, want %q", got, quotes)
	}
}
