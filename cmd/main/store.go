package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"
	"time"
)

// checkDB caps db at one connection and verifies the database can be reached.
func checkDB(ctx context.Context, db *sql.DB) (*sql.DB, error) {
	db.SetMaxOpenConns(1)
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("could not reach database: %w", err)
	}
	return db, nil
}

// setupQuoteSchema creates the table generated quotes are recorded in. It is
// idempotent and safe to call on an already-initialized database.
func setupQuoteSchema(db *sql.DB) error {
	const schemaQuotes = `
CREATE TABLE IF NOT EXISTS markov_quotes (
    quote_id INTEGER PRIMARY KEY,
    quote_text TEXT NOT NULL,
    seed INTEGER NOT NULL,
    created_at TIMESTAMP NOT NULL
);
`
	if _, err := db.Exec(schemaQuotes); err != nil {
		return fmt.Errorf("could not create quotes schema: %w", err)
	}
	return nil
}

// loadCorpusLines runs query, which must select a single text column, and
// returns the corpus lines it holds. A row spanning several lines is split on
// '\n' so blank lines inside it still separate training units. NULL and empty
// rows become one blank line.
func loadCorpusLines(ctx context.Context, db *sql.DB, query string) ([]string, error) {
	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("could not query corpus: %w", err)
	}
	defer func(rows *sql.Rows) {
		_ = rows.Close()
	}(rows)

	var lines []string
	for rows.Next() {
		var line sql.NullString
		if err = rows.Scan(&line); err != nil {
			return nil, fmt.Errorf("could not scan corpus row: %w", err)
		}
		if line.String == "" {
			lines = append(lines, "")
			continue
		}
		for l := range strings.Lines(line.String) {
			lines = append(lines, strings.TrimSuffix(l, "\n"))
		}
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return lines, nil
}

// recordQuotes stores quotes in a single transaction.
func recordQuotes(ctx context.Context, db *sql.DB, logger *slog.Logger, seed uint64, quotes []string) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("could not begin transaction: %w", err)
	}
	// If the transaction succeeds, tx.Commit() will be called first, and the rollback will do nothing.
	defer func(tx *sql.Tx) {
		_ = tx.Rollback()
	}(tx)

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO markov_quotes (quote_text, seed, created_at) VALUES (?, ?, ?);`)
	if err != nil {
		return fmt.Errorf("failed to prepare quote insert statement: %w", err)
	}
	defer func(stmt *sql.Stmt) {
		_ = stmt.Close()
	}(stmt)

	now := time.Now().UTC()
	for _, q := range quotes {
		// SQLite integers are signed; the seed is stored bit for bit.
		if _, err = stmt.ExecContext(ctx, q, int64(seed), now); err != nil {
			return fmt.Errorf("failed to insert quote: %w", err)
		}
	}

	logger.InfoContext(ctx, "Quotes recorded",
		slog.Int("quotes", len(quotes)),
		slog.Uint64("seed", seed),
	)
	return tx.Commit()
}
