package markov

import (
	"context"
	"go/build"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
)

// setupTestModel trains a small model whose every context has exactly one
// successor, so generation from it is deterministic.
func setupTestModel(t *testing.T) *Model {
	t.Helper()
	m, err := BuildModel(context.Background(), strings.NewReader("one fish two fish.\n\nred fish blue fish!\n"))
	if err != nil {
		t.Fatalf("setup: BuildModel() failed: %v", err)
	}
	return m
}

// newTestSource returns a seeded source so statistical tests are repeatable.
func newTestSource() *rand.Rand {
	return rand.New(rand.NewPCG(7277, 7278))
}

// fixedSource replays a fixed list of draws, each reduced modulo n.
type fixedSource struct {
	values []int
	pos    int
}

func (s *fixedSource) IntN(n int) int {
	v := s.values[s.pos%len(s.values)]
	s.pos++
	return v % n
}

// contextOf builds a context slot by slot; "_" marks an empty slot.
func contextOf(words ...string) *Context {
	c := NewContext(len(words))
	for i, w := range words {
		if w != "_" {
			c.slots[i] = slot{word: w, set: true}
		}
	}
	return c
}

var (
	benchmarkCorpus string
	corpusOnce      sync.Once
)

// createBenchmarkCorpus reads Go source files to create a corpus for benchmarking.
func createBenchmarkCorpus() string {
	corpusOnce.Do(func() {
		var sb strings.Builder
		goRoot := build.Default.GOROOT
		filesToRead := []string{
			filepath.Join(goRoot, "src/net/http/server.go"),
			filepath.Join(goRoot, "src/go/parser/parser.go"),
			filepath.Join(goRoot, "src/encoding/json/encode.go"),
		}

		for _, file := range filesToRead {
			content, err := os.ReadFile(file)
			if err != nil {
				benchmarkCorpus = "this is a fallback corpus for benchmarking. it is not very long but will prevent a crash. "
				return
			}
			sb.Write(content)
			sb.WriteString("\n")
		}
		benchmarkCorpus = sb.String()
	})
	return benchmarkCorpus
}
