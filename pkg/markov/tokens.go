package markov

import (
	"io"
	"strings"
)

// SkipMarker marks a corpus line that must be ignored entirely when it begins
// the line's first token.
const SkipMarker = '-'

// Line is one tokenized line of a corpus.
type Line struct {
	Tokens []string
	// Truncated is set when the raw line exceeded the tokenizer's line limit
	// and its tail was dropped.
	Truncated bool
}

// Blank reports whether the line held no tokens. Blank lines separate
// training units.
func (l *Line) Blank() bool {
	return len(l.Tokens) == 0
}

// Skip reports whether the line is a skip directive: its first token starts
// with SkipMarker.
func (l *Line) Skip() bool {
	return len(l.Tokens) > 0 && strings.HasPrefix(l.Tokens[0], string(SkipMarker))
}

// Tokenizer is an interface that defines the contract for splitting corpus
// text into words. This allows training to be independent of the specific
// tokenization strategy.
type Tokenizer interface {
	// NewStream returns a stateful StreamTokenizer for processing an io.Reader
	// line by line.
	NewStream(io.Reader) StreamTokenizer
	// Tokenize splits a single line into words.
	Tokenize(line string) []string
	// Line applies the tokenizer's line limit to raw and tokenizes it.
	Line(raw string) *Line
	// Separator returns the string used to join generated words.
	Separator() string
}

// StreamTokenizer is an interface for a stateful tokenizer that processes a
// stream of data, returning one line at a time.
type StreamTokenizer interface {
	// Next returns the next line from the stream. It returns io.EOF as the
	// error when the stream is fully consumed.
	Next() (*Line, error)
}
