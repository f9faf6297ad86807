package markov

import (
	"bufio"
	"errors"
	"io"
	"strings"
)

// DefaultMaxLineBytes is the longest line, in bytes, the DefaultTokenizer
// reads. Anything beyond it on the same line is discarded.
const DefaultMaxLineBytes = 1024

// minLineBytes is the smallest buffer bufio will allocate.
const minLineBytes = 16

// DefaultTokenizer is a default implementation of the Tokenizer interface.
// It splits lines on spaces, tabs, newlines and carriage returns only, so
// punctuation stays attached to the word it was written with.
// Its behavior can be customized with functional options.
type DefaultTokenizer struct {
	separator    string
	maxLineBytes int
}

// TokenizerOption is a function that configures a DefaultTokenizer.
type TokenizerOption func(*DefaultTokenizer)

// WithSeparator sets the string used for joining words during generation.
// Default: " "
func WithSeparator(sep string) TokenizerOption {
	return func(t *DefaultTokenizer) {
		t.separator = sep
	}
}

// WithMaxLineBytes sets the line length limit. Lines longer than this are
// truncated, never split, whether they come from a stream or from Line.
// Default: DefaultMaxLineBytes
func WithMaxLineBytes(n int) TokenizerOption {
	return func(t *DefaultTokenizer) {
		if n > 0 {
			t.maxLineBytes = max(n, minLineBytes)
		}
	}
}

// NewDefaultTokenizer creates a new tokenizer with default settings, which can be
// overridden by providing one or more TokenizerOption functions.
func NewDefaultTokenizer(opts ...TokenizerOption) *DefaultTokenizer {
	t := &DefaultTokenizer{
		separator:    " ",
		maxLineBytes: DefaultMaxLineBytes,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Separator returns the configured separator string.
func (t *DefaultTokenizer) Separator() string {
	return t.separator
}

// Tokenize splits line on ' ', '\t', '\n' and '\r'.
func (t *DefaultTokenizer) Tokenize(line string) []string {
	return strings.FieldsFunc(line, isSpace)
}

// Line cuts raw at the line limit and tokenizes what is left. The returned
// Line is marked Truncated when bytes were dropped.
func (t *DefaultTokenizer) Line(raw string) *Line {
	truncated := len(raw) > t.maxLineBytes
	if truncated {
		raw = raw[:t.maxLineBytes]
	}
	return &Line{Tokens: t.Tokenize(raw), Truncated: truncated}
}

func isSpace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n' || r == '\r'
}

// NewStream returns the stream processor.
func (t *DefaultTokenizer) NewStream(r io.Reader) StreamTokenizer {
	return &DefaultStreamTokenizer{
		reader:    bufio.NewReaderSize(r, t.maxLineBytes),
		tokenizer: t,
	}
}

// DefaultStreamTokenizer is the default implementation of the StreamTokenizer
// interface. It reads lines through a bufio.Reader of at least maxLineBytes;
// a caller-supplied *bufio.Reader with a larger buffer is reused as is, and
// Line applies the limit either way.
type DefaultStreamTokenizer struct {
	reader    *bufio.Reader
	tokenizer *DefaultTokenizer
}

// Next returns the next line from the stream. When the stream is exhausted it
// returns a nil Line and io.EOF. Any other error indicates a problem reading
// from the underlying stream.
func (s *DefaultStreamTokenizer) Next() (*Line, error) {
	raw, isPrefix, err := s.reader.ReadLine()
	if err != nil {
		return nil, err
	}
	line := s.tokenizer.Line(string(raw))

	// Drain the rest of an overlong line so it does not surface as a new one.
	for isPrefix {
		var rest []byte
		rest, isPrefix, err = s.reader.ReadLine()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		if len(rest) > 0 {
			line.Truncated = true
		}
	}
	return line, nil
}
