package markov

import (
	"math/rand/v2"
	"strings"
)

// DefaultMaxLength caps the step counter of a single generation.
const DefaultMaxLength = 50

// DefaultStopChars are the characters that end a quote when a generated word
// contains any of them.
const DefaultStopChars = ".!?"

// Source is the random number source consumed by weighted draws. A
// *rand.Rand from math/rand/v2 satisfies it; note that *rand.Rand is not safe
// for concurrent use, so concurrent generators need one each.
type Source interface {
	IntN(n int) int
}

// globalSource draws from the process-wide math/rand/v2 generator, which is
// seeded once at start-up and safe for concurrent use.
type globalSource struct{}

func (globalSource) IntN(n int) int { return rand.IntN(n) }

var defaultSource Source = globalSource{}

// generateOptions is used by the generate functions to configure default options.
type generateOptions struct {
	maxLength int
	source    Source
	stopChars string
}

// GenerateOption is a function that configures generation parameters. It's used
// as a variadic argument in generation functions like Generate and Stream.
type GenerateOption func(*generateOptions)

// WithMaxLength sets the step limit. Generation appends at most n+1 words.
func WithMaxLength(n int) GenerateOption {
	return func(o *generateOptions) { o.maxLength = n }
}

// WithSource sets the random source used for weighted draws.
func WithSource(src Source) GenerateOption {
	return func(o *generateOptions) {
		if src != nil {
			o.source = src
		}
	}
}

// WithStopChars replaces the set of characters that end a quote.
func WithStopChars(chars string) GenerateOption {
	return func(o *generateOptions) { o.stopChars = chars }
}

func newGenerateOptions(opts []GenerateOption) *generateOptions {
	options := &generateOptions{
		maxLength: DefaultMaxLength,
		source:    defaultSource,
		stopChars: DefaultStopChars,
	}
	for _, opt := range opts {
		opt(options)
	}
	return options
}

// Generate produces one quote and returns its words joined by the model's
// tokenizer separator. The result is empty when the model has never seen the
// empty context, e.g. because it was trained on an empty corpus.
func (m *Model) Generate(opts ...GenerateOption) string {
	var builder strings.Builder
	sep := m.tokenizer.Separator()
	first := true
	for word := range m.Stream(opts...) {
		if !first {
			builder.WriteString(sep)
		}
		first = false
		builder.WriteString(word)
	}
	return builder.String()
}

// GenerateWords is Generate without the final join.
func (m *Model) GenerateWords(opts ...GenerateOption) []string {
	var words []string
	for word := range m.Stream(opts...) {
		words = append(words, word)
	}
	return words
}

// GenerateQuote generates a quote from m with default options.
func GenerateQuote(m *Model) string {
	return m.Generate()
}

// endsQuote reports whether word contains any of the stop characters.
func endsQuote(word, stopChars string) bool {
	return stopChars != "" && strings.ContainsAny(word, stopChars)
}
