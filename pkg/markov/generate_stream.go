package markov

import (
	"iter"
	"log/slog"
)

// Stream returns a sequence that generates one quote word by word. Words are
// produced lazily on the caller's goroutine; stopping the range loop early
// simply abandons the quote.
//
// Each run starts from a fresh, empty context. A step draws the next word,
// pushes it into the context and yields it. The run ends when the context was
// never observed in training, after yielding a word that contains a stop
// character, or once the step counter passes the maximum length.
func (m *Model) Stream(opts ...GenerateOption) iter.Seq[string] {
	options := newGenerateOptions(opts)
	return func(yield func(string) bool) {
		m.generateChain(options, yield)
	}
}

// generateChain contains the main loop for generating a markov chain.
func (m *Model) generateChain(options *generateOptions, yield func(string) bool) {
	prefix := m.NewContext()
	for counter := 0; counter <= options.maxLength; counter++ {
		word, ok := m.next(prefix, options.source)
		if !ok {
			m.logger.Debug("Generation terminated due to dead-end",
				slog.String("last_context", prefix.String()),
				slog.Int("generated_length", counter),
			)
			return
		}
		prefix = prefix.Push(word)
		if !yield(word) {
			return
		}
		if endsQuote(word, options.stopChars) {
			m.logger.Debug("Generation terminated by stop word",
				slog.String("word", word),
				slog.Int("generated_length", counter+1),
			)
			return
		}
	}
	m.logger.Debug("Generation terminated by reaching maxLength",
		slog.Int("max_length", options.maxLength),
		slog.Int("generated_length", options.maxLength+1),
	)
}
