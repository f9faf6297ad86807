package markov

import (
	"errors"
	"fmt"
	"io"
	"iter"
	"log/slog"
)

// DefaultBucketCount is the number of hash buckets a Model uses unless
// configured otherwise. Larger corpora simply produce longer chains.
const DefaultBucketCount = 420

// ErrNoModel is returned, wrapped, when a model could not be built because its
// corpus could not be read. No partially trained model is returned with it.
var ErrNoModel = errors.New("no model available")

// Entry is a stored (Context, FrequencyTable) pair. Its Context is a private
// copy taken when the entry was created and never changes afterwards.
type Entry struct {
	context *Context
	table   *FrequencyTable
}

// Context returns a copy of the entry's context.
func (e *Entry) Context() *Context {
	return e.context.Copy()
}

// Table returns the entry's frequency table. It must not be modified once
// training has finished.
func (e *Entry) Table() *FrequencyTable {
	return e.table
}

// Model is an order-K Markov chain: a fixed-size array of buckets, each
// holding the entries whose contexts hash to it. Within one bucket no two
// entries have equal contexts.
//
// A Model is built by a single goroutine and is read-only afterwards.
type Model struct {
	buckets     [][]*Entry
	contextSize int
	entries     int
	tokenizer   Tokenizer
	logger      *slog.Logger
}

// Option configures a Model at construction time.
type Option func(*Model)

// WithContextSize sets K, the number of preceding words used to predict the
// next one. Default: DefaultContextSize
func WithContextSize(k int) Option {
	return func(m *Model) {
		if k > 0 {
			m.contextSize = k
		}
	}
}

// WithBucketCount sets the number of hash buckets. Default: DefaultBucketCount
func WithBucketCount(n int) Option {
	return func(m *Model) {
		if n > 0 {
			m.buckets = make([][]*Entry, n)
		}
	}
}

// WithTokenizer sets the tokenizer used for training and for joining
// generated words. Default: NewDefaultTokenizer()
func WithTokenizer(t Tokenizer) Option {
	return func(m *Model) {
		if t != nil {
			m.tokenizer = t
		}
	}
}

// WithLogger sets the logger used during training and generation.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Model) {
		m.SetLogger(logger)
	}
}

// NewModel returns an empty Model configured by opts.
func NewModel(opts ...Option) *Model {
	m := &Model{
		buckets:     make([][]*Entry, DefaultBucketCount),
		contextSize: DefaultContextSize,
		tokenizer:   NewDefaultTokenizer(),
		logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// SetLogger sets the logger for the Model. By default, all logs are discarded.
func (m *Model) SetLogger(logger *slog.Logger) {
	if logger != nil {
		m.logger = logger
	}
}

// NewContext returns an empty Context sized for this model.
func (m *Model) NewContext() *Context {
	return NewContext(m.contextSize)
}

// ContextSize returns K.
func (m *Model) ContextSize() int {
	return m.contextSize
}

// BucketCount returns the number of hash buckets.
func (m *Model) BucketCount() int {
	return len(m.buckets)
}

// Len returns the number of distinct contexts stored.
func (m *Model) Len() int {
	return m.entries
}

// Tokenizer returns the tokenizer the model was configured with.
func (m *Model) Tokenizer() Tokenizer {
	return m.tokenizer
}

func (m *Model) bucket(c *Context) int {
	return int(c.Hash() % uint64(len(m.buckets)))
}

func (m *Model) find(c *Context) (*Entry, int) {
	idx := m.bucket(c)
	for _, e := range m.buckets[idx] {
		if e.context.Equal(c) {
			return e, idx
		}
	}
	return nil, idx
}

// Add records that word followed context c. The first time a context is seen
// a copy of it is stored, so the caller is free to keep mutating c.
func (m *Model) Add(c *Context, word string) {
	m.addN(c, word, 1)
}

func (m *Model) addN(c *Context, word string, n int) {
	e, idx := m.find(c)
	if e != nil {
		e.table.addWordN(word, n)
		return
	}
	e = &Entry{context: c.Copy(), table: newFrequencyTable(word)}
	if n > 1 {
		e.table.addWordN(word, n-1)
	}
	m.buckets[idx] = append(m.buckets[idx], e)
	m.entries++
}

// Lookup returns the frequency table stored for context c.
func (m *Model) Lookup(c *Context) (*FrequencyTable, bool) {
	e, _ := m.find(c)
	if e == nil {
		return nil, false
	}
	return e.table, true
}

// Next draws a word that may follow c, using the process-wide random source.
// It returns false when c was never observed during training; that is a
// normal end of the chain, not an error.
func (m *Model) Next(c *Context) (string, bool) {
	return m.next(c, defaultSource)
}

func (m *Model) next(c *Context, src Source) (string, bool) {
	table, ok := m.Lookup(c)
	if !ok {
		return "", false
	}
	return table.Draw(src), true
}

// Entries iterates over every stored entry, bucket by bucket.
func (m *Model) Entries() iter.Seq[*Entry] {
	return func(yield func(*Entry) bool) {
		for _, bucket := range m.buckets {
			for _, e := range bucket {
				if !yield(e) {
					return
				}
			}
		}
	}
}

// Merge adds every count from other into m. Both models must use the same
// context size; bucket counts may differ.
func (m *Model) Merge(other *Model) error {
	if other.contextSize != m.contextSize {
		return fmt.Errorf("cannot merge model with context size %d into one with context size %d", other.contextSize, m.contextSize)
	}
	var merged int
	for e := range other.Entries() {
		for word, count := range e.table.All() {
			m.addN(e.context, word, count)
		}
		merged++
	}
	m.logger.Debug("Models merged",
		slog.Int("contexts_merged", merged),
		slog.Int("contexts_total", m.entries),
	)
	return nil
}
