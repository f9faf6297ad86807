package templating

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"text/template"

	"github.com/calepayson/marko-polo/pkg/markov"
)

// QuoteSet is the data a format is executed against.
type QuoteSet struct {
	Quotes []string
	Seed   uint64
	Stats  markov.ModelStats
}

// TemplateManager is the central controller for the templating engine.
// It owns the compiled output format, the configuration and the function map,
// and it can draw quotes from a Markov model while rendering.
// All methods are concurrent-safe.
type TemplateManager struct {
	logger   *slog.Logger
	config   *TemplateConfig
	model    *markov.Model
	source   markov.Source
	template *template.Template
	funcMap  template.FuncMap
	mu       sync.RWMutex
}

// NewTemplateManager creates, initializes, and returns a new TemplateManager.
// model may be nil, in which case the quote and quotes functions fail when
// used. It performs an initial Refresh to compile the configured format.
func NewTemplateManager(logger *slog.Logger, model *markov.Model, config TemplateConfig) (*TemplateManager, error) {
	tm := &TemplateManager{
		logger: logger,
		model:  model,
		config: &config,
	}
	tm.funcMap = tm.makeFuncMap()

	if err := tm.Refresh(); err != nil {
		return nil, err
	}

	logger.Debug("Template manager initialized")
	return tm, nil
}

func (tm *TemplateManager) makeFuncMap() template.FuncMap {
	return template.FuncMap{
		// Content (from funcs_content.go)
		"quote":  tm.quote,
		"quotes": tm.quotes,
		"wrap":   tm.wrap,

		// Simple (from funcs_simple.go)
		"inc":     inc,
		"add":     add,
		"upper":   upper,
		"lower":   lower,
		"join":    join,
		"trim":    trim,
		"curly":   curly,
		"words":   words,
		"default": defaultString,
	}
}

// SetConfig applies a new configuration. The new format takes effect on the
// next Refresh.
func (tm *TemplateManager) SetConfig(config TemplateConfig) {
	tm.mu.Lock()
	defer tm.mu.Unlock()
	tm.config = &config
}

// SetSource sets the random source used by the quote functions. By default the
// process-wide source is used. A *rand.Rand is not safe for concurrent use, so
// callers rendering from several goroutines should keep the default.
func (tm *TemplateManager) SetSource(src markov.Source) {
	tm.mu.Lock()
	defer tm.mu.Unlock()
	tm.source = src
}

// Refresh recompiles the configured format. On failure the previous template
// stays in place.
func (tm *TemplateManager) Refresh() error {
	tm.mu.Lock()
	defer tm.mu.Unlock()

	format := tm.config.Format
	if format == "" {
		format = DefaultFormat
	}
	parsed, err := template.New("output").Funcs(tm.funcMap).Parse(format)
	if err != nil {
		tm.logger.Error("failed to parse output format", "error", err)
		return fmt.Errorf("failed to parse output format: %w", err)
	}
	tm.template = parsed
	return nil
}

// Execute renders data with the compiled format.
func (tm *TemplateManager) Execute(w io.Writer, data QuoteSet) error {
	tm.mu.RLock()
	t := tm.template
	tm.mu.RUnlock()
	if t == nil {
		return errors.New("no output format loaded")
	}
	return t.Execute(w, data)
}

// ExecuteTemplateString parses and executes a raw template string using the
// manager's function map, without replacing the configured format.
func (tm *TemplateManager) ExecuteTemplateString(w io.Writer, content string, data QuoteSet) error {
	t, err := template.New("inline").Funcs(tm.funcMap).Parse(content)
	if err != nil {
		return fmt.Errorf("failed to parse string template: %w", err)
	}
	return t.Execute(w, data)
}

// GetConfig returns a copy of the current configuration.
// This mainly exists for concurrency-safety reasons.
func (tm *TemplateManager) GetConfig() TemplateConfig {
	tm.mu.RLock()
	defer tm.mu.RUnlock()
	return *tm.config
}
