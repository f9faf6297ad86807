package templating

import (
	"errors"
	"strings"

	"github.com/calepayson/marko-polo/pkg/markov"
)

// errNoModel is returned by the quote functions when the manager has no model.
var errNoModel = errors.New("no markov model configured")

// generateOpts builds the generation options for a template call. A
// non-positive maxLength falls back to the configured MaxQuoteLength.
func (tm *TemplateManager) generateOpts(maxLength int) []markov.GenerateOption {
	tm.mu.RLock()
	defer tm.mu.RUnlock()
	if maxLength <= 0 {
		maxLength = tm.config.MaxQuoteLength
	}
	opts := []markov.GenerateOption{markov.WithMaxLength(maxLength)}
	if tm.source != nil {
		opts = append(opts, markov.WithSource(tm.source))
	}
	return opts
}

// quote generates a single quote from the model. maxLength <= 0 uses the
// configured default.
func (tm *TemplateManager) quote(maxLength int) (string, error) {
	if tm.model == nil {
		tm.logger.Error("quote: no model configured")
		return "", errNoModel
	}
	return tm.model.Generate(tm.generateOpts(maxLength)...), nil
}

// quotes generates count quotes, capped at MaxInlineQuotes.
func (tm *TemplateManager) quotes(count int) ([]string, error) {
	if tm.model == nil {
		tm.logger.Error("quotes: no model configured")
		return nil, errNoModel
	}
	count = min(count, tm.GetConfig().MaxInlineQuotes)
	if count <= 0 {
		return []string{}, nil
	}
	opts := tm.generateOpts(0)
	out := make([]string, 0, count)
	for range count {
		out = append(out, tm.model.Generate(opts...))
	}
	return out, nil
}

// wrap breaks s into lines no longer than the configured WrapWidth, breaking
// only between words. A word longer than the width gets a line of its own.
func (tm *TemplateManager) wrap(s string) string {
	return wrapWords(s, tm.GetConfig().WrapWidth)
}

func wrapWords(s string, width int) string {
	if width <= 0 {
		return s
	}
	var sb strings.Builder
	lineLen := 0
	for _, word := range strings.Fields(s) {
		switch {
		case lineLen == 0:
		case lineLen+1+len(word) > width:
			sb.WriteByte('\n')
			lineLen = 0
		default:
			sb.WriteByte(' ')
			lineLen++
		}
		sb.WriteString(word)
		lineLen += len(word)
	}
	return sb.String()
}
