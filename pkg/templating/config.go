package templating

// DefaultFormat prints every quote framed by blank lines.
const DefaultFormat = "{{range .Quotes}}\n{{wrap .}}\n\n{{end}}"

// TemplateConfig holds all configuration options for the templating engine.
type TemplateConfig struct {
	// Format is the text/template source used to render a QuoteSet.
	Format string `json:"format"`

	// WrapWidth is the column at which the wrap function breaks lines.
	// Zero disables wrapping.
	WrapWidth int `json:"wrap_width"`

	// MaxInlineQuotes caps how many quotes a single call to the quotes
	// function may generate while rendering.
	MaxInlineQuotes int `json:"max_inline_quotes"`

	// MaxQuoteLength is passed to the generator by the quote and quotes
	// functions when the template does not ask for a specific length.
	MaxQuoteLength int `json:"max_quote_length"`
}

// DefaultConfig returns a TemplateConfig with safe default values.
func DefaultConfig() TemplateConfig {
	return TemplateConfig{
		Format:          DefaultFormat,
		WrapWidth:       0,
		MaxInlineQuotes: 100,
		MaxQuoteLength:  50,
	}
}
