package markov

import (
	"encoding/json"
	"io"
	"log/slog"
)

// ExportedModel is the JSON representation written by WriteJSON. It exists for
// inspection and debugging; models are not loaded back from it.
type ExportedModel struct {
	ContextSize int             `json:"context_size"`
	BucketCount int             `json:"bucket_count"`
	Entries     []ExportedEntry `json:"entries"`
}

// ExportedEntry is the serializable form of one Entry. Empty context slots are
// encoded as null.
type ExportedEntry struct {
	Bucket  int            `json:"bucket"`
	Context []*string      `json:"context"`
	Words   map[string]int `json:"words"`
}

// WriteJSON writes an indented JSON dump of every entry in the model to w.
func (m *Model) WriteJSON(w io.Writer) error {
	exported := ExportedModel{
		ContextSize: m.contextSize,
		BucketCount: len(m.buckets),
		Entries:     make([]ExportedEntry, 0, m.entries),
	}
	for i, bucket := range m.buckets {
		for _, e := range bucket {
			ctx := make([]*string, len(e.context.slots))
			for j, s := range e.context.slots {
				if s.set {
					word := s.word
					ctx[j] = &word
				}
			}
			words := make(map[string]int, e.table.Len())
			for word, count := range e.table.All() {
				words[word] = count
			}
			exported.Entries = append(exported.Entries, ExportedEntry{Bucket: i, Context: ctx, Words: words})
		}
	}

	m.logger.Info("Model exported",
		slog.Int("contexts_exported", len(exported.Entries)),
		slog.Int("bucket_count", exported.BucketCount),
	)

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(exported)
}
