package markov

import (
	"context"
	"errors"
	"fmt"
	"io"
	"iter"
	"log/slog"
)

// TrainStats counts what a Trainer has consumed so far.
type TrainStats struct {
	Lines     int64 // Every line seen, including blank and skipped ones.
	Blank     int64 // Lines with no tokens; each one reset the rolling context.
	Skipped   int64 // Lines whose first token started with SkipMarker.
	Truncated int64 // Lines cut at the tokenizer's line limit.
	Tokens    int64 // Tokens added to the model.
}

// Trainer feeds corpus lines into a Model while threading a rolling Context
// across them. The rolling context is created once, empty, and only a blank
// line resets it, so consecutive non-blank lines form one training unit.
type Trainer struct {
	model   *Model
	rolling *Context
	stats   TrainStats
}

// NewTrainer returns a Trainer that adds to m.
func NewTrainer(m *Model) *Trainer {
	return &Trainer{
		model:   m,
		rolling: m.NewContext(),
	}
}

// Stats returns the counters accumulated so far.
func (t *Trainer) Stats() TrainStats {
	return t.stats
}

// Context returns a copy of the current rolling context.
func (t *Trainer) Context() *Context {
	return t.rolling.Copy()
}

// FeedLine tokenizes a raw line with the model's tokenizer and feeds it. The
// tokenizer's line limit applies exactly as it does for streamed input.
func (t *Trainer) FeedLine(line string) {
	t.Feed(t.model.tokenizer.Line(line))
}

// Feed applies one tokenized line:
//   - a blank line resets the rolling context;
//   - a skip directive is ignored and leaves the rolling context untouched;
//   - anything else trains every token against the rolling context.
func (t *Trainer) Feed(line *Line) {
	t.stats.Lines++
	if line.Truncated {
		t.stats.Truncated++
		t.model.logger.Debug("Overlong corpus line truncated", slog.Int64("line", t.stats.Lines))
	}
	switch {
	case line.Blank():
		t.stats.Blank++
		t.rolling = t.rolling.Reset()
	case line.Skip():
		t.stats.Skipped++
	default:
		t.rolling = t.model.trainTokens(t.rolling, line.Tokens)
		t.stats.Tokens += int64(len(line.Tokens))
	}
}

// trainTokens adds each token against rolling, then pushes it, and returns
// the advanced context. Add stores a copy, never rolling itself.
func (m *Model) trainTokens(rolling *Context, tokens []string) *Context {
	for _, token := range tokens {
		m.Add(rolling, token)
		rolling = rolling.Push(token)
	}
	return rolling
}

// Train processes a stream of text from an io.Reader line by line and uses it
// to train the model. The context is checked between lines, so a cancelled
// context stops training early with ctx.Err().
func (m *Model) Train(ctx context.Context, data io.Reader) error {
	trainer := NewTrainer(m)
	stream := m.tokenizer.NewStream(data)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		line, err := stream.Next()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return fmt.Errorf("tokenizer error: %w", err)
		}
		trainer.Feed(line)
	}
	m.logTraining(ctx, trainer.Stats())
	return nil
}

// TrainLines trains the model from a sequence of raw lines supplied by the
// host, tokenizing each with the model's tokenizer.
func (m *Model) TrainLines(ctx context.Context, lines iter.Seq[string]) error {
	trainer := NewTrainer(m)
	for line := range lines {
		if err := ctx.Err(); err != nil {
			return err
		}
		trainer.FeedLine(line)
	}
	m.logTraining(ctx, trainer.Stats())
	return nil
}

func (m *Model) logTraining(ctx context.Context, stats TrainStats) {
	m.logger.InfoContext(ctx, "Training completed",
		slog.Int64("lines_processed", stats.Lines),
		slog.Int64("blank_lines", stats.Blank),
		slog.Int64("skipped_lines", stats.Skipped),
		slog.Int64("truncated_lines", stats.Truncated),
		slog.Int64("tokens_added", stats.Tokens),
		slog.Int("contexts", m.entries),
	)
}

// BuildModel creates a new Model and trains it on data. If data cannot be
// read, no model is returned and the error wraps ErrNoModel.
func BuildModel(ctx context.Context, data io.Reader, opts ...Option) (*Model, error) {
	m := NewModel(opts...)
	if err := m.Train(ctx, data); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNoModel, err)
	}
	return m, nil
}

// BuildModelFromLines is BuildModel for hosts that already split their corpus
// into lines.
func BuildModelFromLines(ctx context.Context, lines iter.Seq[string], opts ...Option) (*Model, error) {
	m := NewModel(opts...)
	if err := m.TrainLines(ctx, lines); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNoModel, err)
	}
	return m, nil
}
