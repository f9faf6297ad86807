package main

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"math/rand/v2"
	"os"
	"os/signal"
	"slices"
	"syscall"
	"time"

	"github.com/calepayson/marko-polo/pkg/markov"
	"github.com/calepayson/marko-polo/pkg/templating"
	"github.com/joho/godotenv"
	"github.com/natefinch/atomic"
)

var (
	Version   = "dev"
	Commit    = "none"
	BuildDate = "unknown"
)

// runOptions carries the command line into run.
type runOptions struct {
	configPath string
	dumpPath   string
	stdout     io.Writer
	stderr     io.Writer
}

func main() {
	configPath := flag.String("config", "./config.json", "path to the JSON configuration file (env: MARKOV_CONFIG)")
	dumpPath := flag.String("dump", "", "write the trained model as JSON to this path")
	showVersion := flag.Bool("version", false, "print version information and exit")
	flag.Parse()

	if *showVersion {
		fmt.Printf("marko-polo %s (commit %s, built %s)\n", Version, Commit, BuildDate)
		return
	}

	baseLogger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		baseLogger.Warn("Failed to load .env file", "error", err)
	}
	if v := os.Getenv("MARKOV_CONFIG"); v != "" && !isFlagSet("config") {
		*configPath = v
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := run(ctx, runOptions{
		configPath: *configPath,
		dumpPath:   *dumpPath,
		stdout:     os.Stdout,
		stderr:     os.Stderr,
	})
	if err != nil {
		baseLogger.Error("Quote generation failed", "error", err)
		stop()
		os.Exit(1)
	}
}

func isFlagSet(name string) bool {
	set := false
	flag.Visit(func(f *flag.Flag) {
		if f.Name == name {
			set = true
		}
	})
	return set
}

// run loads the configuration, trains a model, generates quotes and delivers them.
func run(ctx context.Context, opts runOptions) error {
	config, err := LoadConfig(opts.configPath)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if err = config.ApplyEnv(); err != nil {
		return fmt.Errorf("failed to apply environment: %w", err)
	}

	logger := slog.New(slog.NewTextHandler(opts.stderr, &slog.HandlerOptions{Level: parseLogLevel(config.LogLevel)}))

	model, err := buildModel(ctx, config, logger)
	if err != nil {
		return err
	}

	stats := model.Stats()
	logger.Info("Model ready",
		slog.Int("contexts", stats.Contexts),
		slog.Int("transitions", stats.Transitions),
		slog.Int("total_frequency", stats.TotalFrequency),
		slog.Int("starting_tokens", stats.StartingTokens),
		slog.Int("vocabulary", stats.Vocabulary),
		slog.Int("used_buckets", stats.UsedBuckets),
		slog.Int("longest_chain", stats.LongestChain),
	)

	if opts.dumpPath != "" {
		if err = dumpModel(model, opts.dumpPath); err != nil {
			return err
		}
		logger.Info("Model dumped", "path", opts.dumpPath)
	}

	seed := config.Generate.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	// One source for the whole run, seeded once.
	src := rand.New(rand.NewPCG(seed, seed))

	quotes := generateQuotes(model, config.Generate, src)
	logger.Debug("Quotes generated", "count", len(quotes), "seed", seed)

	tm, err := templating.NewTemplateManager(logger, model, *config.Templates)
	if err != nil {
		return fmt.Errorf("failed to create template manager: %w", err)
	}
	tm.SetSource(src)

	var buf bytes.Buffer
	if err = tm.Execute(&buf, templating.QuoteSet{Quotes: quotes, Seed: seed, Stats: stats}); err != nil {
		return fmt.Errorf("failed to render quotes: %w", err)
	}

	if err = writeOutput(config.Output.Path, buf.Bytes(), opts.stdout); err != nil {
		return err
	}

	if config.Output.DatabasePath != "" {
		if err = storeQuotes(ctx, config.Output.DatabasePath, logger, seed, quotes); err != nil {
			return err
		}
	}
	return nil
}

// buildModel trains a model from the configured corpus source. Any failure to
// read the corpus is reported as markov.ErrNoModel.
func buildModel(ctx context.Context, config *Config, logger *slog.Logger) (*markov.Model, error) {
	modelOpts := []markov.Option{
		markov.WithContextSize(config.Model.ContextSize),
		markov.WithBucketCount(config.Model.BucketCount),
		markov.WithTokenizer(markov.NewDefaultTokenizer(markov.WithMaxLineBytes(config.Corpus.MaxLineBytes))),
		markov.WithLogger(logger),
	}

	switch config.Corpus.Source {
	case sourceFile, "":
		file, err := os.Open(config.Corpus.Path)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", markov.ErrNoModel, err)
		}
		defer func(file *os.File) {
			_ = file.Close()
		}(file)
		logger.Info("Training from file", "path", config.Corpus.Path)
		return markov.BuildModel(ctx, file, modelOpts...)

	case sourceSQLite:
		db, err := openDB(ctx, config.Corpus.DatabasePath)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", markov.ErrNoModel, err)
		}
		defer func() {
			_ = db.Close()
		}()
		lines, err := loadCorpusLines(ctx, db, config.Corpus.Query)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", markov.ErrNoModel, err)
		}
		logger.Info("Training from database", "path", config.Corpus.DatabasePath, "rows", len(lines))
		return markov.BuildModelFromLines(ctx, slices.Values(lines), modelOpts...)

	default:
		return nil, fmt.Errorf("unknown corpus source %q", config.Corpus.Source)
	}
}

// generateQuotes draws config.Count quotes from model using src.
func generateQuotes(model *markov.Model, config *GenerateConfig, src markov.Source) []string {
	opts := []markov.GenerateOption{
		markov.WithMaxLength(config.MaxLength),
		markov.WithStopChars(config.StopChars),
		markov.WithSource(src),
	}
	quotes := make([]string, 0, max(config.Count, 0))
	for range config.Count {
		quotes = append(quotes, model.Generate(opts...))
	}
	return quotes
}

// dumpModel writes the model's JSON dump to path atomically.
func dumpModel(model *markov.Model, path string) error {
	var buf bytes.Buffer
	if err := model.WriteJSON(&buf); err != nil {
		return fmt.Errorf("failed to encode model: %w", err)
	}
	if err := atomic.WriteFile(path, &buf); err != nil {
		return fmt.Errorf("failed to write model dump: %w", err)
	}
	return nil
}

// writeOutput writes data to stdout when path is empty, otherwise it replaces
// the file at path atomically.
func writeOutput(path string, data []byte, stdout io.Writer) error {
	if path == "" {
		if _, err := stdout.Write(data); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		return nil
	}
	if err := atomic.WriteFile(path, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	return nil
}

// storeQuotes records quotes in the SQLite database at dataSource.
func storeQuotes(ctx context.Context, dataSource string, logger *slog.Logger, seed uint64, quotes []string) error {
	db, err := openDB(ctx, dataSource)
	if err != nil {
		return fmt.Errorf("failed to open quote database: %w", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Error("Failed to close database", "error", err)
		}
	}()

	if err = setupQuoteSchema(db); err != nil {
		return err
	}
	return recordQuotes(ctx, db, logger, seed, quotes)
}
