package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/calepayson/marko-polo/pkg/markov"
	"github.com/calepayson/marko-polo/pkg/templating"
	"github.com/natefinch/atomic"
)

const (
	sourceFile   = "file"
	sourceSQLite = "sqlite"
)

// CorpusConfig describes where training text comes from.
type CorpusConfig struct {
	Source       string `json:"source"`
	Path         string `json:"path"`
	DatabasePath string `json:"database_path"`
	Query        string `json:"query"`
	MaxLineBytes int    `json:"max_line_bytes"`
}

// ModelConfig holds the construction-time constants of the Markov model.
type ModelConfig struct {
	ContextSize int `json:"context_size"`
	BucketCount int `json:"bucket_count"`
}

// GenerateConfig holds settings for quote generation.
type GenerateConfig struct {
	MaxLength int    `json:"max_length"`
	Count     int    `json:"count"`
	Seed      uint64 `json:"seed"`
	StopChars string `json:"stop_chars"`
}

// OutputConfig holds settings for delivering generated quotes.
type OutputConfig struct {
	Path         string `json:"path"`
	DatabasePath string `json:"database_path"`
}

// Config is the top-level configuration struct that aggregates all other configs.
type Config struct {
	LogLevel  string                     `json:"log_level"`
	Corpus    *CorpusConfig              `json:"corpus_config"`
	Model     *ModelConfig               `json:"model_config"`
	Generate  *GenerateConfig            `json:"generate_config"`
	Output    *OutputConfig              `json:"output_config"`
	Templates *templating.TemplateConfig `json:"template_config"`
}

// DefaultConfig creates a configuration with default values.
func DefaultConfig() *Config {
	templates := templating.DefaultConfig()
	return &Config{
		LogLevel: "info",
		Corpus: &CorpusConfig{
			Source:       sourceFile,
			Path:         "quotes.txt",
			DatabasePath: "./data/corpus.db",
			Query:        "SELECT line FROM corpus ORDER BY rowid",
			MaxLineBytes: markov.DefaultMaxLineBytes,
		},
		Model: &ModelConfig{
			ContextSize: markov.DefaultContextSize,
			BucketCount: markov.DefaultBucketCount,
		},
		Generate: &GenerateConfig{
			MaxLength: markov.DefaultMaxLength,
			Count:     1,
			Seed:      0,
			StopChars: markov.DefaultStopChars,
		},
		Output: &OutputConfig{
			Path:         "",
			DatabasePath: "",
		},
		Templates: &templates,
	}
}

// LoadConfig reads the configuration from a JSON file at the given path.
// If the file doesn't exist, it creates one with default values.
func LoadConfig(path string) (*Config, error) {
	// Initialize with default configurations
	config := DefaultConfig()

	file, err := os.ReadFile(path)
	if err != nil {
		// If the file doesn't exist, create it with the default config.
		if os.IsNotExist(err) {
			var data []byte
			data, err = json.MarshalIndent(config, "", "  ")
			if err != nil {
				return nil, fmt.Errorf("failed to marshal default config: %w", err)
			}
			if err = atomic.WriteFile(path, bytes.NewReader(data)); err != nil {
				// Warn instead of failing, the defaults are still usable.
				fmt.Fprintf(os.Stderr, "warning: failed to write default config file: %v\n", err)
			}
			return config, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err = json.Unmarshal(file, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	config.fillDefaults()
	return config, nil
}

// fillDefaults restores any section a config file left out or nulled.
func (c *Config) fillDefaults() {
	def := DefaultConfig()
	if c.Corpus == nil {
		c.Corpus = def.Corpus
	}
	if c.Model == nil {
		c.Model = def.Model
	}
	if c.Generate == nil {
		c.Generate = def.Generate
	}
	if c.Output == nil {
		c.Output = def.Output
	}
	if c.Templates == nil {
		c.Templates = def.Templates
	}
	if c.Generate.StopChars == "" {
		c.Generate.StopChars = markov.DefaultStopChars
	}
}

// ApplyEnv overrides config values from MARKOV_* environment variables, which
// may have been loaded from a .env file.
func (c *Config) ApplyEnv() error {
	if v := os.Getenv("MARKOV_CORPUS"); v != "" {
		c.Corpus.Path = v
	}
	if v := os.Getenv("MARKOV_OUTPUT"); v != "" {
		c.Output.Path = v
	}
	if v := os.Getenv("MARKOV_LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
	if v := os.Getenv("MARKOV_SEED"); v != "" {
		seed, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid MARKOV_SEED %q: %w", v, err)
		}
		c.Generate.Seed = seed
	}
	return nil
}

// parseLogLevel maps a config string onto a slog level, defaulting to info.
func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
