package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/CTAG07/Cookery/pkg/markov"
	"github.com/natefinch/atomic"
)

// GeneratorConfig holds the settings for building and walking the chains.
type GeneratorConfig struct {
	Seed          uint64 `json:"seed"` // 0 picks a seed from the clock
	TitleChain    string `json:"title_chain"`
	BodyChain     string `json:"body_chain"`
	TitleSteps    int    `json:"title_steps"`
	BodySentences int    `json:"body_sentences"`
	MaxSteps      int    `json:"max_sentence_steps"`
}

// TokenizerConfig holds the settings passed to markov.NewDefaultTokenizer.
type TokenizerConfig struct {
	StripMarks    string `json:"strip_marks"`
	TerminalMarks string `json:"terminal_marks"`
}

// Config is the top-level configuration struct that aggregates all other configs.
type Config struct {
	LogLevel     string           `json:"log_level"`
	ManifestPath string           `json:"manifest_path"`
	Generator    *GeneratorConfig `json:"generator_config"`
	Tokenizer    *TokenizerConfig `json:"tokenizer_config"`
}

// DefaultConfig creates a configuration with default values.
func DefaultConfig() *Config {
	return &Config{
		LogLevel:     "info",
		ManifestPath: "./data/corpora.yaml",
		Generator: &GeneratorConfig{
			Seed:          0,
			TitleChain:    "titles",
			BodyChain:     "recipes",
			TitleSteps:    4,
			BodySentences: 3,
			MaxSteps:      markov.DefaultMaxSteps,
		},
		Tokenizer: &TokenizerConfig{
			StripMarks:    markov.DefaultStripMarks,
			TerminalMarks: markov.DefaultTerminalMarks,
		},
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
				// Log a warning instead of failing, as generation can still run with defaults.
				fmt.Fprintf(os.Stderr, "warning: failed to write default config file: %v\n", err)
			}
			return config, nil
		}
		// For other errors (e.g., permission denied), return the error.
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Unmarshal the JSON from the file into the config struct.
	if err = json.Unmarshal(file, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err = config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file: %w", err)
	}
	return config, nil
}

// Validate reports every setting that would make generation fail.
func (c *Config) Validate() error {
	var errs []error
	if c.ManifestPath == "" {
		errs = append(errs, errors.New("manifest_path is required"))
	}
	if c.Generator == nil {
		errs = append(errs, errors.New("generator_config is required"))
	} else {
		g := c.Generator
		if g.TitleChain == "" || g.BodyChain == "" {
			errs = append(errs, errors.New("title_chain and body_chain are required"))
		}
		if g.TitleSteps < 0 {
			errs = append(errs, fmt.Errorf("title_steps must not be negative, got %d", g.TitleSteps))
		}
		if g.BodySentences < 0 {
			errs = append(errs, fmt.Errorf("body_sentences must not be negative, got %d", g.BodySentences))
		}
	}
	if c.Tokenizer == nil {
		errs = append(errs, errors.New("tokenizer_config is required"))
	} else if c.Tokenizer.TerminalMarks == "" {
		errs = append(errs, errors.New("terminal_marks must not be empty"))
	}
	return errors.Join(errs...)
}

// NewTokenizer builds the tokenizer described by the config.
func (c *Config) NewTokenizer() *markov.DefaultTokenizer {
	return markov.NewDefaultTokenizer(
		markov.WithStripMarks(c.Tokenizer.StripMarks),
		markov.WithTerminalMarks(c.Tokenizer.TerminalMarks),
	)
}

// parseLogLevel maps a config log level to a slog.Level, defaulting to info.
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
