package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/CTAG07/markovtext/pkg/markov"
	"github.com/natefinch/atomic"
)

// Config holds the settings for a generation run.
type Config struct {
	Order        int     `json:"order"`
	MaxLength    int     `json:"max_length"`
	Seed         *uint64 `json:"seed"` // nil draws a fresh random seed per run
	LogLevel     string  `json:"log_level"`
	DatabasePath string  `json:"database_path"`
	Normalize    bool    `json:"normalize"`
	Prompt       string  `json:"prompt"`
}

// DefaultConfig creates a configuration with default values.
func DefaultConfig() *Config {
	return &Config{
		Order:        markov.DefaultOrder,
		MaxLength:    markov.DefaultMaxLength,
		LogLevel:     "info",
		DatabasePath: "./data/markovtext.db",
		Normalize:    true,
		Prompt:       "Please enter the file path > ",
	}
}

// LoadConfig reads the configuration from a JSON file at the given path.
// If the file doesn't exist, it creates one with default values.
func LoadConfig(path string) (*Config, error) {
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
				// The run can still go ahead with defaults.
				fmt.Fprintf(os.Stderr, "warning: failed to write default config file: %v\n", err)
			}
			return config, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err = json.Unmarshal(file, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return config, nil
}

// Validate reports the first setting that cannot be used.
func (c *Config) Validate() error {
	if c.Order < 1 {
		return fmt.Errorf("order must be a positive integer, got %d", c.Order)
	}
	if c.MaxLength < 0 {
		return fmt.Errorf("max_length must not be negative, got %d", c.MaxLength)
	}
	return nil
}

// logLevel maps the configured level name onto a slog.Level, defaulting to info.
func (c *Config) logLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
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
