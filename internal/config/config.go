// Package config loads mzentrap run configuration from YAML files and sets
// up logging. Command line flags override file values.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds all file-configurable settings.
type Config struct {
	// Library-to-real entrapment ratio.
	Ratio float64 `yaml:"ratio"`
	// Per-file worker goroutines; 1 runs serially.
	Workers int `yaml:"workers"`

	Report  ReportColumns  `yaml:"report_columns"`
	Library LibraryColumns `yaml:"library_columns"`
	Log     LogConfig      `yaml:"log"`
}

// ReportColumns maps the identification report's column names. Empty values
// select the built-in defaults.
type ReportColumns struct {
	Sequence string `yaml:"sequence"`
	Charge   string `yaml:"charge"`
	Score    string `yaml:"score"`
	Decoy    string `yaml:"decoy"`
	File     string `yaml:"file"`
	Channel  string `yaml:"channel"`
	Protein  string `yaml:"protein"`
}

// LibraryColumns maps the entrapment library's column names.
type LibraryColumns struct {
	Sequence        string `yaml:"sequence"`
	Charge          string `yaml:"charge"`
	EntrapmentGroup string `yaml:"entrapment_group"`
	PairID          string `yaml:"pair_id"`
}

// LogConfig controls the logger. An empty file means stderr only.
type LogConfig struct {
	File  string `yaml:"file"`
	Level string `yaml:"level"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Ratio:   1.0,
		Workers: 1,
		Log:     LogConfig{Level: "info"},
	}
}

// Load reads a YAML configuration file on top of the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

// LogLevel parses the configured level name, defaulting to info.
func (c *Config) LogLevel() slog.Level {
	switch strings.ToUpper(c.Log.Level) {
	case "DEBUG":
		return slog.LevelDebug
	case "INFO", "":
		return slog.LevelInfo
	case "WARN", "WARNING":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
