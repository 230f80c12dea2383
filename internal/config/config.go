package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/cleared-dev/siereport/internal/export"
	"github.com/cleared-dev/siereport/internal/model"
	"github.com/cleared-dev/siereport/internal/report"
)

// FileName is the default config file name.
const FileName = "siereport.yaml"

// Config represents the top-level siereport.yaml configuration.
type Config struct {
	Currency     string             `yaml:"currency"`
	Year         string             `yaml:"year"`
	NonZeroOnly  bool               `yaml:"non_zero_only"`
	Export       export.Flags       `yaml:"export"`
	Transactions TransactionsConfig `yaml:"transactions"`
	Log          LogConfig          `yaml:"log"`
}

// TransactionsConfig controls transaction sampling in exports.
type TransactionsConfig struct {
	SampleSize    int `yaml:"sample_size"`
	FullListLimit int `yaml:"full_list_limit"`
}

// LogConfig controls logging. RunLog, when set, is a CSV file every
// command appends one row to.
type LogConfig struct {
	Level  string `yaml:"level"`
	RunLog string `yaml:"run_log,omitempty"`
}

// Load reads a siereport.yaml file from disk. Keys missing from the file keep
// their default values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return cfg, nil
}

// LoadOrDefault is Load, except that a missing file yields Default.
func LoadOrDefault(path string) (*Config, error) {
	cfg, err := Load(path)
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	return cfg, err
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns a Config with sensible defaults for a new project.
func Default() *Config {
	return &Config{
		Currency:    model.DefaultCurrency,
		Year:        "0",
		NonZeroOnly: true,
		Export:      export.AllFlags(),
		Transactions: TransactionsConfig{
			SampleSize:    export.DefaultSampleSize,
			FullListLimit: export.DefaultFullListLimit,
		},
		Log: LogConfig{Level: "warn"},
	}
}

// ReportOptions returns the report options the config selects.
func (c *Config) ReportOptions() report.Options {
	return report.Options{Year: c.Year, NonZeroOnly: c.NonZeroOnly}
}

// ExportOptions returns export options for the config's flags and sampling.
func (c *Config) ExportOptions() export.Options {
	return export.Options{
		Flags:         c.Export,
		Report:        c.ReportOptions(),
		SampleSize:    c.Transactions.SampleSize,
		FullListLimit: c.Transactions.FullListLimit,
	}
}
