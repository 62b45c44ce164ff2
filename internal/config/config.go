// Package config handles merge settings.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds the tuning knobs for a merge run, loaded from an optional
// YAML settings file.
type Config struct {
	// MinYear is the oldest publication year kept in the output.
	MinYear int `yaml:"min_year"`

	// SimilarityThreshold is the average field similarity at or above
	// which two entries are considered duplicates. Must be in (0, 1].
	SimilarityThreshold float64 `yaml:"similarity_threshold"`

	// Header is the title line of the output file's comment block.
	Header string `yaml:"header"`

	// ManualDuplicates maps a known duplicate key to the key that should
	// be retained instead. Entries listed here are dropped without any
	// similarity comparison.
	ManualDuplicates map[string]string `yaml:"manual_duplicates"`
}

// Defaults for merge settings.
const (
	DefaultMinYear             = 2017
	DefaultSimilarityThreshold = 0.7
	DefaultHeader              = "Merged Publications"
)

// Default returns the built-in merge settings.
func Default() *Config {
	return &Config{
		MinYear:             DefaultMinYear,
		SimilarityThreshold: DefaultSimilarityThreshold,
		Header:              DefaultHeader,
		ManualDuplicates:    map[string]string{},
	}
}

// Load reads merge settings from a YAML file, overlaying the defaults.
// A missing file is not an error: the defaults are returned, matching
// flag-only usage.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading settings: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing settings: %w", err)
	}
	if cfg.ManualDuplicates == nil {
		cfg.ManualDuplicates = map[string]string{}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("settings %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks that the settings are usable.
func (c *Config) Validate() error {
	if c.SimilarityThreshold <= 0 || c.SimilarityThreshold > 1 {
		return fmt.Errorf("similarity_threshold must be in (0, 1], got %v", c.SimilarityThreshold)
	}
	if c.MinYear <= 0 {
		return fmt.Errorf("min_year must be positive, got %d", c.MinYear)
	}
	return nil
}
