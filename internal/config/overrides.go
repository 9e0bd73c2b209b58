package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Overrides is the optional YAML file for settings that are awkward as env vars.
type Overrides struct {
	BookTitles      []string   `yaml:"book_titles"`
	PreferredBooks  []string   `yaml:"preferred_books"`
	MarketBatches   [][]string `yaml:"market_batches"`
	RefreshSchedule string     `yaml:"refresh_schedule"`
}

// LoadOverrides reads and parses the overrides file at path.
func LoadOverrides(path string) (Overrides, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Overrides{}, fmt.Errorf("read overrides file: %w", err)
	}
	var o Overrides
	if err := yaml.Unmarshal(data, &o); err != nil {
		return Overrides{}, fmt.Errorf("parse overrides file: %w", err)
	}
	return o, nil
}

// Apply copies every non-empty override onto cfg.
func (o Overrides) Apply(cfg *Config) {
	if cfg == nil {
		return
	}
	if len(o.BookTitles) > 0 {
		cfg.OddsAPI.BookTitles = append([]string(nil), o.BookTitles...)
	}
	if len(o.PreferredBooks) > 0 {
		cfg.OddsAPI.PreferredBooks = append([]string(nil), o.PreferredBooks...)
	}
	var batches [][]string
	for _, batch := range o.MarketBatches {
		if len(batch) > 0 {
			batches = append(batches, batch)
		}
	}
	if len(batches) > 0 {
		cfg.OddsAPI.MarketBatches = copyBatches(batches)
	}
	if o.RefreshSchedule != "" {
		cfg.RefreshSchedule = o.RefreshSchedule
	}
}
