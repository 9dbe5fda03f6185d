package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the pipeline configuration, loaded from YAML.
type Config struct {
	// DataDir holds the raw .txt article files the scraper deposits.
	DataDir string `yaml:"data_dir"`
	// DBPath is the SQLite corpus store location.
	DBPath string `yaml:"db_path"`
	// WordList is the newline-delimited reference vocabulary
	// (an American-English word list such as SCOWL 2of12inf).
	WordList string `yaml:"word_list"`
	// Stopwords optionally overrides the built-in English stopword set.
	Stopwords string `yaml:"stopwords"`
	// Lexicon is the polarity lexicon CSV (Harvard IV-4 layout).
	Lexicon string `yaml:"lexicon"`

	Feed   Feed   `yaml:"feed"`
	Output Output `yaml:"output"`
}

// Feed configures the external reference-series download.
type Feed struct {
	BaseURL string `yaml:"base_url"`
	Symbol  string `yaml:"symbol"`
}

// Output names the two index artifacts.
type Output struct {
	CountIndex string `yaml:"count_index"`
	ToneIndex  string `yaml:"tone_index"`
}

// Load reads a Config from a YAML file and applies defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	cfg.applyDefaults()
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.DBPath == "" {
		c.DBPath = "articles.db"
	}
	if c.Feed.BaseURL == "" {
		c.Feed.BaseURL = "https://query1.finance.yahoo.com/v7/finance/download"
	}
	if c.Feed.Symbol == "" {
		c.Feed.Symbol = "^OVX"
	}
	if c.Output.CountIndex == "" {
		c.Output.CountIndex = "count_based_index.xlsx"
	}
	if c.Output.ToneIndex == "" {
		c.Output.ToneIndex = "harvard_dict_based_index.xlsx"
	}
}
