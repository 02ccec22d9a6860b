package config

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"gopkg.in/yaml.v3"
)

//go:embed default_config.yaml
var defaultConfigFS embed.FS

type HangmanConfig struct {
	WordFile   string `yaml:"word_file,omitempty"`
	MinLength  int    `yaml:"min_word_length"`
	MaxLength  int    `yaml:"max_word_length"`
	FetchCount int    `yaml:"fetch_count"`
}

type StocksConfig struct {
	FallbackPrices map[string]float64 `yaml:"fallback_prices"`
}

type ReportsConfig struct {
	Dir string `yaml:"dir,omitempty"`
}

type Config struct {
	Hangman HangmanConfig `yaml:"hangman"`
	Stocks  StocksConfig  `yaml:"stocks"`
	Reports ReportsConfig `yaml:"reports,omitempty"`
}

// GetMinLength returns the shortest playable word length, defaulting to 4.
func (c *Config) GetMinLength() int {
	if c.Hangman.MinLength <= 0 {
		return 4
	}
	return c.Hangman.MinLength
}

// GetMaxLength returns the longest playable word length, defaulting to 12.
func (c *Config) GetMaxLength() int {
	if c.Hangman.MaxLength <= 0 {
		return 12
	}
	return c.Hangman.MaxLength
}

// GetFetchCount returns how many words to request online, defaulting to 200.
func (c *Config) GetFetchCount() int {
	if c.Hangman.FetchCount <= 0 {
		return 200
	}
	return c.Hangman.FetchCount
}

// FallbackPrice looks a symbol up in the configured price table, any case.
func (c *Config) FallbackPrice(symbol string) (float64, bool) {
	for sym, price := range c.Stocks.FallbackPrices {
		if strings.EqualFold(sym, symbol) {
			return price, true
		}
	}
	return 0, false
}

// ReportDir returns where saved reports go, defaulting to the working dir.
func (c *Config) ReportDir() string {
	if c.Reports.Dir == "" {
		return "."
	}
	return c.Reports.Dir
}

func DefaultConfigPath() string {
	return filepath.Join(xdg.ConfigHome, "sidekick", "config.yaml")
}

func StorePath() string {
	return filepath.Join(xdg.DataHome, "sidekick", "portfolio.db")
}

func loadDefaults() (*Config, error) {
	data, err := defaultConfigFS.ReadFile("default_config.yaml")
	if err != nil {
		return nil, fmt.Errorf("reading embedded config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded config: %w", err)
	}
	return &cfg, nil
}

func Load(path string) (*Config, error) {
	defaults, err := loadDefaults()
	if err != nil {
		return nil, err
	}

	if path == "" {
		path = DefaultConfigPath()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			// Write defaults to config path on first run
			if err := writeDefaults(path); err != nil {
				// Non-fatal: just use embedded defaults
				return defaults, nil
			}
			return defaults, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if err := validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func writeDefaults(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, _ := defaultConfigFS.ReadFile("default_config.yaml")
	return os.WriteFile(path, data, 0o644)
}

func validate(cfg *Config) error {
	if cfg.Hangman.MinLength < 0 || cfg.Hangman.MaxLength < 0 {
		return fmt.Errorf("hangman: word lengths must not be negative")
	}
	if cfg.Hangman.MinLength > 0 && cfg.Hangman.MaxLength > 0 &&
		cfg.Hangman.MinLength > cfg.Hangman.MaxLength {
		return fmt.Errorf("hangman: min_word_length %d exceeds max_word_length %d",
			cfg.Hangman.MinLength, cfg.Hangman.MaxLength)
	}
	for sym, price := range cfg.Stocks.FallbackPrices {
		if sym == "" {
			return fmt.Errorf("stocks: fallback price with empty symbol")
		}
		if price <= 0 {
			return fmt.Errorf("stocks: fallback price for %q must be positive, got %v", sym, price)
		}
	}
	return nil
}
