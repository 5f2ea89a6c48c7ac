package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"time"

	"books-scraper/pricerange"

	"gopkg.in/yaml.v3"
)

// Config holds everything a scraping run needs
type Config struct {
	BaseURL   string        `yaml:"base_url"`
	Pages     int           `yaml:"pages"`
	Delay     time.Duration `yaml:"delay"`   // Pause between page requests
	Timeout   time.Duration `yaml:"timeout"` // Per-request timeout
	UserAgent string        `yaml:"user_agent"`
	Fetcher   string        `yaml:"fetcher"` // "colly" or "rod"
	Parser    string        `yaml:"parser"`  // "goquery" or "htmlquery"

	Filters pricerange.Range `yaml:"filters"`

	Output struct {
		RawFile      string `yaml:"raw_file"`
		FilteredFile string `yaml:"filtered_file"`
	} `yaml:"output"`
}

// Backends accepted in the config file
var (
	fetcherBackends = map[string]bool{"colly": true, "rod": true}
	parserBackends  = map[string]bool{"goquery": true, "htmlquery": true}
)

// GetDefaultConfig returns a default configuration
func GetDefaultConfig() *Config {
	cfg := &Config{
		BaseURL:   "http://books.toscrape.com",
		Pages:     3,
		Delay:     time.Second,
		Timeout:   10 * time.Second,
		UserAgent: "Mozilla/5.0 (Educational Purpose Book Scraper)",
		Fetcher:   "colly",
		Parser:    "goquery",
		Filters:   pricerange.Default(),
	}
	cfg.Output.RawFile = "books_raw.csv"
	cfg.Output.FilteredFile = "books_filtered.csv"
	return cfg
}

// LoadConfig loads configuration from a YAML file on top of the defaults.
// A missing file is not an error; the defaults are returned instead.
func LoadConfig(path string) (*Config, error) {
	cfg := GetDefaultConfig()

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		log.Printf("Config file %s not found, using defaults\n", path)
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return cfg, nil
}

// Validate reports the first setting that would make a run impossible
func (c *Config) Validate() error {
	if c.BaseURL == "" {
		return errors.New("base_url must be set")
	}
	if c.Pages < 1 {
		return fmt.Errorf("pages must be at least 1, got %d", c.Pages)
	}
	if c.Delay < 0 {
		return fmt.Errorf("delay must not be negative, got %s", c.Delay)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %s", c.Timeout)
	}
	if !fetcherBackends[c.Fetcher] {
		return fmt.Errorf("unknown fetcher %q", c.Fetcher)
	}
	if !parserBackends[c.Parser] {
		return fmt.Errorf("unknown parser %q", c.Parser)
	}
	if err := c.Filters.Validate(); err != nil {
		return fmt.Errorf("invalid filters: %w", err)
	}
	return nil
}
