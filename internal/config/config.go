package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Scrape   ScrapeConfig `yaml:"scrape"`
	API      APIConfig    `yaml:"api"`
	Output   OutputConfig `yaml:"output"`
	LogLevel string       `yaml:"log_level"`
}

type ScrapeConfig struct {
	SearchTerms    []string      `yaml:"search_terms"`
	CountryCode    string        `yaml:"country_code"`
	PerTermLimit   int           `yaml:"per_term_limit"`
	ReviewCount    int           `yaml:"review_count"`
	MaxCandidates  int           `yaml:"max_candidates"`
	InterTermDelay time.Duration `yaml:"inter_term_delay"`
	InterAppDelay  time.Duration `yaml:"inter_app_delay"`
}

type APIConfig struct {
	BaseURL string        `yaml:"base_url"`
	Timeout time.Duration `yaml:"timeout"`
}

type OutputConfig struct {
	ReviewsFile string `yaml:"reviews_file"`
	AppInfoFile string `yaml:"app_info_file"`
}

// Load reads an optional yaml config file. An empty path, or a path
// that does not exist, yields the built-in defaults; the file only
// overrides them.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if !os.IsNotExist(err) {
				return nil, fmt.Errorf("read config file: %w", err)
			}
		} else {
			expanded := os.ExpandEnv(string(data))
			if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
				return nil, fmt.Errorf("parse config: %w", err)
			}
		}
	}

	cfg.setDefaults()

	return &cfg, nil
}

func (c *Config) setDefaults() {
	if len(c.Scrape.SearchTerms) == 0 {
		c.Scrape.SearchTerms = []string{
			"productivity app",
			"education app",
			"note taking app",
			"study tool",
			"learning game",
		}
	}
	if c.Scrape.CountryCode == "" {
		c.Scrape.CountryCode = "us"
	}
	if c.Scrape.PerTermLimit == 0 {
		c.Scrape.PerTermLimit = 20
	}
	if c.Scrape.ReviewCount == 0 {
		c.Scrape.ReviewCount = 100
	}
	if c.Scrape.MaxCandidates == 0 {
		c.Scrape.MaxCandidates = 30
	}
	if c.Scrape.InterTermDelay == 0 {
		c.Scrape.InterTermDelay = 2 * time.Second
	}
	if c.Scrape.InterAppDelay == 0 {
		c.Scrape.InterAppDelay = 7 * time.Second
	}
	if c.API.BaseURL == "" {
		c.API.BaseURL = "https://itunes.apple.com"
	}
	if c.API.Timeout == 0 {
		c.API.Timeout = 30 * time.Second
	}
	if c.Output.ReviewsFile == "" {
		c.Output.ReviewsFile = "app_reviews_productivity_education_from_search.csv"
	}
	if c.Output.AppInfoFile == "" {
		c.Output.AppInfoFile = "app_info_productivity_education_from_scratch.csv"
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
}
