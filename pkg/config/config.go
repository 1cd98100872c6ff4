package config

import (
	"fmt"
	"math"
	"os"
	"time"

	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

var validate = validator.New()

// LeaderConfig is one bellwether ticker entry in the sector registry.
type LeaderConfig struct {
	Ticker  string   `yaml:"ticker" validate:"required"`
	Name    string   `yaml:"name" validate:"required"`
	Aliases []string `yaml:"aliases"`
}

// SectorConfig is one sector entry in the registry.
type SectorConfig struct {
	Name    string         `yaml:"name" validate:"required"`
	Leaders []LeaderConfig `yaml:"leaders" validate:"min=1,dive"`
}

type Config struct {
	Environment string `yaml:"environment" default:"development"`
	Logging     struct {
		Level  string `yaml:"level" default:"info" validate:"oneof=trace debug info warn error fatal panic"`
		Format string `yaml:"format" default:"console" validate:"oneof=console json"`
		Output string `yaml:"output" default:"stderr"`
	} `yaml:"logging"`
	Provider struct {
		ChartBaseURL   string        `yaml:"chart_base_url" default:"https://query1.finance.yahoo.com" validate:"url"`
		UserAgent      string        `yaml:"user_agent" default:"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"`
		Timeout        time.Duration `yaml:"timeout" default:"15s"`
		MaxConcurrency int           `yaml:"max_concurrency" default:"4" validate:"min=1,max=32"`
	} `yaml:"provider"`
	Analysis struct {
		Start            string        `yaml:"start" default:"2023-01-31"`
		End              string        `yaml:"end" default:"2025-06-30"`
		NewsPath         string        `yaml:"news_path" default:"news_dumps.json"`
		OutputDir        string        `yaml:"output_dir"`
		GrowthWeight     float64       `yaml:"growth_weight" default:"0.7" validate:"min=0,max=1"`
		SentimentWeight  float64       `yaml:"sentiment_weight" default:"0.3" validate:"min=0,max=1"`
		RecencyHalfLife  time.Duration `yaml:"recency_half_life" default:"4320h"` // 180 days
		MinRecencyWeight float64       `yaml:"min_recency_weight" default:"0.1" validate:"min=0,max=1"`
		NeutralScore     float64       `yaml:"neutral_score" default:"0.5" validate:"min=0,max=1"`
	} `yaml:"analysis"`
	// Sectors overrides the built-in registry when non-empty.
	Sectors []SectorConfig `yaml:"sectors" validate:"dive"`
}

// Load reads and parses a YAML configuration file, applies defaults and
// validates the result. A missing file yields the pure-defaults config.
func Load(path string) (*Config, error) {
	var c Config

	b, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(b, &c); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	case os.IsNotExist(err):
		// run on defaults
	default:
		return nil, fmt.Errorf("read config: %w", err)
	}

	if err := defaults.Set(&c); err != nil {
		return nil, fmt.Errorf("apply defaults: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return &c, nil
}

// LoadWithEnv loads config from YAML and overrides with environment variables.
func LoadWithEnv(path string) (*Config, error) {
	c, err := Load(path)
	if err != nil {
		return nil, err
	}

	if v := os.Getenv("NEWS_PATH"); v != "" {
		c.Analysis.NewsPath = v
	}
	if v := os.Getenv("OUTPUT_DIR"); v != "" {
		c.Analysis.OutputDir = v
	}
	if v := os.Getenv("ANALYSIS_START"); v != "" {
		c.Analysis.Start = v
	}
	if v := os.Getenv("ANALYSIS_END"); v != "" {
		c.Analysis.End = v
	}

	return c, nil
}

// Validate checks structural tags plus the cross-field rules the tags
// cannot express.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return err
	}
	if math.Abs(c.Analysis.GrowthWeight+c.Analysis.SentimentWeight-1) > 1e-9 {
		return fmt.Errorf("growth_weight and sentiment_weight must sum to 1")
	}
	start, err := c.StartDate()
	if err != nil {
		return err
	}
	end, err := c.EndDate()
	if err != nil {
		return err
	}
	if !end.After(start) {
		return fmt.Errorf("analysis.end must be after analysis.start")
	}
	return nil
}

// StartDate parses the configured start of the analysis window.
func (c *Config) StartDate() (time.Time, error) {
	t, err := time.Parse("2006-01-02", c.Analysis.Start)
	if err != nil {
		return time.Time{}, fmt.Errorf("analysis.start: %w", err)
	}
	return t, nil
}

// EndDate parses the configured end of the analysis window.
func (c *Config) EndDate() (time.Time, error) {
	t, err := time.Parse("2006-01-02", c.Analysis.End)
	if err != nil {
		return time.Time{}, fmt.Errorf("analysis.end: %w", err)
	}
	return t, nil
}
