// Package config provides configuration loading and validation for the tracker.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
)

// Config holds the runtime configuration. Values come from the
// environment (optionally seeded by a .env file), with an optional JSON
// config file supplying defaults for anything left unset.
type Config struct {
	// ApolloAPIKey authenticates contact-search and sequence calls.
	ApolloAPIKey string `env:"APOLLO_API_KEY" json:"apollo_api_key,omitempty" validate:"required"`
	// ApolloBaseURL overrides the API endpoint, mainly for tests.
	ApolloBaseURL string `env:"APOLLO_BASE_URL" json:"apollo_base_url,omitempty" validate:"omitempty,url"`
	// DataPath is the snapshot file location for the file backend.
	DataPath string `env:"EVENT_DATA_PATH" envDefault:"event_data.json" json:"data_path,omitempty"`
	// DatabaseURL, when set, selects the PostgreSQL snapshot backend.
	DatabaseURL string `env:"DATABASE_URL" json:"database_url,omitempty"`
	// SearchDelay is the minimum pause between contact searches.
	SearchDelay time.Duration `env:"SEARCH_DELAY" envDefault:"1s" json:"-"`
	// SeniorityLevels filter contact searches.
	SeniorityLevels []string `env:"SENIORITY_LEVELS" envSeparator:"," json:"seniority_levels,omitempty"`
	// UseBrowser enables headless-browser rendering for SPA event pages.
	UseBrowser bool `env:"USE_BROWSER" json:"use_browser,omitempty"`
	// FetchTimeout bounds event page fetches.
	FetchTimeout time.Duration `env:"FETCH_TIMEOUT" envDefault:"30s" json:"-"`
}

var validate = validator.New()

// FromEnv parses the configuration from environment variables.
func FromEnv() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}
	return &cfg, nil
}

// Validate checks that the configuration has valid values.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	if c.SearchDelay < 0 {
		return fmt.Errorf("config error: 'search_delay' must be non-negative")
	}
	if c.FetchTimeout <= 0 {
		return fmt.Errorf("config error: 'fetch_timeout' must be positive")
	}
	return nil
}
