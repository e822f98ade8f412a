package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// LoadFile loads configuration defaults from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadFile(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// MergeWithDefaults returns a new Config with empty fields filled from
// defaults. Environment values win; the file only supplies what the
// environment left unset.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.ApolloAPIKey == "" {
		result.ApolloAPIKey = defaults.ApolloAPIKey
	}
	if result.ApolloBaseURL == "" {
		result.ApolloBaseURL = defaults.ApolloBaseURL
	}
	if result.DataPath == "" || result.DataPath == "event_data.json" {
		if defaults.DataPath != "" {
			result.DataPath = defaults.DataPath
		}
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}
	if len(result.SeniorityLevels) == 0 {
		result.SeniorityLevels = defaults.SeniorityLevels
	}

	// Bool fields: cannot distinguish unset from false, so environment
	// and file are ORed.
	result.UseBrowser = result.UseBrowser || defaults.UseBrowser

	return result
}
