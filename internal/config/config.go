// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Defaults live in New; the domain packages receive every tunable explicitly.
// - Load layers defaults, an optional YAML file and PACETREND_ environment variables.
// - External errors are wrapped with this package's sentinel kinds.
package config

import (
	"github.com/okian/pacetrend/internal/domain/model"
)

// Config contains process configuration. Extend as needed.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects the log handler: text or json.
	LogFormat string `koanf:"log_format"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// MaxTopRuns caps GET /runs/top?limit and /runs/recent?limit.
	MaxTopRuns int `koanf:"max_top_runs"`

	// MaxIngestBatch caps the number of records accepted by one POST /activities.
	MaxIngestBatch int `koanf:"max_ingest_batch"`

	// MaxActivities bounds the activity store; <= 0 means unbounded.
	MaxActivities int `koanf:"max_activities"`

	// PaceWindow is the inclusive monthly plausibility window in min/km.
	PaceWindow model.PaceWindow `koanf:"pace_window"`

	// Categories are the personal-best distance categories, in display order.
	Categories []model.DistanceCategory `koanf:"categories"`

	// CSVPath optionally names a Strava CSV export imported at startup.
	CSVPath string `koanf:"csv_path"`

	// Strava configures the Strava API activity source.
	Strava Strava `koanf:"strava"`
}

// Strava holds Strava API client settings.
type Strava struct {
	Enabled      bool   `koanf:"enabled"`
	ClientID     string `koanf:"client_id"`
	ClientSecret string `koanf:"client_secret"`
	TokenFile    string `koanf:"token_file"`
	BaseURL      string `koanf:"base_url"`
	TokenURL     string `koanf:"token_url"`
	PerPage      int    `koanf:"per_page"`
}

// New creates a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:       "info",
		LogFormat:      "text",
		Addr:           ":9080",
		MaxTopRuns:     100,
		MaxIngestBatch: 5_000,
		MaxActivities:  0,
		PaceWindow:     model.PaceWindow{Min: 5, Max: 8},
		Categories: []model.DistanceCategory{
			{Label: "5K", MinKm: 4.5, MaxKm: 5.5},
			{Label: "10K", MinKm: 9.5, MaxKm: 10.5},
			{Label: "21K", MinKm: 20.5, MaxKm: 21.5},
		},
		Strava: Strava{
			TokenFile: "strava_tokens.json",
			BaseURL:   "https://www.strava.com/api/v3",
			TokenURL:  "https://www.strava.com/oauth/token",
			PerPage:   200,
		},
	}
}

// Validate checks the structural invariants of the configuration.
func (c *Config) Validate() error {
	if c.Addr == "" {
		return newInvalid("addr must not be empty")
	}
	if err := c.PaceWindow.Validate(); err != nil {
		return wrapInvalid(err)
	}
	if err := model.ValidateCategories(c.Categories); err != nil {
		return wrapInvalid(err)
	}
	if c.MaxTopRuns < 1 {
		return newInvalid("max_top_runs must be positive")
	}
	if c.MaxIngestBatch < 1 {
		return newInvalid("max_ingest_batch must be positive")
	}
	if c.Strava.Enabled {
		if c.Strava.TokenFile == "" {
			return newInvalid("strava.token_file must be set when strava is enabled")
		}
		if c.Strava.PerPage < 1 {
			return newInvalid("strava.per_page must be positive")
		}
	}
	return nil
}
