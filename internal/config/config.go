// Package config loads process configuration from the environment, with an
// optional .env file for development. Every variable carries a READCIRCLE_
// prefix.
package config

import (
	"os"
	"strconv"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/joho/godotenv"
)

// Config holds the process settings.
type Config struct {
	// APIURL is the backend base URL, including any path prefix.
	APIURL string

	// Timeout bounds each HTTP exchange.
	Timeout time.Duration

	// RPS and Burst shape the per-resource request rate.
	RPS   float64
	Burst int

	// UserAgent identifies the client on the wire.
	UserAgent string

	// CredentialsPath overrides where the bearer token is persisted. Empty
	// selects the per-user default location.
	CredentialsPath string

	// CacheMaxAge overrides the default staleness max-age for cached
	// resources. Zero keeps the built-in per-resource policy.
	CacheMaxAge time.Duration

	// LogLevel and LogFormat configure the logger (debug|info|warn|error,
	// json|text).
	LogLevel  string
	LogFormat string
}

// Default returns the settings used when the environment sets nothing.
func Default() Config {
	return Config{
		APIURL:    "http://localhost:8000/api",
		Timeout:   15 * time.Second,
		RPS:       10,
		Burst:     20,
		UserAgent: "readcircle-go",
		LogLevel:  "info",
		LogFormat: "text",
	}
}

// Load reads the configuration from the environment on top of the defaults.
// A .env file in the working directory is applied first when present;
// variables already set in the environment win over the file.
func Load() (Config, error) {
	// godotenv returns an error for a missing file, which is the normal
	// production case.
	_ = godotenv.Load()

	cfg := Default()
	if v := os.Getenv("READCIRCLE_API_URL"); v != "" {
		cfg.APIURL = v
	}
	if v := os.Getenv("READCIRCLE_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, err
		}
		cfg.Timeout = d
	}
	if v := os.Getenv("READCIRCLE_RPS"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return Config{}, err
		}
		cfg.RPS = f
	}
	if v := os.Getenv("READCIRCLE_BURST"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return Config{}, err
		}
		cfg.Burst = n
	}
	if v := os.Getenv("READCIRCLE_USER_AGENT"); v != "" {
		cfg.UserAgent = v
	}
	if v := os.Getenv("READCIRCLE_CREDENTIALS_PATH"); v != "" {
		cfg.CredentialsPath = v
	}
	if v := os.Getenv("READCIRCLE_CACHE_MAX_AGE"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, err
		}
		cfg.CacheMaxAge = d
	}
	if v := os.Getenv("READCIRCLE_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("READCIRCLE_LOG_FORMAT"); v != "" {
		cfg.LogFormat = v
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks whether the settings are usable.
func (c Config) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.APIURL, validation.Required, is.URL),
		validation.Field(&c.Timeout, validation.Required, validation.Min(time.Second)),
		validation.Field(&c.RPS, validation.Required, validation.Min(0.1)),
		validation.Field(&c.Burst, validation.Required, validation.Min(1)),
		validation.Field(&c.UserAgent, validation.Required),
		validation.Field(&c.CacheMaxAge, validation.Min(time.Duration(0))),
		validation.Field(&c.LogLevel, validation.In("debug", "info", "warn", "error")),
		validation.Field(&c.LogFormat, validation.In("json", "text")),
	)
}
