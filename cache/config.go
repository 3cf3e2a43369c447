package cache

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Config declares the staleness policy for the query cache: a default
// max-age plus per-resource-class overrides. Entries older than the max-age
// of their resource class are treated as stale on the next Get even without
// explicit invalidation.
type Config struct {
	// DefaultMaxAge applies to every resource class without an override.
	DefaultMaxAge time.Duration

	// MaxAge overrides the default per resource class, keyed by the resource
	// name used as the fingerprint's first segment.
	MaxAge map[string]time.Duration
}

// DefaultConfig returns the staleness policy used when nothing is configured:
// catalog data ages slowly, the feed ages fast.
func DefaultConfig() Config {
	return Config{
		DefaultMaxAge: 2 * time.Minute,
		MaxAge: map[string]time.Duration{
			"books":  10 * time.Minute,
			"feed":   30 * time.Second,
			"social": time.Minute,
		},
	}
}

// Validate checks whether the configuration values are usable.
func (c Config) Validate() error {
	if err := validation.ValidateStruct(&c,
		validation.Field(&c.DefaultMaxAge, validation.Required, validation.Min(time.Second)),
	); err != nil {
		return err
	}
	for resource, age := range c.MaxAge {
		if err := validation.Validate(age, validation.Required, validation.Min(time.Second)); err != nil {
			return validation.Errors{resource: err}
		}
	}
	return nil
}

// MaxAgeFor returns the max-age for a resource class.
func (c Config) MaxAgeFor(resource string) time.Duration {
	if age, ok := c.MaxAge[resource]; ok {
		return age
	}
	return c.DefaultMaxAge
}
