// Package swrcache is a sturdyc-backed read-through cache for read-mostly
// resource classes (activity feed, follower/following lists).
//
// These resources never need error-state entries or the generation guard, so
// they use sturdyc directly and get its TTL handling, early refreshes
// (stale-while-revalidate), and native in-flight request deduplication.
// Mutable resource classes go through the entry-state store instead.
package swrcache

import (
	"context"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/viccon/sturdyc"

	"github.com/readcircle/readcircle-go/cache"
)

// Config holds the sturdyc cache configuration.
type Config struct {
	// Capacity is the maximum number of entries the cache can hold.
	Capacity int

	// NumShards is the number of cache shards for concurrent access.
	NumShards int

	// TTL is the time-to-live for cached entries.
	TTL time.Duration

	// EvictionPercentage is the share of entries evicted when the cache is
	// full, between 1 and 100.
	EvictionPercentage int

	// EarlyRefresh enables background refreshes of frequently read entries
	// before they expire. Nil disables early refreshes.
	EarlyRefresh *EarlyRefreshConfig
}

// EarlyRefreshConfig mirrors the sturdyc early refresh options.
type EarlyRefreshConfig struct {
	MinAsyncRefreshTime time.Duration
	MaxAsyncRefreshTime time.Duration
	SyncRefreshTime     time.Duration
	RetryBaseDelay      time.Duration
}

// DefaultConfig returns settings sized for feed-style data: a small cache
// with a short TTL and early refreshes so reads rarely block.
func DefaultConfig() Config {
	return Config{
		Capacity:           1000,
		NumShards:          16,
		TTL:                time.Minute,
		EvictionPercentage: 10,
		EarlyRefresh: &EarlyRefreshConfig{
			MinAsyncRefreshTime: 10 * time.Second,
			MaxAsyncRefreshTime: 20 * time.Second,
			SyncRefreshTime:     30 * time.Second,
			RetryBaseDelay:      100 * time.Millisecond,
		},
	}
}

// Validate checks whether the configuration values are valid.
func (c Config) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Capacity, validation.Required, validation.Min(1)),
		validation.Field(&c.NumShards, validation.Required, validation.Min(1)),
		validation.Field(&c.TTL, validation.Required, validation.Min(time.Millisecond)),
		validation.Field(&c.EvictionPercentage, validation.Required, validation.Min(1), validation.Max(100)),
	)
}

func (c Config) options() []sturdyc.Option {
	var opts []sturdyc.Option
	if c.EarlyRefresh != nil {
		opts = append(opts, sturdyc.WithEarlyRefreshes(
			c.EarlyRefresh.MinAsyncRefreshTime,
			c.EarlyRefresh.MaxAsyncRefreshTime,
			c.EarlyRefresh.SyncRefreshTime,
			c.EarlyRefresh.RetryBaseDelay,
		))
	}
	return opts
}

// Service wraps a sturdyc client.
type Service struct {
	client *sturdyc.Client[any]
}

// New constructs the cache from the configuration.
func New(cfg Config) (*Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	client := sturdyc.New[any](cfg.Capacity, cfg.NumShards, cfg.TTL, cfg.EvictionPercentage, cfg.options()...)
	return &Service{client: client}, nil
}

// GetOrFetch returns the cached value for the key, fetching it through fn on
// a miss. Concurrent calls for the same key share one fetch.
func (s *Service) GetOrFetch(ctx context.Context, key string, fn func(ctx context.Context) (any, error)) (any, error) {
	return s.client.GetOrFetch(ctx, key, fn)
}

// Delete removes one entry so the next read fetches fresh data.
func (s *Service) Delete(key string) {
	s.client.Delete(key)
}

// DeleteByPrefix removes every entry whose key starts with the prefix.
func (s *Service) DeleteByPrefix(prefix string) int {
	count := 0
	for _, key := range s.client.ScanKeys() {
		if strings.HasPrefix(key, prefix) {
			s.client.Delete(key)
			count++
		}
	}
	return count
}

// GetOrFetch is the type-safe wrapper over Service.GetOrFetch.
func GetOrFetch[T any](ctx context.Context, s *Service, key string, fn func(ctx context.Context) (T, error)) (T, error) {
	result, err := s.GetOrFetch(ctx, key, func(ctx context.Context) (any, error) {
		return fn(ctx)
	})
	if err != nil {
		var zero T
		return zero, err
	}
	if result == nil {
		var zero T
		return zero, nil
	}
	typed, ok := result.(T)
	if !ok {
		var zero T
		return zero, cache.ErrInvalidResultType
	}
	return typed, nil
}
