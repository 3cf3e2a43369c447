// Package ratelimit provides a keyed token-bucket rate limiter for outbound
// API calls. Each key (one per resource class) gets its own independent
// limiter so a burst of catalog reads cannot starve mutations.
package ratelimit

import (
	"context"

	"github.com/puzpuzpuz/xsync/v3"
	"golang.org/x/time/rate"
)

// KeyedLimiter manages per-key rate limiting.
type KeyedLimiter struct {
	limiters *xsync.MapOf[string, *rate.Limiter]
	limit    rate.Limit
	burst    int
}

// New creates a keyed limiter allowing rps requests per second with the given
// burst per key.
func New(rps float64, burst int) *KeyedLimiter {
	return &KeyedLimiter{
		limiters: xsync.NewMapOf[string, *rate.Limiter](),
		limit:    rate.Limit(rps),
		burst:    burst,
	}
}

// Allow reports whether a request for the key may proceed right now.
func (k *KeyedLimiter) Allow(key string) bool {
	return k.limiter(key).Allow()
}

// Wait blocks until a request for the key is allowed or the context ends.
func (k *KeyedLimiter) Wait(ctx context.Context, key string) error {
	return k.limiter(key).Wait(ctx)
}

func (k *KeyedLimiter) limiter(key string) *rate.Limiter {
	limiter, _ := k.limiters.LoadOrCompute(key, func() *rate.Limiter {
		return rate.NewLimiter(k.limit, k.burst)
	})
	return limiter
}
