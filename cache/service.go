package cache

import (
	"context"
	"errors"
	"time"
)

// ErrInvalidResultType is returned by the generic Get helper when a cached
// value does not match the requested type. It indicates that two different
// result types were cached under the same fingerprint.
var ErrInvalidResultType = errors.New("cache: result does not match requested type")

// Loader fetches the value for a fingerprint from the source of truth.
type Loader func(ctx context.Context) (any, error)

// FetchFn is the typed loader signature accepted by the generic Get helper.
type FetchFn[T any] func(ctx context.Context) (T, error)

// Store maps fingerprints to entries holding the last fetched value or the
// last fetch error. Implementations guarantee at most one in-flight fetch per
// fingerprint: concurrent Get calls for the same fingerprint share a single
// loader invocation.
type Store interface {
	// Get returns the entry value for the fingerprint. A missing entry
	// invokes the loader synchronously. An entry past maxAge or explicitly
	// invalidated is served stale (stale=true) while a single background
	// refresh is scheduled. An entry holding a fetch error returns that
	// error without re-invoking the loader; a fresh attempt requires
	// invalidation.
	Get(ctx context.Context, fingerprint string, maxAge time.Duration, loader Loader) (value any, stale bool, err error)

	// Peek returns the last-known value without triggering any fetch.
	Peek(fingerprint string) (any, bool)

	// Invalidate marks every entry whose fingerprint matches the predicate
	// as stale without dropping its last-known value. It returns the number
	// of entries marked.
	Invalidate(predicate func(fingerprint string) bool) int

	// InvalidatePrefix marks every entry whose fingerprint starts with the
	// prefix as stale.
	InvalidatePrefix(prefix string) int
}

// Get is the type-safe wrapper over Store.Get.
func Get[T any](ctx context.Context, s Store, fingerprint string, maxAge time.Duration, fetch FetchFn[T]) (T, bool, error) {
	value, stale, err := s.Get(ctx, fingerprint, maxAge, func(ctx context.Context) (any, error) {
		return fetch(ctx)
	})
	if err != nil {
		var zero T
		return zero, stale, err
	}
	if value == nil {
		var zero T
		return zero, stale, nil
	}
	typed, ok := value.(T)
	if !ok {
		var zero T
		return zero, stale, ErrInvalidResultType
	}
	return typed, stale, nil
}
