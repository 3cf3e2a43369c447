// Package cache defines the fingerprint-keyed query cache contract used to
// keep the local view of remote ReadCircle resources consistent.
//
// # Overview
//
// The package exports three pieces:
//
//   - Store: the entry-state cache interface. Each entry records the last
//     fetched value or the last fetch error, the fetch timestamp, and a
//     staleness flag.
//   - Fingerprint: builds deterministic cache keys from a resource name, an
//     operation, and the operation parameters.
//   - Config: the per-resource staleness policy (max-age).
//
// # Fingerprints
//
// A fingerprint identifies one specific query, e.g.
//
//	cache.Fingerprint("books", "list", filters)
//	// books::list::struct:{Search:dune,Page:1,...}
//
// Parameter serialization is deterministic: map keys are sorted, struct
// fields render in declaration order, pointers dereference. Two calls with
// equal parameters always share one cache entry, which is what makes the
// single-flight guarantee meaningful.
//
// The resource name is the first fingerprint segment, so invalidating a whole
// resource class is a prefix operation:
//
//	store.InvalidatePrefix(cache.Prefix("shelves"))
//
// # Read path
//
// The typed helper wraps Store.Get:
//
//	page, stale, err := cache.Get(ctx, store, key, maxAge, func(ctx context.Context) (client.Page[client.Book], error) {
//		return api.Books.List(ctx, filters)
//	})
//
// Concurrent calls for the same fingerprint while a fetch is in flight attach
// to that fetch instead of issuing another one. Stale entries are served
// immediately with stale=true while one background refresh runs
// (stale-while-revalidate). Entries holding a fetch error keep returning that
// error without retrying until invalidated or past max-age.
package cache
