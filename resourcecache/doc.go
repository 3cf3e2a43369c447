// Package resourcecache decorates the resource client with the query cache
// and the mutation coordinator.
//
// Reads go through the entry-state store under a (resource, operation,
// params) fingerprint: cached values are served until the resource class's
// max-age elapses, concurrent reads of one fingerprint share a single fetch,
// and invalidated entries are served stale while a refresh runs. Read-mostly
// social resources (the feed, follower lists, user activities) go through
// the sturdyc cache instead.
//
// Writes pass through to the resource client and, on success only, mark
// every dependent fingerprint stale. Each mutation declares its own
// invalidation set; a failed mutation touches nothing, so the cache never
// reflects a write the backend rejected. Mutations are not serialized
// against each other: two writes to the same entity race on the backend and
// the backend's ordering wins.
package resourcecache
