// Package cachestore implements the entry-state query cache behind the
// cache.Store interface.
//
// Every entry records the last fetched value or the last fetch error, the
// fetch timestamp, a staleness flag, and a generation counter. One mutex
// guards the whole entry map; loaders run outside the lock and re-acquire it
// to land their result. A result only lands if the entry generation has not
// moved since the fetch started, so a late response from a superseded fetch
// can never overwrite newer data.
package cachestore

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/readcircle/readcircle-go/cache"
	"github.com/readcircle/readcircle-go/internal/logger"
)

// Store is the concrete cache.Store implementation.
type Store struct {
	mu      sync.Mutex
	entries map[string]*entry
	log     *slog.Logger
	now     func() time.Time
}

var _ cache.Store = (*Store)(nil)

type entry struct {
	value     any
	err       error
	hasValue  bool
	hasErr    bool
	fetchedAt time.Time
	stale     bool
	gen       uint64
	inflight  *flight
}

// flight carries one loader invocation shared by every Get that attached to
// it while it was in flight.
type flight struct {
	done  chan struct{}
	value any
	err   error
}

// New creates an empty store.
func New(log *slog.Logger) *Store {
	if log == nil {
		log = logger.Nop()
	}
	return &Store{
		entries: make(map[string]*entry),
		log:     log,
		now:     time.Now,
	}
}

// Get implements cache.Store.Get.
func (s *Store) Get(ctx context.Context, fingerprint string, maxAge time.Duration, loader cache.Loader) (any, bool, error) {
	s.mu.Lock()

	e, ok := s.entries[fingerprint]
	if !ok {
		e = &entry{}
		s.entries[fingerprint] = e
	}

	if s.fresh(e, maxAge) {
		if e.hasErr {
			err := e.err
			s.mu.Unlock()
			return nil, false, err
		}
		value := e.value
		s.mu.Unlock()
		return value, false, nil
	}

	// Stale but with a last-known value: serve it immediately and let a
	// single background refresh bring the entry up to date.
	if e.hasValue {
		if e.inflight == nil {
			f := s.startFlight(e)
			gen := e.gen
			go s.run(context.WithoutCancel(ctx), fingerprint, f, gen, loader)
		}
		value := e.value
		s.mu.Unlock()
		return value, true, nil
	}

	// Nothing to serve. Attach to an in-flight fetch if one exists.
	if e.inflight != nil {
		f := e.inflight
		s.mu.Unlock()
		select {
		case <-f.done:
			return f.value, false, f.err
		case <-ctx.Done():
			return nil, false, ctx.Err()
		}
	}

	f := s.startFlight(e)
	gen := e.gen
	s.mu.Unlock()

	s.run(ctx, fingerprint, f, gen, loader)
	return f.value, false, f.err
}

// Peek implements cache.Store.Peek.
func (s *Store) Peek(fingerprint string) (any, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if e, ok := s.entries[fingerprint]; ok && e.hasValue {
		return e.value, true
	}
	return nil, false
}

// Invalidate implements cache.Store.Invalidate. Matching entries keep their
// last-known value but are marked stale, and their generation is bumped so
// any in-flight fetch result is discarded on landing.
func (s *Store) Invalidate(predicate func(fingerprint string) bool) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	count := 0
	for fingerprint, e := range s.entries {
		if !predicate(fingerprint) {
			continue
		}
		if !e.hasValue && !e.hasErr && e.inflight == nil {
			continue
		}
		e.stale = true
		e.gen++
		count++
	}
	return count
}

// InvalidatePrefix implements cache.Store.InvalidatePrefix.
func (s *Store) InvalidatePrefix(prefix string) int {
	return s.Invalidate(func(fingerprint string) bool {
		return strings.HasPrefix(fingerprint, prefix)
	})
}

// fresh reports whether the entry can be served as-is.
func (s *Store) fresh(e *entry, maxAge time.Duration) bool {
	if e.stale || (!e.hasValue && !e.hasErr) {
		return false
	}
	return s.now().Sub(e.fetchedAt) < maxAge
}

// startFlight must be called with the lock held.
func (s *Store) startFlight(e *entry) *flight {
	f := &flight{done: make(chan struct{})}
	e.inflight = f
	return f
}

// run executes the loader and lands its result. Joiners read the result from
// the flight; the entry is only updated when its generation still matches the
// one captured at fetch start.
func (s *Store) run(ctx context.Context, fingerprint string, f *flight, gen uint64, loader cache.Loader) {
	value, err := loader(ctx)
	f.value, f.err = value, err

	abandoned := err != nil && (errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded))

	s.mu.Lock()
	if e, ok := s.entries[fingerprint]; ok {
		if e.inflight == f {
			e.inflight = nil
		}
		switch {
		case e.gen != gen:
			// Superseded while in flight. The caller still gets the loader
			// result; the cache does not.
			s.log.Debug("discarding superseded fetch result", "fingerprint", fingerprint)
		case abandoned:
			// Caller walked away; the entry state is unchanged.
		case err != nil:
			e.err, e.hasErr = err, true
			e.fetchedAt = s.now()
			e.stale = false
			s.log.Debug("cached fetch error", "fingerprint", fingerprint, "error", err)
		default:
			e.value, e.hasValue = value, true
			e.err, e.hasErr = nil, false
			e.fetchedAt = s.now()
			e.stale = false
		}
	}
	s.mu.Unlock()

	close(f.done)
}
