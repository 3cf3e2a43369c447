package resourcecache

import (
	"log/slog"

	"github.com/readcircle/readcircle-go/cache"
	"github.com/readcircle/readcircle-go/client"
	"github.com/readcircle/readcircle-go/internal/swrcache"
)

// Resource class names, used as the first fingerprint segment and as the
// invalidation granularity.
const (
	resourceBooks      = "books"
	resourceShelves    = "shelves"
	resourceGoals      = "goals"
	resourceChallenges = "challenges"
	resourceReviews    = "reviews"
	resourceProgress   = "progress"
	resourceFeed       = "feed"
	resourceSocial     = "social"
)

// Service is the cached resource client. Read methods return the cached
// value plus a stale flag; mutation methods write through and invalidate the
// dependent fingerprints on success.
type Service struct {
	api   *client.Client
	store cache.Store
	swr   *swrcache.Service
	cfg   cache.Config
	log   *slog.Logger
}

// New builds the cached client on top of the raw resource client.
func New(api *client.Client, store cache.Store, swr *swrcache.Service, cfg cache.Config, log *slog.Logger) (*Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if log == nil {
		log = slog.Default()
	}
	return &Service{
		api:   api,
		store: store,
		swr:   swr,
		cfg:   cfg,
		log:   log,
	}, nil
}

// invalidate marks every entry of the named resource classes stale. Values
// stay in place so readers keep rendering them while refreshes run.
func (s *Service) invalidate(resources ...string) {
	for _, resource := range resources {
		switch resource {
		case resourceFeed, resourceSocial:
			n := s.swr.DeleteByPrefix(cache.Prefix(resource))
			s.log.Debug("cache invalidated", "resource", resource, "entries", n)
		default:
			n := s.store.InvalidatePrefix(cache.Prefix(resource))
			s.log.Debug("cache invalidated", "resource", resource, "entries", n)
		}
	}
}
