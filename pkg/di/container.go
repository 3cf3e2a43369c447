// Package di wires the full client stack: configuration, logging, credential
// storage, the authenticated transport, the typed resource client, both
// caches, the cached client, and the session holder. It manages singleton
// instances with a defined lifecycle so tests can build isolated stacks.
package di

import (
	"log/slog"
	"os"

	"github.com/readcircle/readcircle-go/cache"
	"github.com/readcircle/readcircle-go/client"
	"github.com/readcircle/readcircle-go/internal/cachestore"
	"github.com/readcircle/readcircle-go/internal/config"
	"github.com/readcircle/readcircle-go/internal/credstore"
	"github.com/readcircle/readcircle-go/internal/logger"
	"github.com/readcircle/readcircle-go/internal/swrcache"
	"github.com/readcircle/readcircle-go/internal/transport"
	"github.com/readcircle/readcircle-go/resourcecache"
	"github.com/readcircle/readcircle-go/session"
)

// Container holds singleton instances of every component in the stack.
type Container struct {
	cfg       config.Config
	log       *slog.Logger
	api       *client.Client
	resources *resourcecache.Service
	session   *session.Holder
}

// Option customizes container construction.
type Option func(*options)

type options struct {
	cacheCfg *cache.Config
	swrCfg   *swrcache.Config
	creds    session.CredentialStore
	log      *slog.Logger
}

// WithCacheConfig overrides the staleness policy for the query cache.
func WithCacheConfig(cfg cache.Config) Option {
	return func(o *options) { o.cacheCfg = &cfg }
}

// WithSWRConfig overrides the read-mostly cache configuration.
func WithSWRConfig(cfg swrcache.Config) Option {
	return func(o *options) { o.swrCfg = &cfg }
}

// WithCredentialStore substitutes the credential persistence, for tests or
// non-file storage.
func WithCredentialStore(store session.CredentialStore) Option {
	return func(o *options) { o.creds = store }
}

// WithLogger substitutes the logger.
func WithLogger(log *slog.Logger) Option {
	return func(o *options) { o.log = log }
}

// New builds the stack from the given configuration.
func New(cfg config.Config, opts ...Option) (*Container, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var o options
	for _, opt := range opts {
		opt(&o)
	}

	log := o.log
	if log == nil {
		log = logger.New(logger.Config{
			Writer: os.Stderr,
			Format: cfg.LogFormat,
			Level:  logger.ParseLevel(cfg.LogLevel),
		})
	}

	creds := o.creds
	if creds == nil {
		path := cfg.CredentialsPath
		if path == "" {
			var err error
			path, err = credstore.DefaultPath()
			if err != nil {
				return nil, err
			}
		}
		creds = credstore.New(path)
	}

	cell := &session.TokenCell{}
	httpClient, err := transport.New(transport.Config{
		BaseURL:   cfg.APIURL,
		Timeout:   cfg.Timeout,
		RPS:       cfg.RPS,
		Burst:     cfg.Burst,
		UserAgent: cfg.UserAgent,
	}, cell, log)
	if err != nil {
		return nil, err
	}

	api := client.New(httpClient)

	cacheCfg := cache.DefaultConfig()
	if cfg.CacheMaxAge > 0 {
		cacheCfg.DefaultMaxAge = cfg.CacheMaxAge
	}
	if o.cacheCfg != nil {
		cacheCfg = *o.cacheCfg
	}
	swrCfg := swrcache.DefaultConfig()
	if o.swrCfg != nil {
		swrCfg = *o.swrCfg
	}

	swr, err := swrcache.New(swrCfg)
	if err != nil {
		return nil, err
	}

	resources, err := resourcecache.New(api, cachestore.New(log), swr, cacheCfg, log)
	if err != nil {
		return nil, err
	}

	return &Container{
		cfg:       cfg,
		log:       log,
		api:       api,
		resources: resources,
		session:   session.New(api.Auth, creds, cell, log),
	}, nil
}

// NewFromEnv builds the stack from the process environment.
func NewFromEnv(opts ...Option) (*Container, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	return New(cfg, opts...)
}

// Config returns a copy of the configuration the container was built from.
func (c *Container) Config() config.Config {
	return c.cfg
}

// Logger returns the shared logger.
func (c *Container) Logger() *slog.Logger {
	return c.log
}

// API returns the uncached resource client, for callers that must bypass the
// cache.
func (c *Container) API() *client.Client {
	return c.api
}

// Resources returns the cached resource client.
func (c *Container) Resources() *resourcecache.Service {
	return c.resources
}

// Session returns the identity holder.
func (c *Container) Session() *session.Holder {
	return c.session
}
