// Package transport executes HTTP exchanges against the ReadCircle API.
//
// It owns everything below the typed resource client: URL construction,
// bearer credential attachment, request identifiers, rate limiting, and
// normalization of non-2xx responses into the apierr taxonomy. The resource
// client depends on nothing more than the Get/Post/Put/Delete helpers.
package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/google/uuid"

	"github.com/readcircle/readcircle-go/apierr"
	"github.com/readcircle/readcircle-go/internal/logger"
	"github.com/readcircle/readcircle-go/internal/ratelimit"
)

const (
	defaultTimeout   = 30 * time.Second
	defaultRPS       = 10.0
	defaultBurst     = 20
	defaultUserAgent = "readcircle-go/1.0"
)

// TokenProvider supplies the bearer credential for outgoing requests. The
// second return value reports whether a credential is present; anonymous
// requests go out without an Authorization header.
type TokenProvider interface {
	Token() (string, bool)
}

// Config holds transport configuration.
type Config struct {
	// BaseURL is the API root, e.g. https://api.readcircle.example/v1.
	BaseURL string

	// Timeout bounds a single HTTP exchange. Zero selects the default.
	Timeout time.Duration

	// RPS and Burst configure the per-resource-class rate limiter. Zero
	// values select the defaults.
	RPS   float64
	Burst int

	// UserAgent overrides the default User-Agent header.
	UserAgent string
}

// Validate checks the configuration.
func (c Config) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.BaseURL, validation.Required, is.URL),
		validation.Field(&c.Timeout, validation.Min(time.Duration(0))),
	)
}

// Client is the rate-limited HTTP transport.
type Client struct {
	base      *url.URL
	http      *http.Client
	limiter   *ratelimit.KeyedLimiter
	tokens    TokenProvider
	userAgent string
	log       *slog.Logger
}

// New creates a transport. tokens may be nil for a client that never
// authenticates.
func New(cfg Config, tokens TokenProvider, log *slog.Logger) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	base, err := url.Parse(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	if cfg.RPS <= 0 {
		cfg.RPS = defaultRPS
	}
	if cfg.Burst <= 0 {
		cfg.Burst = defaultBurst
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = defaultUserAgent
	}
	if log == nil {
		log = logger.Nop()
	}

	return &Client{
		base:      base,
		http:      &http.Client{Timeout: cfg.Timeout},
		limiter:   ratelimit.New(cfg.RPS, cfg.Burst),
		tokens:    tokens,
		userAgent: cfg.UserAgent,
		log:       log,
	}, nil
}

// Get performs a GET request and decodes the response body into out.
func (c *Client) Get(ctx context.Context, path string, query url.Values, out any) error {
	return c.do(ctx, http.MethodGet, path, query, nil, out)
}

// Post performs a POST request with a JSON body, decoding the response into
// out when out is non-nil.
func (c *Client) Post(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, nil, body, out)
}

// Put performs a PUT request with a JSON body.
func (c *Client) Put(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPut, path, nil, body, out)
}

// Delete performs a DELETE request.
func (c *Client) Delete(ctx context.Context, path string) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil, nil)
}

// errorBody is the shape the backend uses for failure responses.
type errorBody struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	if err := c.limiter.Wait(ctx, limiterKey(path)); err != nil {
		return fmt.Errorf("rate limit wait: %w", err)
	}

	u := c.base.JoinPath(strings.TrimPrefix(path, "/"))
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return apierr.Internalf("encode request body: %v", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), reader)
	if err != nil {
		return apierr.Internalf("create request: %v", err)
	}

	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("X-Request-ID", requestID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.tokens != nil {
		if token, ok := c.tokens.Token(); ok && token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Debug("request failed",
			"method", method,
			"path", path,
			"request_id", requestID,
			"error", err,
		)
		return apierr.Network("request failed", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return apierr.Network("read response", err)
	}

	c.log.Debug("request",
		"method", method,
		"path", path,
		"status", resp.StatusCode,
		"duration", time.Since(start),
		"request_id", requestID,
	)

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		if out == nil || len(data) == 0 {
			return nil
		}
		if err := json.Unmarshal(data, out); err != nil {
			return apierr.Internalf("decode response: %v", err)
		}
		return nil
	}

	var remote errorBody
	_ = json.Unmarshal(data, &remote)
	message := remote.Message
	if message == "" {
		message = remote.Error
	}
	return apierr.FromStatus(resp.StatusCode, message)
}

// limiterKey buckets requests by their first path segment, so each resource
// class gets its own token bucket.
func limiterKey(path string) string {
	path = strings.TrimPrefix(path, "/")
	if i := strings.IndexByte(path, '/'); i > 0 {
		return path[:i]
	}
	if path == "" {
		return "root"
	}
	return path
}
