// Package client provides the typed ReadCircle resource client: one method
// per (resource, operation) pair, each performing exactly one HTTP exchange
// through the transport and returning the parsed body typed to the resource's
// shape. This layer never touches the cache and never retries.
package client

import (
	"context"
	"net/url"
)

// Doer is the transport surface the resource client depends on. Non-2xx
// responses arrive as *apierr.Error; transport failures as network errors.
type Doer interface {
	Get(ctx context.Context, path string, query url.Values, out any) error
	Post(ctx context.Context, path string, body, out any) error
	Put(ctx context.Context, path string, body, out any) error
	Delete(ctx context.Context, path string) error
}

// Client groups the per-resource services.
type Client struct {
	Books      *BooksService
	Shelves    *ShelvesService
	Goals      *GoalsService
	Challenges *ChallengesService
	Reviews    *ReviewsService
	Progress   *ProgressService
	Social     *SocialService
	Auth       *AuthService
}

// New creates a resource client on top of the transport.
func New(d Doer) *Client {
	return &Client{
		Books:      &BooksService{d: d},
		Shelves:    &ShelvesService{d: d},
		Goals:      &GoalsService{d: d},
		Challenges: &ChallengesService{d: d},
		Reviews:    &ReviewsService{d: d},
		Progress:   &ProgressService{d: d},
		Social:     &SocialService{d: d},
		Auth:       &AuthService{d: d},
	}
}

// PageMeta is the pagination envelope returned by list endpoints.
// current_page never exceeds last_page; total is the sum of all page sizes.
type PageMeta struct {
	CurrentPage int `json:"current_page"`
	LastPage    int `json:"last_page"`
	PerPage     int `json:"per_page"`
	Total       int `json:"total"`
}

// Page is a paginated response.
type Page[T any] struct {
	Data []T      `json:"data"`
	Meta PageMeta `json:"meta"`
}
