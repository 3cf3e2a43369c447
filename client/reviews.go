package client

import (
	"context"
	"fmt"
	"net/url"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Review is a user's rating and write-up for a book.
type Review struct {
	ID               int64  `json:"id"`
	Book             Book   `json:"book"`
	Rating           int    `json:"rating"`
	Review           string `json:"review"`
	ContainsSpoilers bool   `json:"contains_spoilers"`
	CreatedAt        string `json:"created_at"`
	UpdatedAt        string `json:"updated_at"`
}

// ReviewParams is the payload for creating or updating a review.
type ReviewParams struct {
	Rating           int    `json:"rating"`
	Review           string `json:"review"`
	ContainsSpoilers bool   `json:"contains_spoilers"`
}

// Validate checks the payload before it goes on the wire.
func (p ReviewParams) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.Rating, validation.Required, validation.Min(1), validation.Max(5)),
	)
}

// ReviewsService covers /books/:id/reviews.
type ReviewsService struct {
	d Doer
}

// ListForBook returns the reviews of one book. Spoiler-marked reviews are
// only included on request.
func (s *ReviewsService) ListForBook(ctx context.Context, bookID int64, includeSpoilers bool) ([]Review, error) {
	q := url.Values{}
	if includeSpoilers {
		q.Set("spoilers", "true")
	}
	var reviews []Review
	err := s.d.Get(ctx, fmt.Sprintf("/books/%d/reviews", bookID), q, &reviews)
	return reviews, err
}

// Create adds the caller's review of a book.
func (s *ReviewsService) Create(ctx context.Context, bookID int64, params ReviewParams) (Review, error) {
	var review Review
	if err := params.Validate(); err != nil {
		return review, err
	}
	err := s.d.Post(ctx, fmt.Sprintf("/books/%d/reviews", bookID), params, &review)
	return review, err
}

// Update edits a review.
func (s *ReviewsService) Update(ctx context.Context, bookID, reviewID int64, params ReviewParams) (Review, error) {
	var review Review
	if err := params.Validate(); err != nil {
		return review, err
	}
	err := s.d.Put(ctx, fmt.Sprintf("/books/%d/reviews/%d", bookID, reviewID), params, &review)
	return review, err
}

// Delete removes a review.
func (s *ReviewsService) Delete(ctx context.Context, bookID, reviewID int64) error {
	return s.d.Delete(ctx, fmt.Sprintf("/books/%d/reviews/%d", bookID, reviewID))
}

// Mine returns the caller's reviews across books.
func (s *ReviewsService) Mine(ctx context.Context) ([]Review, error) {
	var reviews []Review
	err := s.d.Get(ctx, "/user/reviews", nil, &reviews)
	return reviews, err
}
