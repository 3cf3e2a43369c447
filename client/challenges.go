package client

import (
	"context"
	"fmt"
	"net/url"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// CategoryProgress is one requirement bar: how many books the category
// requires and how many the participant has completed.
type CategoryProgress struct {
	Required  int `json:"required"`
	Completed int `json:"completed"`
}

// ReadingChallenge is a multi-category challenge. Requirements map a category
// name to a required book count; a book satisfies at most one category per
// challenge.
type ReadingChallenge struct {
	ID                int64                       `json:"id"`
	Title             string                      `json:"title"`
	Description       string                      `json:"description"`
	StartDate         string                      `json:"start_date"`
	EndDate           string                      `json:"end_date"`
	Requirements      map[string]int              `json:"requirements"`
	IsPublic          bool                        `json:"is_public"`
	ParticipantsCount int                         `json:"participants_count"`
	Books             []Book                      `json:"books,omitempty"`
	Progress          map[string]CategoryProgress `json:"progress,omitempty"`
	CreatedAt         string                      `json:"created_at"`
	UpdatedAt         string                      `json:"updated_at"`
}

// ChallengeFilters narrows the challenge listing.
type ChallengeFilters struct {
	ActiveOnly bool
	Featured   bool
}

func (f ChallengeFilters) query() url.Values {
	q := url.Values{}
	if f.ActiveOnly {
		q.Set("active_only", "true")
	}
	if f.Featured {
		q.Set("featured", "true")
	}
	return q
}

// ChallengeParams is the payload for creating or updating a challenge. The
// backend enforces start_date <= end_date.
type ChallengeParams struct {
	Title        string         `json:"title"`
	Description  string         `json:"description,omitempty"`
	StartDate    string         `json:"start_date"`
	EndDate      string         `json:"end_date"`
	Requirements map[string]int `json:"requirements"`
	IsPublic     bool           `json:"is_public"`
}

// Validate checks the payload before it goes on the wire.
func (p ChallengeParams) Validate() error {
	if err := validation.ValidateStruct(&p,
		validation.Field(&p.Title, validation.Required, validation.Length(1, 300)),
		validation.Field(&p.StartDate, validation.Required),
		validation.Field(&p.EndDate, validation.Required),
		validation.Field(&p.Requirements, validation.Required),
	); err != nil {
		return err
	}
	for category, count := range p.Requirements {
		if count < 1 {
			return validation.Errors{category: fmt.Errorf("required count must be at least 1")}
		}
	}
	return nil
}

// ChallengesService covers /reading-challenges.
type ChallengesService struct {
	d Doer
}

// List returns challenges matching the filters.
func (s *ChallengesService) List(ctx context.Context, filters ChallengeFilters) ([]ReadingChallenge, error) {
	var challenges []ReadingChallenge
	err := s.d.Get(ctx, "/reading-challenges", filters.query(), &challenges)
	return challenges, err
}

// Get returns one challenge with its books and per-category progress.
func (s *ChallengesService) Get(ctx context.Context, id int64) (ReadingChallenge, error) {
	var challenge ReadingChallenge
	err := s.d.Get(ctx, fmt.Sprintf("/reading-challenges/%d", id), nil, &challenge)
	return challenge, err
}

// Create adds a challenge.
func (s *ChallengesService) Create(ctx context.Context, params ChallengeParams) (ReadingChallenge, error) {
	var challenge ReadingChallenge
	if err := params.Validate(); err != nil {
		return challenge, err
	}
	err := s.d.Post(ctx, "/reading-challenges", params, &challenge)
	return challenge, err
}

// Update edits a challenge.
func (s *ChallengesService) Update(ctx context.Context, id int64, params ChallengeParams) (ReadingChallenge, error) {
	var challenge ReadingChallenge
	if err := params.Validate(); err != nil {
		return challenge, err
	}
	err := s.d.Put(ctx, fmt.Sprintf("/reading-challenges/%d", id), params, &challenge)
	return challenge, err
}

// Join enrolls the caller as a participant.
func (s *ChallengesService) Join(ctx context.Context, id int64) error {
	return s.d.Post(ctx, fmt.Sprintf("/reading-challenges/%d/join", id), nil, nil)
}

// AddBook binds a book to exactly one requirement category of the challenge.
func (s *ChallengesService) AddBook(ctx context.Context, challengeID, bookID int64, requirementKey string) error {
	body := map[string]string{"requirement_key": requirementKey}
	return s.d.Post(ctx, fmt.Sprintf("/reading-challenges/%d/books/%d", challengeID, bookID), body, nil)
}

// RemoveBook unbinds a book from the challenge.
func (s *ChallengesService) RemoveBook(ctx context.Context, challengeID, bookID int64) error {
	return s.d.Delete(ctx, fmt.Sprintf("/reading-challenges/%d/books/%d", challengeID, bookID))
}

// Mine returns the challenges the caller participates in.
func (s *ChallengesService) Mine(ctx context.Context) ([]ReadingChallenge, error) {
	var challenges []ReadingChallenge
	err := s.d.Get(ctx, "/user/reading-challenges", nil, &challenges)
	return challenges, err
}
