package client

import (
	"context"
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// ReadingGoal is a yearly target. The backend enforces one goal per
// (user, year) and derives the read counts and progress percentage.
type ReadingGoal struct {
	ID                 int64   `json:"id"`
	Year               int     `json:"year"`
	TargetBooks        int     `json:"target_books"`
	TargetPages        int     `json:"target_pages"`
	BooksRead          int     `json:"books_read"`
	PagesRead          int     `json:"pages_read"`
	ProgressPercentage float64 `json:"progress_percentage"`
	CreatedAt          string  `json:"created_at"`
	UpdatedAt          string  `json:"updated_at"`
}

// CreateGoalParams is the payload for creating a goal.
type CreateGoalParams struct {
	Year        int `json:"year"`
	TargetBooks int `json:"target_books"`
	TargetPages int `json:"target_pages"`
}

// Validate checks the payload before it goes on the wire.
func (p CreateGoalParams) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.Year, validation.Required, validation.Min(1900), validation.Max(2200)),
		validation.Field(&p.TargetBooks, validation.Min(0)),
		validation.Field(&p.TargetPages, validation.Min(0)),
	)
}

// UpdateGoalParams is the payload for updating a goal's targets.
type UpdateGoalParams struct {
	TargetBooks int `json:"target_books"`
	TargetPages int `json:"target_pages"`
}

// GoalsService covers /reading-goals.
type GoalsService struct {
	d Doer
}

// List returns the caller's goals across years.
func (s *GoalsService) List(ctx context.Context) ([]ReadingGoal, error) {
	var goals []ReadingGoal
	err := s.d.Get(ctx, "/reading-goals", nil, &goals)
	return goals, err
}

// Current returns the goal for the current year.
func (s *GoalsService) Current(ctx context.Context) (ReadingGoal, error) {
	var goal ReadingGoal
	err := s.d.Get(ctx, "/reading-goals/current", nil, &goal)
	return goal, err
}

// Create adds a goal for a year.
func (s *GoalsService) Create(ctx context.Context, params CreateGoalParams) (ReadingGoal, error) {
	var goal ReadingGoal
	if err := params.Validate(); err != nil {
		return goal, err
	}
	err := s.d.Post(ctx, "/reading-goals", params, &goal)
	return goal, err
}

// Update changes the targets of an existing goal.
func (s *GoalsService) Update(ctx context.Context, id int64, params UpdateGoalParams) (ReadingGoal, error) {
	var goal ReadingGoal
	err := s.d.Put(ctx, fmt.Sprintf("/reading-goals/%d", id), params, &goal)
	return goal, err
}

// Delete removes a goal.
func (s *GoalsService) Delete(ctx context.Context, id int64) error {
	return s.d.Delete(ctx, fmt.Sprintf("/reading-goals/%d", id))
}
