package client

import (
	"context"
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Shelf is a user-owned collection of books. Deleting a shelf cascades
// removal of its book links on the backend.
type Shelf struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	IsPublic    bool   `json:"is_public"`
	Books       []Book `json:"books,omitempty"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}

// ShelfParams is the payload for creating or updating a shelf.
type ShelfParams struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	IsPublic    bool   `json:"is_public"`
}

// Validate checks the payload before it goes on the wire.
func (p ShelfParams) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.Name, validation.Required, validation.Length(1, 200)),
	)
}

// ShelvesService covers /shelves.
type ShelvesService struct {
	d Doer
}

// List returns the caller's shelves.
func (s *ShelvesService) List(ctx context.Context) ([]Shelf, error) {
	var shelves []Shelf
	err := s.d.Get(ctx, "/shelves", nil, &shelves)
	return shelves, err
}

// Get returns one shelf including its books.
func (s *ShelvesService) Get(ctx context.Context, id int64) (Shelf, error) {
	var shelf Shelf
	err := s.d.Get(ctx, fmt.Sprintf("/shelves/%d", id), nil, &shelf)
	return shelf, err
}

// Create adds a shelf.
func (s *ShelvesService) Create(ctx context.Context, params ShelfParams) (Shelf, error) {
	var shelf Shelf
	if err := params.Validate(); err != nil {
		return shelf, err
	}
	err := s.d.Post(ctx, "/shelves", params, &shelf)
	return shelf, err
}

// Update edits a shelf.
func (s *ShelvesService) Update(ctx context.Context, id int64, params ShelfParams) (Shelf, error) {
	var shelf Shelf
	if err := params.Validate(); err != nil {
		return shelf, err
	}
	err := s.d.Put(ctx, fmt.Sprintf("/shelves/%d", id), params, &shelf)
	return shelf, err
}

// Delete removes a shelf.
func (s *ShelvesService) Delete(ctx context.Context, id int64) error {
	return s.d.Delete(ctx, fmt.Sprintf("/shelves/%d", id))
}

// AddBook places a book on the shelf.
func (s *ShelvesService) AddBook(ctx context.Context, shelfID, bookID int64) error {
	body := map[string]int64{"book_id": bookID}
	return s.d.Post(ctx, fmt.Sprintf("/shelves/%d/books", shelfID), body, nil)
}

// RemoveBook takes a book off the shelf.
func (s *ShelvesService) RemoveBook(ctx context.Context, shelfID, bookID int64) error {
	return s.d.Delete(ctx, fmt.Sprintf("/shelves/%d/books/%d", shelfID, bookID))
}
