package client

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Book is a catalog entry. Books are immutable from the client's perspective
// except through the librarian CRUD operations.
type Book struct {
	ID            int64  `json:"id"`
	Title         string `json:"title"`
	Author        string `json:"author"`
	ISBN          string `json:"isbn"`
	Description   string `json:"description"`
	CoverImage    string `json:"cover_image"`
	PageCount     int    `json:"page_count"`
	Publisher     string `json:"publisher"`
	PublishedDate string `json:"published_date"`
	Language      string `json:"language"`
	CreatedAt     string `json:"created_at"`
	UpdatedAt     string `json:"updated_at"`
}

// BookFilters narrows and paginates the catalog listing.
type BookFilters struct {
	Search  string
	Author  string
	Year    int
	Page    int
	PerPage int
}

func (f BookFilters) query() url.Values {
	q := url.Values{}
	if f.Search != "" {
		q.Set("search", f.Search)
	}
	if f.Author != "" {
		q.Set("author", f.Author)
	}
	if f.Year > 0 {
		q.Set("year", strconv.Itoa(f.Year))
	}
	if f.Page > 0 {
		q.Set("page", strconv.Itoa(f.Page))
	}
	if f.PerPage > 0 {
		q.Set("per_page", strconv.Itoa(f.PerPage))
	}
	return q
}

// BookParams is the payload for creating or updating a book.
type BookParams struct {
	Title         string `json:"title"`
	Author        string `json:"author"`
	ISBN          string `json:"isbn,omitempty"`
	Description   string `json:"description,omitempty"`
	CoverImage    string `json:"cover_image,omitempty"`
	PageCount     int    `json:"page_count,omitempty"`
	Publisher     string `json:"publisher,omitempty"`
	PublishedDate string `json:"published_date,omitempty"`
	Language      string `json:"language,omitempty"`
}

// Validate checks the payload before it goes on the wire.
func (p BookParams) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.Title, validation.Required, validation.Length(1, 500)),
		validation.Field(&p.Author, validation.Required, validation.Length(1, 300)),
		validation.Field(&p.PageCount, validation.Min(0)),
	)
}

// BooksService covers /books.
type BooksService struct {
	d Doer
}

// List returns one catalog page matching the filters.
func (s *BooksService) List(ctx context.Context, filters BookFilters) (Page[Book], error) {
	var page Page[Book]
	err := s.d.Get(ctx, "/books", filters.query(), &page)
	return page, err
}

// Get returns a single book.
func (s *BooksService) Get(ctx context.Context, id int64) (Book, error) {
	var book Book
	err := s.d.Get(ctx, fmt.Sprintf("/books/%d", id), nil, &book)
	return book, err
}

// Create adds a book to the catalog.
func (s *BooksService) Create(ctx context.Context, params BookParams) (Book, error) {
	var book Book
	if err := params.Validate(); err != nil {
		return book, err
	}
	err := s.d.Post(ctx, "/books", params, &book)
	return book, err
}

// Update edits a catalog entry.
func (s *BooksService) Update(ctx context.Context, id int64, params BookParams) (Book, error) {
	var book Book
	if err := params.Validate(); err != nil {
		return book, err
	}
	err := s.d.Put(ctx, fmt.Sprintf("/books/%d", id), params, &book)
	return book, err
}

// Delete removes a catalog entry.
func (s *BooksService) Delete(ctx context.Context, id int64) error {
	return s.d.Delete(ctx, fmt.Sprintf("/books/%d", id))
}

// AddFavorite marks the book as a favorite. The backend treats this as
// idempotent: favoriting an already-favorited book is not an error.
func (s *BooksService) AddFavorite(ctx context.Context, id int64) error {
	return s.d.Post(ctx, fmt.Sprintf("/books/%d/favorite", id), nil, nil)
}

// RemoveFavorite unmarks the book. Also idempotent on the backend.
func (s *BooksService) RemoveFavorite(ctx context.Context, id int64) error {
	return s.d.Delete(ctx, fmt.Sprintf("/books/%d/favorite", id))
}
