package resourcecache

import (
	"context"

	"github.com/readcircle/readcircle-go/client"
)

// CreateBook adds a catalog entry and invalidates the book fingerprints.
func (s *Service) CreateBook(ctx context.Context, params client.BookParams) (client.Book, error) {
	book, err := s.api.Books.Create(ctx, params)
	if err == nil {
		s.invalidate(resourceBooks)
	}
	return book, err
}

// UpdateBook edits a catalog entry and invalidates the book fingerprints.
func (s *Service) UpdateBook(ctx context.Context, id int64, params client.BookParams) (client.Book, error) {
	book, err := s.api.Books.Update(ctx, id, params)
	if err == nil {
		s.invalidate(resourceBooks)
	}
	return book, err
}

// DeleteBook removes a catalog entry. Shelf contents reference books, so
// shelf fingerprints go stale too.
func (s *Service) DeleteBook(ctx context.Context, id int64) error {
	err := s.api.Books.Delete(ctx, id)
	if err == nil {
		s.invalidate(resourceBooks, resourceShelves)
	}
	return err
}

// AddFavorite marks a book as favorite. Idempotent against the backend:
// favoriting twice succeeds both times, each call invalidating once.
func (s *Service) AddFavorite(ctx context.Context, id int64) error {
	err := s.api.Books.AddFavorite(ctx, id)
	if err == nil {
		s.invalidate(resourceBooks)
	}
	return err
}

// RemoveFavorite unmarks a book. Idempotent like AddFavorite.
func (s *Service) RemoveFavorite(ctx context.Context, id int64) error {
	err := s.api.Books.RemoveFavorite(ctx, id)
	if err == nil {
		s.invalidate(resourceBooks)
	}
	return err
}

// CreateShelf adds a shelf and invalidates the shelf fingerprints.
func (s *Service) CreateShelf(ctx context.Context, params client.ShelfParams) (client.Shelf, error) {
	shelf, err := s.api.Shelves.Create(ctx, params)
	if err == nil {
		s.invalidate(resourceShelves)
	}
	return shelf, err
}

// UpdateShelf edits a shelf and invalidates the shelf fingerprints.
func (s *Service) UpdateShelf(ctx context.Context, id int64, params client.ShelfParams) (client.Shelf, error) {
	shelf, err := s.api.Shelves.Update(ctx, id, params)
	if err == nil {
		s.invalidate(resourceShelves)
	}
	return shelf, err
}

// DeleteShelf removes a shelf and its book links.
func (s *Service) DeleteShelf(ctx context.Context, id int64) error {
	err := s.api.Shelves.Delete(ctx, id)
	if err == nil {
		s.invalidate(resourceShelves)
	}
	return err
}

// AddBookToShelf places a book on a shelf.
func (s *Service) AddBookToShelf(ctx context.Context, shelfID, bookID int64) error {
	err := s.api.Shelves.AddBook(ctx, shelfID, bookID)
	if err == nil {
		s.invalidate(resourceShelves)
	}
	return err
}

// RemoveBookFromShelf takes a book off a shelf.
func (s *Service) RemoveBookFromShelf(ctx context.Context, shelfID, bookID int64) error {
	err := s.api.Shelves.RemoveBook(ctx, shelfID, bookID)
	if err == nil {
		s.invalidate(resourceShelves)
	}
	return err
}

// CreateGoal adds a yearly reading goal.
func (s *Service) CreateGoal(ctx context.Context, params client.CreateGoalParams) (client.ReadingGoal, error) {
	goal, err := s.api.Goals.Create(ctx, params)
	if err == nil {
		s.invalidate(resourceGoals)
	}
	return goal, err
}

// UpdateGoal edits a reading goal's targets.
func (s *Service) UpdateGoal(ctx context.Context, id int64, params client.UpdateGoalParams) (client.ReadingGoal, error) {
	goal, err := s.api.Goals.Update(ctx, id, params)
	if err == nil {
		s.invalidate(resourceGoals)
	}
	return goal, err
}

// DeleteGoal removes a reading goal.
func (s *Service) DeleteGoal(ctx context.Context, id int64) error {
	err := s.api.Goals.Delete(ctx, id)
	if err == nil {
		s.invalidate(resourceGoals)
	}
	return err
}

// CreateChallenge adds a reading challenge.
func (s *Service) CreateChallenge(ctx context.Context, params client.ChallengeParams) (client.ReadingChallenge, error) {
	challenge, err := s.api.Challenges.Create(ctx, params)
	if err == nil {
		s.invalidate(resourceChallenges)
	}
	return challenge, err
}

// UpdateChallenge edits a reading challenge.
func (s *Service) UpdateChallenge(ctx context.Context, id int64, params client.ChallengeParams) (client.ReadingChallenge, error) {
	challenge, err := s.api.Challenges.Update(ctx, id, params)
	if err == nil {
		s.invalidate(resourceChallenges)
	}
	return challenge, err
}

// JoinChallenge enrolls the caller. Joining emits a feed activity, so the
// feed cache resets too.
func (s *Service) JoinChallenge(ctx context.Context, id int64) error {
	err := s.api.Challenges.Join(ctx, id)
	if err == nil {
		s.invalidate(resourceChallenges, resourceFeed)
	}
	return err
}

// AddBookToChallenge binds a book to one requirement category. Completing a
// category can complete the challenge, which emits a feed activity.
func (s *Service) AddBookToChallenge(ctx context.Context, challengeID, bookID int64, requirementKey string) error {
	err := s.api.Challenges.AddBook(ctx, challengeID, bookID, requirementKey)
	if err == nil {
		s.invalidate(resourceChallenges, resourceFeed)
	}
	return err
}

// RemoveBookFromChallenge unbinds a book from a challenge.
func (s *Service) RemoveBookFromChallenge(ctx context.Context, challengeID, bookID int64) error {
	err := s.api.Challenges.RemoveBook(ctx, challengeID, bookID)
	if err == nil {
		s.invalidate(resourceChallenges)
	}
	return err
}

// CreateReview posts a review. The book's aggregate rating changes, so book
// fingerprints go stale along with reviews, and the review shows up in feeds.
func (s *Service) CreateReview(ctx context.Context, bookID int64, params client.ReviewParams) (client.Review, error) {
	review, err := s.api.Reviews.Create(ctx, bookID, params)
	if err == nil {
		s.invalidate(resourceReviews, resourceBooks, resourceFeed)
	}
	return review, err
}

// UpdateReview edits a review.
func (s *Service) UpdateReview(ctx context.Context, bookID, reviewID int64, params client.ReviewParams) (client.Review, error) {
	review, err := s.api.Reviews.Update(ctx, bookID, reviewID, params)
	if err == nil {
		s.invalidate(resourceReviews, resourceBooks)
	}
	return review, err
}

// DeleteReview removes a review.
func (s *Service) DeleteReview(ctx context.Context, bookID, reviewID int64) error {
	err := s.api.Reviews.Delete(ctx, bookID, reviewID)
	if err == nil {
		s.invalidate(resourceReviews, resourceBooks)
	}
	return err
}

// UpdateProgress upserts the caller's reading record for a book. Progress
// feeds the goal counters and the statistics, and finishing a book emits a
// feed activity.
func (s *Service) UpdateProgress(ctx context.Context, bookID int64, params client.UpdateProgressParams) (client.ReadingProgress, error) {
	record, err := s.api.Progress.Update(ctx, bookID, params)
	if err == nil {
		s.invalidate(resourceProgress, resourceGoals, resourceFeed)
	}
	return record, err
}

// Follow adds a follow edge and resets the cached follow lists and feed.
func (s *Service) Follow(ctx context.Context, userID int64) error {
	err := s.api.Social.Follow(ctx, userID)
	if err == nil {
		s.invalidate(resourceSocial, resourceFeed)
	}
	return err
}

// Unfollow removes a follow edge.
func (s *Service) Unfollow(ctx context.Context, userID int64) error {
	err := s.api.Social.Unfollow(ctx, userID)
	if err == nil {
		s.invalidate(resourceSocial, resourceFeed)
	}
	return err
}
