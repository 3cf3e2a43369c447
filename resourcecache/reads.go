package resourcecache

import (
	"context"

	"github.com/readcircle/readcircle-go/cache"
	"github.com/readcircle/readcircle-go/client"
	"github.com/readcircle/readcircle-go/internal/swrcache"
)

func get[T any](ctx context.Context, s *Service, resource, op string, fetch cache.FetchFn[T], params ...any) (T, bool, error) {
	fingerprint := cache.Fingerprint(resource, op, params...)
	return cache.Get(ctx, s.store, fingerprint, s.cfg.MaxAgeFor(resource), fetch)
}

// ListBooks returns one cached catalog page.
func (s *Service) ListBooks(ctx context.Context, filters client.BookFilters) (client.Page[client.Book], bool, error) {
	return get(ctx, s, resourceBooks, "list", func(ctx context.Context) (client.Page[client.Book], error) {
		return s.api.Books.List(ctx, filters)
	}, filters)
}

// GetBook returns one cached book.
func (s *Service) GetBook(ctx context.Context, id int64) (client.Book, bool, error) {
	return get(ctx, s, resourceBooks, "get", func(ctx context.Context) (client.Book, error) {
		return s.api.Books.Get(ctx, id)
	}, id)
}

// ListShelves returns the caller's cached shelves.
func (s *Service) ListShelves(ctx context.Context) ([]client.Shelf, bool, error) {
	return get(ctx, s, resourceShelves, "list", func(ctx context.Context) ([]client.Shelf, error) {
		return s.api.Shelves.List(ctx)
	})
}

// GetShelf returns one cached shelf with its books.
func (s *Service) GetShelf(ctx context.Context, id int64) (client.Shelf, bool, error) {
	return get(ctx, s, resourceShelves, "get", func(ctx context.Context) (client.Shelf, error) {
		return s.api.Shelves.Get(ctx, id)
	}, id)
}

// ListGoals returns the caller's cached reading goals.
func (s *Service) ListGoals(ctx context.Context) ([]client.ReadingGoal, bool, error) {
	return get(ctx, s, resourceGoals, "list", func(ctx context.Context) ([]client.ReadingGoal, error) {
		return s.api.Goals.List(ctx)
	})
}

// CurrentGoal returns the cached goal for the current year.
func (s *Service) CurrentGoal(ctx context.Context) (client.ReadingGoal, bool, error) {
	return get(ctx, s, resourceGoals, "current", func(ctx context.Context) (client.ReadingGoal, error) {
		return s.api.Goals.Current(ctx)
	})
}

// ListChallenges returns cached challenges matching the filters.
func (s *Service) ListChallenges(ctx context.Context, filters client.ChallengeFilters) ([]client.ReadingChallenge, bool, error) {
	return get(ctx, s, resourceChallenges, "list", func(ctx context.Context) ([]client.ReadingChallenge, error) {
		return s.api.Challenges.List(ctx, filters)
	}, filters)
}

// GetChallenge returns one cached challenge with progress.
func (s *Service) GetChallenge(ctx context.Context, id int64) (client.ReadingChallenge, bool, error) {
	return get(ctx, s, resourceChallenges, "get", func(ctx context.Context) (client.ReadingChallenge, error) {
		return s.api.Challenges.Get(ctx, id)
	}, id)
}

// MyChallenges returns the cached challenges the caller participates in.
func (s *Service) MyChallenges(ctx context.Context) ([]client.ReadingChallenge, bool, error) {
	return get(ctx, s, resourceChallenges, "mine", func(ctx context.Context) ([]client.ReadingChallenge, error) {
		return s.api.Challenges.Mine(ctx)
	})
}

// ListBookReviews returns the cached reviews of one book.
func (s *Service) ListBookReviews(ctx context.Context, bookID int64, includeSpoilers bool) ([]client.Review, bool, error) {
	return get(ctx, s, resourceReviews, "book", func(ctx context.Context) ([]client.Review, error) {
		return s.api.Reviews.ListForBook(ctx, bookID, includeSpoilers)
	}, bookID, includeSpoilers)
}

// MyReviews returns the caller's cached reviews.
func (s *Service) MyReviews(ctx context.Context) ([]client.Review, bool, error) {
	return get(ctx, s, resourceReviews, "mine", func(ctx context.Context) ([]client.Review, error) {
		return s.api.Reviews.Mine(ctx)
	})
}

// ListProgress returns the caller's cached reading records.
func (s *Service) ListProgress(ctx context.Context, status client.ReadingStatus) ([]client.ReadingProgress, bool, error) {
	return get(ctx, s, resourceProgress, "list", func(ctx context.Context) ([]client.ReadingProgress, error) {
		return s.api.Progress.List(ctx, status)
	}, string(status))
}

// BookProgress returns the caller's cached reading record for one book.
func (s *Service) BookProgress(ctx context.Context, bookID int64) (client.ReadingProgress, bool, error) {
	return get(ctx, s, resourceProgress, "book", func(ctx context.Context) (client.ReadingProgress, error) {
		return s.api.Progress.ForBook(ctx, bookID)
	}, bookID)
}

// ReadingStatistics returns the caller's cached reading statistics.
func (s *Service) ReadingStatistics(ctx context.Context) (client.ReadingStatistics, bool, error) {
	return get(ctx, s, resourceProgress, "statistics", func(ctx context.Context) (client.ReadingStatistics, error) {
		return s.api.Progress.Statistics(ctx)
	})
}

// Feed returns the caller's activity feed through the read-mostly cache.
func (s *Service) Feed(ctx context.Context) ([]client.Activity, error) {
	return swrcache.GetOrFetch(ctx, s.swr, cache.Fingerprint(resourceFeed, "list"), func(ctx context.Context) ([]client.Activity, error) {
		return s.api.Social.Feed(ctx)
	})
}

// Followers returns a user's followers through the read-mostly cache.
func (s *Service) Followers(ctx context.Context, userID int64) ([]client.User, error) {
	return swrcache.GetOrFetch(ctx, s.swr, cache.Fingerprint(resourceSocial, "followers", userID), func(ctx context.Context) ([]client.User, error) {
		return s.api.Social.Followers(ctx, userID)
	})
}

// Following returns the users a user follows through the read-mostly cache.
func (s *Service) Following(ctx context.Context, userID int64) ([]client.User, error) {
	return swrcache.GetOrFetch(ctx, s.swr, cache.Fingerprint(resourceSocial, "following", userID), func(ctx context.Context) ([]client.User, error) {
		return s.api.Social.Following(ctx, userID)
	})
}

// UserActivities returns one user's activities through the read-mostly cache.
func (s *Service) UserActivities(ctx context.Context, userID int64) ([]client.Activity, error) {
	return swrcache.GetOrFetch(ctx, s.swr, cache.Fingerprint(resourceSocial, "activities", userID), func(ctx context.Context) ([]client.Activity, error) {
		return s.api.Social.UserActivities(ctx, userID)
	})
}
