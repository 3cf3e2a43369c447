package di

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/readcircle/readcircle-go/apierr"
	"github.com/readcircle/readcircle-go/client"
	"github.com/readcircle/readcircle-go/internal/config"
	"github.com/readcircle/readcircle-go/internal/logger"
	"github.com/readcircle/readcircle-go/session"
)

// fakeBackend is an in-memory REST backend covering the endpoints the
// integration tests exercise. It requires the bearer token it issued at
// login for every non-auth route.
type fakeBackend struct {
	mu         sync.Mutex
	token      string
	shelves    map[int64]map[string]any
	challenges map[int64]map[string]any
	nextID     int64

	shelfListFetches int
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		shelves:    map[int64]map[string]any{},
		challenges: map[int64]map[string]any{},
		nextID:     1,
	}
}

func (b *fakeBackend) handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /api/auth/login", func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		b.token = "integration-token"
		b.mu.Unlock()
		writeJSON(w, http.StatusOK, map[string]string{"access_token": "integration-token"})
	})

	mux.HandleFunc("POST /api/auth/logout", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	mux.HandleFunc("GET /api/auth/user", b.authed(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"id": 7, "name": "Ana Reyes"})
	}))

	mux.HandleFunc("GET /api/shelves", b.authed(func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		b.shelfListFetches++
		out := make([]map[string]any, 0, len(b.shelves))
		for _, s := range b.shelves {
			out = append(out, s)
		}
		b.mu.Unlock()
		writeJSON(w, http.StatusOK, out)
	}))

	mux.HandleFunc("POST /api/shelves", b.authed(func(w http.ResponseWriter, r *http.Request) {
		var params map[string]any
		json.NewDecoder(r.Body).Decode(&params)
		b.mu.Lock()
		id := b.nextID
		b.nextID++
		params["id"] = id
		b.shelves[id] = params
		b.mu.Unlock()
		writeJSON(w, http.StatusCreated, params)
	}))

	mux.HandleFunc("DELETE /api/shelves/{id}", b.authed(func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		for id, s := range b.shelves {
			if r.PathValue("id") == jsonNumber(s["id"]) {
				delete(b.shelves, id)
			}
		}
		b.mu.Unlock()
		w.WriteHeader(http.StatusNoContent)
	}))

	mux.HandleFunc("POST /api/books/{id}/favorite", b.authed(func(w http.ResponseWriter, r *http.Request) {
		// Idempotent: favoriting twice succeeds both times.
		w.WriteHeader(http.StatusNoContent)
	}))

	mux.HandleFunc("POST /api/reading-challenges", b.authed(func(w http.ResponseWriter, r *http.Request) {
		var params map[string]any
		json.NewDecoder(r.Body).Decode(&params)
		b.mu.Lock()
		id := b.nextID
		b.nextID++
		params["id"] = id
		b.challenges[id] = params
		b.mu.Unlock()
		writeJSON(w, http.StatusCreated, params)
	}))

	mux.HandleFunc("GET /api/reading-challenges/{id}", b.authed(func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		defer b.mu.Unlock()
		for _, c := range b.challenges {
			if r.PathValue("id") == jsonNumber(c["id"]) {
				writeJSON(w, http.StatusOK, c)
				return
			}
		}
		writeJSON(w, http.StatusNotFound, map[string]string{"message": "challenge not found"})
	}))

	return mux
}

func (b *fakeBackend) authed(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		token := b.token
		b.mu.Unlock()
		if token == "" || r.Header.Get("Authorization") != "Bearer "+token {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "unauthenticated"})
			return
		}
		next(w, r)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func jsonNumber(v any) string {
	raw, _ := json.Marshal(v)
	return strings.TrimSuffix(string(raw), ".0")
}

func newStack(t *testing.T) (*Container, *fakeBackend) {
	t.Helper()

	backend := newFakeBackend()
	srv := httptest.NewServer(backend.handler())
	t.Cleanup(srv.Close)

	cfg := config.Default()
	cfg.APIURL = srv.URL + "/api"

	c, err := New(cfg,
		WithCredentialStore(&memCreds{}),
		WithLogger(logger.Nop()),
	)
	require.NoError(t, err)
	return c, backend
}

func login(t *testing.T, c *Container) {
	t.Helper()

	require.NoError(t, c.Session().Restore(context.Background()))
	_, err := c.Session().Login(context.Background(), client.LoginParams{
		Email:    "ana@example.com",
		Password: "hunter22",
	})
	require.NoError(t, err)
	require.Equal(t, session.StateAuthenticated, c.Session().State())
}

func TestIntegration_MutationForcesRefetch(t *testing.T) {
	c, backend := newStack(t)
	login(t, c)
	ctx := context.Background()

	_, err := c.Resources().CreateShelf(ctx, client.ShelfParams{Name: "to-read"})
	require.NoError(t, err)

	shelves, _, err := c.Resources().ListShelves(ctx)
	require.NoError(t, err)
	require.Len(t, shelves, 1)
	shelfID := shelves[0].ID

	// Cached: a second read must not reach the backend.
	_, _, err = c.Resources().ListShelves(ctx)
	require.NoError(t, err)
	backend.mu.Lock()
	fetches := backend.shelfListFetches
	backend.mu.Unlock()
	require.Equal(t, 1, fetches)

	require.NoError(t, c.Resources().DeleteShelf(ctx, shelfID))

	// The stale entry is served while the refresh runs; the refresh must
	// reach the backend well before the max-age elapses.
	shelves, stale, err := c.Resources().ListShelves(ctx)
	require.NoError(t, err)
	assert.True(t, stale)
	assert.Len(t, shelves, 1)

	require.Eventually(t, func() bool {
		fresh, stale, err := c.Resources().ListShelves(ctx)
		return err == nil && !stale && len(fresh) == 0
	}, 2*time.Second, 10*time.Millisecond)
}

func TestIntegration_FavoriteTwiceSucceeds(t *testing.T) {
	c, _ := newStack(t)
	login(t, c)
	ctx := context.Background()

	require.NoError(t, c.Resources().AddFavorite(ctx, 42))
	require.NoError(t, c.Resources().AddFavorite(ctx, 42))
}

func TestIntegration_ChallengeRequirementsRoundTrip(t *testing.T) {
	c, _ := newStack(t)
	login(t, c)
	ctx := context.Background()

	created, err := c.Resources().CreateChallenge(ctx, client.ChallengeParams{
		Title:        "Genre Bingo",
		StartDate:    "2026-01-01",
		EndDate:      "2026-12-31",
		Requirements: map[string]int{"fiction": 5, "nonfiction": 3},
	})
	require.NoError(t, err)

	fetched, _, err := c.Resources().GetChallenge(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"fiction": 5, "nonfiction": 3}, fetched.Requirements)
}

func TestIntegration_AnonymousRequestRejected(t *testing.T) {
	c, _ := newStack(t)
	require.NoError(t, c.Session().Restore(context.Background()))
	require.Equal(t, session.StateAnonymous, c.Session().State())

	_, _, err := c.Resources().ListShelves(context.Background())
	require.Error(t, err)
	assert.True(t, apierr.Is(err, apierr.ErrUnauthorized))
}

func TestIntegration_LogoutEndsSession(t *testing.T) {
	c, _ := newStack(t)
	login(t, c)

	c.Session().Logout(context.Background())
	assert.Equal(t, session.StateAnonymous, c.Session().State())
	assert.Nil(t, c.Session().User())
}
