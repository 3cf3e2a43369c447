package client

import (
	"context"
	"encoding/json"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeDoer records the last exchange and answers it with a canned JSON body.
type fakeDoer struct {
	method string
	path   string
	query  url.Values
	body   any

	response []byte
	err      error
}

func (d *fakeDoer) exchange(method, path string, query url.Values, body, out any) error {
	d.method = method
	d.path = path
	d.query = query
	d.body = body
	if d.err != nil {
		return d.err
	}
	if out != nil && d.response != nil {
		return json.Unmarshal(d.response, out)
	}
	return nil
}

func (d *fakeDoer) Get(ctx context.Context, path string, query url.Values, out any) error {
	return d.exchange("GET", path, query, nil, out)
}

func (d *fakeDoer) Post(ctx context.Context, path string, body, out any) error {
	return d.exchange("POST", path, nil, body, out)
}

func (d *fakeDoer) Put(ctx context.Context, path string, body, out any) error {
	return d.exchange("PUT", path, nil, body, out)
}

func (d *fakeDoer) Delete(ctx context.Context, path string) error {
	return d.exchange("DELETE", path, nil, nil, nil)
}

func TestBooksList_EncodesFilters(t *testing.T) {
	d := &fakeDoer{response: []byte(`{
		"data": [{"id": 1, "title": "Dune", "author": "Frank Herbert"}],
		"meta": {"current_page": 2, "last_page": 9, "per_page": 20, "total": 175}
	}`)}
	c := New(d)

	page, err := c.Books.List(context.Background(), BookFilters{
		Search:  "dune",
		Author:  "Herbert",
		Year:    1965,
		Page:    2,
		PerPage: 20,
	})
	require.NoError(t, err)

	assert.Equal(t, "/books", d.path)
	assert.Equal(t, "dune", d.query.Get("search"))
	assert.Equal(t, "Herbert", d.query.Get("author"))
	assert.Equal(t, "1965", d.query.Get("year"))
	assert.Equal(t, "2", d.query.Get("page"))
	assert.Equal(t, "20", d.query.Get("per_page"))

	require.Len(t, page.Data, 1)
	assert.Equal(t, "Dune", page.Data[0].Title)
	assert.Equal(t, 2, page.Meta.CurrentPage)
	assert.Equal(t, 175, page.Meta.Total)
}

func TestBooksList_OmitsZeroFilters(t *testing.T) {
	d := &fakeDoer{response: []byte(`{"data": [], "meta": {}}`)}
	c := New(d)

	_, err := c.Books.List(context.Background(), BookFilters{})
	require.NoError(t, err)
	assert.Empty(t, d.query)
}

func TestBooksCreate_RejectsInvalidParamsWithoutRequest(t *testing.T) {
	d := &fakeDoer{}
	c := New(d)

	_, err := c.Books.Create(context.Background(), BookParams{Author: "No Title"})
	require.Error(t, err)
	assert.Empty(t, d.method, "invalid params must not reach the wire")
}

func TestBooksFavorite_Paths(t *testing.T) {
	d := &fakeDoer{}
	c := New(d)

	require.NoError(t, c.Books.AddFavorite(context.Background(), 42))
	assert.Equal(t, "POST", d.method)
	assert.Equal(t, "/books/42/favorite", d.path)

	require.NoError(t, c.Books.RemoveFavorite(context.Background(), 42))
	assert.Equal(t, "DELETE", d.method)
	assert.Equal(t, "/books/42/favorite", d.path)
}

func TestShelvesAddBook_SendsBookID(t *testing.T) {
	d := &fakeDoer{}
	c := New(d)

	require.NoError(t, c.Shelves.AddBook(context.Background(), 3, 42))
	assert.Equal(t, "POST", d.method)
	assert.Equal(t, "/shelves/3/books", d.path)
	assert.Equal(t, map[string]int64{"book_id": 42}, d.body)
}

func TestChallengeParams_RequirementsMustBePositive(t *testing.T) {
	params := ChallengeParams{
		Title:        "Seasonal Reads",
		StartDate:    "2026-01-01",
		EndDate:      "2026-12-31",
		Requirements: map[string]int{"fiction": 3, "poetry": 0},
	}
	err := params.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "poetry")
}

func TestChallengesAddBook_SendsRequirementKey(t *testing.T) {
	d := &fakeDoer{}
	c := New(d)

	require.NoError(t, c.Challenges.AddBook(context.Background(), 5, 42, "non_fiction"))
	assert.Equal(t, "/reading-challenges/5/books/42", d.path)
	assert.Equal(t, map[string]string{"requirement_key": "non_fiction"}, d.body)
}

func TestChallengesGet_DecodesRequirementsAndProgress(t *testing.T) {
	d := &fakeDoer{response: []byte(`{
		"id": 5,
		"title": "Genre Bingo",
		"requirements": {"fiction": 3, "non_fiction": 2, "poetry": 1},
		"progress": {
			"fiction": {"required": 3, "completed": 2},
			"non_fiction": {"required": 2, "completed": 0},
			"poetry": {"required": 1, "completed": 1}
		},
		"participants_count": 18
	}`)}
	c := New(d)

	challenge, err := c.Challenges.Get(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, "/reading-challenges/5", d.path)
	assert.Equal(t, map[string]int{"fiction": 3, "non_fiction": 2, "poetry": 1}, challenge.Requirements)
	assert.Equal(t, CategoryProgress{Required: 3, Completed: 2}, challenge.Progress["fiction"])
	assert.Equal(t, 18, challenge.ParticipantsCount)
}

func TestChallengesMine_Path(t *testing.T) {
	d := &fakeDoer{response: []byte(`[]`)}
	c := New(d)

	_, err := c.Challenges.Mine(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "/user/reading-challenges", d.path)
}

func TestProgressUpdate_RejectsUnknownStatus(t *testing.T) {
	d := &fakeDoer{}
	c := New(d)

	_, err := c.Progress.Update(context.Background(), 42, UpdateProgressParams{
		Status:      ReadingStatus("abandoned"),
		CurrentPage: 10,
	})
	require.Error(t, err)
	assert.Empty(t, d.method)
}

func TestProgressList_StatusFilter(t *testing.T) {
	d := &fakeDoer{response: []byte(`[]`)}
	c := New(d)

	_, err := c.Progress.List(context.Background(), StatusInProgress)
	require.NoError(t, err)
	assert.Equal(t, "in_progress", d.query.Get("status"))

	_, err = c.Progress.List(context.Background(), "")
	require.NoError(t, err)
	assert.Empty(t, d.query.Get("status"))
}

func TestGoalsCurrent_Path(t *testing.T) {
	d := &fakeDoer{response: []byte(`{"id": 1, "year": 2026, "target_books": 24}`)}
	c := New(d)

	goal, err := c.Goals.Current(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "/reading-goals/current", d.path)
	assert.Equal(t, 24, goal.TargetBooks)
}

func TestAuthLogin_ReturnsToken(t *testing.T) {
	d := &fakeDoer{response: []byte(`{"access_token": "tok-123", "token_type": "Bearer"}`)}
	c := New(d)

	tok, err := c.Auth.Login(context.Background(), LoginParams{
		Email:    "ana@example.com",
		Password: "hunter22",
	})
	require.NoError(t, err)
	assert.Equal(t, "POST", d.method)
	assert.Equal(t, "/auth/login", d.path)
	assert.Equal(t, "tok-123", tok.AccessToken)
}

func TestAuthLogin_RejectsMalformedEmail(t *testing.T) {
	d := &fakeDoer{}
	c := New(d)

	_, err := c.Auth.Login(context.Background(), LoginParams{Email: "not-an-email", Password: "x"})
	require.Error(t, err)
	assert.Empty(t, d.method)
}

func TestReviewsListForBook_SpoilersFlag(t *testing.T) {
	d := &fakeDoer{response: []byte(`[]`)}
	c := New(d)

	_, err := c.Reviews.ListForBook(context.Background(), 31, true)
	require.NoError(t, err)
	assert.Equal(t, "/books/31/reviews", d.path)
	assert.Equal(t, "true", d.query.Get("spoilers"))
}
