// Package session holds process-wide authentication state: the bearer token
// the transport attaches to requests, and the identity behind it.
//
// The holder is initialized once at process start by attempting to restore a
// persisted credential, after which it is either authenticated or anonymous.
// Login and register move anonymous to authenticated; logout always ends the
// local session, whether or not the backend acknowledges it.
package session

import (
	"context"
	"log/slog"
	"sync"

	"github.com/readcircle/readcircle-go/apierr"
	"github.com/readcircle/readcircle-go/client"
)

// State is the holder's lifecycle position.
type State int

const (
	// StateChecking is the initial state, before the one restore attempt.
	StateChecking State = iota
	// StateAnonymous means no valid credential is held.
	StateAnonymous
	// StateAuthenticated means a credential is held and its user is known.
	StateAuthenticated
)

func (s State) String() string {
	switch s {
	case StateChecking:
		return "checking"
	case StateAnonymous:
		return "anonymous"
	case StateAuthenticated:
		return "authenticated"
	}
	return "unknown"
}

// CredentialStore persists the bearer token between processes. Load returns
// an empty string when no credential is stored.
type CredentialStore interface {
	Load() (string, error)
	Save(token string) error
	Clear() error
}

// AuthAPI is the authentication surface the holder drives.
type AuthAPI interface {
	Login(ctx context.Context, params client.LoginParams) (*client.TokenResponse, error)
	Register(ctx context.Context, params client.RegisterParams) (*client.TokenResponse, error)
	Logout(ctx context.Context) error
	CurrentUser(ctx context.Context) (*client.User, error)
}

// TokenCell is the mutable slot the transport reads the bearer token from.
type TokenCell struct {
	mu    sync.RWMutex
	token string
}

// Set stores the token.
func (c *TokenCell) Set(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

// Clear drops the token.
func (c *TokenCell) Clear() {
	c.mu.Lock()
	c.token = ""
	c.mu.Unlock()
}

// Token returns the current token and whether one is set.
func (c *TokenCell) Token() (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token, c.token != ""
}

// Holder is the process-wide identity state.
type Holder struct {
	api   AuthAPI
	creds CredentialStore
	cell  *TokenCell
	log   *slog.Logger

	mu      sync.Mutex
	state   State
	user    *client.User
	lastErr error
}

// New creates a holder in StateChecking. Call Restore exactly once before
// reading the state.
func New(api AuthAPI, creds CredentialStore, cell *TokenCell, log *slog.Logger) *Holder {
	if log == nil {
		log = slog.Default()
	}
	return &Holder{
		api:   api,
		creds: creds,
		cell:  cell,
		log:   log,
		state: StateChecking,
	}
}

// State returns the current lifecycle state.
func (h *Holder) State() State {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.state
}

// User returns the authenticated user, or nil.
func (h *Holder) User() *client.User {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.user
}

// Err returns the last authentication error, or nil.
func (h *Holder) Err() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.lastErr
}

// Restore performs the single startup check: load the persisted credential
// and resolve the user behind it. A missing credential, or one the backend
// no longer accepts, leaves the holder anonymous. A rejected credential is
// also cleared from the store so the next start skips the round trip.
func (h *Holder) Restore(ctx context.Context) error {
	token, err := h.creds.Load()
	if err != nil {
		h.log.Warn("credential load failed", "error", err)
		h.become(StateAnonymous, nil, err)
		return err
	}
	if token == "" {
		h.become(StateAnonymous, nil, nil)
		return nil
	}

	h.cell.Set(token)
	user, err := h.api.CurrentUser(ctx)
	if err != nil {
		h.cell.Clear()
		if apierr.Is(err, apierr.ErrUnauthorized) {
			if clearErr := h.creds.Clear(); clearErr != nil {
				h.log.Warn("credential clear failed", "error", clearErr)
			}
		}
		h.become(StateAnonymous, nil, err)
		return err
	}

	h.become(StateAuthenticated, user, nil)
	return nil
}

// Login exchanges credentials for a session. On failure the state is
// unchanged and the error is surfaced.
func (h *Holder) Login(ctx context.Context, params client.LoginParams) (*client.User, error) {
	tok, err := h.api.Login(ctx, params)
	if err != nil {
		h.recordErr(err)
		return nil, err
	}
	return h.adopt(ctx, tok.AccessToken)
}

// Register creates an account and opens a session. On failure the state is
// unchanged and the error is surfaced.
func (h *Holder) Register(ctx context.Context, params client.RegisterParams) (*client.User, error) {
	tok, err := h.api.Register(ctx, params)
	if err != nil {
		h.recordErr(err)
		return nil, err
	}
	return h.adopt(ctx, tok.AccessToken)
}

// Logout ends the session. The remote revocation is best effort: its failure
// is logged, and the local state still transitions to anonymous with the
// persisted credential cleared. Logout never returns an error.
func (h *Holder) Logout(ctx context.Context) {
	if err := h.api.Logout(ctx); err != nil {
		h.log.Warn("remote logout failed, ending local session anyway", "error", err)
	}
	h.cell.Clear()
	if err := h.creds.Clear(); err != nil {
		h.log.Warn("credential clear failed", "error", err)
	}
	h.become(StateAnonymous, nil, nil)
}

// adopt installs a freshly issued token and resolves its user.
func (h *Holder) adopt(ctx context.Context, token string) (*client.User, error) {
	h.cell.Set(token)
	if err := h.creds.Save(token); err != nil {
		h.log.Warn("credential save failed, session will not survive restart", "error", err)
	}

	user, err := h.api.CurrentUser(ctx)
	if err != nil {
		h.recordErr(err)
		return nil, err
	}
	h.become(StateAuthenticated, user, nil)
	return user, nil
}

func (h *Holder) become(state State, user *client.User, err error) {
	h.mu.Lock()
	h.state = state
	h.user = user
	h.lastErr = err
	h.mu.Unlock()
}

func (h *Holder) recordErr(err error) {
	h.mu.Lock()
	h.lastErr = err
	h.mu.Unlock()
}
