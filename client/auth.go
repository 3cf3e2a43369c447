package client

import (
	"context"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

// User is a member profile as the API returns it.
type User struct {
	ID             int64  `json:"id"`
	Name           string `json:"name"`
	Email          string `json:"email,omitempty"`
	AvatarURL      string `json:"avatar_url,omitempty"`
	Bio            string `json:"bio,omitempty"`
	FollowersCount int    `json:"followers_count,omitempty"`
	FollowingCount int    `json:"following_count,omitempty"`
	CreatedAt      string `json:"created_at,omitempty"`
}

// LoginParams carries credentials for Login.
type LoginParams struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (p LoginParams) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.Email, validation.Required, is.Email),
		validation.Field(&p.Password, validation.Required),
	)
}

// RegisterParams carries the fields for account creation.
type RegisterParams struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (p RegisterParams) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.Name, validation.Required, validation.Length(1, 255)),
		validation.Field(&p.Email, validation.Required, is.Email),
		validation.Field(&p.Password, validation.Required, validation.Length(8, 0)),
	)
}

// TokenResponse is the credential issued by Login and Register.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type,omitempty"`
}

// AuthService covers authentication and the current-user lookup.
type AuthService struct {
	d Doer
}

// Login exchanges credentials for a bearer token.
func (s *AuthService) Login(ctx context.Context, params LoginParams) (*TokenResponse, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	var out TokenResponse
	if err := s.d.Post(ctx, "/auth/login", params, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Register creates an account and returns its first bearer token.
func (s *AuthService) Register(ctx context.Context, params RegisterParams) (*TokenResponse, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	var out TokenResponse
	if err := s.d.Post(ctx, "/auth/register", params, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Logout revokes the caller's token server side.
func (s *AuthService) Logout(ctx context.Context) error {
	return s.d.Post(ctx, "/auth/logout", nil, nil)
}

// CurrentUser returns the profile behind the caller's token.
func (s *AuthService) CurrentUser(ctx context.Context) (*User, error) {
	var user User
	if err := s.d.Get(ctx, "/auth/user", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}
