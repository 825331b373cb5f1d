// Package auth maps account operations to the backend's auth endpoints and
// keeps the issued token in persistent local storage.
package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/dmitrijs2005/webquiz-admin/internal/client/models"
)

var ErrNoToken = errors.New("login response carries no token")

// API is the part of the HTTP adapter the repository needs.
type API interface {
	Do(ctx context.Context, method, path string, body, out any) error
}

// TokenStore persists the bearer token.
type TokenStore interface {
	Token(ctx context.Context) (string, error)
	SaveSession(ctx context.Context, token, email string) error
	ClearToken(ctx context.Context) error
}

type Repository interface {
	Signup(ctx context.Context, name, email, password string) error
	Signin(ctx context.Context, email, password string) (models.AuthResult, error)
	Me(ctx context.Context) (models.User, error)
	Logout(ctx context.Context) error
	Token(ctx context.Context) (string, error)
	IsAuthenticated(ctx context.Context) (bool, error)
}

type HTTPRepository struct {
	api    API
	tokens TokenStore
}

func NewHTTPRepository(api API, tokens TokenStore) *HTTPRepository {
	return &HTTPRepository{api: api, tokens: tokens}
}

// Signup creates an account. It does not sign in.
func (r *HTTPRepository) Signup(ctx context.Context, name, email, password string) error {
	req := models.SignupRequest{Name: name, Email: email, Password: password}
	if err := r.api.Do(ctx, http.MethodPost, "/users", req, nil); err != nil {
		return fmt.Errorf("signup: %w", err)
	}
	return nil
}

// Signin exchanges credentials for a token and stores it.
func (r *HTTPRepository) Signin(ctx context.Context, email, password string) (models.AuthResult, error) {
	var res models.AuthResult
	req := models.LoginRequest{Email: email, Password: password}
	if err := r.api.Do(ctx, http.MethodPost, "/auth/login", req, &res); err != nil {
		return models.AuthResult{}, fmt.Errorf("signin: %w", err)
	}
	if res.Token == "" {
		return models.AuthResult{}, ErrNoToken
	}
	if err := r.tokens.SaveSession(ctx, res.Token, email); err != nil {
		return models.AuthResult{}, fmt.Errorf("signin: %w", err)
	}
	return res, nil
}

// Me returns the user the stored token belongs to.
func (r *HTTPRepository) Me(ctx context.Context) (models.User, error) {
	var res struct {
		User models.User `json:"user"`
	}
	if err := r.api.Do(ctx, http.MethodGet, "/auth/me", nil, &res); err != nil {
		return models.User{}, fmt.Errorf("me: %w", err)
	}
	return res.User, nil
}

// Logout forgets the token locally; the backend is not contacted.
func (r *HTTPRepository) Logout(ctx context.Context) error {
	return r.tokens.ClearToken(ctx)
}

func (r *HTTPRepository) Token(ctx context.Context) (string, error) {
	return r.tokens.Token(ctx)
}

func (r *HTTPRepository) IsAuthenticated(ctx context.Context) (bool, error) {
	t, err := r.tokens.Token(ctx)
	if err != nil {
		return false, err
	}
	return t != "", nil
}
