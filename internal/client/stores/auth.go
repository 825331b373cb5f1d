package stores

import (
	"context"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/webquiz-admin/internal/client/models"
)

// TokenStore is the persisted token as seen by the auth store.
type TokenStore interface {
	HasToken(ctx context.Context) (bool, error)
	ClearToken(ctx context.Context) error
}

type AuthState struct {
	User            *models.User
	IsAuthenticated bool
}

type AuthStore struct {
	mu     sync.Mutex
	state  AuthState
	tokens TokenStore
}

// NewAuthStore starts authenticated when a token is already stored. The user
// stays unknown until SetAuth.
func NewAuthStore(ctx context.Context, tokens TokenStore) (*AuthStore, error) {
	has, err := tokens.HasToken(ctx)
	if err != nil {
		return nil, fmt.Errorf("auth store: %w", err)
	}
	return &AuthStore{tokens: tokens, state: AuthState{IsAuthenticated: has}}, nil
}

func (s *AuthStore) State() AuthState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot()
}

func (s *AuthStore) SetAuth(user models.User) AuthState {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = AuthState{User: &user, IsAuthenticated: true}
	return s.snapshot()
}

// ClearAuth forgets the user and removes the stored token. The in-memory
// state is cleared even when the token cannot be removed.
func (s *AuthStore) ClearAuth(ctx context.Context) (AuthState, error) {
	s.mu.Lock()
	s.state = AuthState{}
	st := s.snapshot()
	s.mu.Unlock()

	if err := s.tokens.ClearToken(ctx); err != nil {
		return st, fmt.Errorf("clear auth: %w", err)
	}
	return st, nil
}

func (s *AuthStore) snapshot() AuthState {
	st := s.state
	if st.User != nil {
		u := *st.User
		st.User = &u
	}
	return st
}
