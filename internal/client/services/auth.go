// Package services contains the application workflows the CLI drives: the
// session lifecycle, the quiz editor and tag management. Each service sits
// on top of the repositories and stores and owns its form validation.
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/webquiz-admin/internal/client/models"
	"github.com/dmitrijs2005/webquiz-admin/internal/client/repositories/auth"
	"github.com/dmitrijs2005/webquiz-admin/internal/client/stores"
	"github.com/dmitrijs2005/webquiz-admin/internal/logging"
)

var ErrMissingFields = errors.New("all fields are required")

// SignupForm is validated before anything is sent.
type SignupForm struct {
	Name     string
	Email    string
	Password string
}

func (f SignupForm) Validate() error {
	if f.Name == "" || f.Email == "" || f.Password == "" {
		return ErrMissingFields
	}
	return nil
}

// SessionService drives who is signed in.
//
// Contract:
//   - Bootstrap: resolve a stored token into a user; any failure signs out silently.
//   - Signup: create an account; the caller signs in afterwards.
//   - Signin: exchange credentials for a token and load the user's notes.
//   - Signout: forget the user and the stored token.
type SessionService interface {
	Bootstrap(ctx context.Context) stores.AuthState
	Signup(ctx context.Context, form SignupForm) error
	Signin(ctx context.Context, email, password string) (models.User, error)
	Signout(ctx context.Context) error
}

type sessionService struct {
	auth      auth.Repository
	authStore *stores.AuthStore
	notes     *stores.NoteStore
	log       logging.Logger
}

func NewSessionService(repo auth.Repository, authStore *stores.AuthStore, notes *stores.NoteStore, log logging.Logger) SessionService {
	return &sessionService{auth: repo, authStore: authStore, notes: notes, log: log}
}

// Bootstrap runs once at start-up. With a stored token it asks the backend
// who the token belongs to; an error of any kind (expired token, network)
// clears the session without reporting it. Once a user is known their notes
// are fetched.
func (s *sessionService) Bootstrap(ctx context.Context) stores.AuthState {
	if !s.authStore.State().IsAuthenticated {
		return s.authStore.State()
	}

	user, err := s.auth.Me(ctx)
	if err != nil {
		s.log.Debug(ctx, "stored session rejected", "error", err)
		st, clearErr := s.authStore.ClearAuth(ctx)
		if clearErr != nil {
			s.log.Warn(ctx, "clear session", "error", clearErr)
		}
		return st
	}

	st := s.authStore.SetAuth(user)
	s.fetchNotes(ctx)
	return st
}

func (s *sessionService) Signup(ctx context.Context, form SignupForm) error {
	if err := form.Validate(); err != nil {
		return err
	}
	return s.auth.Signup(ctx, form.Name, form.Email, form.Password)
}

func (s *sessionService) Signin(ctx context.Context, email, password string) (models.User, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return models.User{}, ErrMissingFields
	}
	res, err := s.auth.Signin(ctx, email, password)
	if err != nil {
		return models.User{}, err
	}
	s.authStore.SetAuth(res.User)
	s.fetchNotes(ctx)
	return res.User, nil
}

// Signout forgets the session and the notes cached for it.
func (s *sessionService) Signout(ctx context.Context) error {
	_, err := s.authStore.ClearAuth(ctx)
	s.notes.Reset()
	if err != nil {
		return fmt.Errorf("signout: %w", err)
	}
	return nil
}

// fetchNotes failures land in the note store's error slot.
func (s *sessionService) fetchNotes(ctx context.Context) {
	_, _ = s.notes.FetchNotes(ctx)
}
