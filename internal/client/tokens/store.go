// Package tokens persists the bearer token issued at sign-in.
//
// The token lives in persistent local storage under the "token" key and is
// read back on every request; nothing here validates or refreshes it.
package tokens

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/webquiz-admin/internal/client/repositories/localstore"
	"github.com/dmitrijs2005/webquiz-admin/internal/dbx"
)

const (
	KeyToken     = "token"
	KeyLastEmail = "last_email"
)

type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) repo(db dbx.DBTX) localstore.Repository {
	return localstore.NewSQLiteRepository(db)
}

// Token returns the stored token, or "" when there is none.
func (s *Store) Token(ctx context.Context) (string, error) {
	t, _, err := s.repo(s.db).Get(ctx, KeyToken)
	if err != nil {
		return "", fmt.Errorf("read token: %w", err)
	}
	return t, nil
}

func (s *Store) HasToken(ctx context.Context) (bool, error) {
	t, err := s.Token(ctx)
	if err != nil {
		return false, err
	}
	return t != "", nil
}

func (s *Store) SetToken(ctx context.Context, token string) error {
	if err := s.repo(s.db).Set(ctx, KeyToken, token); err != nil {
		return fmt.Errorf("save token: %w", err)
	}
	return nil
}

// SaveSession stores the token together with the e-mail used to sign in, in
// one transaction. The e-mail pre-fills the next sign-in prompt.
func (s *Store) SaveSession(ctx context.Context, token, email string) error {
	return dbx.WithTx(ctx, s.db, func(ctx context.Context, tx dbx.DBTX) error {
		r := s.repo(tx)
		if err := r.Set(ctx, KeyToken, token); err != nil {
			return fmt.Errorf("save token: %w", err)
		}
		if err := r.Set(ctx, KeyLastEmail, email); err != nil {
			return fmt.Errorf("save email: %w", err)
		}
		return nil
	})
}

// ClearToken removes the token. The remembered e-mail is kept.
func (s *Store) ClearToken(ctx context.Context) error {
	if err := s.repo(s.db).Delete(ctx, KeyToken); err != nil {
		return fmt.Errorf("clear token: %w", err)
	}
	return nil
}

func (s *Store) LastEmail(ctx context.Context) (string, error) {
	v, _, err := s.repo(s.db).Get(ctx, KeyLastEmail)
	if err != nil {
		return "", fmt.Errorf("read email: %w", err)
	}
	return v, nil
}
