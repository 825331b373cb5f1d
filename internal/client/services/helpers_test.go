package services

import (
	"context"
	"database/sql"
	"strings"
	"testing"

	"github.com/dmitrijs2005/webquiz-admin/internal/client/apitest"
	"github.com/dmitrijs2005/webquiz-admin/internal/client/httpapi"
	"github.com/dmitrijs2005/webquiz-admin/internal/client/storage"
	"github.com/dmitrijs2005/webquiz-admin/internal/client/tokens"
	"github.com/stretchr/testify/require"
)

type token string

func (t token) Token(context.Context) (string, error) { return string(t), nil }

func ptr[T any](v T) *T { return &v }

// ---- helpers ----

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	dsn := "file:" + strings.ReplaceAll(t.Name(), "/", "_") + "?mode=memory&cache=shared"
	db, err := storage.InitDatabase(context.Background(), dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

// adminAPI returns a backend with one signed-in admin and a client for it.
func adminAPI(t *testing.T) (*apitest.Backend, *httpapi.Client) {
	t.Helper()
	b := apitest.New(t)
	b.SeedUser("Admin", "admin@example.com", "pw")
	return b, httpapi.New(b.URL(), token(b.Session("admin@example.com")))
}

func tokenStore(t *testing.T) *tokens.Store {
	t.Helper()
	return tokens.NewStore(setupDB(t))
}
