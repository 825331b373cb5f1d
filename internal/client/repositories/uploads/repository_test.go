package uploads

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/dmitrijs2005/webquiz-admin/internal/client/apitest"
	"github.com/dmitrijs2005/webquiz-admin/internal/client/httpapi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type token string

func (t token) Token(context.Context) (string, error) { return string(t), nil }

func TestUploadNoteImage(t *testing.T) {
	b := apitest.New(t)
	b.SeedUser("Alice", "alice@example.com", "pw")
	repo := NewHTTPRepository(httpapi.New(b.URL(), token(b.Session("alice@example.com"))))

	url, err := repo.UploadNoteImage(context.Background(), "diagram.png", strings.NewReader("\x89PNG"))
	require.NoError(t, err)
	assert.Contains(t, url, "diagram.png")
	assert.Equal(t, []string{"diagram.png"}, b.Uploads())
	assert.Equal(t, 1, b.CallCount("POST", "/upload/notes"))
}

func TestUploadNoteImage_Unauthorized(t *testing.T) {
	b := apitest.New(t)
	repo := NewHTTPRepository(httpapi.New(b.URL(), token("")))

	_, err := repo.UploadNoteImage(context.Background(), "x.png", strings.NewReader("x"))
	require.ErrorIs(t, err, httpapi.ErrUnauthorized)
	assert.Empty(t, b.Uploads())
}

type fakeAPI struct{ url string }

func (f fakeAPI) Upload(_ context.Context, _, _, _ string, _ io.Reader, out any) error {
	out.(*struct {
		URL string `json:"url"`
	}).URL = f.url
	return nil
}

func TestUploadNoteImage_NoURL(t *testing.T) {
	_, err := NewHTTPRepository(fakeAPI{}).UploadNoteImage(context.Background(), "x.png", strings.NewReader("x"))
	require.ErrorIs(t, err, ErrNoURL)
}
