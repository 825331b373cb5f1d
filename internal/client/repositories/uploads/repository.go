// Package uploads sends editor images to the backend.
package uploads

import (
	"context"
	"errors"
	"fmt"
	"io"
)

const (
	notesPath = "/upload/notes"
	fileField = "file"
)

var ErrNoURL = errors.New("upload response carries no url")

type API interface {
	Upload(ctx context.Context, path, field, filename string, r io.Reader, out any) error
}

type Repository interface {
	UploadNoteImage(ctx context.Context, filename string, r io.Reader) (string, error)
}

type HTTPRepository struct {
	api API
}

func NewHTTPRepository(api API) *HTTPRepository {
	return &HTTPRepository{api: api}
}

// UploadNoteImage stores the file and returns the URL to embed in content.
func (r *HTTPRepository) UploadNoteImage(ctx context.Context, filename string, body io.Reader) (string, error) {
	var out struct {
		URL string `json:"url"`
	}
	if err := r.api.Upload(ctx, notesPath, fileField, filename, body, &out); err != nil {
		return "", fmt.Errorf("upload %s: %w", filename, err)
	}
	if out.URL == "" {
		return "", ErrNoURL
	}
	return out.URL, nil
}
