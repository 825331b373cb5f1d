// Package notes maps note operations to the /notes endpoints.
package notes

import (
	"context"
	"fmt"
	"net/http"

	"github.com/dmitrijs2005/webquiz-admin/internal/client/models"
)

type API interface {
	Do(ctx context.Context, method, path string, body, out any) error
}

type Repository interface {
	GetAll(ctx context.Context) ([]models.Note, error)
	GetByID(ctx context.Context, id int64) (models.Note, error)
	Create(ctx context.Context, in models.NoteCreate) (models.Note, error)
	Update(ctx context.Context, id int64, patch models.NotePatch) (models.Note, error)
	Remove(ctx context.Context, id int64) error
}

type HTTPRepository struct {
	api API
}

func NewHTTPRepository(api API) *HTTPRepository {
	return &HTTPRepository{api: api}
}

func notePath(id int64) string {
	return fmt.Sprintf("/notes/%d", id)
}

func (r *HTTPRepository) GetAll(ctx context.Context) ([]models.Note, error) {
	var out []models.Note
	if err := r.api.Do(ctx, http.MethodGet, "/notes", nil, &out); err != nil {
		return nil, fmt.Errorf("list notes: %w", err)
	}
	if out == nil {
		out = []models.Note{}
	}
	return out, nil
}

func (r *HTTPRepository) GetByID(ctx context.Context, id int64) (models.Note, error) {
	var out models.Note
	if err := r.api.Do(ctx, http.MethodGet, notePath(id), nil, &out); err != nil {
		return models.Note{}, fmt.Errorf("get note %d: %w", id, err)
	}
	return out, nil
}

func (r *HTTPRepository) Create(ctx context.Context, in models.NoteCreate) (models.Note, error) {
	var out models.Note
	if err := r.api.Do(ctx, http.MethodPost, "/notes", in, &out); err != nil {
		return models.Note{}, fmt.Errorf("create note: %w", err)
	}
	return out, nil
}

func (r *HTTPRepository) Update(ctx context.Context, id int64, patch models.NotePatch) (models.Note, error) {
	var out models.Note
	if err := r.api.Do(ctx, http.MethodPut, notePath(id), patch, &out); err != nil {
		return models.Note{}, fmt.Errorf("update note %d: %w", id, err)
	}
	return out, nil
}

// Remove asks the backend to soft-delete the note.
func (r *HTTPRepository) Remove(ctx context.Context, id int64) error {
	if err := r.api.Do(ctx, http.MethodDelete, notePath(id), nil, nil); err != nil {
		return fmt.Errorf("delete note %d: %w", id, err)
	}
	return nil
}
