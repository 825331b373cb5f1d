// Package quizzes maps quiz, category and tag operations to the /quiz
// endpoints.
package quizzes

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
	GetCategories(ctx context.Context) ([]models.QuizCategory, error)
	GetQuizzesByCategory(ctx context.Context, categoryID int64) ([]models.Quiz, error)
	GetByID(ctx context.Context, id int64) (models.Quiz, error)
	Create(ctx context.Context, in models.QuizInput) (models.Quiz, error)
	Update(ctx context.Context, id int64, patch models.QuizPatch) (models.Quiz, error)
	Remove(ctx context.Context, id int64) error

	GetTags(ctx context.Context) ([]models.QuizTag, error)
	CreateTag(ctx context.Context, in models.TagInput) (models.QuizTag, error)
	UpdateTag(ctx context.Context, id int64, patch models.TagPatch) (models.QuizTag, error)
	RemoveTag(ctx context.Context, id int64) error
}

type HTTPRepository struct {
	api API
}

func NewHTTPRepository(api API) *HTTPRepository {
	return &HTTPRepository{api: api}
}

func (r *HTTPRepository) GetCategories(ctx context.Context) ([]models.QuizCategory, error) {
	out := []models.QuizCategory{}
	if err := r.api.Do(ctx, http.MethodGet, "/quiz/categories", nil, &out); err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return out, nil
}

func (r *HTTPRepository) GetQuizzesByCategory(ctx context.Context, categoryID int64) ([]models.Quiz, error) {
	out := []models.Quiz{}
	path := fmt.Sprintf("/quiz/category/%d/quizzes", categoryID)
	if err := r.api.Do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, fmt.Errorf("list quizzes of category %d: %w", categoryID, err)
	}
	return out, nil
}

func (r *HTTPRepository) GetByID(ctx context.Context, id int64) (models.Quiz, error) {
	var out models.Quiz
	if err := r.api.Do(ctx, http.MethodGet, fmt.Sprintf("/quiz/%d", id), nil, &out); err != nil {
		return models.Quiz{}, fmt.Errorf("get quiz %d: %w", id, err)
	}
	return out, nil
}

func (r *HTTPRepository) Create(ctx context.Context, in models.QuizInput) (models.Quiz, error) {
	if in.Choices == nil {
		in.Choices = []models.ChoiceInput{}
	}
	if in.Tags == nil {
		in.Tags = []string{}
	}
	var out models.Quiz
	if err := r.api.Do(ctx, http.MethodPost, "/quiz", in, &out); err != nil {
		return models.Quiz{}, fmt.Errorf("create quiz: %w", err)
	}
	return out, nil
}

func (r *HTTPRepository) Update(ctx context.Context, id int64, patch models.QuizPatch) (models.Quiz, error) {
	var out models.Quiz
	if err := r.api.Do(ctx, http.MethodPut, fmt.Sprintf("/quiz/%d", id), patch, &out); err != nil {
		return models.Quiz{}, fmt.Errorf("update quiz %d: %w", id, err)
	}
	return out, nil
}

func (r *HTTPRepository) Remove(ctx context.Context, id int64) error {
	if err := r.api.Do(ctx, http.MethodDelete, fmt.Sprintf("/quiz/%d", id), nil, nil); err != nil {
		return fmt.Errorf("delete quiz %d: %w", id, err)
	}
	return nil
}

func (r *HTTPRepository) GetTags(ctx context.Context) ([]models.QuizTag, error) {
	out := []models.QuizTag{}
	if err := r.api.Do(ctx, http.MethodGet, "/quiz/tags", nil, &out); err != nil {
		return nil, fmt.Errorf("list tags: %w", err)
	}
	return out, nil
}

func (r *HTTPRepository) CreateTag(ctx context.Context, in models.TagInput) (models.QuizTag, error) {
	var out models.QuizTag
	if err := r.api.Do(ctx, http.MethodPost, "/quiz/tags", in, &out); err != nil {
		return models.QuizTag{}, fmt.Errorf("create tag: %w", err)
	}
	return out, nil
}

func (r *HTTPRepository) UpdateTag(ctx context.Context, id int64, patch models.TagPatch) (models.QuizTag, error) {
	var out models.QuizTag
	if err := r.api.Do(ctx, http.MethodPut, fmt.Sprintf("/quiz/tags/%d", id), patch, &out); err != nil {
		return models.QuizTag{}, fmt.Errorf("update tag %d: %w", id, err)
	}
	return out, nil
}

func (r *HTTPRepository) RemoveTag(ctx context.Context, id int64) error {
	if err := r.api.Do(ctx, http.MethodDelete, fmt.Sprintf("/quiz/tags/%d", id), nil, nil); err != nil {
		return fmt.Errorf("delete tag %d: %w", id, err)
	}
	return nil
}
