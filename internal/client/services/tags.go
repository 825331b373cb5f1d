package services

import (
	"context"
	"errors"
	"slices"
	"strings"
	"sync"

	"github.com/dmitrijs2005/webquiz-admin/internal/client/models"
	"github.com/dmitrijs2005/webquiz-admin/internal/client/repositories/quizzes"
)

var ErrTagFieldsRequired = errors.New("slug and name are required")

// TagManager keeps a local tag list in step with the backend: append on
// create, replace on update, remove on delete.
type TagManager interface {
	Load(ctx context.Context) ([]models.QuizTag, error)
	Tags() []models.QuizTag
	Create(ctx context.Context, slug, name string) (models.QuizTag, error)
	Update(ctx context.Context, id int64, slug, name string) (models.QuizTag, error)
	Delete(ctx context.Context, id int64) error
}

type tagManager struct {
	repo quizzes.Repository

	mu   sync.Mutex
	tags []models.QuizTag
}

func NewTagManager(repo quizzes.Repository) TagManager {
	return &tagManager{repo: repo, tags: []models.QuizTag{}}
}

func (m *tagManager) Load(ctx context.Context) ([]models.QuizTag, error) {
	list, err := m.repo.GetTags(ctx)
	if err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tags = list
	return slices.Clone(m.tags), nil
}

func (m *tagManager) Tags() []models.QuizTag {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.tags)
}

func tagFields(slug, name string) (string, string, error) {
	slug, name = strings.TrimSpace(slug), strings.TrimSpace(name)
	if slug == "" || name == "" {
		return "", "", ErrTagFieldsRequired
	}
	return slug, name, nil
}

func (m *tagManager) Create(ctx context.Context, slug, name string) (models.QuizTag, error) {
	slug, name, err := tagFields(slug, name)
	if err != nil {
		return models.QuizTag{}, err
	}
	created, err := m.repo.CreateTag(ctx, models.TagInput{Slug: slug, Name: name})
	if err != nil {
		return models.QuizTag{}, err
	}
	m.mu.Lock()
	m.tags = append(m.tags, created)
	m.mu.Unlock()
	return created, nil
}

func (m *tagManager) Update(ctx context.Context, id int64, slug, name string) (models.QuizTag, error) {
	slug, name, err := tagFields(slug, name)
	if err != nil {
		return models.QuizTag{}, err
	}
	updated, err := m.repo.UpdateTag(ctx, id, models.TagPatch{Slug: &slug, Name: &name})
	if err != nil {
		return models.QuizTag{}, err
	}
	m.mu.Lock()
	for i := range m.tags {
		if m.tags[i].ID == id {
			m.tags[i] = updated
		}
	}
	m.mu.Unlock()
	return updated, nil
}

func (m *tagManager) Delete(ctx context.Context, id int64) error {
	if err := m.repo.RemoveTag(ctx, id); err != nil {
		return err
	}
	m.mu.Lock()
	m.tags = slices.DeleteFunc(m.tags, func(t models.QuizTag) bool { return t.ID == id })
	m.mu.Unlock()
	return nil
}
