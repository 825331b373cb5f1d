package quizzes

import (
	"context"
	"net/http"
	"testing"

	"github.com/dmitrijs2005/webquiz-admin/internal/client/apitest"
	"github.com/dmitrijs2005/webquiz-admin/internal/client/httpapi"
	"github.com/dmitrijs2005/webquiz-admin/internal/client/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type token string

func (t token) Token(context.Context) (string, error) { return string(t), nil }

func setup(t *testing.T) (*HTTPRepository, *apitest.Backend) {
	t.Helper()
	b := apitest.New(t)
	b.SeedUser("Admin", "admin@example.com", "pw")
	api := httpapi.New(b.URL(), token(b.Session("admin@example.com")))
	return NewHTTPRepository(api), b
}

func ptr[T any](v T) *T { return &v }

func TestCategoriesAndQuizzesByCategory(t *testing.T) {
	repo, b := setup(t)
	ctx := context.Background()
	goCat := b.SeedCategory("go", "Go")
	sqlCat := b.SeedCategory("sql", "SQL")
	q := b.SeedQuiz(models.Quiz{Slug: "maps", Question: "Are maps ordered?", CategoryID: goCat.ID})
	b.SeedQuiz(models.Quiz{Slug: "joins", Question: "Inner join?", CategoryID: sqlCat.ID})

	cats, err := repo.GetCategories(ctx)
	require.NoError(t, err)
	assert.Equal(t, []models.QuizCategory{goCat, sqlCat}, cats)

	list, err := repo.GetQuizzesByCategory(ctx, goCat.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, q.ID, list[0].ID)

	empty, err := repo.GetQuizzesByCategory(ctx, 999)
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)
}

func TestCreateQuiz(t *testing.T) {
	repo, b := setup(t)
	ctx := context.Background()
	cat := b.SeedCategory("go", "Go")
	b.SeedTag("basics", "Basics")

	q, err := repo.Create(ctx, models.QuizInput{
		Slug:       "zero-values",
		Question:   "What is the zero value of a map?",
		CategoryID: cat.ID,
		Choices: []models.ChoiceInput{
			{ChoiceText: "nil", IsCorrect: true},
			{ChoiceText: "empty map"},
		},
		Tags: []string{"basics"},
	})
	require.NoError(t, err)
	assert.NotZero(t, q.ID)
	require.Len(t, q.Choices, 2)
	assert.Equal(t, q.ID, *q.Choices[0].QuizID)
	assert.True(t, q.Choices[0].IsCorrect)
	assert.Equal(t, []string{"basics"}, q.TagSlugs())

	_, err = repo.Create(ctx, models.QuizInput{Slug: "zero-values", Question: "again", CategoryID: cat.ID})
	require.Error(t, err)
	msg, ok := httpapi.ServerMessage(err)
	require.True(t, ok)
	assert.Equal(t, "slug already exists", msg)
}

func TestCreateQuiz_NilSlicesSentEmpty(t *testing.T) {
	repo, b := setup(t)
	cat := b.SeedCategory("go", "Go")

	q, err := repo.Create(context.Background(), models.QuizInput{Slug: "s", Question: "q", CategoryID: cat.ID})
	require.NoError(t, err)
	stored, ok := b.Quiz(q.ID)
	require.True(t, ok)
	assert.Empty(t, stored.Choices)
	assert.Empty(t, stored.Tags)
}

func TestUpdateQuiz_PartialAndFull(t *testing.T) {
	repo, b := setup(t)
	ctx := context.Background()
	cat := b.SeedCategory("go", "Go")
	q := b.SeedQuiz(models.Quiz{
		Slug: "chan", Question: "Closed channel read?", CategoryID: cat.ID,
		Choices: []models.QuizChoice{{ChoiceText: "zero value", IsCorrect: true}},
	})

	got, err := repo.Update(ctx, q.ID, models.QuizPatch{Question: ptr("Reading from a closed channel?")})
	require.NoError(t, err)
	assert.Equal(t, "Reading from a closed channel?", got.Question)
	assert.Equal(t, "chan", got.Slug)
	assert.Len(t, got.Choices, 1, "choices untouched when absent")

	in := models.QuizInput{Slug: "chan-closed", Question: "Q", CategoryID: cat.ID}
	got, err = repo.Update(ctx, q.ID, in.Patch())
	require.NoError(t, err)
	assert.Equal(t, "chan-closed", got.Slug)
	assert.Empty(t, got.Choices, "full update replaces choices")
}

func TestGetAndRemoveQuiz(t *testing.T) {
	repo, b := setup(t)
	ctx := context.Background()
	q := b.SeedQuiz(models.Quiz{Slug: "x", Question: "y"})

	got, err := repo.GetByID(ctx, q.ID)
	require.NoError(t, err)
	assert.Equal(t, "x", got.Slug)

	require.NoError(t, repo.Remove(ctx, q.ID))
	_, ok := b.Quiz(q.ID)
	assert.False(t, ok)

	err = repo.Remove(ctx, q.ID)
	require.Error(t, err)
	msg, _ := httpapi.ServerMessage(err)
	assert.Equal(t, "quiz not found", msg)
}

func TestTags(t *testing.T) {
	repo, b := setup(t)
	ctx := context.Background()

	created, err := repo.CreateTag(ctx, models.TagInput{Slug: "generics", Name: "Generics"})
	require.NoError(t, err)
	assert.Equal(t, "generics", created.Slug)

	_, err = repo.CreateTag(ctx, models.TagInput{Slug: "generics", Name: "Dup"})
	require.Error(t, err)

	updated, err := repo.UpdateTag(ctx, created.ID, models.TagPatch{Name: ptr("Type parameters")})
	require.NoError(t, err)
	assert.Equal(t, "generics", updated.Slug)
	assert.Equal(t, "Type parameters", updated.Name)

	tags, err := repo.GetTags(ctx)
	require.NoError(t, err)
	assert.Equal(t, []models.QuizTag{updated}, tags)

	require.NoError(t, repo.RemoveTag(ctx, created.ID))
	assert.Empty(t, b.Tags())
}

func TestUnavailable(t *testing.T) {
	repo, b := setup(t)
	b.Fail(http.MethodGet, "/quiz/categories", http.StatusBadGateway, "upstream")

	_, err := repo.GetCategories(context.Background())
	require.ErrorIs(t, err, httpapi.ErrUnavailable)
}
