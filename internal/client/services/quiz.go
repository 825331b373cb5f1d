package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/dmitrijs2005/webquiz-admin/internal/client/models"
	"github.com/dmitrijs2005/webquiz-admin/internal/client/repositories/quizzes"
	"github.com/dmitrijs2005/webquiz-admin/internal/client/richtext"
	"golang.org/x/sync/errgroup"
)

var (
	ErrNoCategory      = errors.New("select a category")
	ErrTooFewChoices   = errors.New("enter at least two choices, including the correct one")
	ErrNoCorrectChoice = errors.New("mark at least one choice as correct")
	ErrNoCategories    = errors.New("no quiz categories")
)

// minChoices is also the number of blank rows a new form starts with.
const minChoices = 2

// QuizForm is the editable state of one quiz. CategoryID 0 means none picked.
type QuizForm struct {
	Slug        string
	Question    string
	Explanation string
	CategoryID  int64
	Choices     []models.ChoiceInput
	Tags        []string
}

func NewQuizForm() QuizForm {
	return QuizForm{Choices: make([]models.ChoiceInput, minChoices), Tags: []string{}}
}

// FormFromQuiz fills a form from a stored quiz. The explanation is normalized
// to the block format; a quiz without choices gets the blank rows of a new
// form.
func FormFromQuiz(q models.Quiz) QuizForm {
	f := NewQuizForm()
	f.Slug = q.Slug
	f.Question = q.Question
	f.Explanation = richtext.Normalize(q.Explanation)
	f.CategoryID = q.CategoryID
	if len(q.Choices) > 0 {
		f.Choices = make([]models.ChoiceInput, 0, len(q.Choices))
		for _, c := range q.Choices {
			f.Choices = append(f.Choices, models.ChoiceInput{ChoiceText: c.ChoiceText, IsCorrect: c.IsCorrect})
		}
	}
	if len(q.Tags) > 0 {
		f.Tags = q.TagSlugs()
	}
	return f
}

// Payload validates f and builds the request body. Without a category the
// first of categories is used. Blank choices are dropped before counting.
func (f QuizForm) Payload(categories []models.QuizCategory) (models.QuizInput, error) {
	catID := f.CategoryID
	if catID == 0 && len(categories) > 0 {
		catID = categories[0].ID
	}
	if catID == 0 {
		return models.QuizInput{}, ErrNoCategory
	}

	choices := make([]models.ChoiceInput, 0, len(f.Choices))
	for _, c := range f.Choices {
		if strings.TrimSpace(c.ChoiceText) != "" {
			choices = append(choices, c)
		}
	}
	if len(choices) < minChoices {
		return models.QuizInput{}, ErrTooFewChoices
	}
	correct := false
	for _, c := range choices {
		correct = correct || c.IsCorrect
	}
	if !correct {
		return models.QuizInput{}, ErrNoCorrectChoice
	}

	tags := f.Tags
	if tags == nil {
		tags = []string{}
	}
	return models.QuizInput{
		Slug:        strings.TrimSpace(f.Slug),
		Question:    strings.TrimSpace(f.Question),
		Explanation: strings.TrimSpace(f.Explanation),
		CategoryID:  catID,
		Choices:     choices,
		Tags:        tags,
	}, nil
}

func ValidateQuiz(f QuizForm, categories []models.QuizCategory) error {
	_, err := f.Payload(categories)
	return err
}

// MasterData is what the editor needs before a quiz can be edited.
type MasterData struct {
	Categories []models.QuizCategory
	Tags       []models.QuizTag
}

// QuizEditor loads, validates and saves quizzes.
type QuizEditor interface {
	LoadMaster(ctx context.Context) (MasterData, error)
	Browse(ctx context.Context, categoryID int64) (models.QuizCategory, []models.Quiz, error)
	Load(ctx context.Context, id int64) (QuizForm, error)
	Save(ctx context.Context, id *int64, form QuizForm) (models.Quiz, error)
	Delete(ctx context.Context, id int64) error
}

type quizEditor struct {
	repo quizzes.Repository

	mu     sync.Mutex
	master MasterData
}

func NewQuizEditor(repo quizzes.Repository) QuizEditor {
	return &quizEditor{repo: repo}
}

// LoadMaster fetches categories and tags concurrently and keeps them for
// Save.
func (e *quizEditor) LoadMaster(ctx context.Context) (MasterData, error) {
	var md MasterData
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		cats, err := e.repo.GetCategories(gctx)
		md.Categories = cats
		return err
	})
	g.Go(func() error {
		tags, err := e.repo.GetTags(gctx)
		md.Tags = tags
		return err
	})
	if err := g.Wait(); err != nil {
		return MasterData{}, fmt.Errorf("load master data: %w", err)
	}

	e.mu.Lock()
	e.master = md
	e.mu.Unlock()
	return md, nil
}

// Browse lists the quizzes of a category; categoryID 0 picks the first one.
func (e *quizEditor) Browse(ctx context.Context, categoryID int64) (models.QuizCategory, []models.Quiz, error) {
	cats, err := e.repo.GetCategories(ctx)
	if err != nil {
		return models.QuizCategory{}, nil, err
	}
	if len(cats) == 0 {
		return models.QuizCategory{}, nil, ErrNoCategories
	}
	cat := cats[0]
	if categoryID != 0 {
		found := false
		for _, c := range cats {
			if c.ID == categoryID {
				cat, found = c, true
				break
			}
		}
		if !found {
			return models.QuizCategory{}, nil, fmt.Errorf("category %d: %w", categoryID, ErrNoCategory)
		}
	}

	list, err := e.repo.GetQuizzesByCategory(ctx, cat.ID)
	if err != nil {
		return cat, nil, err
	}
	return cat, list, nil
}

func (e *quizEditor) Load(ctx context.Context, id int64) (QuizForm, error) {
	q, err := e.repo.GetByID(ctx, id)
	if err != nil {
		return QuizForm{}, err
	}
	return FormFromQuiz(q), nil
}

// Save creates the quiz when id is nil and replaces quiz *id otherwise. An
// invalid form is rejected before any request is made.
func (e *quizEditor) Save(ctx context.Context, id *int64, form QuizForm) (models.Quiz, error) {
	e.mu.Lock()
	cats := e.master.Categories
	e.mu.Unlock()

	in, err := form.Payload(cats)
	if err != nil {
		return models.Quiz{}, err
	}
	if id == nil {
		return e.repo.Create(ctx, in)
	}
	return e.repo.Update(ctx, *id, in.Patch())
}

func (e *quizEditor) Delete(ctx context.Context, id int64) error {
	return e.repo.Remove(ctx, id)
}
