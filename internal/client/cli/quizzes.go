package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/webquiz-admin/internal/client/richtext"
	"github.com/dmitrijs2005/webquiz-admin/internal/client/services"
)

func (a *App) Categories(ctx context.Context) error {
	md, err := a.quizzes.LoadMaster(ctx)
	if err != nil {
		return a.report(ctx, err, "failed to load categories")
	}
	if len(md.Categories) == 0 {
		printlnFn("No categories")
	}
	for _, c := range md.Categories {
		printlnFn(fmt.Sprintf("%6d  %-20s  %s", c.ID, c.Slug, c.CategoryName))
	}
	return nil
}

// Quizzes lists a category's quizzes; categoryID 0 means the first category.
func (a *App) Quizzes(ctx context.Context, categoryID int64) error {
	cat, list, err := a.quizzes.Browse(ctx, categoryID)
	if err != nil {
		return a.report(ctx, err, "failed to load quizzes")
	}
	printlnFn(fmt.Sprintf("Category %d %s", cat.ID, cat.CategoryName))
	if len(list) == 0 {
		printlnFn("No quizzes")
	}
	for _, q := range list {
		printlnFn(fmt.Sprintf("%6d  %-24s  %s", q.ID, q.Slug, q.Question))
	}
	return nil
}

func (a *App) ShowQuiz(ctx context.Context, id int64) error {
	f, err := a.quizzes.Load(ctx, id)
	if err != nil {
		return a.report(ctx, err, "failed to load quiz")
	}
	printForm(id, f)
	return nil
}

func printForm(id int64, f services.QuizForm) {
	printlnFn(fmt.Sprintf("Quiz %d [%s] category %d", id, f.Slug, f.CategoryID))
	printlnFn("Q:", f.Question)
	for i, c := range f.Choices {
		mark := " "
		if c.IsCorrect {
			mark = "*"
		}
		printlnFn(fmt.Sprintf("  %s %d. %s", mark, i+1, c.ChoiceText))
	}
	if len(f.Tags) > 0 {
		printlnFn("Tags:", strings.Join(f.Tags, ", "))
	}
	if text := richtext.Text(f.Explanation); text != "" {
		printlnFn("Explanation:")
		printlnFn(text)
	}
}

// NewQuiz walks through the quiz form. A blank category picks the first one.
func (a *App) NewQuiz(ctx context.Context) error {
	if _, err := a.quizzes.LoadMaster(ctx); err != nil {
		return a.report(ctx, err, "failed to load master data")
	}

	f := services.NewQuizForm()
	if err := a.fillQuizForm(&f, false); err != nil {
		return err
	}

	q, err := a.quizzes.Save(ctx, nil, f)
	if err != nil {
		return a.report(ctx, err, "failed to save quiz")
	}
	printlnFn(fmt.Sprintf("Created quiz %d", q.ID))
	return nil
}

// EditQuiz shows each current value; an empty answer keeps it.
func (a *App) EditQuiz(ctx context.Context, id int64) error {
	if _, err := a.quizzes.LoadMaster(ctx); err != nil {
		return a.report(ctx, err, "failed to load master data")
	}
	f, err := a.quizzes.Load(ctx, id)
	if err != nil {
		return a.report(ctx, err, "failed to load quiz")
	}
	printForm(id, f)

	if err := a.fillQuizForm(&f, true); err != nil {
		return err
	}

	if _, err := a.quizzes.Save(ctx, &id, f); err != nil {
		return a.report(ctx, err, "failed to save quiz")
	}
	printlnFn("Saved")
	return nil
}

func (a *App) fillQuizForm(f *services.QuizForm, editing bool) error {
	ask := func(label, current string) (string, error) {
		prompt := "Enter " + label
		if editing && current != "" {
			prompt = fmt.Sprintf("Enter %s [%s]", label, current)
		}
		v, err := getSimpleText(a.reader, prompt, a.out)
		if err != nil || v == "" {
			return current, err
		}
		return v, nil
	}

	var err error
	if f.Slug, err = ask("slug", f.Slug); err != nil {
		return err
	}
	if f.Question, err = ask("question", f.Question); err != nil {
		return err
	}

	explanation, err := GetMultiline(a.reader, "Enter explanation (empty keeps the current one)", a.out)
	if err != nil {
		return err
	}
	if explanation != "" {
		if f.Explanation, err = richtext.FromPlainText(explanation).Marshal(); err != nil {
			return err
		}
	}

	current := ""
	if f.CategoryID != 0 {
		current = strconv.FormatInt(f.CategoryID, 10)
	}
	cat, err := ask("category id", current)
	if err != nil {
		return err
	}
	if cat != current {
		id, perr := strconv.ParseInt(cat, 10, 64)
		if perr != nil {
			printlnFn("Error: category id must be a number")
			return perr
		}
		f.CategoryID = id
	}

	replace := !editing
	if editing {
		answer, err := getSimpleText(a.reader, "Replace choices? (y/N)", a.out)
		if err != nil {
			return err
		}
		replace = confirmed(answer)
	}
	if replace {
		choices, err := GetChoices(a.reader, a.out)
		if err != nil {
			return err
		}
		f.Choices = choices
	}

	tags, err := ask("tag slugs, comma separated ('-' for none)", strings.Join(f.Tags, ","))
	if err != nil {
		return err
	}
	if tags == "-" {
		f.Tags = []string{}
	} else {
		f.Tags = SplitList(tags)
	}
	return nil
}

func (a *App) DeleteQuiz(ctx context.Context, id int64) error {
	answer, err := getSimpleText(a.reader, fmt.Sprintf("Delete quiz %d? (y/N)", id), a.out)
	if err != nil {
		return err
	}
	if !confirmed(answer) {
		return nil
	}
	if err := a.quizzes.Delete(ctx, id); err != nil {
		return a.report(ctx, err, "failed to delete quiz")
	}
	printlnFn("Deleted")
	return nil
}
