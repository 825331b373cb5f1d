package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/webquiz-admin/internal/client/models"
)

func printTags(list []models.QuizTag) {
	if len(list) == 0 {
		printlnFn("No tags")
	}
	for _, t := range list {
		printlnFn(fmt.Sprintf("%6d  %-20s  %s", t.ID, t.Slug, t.Name))
	}
}

func (a *App) ListTags(ctx context.Context) error {
	list, err := a.tags.Load(ctx)
	if err != nil {
		return a.report(ctx, err, "failed to load tags")
	}
	printTags(list)
	return nil
}

func (a *App) AddTag(ctx context.Context) error {
	slug, err := getSimpleText(a.reader, "Enter slug", a.out)
	if err != nil {
		return err
	}
	name, err := getSimpleText(a.reader, "Enter name", a.out)
	if err != nil {
		return err
	}
	t, err := a.tags.Create(ctx, slug, name)
	if err != nil {
		return a.report(ctx, err, "failed to create tag")
	}
	printlnFn(fmt.Sprintf("Created tag %d %s", t.ID, t.Slug))
	return nil
}

// EditTag prompts with the current slug and name; empty answers keep them.
func (a *App) EditTag(ctx context.Context, id int64) error {
	if len(a.tags.Tags()) == 0 {
		if _, err := a.tags.Load(ctx); err != nil {
			return a.report(ctx, err, "failed to load tags")
		}
	}
	var current models.QuizTag
	found := false
	for _, t := range a.tags.Tags() {
		if t.ID == id {
			current, found = t, true
			break
		}
	}
	if !found {
		printlnFn(fmt.Sprintf("Error: no tag %d", id))
		return nil
	}

	slug, err := getSimpleText(a.reader, fmt.Sprintf("Enter slug [%s]", current.Slug), a.out)
	if err != nil {
		return err
	}
	if slug == "" {
		slug = current.Slug
	}
	name, err := getSimpleText(a.reader, fmt.Sprintf("Enter name [%s]", current.Name), a.out)
	if err != nil {
		return err
	}
	if name == "" {
		name = current.Name
	}

	if _, err := a.tags.Update(ctx, id, slug, name); err != nil {
		return a.report(ctx, err, "failed to update tag")
	}
	printlnFn("Saved")
	return nil
}

func (a *App) DeleteTag(ctx context.Context, id int64) error {
	answer, err := getSimpleText(a.reader, fmt.Sprintf("Delete tag %d? (y/N)", id), a.out)
	if err != nil {
		return err
	}
	if !confirmed(answer) {
		return nil
	}
	if err := a.tags.Delete(ctx, id); err != nil {
		return a.report(ctx, err, "failed to delete tag")
	}
	printlnFn("Deleted")
	return nil
}
