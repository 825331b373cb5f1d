package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/dmitrijs2005/webquiz-admin/internal/client/models"
	"github.com/dmitrijs2005/webquiz-admin/internal/client/richtext"
)

func printNotes(list []models.Note) {
	if len(list) == 0 {
		printlnFn("No notes")
		return
	}
	for _, n := range list {
		printlnFn(fmt.Sprintf("%6d  %-40s  %s", n.ID, n.Title, n.UpdatedAt.Format(time.DateTime)))
	}
}

func (a *App) ListNotes(ctx context.Context) error {
	st, err := a.notes.FetchNotes(ctx)
	if err != nil {
		printlnFn("Error:", st.Error)
	}
	printNotes(st.Notes)
	return err
}

// SearchNotes filters the notes already loaded; it does not hit the backend.
func (a *App) SearchNotes(_ context.Context, keyword string) error {
	printNotes(a.notes.Search(keyword))
	return nil
}

func (a *App) OpenNote(ctx context.Context, id int64) error {
	a.stopAutosave()
	st, err := a.notes.FetchNote(ctx, id)
	if err != nil {
		printlnFn("Error:", st.Error)
		return err
	}
	printNote(*st.CurrentNote)
	return nil
}

func printNote(n models.Note) {
	printlnFn(fmt.Sprintf("# %s  (id %d, updated %s)", n.Title, n.ID, n.UpdatedAt.Format(time.DateTime)))
	if text := richtext.Text(n.Content); text != "" {
		printlnFn(text)
	}
}

// NewNote creates a note and opens it. Without a title the default one is
// used.
func (a *App) NewNote(ctx context.Context, title string) error {
	n, _, err := a.notes.CreateNote(ctx, title, nil)
	if err != nil {
		return a.report(ctx, err, "failed to create note")
	}
	printlnFn(fmt.Sprintf("Created note %d %q", n.ID, n.Title))
	return a.OpenNote(ctx, n.ID)
}

func (a *App) currentNote() (models.Note, bool) {
	n := a.notes.State().CurrentNote
	if n == nil {
		printlnFn("No note open (use 'open <id>' or 'new')")
		return models.Note{}, false
	}
	return *n, true
}

func (a *App) RenameNote(ctx context.Context) error {
	n, ok := a.currentNote()
	if !ok {
		return nil
	}
	title, err := getSimpleText(a.reader, fmt.Sprintf("Enter title [%s]", n.Title), a.out)
	if err != nil {
		return err
	}
	if title == "" || title == n.Title {
		return nil
	}
	return a.saveNote(ctx, n.ID, models.NotePatch{Title: &title})
}

// EditNote replaces the body of the open note with the entered text, one
// paragraph per line.
func (a *App) EditNote(ctx context.Context) error {
	n, ok := a.currentNote()
	if !ok {
		return nil
	}
	text, err := GetMultiline(a.reader, "Enter note text", a.out)
	if err != nil {
		return err
	}
	content, err := richtext.FromPlainText(text).Marshal()
	if err != nil {
		return a.report(ctx, err, "failed to encode note")
	}
	return a.saveNote(ctx, n.ID, models.NotePatch{Content: &content})
}

func (a *App) DeleteNote(ctx context.Context, id int64) error {
	answer, err := getSimpleText(a.reader, fmt.Sprintf("Delete note %d? (y/N)", id), a.out)
	if err != nil {
		return err
	}
	if !confirmed(answer) {
		return nil
	}
	if cur := a.notes.State().CurrentNote; cur != nil && cur.ID == id {
		a.stopAutosave()
	}
	if _, err := a.notes.DeleteNote(ctx, id); err != nil {
		return a.report(ctx, err, "failed to delete note")
	}
	printlnFn("Deleted")
	return nil
}

func (a *App) CloseNote(_ context.Context) error {
	a.stopAutosave()
	a.notes.ClearCurrentNote()
	return nil
}

// UploadImage uploads a local image and appends it to the open note. With
// no note open only the URL is printed.
func (a *App) UploadImage(ctx context.Context, path string) error {
	a.stopAutosave()
	f, err := os.Open(path)
	if err != nil {
		printlnFn("Error:", err)
		return err
	}
	defer f.Close()

	url, err := a.uploads.UploadNoteImage(ctx, filepath.Base(path), f)
	if err != nil {
		return a.report(ctx, err, "upload failed")
	}
	printlnFn("Uploaded:", url)

	n := a.notes.State().CurrentNote
	if n == nil {
		return nil
	}
	doc, err := richtext.Parse(n.Content)
	if err != nil {
		return a.report(ctx, err, "cannot read note content")
	}
	content, err := append(doc, richtext.Image(url)).Marshal()
	if err != nil {
		return a.report(ctx, err, "failed to encode note")
	}
	return a.saveNote(ctx, n.ID, models.NotePatch{Content: &content})
}
