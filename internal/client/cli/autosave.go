package cli

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/webquiz-admin/internal/client/autosave"
	"github.com/dmitrijs2005/webquiz-admin/internal/client/models"
	"github.com/dmitrijs2005/webquiz-admin/internal/client/services"
)

// autosaver feeds note edits to a Coalescer running in the background.
type autosaver struct {
	edits  chan autosave.Edit
	done   chan error
	cancel context.CancelFunc
}

// notices holds messages produced off the REPL goroutine until the REPL can
// print them between commands.
type notices struct {
	mu   sync.Mutex
	msgs []string
}

func (n *notices) add(msg string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.msgs = append(n.msgs, msg)
}

func (n *notices) print() {
	n.mu.Lock()
	msgs := n.msgs
	n.msgs = nil
	n.mu.Unlock()
	for _, m := range msgs {
		printlnFn(m)
	}
}

// saveNote writes a note change: straight through when manual save is in
// effect, via the coalescer when an autosave window is configured.
func (a *App) saveNote(ctx context.Context, id int64, patch models.NotePatch) error {
	if a.config.AutosaveWindow <= 0 {
		return a.saveNow(ctx, id, patch)
	}

	if a.autosave == nil {
		if err := ctx.Err(); err != nil {
			return a.report(ctx, err, "failed to save note")
		}
		a.startAutosave(ctx)
	}

	s := a.autosave
	select {
	case s.edits <- autosave.Edit{NoteID: id, Patch: patch}:
		return nil
	case <-s.done:
		// writer is gone, its pending edit was flushed on the way out
		s.cancel()
		a.autosave = nil
		a.notices.print()
		return a.saveNow(ctx, id, patch)
	case <-ctx.Done():
		return a.report(ctx, ctx.Err(), "failed to save note")
	}
}

func (a *App) saveNow(ctx context.Context, id int64, patch models.NotePatch) error {
	if _, err := a.notes.UpdateNote(ctx, id, patch); err != nil {
		return a.report(ctx, err, "failed to save note")
	}
	printlnFn("Saved")
	return nil
}

func (a *App) startAutosave(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	s := &autosaver{
		edits:  make(chan autosave.Edit),
		done:   make(chan error, 1),
		cancel: cancel,
	}
	c := &autosave.Coalescer{Window: a.config.AutosaveWindow}
	go func() {
		s.done <- c.Run(ctx, s.edits, a.flushEdit)
	}()
	a.autosave = s
}

// flushEdit runs on the coalescer goroutine. Failures are logged and queued
// for the REPL so one failed write does not stop autosaving.
func (a *App) flushEdit(ctx context.Context, e autosave.Edit) error {
	if _, err := a.notes.UpdateNote(ctx, e.NoteID, e.Patch); err != nil {
		a.log.Warn(ctx, "autosave failed", "id", e.NoteID, "error", err)
		a.notices.add("Error: " + services.UserMessage(err, "autosave failed"))
		return nil
	}
	a.log.Debug(ctx, "autosaved note", "id", e.NoteID)
	return nil
}

// stopAutosave flushes whatever is pending and waits for the writer to exit.
func (a *App) stopAutosave() {
	if a.autosave == nil {
		return
	}
	close(a.autosave.edits)
	<-a.autosave.done
	a.autosave.cancel()
	a.autosave = nil
	a.notices.print()
}
