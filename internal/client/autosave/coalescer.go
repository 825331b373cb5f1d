// Package autosave coalesces rapid note edits into a single remote write.
//
// Edits arriving within Window of each other are merged field by field, the
// newer value winning. Once Window passes with no new edit, the merged edit
// is due and is flushed. Nothing here talks to the network; Run drives a
// Coalescer from a channel and hands due edits to a flush function.
package autosave

import (
	"context"
	"time"

	"github.com/dmitrijs2005/webquiz-admin/internal/client/models"
)

// Edit is a change to one note.
type Edit struct {
	NoteID int64
	Patch  models.NotePatch
}

type Coalescer struct {
	Window time.Duration

	pending Edit
	has     bool
	last    time.Time
}

// Push merges e into the pending edit and restarts the window. If the pending
// edit belongs to another note it is returned for immediate flushing and e
// starts a new pending edit.
func (c *Coalescer) Push(now time.Time, e Edit) (Edit, bool) {
	var displaced Edit
	var ok bool
	if c.has && c.pending.NoteID != e.NoteID {
		displaced, ok = c.pending, true
		c.has = false
	}
	if c.has {
		c.pending.Patch = c.pending.Patch.Merge(e.Patch)
	} else {
		c.pending, c.has = e, true
	}
	c.last = now
	return displaced, ok
}

func (c *Coalescer) Pending() bool { return c.has }

// Deadline is when the pending edit becomes due.
func (c *Coalescer) Deadline() (time.Time, bool) {
	if !c.has {
		return time.Time{}, false
	}
	return c.last.Add(c.Window), true
}

func (c *Coalescer) Due(now time.Time) bool {
	d, ok := c.Deadline()
	return ok && !now.Before(d)
}

// Take removes and returns the pending edit.
func (c *Coalescer) Take() (Edit, bool) {
	if !c.has {
		return Edit{}, false
	}
	e := c.pending
	c.pending, c.has = Edit{}, false
	return e, true
}

// FlushFunc writes a coalesced edit.
type FlushFunc func(ctx context.Context, e Edit) error

// Run reads edits until the channel is closed or ctx is done, flushing each
// coalesced edit once its window has passed. Whatever is pending at exit is
// flushed before Run returns; after cancellation that last flush runs on a
// context detached from ctx. The first flush error stops Run.
func (c *Coalescer) Run(ctx context.Context, edits <-chan Edit, flush FlushFunc) error {
	timer := time.NewTimer(time.Hour)
	timer.Stop()
	defer timer.Stop()

	arm := func() {
		d, ok := c.Deadline()
		if !ok {
			return
		}
		timer.Reset(time.Until(d))
	}
	drain := func(ctx context.Context) error {
		if e, ok := c.Take(); ok && !e.Patch.Empty() {
			return flush(ctx, e)
		}
		return nil
	}

	for {
		select {
		case <-ctx.Done():
			if err := drain(context.WithoutCancel(ctx)); err != nil {
				return err
			}
			return ctx.Err()

		case e, ok := <-edits:
			if !ok {
				return drain(ctx)
			}
			if prev, displaced := c.Push(time.Now(), e); displaced && !prev.Patch.Empty() {
				if err := flush(ctx, prev); err != nil {
					return err
				}
			}
			timer.Stop()
			arm()

		case <-timer.C:
			if !c.Due(time.Now()) {
				arm()
				continue
			}
			if err := drain(ctx); err != nil {
				return err
			}
		}
	}
}
