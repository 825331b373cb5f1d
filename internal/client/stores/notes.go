package stores

import (
	"context"
	"slices"
	"strings"
	"sync"

	"github.com/dmitrijs2005/webquiz-admin/internal/client/models"
	"github.com/dmitrijs2005/webquiz-admin/internal/client/repositories/notes"
	"github.com/dmitrijs2005/webquiz-admin/internal/logging"
)

const (
	ErrMsgFetchNotes = "failed to fetch notes"
	ErrMsgFetchNote  = "failed to fetch note"
)

type NoteState struct {
	Notes       []models.Note
	CurrentNote *models.Note
	Loading     bool
	Error       string // last fetch failure, "" when none
	Revision    uint64
}

type NoteStore struct {
	repo notes.Repository
	log  logging.Logger

	mu       sync.Mutex
	state    NoteState
	inflight int
	revs     map[int64]uint64
}

func NewNoteStore(repo notes.Repository, log logging.Logger) *NoteStore {
	return &NoteStore{
		repo:  repo,
		log:   log,
		state: NoteState{Notes: []models.Note{}},
		revs:  make(map[int64]uint64),
	}
}

func (s *NoteStore) State() NoteState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot()
}

// RevisionOf reports the revision at which the cached copy of a note was last
// written by a server response.
func (s *NoteStore) RevisionOf(id int64) (uint64, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.revs[id]
	return r, ok
}

// FetchNotes replaces the cached list with the server's. On failure the
// previous list is kept and the error slot is set.
func (s *NoteStore) FetchNotes(ctx context.Context) (NoteState, error) {
	s.begin()
	list, err := s.repo.GetAll(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.end()
	if err != nil {
		s.state.Error = ErrMsgFetchNotes
		s.log.Warn(ctx, "fetch notes", "error", err)
		return s.snapshot(), err
	}
	rev := s.bump()
	s.state.Notes = list
	for _, n := range list {
		s.revs[n.ID] = rev
	}
	return s.snapshot(), nil
}

// FetchNote loads one note as the current note. On failure the current note
// is left as it was.
func (s *NoteStore) FetchNote(ctx context.Context, id int64) (NoteState, error) {
	s.begin()
	n, err := s.repo.GetByID(ctx, id)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.end()
	if err != nil {
		s.state.Error = ErrMsgFetchNote
		s.log.Warn(ctx, "fetch note", "id", id, "error", err)
		return s.snapshot(), err
	}
	s.revs[n.ID] = s.bump()
	s.state.CurrentNote = &n
	return s.snapshot(), nil
}

// CreateNote persists a note and then prepends it to the list. An empty title
// becomes models.DefaultNoteTitle.
func (s *NoteStore) CreateNote(ctx context.Context, title string, content *string) (models.Note, NoteState, error) {
	if strings.TrimSpace(title) == "" {
		title = models.DefaultNoteTitle
	}
	n, err := s.repo.Create(ctx, models.NoteCreate{Title: title, Content: content})
	if err != nil {
		return models.Note{}, s.State(), err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.revs[n.ID] = s.bump()
	s.state.Notes = append([]models.Note{n}, s.state.Notes...)
	return n, s.snapshot(), nil
}

// UpdateNote persists the patch and then replaces the cached copies of the
// note, in the list and as the current note, with the server's version.
func (s *NoteStore) UpdateNote(ctx context.Context, id int64, patch models.NotePatch) (NoteState, error) {
	updated, err := s.repo.Update(ctx, id, patch)
	if err != nil {
		return s.State(), err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.revs[id] = s.bump()
	notes := make([]models.Note, len(s.state.Notes))
	for i, n := range s.state.Notes {
		if n.ID == id {
			n = updated
		}
		notes[i] = n
	}
	s.state.Notes = notes
	if s.state.CurrentNote != nil && s.state.CurrentNote.ID == id {
		s.state.CurrentNote = &updated
	}
	return s.snapshot(), nil
}

func (s *NoteStore) DeleteNote(ctx context.Context, id int64) (NoteState, error) {
	if err := s.repo.Remove(ctx, id); err != nil {
		return s.State(), err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.bump()
	delete(s.revs, id)
	s.state.Notes = slices.DeleteFunc(slices.Clone(s.state.Notes), func(n models.Note) bool {
		return n.ID == id
	})
	if s.state.CurrentNote != nil && s.state.CurrentNote.ID == id {
		s.state.CurrentNote = nil
	}
	return s.snapshot(), nil
}

func (s *NoteStore) ClearCurrentNote() NoteState {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.CurrentNote = nil
	return s.snapshot()
}

// Reset drops every cached note, the current note and the error slot, for
// example when the user signs out. Fetches still in flight keep Loading set.
func (s *NoteStore) Reset() NoteState {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Notes = []models.Note{}
	s.state.CurrentNote = nil
	s.state.Error = ""
	s.bump()
	clear(s.revs)
	return s.snapshot()
}

// Search filters the cached list by a case-insensitive match on title or
// content. A blank keyword matches everything.
func (s *NoteStore) Search(keyword string) []models.Note {
	s.mu.Lock()
	defer s.mu.Unlock()
	if strings.TrimSpace(keyword) == "" {
		return slices.Clone(s.state.Notes)
	}
	kw := strings.ToLower(keyword)
	out := []models.Note{}
	for _, n := range s.state.Notes {
		if strings.Contains(strings.ToLower(n.Title), kw) || strings.Contains(strings.ToLower(n.Content), kw) {
			out = append(out, n)
		}
	}
	return out
}

func (s *NoteStore) begin() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.inflight++
	s.state.Loading = true
	s.state.Error = ""
}

// end must be called with mu held.
func (s *NoteStore) end() {
	s.inflight--
	s.state.Loading = s.inflight > 0
}

func (s *NoteStore) bump() uint64 {
	s.state.Revision++
	return s.state.Revision
}

func (s *NoteStore) snapshot() NoteState {
	st := s.state
	st.Notes = slices.Clone(s.state.Notes)
	if st.CurrentNote != nil {
		n := *st.CurrentNote
		st.CurrentNote = &n
	}
	return st
}
