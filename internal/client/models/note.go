package models

// DefaultNoteTitle is used when a note is created without a title.
const DefaultNoteTitle = "untitled"

// Note is a rich-text document owned by a user. Content holds a serialized
// block document. A non-nil DeletedAt marks a soft-deleted note.
type Note struct {
	ID        int64      `json:"id"`
	Title     string     `json:"title"`
	Content   string     `json:"content"`
	UserID    int64      `json:"userId"`
	CreatedAt Timestamp  `json:"createdAt"`
	UpdatedAt Timestamp  `json:"updatedAt"`
	DeletedAt *Timestamp `json:"deletedAt"`
}

// NoteCreate is the body of POST /notes. Content is omitted when nil.
type NoteCreate struct {
	Title   string  `json:"title"`
	Content *string `json:"content,omitempty"`
}

// NotePatch is the body of PUT /notes/:id; only non-nil fields are sent.
type NotePatch struct {
	Title   *string `json:"title,omitempty"`
	Content *string `json:"content,omitempty"`
}

func (p NotePatch) Empty() bool {
	return p.Title == nil && p.Content == nil
}

// Merge returns p with every field set in next overriding p's.
func (p NotePatch) Merge(next NotePatch) NotePatch {
	if next.Title != nil {
		p.Title = next.Title
	}
	if next.Content != nil {
		p.Content = next.Content
	}
	return p
}
