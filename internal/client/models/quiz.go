package models

type QuizCategory struct {
	ID           int64  `json:"id"`
	Slug         string `json:"slug"`
	CategoryName string `json:"category_name"`
	Description  string `json:"description"`
	AuthorID     *int64 `json:"author_id,omitempty"`
}

type QuizTag struct {
	ID   int64  `json:"id"`
	Slug string `json:"slug"`
	Name string `json:"name"`
}

// QuizChoice belongs to exactly one quiz. ID and QuizID are absent on
// choices that have not been saved yet.
type QuizChoice struct {
	ID         *int64 `json:"id,omitempty"`
	QuizID     *int64 `json:"quiz_id,omitempty"`
	ChoiceText string `json:"choice_text"`
	IsCorrect  bool   `json:"is_correct"`
}

// Quiz is a single question. Explanation holds a serialized block document.
type Quiz struct {
	ID          int64        `json:"id"`
	Slug        string       `json:"slug"`
	Question    string       `json:"question"`
	Explanation string       `json:"explanation"`
	CategoryID  int64        `json:"category_id"`
	AuthorID    *int64       `json:"author_id,omitempty"`
	Choices     []QuizChoice `json:"choices,omitempty"`
	Tags        []QuizTag    `json:"tags,omitempty"`
	CreatedAt   *Timestamp   `json:"created_at,omitempty"`
	UpdatedAt   *Timestamp   `json:"updated_at,omitempty"`
}

// TagSlugs lists the slugs of q's tags in order.
func (q Quiz) TagSlugs() []string {
	slugs := make([]string, 0, len(q.Tags))
	for _, t := range q.Tags {
		slugs = append(slugs, t.Slug)
	}
	return slugs
}

type ChoiceInput struct {
	ChoiceText string `json:"choice_text"`
	IsCorrect  bool   `json:"is_correct"`
}

// QuizInput is the body of POST /quiz. Tags are referenced by slug.
type QuizInput struct {
	Slug        string        `json:"slug"`
	Question    string        `json:"question"`
	Explanation string        `json:"explanation"`
	CategoryID  int64         `json:"category_id"`
	AuthorID    *int64        `json:"author_id,omitempty"`
	Choices     []ChoiceInput `json:"choices"`
	Tags        []string      `json:"tags"`
}

// QuizPatch is the body of PUT /quiz/:id; only non-nil fields are sent.
type QuizPatch struct {
	Slug        *string        `json:"slug,omitempty"`
	Question    *string        `json:"question,omitempty"`
	Explanation *string        `json:"explanation,omitempty"`
	CategoryID  *int64         `json:"category_id,omitempty"`
	AuthorID    *int64         `json:"author_id,omitempty"`
	Choices     *[]ChoiceInput `json:"choices,omitempty"`
	Tags        *[]string      `json:"tags,omitempty"`
}

// Patch turns a full input into an update that replaces every field.
func (in QuizInput) Patch() QuizPatch {
	choices := in.Choices
	if choices == nil {
		choices = []ChoiceInput{}
	}
	tags := in.Tags
	if tags == nil {
		tags = []string{}
	}
	return QuizPatch{
		Slug:        &in.Slug,
		Question:    &in.Question,
		Explanation: &in.Explanation,
		CategoryID:  &in.CategoryID,
		AuthorID:    in.AuthorID,
		Choices:     &choices,
		Tags:        &tags,
	}
}

// TagInput is the body of POST /quiz/tags.
type TagInput struct {
	Slug string `json:"slug"`
	Name string `json:"name"`
}

// TagPatch is the body of PUT /quiz/tags/:id.
type TagPatch struct {
	Slug *string `json:"slug,omitempty"`
	Name *string `json:"name,omitempty"`
}
