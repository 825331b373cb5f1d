package apitest

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/webquiz-admin/internal/client/models"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

type ctxKey struct{}

func (b *Backend) routes() http.Handler {
	r := chi.NewRouter()

	r.Route("/api", func(r chi.Router) {
		r.Use(b.record, b.injectFailures)

		r.Post("/users", b.signup)
		r.Post("/auth/login", b.login)

		r.Group(func(r chi.Router) {
			r.Use(b.authenticate)

			r.Get("/auth/me", b.me)

			r.Route("/notes", func(r chi.Router) {
				r.Get("/", b.listNotes)
				r.Post("/", b.createNote)
				r.Get("/{id}", b.getNote)
				r.Put("/{id}", b.updateNote)
				r.Delete("/{id}", b.deleteNote)
			})

			r.Route("/quiz", func(r chi.Router) {
				r.Get("/categories", b.listCategories)
				r.Get("/category/{id}/quizzes", b.listQuizzesByCategory)

				r.Get("/tags", b.listTags)
				r.Post("/tags", b.createTag)
				r.Put("/tags/{id}", b.updateTag)
				r.Delete("/tags/{id}", b.deleteTag)

				r.Post("/", b.createQuiz)
				r.Get("/{id}", b.getQuiz)
				r.Put("/{id}", b.updateQuiz)
				r.Delete("/{id}", b.deleteQuiz)
			})

			r.Post("/upload/notes", b.upload)
		})
	})

	return r
}

func (b *Backend) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		b.calls = append(b.calls, r.Method+" "+apiPath(r))
		b.mu.Unlock()
		next.ServeHTTP(w, r)
	})
}

func (b *Backend) injectFailures(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		f, ok := b.failures[r.Method+" "+apiPath(r)]
		b.mu.Unlock()
		if ok {
			writeError(w, f.status, f.message)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (b *Backend) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
		b.mu.Lock()
		userID, known := b.sessions[token]
		b.mu.Unlock()
		if !ok || !known {
			writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), ctxKey{}, userID)))
	})
}

func apiPath(r *http.Request) string {
	p := strings.TrimPrefix(r.URL.Path, "/api")
	if len(p) > 1 {
		p = strings.TrimSuffix(p, "/")
	}
	return p
}

func userID(r *http.Request) int64 {
	id, _ := r.Context().Value(ctxKey{}).(int64)
	return id
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return false
	}
	return true
}

func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return 0, false
	}
	return id, true
}

// auth

func (b *Backend) signup(w http.ResponseWriter, r *http.Request) {
	var req models.SignupRequest
	if !decode(w, r, &req) {
		return
	}
	if req.Name == "" || req.Email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "name, email and password are required")
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if _, exists := b.accounts[req.Email]; exists {
		writeError(w, http.StatusConflict, "email already registered")
		return
	}
	num := b.id()
	u := models.User{ID: userIDOf(num), Name: req.Name, Email: req.Email, Role: "user"}
	b.accounts[req.Email] = &account{user: u, num: num, password: req.Password}
	writeJSON(w, http.StatusCreated, u)
}

func (b *Backend) login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if !decode(w, r, &req) {
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	acc, ok := b.accounts[req.Email]
	if !ok || acc.password != req.Password {
		writeError(w, http.StatusUnauthorized, "invalid email or password")
		return
	}
	token := uuid.NewString()
	b.sessions[token] = acc.num
	writeJSON(w, http.StatusOK, models.AuthResult{Token: token, User: acc.user})
}

func (b *Backend) me(w http.ResponseWriter, r *http.Request) {
	uid := userID(r)
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, acc := range b.accounts {
		if acc.num == uid {
			writeJSON(w, http.StatusOK, map[string]any{"user": acc.user})
			return
		}
	}
	writeError(w, http.StatusUnauthorized, "unauthorized")
}

// notes

func (b *Backend) liveNote(r *http.Request, id int64) (*models.Note, bool) {
	n, ok := b.notes[id]
	if !ok || n.DeletedAt != nil || n.UserID != userID(r) {
		return nil, false
	}
	return n, true
}

func (b *Backend) listNotes(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]models.Note, 0, len(b.notes))
	for _, n := range b.notes {
		if n.DeletedAt == nil && n.UserID == userID(r) {
			out = append(out, *n)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	writeJSON(w, http.StatusOK, out)
}

func (b *Backend) createNote(w http.ResponseWriter, r *http.Request) {
	var req models.NoteCreate
	if !decode(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.Title) == "" {
		writeError(w, http.StatusBadRequest, "title is required")
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	now := b.stamp()
	n := &models.Note{ID: b.id(), Title: req.Title, UserID: userID(r), CreatedAt: now, UpdatedAt: now}
	if req.Content != nil {
		n.Content = *req.Content
	}
	b.notes[n.ID] = n
	writeJSON(w, http.StatusCreated, n)
}

func (b *Backend) getNote(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	n, ok := b.liveNote(r, id)
	if !ok {
		writeError(w, http.StatusNotFound, "note not found")
		return
	}
	writeJSON(w, http.StatusOK, n)
}

func (b *Backend) updateNote(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req models.NotePatch
	if !decode(w, r, &req) {
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	n, ok := b.liveNote(r, id)
	if !ok {
		writeError(w, http.StatusNotFound, "note not found")
		return
	}
	if req.Title != nil {
		n.Title = *req.Title
	}
	if req.Content != nil {
		n.Content = *req.Content
	}
	n.UpdatedAt = b.stamp()
	writeJSON(w, http.StatusOK, n)
}

func (b *Backend) deleteNote(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	n, ok := b.liveNote(r, id)
	if !ok {
		writeError(w, http.StatusNotFound, "note not found")
		return
	}
	now := b.stamp()
	n.DeletedAt = &now
	writeJSON(w, http.StatusOK, map[string]string{"message": "note deleted"})
}

// quizzes

func (b *Backend) listCategories(w http.ResponseWriter, _ *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	writeJSON(w, http.StatusOK, append([]models.QuizCategory{}, b.cats...))
}

func (b *Backend) listQuizzesByCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	out := []models.Quiz{}
	for _, q := range b.quizzes {
		if q.CategoryID == id {
			out = append(out, *q)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	writeJSON(w, http.StatusOK, out)
}

func (b *Backend) resolveTags(slugs []string) ([]models.QuizTag, error) {
	out := make([]models.QuizTag, 0, len(slugs))
	for _, s := range slugs {
		found := false
		for _, t := range b.tags {
			if t.Slug == s {
				out = append(out, *t)
				found = true
				break
			}
		}
		if !found {
			return nil, fmt.Errorf("unknown tag: %s", s)
		}
	}
	return out, nil
}

func (b *Backend) choices(quizID int64, in []models.ChoiceInput) []models.QuizChoice {
	out := make([]models.QuizChoice, 0, len(in))
	for _, c := range in {
		id := b.id()
		qid := quizID
		out = append(out, models.QuizChoice{ID: &id, QuizID: &qid, ChoiceText: c.ChoiceText, IsCorrect: c.IsCorrect})
	}
	return out
}

func (b *Backend) slugTaken(slug string, except int64) bool {
	for _, q := range b.quizzes {
		if q.Slug == slug && q.ID != except {
			return true
		}
	}
	return false
}

func (b *Backend) createQuiz(w http.ResponseWriter, r *http.Request) {
	var req models.QuizInput
	if !decode(w, r, &req) {
		return
	}
	if req.Slug == "" || req.Question == "" {
		writeError(w, http.StatusBadRequest, "slug and question are required")
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if b.slugTaken(req.Slug, 0) {
		writeError(w, http.StatusConflict, "slug already exists")
		return
	}
	tags, err := b.resolveTags(req.Tags)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	now := b.stamp()
	q := &models.Quiz{
		ID:          b.id(),
		Slug:        req.Slug,
		Question:    req.Question,
		Explanation: req.Explanation,
		CategoryID:  req.CategoryID,
		AuthorID:    req.AuthorID,
		Tags:        tags,
		CreatedAt:   &now,
		UpdatedAt:   &now,
	}
	q.Choices = b.choices(q.ID, req.Choices)
	b.quizzes[q.ID] = q
	writeJSON(w, http.StatusCreated, q)
}

func (b *Backend) getQuiz(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	q, ok := b.quizzes[id]
	if !ok {
		writeError(w, http.StatusNotFound, "quiz not found")
		return
	}
	writeJSON(w, http.StatusOK, q)
}

func (b *Backend) updateQuiz(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req models.QuizPatch
	if !decode(w, r, &req) {
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	q, ok := b.quizzes[id]
	if !ok {
		writeError(w, http.StatusNotFound, "quiz not found")
		return
	}
	if req.Slug != nil {
		if b.slugTaken(*req.Slug, id) {
			writeError(w, http.StatusConflict, "slug already exists")
			return
		}
		q.Slug = *req.Slug
	}
	if req.Tags != nil {
		tags, err := b.resolveTags(*req.Tags)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		q.Tags = tags
	}
	if req.Question != nil {
		q.Question = *req.Question
	}
	if req.Explanation != nil {
		q.Explanation = *req.Explanation
	}
	if req.CategoryID != nil {
		q.CategoryID = *req.CategoryID
	}
	if req.AuthorID != nil {
		q.AuthorID = req.AuthorID
	}
	if req.Choices != nil {
		q.Choices = b.choices(q.ID, *req.Choices)
	}
	now := b.stamp()
	q.UpdatedAt = &now
	writeJSON(w, http.StatusOK, q)
}

func (b *Backend) deleteQuiz(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.quizzes[id]; !ok {
		writeError(w, http.StatusNotFound, "quiz not found")
		return
	}
	delete(b.quizzes, id)
	w.WriteHeader(http.StatusNoContent)
}

// tags

func (b *Backend) listTags(w http.ResponseWriter, _ *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	writeJSON(w, http.StatusOK, b.sortedTags())
}

func (b *Backend) tagSlugTaken(slug string, except int64) bool {
	for _, t := range b.tags {
		if t.Slug == slug && t.ID != except {
			return true
		}
	}
	return false
}

func (b *Backend) createTag(w http.ResponseWriter, r *http.Request) {
	var req models.TagInput
	if !decode(w, r, &req) {
		return
	}
	if req.Slug == "" || req.Name == "" {
		writeError(w, http.StatusBadRequest, "slug and name are required")
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if b.tagSlugTaken(req.Slug, 0) {
		writeError(w, http.StatusConflict, "tag slug already exists")
		return
	}
	t := &models.QuizTag{ID: b.id(), Slug: req.Slug, Name: req.Name}
	b.tags[t.ID] = t
	writeJSON(w, http.StatusCreated, t)
}

func (b *Backend) updateTag(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req models.TagPatch
	if !decode(w, r, &req) {
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	t, ok := b.tags[id]
	if !ok {
		writeError(w, http.StatusNotFound, "tag not found")
		return
	}
	if req.Slug != nil {
		if b.tagSlugTaken(*req.Slug, id) {
			writeError(w, http.StatusConflict, "tag slug already exists")
			return
		}
		t.Slug = *req.Slug
	}
	if req.Name != nil {
		t.Name = *req.Name
	}
	writeJSON(w, http.StatusOK, t)
}

func (b *Backend) deleteTag(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.tags[id]; !ok {
		writeError(w, http.StatusNotFound, "tag not found")
		return
	}
	delete(b.tags, id)
	w.WriteHeader(http.StatusNoContent)
}

// uploads

func (b *Backend) upload(w http.ResponseWriter, r *http.Request) {
	f, hdr, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "file is required")
		return
	}
	defer f.Close()
	if _, err := io.Copy(io.Discard, f); err != nil {
		writeError(w, http.StatusBadRequest, "read failed")
		return
	}

	url := fmt.Sprintf("%s/uploads/notes/%s-%s", b.srv.URL, uuid.NewString(), hdr.Filename)
	b.mu.Lock()
	b.uploads = append(b.uploads, hdr.Filename)
	b.mu.Unlock()
	writeJSON(w, http.StatusOK, map[string]string{"url": url})
}
