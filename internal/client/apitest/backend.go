// Package apitest runs an in-memory webquiz backend for tests. It speaks the
// same REST contract as the real server (mounted under /api), keeps all state
// in maps and lets a test inject failures per route.
package apitest

import (
	"fmt"
	"net/http/httptest"
	"sort"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/webquiz-admin/internal/client/models"
	"github.com/google/uuid"
)

type account struct {
	user     models.User
	num      int64
	password string
}

type failure struct {
	status  int
	message string
}

type Backend struct {
	srv *httptest.Server

	mu       sync.Mutex
	now      func() time.Time
	nextID   int64
	accounts map[string]*account // by email
	sessions map[string]int64    // token -> user id
	notes    map[int64]*models.Note
	cats     []models.QuizCategory
	quizzes  map[int64]*models.Quiz
	tags     map[int64]*models.QuizTag
	uploads  []string
	calls    []string
	failures map[string]failure
}

// New starts a backend and stops it when t finishes.
func New(t testing.TB) *Backend {
	t.Helper()
	b := &Backend{
		now:      func() time.Time { return time.Now().UTC().Truncate(time.Millisecond) },
		accounts: make(map[string]*account),
		sessions: make(map[string]int64),
		notes:    make(map[int64]*models.Note),
		quizzes:  make(map[int64]*models.Quiz),
		tags:     make(map[int64]*models.QuizTag),
		failures: make(map[string]failure),
	}
	b.srv = httptest.NewServer(b.routes())
	t.Cleanup(b.srv.Close)
	return b
}

// URL is the API base URL, ending in /api.
func (b *Backend) URL() string { return b.srv.URL + "/api" }

func (b *Backend) id() int64 {
	b.nextID++
	return b.nextID
}

func (b *Backend) stamp() models.Timestamp {
	return models.NewTimestamp(b.now())
}

func userIDOf(num int64) models.UserID {
	return models.UserID(strconv.FormatInt(num, 10))
}

// Fail makes every request to method+path (path relative to /api, e.g.
// "/notes/3") answer with status and {"error": message}.
func (b *Backend) Fail(method, path string, status int, message string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.failures[method+" "+path] = failure{status: status, message: message}
}

// Recover removes a failure set with Fail.
func (b *Backend) Recover(method, path string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.failures, method+" "+path)
}

// Calls lists the requests served so far as "METHOD /path".
func (b *Backend) Calls() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]string(nil), b.calls...)
}

func (b *Backend) CallCount(method, path string) int {
	n := 0
	for _, c := range b.Calls() {
		if c == method+" "+path {
			n++
		}
	}
	return n
}

func (b *Backend) ResetCalls() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.calls = nil
}

func (b *Backend) SeedUser(name, email, password string) models.User {
	b.mu.Lock()
	defer b.mu.Unlock()
	num := b.id()
	u := models.User{ID: userIDOf(num), Name: name, Email: email, Role: "admin"}
	b.accounts[email] = &account{user: u, num: num, password: password}
	return u
}

// Session issues a token for an existing user without going through login.
func (b *Backend) Session(email string) string {
	b.mu.Lock()
	defer b.mu.Unlock()
	acc, ok := b.accounts[email]
	if !ok {
		panic(fmt.Sprintf("apitest: no user %q", email))
	}
	token := uuid.NewString()
	b.sessions[token] = acc.num
	return token
}

// Revoke invalidates a token, so the next request with it gets 401.
func (b *Backend) Revoke(token string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.sessions, token)
}

// SeedNote stores a note owned by the user with the given id, as returned by
// SeedUser.
func (b *Backend) SeedNote(owner models.UserID, title, content string) models.Note {
	userID, err := strconv.ParseInt(string(owner), 10, 64)
	if err != nil {
		panic(fmt.Sprintf("apitest: user id %q is not numeric", owner))
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	now := b.stamp()
	n := &models.Note{ID: b.id(), Title: title, Content: content, UserID: userID, CreatedAt: now, UpdatedAt: now}
	b.notes[n.ID] = n
	return *n
}

// Note returns the stored note, including soft-deleted ones.
func (b *Backend) Note(id int64) (models.Note, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	n, ok := b.notes[id]
	if !ok {
		return models.Note{}, false
	}
	return *n, true
}

func (b *Backend) SeedCategory(slug, name string) models.QuizCategory {
	b.mu.Lock()
	defer b.mu.Unlock()
	c := models.QuizCategory{ID: b.id(), Slug: slug, CategoryName: name, Description: name + " questions"}
	b.cats = append(b.cats, c)
	return c
}

func (b *Backend) SeedTag(slug, name string) models.QuizTag {
	b.mu.Lock()
	defer b.mu.Unlock()
	t := &models.QuizTag{ID: b.id(), Slug: slug, Name: name}
	b.tags[t.ID] = t
	return *t
}

func (b *Backend) SeedQuiz(q models.Quiz) models.Quiz {
	b.mu.Lock()
	defer b.mu.Unlock()
	q.ID = b.id()
	for i := range q.Choices {
		id := b.id()
		q.Choices[i].ID = &id
		q.Choices[i].QuizID = &q.ID
	}
	now := b.stamp()
	q.CreatedAt, q.UpdatedAt = &now, &now
	stored := q
	b.quizzes[q.ID] = &stored
	return q
}

func (b *Backend) Quiz(id int64) (models.Quiz, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	q, ok := b.quizzes[id]
	if !ok {
		return models.Quiz{}, false
	}
	return *q, true
}

func (b *Backend) Tags() []models.QuizTag {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.sortedTags()
}

func (b *Backend) sortedTags() []models.QuizTag {
	out := make([]models.QuizTag, 0, len(b.tags))
	for _, t := range b.tags {
		out = append(out, *t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (b *Backend) Uploads() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]string(nil), b.uploads...)
}
