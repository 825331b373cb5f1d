package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeExec struct {
	loggedIn bool
	onSignin func()

	calls []string
}

func (f *fakeExec) rec(s string) error { f.calls = append(f.calls, s); return nil }

func (f *fakeExec) isLoggedIn() bool { return f.loggedIn }
func (f *fakeExec) Signup(context.Context) error {
	return f.rec("signup")
}
func (f *fakeExec) Signin(context.Context) error {
	f.loggedIn = true
	if f.onSignin != nil {
		f.onSignin()
	}
	return f.rec("signin")
}
func (f *fakeExec) Signout(context.Context) error {
	f.loggedIn = false
	return f.rec("signout")
}
func (f *fakeExec) Whoami(context.Context) error    { return f.rec("whoami") }
func (f *fakeExec) ListNotes(context.Context) error { return f.rec("notes") }
func (f *fakeExec) SearchNotes(_ context.Context, kw string) error {
	return f.rec("search:" + kw)
}
func (f *fakeExec) OpenNote(_ context.Context, id int64) error {
	return f.rec(fmt.Sprintf("open:%d", id))
}
func (f *fakeExec) NewNote(_ context.Context, title string) error {
	return f.rec("new:" + title)
}
func (f *fakeExec) RenameNote(context.Context) error { return f.rec("rename") }
func (f *fakeExec) EditNote(context.Context) error   { return f.rec("edit") }
func (f *fakeExec) DeleteNote(_ context.Context, id int64) error {
	return f.rec(fmt.Sprintf("delete:%d", id))
}
func (f *fakeExec) CloseNote(context.Context) error { return f.rec("close") }
func (f *fakeExec) UploadImage(_ context.Context, path string) error {
	return f.rec("upload:" + path)
}
func (f *fakeExec) Categories(context.Context) error { return f.rec("categories") }
func (f *fakeExec) Quizzes(_ context.Context, id int64) error {
	return f.rec(fmt.Sprintf("quizzes:%d", id))
}
func (f *fakeExec) ShowQuiz(_ context.Context, id int64) error {
	return f.rec(fmt.Sprintf("quiz:%d", id))
}
func (f *fakeExec) NewQuiz(context.Context) error { return f.rec("quiznew") }
func (f *fakeExec) EditQuiz(_ context.Context, id int64) error {
	return f.rec(fmt.Sprintf("quizedit:%d", id))
}
func (f *fakeExec) DeleteQuiz(_ context.Context, id int64) error {
	return f.rec(fmt.Sprintf("quizdelete:%d", id))
}
func (f *fakeExec) ListTags(context.Context) error { return f.rec("tags") }
func (f *fakeExec) AddTag(context.Context) error   { return f.rec("tagadd") }
func (f *fakeExec) EditTag(_ context.Context, id int64) error {
	return f.rec(fmt.Sprintf("tagedit:%d", id))
}
func (f *fakeExec) DeleteTag(_ context.Context, id int64) error {
	return f.rec(fmt.Sprintf("tagdelete:%d", id))
}

func silence(t *testing.T) *[]string {
	t.Helper()
	var out []string
	origPrint := printlnFn
	printlnFn = func(a ...any) (int, error) {
		s := strings.TrimSuffix(fmt.Sprintln(a...), "\n")
		out = append(out, s)
		return len(s), nil
	}
	t.Cleanup(func() { printlnFn = origPrint })
	return &out
}

func run(exec *fakeExec, lines ...string) {
	r := bufio.NewReader(strings.NewReader(strings.Join(lines, "\n")))
	runREPL(context.Background(), exec, func() string { return "status" }, r)
}

func TestRunREPL_DispatchesCommands(t *testing.T) {
	silence(t)
	exec := &fakeExec{}

	run(exec,
		"help",
		"signin",
		"notes",
		"search go maps",
		"open 12",
		"new",
		"new Weekly review",
		"rename",
		"edit",
		"upload /tmp/a b.png",
		"close",
		"delete 3",
		"categories",
		"quizzes",
		"quizzes 4",
		"quiz 5",
		"quiznew",
		"quizedit 6",
		"quizdelete 7",
		"tags",
		"tagadd",
		"tagedit 8",
		"tagdelete 9",
		"whoami",
		"signout",
		"exit",
		"notes",
	)

	assert.Equal(t, []string{
		"signin", "notes", "search:go maps", "open:12", "new:", "new:Weekly review",
		"rename", "edit", "upload:/tmp/a b.png", "close", "delete:3",
		"categories", "quizzes:0", "quizzes:4", "quiz:5", "quiznew", "quizedit:6", "quizdelete:7",
		"tags", "tagadd", "tagedit:8", "tagdelete:9", "whoami", "signout",
	}, exec.calls)
}

func TestRunREPL_RequiresSignin(t *testing.T) {
	out := silence(t)
	exec := &fakeExec{}

	run(exec, "notes", "quiznew", "signup", "quit")

	assert.Equal(t, []string{"signup"}, exec.calls)
	assert.Contains(t, *out, "Please sign in first (type 'help' for commands)")
	assert.Contains(t, *out, "Bye!")
}

func TestRunREPL_UsageAndUnknown(t *testing.T) {
	out := silence(t)
	exec := &fakeExec{loggedIn: true}

	run(exec, "open", "open abc", "delete -1", "quizzes x", "upload", "frobnicate", "")

	assert.Empty(t, exec.calls)
	assert.Contains(t, *out, "Usage: open <id>")
	assert.Contains(t, *out, "Usage: delete <id>")
	assert.Contains(t, *out, "Usage: quizzes [categoryId]")
	assert.Contains(t, *out, "Usage: upload <path>")
	assert.Contains(t, *out, "Unknown command: frobnicate")
}

func TestRunREPL_HelpDependsOnSession(t *testing.T) {
	out := silence(t)
	run(&fakeExec{}, "help")
	assert.Contains(t, *out, helpLoggedOut)

	*out = nil
	run(&fakeExec{loggedIn: true}, "help")
	assert.Contains(t, *out, helpLoggedIn)
}

func TestRunREPL_LastLineWithoutNewline(t *testing.T) {
	silence(t)
	exec := &fakeExec{loggedIn: true}
	run(exec, "tags")
	assert.Equal(t, []string{"tags"}, exec.calls)
}

func TestRunREPL_StopsWhenContextDone(t *testing.T) {
	silence(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	exec := &fakeExec{onSignin: cancel}

	r := bufio.NewReader(strings.NewReader("signin\nnotes\ntags\n"))
	runREPL(ctx, exec, func() string { return "" }, r)

	assert.Equal(t, []string{"signin"}, exec.calls)
}
