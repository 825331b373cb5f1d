package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool

	Signup(ctx context.Context) error
	Signin(ctx context.Context) error
	Signout(ctx context.Context) error
	Whoami(ctx context.Context) error

	ListNotes(ctx context.Context) error
	SearchNotes(ctx context.Context, keyword string) error
	OpenNote(ctx context.Context, id int64) error
	NewNote(ctx context.Context, title string) error
	RenameNote(ctx context.Context) error
	EditNote(ctx context.Context) error
	DeleteNote(ctx context.Context, id int64) error
	CloseNote(ctx context.Context) error
	UploadImage(ctx context.Context, path string) error

	Categories(ctx context.Context) error
	Quizzes(ctx context.Context, categoryID int64) error
	ShowQuiz(ctx context.Context, id int64) error
	NewQuiz(ctx context.Context) error
	EditQuiz(ctx context.Context, id int64) error
	DeleteQuiz(ctx context.Context, id int64) error

	ListTags(ctx context.Context) error
	AddTag(ctx context.Context) error
	EditTag(ctx context.Context, id int64) error
	DeleteTag(ctx context.Context, id int64) error
}

const (
	helpLoggedOut = "Available commands: signup, signin, exit"
	helpLoggedIn  = "Available commands:\n" +
		"  notes: notes, search <keyword>, open <id>, new [title], rename, edit, delete <id>, close, upload <path>\n" +
		"  quizzes: categories, quizzes [categoryId], quiz <id>, quiznew, quizedit <id>, quizdelete <id>\n" +
		"  tags: tags, tagadd, tagedit <id>, tagdelete <id>\n" +
		"  account: whoami, signout, exit"
)

// publicCommands work without a session.
var publicCommands = map[string]bool{
	"help": true, "signup": true, "signin": true, "exit": true, "quit": true,
}

// runREPL starts a simple read–eval–print loop for the webquiz admin CLI.
//
// It reads a line from reader, parses the first token as the command and
// dispatches to methods on 'a'. Commands that act on server data require a
// session; without one the user is pointed at signin. The loop exits on EOF,
// when the user types "exit" or "quit", or once ctx is done.
//
// Any errors returned by command handlers are ignored here; handlers report
// their own errors. This keeps the REPL loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		if ctx.Err() != nil {
			return
		}
		printlnFn(fmt.Sprintf("wq %s> ", statusFn()))
		line, err := reader.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			return
		}
		if ctx.Err() != nil {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		if !publicCommands[cmd] && !a.isLoggedIn() {
			printlnFn("Please sign in first (type 'help' for commands)")
			continue
		}

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn(helpLoggedIn)
			} else {
				printlnFn(helpLoggedOut)
			}

		case "signup":
			_ = a.Signup(ctx)
		case "signin":
			_ = a.Signin(ctx)
		case "signout":
			_ = a.Signout(ctx)
		case "whoami":
			_ = a.Whoami(ctx)

		case "notes":
			_ = a.ListNotes(ctx)
		case "search":
			_ = a.SearchNotes(ctx, strings.Join(args, " "))
		case "open":
			withID(args, "open <id>", func(id int64) { _ = a.OpenNote(ctx, id) })
		case "new":
			_ = a.NewNote(ctx, strings.Join(args, " "))
		case "rename":
			_ = a.RenameNote(ctx)
		case "edit":
			_ = a.EditNote(ctx)
		case "delete":
			withID(args, "delete <id>", func(id int64) { _ = a.DeleteNote(ctx, id) })
		case "close":
			_ = a.CloseNote(ctx)
		case "upload":
			if len(args) == 0 {
				printlnFn("Usage: upload <path>")
				continue
			}
			_ = a.UploadImage(ctx, strings.Join(args, " "))

		case "categories":
			_ = a.Categories(ctx)
		case "quizzes":
			var categoryID int64
			if len(args) > 0 {
				id, ok := parseID(args, "quizzes [categoryId]")
				if !ok {
					continue
				}
				categoryID = id
			}
			_ = a.Quizzes(ctx, categoryID)
		case "quiz":
			withID(args, "quiz <id>", func(id int64) { _ = a.ShowQuiz(ctx, id) })
		case "quiznew":
			_ = a.NewQuiz(ctx)
		case "quizedit":
			withID(args, "quizedit <id>", func(id int64) { _ = a.EditQuiz(ctx, id) })
		case "quizdelete":
			withID(args, "quizdelete <id>", func(id int64) { _ = a.DeleteQuiz(ctx, id) })

		case "tags":
			_ = a.ListTags(ctx)
		case "tagadd":
			_ = a.AddTag(ctx)
		case "tagedit":
			withID(args, "tagedit <id>", func(id int64) { _ = a.EditTag(ctx, id) })
		case "tagdelete":
			withID(args, "tagdelete <id>", func(id int64) { _ = a.DeleteTag(ctx, id) })

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}

func parseID(args []string, usage string) (int64, bool) {
	if len(args) == 0 {
		printlnFn("Usage: " + usage)
		return 0, false
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil || id <= 0 {
		printlnFn("Usage: " + usage)
		return 0, false
	}
	return id, true
}

func withID(args []string, usage string, fn func(id int64)) {
	if id, ok := parseID(args, usage); ok {
		fn(id)
	}
}
