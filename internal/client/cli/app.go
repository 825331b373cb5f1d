package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/webquiz-admin/internal/client/config"
	"github.com/dmitrijs2005/webquiz-admin/internal/client/httpapi"
	"github.com/dmitrijs2005/webquiz-admin/internal/client/repositories/auth"
	"github.com/dmitrijs2005/webquiz-admin/internal/client/repositories/notes"
	"github.com/dmitrijs2005/webquiz-admin/internal/client/repositories/quizzes"
	"github.com/dmitrijs2005/webquiz-admin/internal/client/repositories/uploads"
	"github.com/dmitrijs2005/webquiz-admin/internal/client/services"
	"github.com/dmitrijs2005/webquiz-admin/internal/client/storage"
	"github.com/dmitrijs2005/webquiz-admin/internal/client/stores"
	"github.com/dmitrijs2005/webquiz-admin/internal/client/tokens"
	"github.com/dmitrijs2005/webquiz-admin/internal/filex"
	"github.com/dmitrijs2005/webquiz-admin/internal/logging"
)

type App struct {
	config *config.Config
	log    logging.Logger
	db     *sql.DB

	tokens    *tokens.Store
	authStore *stores.AuthStore
	notes     *stores.NoteStore
	uploads   uploads.Repository
	session   services.SessionService
	quizzes   services.QuizEditor
	tags      services.TagManager

	autosave *autosaver
	notices  notices

	reader *bufio.Reader
	out    io.Writer
}

// NewApp opens local storage and wires every layer from the HTTP adapter up
// to the services. The caller must Close the app.
func NewApp(ctx context.Context, c *config.Config, log logging.Logger) (*App, error) {
	if err := filex.EnsureParentDir(c.DatabasePath); err != nil {
		log.Error(ctx, "error preparing database directory", "error", err)
		return nil, err
	}

	db, err := storage.InitDatabase(ctx, c.DatabasePath)
	if err != nil {
		log.Error(ctx, "error initializing database", "error", err)
		return nil, err
	}

	ts := tokens.NewStore(db)
	api := httpapi.New(c.APIBaseURL, ts,
		httpapi.WithTimeout(c.RequestTimeout),
		httpapi.WithRateLimit(c.RateLimitRPS, c.RateLimitBurst),
		httpapi.WithLogger(log),
	)

	authStore, err := stores.NewAuthStore(ctx, ts)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	noteStore := stores.NewNoteStore(notes.NewHTTPRepository(api), log)
	quizRepo := quizzes.NewHTTPRepository(api)

	return &App{
		config:    c,
		log:       log,
		db:        db,
		tokens:    ts,
		authStore: authStore,
		notes:     noteStore,
		uploads:   uploads.NewHTTPRepository(api),
		session:   services.NewSessionService(auth.NewHTTPRepository(api, ts), authStore, noteStore, log),
		quizzes:   services.NewQuizEditor(quizRepo),
		tags:      services.NewTagManager(quizRepo),
		reader:    bufio.NewReader(os.Stdin),
		out:       os.Stdout,
	}, nil
}

// Run restores the previous session, if any, and blocks in the REPL until
// the user exits or input ends.
func (a *App) Run(ctx context.Context) {
	defer a.stopAutosave()

	st := a.session.Bootstrap(ctx)
	if st.User != nil {
		printlnFn(fmt.Sprintf("Signed in as %s <%s>", st.User.Name, st.User.Email))
	}
	a.Root(ctx)
}

func (a *App) Close() error {
	a.stopAutosave()
	return a.db.Close()
}

func (a *App) isLoggedIn() bool {
	return a.authStore.State().IsAuthenticated
}

// report prints what went wrong in user terms and keeps the details in the
// log. Form errors are shown as they are; backend errors show the server's
// message when it sent one.
func (a *App) report(ctx context.Context, err error, fallback string) error {
	msg := services.UserMessage(err, fallback)
	if services.IsValidation(err) {
		msg = err.Error()
	}
	printlnFn("Error:", msg)
	a.log.Debug(ctx, fallback, "error", err)
	return err
}
