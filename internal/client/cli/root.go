package cli

import (
	"context"
	"fmt"
)

func (a *App) getStatus() string {
	s := ""
	if st := a.authStore.State(); st.User != nil {
		s = st.User.Email
	} else if st.IsAuthenticated {
		s = "restoring"
	}
	if n := a.notes.State().CurrentNote; n != nil {
		s = fmt.Sprintf("%s note:%d", s, n.ID)
	}
	if s != "" {
		s = fmt.Sprintf("(%s)", s)
	}
	return s
}

// Root runs the REPL on stdin.
func (a *App) Root(ctx context.Context) {
	printlnFn("Welcome to webquiz admin CLI (type 'help' for commands)")
	runREPL(ctx, a, func() string {
		a.notices.print()
		return a.getStatus()
	}, a.reader)
}
