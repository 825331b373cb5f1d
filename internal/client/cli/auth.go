package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/webquiz-admin/internal/client/services"
	"github.com/dmitrijs2005/webquiz-admin/internal/client/tokens"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Signup prompts for name, e-mail and password and creates the account. It
// does not sign in; the user is sent to signin afterwards.
func (a *App) Signup(ctx context.Context) error {
	name, err := getSimpleText(a.reader, "Enter name", a.out)
	if err != nil {
		return err
	}
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.out)
	if err != nil {
		return err
	}

	form := services.SignupForm{Name: name, Email: email, Password: string(password)}
	if err := a.session.Signup(ctx, form); err != nil {
		return a.report(ctx, err, "signup failed")
	}

	printlnFn("Account created. Type 'signin' to sign in.")
	return nil
}

// Signin prompts for credentials. An empty e-mail reuses the one from the
// last successful signin.
func (a *App) Signin(ctx context.Context) error {
	last, err := a.tokens.LastEmail(ctx)
	if err != nil {
		a.log.Warn(ctx, "read last email", "error", err)
	}
	prompt := "Enter email"
	if last != "" {
		prompt = fmt.Sprintf("Enter email [%s]", last)
	}

	email, err := getSimpleText(a.reader, prompt, a.out)
	if err != nil {
		return err
	}
	if email == "" {
		email = last
	}
	password, err := getPassword(a.out)
	if err != nil {
		return err
	}

	a.stopAutosave()
	user, err := a.session.Signin(ctx, email, string(password))
	if err != nil {
		return a.report(ctx, err, "signin failed")
	}

	printlnFn(fmt.Sprintf("Signed in as %s <%s>", user.Name, user.Email))
	if msg := a.notes.State().Error; msg != "" {
		printlnFn("Error:", msg)
	}
	return nil
}

func (a *App) Signout(ctx context.Context) error {
	a.stopAutosave()
	if err := a.session.Signout(ctx); err != nil {
		return a.report(ctx, err, "signout failed")
	}
	printlnFn("Signed out")
	return nil
}

// Whoami shows the signed-in user and what the stored token says about
// itself. The claims are informational; an expired token is still sent until
// the backend rejects it.
func (a *App) Whoami(ctx context.Context) error {
	st := a.authStore.State()
	if st.User != nil {
		printlnFn(fmt.Sprintf("%s <%s> role=%s id=%s", st.User.Name, st.User.Email, st.User.Role, st.User.ID))
	}

	tok, err := a.tokens.Token(ctx)
	if err != nil {
		return a.report(ctx, err, "cannot read token")
	}
	claims, err := tokens.Inspect(tok)
	if err != nil {
		printlnFn("Token: opaque")
		return nil
	}
	if claims.Subject != "" {
		printlnFn("Token subject:", claims.Subject)
	}
	if !claims.ExpiresAt.IsZero() {
		state := "valid"
		if claims.Expired(time.Now()) {
			state = "expired"
		}
		printlnFn(fmt.Sprintf("Token expires: %s (%s)", claims.ExpiresAt.Format(time.RFC3339), state))
	}
	return nil
}
