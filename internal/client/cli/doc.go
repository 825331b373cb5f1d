// Package cli provides the interactive webquiz admin command-line client.
//
// App wires configuration, local storage, the HTTP adapter, the stores and
// the services, then runs a REPL on top of them. The REPL is the view layer:
// every command calls a store or service operation and prints the result.
//
// Key features:
//   - Signup / Signin / Signout, with the session restored at start-up
//   - Notes: list, search, open, create, rename, edit, delete, image upload
//   - Quizzes: browse by category, show, create, edit, delete
//   - Tags: list, create, edit, delete
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
