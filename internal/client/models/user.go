// Package models defines the resources exchanged with the webquiz backend.
// JSON tags follow the wire contract exactly: notes and users use camelCase,
// quiz resources use snake_case.
package models

// User is the signed-in account as returned by /auth/login and /auth/me.
type User struct {
	ID    UserID `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// SignupRequest is the body of POST /users.
type SignupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest is the body of POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResult is the response of POST /auth/login.
type AuthResult struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}
