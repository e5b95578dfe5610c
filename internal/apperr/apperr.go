// Package apperr defines the workflow error type the route layer translates
// into HTTP responses. Each error carries the status to respond with and the
// message shown to the user; the wrapped cause stays server-side.
package apperr

import "net/http"

// Error is a workflow failure with a user-facing presentation.
type Error struct {
	Status  int
	Message string
	err     error
}

// New creates an Error with the given status, user message and cause.
func New(status int, message string, err error) *Error {
	return &Error{Status: status, Message: message, err: err}
}

func (e *Error) Error() string {
	if e.err != nil {
		return e.Message + ": " + e.err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.err
}

// NewUsernameTaken reports a registration attempt with a username that is
// already registered.
func NewUsernameTaken(username string) *Error {
	return New(http.StatusConflict, "Username is already taken. Please choose another.", nil)
}

// NewEmailTaken reports a registration attempt with an email that is already
// registered.
func NewEmailTaken(email string) *Error {
	return New(http.StatusConflict, "Email is already registered. Please use another.", nil)
}

// NewUserNotFound reports a login attempt for an unknown email.
func NewUserNotFound(email string) *Error {
	return New(http.StatusUnauthorized, "User with this email does not exist.", nil)
}

// NewInvalidPassword reports a login attempt with a wrong password.
func NewInvalidPassword() *Error {
	return New(http.StatusUnauthorized, "Invalid password. Please try again.", nil)
}

// NewNotAuthenticated reports a gated mutation without a session.
func NewNotAuthenticated() *Error {
	return New(http.StatusBadRequest, "User is not logged in", nil)
}

// NewUserLookupFailed reports a failure to resolve the acting user.
func NewUserLookupFailed(err error) *Error {
	return New(http.StatusInternalServerError, "Error fetching user data", err)
}

// NewInsertFailed reports a post insert the backend rejected.
func NewInsertFailed(err error) *Error {
	return New(http.StatusInternalServerError, "Error inserting post", err)
}
