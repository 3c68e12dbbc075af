// Package apperr maps failures from the lower layers onto HTTP statuses and the
// uniform JSON error envelope returned by every endpoint.
package apperr

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/bookcook/api/internal/auth"
	"github.com/bookcook/api/internal/services"
	"github.com/bookcook/api/internal/store"
	"github.com/bookcook/api/internal/validate"
	pkgerrors "github.com/pkg/errors"
)

// Error is a failure that already knows its HTTP status and client-facing message.
type Error struct {
	Status  int
	Message string
	cause   error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.cause
}

// Stack returns the cause chain followed by the stack trace captured when the
// error was created or mapped.
func (e *Error) Stack() string {
	if e.cause == nil {
		return ""
	}
	return fmt.Sprintf("%+v", e.cause)
}

// Envelope is the JSON body written for every failed request.
type Envelope struct {
	Type    string `json:"type"`
	Status  int    `json:"status"`
	Message string `json:"message"`
	Stack   string `json:"stack,omitempty"`
}

// Envelope renders e. The stack trace is only included in development.
func (e *Error) Envelope(development bool) Envelope {
	env := Envelope{Type: "error", Status: e.Status, Message: e.Message}
	if development {
		env.Stack = e.Stack()
	}
	return env
}

func newError(status int, message string) *Error {
	return &Error{Status: status, Message: message, cause: pkgerrors.New(message)}
}

func (e *Error) wrap(err error) *Error {
	e.cause = pkgerrors.WithStack(err)
	return e
}

// BadRequest is returned for bodies that do not match the expected shape.
func BadRequest() *Error { return newError(http.StatusBadRequest, "Bad Request") }

// NotANumber is returned when a path identifier is not numeric.
func NotANumber() *Error { return newError(http.StatusBadRequest, "Input must be a number") }

// Unauthorized is returned for a wrong password or security answer.
func Unauthorized() *Error { return newError(http.StatusUnauthorized, "Unauthorized") }

// Conflict is returned when a create reuses a unique key.
func Conflict() *Error { return newError(http.StatusConflict, "Conflict") }

// NotFound is returned when entity cannot be found by its identifier or email.
func NotFound(entity string) *Error {
	return newError(http.StatusNotFound, entity+" not found")
}

// RouteNotFound is returned when no route matches the request.
func RouteNotFound() *Error { return newError(http.StatusNotFound, "Not Found") }

// Internal wraps an unexpected failure, keeping its message.
func Internal(err error) *Error {
	return (&Error{Status: http.StatusInternalServerError, Message: err.Error()}).wrap(err)
}

// From maps any error returned by a service, validator or store onto an *Error.
// Unknown errors become 500s.
func From(err error) *Error {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr
	}

	var nf *services.NotFoundError
	switch {
	case errors.Is(err, validate.ErrNotANumber):
		return NotANumber().wrap(err)
	case errors.Is(err, validate.ErrShape), errors.Is(err, auth.ErrPasswordTooLong):
		return BadRequest().wrap(err)
	case errors.Is(err, store.ErrDuplicate):
		return Conflict().wrap(err)
	case errors.As(err, &nf):
		return NotFound(nf.Entity).wrap(err)
	case errors.Is(err, store.ErrNotFound):
		return RouteNotFound().wrap(err)
	case errors.Is(err, services.ErrUnauthorized):
		return Unauthorized().wrap(err)
	default:
		return Internal(err)
	}
}
