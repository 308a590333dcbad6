// Package apperr is the closed error taxonomy shared by services and HTTP
// handlers. Services return *Error values; middleware.ErrorMapper turns them
// into status codes and {"detail": ...} bodies in one place.
package apperr

import (
	"errors"
	"net/http"
)

// Kind classifies an error for the HTTP boundary.
type Kind int

const (
	// KindBackend is the zero value: anything unclassified is a backend failure.
	KindBackend Kind = iota
	KindUnauthorized
	KindNotFound
	KindForbidden
	KindInvalid
)

func (k Kind) String() string {
	switch k {
	case KindUnauthorized:
		return "unauthorized"
	case KindNotFound:
		return "not_found"
	case KindForbidden:
		return "forbidden"
	case KindInvalid:
		return "invalid"
	}
	return "backend"
}

// Status returns the HTTP status for the kind.
func (k Kind) Status() int {
	switch k {
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindNotFound:
		return http.StatusNotFound
	case KindForbidden:
		return http.StatusForbidden
	case KindInvalid:
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}

// Error carries a kind, a client-facing message and an optional cause.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Kind.String()
}

func (e *Error) Unwrap() error { return e.Err }

func Unauthorized(msg string) *Error { return &Error{Kind: KindUnauthorized, Message: msg} }
func NotFound(msg string) *Error     { return &Error{Kind: KindNotFound, Message: msg} }
func Forbidden(msg string) *Error    { return &Error{Kind: KindForbidden, Message: msg} }
func Invalid(msg string) *Error      { return &Error{Kind: KindInvalid, Message: msg} }

// Backend wraps an unexpected failure. The message is the raw error text.
func Backend(err error) *Error {
	if err == nil {
		err = errors.New("unknown backend error")
	}
	return &Error{Kind: KindBackend, Message: err.Error(), Err: err}
}

// KindOf reports the kind of err; errors outside the taxonomy are backend errors.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindBackend
}

// Status maps err to an HTTP status code.
func Status(err error) int { return KindOf(err).Status() }

// Detail returns the client-facing message for err.
func Detail(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Error()
	}
	return err.Error()
}
