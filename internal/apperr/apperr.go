// Package apperr classifies failures raised by catalog handlers so the HTTP
// boundary can map them to a status in one place.
package apperr

import (
	"errors"
	"fmt"
	"net/http"

	"gorm.io/gorm"
)

type Kind int

const (
	// Internal covers store failures and anything unclassified.
	Internal Kind = iota
	// NotFound means a well-formed id matched no document.
	NotFound
	// Malformed means an id or reference value could not be interpreted.
	Malformed
)

func (k Kind) String() string {
	switch k {
	case NotFound:
		return "not_found"
	case Malformed:
		return "malformed"
	}
	return "internal"
}

// Status returns the HTTP status a response for this kind carries.
// Malformed references surface as server errors, like store failures.
func (k Kind) Status() int {
	if k == NotFound {
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}

type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	switch {
	case e.Message != "" && e.Err != nil:
		return e.Message + ": " + e.Err.Error()
	case e.Message != "":
		return e.Message
	case e.Err != nil:
		return e.Err.Error()
	}
	return e.Kind.String()
}

func (e *Error) Unwrap() error {
	return e.Err
}

func NewNotFound(message string) *Error {
	return &Error{Kind: NotFound, Message: message}
}

// NewMalformed wraps a parse or coercion failure for field.
func NewMalformed(field string, err error) *Error {
	return &Error{Kind: Malformed, Message: fmt.Sprintf("malformed %s", field), Err: err}
}

func NewInternal(err error) *Error {
	return &Error{Kind: Internal, Err: err}
}

// FromStore classifies a repository error. A missing record becomes NotFound
// carrying notFoundMessage; everything else is Internal.
func FromStore(err error, notFoundMessage string) error {
	if err == nil {
		return nil
	}
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &Error{Kind: NotFound, Message: notFoundMessage, Err: err}
	}
	return NewInternal(err)
}

// KindOf returns the kind of the first *Error in err's chain, or Internal.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return Internal
}

// Message returns the user-facing message for err.
func Message(err error) string {
	var appErr *Error
	if errors.As(err, &appErr) && appErr.Message != "" {
		return appErr.Message
	}
	return http.StatusText(KindOf(err).Status())
}
