// Package apperr defines the typed errors the attempt lifecycle returns to
// its callers. Controllers map them onto HTTP status codes; services never
// swallow them.
package apperr

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound: the referenced attempt/period/test does not exist.
	ErrNotFound = errors.New("not found")
	// ErrForbidden: the attempt belongs to another user or organization.
	ErrForbidden = errors.New("forbidden")
	// ErrConflict: mutating an attempt that is not in_progress.
	ErrConflict = errors.New("conflict")
	// ErrInvalidInput: the request references questions outside the
	// attempt's test, or carries values outside their domain.
	ErrInvalidInput = errors.New("invalid input")
	// ErrInternal: invariant violation, e.g. a finished attempt without a
	// result or an unknown attempt status. Never expected from correct callers.
	ErrInternal = errors.New("internal error")
)

// IncompleteAttemptError is returned when finish is requested before every
// catalog question has an answer. It carries both counts for client display.
type IncompleteAttemptError struct {
	Answered int
	Expected int
}

func (e *IncompleteAttemptError) Error() string {
	return fmt.Sprintf("attempt not complete: %d / %d answered", e.Answered, e.Expected)
}

// NotFound wraps ErrNotFound with a description of the missing entity.
func NotFound(what string, id uint) error {
	return fmt.Errorf("%s %d: %w", what, id, ErrNotFound)
}
