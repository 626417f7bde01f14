package storage

import (
	"errors"
	"fmt"

	"github.com/vdk888/knowledge/pkg/knowledge"
)

// ErrBackendUnavailable marks a durable backend fault. The fallback driver
// absorbs it and it never reaches callers of the façade.
var ErrBackendUnavailable = errors.New("storage backend unavailable")

// NotFoundError is returned when an update references a record that doesn't exist.
type NotFoundError struct {
	Entity string
	ID     int64
}

func (e NotFoundError) Error() string {
	if e.Entity == "" {
		return "record not found"
	}

	return fmt.Sprintf("%s not found: %d", e.Entity, e.ID)
}

// ConflictError is returned when a write would break a uniqueness constraint.
type ConflictError struct {
	Entity string
	Field  string
	Value  string
}

func (e ConflictError) Error() string {
	return fmt.Sprintf("%s with %s %q already exists", e.Entity, e.Field, e.Value)
}

// IsNotFound reports whether err is a NotFoundError.
func IsNotFound(err error) bool {
	var nf NotFoundError
	return errors.As(err, &nf)
}

// IsCallerError reports whether err is the answer to a bad request rather
// than a backend fault: a missing record, invalid input or a conflict.
func IsCallerError(err error) bool {
	if err == nil {
		return false
	}

	var (
		nf  NotFoundError
		ce  ConflictError
		inv *knowledge.ValidationError
	)
	return errors.As(err, &nf) || errors.As(err, &ce) || errors.As(err, &inv)
}
