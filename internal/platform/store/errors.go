package store

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when an id is absent from a collection.
var ErrNotFound = errors.New("record not found")

// ErrConflict is wrapped by errors that refuse a mutation because of the
// state of other records.
var ErrConflict = errors.New("conflicting state")

// ValidationError reports a record that breaks one of its invariants.
type ValidationError struct {
	Collection string
	Field      string
	Reason     string
}

func (e *ValidationError) Error() string {
	prefix := e.Collection
	if prefix == "" {
		prefix = "record"
	}
	if e.Field == "" {
		return fmt.Sprintf("%s: %s", prefix, e.Reason)
	}
	return fmt.Sprintf("%s: %s %s", prefix, e.Field, e.Reason)
}

// Invalid builds a ValidationError for field. Models return it from Validate;
// the collection fills in its own name.
func Invalid(field, format string, args ...any) *ValidationError {
	return &ValidationError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

// IsValidation reports whether err carries a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
