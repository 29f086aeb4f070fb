package tree

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrMissingField is matched by *MissingFieldError.
	ErrMissingField = errors.New("tree: mandatory field not set")
	// ErrInvalidValue is matched by *InvalidValueError.
	ErrInvalidValue = errors.New("tree: invalid field value")
	// ErrAlreadyBuilt is returned by Build on a builder that already produced a Config.
	ErrAlreadyBuilt = errors.New("tree: builder already built")
)

// MissingFieldError names the mandatory fields that were never set, in declaration order.
type MissingFieldError struct {
	Fields []string
}

// Error implements the error interface.
func (e *MissingFieldError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("tree: mandatory field(s) not set: %s", strings.Join(e.Fields, ", "))
}

// Field returns the first missing field.
func (e *MissingFieldError) Field() string {
	if e == nil || len(e.Fields) == 0 {
		return ""
	}
	return e.Fields[0]
}

// Is matches ErrMissingField.
func (e *MissingFieldError) Is(target error) bool {
	return target == ErrMissingField
}

// InvalidValueError describes a value rejected by a setter.
type InvalidValueError struct {
	Field  string
	Value  any
	Reason string
}

// Error implements the error interface.
func (e *InvalidValueError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("tree: invalid value %v for %s: %s", e.Value, e.Field, e.Reason)
}

// Is matches ErrInvalidValue.
func (e *InvalidValueError) Is(target error) bool {
	return target == ErrInvalidValue
}
