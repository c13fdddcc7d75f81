package appointment

import (
	"errors"
	"strings"
)

var (
	ErrNotFound = errors.New("appointment not found")
)

// ValidationError reports booking input that is missing required fields.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return "missing required fields: " + strings.Join(e.Fields, ", ")
}

// InfrastructureError wraps a storage failure so callers can tell it apart
// from bad input.
type InfrastructureError struct {
	Op  string
	Err error
}

func (e *InfrastructureError) Error() string { return e.Op + ": " + e.Err.Error() }

func (e *InfrastructureError) Unwrap() error { return e.Err }

func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

func IsInfrastructure(err error) bool {
	var ie *InfrastructureError
	return errors.As(err, &ie)
}
