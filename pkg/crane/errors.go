package crane

import "fmt"

// InputError indicates a malformed CraneSpecification. It is the only error
// class surfaced to callers of the valuation pipeline; every other degraded
// condition lowers the confidence score instead of failing the call.
type InputError struct {
	Field  string
	Reason string
}

func (e *InputError) Error() string {
	return fmt.Sprintf("invalid crane specification: %s: %s", e.Field, e.Reason)
}

// NewInputError constructs an InputError for the given field.
func NewInputError(field, reason string) *InputError {
	return &InputError{Field: field, Reason: reason}
}
