package model

import "fmt"

// StructuralError reports a malformed literal handed to a constructor or
// setter: bad base64 content, a date token that is not a real calendar date,
// a negative line reference. These are rejected immediately at the boundary;
// business-level completeness is checked separately by Validate.
type StructuralError struct {
	Field   string
	Value   interface{}
	Message string
	Cause   error
}

func (e *StructuralError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (value=%v): %v", e.Field, e.Message, e.Value, e.Cause)
	}
	if e.Value != nil {
		return fmt.Sprintf("%s: %s (value=%v)", e.Field, e.Message, e.Value)
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *StructuralError) Unwrap() error {
	return e.Cause
}

// NewStructuralError creates a new structural error
func NewStructuralError(field string, value interface{}, message string, cause error) *StructuralError {
	return &StructuralError{
		Field:   field,
		Value:   value,
		Message: message,
		Cause:   cause,
	}
}
