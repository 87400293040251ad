package scenario

import (
	"fmt"
	"strings"
)

// FieldError is a problem with one field of a scenario document.
type FieldError struct {
	// Field is the path to the field, e.g. "observers[2].perspective.state".
	Field string

	// Message is a human-readable description.
	Message string
}

// Error returns the error message for this field error.
func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationError collects every FieldError found in a scenario.
type ValidationError struct {
	// Source is the scenario file or label.
	Source string

	// Errors contains all validation errors, in document order.
	Errors []FieldError
}

// Error returns a formatted string containing all validation errors.
func (e *ValidationError) Error() string {
	prefix := "scenario validation failed"
	if e.Source != "" {
		prefix = fmt.Sprintf("scenario %q validation failed", e.Source)
	}

	switch len(e.Errors) {
	case 0:
		return prefix
	case 1:
		return fmt.Sprintf("%s: %s", prefix, e.Errors[0].Error())
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%s with %d errors:\n", prefix, len(e.Errors)))
	for _, err := range e.Errors {
		sb.WriteString(fmt.Sprintf("  - %s\n", err.Error()))
	}
	return sb.String()
}
