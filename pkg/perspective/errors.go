package perspective

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidCondition indicates a structurally malformed condition.
	ErrInvalidCondition = errors.New("invalid condition")

	// ErrNoRules indicates a rule set was built without rules.
	ErrNoRules = errors.New("rule set has no rules")
)

// ConditionError describes why a condition failed to compile. Path is the
// dotted location of the condition inside its rule (e.g. "rules[0].when.all[1]").
type ConditionError struct {
	Path  string
	Field string
	Cause error
}

// Error returns the error message.
func (e *ConditionError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: condition on field %q: %v", e.Path, e.Field, e.Cause)
	}
	return fmt.Sprintf("%s: %v", e.Path, e.Cause)
}

// Unwrap returns the underlying cause.
func (e *ConditionError) Unwrap() error {
	return e.Cause
}

// FieldNotFoundError indicates a condition references an unknown entity field.
type FieldNotFoundError struct {
	FieldName string
}

// Error returns the error message.
func (e *FieldNotFoundError) Error() string {
	return fmt.Sprintf("field not found: %q", e.FieldName)
}

// UnknownOperatorError indicates a condition uses an unsupported operator.
type UnknownOperatorError struct {
	Operator Operator
}

// Error returns the error message.
func (e *UnknownOperatorError) Error() string {
	return fmt.Sprintf("unknown operator: %q", e.Operator)
}

// TypeMismatchError indicates an operator cannot be applied to a field or value.
type TypeMismatchError struct {
	FieldName    string
	ExpectedType string
	ActualType   string
}

// Error returns the error message.
func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("type mismatch for field %q: expected %s, got %s", e.FieldName, e.ExpectedType, e.ActualType)
}
