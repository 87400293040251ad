package perspective

import (
	"fmt"
	"regexp"

	"mercator-hq/parallax/pkg/ontology"
)

// ConditionType is the shape of a condition node.
type ConditionType string

const (
	ConditionTypeSimple ConditionType = "simple" // field op value
	ConditionTypeAll    ConditionType = "all"    // AND of children
	ConditionTypeAny    ConditionType = "any"    // OR of children
	ConditionTypeNot    ConditionType = "not"    // NOT of child
)

// Condition is a predicate over entity fields. Exactly one of All, Any, Not
// or Field must be set.
type Condition struct {
	All   []*Condition `yaml:"all,omitempty" json:"all,omitempty"`
	Any   []*Condition `yaml:"any,omitempty" json:"any,omitempty"`
	Not   *Condition   `yaml:"not,omitempty" json:"not,omitempty"`
	Field string       `yaml:"field,omitempty" json:"field,omitempty"`
	Op    Operator     `yaml:"op,omitempty" json:"op,omitempty"`
	Value interface{}  `yaml:"value,omitempty" json:"value,omitempty"`

	// pattern is the compiled regex for OpMatches.
	pattern *regexp.Regexp
}

// All returns a condition matching when every child matches.
func All(children ...*Condition) *Condition {
	return &Condition{All: children}
}

// Any returns a condition matching when at least one child matches.
func Any(children ...*Condition) *Condition {
	return &Condition{Any: children}
}

// Not returns a condition matching when child does not.
func Not(child *Condition) *Condition {
	return &Condition{Not: child}
}

// Compare returns a simple field comparison.
func Compare(field string, op Operator, value interface{}) *Condition {
	return &Condition{Field: field, Op: op, Value: value}
}

// Type returns the condition's shape, or "" when it is ambiguous or empty.
func (c *Condition) Type() ConditionType {
	var types []ConditionType
	if len(c.All) > 0 {
		types = append(types, ConditionTypeAll)
	}
	if len(c.Any) > 0 {
		types = append(types, ConditionTypeAny)
	}
	if c.Not != nil {
		types = append(types, ConditionTypeNot)
	}
	if c.Field != "" || c.Op != "" {
		types = append(types, ConditionTypeSimple)
	}
	if len(types) != 1 {
		return ""
	}
	return types[0]
}

// Compile validates the condition tree and prepares it for matching. path
// locates the condition in error messages.
func (c *Condition) Compile(path string) error {
	switch c.Type() {
	case ConditionTypeAll:
		for i, child := range c.All {
			if err := compileChild(child, fmt.Sprintf("%s.all[%d]", path, i)); err != nil {
				return err
			}
		}
		return nil

	case ConditionTypeAny:
		for i, child := range c.Any {
			if err := compileChild(child, fmt.Sprintf("%s.any[%d]", path, i)); err != nil {
				return err
			}
		}
		return nil

	case ConditionTypeNot:
		return c.Not.Compile(path + ".not")

	case ConditionTypeSimple:
		return c.compileSimple(path)

	default:
		return &ConditionError{
			Path:  path,
			Cause: fmt.Errorf("%w: exactly one of all, any, not or field must be set", ErrInvalidCondition),
		}
	}
}

func compileChild(child *Condition, path string) error {
	if child == nil {
		return &ConditionError{Path: path, Cause: fmt.Errorf("%w: empty condition", ErrInvalidCondition)}
	}
	return child.Compile(path)
}

// compileSimple checks a field comparison against the entity schema.
func (c *Condition) compileSimple(path string) error {
	fail := func(err error) error {
		return &ConditionError{Path: path, Field: c.Field, Cause: err}
	}

	if !isKnownField(c.Field) {
		return fail(&FieldNotFoundError{FieldName: c.Field})
	}
	if !c.Op.isKnown() {
		return fail(&UnknownOperatorError{Operator: c.Op})
	}
	if c.Value == nil {
		return fail(fmt.Errorf("%w: operator %q requires a value", ErrInvalidCondition, c.Op))
	}

	switch {
	case c.Op.isOrdering():
		if !isNumericField(c.Field) {
			return fail(&TypeMismatchError{FieldName: c.Field, ExpectedType: "number", ActualType: "string"})
		}
		if _, err := convertToFloat64(c.Value); err != nil {
			return fail(&TypeMismatchError{FieldName: c.Field, ExpectedType: "number", ActualType: fmt.Sprintf("%T", c.Value)})
		}

	case c.Op.isMembership():
		if !isList(c.Value) {
			return fail(&TypeMismatchError{FieldName: c.Field, ExpectedType: "list", ActualType: fmt.Sprintf("%T", c.Value)})
		}

	case c.Op == OpMatches:
		pattern, ok := c.Value.(string)
		if !ok {
			return fail(&TypeMismatchError{FieldName: c.Field, ExpectedType: "string pattern", ActualType: fmt.Sprintf("%T", c.Value)})
		}
		re, err := regexp.Compile(pattern)
		if err != nil {
			return fail(fmt.Errorf("invalid regex pattern %q: %w", pattern, err))
		}
		c.pattern = re
	}

	return nil
}

// Match evaluates the condition against e. A nil condition always matches.
// The condition must have been compiled.
func (c *Condition) Match(e ontology.Entity) bool {
	if c == nil {
		return true
	}

	switch c.Type() {
	case ConditionTypeAll:
		for _, child := range c.All {
			// Short-circuit on the first miss
			if !child.Match(e) {
				return false
			}
		}
		return true

	case ConditionTypeAny:
		for _, child := range c.Any {
			if child.Match(e) {
				return true
			}
		}
		return false

	case ConditionTypeNot:
		return !c.Not.Match(e)

	case ConditionTypeSimple:
		if c.Op == OpMatches && c.pattern == nil {
			return false
		}
		return evaluateOperator(c.Op, extractField(c.Field, e), c.Value, c.pattern)

	default:
		return false
	}
}
