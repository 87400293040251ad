package perspective

import (
	"fmt"
	"reflect"
	"regexp"
	"strings"
)

// Operator is a comparison operator in a simple condition.
type Operator string

const (
	OpEqual        Operator = "=="
	OpNotEqual     Operator = "!="
	OpLessThan     Operator = "<"
	OpGreaterThan  Operator = ">"
	OpLessEqual    Operator = "<="
	OpGreaterEqual Operator = ">="
	OpContains     Operator = "contains"
	OpMatches      Operator = "matches" // Regex match
	OpStartsWith   Operator = "starts_with"
	OpEndsWith     Operator = "ends_with"
	OpIn           Operator = "in"
	OpNotIn        Operator = "not_in"
)

// isKnown reports whether op is a supported operator.
func (op Operator) isKnown() bool {
	switch op {
	case OpEqual, OpNotEqual, OpLessThan, OpGreaterThan, OpLessEqual, OpGreaterEqual,
		OpContains, OpMatches, OpStartsWith, OpEndsWith, OpIn, OpNotIn:
		return true
	}
	return false
}

// isOrdering reports whether op compares magnitudes.
func (op Operator) isOrdering() bool {
	switch op {
	case OpLessThan, OpGreaterThan, OpLessEqual, OpGreaterEqual:
		return true
	}
	return false
}

// isMembership reports whether op expects a list value.
func (op Operator) isMembership() bool {
	return op == OpIn || op == OpNotIn
}

// evaluateOperator compares actual against expected. Operands have already
// been checked by Compile, and pattern is the precompiled regex for OpMatches.
func evaluateOperator(op Operator, actual, expected interface{}, pattern *regexp.Regexp) bool {
	switch op {
	case OpEqual:
		return evaluateEqual(actual, expected)

	case OpNotEqual:
		return !evaluateEqual(actual, expected)

	case OpLessThan:
		a, b := mustNumeric(actual, expected)
		return a < b

	case OpGreaterThan:
		a, b := mustNumeric(actual, expected)
		return a > b

	case OpLessEqual:
		a, b := mustNumeric(actual, expected)
		return a <= b

	case OpGreaterEqual:
		a, b := mustNumeric(actual, expected)
		return a >= b

	case OpContains:
		return strings.Contains(toString(actual), toString(expected))

	case OpMatches:
		return pattern.MatchString(toString(actual))

	case OpStartsWith:
		return strings.HasPrefix(toString(actual), toString(expected))

	case OpEndsWith:
		return strings.HasSuffix(toString(actual), toString(expected))

	case OpIn:
		return evaluateIn(actual, expected)

	case OpNotIn:
		return !evaluateIn(actual, expected)

	default:
		return false
	}
}

// evaluateEqual checks if two values are equal. Numbers compare by value so
// that an int from YAML equals a uint layer.
func evaluateEqual(actual, expected interface{}) bool {
	if actual == nil && expected == nil {
		return true
	}
	if actual == nil || expected == nil {
		return false
	}

	actualNum, actualErr := convertToFloat64(actual)
	expectedNum, expectedErr := convertToFloat64(expected)
	if actualErr == nil && expectedErr == nil {
		return actualNum == expectedNum
	}

	// A numeric field never equals a non-numeric value; everything else
	// compares by its string form.
	if actualErr == nil || expectedErr == nil {
		return false
	}
	return toString(actual) == toString(expected)
}

// evaluateIn checks if actual equals any element of the expected list.
func evaluateIn(actual, expected interface{}) bool {
	expectedVal := reflect.ValueOf(expected)
	for i := 0; i < expectedVal.Len(); i++ {
		if evaluateEqual(actual, expectedVal.Index(i).Interface()) {
			return true
		}
	}
	return false
}

// isList reports whether v is a slice or array.
func isList(v interface{}) bool {
	if v == nil {
		return false
	}
	kind := reflect.ValueOf(v).Kind()
	return kind == reflect.Slice || kind == reflect.Array
}

// mustNumeric converts both operands; Compile has verified they are numeric.
func mustNumeric(actual, expected interface{}) (float64, float64) {
	a, _ := convertToFloat64(actual)
	b, _ := convertToFloat64(expected)
	return a, b
}

// convertToFloat64 converts a value to float64.
func convertToFloat64(v interface{}) (float64, error) {
	switch val := v.(type) {
	case float64:
		return val, nil
	case float32:
		return float64(val), nil
	case int:
		return float64(val), nil
	case int8:
		return float64(val), nil
	case int16:
		return float64(val), nil
	case int32:
		return float64(val), nil
	case int64:
		return float64(val), nil
	case uint:
		return float64(val), nil
	case uint8:
		return float64(val), nil
	case uint16:
		return float64(val), nil
	case uint32:
		return float64(val), nil
	case uint64:
		return float64(val), nil
	default:
		return 0, fmt.Errorf("cannot convert %T to float64", v)
	}
}

// toString converts a value to string.
func toString(v interface{}) string {
	switch val := v.(type) {
	case string:
		return val
	case fmt.Stringer:
		return val.String()
	default:
		return fmt.Sprint(v)
	}
}
