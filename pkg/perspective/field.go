package perspective

import (
	"mercator-hq/parallax/pkg/ontology"
)

// Entity fields a condition may reference.
const (
	FieldID    = "id"
	FieldName  = "name"
	FieldState = "state"
	FieldLayer = "layer"
)

// Fields lists every field a condition may reference.
var Fields = []string{FieldID, FieldName, FieldState, FieldLayer}

// isNumericField reports whether field holds a number.
func isNumericField(field string) bool {
	return field == FieldID || field == FieldLayer
}

// isKnownField reports whether field can be extracted from an entity.
func isKnownField(field string) bool {
	switch field {
	case FieldID, FieldName, FieldState, FieldLayer:
		return true
	}
	return false
}

// extractField returns the value of field on e. The field must be known;
// Compile guarantees that before any extraction happens.
func extractField(field string, e ontology.Entity) interface{} {
	switch field {
	case FieldID:
		return e.ID
	case FieldName:
		return e.Name
	case FieldState:
		return string(e.State)
	case FieldLayer:
		return e.Layer
	default:
		return nil
	}
}
