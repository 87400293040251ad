package scenario

import (
	"fmt"
	"strings"

	"mercator-hq/parallax/pkg/ontology"
	"mercator-hq/parallax/pkg/perspective"
)

// Lint reports suspicious but valid constructs: duplicates the registries
// would reject, states outside the known vocabulary, and state perspectives
// that no entity can satisfy. The returned findings are in document order.
func (s *Scenario) Lint() []FieldError {
	var findings []FieldError

	if len(s.Entities) == 0 {
		findings = append(findings, FieldError{Field: "entities", Message: "no entities: interpretation needs allow-empty"})
	}
	if len(s.Observers) == 0 {
		findings = append(findings, FieldError{Field: "observers", Message: "no observers: interpretation needs allow-empty"})
	}

	ids := make(map[int]int, len(s.Entities))
	states := make(map[string]bool, len(s.Entities))
	for i, e := range s.Entities {
		path := fmt.Sprintf("entities[%d]", i)
		if first, dup := ids[e.ID]; dup {
			findings = append(findings, FieldError{
				Field:   path + ".id",
				Message: fmt.Sprintf("duplicate entity id %d (first used by entities[%d])", e.ID, first),
			})
		} else {
			ids[e.ID] = i
		}

		state := e.Entity().State
		states[string(state)] = true
		if !state.IsKnown() {
			findings = append(findings, FieldError{
				Field:   path + ".state",
				Message: fmt.Sprintf("state %q is not a known ontology state (known: %s)", state, strings.Join(knownStateNames(), ", ")),
			})
		}
	}

	names := make(map[string]int, len(s.Observers))
	for i, o := range s.Observers {
		path := fmt.Sprintf("observers[%d]", i)
		if first, dup := names[o.Name]; dup {
			findings = append(findings, FieldError{
				Field:   path + ".name",
				Message: fmt.Sprintf("duplicate observer name %q (first used by observers[%d])", o.Name, first),
			})
		} else {
			names[o.Name] = i
		}

		if o.Perspective.Kind == perspective.KindState && !states[o.Perspective.State] {
			findings = append(findings, FieldError{
				Field:   path + ".perspective.state",
				Message: fmt.Sprintf("no entity is in state %q", o.Perspective.State),
			})
		}
	}

	return findings
}

// knownStateNames is used in messages listing the vocabulary.
func knownStateNames() []string {
	out := make([]string, len(ontology.KnownStates))
	for i, st := range ontology.KnownStates {
		out[i] = string(st)
	}
	return out
}
