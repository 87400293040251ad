package perspective

import (
	"mercator-hq/parallax/pkg/ontology"
)

// Kind names a perspective variant in scenario files.
type Kind string

const (
	KindNamed Kind = "named"
	KindState Kind = "state"
	KindBlind Kind = "blind"
	KindSelf  Kind = "self"
	KindRules Kind = "rules"
)

// Kinds lists every supported perspective kind.
var Kinds = []Kind{KindNamed, KindState, KindBlind, KindSelf, KindRules}

// NamedPerspective perceives an entity as Label when its name equals Match.
type NamedPerspective struct {
	Match string
	Label string
}

// Named returns a perspective that sees entities named match as label.
func Named(match, label string) NamedPerspective {
	return NamedPerspective{Match: match, Label: label}
}

// Interpret implements ontology.Perspective.
func (p NamedPerspective) Interpret(e ontology.Entity) (string, bool) {
	if e.Name != p.Match {
		return "", false
	}
	return p.Label, true
}

// StatePerspective perceives every entity in State as Label.
type StatePerspective struct {
	State ontology.State
	Label string
}

// InState returns a perspective that sees entities in state as label.
func InState(state ontology.State, label string) StatePerspective {
	return StatePerspective{State: state, Label: label}
}

// Interpret implements ontology.Perspective.
func (p StatePerspective) Interpret(e ontology.Entity) (string, bool) {
	if e.State != p.State {
		return "", false
	}
	return p.Label, true
}

// BlindPerspective perceives nothing.
type BlindPerspective struct{}

// Blind returns a perspective that never perceives.
func Blind() BlindPerspective {
	return BlindPerspective{}
}

// Interpret implements ontology.Perspective.
func (BlindPerspective) Interpret(ontology.Entity) (string, bool) {
	return "", false
}

// SelfPerspective perceives the entity named Name as itself, i.e. labelled by
// its own name. Everything else goes unperceived.
type SelfPerspective struct {
	Name string
}

// Self returns a perspective that recognizes only the entity called name.
func Self(name string) SelfPerspective {
	return SelfPerspective{Name: name}
}

// Interpret implements ontology.Perspective.
func (p SelfPerspective) Interpret(e ontology.Entity) (string, bool) {
	if e.Name != p.Name {
		return "", false
	}
	return e.Name, true
}
