package ontology

import "fmt"

// State describes the structural condition of an entity. The vocabulary is
// open: any non-empty tag is accepted, the constants below are the well-known
// ones.
type State string

const (
	StateUndefined        State = "Undefined"
	StateDefined          State = "Defined"
	StateReferenced       State = "Referenced"
	StateReinterpreted    State = "Reinterpreted"
	StateContradicted     State = "Contradicted"
	StateSplit            State = "Split"
	StateMerged           State = "Merged"
	StateAbstracted       State = "Abstracted"
	StateObserverRelative State = "ObserverRelative"
	StateCollapsed        State = "Collapsed"
)

// KnownStates lists the well-known states in declaration order.
var KnownStates = []State{
	StateUndefined,
	StateDefined,
	StateReferenced,
	StateReinterpreted,
	StateContradicted,
	StateSplit,
	StateMerged,
	StateAbstracted,
	StateObserverRelative,
	StateCollapsed,
}

// IsKnown reports whether s is one of the well-known states.
func (s State) IsKnown() bool {
	for _, known := range KnownStates {
		if s == known {
			return true
		}
	}
	return false
}

// Entity is a named unit of interest with an identity, a structural state and
// a decomposition layer. Names are not unique: split aspects of one conceptual
// entity may share a name.
type Entity struct {
	// ID identifies the entity within its registry.
	ID int `json:"id" yaml:"id"`

	// Name is the display label.
	Name string `json:"name" yaml:"name"`

	// State is the entity's structural condition.
	State State `json:"state" yaml:"state"`

	// Layer groups entities produced by the same decomposition step.
	Layer uint `json:"layer" yaml:"layer"`
}

// String returns a short human-readable form of the entity.
func (e Entity) String() string {
	return fmt.Sprintf("Entity[%d]: %s | State: %s | Layer: %d", e.ID, e.Name, e.State, e.Layer)
}

// Perspective classifies an entity into a perceived label.
//
// Implementations must be deterministic, free of side effects and total over
// every entity they are asked about. Returning ok=false, or an empty label,
// means the observer does not perceive the entity.
type Perspective interface {
	Interpret(e Entity) (label string, ok bool)
}

// PerspectiveFunc adapts an ordinary function to the Perspective interface.
type PerspectiveFunc func(e Entity) (string, bool)

// Interpret calls f(e).
func (f PerspectiveFunc) Interpret(e Entity) (string, bool) {
	return f(e)
}

// Observer is a named agent whose perspective classifies entities.
type Observer struct {
	// Name identifies the observer within its registry.
	Name string

	// Perspective is the observer's interpretive lens.
	Perspective Perspective
}

// Perceive applies the observer's perspective to e. An empty label is
// normalized to "no perception".
func (o Observer) Perceive(e Entity) (string, bool) {
	label, ok := o.Perspective.Interpret(e)
	if !ok || label == "" {
		return "", false
	}
	return label, true
}
