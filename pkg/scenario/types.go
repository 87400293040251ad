package scenario

import (
	"mercator-hq/parallax/pkg/ontology"
	"mercator-hq/parallax/pkg/perspective"
)

// Scenario is a parsed and validated scenario document.
type Scenario struct {
	// Name is a free-form scenario name.
	Name string `yaml:"name" json:"name"`

	// Description is optional documentation.
	Description string `yaml:"description,omitempty" json:"description,omitempty"`

	// Entities in registry insertion order.
	Entities []EntitySpec `yaml:"entities" json:"entities"`

	// Observers in registry insertion order.
	Observers []ObserverSpec `yaml:"observers" json:"observers"`

	// Source is the file the scenario was read from, or a label such as
	// "builtin".
	Source string `yaml:"-" json:"source,omitempty"`

	// perspectives holds the compiled perspective of each observer, indexed
	// like Observers.
	perspectives []ontology.Perspective
}

// EntitySpec describes one entity.
type EntitySpec struct {
	ID    int    `yaml:"id" json:"id"`
	Name  string `yaml:"name" json:"name"`
	State string `yaml:"state,omitempty" json:"state,omitempty"`
	Layer int    `yaml:"layer,omitempty" json:"layer,omitempty"`
}

// Entity converts the spec into an ontology entity. An empty state becomes
// ontology.StateUndefined.
func (s EntitySpec) Entity() ontology.Entity {
	state := ontology.State(s.State)
	if state == "" {
		state = ontology.StateUndefined
	}
	return ontology.Entity{
		ID:    s.ID,
		Name:  s.Name,
		State: state,
		Layer: uint(s.Layer),
	}
}

// ObserverSpec describes one observer.
type ObserverSpec struct {
	Name        string          `yaml:"name" json:"name"`
	Perspective PerspectiveSpec `yaml:"perspective" json:"perspective"`
}

// PerspectiveSpec selects and parameterizes a perspective variant.
//
// Fields used per kind:
//   - named: Match, Label
//   - state: State, Label
//   - self:  Match
//   - blind: none
//   - rules: Rules
type PerspectiveSpec struct {
	Kind  perspective.Kind   `yaml:"kind" json:"kind"`
	Match string             `yaml:"match,omitempty" json:"match,omitempty"`
	State string             `yaml:"state,omitempty" json:"state,omitempty"`
	Label string             `yaml:"label,omitempty" json:"label,omitempty"`
	Rules []perspective.Rule `yaml:"rules,omitempty" json:"rules,omitempty"`
}

// Registries builds fresh entity and observer registries in file order.
// Duplicate entity IDs fail with *ontology.DuplicateIDError and duplicate
// observer names with *ontology.DuplicateNameError.
func (s *Scenario) Registries() (*ontology.EntityRegistry, *ontology.ObserverRegistry, error) {
	entities, err := ontology.NewEntityRegistry()
	if err != nil {
		return nil, nil, err
	}
	for _, spec := range s.Entities {
		if err := entities.Add(spec.Entity()); err != nil {
			return nil, nil, err
		}
	}

	observers, err := ontology.NewObserverRegistry()
	if err != nil {
		return nil, nil, err
	}
	for i, spec := range s.Observers {
		o := ontology.Observer{Name: spec.Name, Perspective: s.perspectives[i]}
		if err := observers.Add(o); err != nil {
			return nil, nil, err
		}
	}

	return entities, observers, nil
}
