package ontology

import (
	"fmt"
	"iter"
	"sync"
)

// EntityRegistry holds the entities of a run in insertion order.
// Registries are append-only; there is no removal.
type EntityRegistry struct {
	mu       sync.RWMutex
	entities []Entity
	index    map[int]int
}

// NewEntityRegistry creates a registry and adds the given entities in order.
// It stops at the first duplicate ID and returns the error.
func NewEntityRegistry(entities ...Entity) (*EntityRegistry, error) {
	r := &EntityRegistry{
		index: make(map[int]int, len(entities)),
	}
	for _, e := range entities {
		if err := r.Add(e); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Add inserts an entity. It fails with *DuplicateIDError if the ID is already
// present, leaving the registry unchanged.
func (r *EntityRegistry) Add(e Entity) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.index == nil {
		r.index = make(map[int]int)
	}
	if _, exists := r.index[e.ID]; exists {
		return &DuplicateIDError{ID: e.ID}
	}

	r.index[e.ID] = len(r.entities)
	r.entities = append(r.entities, e)
	return nil
}

// All returns a restartable sequence of the registered entities in insertion
// order. Entities added after All is called are not part of that sequence.
func (r *EntityRegistry) All() iter.Seq[Entity] {
	r.mu.RLock()
	snapshot := r.entities
	r.mu.RUnlock()

	return func(yield func(Entity) bool) {
		for _, e := range snapshot {
			if !yield(e) {
				return
			}
		}
	}
}

// Get returns the entity with the given ID.
func (r *EntityRegistry) Get(id int) (Entity, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	i, ok := r.index[id]
	if !ok {
		return Entity{}, false
	}
	return r.entities[i], true
}

// Len returns the number of registered entities.
func (r *EntityRegistry) Len() int {
	if r == nil {
		return 0
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entities)
}

// ObserverRegistry holds the observers of a run in insertion order.
type ObserverRegistry struct {
	mu        sync.RWMutex
	observers []Observer
	index     map[string]int
}

// NewObserverRegistry creates a registry and adds the given observers in order.
// It stops at the first failing Add and returns the error.
func NewObserverRegistry(observers ...Observer) (*ObserverRegistry, error) {
	r := &ObserverRegistry{
		index: make(map[string]int, len(observers)),
	}
	for _, o := range observers {
		if err := r.Add(o); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Add inserts an observer. It fails with *DuplicateNameError if the name is
// already present and with ErrNilPerspective if the observer has no
// perspective. A failed Add leaves the registry unchanged.
func (r *ObserverRegistry) Add(o Observer) error {
	if o.Perspective == nil {
		return fmt.Errorf("observer %q: %w", o.Name, ErrNilPerspective)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.index == nil {
		r.index = make(map[string]int)
	}
	if _, exists := r.index[o.Name]; exists {
		return &DuplicateNameError{Name: o.Name}
	}

	r.index[o.Name] = len(r.observers)
	r.observers = append(r.observers, o)
	return nil
}

// All returns a restartable sequence of the registered observers in insertion
// order.
func (r *ObserverRegistry) All() iter.Seq[Observer] {
	r.mu.RLock()
	snapshot := r.observers
	r.mu.RUnlock()

	return func(yield func(Observer) bool) {
		for _, o := range snapshot {
			if !yield(o) {
				return
			}
		}
	}
}

// Get returns the observer with the given name.
func (r *ObserverRegistry) Get(name string) (Observer, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	i, ok := r.index[name]
	if !ok {
		return Observer{}, false
	}
	return r.observers[i], true
}

// Len returns the number of registered observers.
func (r *ObserverRegistry) Len() int {
	if r == nil {
		return 0
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.observers)
}
