package ontology

import (
	"errors"
	"fmt"
)

// Sentinel errors for registry construction. The typed errors below match
// them through errors.Is.
var (
	// ErrDuplicateID indicates an entity ID is already registered.
	ErrDuplicateID = errors.New("duplicate entity id")

	// ErrDuplicateName indicates an observer name is already registered.
	ErrDuplicateName = errors.New("duplicate observer name")

	// ErrNilPerspective indicates an observer was registered without a perspective.
	ErrNilPerspective = errors.New("observer has no perspective")
)

// DuplicateIDError is returned when an entity with an existing ID is added.
type DuplicateIDError struct {
	ID int
}

// Error returns the error message.
func (e *DuplicateIDError) Error() string {
	return fmt.Sprintf("entity id %d already registered", e.ID)
}

// Is reports whether target is ErrDuplicateID.
func (e *DuplicateIDError) Is(target error) bool {
	return target == ErrDuplicateID
}

// DuplicateNameError is returned when an observer with an existing name is added.
type DuplicateNameError struct {
	Name string
}

// Error returns the error message.
func (e *DuplicateNameError) Error() string {
	return fmt.Sprintf("observer %q already registered", e.Name)
}

// Is reports whether target is ErrDuplicateName.
func (e *DuplicateNameError) Is(target error) bool {
	return target == ErrDuplicateName
}
