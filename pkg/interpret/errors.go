package interpret

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyRegistry matches any *EmptyRegistryError.
	ErrEmptyRegistry = errors.New("empty registry")

	// ErrInvalidConfig is returned for an invalid driver configuration.
	ErrInvalidConfig = errors.New("invalid interpretation config")
)

// Registry names reported by EmptyRegistryError.
const (
	EntityRegistry   = "entity"
	ObserverRegistry = "observer"
)

// EmptyRegistryError is returned by Run when a registry holds no elements and
// empty runs are not allowed.
type EmptyRegistryError struct {
	// Registry is EntityRegistry or ObserverRegistry.
	Registry string
}

func (e *EmptyRegistryError) Error() string {
	return fmt.Sprintf("%s registry is empty: nothing to interpret", e.Registry)
}

// Is reports whether target is ErrEmptyRegistry.
func (e *EmptyRegistryError) Is(target error) bool {
	return target == ErrEmptyRegistry
}
