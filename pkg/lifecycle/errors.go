package lifecycle

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInitTimeout is returned when a module init function does not
	// finish within the configured timeout.
	ErrInitTimeout = errors.New("module initialization timeout")

	// ErrNotReady is returned when a session is started before every module
	// is ready.
	ErrNotReady = errors.New("modules not ready")

	// ErrUnknownModule is returned when registering an init function for a
	// module that is not in the module list.
	ErrUnknownModule = errors.New("unknown module")

	// ErrNilInit is returned when registering a nil init function.
	ErrNilInit = errors.New("nil init function")
)

// NotReadyError lists the modules that were not ready when a session was
// requested.
type NotReadyError struct {
	Modules []string
}

func (e *NotReadyError) Error() string {
	return fmt.Sprintf("modules not ready: %s", strings.Join(e.Modules, ", "))
}

// Is reports whether target is ErrNotReady.
func (e *NotReadyError) Is(target error) bool {
	return target == ErrNotReady
}
