package structure

import (
	"errors"
	"fmt"
	"strings"

	"config-generator/internal/classmodel"
)

var (
	// ErrNoRootFound is returned by Render and Metadata for a model without a root class.
	ErrNoRootFound = classmodel.ErrNoRootFound
	// ErrContainmentCycle is matched by every CycleError.
	ErrContainmentCycle = errors.New("containment cycle")
)

// CycleError reports a class that contains itself, directly or transitively.
type CycleError struct {
	// Path lists the classes from the root down to the repeated class, which
	// appears both first in the cycle and last in Path.
	Path []string
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("%s: %s", ErrContainmentCycle, strings.Join(e.Path, " -> "))
}

// Is makes errors.Is(err, ErrContainmentCycle) hold.
func (e *CycleError) Is(target error) bool {
	return target == ErrContainmentCycle
}

// UnknownClassError reports a child reference to a class the model does not define.
type UnknownClassError struct {
	Parent string
	Child  string
}

func (e *UnknownClassError) Error() string {
	return fmt.Sprintf("class %q contains unknown class %q", e.Parent, e.Child)
}
