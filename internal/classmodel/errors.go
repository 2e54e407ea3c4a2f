package classmodel

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedInput is matched by every error Parse returns for input that
	// is not well-formed XML.
	ErrMalformedInput = errors.New("malformed class model")
	// ErrNoRootFound is returned when no class is flagged as root.
	ErrNoRootFound = errors.New("no root class found")
)

// MalformedInputError reports a syntax-level failure reading the model.
type MalformedInputError struct {
	// Line is the 1-based input line where the problem was detected, 0 if unknown.
	Line int
	Err  error
}

func (e *MalformedInputError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s: line %d: %v", ErrMalformedInput, e.Line, e.Err)
	}

	return fmt.Sprintf("%s: %v", ErrMalformedInput, e.Err)
}

func (e *MalformedInputError) Unwrap() error {
	return e.Err
}

// Is makes errors.Is(err, ErrMalformedInput) hold for every MalformedInputError.
func (e *MalformedInputError) Is(target error) bool {
	return target == ErrMalformedInput
}
