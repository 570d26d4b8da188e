package codegen

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// Registry errors
	ErrUnregisteredType = errors.New("type is not registered")
	ErrDuplicateKey     = errors.New("registry key already exists")

	// Fragment errors
	ErrUnfilledHole = errors.New("generated fragment has unexpected open holes")
)

// TypeError reports a generation failure together with the type, field and
// registry key involved. Empty parts are omitted from the message.
type TypeError struct {
	Type  string
	Field string
	Key   string
	Err   error
}

func (e *TypeError) Error() string {
	var parts []string
	if e.Type != "" {
		parts = append(parts, "type "+e.Type)
	}
	if e.Field != "" {
		parts = append(parts, "field "+e.Field)
	}
	if e.Key != "" {
		parts = append(parts, fmt.Sprintf("key %q", e.Key))
	}
	if len(parts) == 0 {
		return e.Err.Error()
	}
	return strings.Join(parts, ": ") + ": " + e.Err.Error()
}

func (e *TypeError) Unwrap() error {
	return e.Err
}
