package registry

import "fmt"

// LookupError reports an unknown name of a given kind.
type LookupError struct {
	Kind string
	Name string
}

// Error implements the error interface for LookupError.
func (e *LookupError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Kind, e.Name)
}

// Is makes LookupError match ErrNotFound.
func (e *LookupError) Is(target error) bool {
	return target == ErrNotFound
}
