package projector

import (
	"errors"
	"fmt"

	"github.com/specialistvlad/projector/internal/component"
)

// ErrConfiguration is matched by every declaration error the resolver returns.
var ErrConfiguration = errors.New("invalid projection configuration")

// InvalidCapabilityError is returned when a tagged component's type is
// neither a projection nor a read-model projection.
type InvalidCapabilityError struct {
	ComponentID string
	TypeName    string
}

func (e *InvalidCapabilityError) Error() string {
	return fmt.Sprintf("tagged component %q (type %q) must implement either %q or %q",
		e.ComponentID, e.TypeName,
		component.CapabilityReadModelProjection.String(),
		component.CapabilityProjection.String(),
	)
}

// Is makes the error match ErrConfiguration.
func (e *InvalidCapabilityError) Is(target error) bool { return target == ErrConfiguration }

// MissingTagAttributeError is returned when a tag occurrence omits a
// required attribute.
type MissingTagAttributeError struct {
	ComponentID string
	TagKind     string
	Attribute   string
}

func (e *MissingTagAttributeError) Error() string {
	return fmt.Sprintf("%q attribute is missing from %q tag on component %q",
		e.Attribute, e.TagKind, e.ComponentID)
}

// Is makes the error match ErrConfiguration.
func (e *MissingTagAttributeError) Is(target error) bool { return target == ErrConfiguration }

// UnknownProjectionManagerError is returned when a tag occurrence references a
// projection manager that has no component in the registry.
type UnknownProjectionManagerError struct {
	ComponentID    string
	ProjectionName string
	Manager        string
	ManagerID      string
}

func (e *UnknownProjectionManagerError) Error() string {
	return fmt.Sprintf("projection %q (component %q) is tagged for projection manager %q, "+
		"but no component %q exists; configure a projection manager named %q",
		e.ProjectionName, e.ComponentID, e.Manager, e.ManagerID, e.Manager)
}

// Is makes the error match ErrConfiguration.
func (e *UnknownProjectionManagerError) Is(target error) bool { return target == ErrConfiguration }
