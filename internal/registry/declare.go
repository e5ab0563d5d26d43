package registry

import (
	"fmt"
	"log/slog"

	"github.com/specialistvlad/projector/internal/component"
)

// RegisterType declares an implementation type and its capabilities.
func (m *Memory) RegisterType(name string, caps component.Capability) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.types[name]; exists {
		return fmt.Errorf("type %q is already registered", name)
	}
	slog.Debug("Registering type.", "name", name, "capabilities", caps.String())
	m.types[name] = component.Type{Name: name, Capabilities: caps}
	return nil
}

// RegisterPrototype declares a type whose capabilities are derived from a Go
// prototype value.
func (m *Memory) RegisterPrototype(name string, prototype any) error {
	return m.RegisterType(name, component.CapabilitiesOf(prototype))
}

// MustRegisterType is RegisterType that panics on duplicates.
func (m *Memory) MustRegisterType(name string, caps component.Capability) {
	if err := m.RegisterType(name, caps); err != nil {
		panic(err)
	}
}

// Declare adds a component. Ids are unique; tags are copied.
func (m *Memory) Declare(c component.Component) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.frozen {
		return ErrFrozen
	}
	if c.ID == "" {
		return fmt.Errorf("component id must not be empty")
	}
	if _, exists := m.components[c.ID]; exists {
		return fmt.Errorf("component %q is already declared", c.ID)
	}

	stored := &component.Component{ID: c.ID, TypeName: c.TypeName}
	for kind, occurrences := range c.Tags {
		for _, attrs := range occurrences {
			stored.AddTag(kind, attrs.Clone())
		}
	}
	slog.Debug("Declaring component.", "id", c.ID, "type", c.TypeName)
	m.components[c.ID] = stored
	m.order = append(m.order, c.ID)
	return nil
}

// MustDeclare is Declare that panics on error.
func (m *Memory) MustDeclare(c component.Component) {
	if err := m.Declare(c); err != nil {
		panic(err)
	}
}

// AddAnchor declares a locator anchor seeded with initial, which may be nil.
func (m *Memory) AddAnchor(name string, initial component.Table) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.frozen {
		return ErrFrozen
	}
	if _, exists := m.anchors[name]; exists {
		return fmt.Errorf("anchor %q is already declared", name)
	}
	m.anchors[name] = initial.Clone()
	return nil
}

// AddProjectionAnchors declares the three projection anchors with empty tables.
func (m *Memory) AddProjectionAnchors() error {
	for _, name := range []string{AnchorProjections, AnchorProjectionManagers, AnchorReadModels} {
		if err := m.AddAnchor(name, nil); err != nil {
			return err
		}
	}
	return nil
}
