package config

import "github.com/specialistvlad/projector/internal/component"

// Model is the unified, format-agnostic representation of every declaration
// loaded from one or more sources.
type Model struct {
	Types      []*TypeDefinition
	Components []*ComponentDefinition
	Anchors    []*AnchorDefinition
	Aliases    []*AliasDefinition
}

// Merge appends the declarations of other to m, keeping source order.
func (m *Model) Merge(other *Model) {
	if other == nil {
		return
	}
	m.Types = append(m.Types, other.Types...)
	m.Components = append(m.Components, other.Components...)
	m.Anchors = append(m.Anchors, other.Anchors...)
	m.Aliases = append(m.Aliases, other.Aliases...)
}

// TypeDefinition names an implementation type and its capabilities.
type TypeDefinition struct {
	Name         string
	Capabilities component.Capability
	Source       string
}

// ComponentDefinition is a single declared component.
type ComponentDefinition struct {
	ID     string
	Type   string
	Tags   []*TagDefinition
	Source string
}

// TagDefinition is one tag occurrence on a component.
type TagDefinition struct {
	Kind       string
	Attributes component.Attributes
}

// AnchorDefinition declares a locator anchor, optionally pre-seeded.
type AnchorDefinition struct {
	Name    string
	Entries component.Table
	Source  string
}

// AliasDefinition declares a name-to-id indirection.
type AliasDefinition struct {
	Name   string
	Target string
	Source string
}
