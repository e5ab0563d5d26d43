// Package locator dispatches by projection name over the tables the
// projection resolver commits. A Locator snapshots one anchor table and
// resolves its references lazily, through the registry, at lookup time.
package locator

import (
	"errors"
	"fmt"

	"github.com/specialistvlad/projector/internal/component"
	"github.com/specialistvlad/projector/internal/registry"
)

// ErrNotFound is returned for projection names absent from the table.
var ErrNotFound = errors.New("projection not found")

// Resolver turns a component id or alias into a declared component id.
type Resolver interface {
	Resolve(id string) (string, error)
}

// Locator maps projection names to components for one anchor.
type Locator struct {
	anchor   string
	table    component.Table
	resolver Resolver
}

// New snapshots the table of anchor from reg.
func New(reg registry.Registry, resolver Resolver, anchor string) (*Locator, error) {
	tbl, err := reg.AnchorTable(anchor)
	if err != nil {
		return nil, fmt.Errorf("locator %q: %w", anchor, err)
	}
	return &Locator{anchor: anchor, table: tbl, resolver: resolver}, nil
}

// Anchor returns the anchor name the locator was built from.
func (l *Locator) Anchor() string {
	return l.anchor
}

// Has reports whether name is indexed.
func (l *Locator) Has(name string) bool {
	_, ok := l.table[name]
	return ok
}

// Reference returns the raw reference stored for name.
func (l *Locator) Reference(name string) (component.Reference, bool) {
	ref, ok := l.table[name]
	return ref, ok
}

// Get resolves name to the id of the component that serves it.
func (l *Locator) Get(name string) (string, error) {
	ref, ok := l.table[name]
	if !ok {
		return "", fmt.Errorf("%s %q: %w", l.anchor, name, ErrNotFound)
	}
	id, err := l.resolver.Resolve(ref.ID)
	if err != nil {
		return "", fmt.Errorf("%s %q: %w", l.anchor, name, err)
	}
	return id, nil
}

// Names returns the indexed projection names in lexical order.
func (l *Locator) Names() []string {
	return l.table.Names()
}

// Set bundles the locators of the three projection anchors.
type Set struct {
	Projections *Locator
	Managers    *Locator
	ReadModels  *Locator
}

// ResolvingRegistry is what NewSet needs from a registry: table access and
// alias resolution. *registry.Memory satisfies it.
type ResolvingRegistry interface {
	registry.Registry
	Resolver
}

// NewSet builds the three projection locators from reg.
func NewSet(reg ResolvingRegistry) (*Set, error) {
	projections, err := New(reg, reg, registry.AnchorProjections)
	if err != nil {
		return nil, err
	}
	managers, err := New(reg, reg, registry.AnchorProjectionManagers)
	if err != nil {
		return nil, err
	}
	readModels, err := New(reg, reg, registry.AnchorReadModels)
	if err != nil {
		return nil, err
	}
	return &Set{Projections: projections, Managers: managers, ReadModels: readModels}, nil
}
