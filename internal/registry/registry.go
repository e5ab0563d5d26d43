package registry

import (
	"errors"
	"fmt"
	"sync"

	"github.com/specialistvlad/projector/internal/component"
)

// Well-known anchor names for the three projection locator tables.
const (
	AnchorProjections        = "projections"
	AnchorProjectionManagers = "projection_managers"
	AnchorReadModels         = "read_models"
)

var (
	// ErrNotFound is returned when a component, type, alias or anchor is unknown.
	ErrNotFound = errors.New("not found")
	// ErrFrozen is returned by mutating calls on a frozen registry.
	ErrFrozen = errors.New("registry is frozen")
	// ErrAliasCycle is returned by Resolve when aliases form a loop.
	ErrAliasCycle = errors.New("alias cycle")
)

// Registry is the view of the component registry consumed by build passes.
type Registry interface {
	// Tagged enumerates the ids of components carrying kind, in declaration order.
	Tagged(kind string) []string
	// ImplementationType returns the type handle of a component.
	ImplementationType(id string) (component.Type, error)
	// Tags returns all occurrences of kind on a component.
	Tags(id, kind string) ([]component.Attributes, error)
	// Has reports whether id names a component or an alias.
	Has(id string) bool

	// HasAnchor reports whether a locator anchor is declared.
	HasAnchor(name string) bool
	// AnchorTable returns a copy of an anchor's current table.
	AnchorTable(name string) (component.Table, error)
	// ReplaceAnchorTable swaps an anchor's table for table as a whole.
	ReplaceAnchorTable(name string, table component.Table) error

	// SetAlias creates or overwrites an alias.
	SetAlias(alias, target string) error
}

// Memory is an in-memory Registry. The zero value is not usable; call New.
type Memory struct {
	mu sync.RWMutex

	types      map[string]component.Type
	components map[string]*component.Component
	order      []string
	anchors    map[string]component.Table
	aliases    map[string]string
	frozen     bool
}

var _ Registry = (*Memory)(nil)

// New creates and initializes an empty Memory registry.
func New() *Memory {
	return &Memory{
		types:      make(map[string]component.Type),
		components: make(map[string]*component.Component),
		anchors:    make(map[string]component.Table),
		aliases:    make(map[string]string),
	}
}

// Tagged implements Registry.
func (m *Memory) Tagged(kind string) []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var ids []string
	for _, id := range m.order {
		if m.components[id].HasTag(kind) {
			ids = append(ids, id)
		}
	}
	return ids
}

// ImplementationType implements Registry.
func (m *Memory) ImplementationType(id string) (component.Type, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	c, ok := m.components[id]
	if !ok {
		return component.Type{}, &LookupError{Kind: "component", Name: id}
	}
	typ, ok := m.types[c.TypeName]
	if !ok {
		return component.Type{}, &LookupError{Kind: "type", Name: c.TypeName}
	}
	return typ, nil
}

// Tags implements Registry. Each occurrence is returned as a copy.
func (m *Memory) Tags(id, kind string) ([]component.Attributes, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	c, ok := m.components[id]
	if !ok {
		return nil, &LookupError{Kind: "component", Name: id}
	}
	occurrences := c.Tags[kind]
	out := make([]component.Attributes, 0, len(occurrences))
	for _, attrs := range occurrences {
		out = append(out, attrs.Clone())
	}
	return out, nil
}

// Has implements Registry.
func (m *Memory) Has(id string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if _, ok := m.components[id]; ok {
		return true
	}
	_, ok := m.aliases[id]
	return ok
}

// HasComponent reports whether id names a declared component, ignoring aliases.
func (m *Memory) HasComponent(id string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()

	_, ok := m.components[id]
	return ok
}

// HasAnchor implements Registry.
func (m *Memory) HasAnchor(name string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()

	_, ok := m.anchors[name]
	return ok
}

// AnchorTable implements Registry.
func (m *Memory) AnchorTable(name string) (component.Table, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	tbl, ok := m.anchors[name]
	if !ok {
		return nil, &LookupError{Kind: "anchor", Name: name}
	}
	return tbl.Clone(), nil
}

// ReplaceAnchorTable implements Registry.
func (m *Memory) ReplaceAnchorTable(name string, table component.Table) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.frozen {
		return ErrFrozen
	}
	if _, ok := m.anchors[name]; !ok {
		return &LookupError{Kind: "anchor", Name: name}
	}
	m.anchors[name] = table.Clone()
	return nil
}

// SetAlias implements Registry.
func (m *Memory) SetAlias(alias, target string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.frozen {
		return ErrFrozen
	}
	m.aliases[alias] = target
	return nil
}

// Alias returns the direct target of an alias.
func (m *Memory) Alias(alias string) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	target, ok := m.aliases[alias]
	return target, ok
}

// Aliases returns a snapshot of every alias.
func (m *Memory) Aliases() map[string]string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make(map[string]string, len(m.aliases))
	for k, v := range m.aliases {
		out[k] = v
	}
	return out
}

// Resolve follows aliases from id until it reaches a declared component.
func (m *Memory) Resolve(id string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	seen := make(map[string]struct{})
	current := id
	for {
		if _, ok := m.components[current]; ok {
			return current, nil
		}
		next, ok := m.aliases[current]
		if !ok {
			return "", &LookupError{Kind: "component", Name: current}
		}
		if _, loop := seen[current]; loop {
			return "", fmt.Errorf("resolving %q: %w", id, ErrAliasCycle)
		}
		seen[current] = struct{}{}
		current = next
	}
}

// Freeze makes the registry read-only. Later anchor replacements and alias
// writes fail with ErrFrozen.
func (m *Memory) Freeze() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.frozen = true
}

// Frozen reports whether Freeze was called.
func (m *Memory) Frozen() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.frozen
}

// Len returns the number of declared components.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.order)
}
