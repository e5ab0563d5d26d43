package component

// Type is the implementation type handle of a component. The registry owns
// the mapping from type names to capability sets.
type Type struct {
	Name         string
	Capabilities Capability
}

// Satisfies reports whether the type carries the wanted capability.
func (t Type) Satisfies(want Capability) bool {
	return t.Capabilities.Satisfies(want)
}

// Attributes is one tag occurrence: an unordered, string-keyed attribute bag.
type Attributes map[string]string

// Lookup returns the attribute value and whether it was declared.
func (a Attributes) Lookup(key string) (string, bool) {
	v, ok := a[key]
	return v, ok
}

// Clone returns an independent copy of the attribute bag.
func (a Attributes) Clone() Attributes {
	if a == nil {
		return nil
	}
	out := make(Attributes, len(a))
	for k, v := range a {
		out[k] = v
	}
	return out
}

// Component is a declaration held by a registry.
type Component struct {
	ID       string
	TypeName string
	// Tags maps a tag kind to its occurrences in declaration order.
	Tags map[string][]Attributes
}

// AddTag appends an occurrence of kind to the component.
func (c *Component) AddTag(kind string, attrs Attributes) {
	if c.Tags == nil {
		c.Tags = make(map[string][]Attributes)
	}
	c.Tags[kind] = append(c.Tags[kind], attrs)
}

// HasTag reports whether the component carries at least one occurrence of kind.
func (c *Component) HasTag(kind string) bool {
	return len(c.Tags[kind]) > 0
}
