package component

import "strings"

// Capability classifies an implementation type. Values combine as a bitmask.
type Capability uint8

const (
	// CapabilityProjection marks a type that consumes an event stream and
	// produces derived state.
	CapabilityProjection Capability = 1 << iota
	// CapabilityReadModelProjection marks a projection that writes into an
	// external read model and needs an explicit read-model collaborator.
	CapabilityReadModelProjection
)

// Satisfies reports whether every bit of want is present in c.
func (c Capability) Satisfies(want Capability) bool {
	return want != 0 && c&want == want
}

// IsProjection reports whether c satisfies at least one projection capability.
func (c Capability) IsProjection() bool {
	return c.Satisfies(CapabilityProjection) || c.Satisfies(CapabilityReadModelProjection)
}

// String renders the capability set, e.g. "projection|read_model_projection".
func (c Capability) String() string {
	var parts []string
	if c.Satisfies(CapabilityProjection) {
		parts = append(parts, "projection")
	}
	if c.Satisfies(CapabilityReadModelProjection) {
		parts = append(parts, "read_model_projection")
	}
	if len(parts) == 0 {
		return "none"
	}
	return strings.Join(parts, "|")
}

// ParseCapability maps a declaration keyword onto a Capability.
func ParseCapability(s string) (Capability, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "projection":
		return CapabilityProjection, true
	case "read_model_projection", "read_model":
		return CapabilityReadModelProjection, true
	default:
		return 0, false
	}
}

// Projection is implemented by Go values usable as plain projections.
type Projection interface {
	ProjectionName() string
}

// ReadModelProjection is a Projection backed by a read model.
type ReadModelProjection interface {
	Projection
	ReadModel() string
}

// CapabilitiesOf derives the capability set of a Go prototype value through
// interface assertions.
func CapabilitiesOf(v any) Capability {
	var caps Capability
	if _, ok := v.(Projection); ok {
		caps |= CapabilityProjection
	}
	if _, ok := v.(ReadModelProjection); ok {
		caps |= CapabilityReadModelProjection
	}
	return caps
}
