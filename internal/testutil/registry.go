package testutil

import (
	"github.com/specialistvlad/projector/internal/component"
	"github.com/specialistvlad/projector/internal/registry"
	"github.com/stretchr/testify/require"
)

// Stock implementation type names registered by NewRegistry.
const (
	TypeProjection          = "projection"
	TypeReadModelProjection = "read_model_projection"
	TypeBothProjection      = "both_projection"
	TypeService             = "service"
)

// TB is the part of testing.TB the registry fixtures use. It is satisfied by
// *testing.T as well as by *rapid.T in property tests.
type TB interface {
	Helper()
	Errorf(format string, args ...any)
	FailNow()
}

// NewRegistry returns an in-memory registry with the three projection
// anchors and the stock types declared.
func NewRegistry(t TB) *registry.Memory {
	t.Helper()

	reg := NewBareRegistry(t)
	require.NoError(t, reg.AddProjectionAnchors())
	return reg
}

// NewBareRegistry is NewRegistry without anchors.
func NewBareRegistry(t TB) *registry.Memory {
	t.Helper()

	reg := registry.New()
	require.NoError(t, reg.RegisterType(TypeProjection, component.CapabilityProjection))
	require.NoError(t, reg.RegisterType(TypeReadModelProjection, component.CapabilityReadModelProjection))
	require.NoError(t, reg.RegisterType(TypeBothProjection, component.CapabilityProjection|component.CapabilityReadModelProjection))
	require.NoError(t, reg.RegisterType(TypeService, 0))
	return reg
}

// Declare adds a component of typeName carrying the given projection tags.
func Declare(t TB, reg *registry.Memory, tagKind, id, typeName string, tags ...component.Attributes) {
	t.Helper()

	c := component.Component{ID: id, TypeName: typeName}
	for _, attrs := range tags {
		c.AddTag(tagKind, attrs)
	}
	require.NoError(t, reg.Declare(c))
}

// DeclareService adds an untagged component of TypeService, e.g. a manager
// or a read model.
func DeclareService(t TB, reg *registry.Memory, ids ...string) {
	t.Helper()

	for _, id := range ids {
		require.NoError(t, reg.Declare(component.Component{ID: id, TypeName: TypeService}))
	}
}

// Tag builds an attribute bag from alternating keys and values.
func Tag(kv ...string) component.Attributes {
	if len(kv)%2 != 0 {
		panic("testutil.Tag: odd number of arguments")
	}
	attrs := make(component.Attributes, len(kv)/2)
	for i := 0; i < len(kv); i += 2 {
		attrs[kv[i]] = kv[i+1]
	}
	return attrs
}

// MustTable returns the current table of an anchor.
func MustTable(t TB, reg registry.Registry, anchor string) component.Table {
	t.Helper()

	tbl, err := reg.AnchorTable(anchor)
	require.NoError(t, err)
	return tbl
}
