package projector

// Default naming constants.
const (
	DefaultTagKind        = "projection"
	DefaultManagerPrefix  = "projection_manager."
	DefaultAliasNamespace = "projection"
)

// Tag attribute keys.
const (
	AttrProjectionName    = "projection_name"
	AttrProjectionManager = "projection_manager"
	AttrReadModel         = "read_model"
)

// Naming holds the naming convention constants the resolver works with.
type Naming struct {
	// TagKind identifies components that are projections.
	TagKind string
	// ManagerPrefix is prepended to a projection_manager value to form the
	// manager component id.
	ManagerPrefix string
	// AliasNamespace prefixes every alias the resolver registers.
	AliasNamespace string
}

// DefaultNaming returns the stock naming convention.
func DefaultNaming() Naming {
	return Naming{
		TagKind:        DefaultTagKind,
		ManagerPrefix:  DefaultManagerPrefix,
		AliasNamespace: DefaultAliasNamespace,
	}
}

// withDefaults fills empty fields from DefaultNaming.
func (n Naming) withDefaults() Naming {
	d := DefaultNaming()
	if n.TagKind == "" {
		n.TagKind = d.TagKind
	}
	if n.ManagerPrefix == "" {
		n.ManagerPrefix = d.ManagerPrefix
	}
	if n.AliasNamespace == "" {
		n.AliasNamespace = d.AliasNamespace
	}
	return n
}

// ManagerComponentID returns the id of the manager component named name.
func ManagerComponentID(prefix, name string) string {
	return prefix + name
}

// CanonicalProjectionAlias returns the canonical alias of a projection,
// "<namespace>.<name>".
func CanonicalProjectionAlias(namespace, name string) string {
	return namespace + "." + name
}

// ProjectionManagerAliasName returns "<namespace>.<name>.projection_manager".
func ProjectionManagerAliasName(namespace, name string) string {
	return CanonicalProjectionAlias(namespace, name) + "." + AttrProjectionManager
}

// ReadModelAliasName returns "<namespace>.<name>.read_model".
func ReadModelAliasName(namespace, name string) string {
	return CanonicalProjectionAlias(namespace, name) + "." + AttrReadModel
}
