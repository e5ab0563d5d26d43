package projector

import "github.com/specialistvlad/projector/internal/component"

// tagOccurrence is a projection tag decoded from its attribute bag.
type tagOccurrence struct {
	projectionName    string
	projectionManager string
	readModel         string
	hasReadModel      bool
}

// decodeTag extracts the projection attributes of one occurrence. The name is
// checked before the manager; read_model stays optional here because only
// read-model projections require it.
func decodeTag(componentID, kind string, attrs component.Attributes) (tagOccurrence, error) {
	var tag tagOccurrence
	var ok bool

	if tag.projectionName, ok = attrs.Lookup(AttrProjectionName); !ok {
		return tag, &MissingTagAttributeError{ComponentID: componentID, TagKind: kind, Attribute: AttrProjectionName}
	}
	if tag.projectionManager, ok = attrs.Lookup(AttrProjectionManager); !ok {
		return tag, &MissingTagAttributeError{ComponentID: componentID, TagKind: kind, Attribute: AttrProjectionManager}
	}
	tag.readModel, tag.hasReadModel = attrs.Lookup(AttrReadModel)
	return tag, nil
}
