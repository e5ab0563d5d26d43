package projector

import (
	"github.com/specialistvlad/projector/internal/component"
	"github.com/specialistvlad/projector/internal/registry"
)

type aliasWrite struct {
	name   string
	target string
}

// build accumulates the output of one pass until it is committed.
type build struct {
	reg registry.Registry

	projections component.Table
	managers    component.Table
	readModels  component.Table

	aliases []aliasWrite
	staged  map[string]string
}

func newBuild(reg registry.Registry) *build {
	return &build{
		reg:         reg,
		projections: component.NewTable(),
		managers:    component.NewTable(),
		readModels:  component.NewTable(),
		staged:      make(map[string]string),
	}
}

// alias stages an alias write. Later writes to the same name win.
func (b *build) alias(name, target string) {
	b.aliases = append(b.aliases, aliasWrite{name: name, target: target})
	b.staged[name] = target
}

// has answers an existence check, counting aliases staged by this pass as
// already registered.
func (b *build) has(id string) bool {
	if _, ok := b.staged[id]; ok {
		return true
	}
	return b.reg.Has(id)
}

// commit writes the staged aliases in order, then replaces each anchor table.
func (b *build) commit() error {
	for _, a := range b.aliases {
		if err := b.reg.SetAlias(a.name, a.target); err != nil {
			return err
		}
	}
	tables := map[string]component.Table{
		registry.AnchorProjectionManagers: b.managers,
		registry.AnchorReadModels:         b.readModels,
		registry.AnchorProjections:        b.projections,
	}
	for _, name := range anchors {
		if err := b.reg.ReplaceAnchorTable(name, tables[name]); err != nil {
			return err
		}
	}
	return nil
}
