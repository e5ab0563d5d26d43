package registry

import (
	"context"
	"fmt"

	"github.com/specialistvlad/projector/internal/component"
	"github.com/specialistvlad/projector/internal/config"
	"github.com/specialistvlad/projector/internal/ctxlog"
)

// LoadDeclarations reads declarations through loader and populates the
// registry from the resulting model.
func (m *Memory) LoadDeclarations(ctx context.Context, loader config.Loader, paths ...string) error {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Registry loading declarations...", "paths", paths)

	model, err := loader.Load(ctx, paths...)
	if err != nil {
		return fmt.Errorf("failed to load declarations: %w", err)
	}
	return m.Populate(ctx, model)
}

// Populate copies the declarations of a loaded model into the registry.
// Types are registered first so component order does not matter.
func (m *Memory) Populate(ctx context.Context, model *config.Model) error {
	logger := ctxlog.FromContext(ctx)
	if model == nil {
		logger.Warn("Empty declaration model, nothing to populate.")
		return nil
	}

	for _, t := range model.Types {
		if err := m.RegisterType(t.Name, t.Capabilities); err != nil {
			return fmt.Errorf("%s: %w", t.Source, err)
		}
	}
	for _, a := range model.Anchors {
		if err := m.AddAnchor(a.Name, a.Entries); err != nil {
			return fmt.Errorf("%s: %w", a.Source, err)
		}
	}
	for _, def := range model.Components {
		c := component.Component{ID: def.ID, TypeName: def.Type}
		for _, tag := range def.Tags {
			c.AddTag(tag.Kind, tag.Attributes)
		}
		if err := m.Declare(c); err != nil {
			return fmt.Errorf("%s: %w", def.Source, err)
		}
	}
	for _, a := range model.Aliases {
		if err := m.SetAlias(a.Name, a.Target); err != nil {
			return fmt.Errorf("%s: %w", a.Source, err)
		}
	}

	logger.Info("Registry populated successfully.",
		"types", len(model.Types),
		"components", len(model.Components),
		"anchors", len(model.Anchors),
		"aliases", len(model.Aliases),
	)
	return nil
}
