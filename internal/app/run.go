package app

import (
	"context"
	"fmt"

	"github.com/specialistvlad/projector/internal/ctxlog"
	"github.com/specialistvlad/projector/internal/locator"
	"github.com/specialistvlad/projector/internal/registry"
	"github.com/specialistvlad/projector/internal/report"
)

// Run loads the declarations, resolves the projection tables, freezes the
// registry and writes the report.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	if err := a.registry.LoadDeclarations(ctx, a.loader, a.config.DeclarationsPath); err != nil {
		return err
	}

	if err := a.registry.Validate(ctx); err != nil {
		return err
	}

	if err := a.resolver.Resolve(ctx, a.registry); err != nil {
		return fmt.Errorf("projection resolution failed: %w", err)
	}

	a.registry.Freeze()
	a.logger.Debug("Registry frozen.", "components", a.registry.Len())

	a.checkReferences(ctx)

	rep, err := report.Build(a.registry)
	if err != nil {
		return err
	}
	switch a.config.Output {
	case OutputText:
		err = rep.WriteText(a.outW)
	default:
		err = rep.WriteYAML(a.outW)
	}
	if err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}

	a.logger.Debug("App.Run method finished.")
	return nil
}

// checkReferences walks the committed tables through the locators and warns
// about entries whose target is not a declared component. The resolver only
// checks managers, so a dangling read_model surfaces here.
func (a *App) checkReferences(ctx context.Context) {
	logger := ctxlog.FromContext(ctx)
	for _, anchor := range []string{registry.AnchorProjections, registry.AnchorProjectionManagers, registry.AnchorReadModels} {
		if !a.registry.HasAnchor(anchor) {
			return
		}
	}

	set, err := locator.NewSet(a.registry)
	if err != nil {
		logger.Warn("Could not build projection locators.", "error", err)
		return
	}

	dangling := 0
	for _, l := range []*locator.Locator{set.Projections, set.Managers, set.ReadModels} {
		for _, name := range l.Names() {
			if _, err := l.Get(name); err != nil {
				dangling++
				logger.Warn("Projection table entry does not resolve to a component.", "anchor", l.Anchor(), "projection", name, "error", err)
			}
		}
	}
	logger.Debug("Projection locators checked.", "projections", len(set.Projections.Names()), "dangling", dangling)
}
