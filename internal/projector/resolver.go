package projector

import (
	"context"
	"fmt"

	"github.com/specialistvlad/projector/internal/component"
	"github.com/specialistvlad/projector/internal/ctxlog"
	"github.com/specialistvlad/projector/internal/registry"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/specialistvlad/projector/internal/projector"

// anchors lists the locator anchors the pass needs, in commit order.
var anchors = []string{
	registry.AnchorProjectionManagers,
	registry.AnchorReadModels,
	registry.AnchorProjections,
}

// Resolver builds the projection locator tables from a registry.
type Resolver struct {
	naming Naming
	tracer trace.Tracer
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithNaming overrides the naming convention. Empty fields keep their defaults.
func WithNaming(n Naming) Option {
	return func(r *Resolver) {
		r.naming = n.withDefaults()
	}
}

// WithTracer sets the tracer used for the pass span.
func WithTracer(t trace.Tracer) Option {
	return func(r *Resolver) {
		if t != nil {
			r.tracer = t
		}
	}
}

// New creates a Resolver.
func New(opts ...Option) *Resolver {
	r := &Resolver{
		naming: DefaultNaming(),
		tracer: otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Naming returns the naming convention in use.
func (r *Resolver) Naming() Naming {
	return r.naming
}

// Resolve runs the pass against reg. When any of the three anchors is
// missing it returns nil without touching the registry. Otherwise it
// validates every tagged component, then commits the aliases and replaces the
// three anchor tables. On error nothing is written.
func (r *Resolver) Resolve(ctx context.Context, reg registry.Registry) (err error) {
	ctx, span := r.tracer.Start(ctx, "projector.Resolve", trace.WithAttributes(
		attribute.String("projector.tag_kind", r.naming.TagKind),
	))
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	logger := ctxlog.FromContext(ctx)

	for _, name := range anchors {
		if !reg.HasAnchor(name) {
			logger.Warn("Projection anchor not declared, skipping projection resolution.", "anchor", name)
			span.SetAttributes(attribute.Bool("projector.skipped", true))
			return nil
		}
	}

	ids := reg.Tagged(r.naming.TagKind)
	logger.Debug("Resolving tagged projection components.", "tag", r.naming.TagKind, "count", len(ids))

	b := newBuild(reg)
	for _, id := range ids {
		if err := r.resolveComponent(ctx, b, id); err != nil {
			return err
		}
	}

	if err := b.commit(); err != nil {
		return fmt.Errorf("committing projection tables: %w", err)
	}

	span.SetAttributes(
		attribute.Int("projector.components", len(ids)),
		attribute.Int("projector.projections", len(b.projections)),
		attribute.Int("projector.read_models", len(b.readModels)),
		attribute.Int("projector.aliases", len(b.aliases)),
	)
	logger.Info("Projection tables committed.",
		"components", len(ids),
		"projections", len(b.projections),
		"read_models", len(b.readModels),
		"aliases", len(b.aliases),
	)
	return nil
}

// resolveComponent validates one tagged component and stages its entries.
func (r *Resolver) resolveComponent(ctx context.Context, b *build, id string) error {
	logger := ctxlog.FromContext(ctx)

	typ, err := b.reg.ImplementationType(id)
	if err != nil {
		return fmt.Errorf("component %q: %w", id, err)
	}
	if !typ.Capabilities.IsProjection() {
		return &InvalidCapabilityError{ComponentID: id, TypeName: typ.Name}
	}
	isReadModel := typ.Satisfies(component.CapabilityReadModelProjection)

	occurrences, err := b.reg.Tags(id, r.naming.TagKind)
	if err != nil {
		return fmt.Errorf("component %q: %w", id, err)
	}

	ns := r.naming.AliasNamespace
	for _, attrs := range occurrences {
		tag, err := decodeTag(id, r.naming.TagKind, attrs)
		if err != nil {
			return err
		}

		managerID := ManagerComponentID(r.naming.ManagerPrefix, tag.projectionManager)
		if !b.has(managerID) {
			return &UnknownProjectionManagerError{
				ComponentID:    id,
				ProjectionName: tag.projectionName,
				Manager:        tag.projectionManager,
				ManagerID:      managerID,
			}
		}

		if isReadModel {
			if !tag.hasReadModel {
				return &MissingTagAttributeError{ComponentID: id, TagKind: r.naming.TagKind, Attribute: AttrReadModel}
			}
			b.alias(ReadModelAliasName(ns, tag.projectionName), tag.readModel)
			b.readModels[tag.projectionName] = component.Ref(tag.readModel)
		}

		b.managers[tag.projectionName] = component.Ref(managerID)
		b.projections[tag.projectionName] = component.Ref(id)

		b.alias(ProjectionManagerAliasName(ns, tag.projectionName), managerID)
		if canonical := CanonicalProjectionAlias(ns, tag.projectionName); id != canonical {
			b.alias(canonical, id)
		}

		logger.Debug("Projection resolved.",
			"component", id,
			"projection", tag.projectionName,
			"manager", managerID,
			"read_model", tag.readModel,
		)
	}
	return nil
}
