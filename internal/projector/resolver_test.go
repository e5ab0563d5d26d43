package projector

import (
	"context"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/specialistvlad/projector/internal/component"
	"github.com/specialistvlad/projector/internal/registry"
	"github.com/specialistvlad/projector/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tagKind = "projection"

// testNaming mirrors the layout used throughout these tests: managers live
// under "managers." and aliases under "projection.".
var testNaming = Naming{
	TagKind:        tagKind,
	ManagerPrefix:  "managers.",
	AliasNamespace: "projection",
}

func newTestResolver() *Resolver {
	return New(WithNaming(testNaming))
}

// spyRegistry counts existence checks made against the wrapped registry.
type spyRegistry struct {
	registry.Registry
	hasCalls []string
}

func (s *spyRegistry) Has(id string) bool {
	s.hasCalls = append(s.hasCalls, id)
	return s.Registry.Has(id)
}

func TestResolve_ProjectionScenario(t *testing.T) {
	ctx, _ := testutil.Context(t)
	reg := testutil.NewRegistry(t)
	testutil.DeclareService(t, reg, "managers.default")
	testutil.Declare(t, reg, tagKind, "A", testutil.TypeProjection,
		testutil.Tag(AttrProjectionName, "foo", AttrProjectionManager, "default"))

	require.NoError(t, newTestResolver().Resolve(ctx, reg))

	assert.Equal(t, component.Table{"foo": component.Ref("A")}, testutil.MustTable(t, reg, registry.AnchorProjections))
	assert.Equal(t, component.Table{"foo": component.Ref("managers.default")}, testutil.MustTable(t, reg, registry.AnchorProjectionManagers))
	assert.Empty(t, testutil.MustTable(t, reg, registry.AnchorReadModels))

	want := map[string]string{
		"projection.foo.projection_manager": "managers.default",
		"projection.foo":                    "A",
	}
	if diff := cmp.Diff(want, reg.Aliases()); diff != "" {
		t.Errorf("aliases mismatch (-want +got):\n%s", diff)
	}
}

func TestResolve_ReadModelScenario(t *testing.T) {
	ctx, _ := testutil.Context(t)
	reg := testutil.NewRegistry(t)
	testutil.DeclareService(t, reg, "managers.default", "rm.bar")
	testutil.Declare(t, reg, tagKind, "B", testutil.TypeReadModelProjection,
		testutil.Tag(AttrProjectionName, "bar", AttrProjectionManager, "default", AttrReadModel, "rm.bar"))

	require.NoError(t, newTestResolver().Resolve(ctx, reg))

	assert.Equal(t, component.Table{"bar": component.Ref("B")}, testutil.MustTable(t, reg, registry.AnchorProjections))
	assert.Equal(t, component.Table{"bar": component.Ref("managers.default")}, testutil.MustTable(t, reg, registry.AnchorProjectionManagers))
	assert.Equal(t, component.Table{"bar": component.Ref("rm.bar")}, testutil.MustTable(t, reg, registry.AnchorReadModels))

	want := map[string]string{
		"projection.bar.read_model":         "rm.bar",
		"projection.bar.projection_manager": "managers.default",
		"projection.bar":                    "B",
	}
	if diff := cmp.Diff(want, reg.Aliases()); diff != "" {
		t.Errorf("aliases mismatch (-want +got):\n%s", diff)
	}
}

func TestResolve_CanonicalIDSkipsSelfAlias(t *testing.T) {
	ctx, _ := testutil.Context(t)
	reg := testutil.NewRegistry(t)
	testutil.DeclareService(t, reg, "managers.default")
	testutil.Declare(t, reg, tagKind, "projection.foo", testutil.TypeProjection,
		testutil.Tag(AttrProjectionName, "foo", AttrProjectionManager, "default"))

	require.NoError(t, newTestResolver().Resolve(ctx, reg))

	_, ok := reg.Alias("projection.foo")
	assert.False(t, ok, "a component already named canonically must not alias itself")
	assert.Equal(t, component.Table{"foo": component.Ref("projection.foo")}, testutil.MustTable(t, reg, registry.AnchorProjections))
}

func TestResolve_MultipleTagsOnOneComponent(t *testing.T) {
	ctx, _ := testutil.Context(t)
	reg := testutil.NewRegistry(t)
	testutil.DeclareService(t, reg, "managers.default", "managers.archive")
	testutil.Declare(t, reg, tagKind, "app.users", testutil.TypeProjection,
		testutil.Tag(AttrProjectionName, "users", AttrProjectionManager, "default"),
		testutil.Tag(AttrProjectionName, "users_archive", AttrProjectionManager, "archive"),
	)

	require.NoError(t, newTestResolver().Resolve(ctx, reg))

	assert.Equal(t, component.Table{
		"users":         component.Ref("app.users"),
		"users_archive": component.Ref("app.users"),
	}, testutil.MustTable(t, reg, registry.AnchorProjections))
	assert.Equal(t, component.Table{
		"users":         component.Ref("managers.default"),
		"users_archive": component.Ref("managers.archive"),
	}, testutil.MustTable(t, reg, registry.AnchorProjectionManagers))

	target, _ := reg.Alias("projection.users_archive")
	assert.Equal(t, "app.users", target)
}

func TestResolve_SameNameDifferentManagers_LastOccurrenceWins(t *testing.T) {
	ctx, _ := testutil.Context(t)
	reg := testutil.NewRegistry(t)
	testutil.DeclareService(t, reg, "managers.first", "managers.second")
	testutil.Declare(t, reg, tagKind, "app.users", testutil.TypeProjection,
		testutil.Tag(AttrProjectionName, "users", AttrProjectionManager, "first"),
		testutil.Tag(AttrProjectionName, "users", AttrProjectionManager, "second"),
	)

	require.NoError(t, newTestResolver().Resolve(ctx, reg))

	target, ok := reg.Alias("projection.users.projection_manager")
	require.True(t, ok)
	assert.Equal(t, "managers.second", target)
	assert.Equal(t, component.Ref("managers.second"), testutil.MustTable(t, reg, registry.AnchorProjectionManagers)["users"])
}

// Two components claiming the same projection name silently overwrite each
// other. This pins the behavior down; it is not treated as an error.
func TestResolve_DuplicateNameAcrossComponents_LastProcessedWins(t *testing.T) {
	ctx, _ := testutil.Context(t)
	reg := testutil.NewRegistry(t)
	testutil.DeclareService(t, reg, "managers.default", "managers.other", "rm.second")
	testutil.Declare(t, reg, tagKind, "first", testutil.TypeProjection,
		testutil.Tag(AttrProjectionName, "dup", AttrProjectionManager, "default"))
	testutil.Declare(t, reg, tagKind, "second", testutil.TypeReadModelProjection,
		testutil.Tag(AttrProjectionName, "dup", AttrProjectionManager, "other", AttrReadModel, "rm.second"))

	require.Equal(t, []string{"first", "second"}, reg.Tagged(tagKind))
	require.NoError(t, newTestResolver().Resolve(ctx, reg))

	assert.Equal(t, component.Table{"dup": component.Ref("second")}, testutil.MustTable(t, reg, registry.AnchorProjections))
	assert.Equal(t, component.Table{"dup": component.Ref("managers.other")}, testutil.MustTable(t, reg, registry.AnchorProjectionManagers))
	assert.Equal(t, component.Table{"dup": component.Ref("rm.second")}, testutil.MustTable(t, reg, registry.AnchorReadModels))

	aliases := reg.Aliases()
	assert.Equal(t, "second", aliases["projection.dup"])
	assert.Equal(t, "managers.other", aliases["projection.dup.projection_manager"])
}

func TestResolve_MissingAnchorIsNoop(t *testing.T) {
	for _, missing := range []string{registry.AnchorProjections, registry.AnchorProjectionManagers, registry.AnchorReadModels} {
		t.Run(missing, func(t *testing.T) {
			ctx, logs := testutil.Context(t)
			reg := testutil.NewBareRegistry(t)
			for _, name := range []string{registry.AnchorProjections, registry.AnchorProjectionManagers, registry.AnchorReadModels} {
				if name != missing {
					require.NoError(t, reg.AddAnchor(name, component.Table{"seed": component.Ref("x")}))
				}
			}
			// Even an invalid component is ignored when the pass is skipped.
			testutil.Declare(t, reg, tagKind, "broken", testutil.TypeService, testutil.Tag())

			require.NoError(t, newTestResolver().Resolve(ctx, reg))

			assert.Empty(t, reg.Aliases())
			for _, name := range []string{registry.AnchorProjections, registry.AnchorProjectionManagers, registry.AnchorReadModels} {
				if name == missing {
					assert.False(t, reg.HasAnchor(name))
					continue
				}
				assert.Equal(t, component.Table{"seed": component.Ref("x")}, testutil.MustTable(t, reg, name))
			}
			assert.Contains(t, logs.String(), "skipping projection resolution")
		})
	}
}

func TestResolve_InvalidCapability(t *testing.T) {
	ctx, _ := testutil.Context(t)
	reg := testutil.NewRegistry(t)
	testutil.DeclareService(t, reg, "managers.default")
	testutil.Declare(t, reg, tagKind, "ok", testutil.TypeProjection,
		testutil.Tag(AttrProjectionName, "ok", AttrProjectionManager, "default"))
	testutil.Declare(t, reg, tagKind, "not.a.projection", testutil.TypeService,
		testutil.Tag(AttrProjectionName, "bad", AttrProjectionManager, "default"))

	err := newTestResolver().Resolve(ctx, reg)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrConfiguration)

	var capErr *InvalidCapabilityError
	require.ErrorAs(t, err, &capErr)
	assert.Equal(t, "not.a.projection", capErr.ComponentID)
	assert.Contains(t, err.Error(), `"not.a.projection"`)
	assert.Contains(t, err.Error(), `"projection"`)
	assert.Contains(t, err.Error(), `"read_model_projection"`)

	assertUntouched(t, reg)
}

func TestResolve_MissingProjectionNameBeforeManagerCheck(t *testing.T) {
	ctx, _ := testutil.Context(t)
	reg := testutil.NewRegistry(t)
	testutil.Declare(t, reg, tagKind, "app.users", testutil.TypeProjection,
		testutil.Tag(AttrProjectionManager, "nope"))
	spy := &spyRegistry{Registry: reg}

	err := newTestResolver().Resolve(ctx, spy)

	var missing *MissingTagAttributeError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, AttrProjectionName, missing.Attribute)
	assert.Equal(t, tagKind, missing.TagKind)
	assert.Equal(t, "app.users", missing.ComponentID)
	assert.Empty(t, spy.hasCalls, "no manager existence check may run before the name is validated")
	assertUntouched(t, reg)
}

func TestResolve_MissingProjectionManager(t *testing.T) {
	ctx, _ := testutil.Context(t)
	reg := testutil.NewRegistry(t)
	testutil.Declare(t, reg, tagKind, "app.users", testutil.TypeProjection,
		testutil.Tag(AttrProjectionName, "users"))

	err := newTestResolver().Resolve(ctx, reg)

	var missing *MissingTagAttributeError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, AttrProjectionManager, missing.Attribute)
	assert.Contains(t, err.Error(), `"projection_manager" attribute is missing from "projection" tag on component "app.users"`)
	assertUntouched(t, reg)
}

func TestResolve_UnknownProjectionManager(t *testing.T) {
	ctx, _ := testutil.Context(t)
	reg := testutil.NewRegistry(t)
	testutil.Declare(t, reg, tagKind, "app.users", testutil.TypeProjection,
		testutil.Tag(AttrProjectionName, "users", AttrProjectionManager, "ghost"))

	err := newTestResolver().Resolve(ctx, reg)
	require.ErrorIs(t, err, ErrConfiguration)

	var unknown *UnknownProjectionManagerError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, "users", unknown.ProjectionName)
	assert.Equal(t, "ghost", unknown.Manager)
	assert.Equal(t, "managers.ghost", unknown.ManagerID)
	assert.Contains(t, err.Error(), `"users"`)
	assert.Contains(t, err.Error(), `"ghost"`)
	assertUntouched(t, reg)
}

func TestResolve_ManagerDeclaredThroughAlias(t *testing.T) {
	ctx, _ := testutil.Context(t)
	reg := testutil.NewRegistry(t)
	testutil.DeclareService(t, reg, "event_store.manager")
	require.NoError(t, reg.SetAlias("managers.default", "event_store.manager"))
	testutil.Declare(t, reg, tagKind, "app.users", testutil.TypeProjection,
		testutil.Tag(AttrProjectionName, "users", AttrProjectionManager, "default"))

	require.NoError(t, newTestResolver().Resolve(ctx, reg))
	assert.Equal(t, component.Ref("managers.default"), testutil.MustTable(t, reg, registry.AnchorProjectionManagers)["users"])
}

func TestResolve_ReadModelProjectionRequiresReadModel(t *testing.T) {
	ctx, _ := testutil.Context(t)
	reg := testutil.NewRegistry(t)
	testutil.DeclareService(t, reg, "managers.default")
	testutil.Declare(t, reg, tagKind, "app.users", testutil.TypeReadModelProjection,
		testutil.Tag(AttrProjectionName, "users", AttrProjectionManager, "default"))

	err := newTestResolver().Resolve(ctx, reg)

	var missing *MissingTagAttributeError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, AttrReadModel, missing.Attribute)
	assertUntouched(t, reg)
}

func TestResolve_PlainProjectionIgnoresReadModelAttribute(t *testing.T) {
	ctx, _ := testutil.Context(t)
	reg := testutil.NewRegistry(t)
	testutil.DeclareService(t, reg, "managers.default")
	testutil.Declare(t, reg, tagKind, "app.users", testutil.TypeProjection,
		testutil.Tag(AttrProjectionName, "users", AttrProjectionManager, "default", AttrReadModel, "rm.users"))

	require.NoError(t, newTestResolver().Resolve(ctx, reg))

	assert.Empty(t, testutil.MustTable(t, reg, registry.AnchorReadModels))
	_, ok := reg.Alias("projection.users.read_model")
	assert.False(t, ok)
}

func TestResolve_FailureAfterValidEntriesCommitsNothing(t *testing.T) {
	ctx, _ := testutil.Context(t)
	reg := testutil.NewRegistry(t)
	testutil.DeclareService(t, reg, "managers.default")
	testutil.Declare(t, reg, tagKind, "good", testutil.TypeProjection,
		testutil.Tag(AttrProjectionName, "good", AttrProjectionManager, "default"))
	testutil.Declare(t, reg, tagKind, "bad", testutil.TypeProjection,
		testutil.Tag(AttrProjectionName, "good2", AttrProjectionManager, "default"),
		testutil.Tag(AttrProjectionName, "bad", AttrProjectionManager, "missing"),
	)

	require.Error(t, newTestResolver().Resolve(ctx, reg))
	assertUntouched(t, reg)
}

func TestResolve_ReplacesPreviousAnchorContents(t *testing.T) {
	ctx, _ := testutil.Context(t)
	reg := testutil.NewBareRegistry(t)
	require.NoError(t, reg.AddAnchor(registry.AnchorProjections, component.Table{"stale": component.Ref("old")}))
	require.NoError(t, reg.AddAnchor(registry.AnchorProjectionManagers, nil))
	require.NoError(t, reg.AddAnchor(registry.AnchorReadModels, nil))
	testutil.DeclareService(t, reg, "managers.default")
	testutil.Declare(t, reg, tagKind, "A", testutil.TypeProjection,
		testutil.Tag(AttrProjectionName, "foo", AttrProjectionManager, "default"))

	require.NoError(t, newTestResolver().Resolve(ctx, reg))

	assert.Equal(t, component.Table{"foo": component.Ref("A")}, testutil.MustTable(t, reg, registry.AnchorProjections))
}

func TestResolve_Idempotent(t *testing.T) {
	ctx, _ := testutil.Context(t)
	reg := testutil.NewRegistry(t)
	testutil.DeclareService(t, reg, "managers.default", "rm.bar")
	testutil.Declare(t, reg, tagKind, "A", testutil.TypeProjection,
		testutil.Tag(AttrProjectionName, "foo", AttrProjectionManager, "default"))
	testutil.Declare(t, reg, tagKind, "B", testutil.TypeBothProjection,
		testutil.Tag(AttrProjectionName, "bar", AttrProjectionManager, "default", AttrReadModel, "rm.bar"))

	r := newTestResolver()
	require.NoError(t, r.Resolve(ctx, reg))
	first := snapshot(t, reg)

	require.NoError(t, r.Resolve(ctx, reg))
	if diff := cmp.Diff(first, snapshot(t, reg)); diff != "" {
		t.Errorf("second pass changed the registry (-first +second):\n%s", diff)
	}
}

func TestResolve_FrozenRegistry(t *testing.T) {
	ctx, _ := testutil.Context(t)
	reg := testutil.NewRegistry(t)
	testutil.DeclareService(t, reg, "managers.default")
	testutil.Declare(t, reg, tagKind, "A", testutil.TypeProjection,
		testutil.Tag(AttrProjectionName, "foo", AttrProjectionManager, "default"))
	reg.Freeze()

	err := newTestResolver().Resolve(ctx, reg)
	require.ErrorIs(t, err, registry.ErrFrozen)
	assert.NotErrorIs(t, err, ErrConfiguration)
	assertUntouched(t, reg)
}

func TestResolve_UnknownImplementationType(t *testing.T) {
	ctx, _ := testutil.Context(t)
	reg := testutil.NewRegistry(t)
	testutil.Declare(t, reg, tagKind, "A", "undeclared_type",
		testutil.Tag(AttrProjectionName, "foo", AttrProjectionManager, "default"))

	err := newTestResolver().Resolve(ctx, reg)
	require.ErrorIs(t, err, registry.ErrNotFound)
	assert.Contains(t, err.Error(), `component "A"`)
}

func TestResolve_DefaultNaming(t *testing.T) {
	reg := testutil.NewRegistry(t)
	testutil.DeclareService(t, reg, "projection_manager.default")
	testutil.Declare(t, reg, DefaultTagKind, "app.users", testutil.TypeProjection,
		testutil.Tag(AttrProjectionName, "users", AttrProjectionManager, "default"))

	require.NoError(t, New().Resolve(context.Background(), reg))

	target, ok := reg.Alias("projection.users.projection_manager")
	require.True(t, ok)
	assert.Equal(t, "projection_manager.default", target)
}

func TestResolve_OtherTagKindsIgnored(t *testing.T) {
	ctx, _ := testutil.Context(t)
	reg := testutil.NewRegistry(t)
	testutil.Declare(t, reg, "event_store.plugin", "plugin", testutil.TypeService, testutil.Tag("x", "y"))

	require.NoError(t, newTestResolver().Resolve(ctx, reg))
	assert.Empty(t, testutil.MustTable(t, reg, registry.AnchorProjections))
	assert.Empty(t, reg.Aliases())
}

// assertUntouched checks that a failed pass left tables and aliases alone.
func assertUntouched(t *testing.T, reg *registry.Memory) {
	t.Helper()
	for _, name := range []string{registry.AnchorProjections, registry.AnchorProjectionManagers, registry.AnchorReadModels} {
		assert.Empty(t, testutil.MustTable(t, reg, name), "anchor %s must stay empty", name)
	}
	for name := range reg.Aliases() {
		if strings.HasPrefix(name, testNaming.AliasNamespace+".") {
			t.Errorf("unexpected alias %q written by a failed pass", name)
		}
	}
}

type registrySnapshot struct {
	Tables  map[string]component.Table
	Aliases map[string]string
}

func snapshot(t *testing.T, reg *registry.Memory) registrySnapshot {
	t.Helper()
	s := registrySnapshot{Tables: make(map[string]component.Table), Aliases: reg.Aliases()}
	for _, name := range []string{registry.AnchorProjections, registry.AnchorProjectionManagers, registry.AnchorReadModels} {
		s.Tables[name] = testutil.MustTable(t, reg, name)
	}
	return s
}
