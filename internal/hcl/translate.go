// This file contains the logic for translating HCL schema structs into the
// format-agnostic declaration model defined in the config package.

package hcl

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/specialistvlad/projector/internal/component"
	"github.com/specialistvlad/projector/internal/config"
	"github.com/specialistvlad/projector/internal/ctxlog"
	"github.com/specialistvlad/projector/internal/schema"
)

// translate converts a decoded file into the agnostic model.
func translate(ctx context.Context, file *schema.File, filePath string) (*config.Model, hcl.Diagnostics) {
	var allDiags hcl.Diagnostics
	model := &config.Model{}

	for _, t := range file.Types {
		def, diags := translateType(t, filePath)
		allDiags = append(allDiags, diags...)
		model.Types = append(model.Types, def)
	}
	for _, a := range file.Anchors {
		model.Anchors = append(model.Anchors, translateAnchor(a, filePath))
	}
	for _, c := range file.Components {
		def, diags := translateComponent(ctx, c, filePath)
		allDiags = append(allDiags, diags...)
		model.Components = append(model.Components, def)
	}
	for _, a := range file.Aliases {
		model.Aliases = append(model.Aliases, &config.AliasDefinition{
			Name:   a.Name,
			Target: a.Target,
			Source: source(filePath, "alias", a.Name),
		})
	}
	return model, allDiags
}

// translateType maps capability keywords onto a capability set.
func translateType(t *schema.Type, filePath string) (*config.TypeDefinition, hcl.Diagnostics) {
	var diags hcl.Diagnostics
	def := &config.TypeDefinition{Name: t.Name, Source: source(filePath, "type", t.Name)}
	for _, keyword := range t.Capabilities {
		c, ok := component.ParseCapability(keyword)
		if !ok {
			diags = append(diags, &hcl.Diagnostic{
				Severity: hcl.DiagError,
				Summary:  "Unknown capability",
				Detail:   fmt.Sprintf("Type %q declares capability %q; valid values are \"projection\" and \"read_model_projection\".", t.Name, keyword),
			})
			continue
		}
		def.Capabilities |= c
	}
	return def, diags
}

// translateAnchor converts an anchor block, keeping seeded entries.
func translateAnchor(a *schema.Anchor, filePath string) *config.AnchorDefinition {
	def := &config.AnchorDefinition{Name: a.Name, Source: source(filePath, "anchor", a.Name)}
	if len(a.Entries) > 0 {
		def.Entries = component.NewTable()
		for name, id := range a.Entries {
			def.Entries[name] = component.Ref(id)
		}
	}
	return def
}

// translateComponent converts a component block and evaluates its tags.
func translateComponent(ctx context.Context, c *schema.Component, filePath string) (*config.ComponentDefinition, hcl.Diagnostics) {
	logger := ctxlog.FromContext(ctx)
	var allDiags hcl.Diagnostics

	def := &config.ComponentDefinition{ID: c.ID, Type: c.Type, Source: source(filePath, "component", c.ID)}
	for _, tag := range c.Tags {
		attrs, diags := tagAttributes(tag.Body)
		allDiags = append(allDiags, diags...)
		if diags.HasErrors() {
			continue
		}
		def.Tags = append(def.Tags, &config.TagDefinition{Kind: tag.Kind, Attributes: attrs})
	}
	logger.Debug("Translated component declaration.", "id", c.ID, "type", c.Type, "tags", len(def.Tags))
	return def, allDiags
}

func source(filePath, kind, name string) string {
	return fmt.Sprintf("%s: %s %q", filePath, kind, name)
}
