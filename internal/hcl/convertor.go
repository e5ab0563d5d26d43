package hcl

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/specialistvlad/projector/internal/component"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	"github.com/zclconf/go-cty/cty/gocty"
)

// tagAttributes evaluates the free-form attributes of a tag body. Null values
// are dropped so they read as absent; primitives are converted to strings.
func tagAttributes(body hcl.Body) (component.Attributes, hcl.Diagnostics) {
	if body == nil {
		return component.Attributes{}, nil
	}
	hclAttrs, diags := body.JustAttributes()
	if diags.HasErrors() {
		return nil, diags
	}

	attrs := make(component.Attributes, len(hclAttrs))
	for name, attr := range hclAttrs {
		val, valDiags := attr.Expr.Value(nil)
		diags = append(diags, valDiags...)
		if valDiags.HasErrors() {
			continue
		}
		if val.IsNull() {
			continue
		}
		s, err := toString(val)
		if err != nil {
			diags = append(diags, &hcl.Diagnostic{
				Severity: hcl.DiagError,
				Summary:  "Invalid tag attribute",
				Detail:   fmt.Sprintf("Attribute %q: %s.", name, err),
				Subject:  attr.Expr.Range().Ptr(),
			})
			continue
		}
		attrs[name] = s
	}
	return attrs, diags
}

// toString converts a known primitive cty.Value to its string form.
func toString(val cty.Value) (string, error) {
	if !val.IsWhollyKnown() {
		return "", fmt.Errorf("value must be known")
	}
	if !val.Type().IsPrimitiveType() {
		return "", fmt.Errorf("expected a string, number or bool, got %s", val.Type().FriendlyName())
	}
	converted, err := convert.Convert(val, cty.String)
	if err != nil {
		return "", fmt.Errorf("cannot convert %s to string: %w", val.Type().FriendlyName(), err)
	}
	var s string
	if err := gocty.FromCtyValue(converted, &s); err != nil {
		return "", err
	}
	return s, nil
}
