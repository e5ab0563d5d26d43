// Package schema holds the gohcl decoding structs of the declaration files.
package schema

import "github.com/hashicorp/hcl/v2"

// File is the top-level structure of a declaration file.
type File struct {
	Types      []*Type      `hcl:"type,block"`
	Anchors    []*Anchor    `hcl:"anchor,block"`
	Components []*Component `hcl:"component,block"`
	Aliases    []*Alias     `hcl:"alias,block"`
}

// Type declares an implementation type and the capabilities it provides.
type Type struct {
	Name         string   `hcl:"name,label"`
	Capabilities []string `hcl:"capabilities,optional"`
}

// Anchor declares a locator anchor, optionally seeded with entries.
type Anchor struct {
	Name    string            `hcl:"name,label"`
	Entries map[string]string `hcl:"entries,optional"`
}

// Component declares a component and its tag occurrences.
type Component struct {
	ID   string `hcl:"id,label"`
	Type string `hcl:"type,optional"`
	Tags []*Tag `hcl:"tag,block"`
}

// Tag is one tag occurrence. Its attributes are free-form and evaluated
// separately from the fixed schema.
type Tag struct {
	Kind string   `hcl:"kind,label"`
	Body hcl.Body `hcl:",remain"`
}

// Alias declares a name-to-id indirection.
type Alias struct {
	Name   string `hcl:"name,label"`
	Target string `hcl:"target"`
}
