// Package hcl provides the concrete HCL implementation of the declaration
// Loader defined in the `config` package. It is responsible for file
// discovery, HCL parsing, translation into the format-agnostic model and the
// CTY-to-string coercion of free-form tag attributes.
package hcl
