// Package config defines the format-agnostic declaration model for the
// component registry, along with the Loader interface implemented by
// concrete declaration formats.
//
// The `config.Model` is the single source the registry is populated from.
// Concrete implementations of the Loader, such as for HCL, are provided in
// separate packages.
package config
