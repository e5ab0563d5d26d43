// Package projector resolves components tagged as projections into the
// three locator tables used to dispatch by projection name, and registers
// the naming aliases that go with them.
//
// The resolver is a single validate-then-build pass over a registry.Registry.
// It runs once, before the registry is frozen, and fails fast: the first
// malformed declaration aborts the pass and nothing is written back. Tables
// and aliases are staged while the tagged components are walked and
// committed together at the end.
//
// Duplicate projection names across components are not detected. The entry
// processed last wins in every table and alias it touches.
package projector
