// Package registry provides the component registry the projection resolver
// operates on.
//
// The Registry is responsible for storing component declarations, their
// implementation types and tags, the locator anchors and the aliases created
// while the registry is assembled. It mirrors a dependency-injection
// container before compilation: declarations are added, build passes such
// as the projection resolver read and rewrite them, and the registry is then
// frozen for use.
//
// During application startup, the registry is populated from the loaded
// declaration model and validated so that dangling type and alias
// references are reported before any pass runs.
package registry
