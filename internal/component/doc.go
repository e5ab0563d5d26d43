// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// Package component holds the data model shared by the registry, the
// projection resolver and the locators built from its output.
//
// # Core Concepts
//
//   - Component: a declaration identified by a unique id, bound to an
//     implementation Type and carrying zero or more tag occurrences.
//
//   - Capability: what an implementation type can do. A projection component
//     must satisfy CapabilityProjection, CapabilityReadModelProjection, or both.
//
//   - Attributes: a single tag occurrence. A component may carry several
//     occurrences of the same tag kind, each describing a distinct projection.
//
//   - Reference and Table: a lazy handle to another component and a
//     name-indexed mapping of such handles. References are resolved by the
//     registry at lookup time, never at build time.
package component
