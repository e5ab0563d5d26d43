// Package testutil contains fixtures shared by the package tests: registry
// builders for projection scenarios and helpers that write declaration files
// to a temporary directory.
package testutil
