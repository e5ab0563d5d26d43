package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/specialistvlad/projector/internal/cli"
	"github.com/specialistvlad/projector/internal/projector"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const declarations = `
type "service" {}

type "user_projection" {
  capabilities = ["projection"]
}

anchor "projections" {}
anchor "projection_managers" {}
anchor "read_models" {}

component "projection_manager.default" {
  type = "service"
}

component "app.users" {
  type = "user_projection"

  tag "projection" {
    projection_name    = "users"
    projection_manager = "default"
  }
}
`

func writeDeclarations(t *testing.T, content string) string {
	t.Helper()
	filePath := filepath.Join(t.TempDir(), "main.hcl")
	require.NoError(t, os.WriteFile(filePath, []byte(content), 0600), "failed to set up test file")
	return filePath
}

func TestRun_Resolve(t *testing.T) {
	t.Parallel()

	filePath := writeDeclarations(t, declarations)
	out, logs := &bytes.Buffer{}, &bytes.Buffer{}

	err := run(out, logs, []string{"resolve", "--output", "text", filePath})

	require.NoError(t, err)
	assert.Contains(t, out.String(), "PROJECTIONS (1)")
	assert.Contains(t, out.String(), "users")
	assert.Contains(t, out.String(), "projection.users.projection_manager")
	assert.Contains(t, logs.String(), "Projection tables committed.")
}

func TestRun_TraceGoesToLogWriter(t *testing.T) {
	t.Parallel()

	filePath := writeDeclarations(t, declarations)
	out, logs := &bytes.Buffer{}, &bytes.Buffer{}

	require.NoError(t, run(out, logs, []string{"resolve", "--trace", filePath}))
	assert.Contains(t, logs.String(), "projector.Resolve")
	assert.NotContains(t, out.String(), "projector.Resolve")
}

func TestRun_ConfigurationError(t *testing.T) {
	t.Parallel()

	filePath := writeDeclarations(t, declarations+`
component "app.orders" {
  type = "service"

  tag "projection" {
    projection_name    = "orders"
    projection_manager = "default"
  }
}
`)
	out := &bytes.Buffer{}

	err := run(out, &bytes.Buffer{}, []string{"resolve", filePath})

	require.Error(t, err)
	assert.ErrorIs(t, err, projector.ErrConfiguration)
	assert.Contains(t, err.Error(), "app.orders")
	assert.Empty(t, out.String(), "no report is written when resolution fails")
}

func TestRun_SyntaxError(t *testing.T) {
	t.Parallel()

	filePath := writeDeclarations(t, `
		component "broken" {
			tag "projection" {
		// Missing closing braces here
	`)

	err := run(&bytes.Buffer{}, &bytes.Buffer{}, []string{"resolve", filePath})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load declarations")
}

func TestRun_ShouldExit(t *testing.T) {
	t.Parallel()

	// The "-h" (help) flag should cause cli.Parse to return `shouldExit=true`.
	out := &bytes.Buffer{}

	err := run(out, &bytes.Buffer{}, []string{"-h"})

	require.NoError(t, err, "run() should return a nil error when shouldExit is true")
	require.Contains(t, out.String(), "Usage:", "Expected help text to be printed to the output buffer")
}

func TestRun_ParseError(t *testing.T) {
	t.Parallel()

	err := run(&bytes.Buffer{}, &bytes.Buffer{}, []string{"resolve", "--this-is-not-a-valid-flag"})

	var exitErr *cli.ExitError
	require.True(t, errors.As(err, &exitErr))
	assert.Equal(t, 2, exitErr.Code)
	assert.Contains(t, exitErr.Message, "unknown flag: --this-is-not-a-valid-flag")
}

func TestRun_DefaultManagerPrefix(t *testing.T) {
	t.Parallel()

	filePath := writeDeclarations(t, `
type "manager" {}
type "user_projection" {
  capabilities = ["projection"]
}
anchor "projections" {}
anchor "projection_managers" {}
anchor "read_models" {}
component "projection_manager.default" {
  type = "manager"
}
component "app.users" {
  type = "user_projection"
  tag "projection" {
    projection_name    = "users"
    projection_manager = "default"
  }
}
alias "short" { target = "app.users" }
`)
	out := &bytes.Buffer{}

	require.NoError(t, run(out, &bytes.Buffer{}, []string{"resolve", "-o", "text", filePath}))
	assert.Contains(t, out.String(), "projection.users.projection_manager")
	assert.Contains(t, out.String(), "projection_manager.default")
	assert.Contains(t, out.String(), "short")
}
