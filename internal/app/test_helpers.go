package app

import (
	"bytes"
	"os"
	"testing"

	"github.com/specialistvlad/projector/internal/config"
	"github.com/specialistvlad/projector/internal/testutil"
	"github.com/stretchr/testify/require"
)

// SetupAppTest creates a new app instance for system testing. It returns the
// app, the report buffer and the log buffer.
func SetupAppTest(t *testing.T, cfg Config, loader config.Loader) (*App, *bytes.Buffer, *testutil.SafeBuffer) {
	t.Helper()

	if cfg.LogLevel == "" {
		cfg.LogLevel = "debug"
	}
	validated, err := NewConfig(cfg)
	require.NoError(t, err)

	out := &bytes.Buffer{}
	logBuffer := &testutil.SafeBuffer{}
	testApp, err := NewApp(out, logBuffer, validated, loader)
	require.NoError(t, err)

	t.Cleanup(func() {
		if os.Getenv("PROJECTOR_TEST_LOGS") == "true" {
			t.Logf("--- Full Log Output for %s ---\n%s", t.Name(), logBuffer.String())
		}
	})

	return testApp, out, logBuffer
}
