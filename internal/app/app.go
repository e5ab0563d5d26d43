package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/specialistvlad/projector/internal/config"
	"github.com/specialistvlad/projector/internal/ctxlog"
	"github.com/specialistvlad/projector/internal/projector"
	"github.com/specialistvlad/projector/internal/registry"
	"github.com/specialistvlad/projector/internal/tracing"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW     io.Writer
	logger   *slog.Logger
	config   *Config
	loader   config.Loader
	registry *registry.Memory
	resolver *projector.Resolver
	tracing  *tracing.Provider
}

// NewApp is the constructor for the main application. The report goes to
// outW and logs to logW. Each App owns an isolated logger and registry.
func NewApp(outW, logW io.Writer, cfg *Config, loader config.Loader) (*App, error) {
	logger := NewLogger(cfg.LogLevel, cfg.LogFormat, logW)
	logger.Debug("Logger configured successfully.")

	provider, err := tracing.NewProvider(cfg.Tracing)
	if err != nil {
		return nil, fmt.Errorf("failed to configure tracing: %w", err)
	}

	resolver := projector.New(
		projector.WithNaming(cfg.Naming),
		projector.WithTracer(provider.Tracer()),
	)
	logger.Debug("Projection resolver configured.",
		"tag", resolver.Naming().TagKind,
		"manager_prefix", resolver.Naming().ManagerPrefix,
		"alias_namespace", resolver.Naming().AliasNamespace,
		"tracing", provider.Enabled(),
	)

	return &App{
		outW:     outW,
		logger:   logger,
		config:   cfg,
		loader:   loader,
		registry: registry.New(),
		resolver: resolver,
		tracing:  provider,
	}, nil
}

// Registry returns the application's registry. This is primarily for testing.
func (a *App) Registry() *registry.Memory {
	return a.registry
}

// Logger returns the application's logger.
func (a *App) Logger() *slog.Logger {
	return a.logger
}

// Close flushes pending trace spans.
func (a *App) Close(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	if err := a.tracing.Shutdown(ctx); err != nil {
		ctxlog.FromContext(ctx).Error("Trace provider shutdown failed.", "error", err)
		return err
	}
	return nil
}
