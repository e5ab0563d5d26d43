// Package tracing sets up the OpenTelemetry tracer provider used by the
// projector command.
package tracing

import (
	"context"
	"fmt"
	"io"
	"os"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

const (
	ExporterStdout = "stdout"
	ExporterNone   = "none"

	defaultServiceName  = "projector"
	instrumentationName = "github.com/specialistvlad/projector"
)

// Config configures the tracing subsystem.
type Config struct {
	// Enabled controls whether tracing is active.
	// When false, a no-op tracer is returned.
	Enabled bool `yaml:"enabled"`

	// Exporter selects the export backend: "stdout" or "none".
	Exporter string `yaml:"exporter"`

	// ServiceName identifies this process in exported spans.
	ServiceName string `yaml:"service_name"`

	// Writer receives stdout exporter output. Defaults to os.Stderr so traces
	// never mix with the report.
	Writer io.Writer `yaml:"-"`
}

// DefaultConfig returns tracing disabled.
func DefaultConfig() Config {
	return Config{
		Enabled:     false,
		Exporter:    ExporterStdout,
		ServiceName: defaultServiceName,
	}
}

// Provider wraps the tracer provider and the tracer handed to the resolver.
type Provider struct {
	provider *sdktrace.TracerProvider
	tracer   trace.Tracer
}

// NewProvider creates the trace provider. A disabled config yields a no-op
// provider.
func NewProvider(cfg Config) (*Provider, error) {
	if !cfg.Enabled {
		return &Provider{tracer: noop.NewTracerProvider().Tracer(instrumentationName)}, nil
	}

	opts := []sdktrace.TracerProviderOption{}

	switch cfg.Exporter {
	case ExporterStdout, "":
		w := cfg.Writer
		if w == nil {
			w = os.Stderr
		}
		exporter, err := stdouttrace.New(stdouttrace.WithWriter(w), stdouttrace.WithPrettyPrint())
		if err != nil {
			return nil, fmt.Errorf("create stdout exporter: %w", err)
		}
		// The command is short lived, so spans are exported synchronously.
		opts = append(opts, sdktrace.WithSyncer(exporter))
	case ExporterNone:
	default:
		return nil, fmt.Errorf("unsupported exporter type: %s", cfg.Exporter)
	}

	serviceName := cfg.ServiceName
	if serviceName == "" {
		serviceName = defaultServiceName
	}
	opts = append(opts,
		sdktrace.WithResource(resource.NewSchemaless(attribute.String("service.name", serviceName))),
		sdktrace.WithSampler(sdktrace.AlwaysSample()),
	)

	provider := sdktrace.NewTracerProvider(opts...)
	return &Provider{
		provider: provider,
		tracer:   provider.Tracer(instrumentationName),
	}, nil
}

// Tracer returns the tracer for the resolver span.
func (p *Provider) Tracer() trace.Tracer {
	return p.tracer
}

// Enabled reports whether spans are recorded.
func (p *Provider) Enabled() bool {
	return p.provider != nil
}

// Shutdown flushes pending spans. Safe to call on a no-op provider.
func (p *Provider) Shutdown(ctx context.Context) error {
	if p.provider == nil {
		return nil
	}
	return p.provider.Shutdown(ctx)
}
