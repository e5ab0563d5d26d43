package app

import (
	"errors"
	"fmt"
	"strings"

	"github.com/specialistvlad/projector/internal/projector"
	"github.com/specialistvlad/projector/internal/tracing"
)

// Output formats accepted by Config.Output.
const (
	OutputYAML = "yaml"
	OutputText = "text"
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	DeclarationsPath string // .hcl file or directory

	LogFormat string
	LogLevel  string
	Output    string

	Naming  projector.Naming
	Tracing tracing.Config
}

// NewConfig validates cfg and fills in defaults.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.DeclarationsPath == "" {
		return nil, errors.New("DeclarationsPath is a required configuration field and cannot be empty")
	}

	cfg.LogFormat = strings.ToLower(cfg.LogFormat)
	switch cfg.LogFormat {
	case "":
		cfg.LogFormat = "text"
	case "text", "json":
	default:
		return nil, fmt.Errorf("invalid log-format %q: must be 'text' or 'json'", cfg.LogFormat)
	}

	cfg.LogLevel = strings.ToLower(cfg.LogLevel)
	switch cfg.LogLevel {
	case "":
		cfg.LogLevel = "info"
	case "debug", "info", "warn", "error":
	default:
		return nil, fmt.Errorf("invalid log-level %q: must be 'debug', 'info', 'warn', or 'error'", cfg.LogLevel)
	}

	cfg.Output = strings.ToLower(cfg.Output)
	switch cfg.Output {
	case "":
		cfg.Output = OutputYAML
	case OutputYAML, OutputText:
	default:
		return nil, fmt.Errorf("invalid output %q: must be 'yaml' or 'text'", cfg.Output)
	}

	for _, s := range []struct{ field, value string }{
		{"tag", cfg.Naming.TagKind},
		{"alias-namespace", cfg.Naming.AliasNamespace},
	} {
		if strings.ContainsAny(s.value, " \t\n") {
			return nil, fmt.Errorf("invalid %s %q: must not contain whitespace", s.field, s.value)
		}
	}

	return &cfg, nil
}
