package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/specialistvlad/projector/internal/app"
	"github.com/specialistvlad/projector/internal/projector"
	"github.com/specialistvlad/projector/internal/tracing"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment variable the CLI reads.
const EnvPrefix = "PROJECTOR"

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// Parse processes command-line arguments. It returns a populated Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")

	var cfg *app.Config
	root := newRootCommand(&cfg)
	root.SetArgs(args)
	root.SetOut(output)
	root.SetErr(output)

	if err := root.Execute(); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			return nil, false, exitErr
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	if cfg == nil {
		slog.Debug("No command to run, exiting.")
		return nil, true, nil
	}

	slog.Debug("CLI parser finished successfully.", "config", cfg)
	return cfg, false, nil
}

func newRootCommand(out **app.Config) *cobra.Command {
	root := &cobra.Command{
		Use:   "projector",
		Short: "Resolve projection components into locator tables",
		Long: `Projector reads component declarations, validates every component tagged
as a projection and builds the projections, projection_managers and
read_models locator tables together with their aliases.`,
		SilenceErrors: true,
		SilenceUsage:  true,
	}
	root.AddCommand(newResolveCommand(out))
	return root
}

func newResolveCommand(out **app.Config) *cobra.Command {
	v := viper.New()
	var cfgFile string

	cmd := &cobra.Command{
		Use:   "resolve [PATH]",
		Short: "Resolve projections declared in PATH and print the resulting tables",
		Long: `Resolve loads a single .hcl file or every .hcl file below a directory,
runs the projection resolver and prints the committed tables and aliases.

Settings are read from flags, then PROJECTOR_* environment variables, then
the config file (--config, or ./projector.yaml when present).`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := readConfigFile(v, cfgFile); err != nil {
				return err
			}

			path := v.GetString("declarations")
			if len(args) > 0 {
				path = args[0]
			}
			slog.Debug("Declarations path determined.", "path", path)
			if path == "" {
				slog.Debug("No declarations path provided, printing usage and exiting.")
				return cmd.Help()
			}

			cfg, err := app.NewConfig(app.Config{
				DeclarationsPath: path,
				LogFormat:        v.GetString("log.format"),
				LogLevel:         v.GetString("log.level"),
				Output:           v.GetString("output"),
				Naming: projector.Naming{
					TagKind:        v.GetString("naming.tag"),
					ManagerPrefix:  v.GetString("naming.manager_prefix"),
					AliasNamespace: v.GetString("naming.alias_namespace"),
				},
				Tracing: tracing.Config{
					Enabled:     v.GetBool("tracing.enabled"),
					Exporter:    v.GetString("tracing.exporter"),
					ServiceName: v.GetString("tracing.service_name"),
				},
			})
			if err != nil {
				return &ExitError{Code: 2, Message: err.Error()}
			}
			*out = cfg
			return nil
		},
	}

	defaults := tracing.DefaultConfig()
	flags := cmd.Flags()
	flags.StringVarP(&cfgFile, "config", "c", "", "Path to a YAML config file.")
	flags.String("log-format", "text", "Log output format. Options: 'text' or 'json'.")
	flags.String("log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")
	flags.StringP("output", "o", app.OutputYAML, "Report format. Options: 'yaml' or 'text'.")
	flags.String("tag", projector.DefaultTagKind, "Tag kind that marks projection components.")
	flags.String("manager-prefix", projector.DefaultManagerPrefix, "Prefix turning a projection_manager value into a component id.")
	flags.String("alias-namespace", projector.DefaultAliasNamespace, "Namespace of the aliases the resolver registers.")
	flags.Bool("trace", defaults.Enabled, "Export an OpenTelemetry span for the resolution pass.")
	flags.String("trace-exporter", defaults.Exporter, "Trace exporter. Options: 'stdout' or 'none'.")

	for key, flag := range flagBindings {
		mustBind(v, flags, key, flag)
	}
	v.SetDefault("tracing.service_name", defaults.ServiceName)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return cmd
}

// flagBindings maps viper keys to the resolve command flags that set them.
var flagBindings = map[string]string{
	"log.format":             "log-format",
	"log.level":              "log-level",
	"output":                 "output",
	"naming.tag":             "tag",
	"naming.manager_prefix":  "manager-prefix",
	"naming.alias_namespace": "alias-namespace",
	"tracing.enabled":        "trace",
	"tracing.exporter":       "trace-exporter",
}

// mustBind binds key to the named flag and panics when the flag is not
// defined.
func mustBind(v *viper.Viper, flags *pflag.FlagSet, key, flag string) {
	if err := v.BindPFlag(key, flags.Lookup(flag)); err != nil {
		panic(fmt.Sprintf("cli: binding %q to flag --%s: %v", key, flag, err))
	}
}

// readConfigFile loads cfgFile, or ./projector.yaml when cfgFile is empty.
// Only an explicitly named file is required to exist.
func readConfigFile(v *viper.Viper, cfgFile string) error {
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("projector")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile == "" && errors.As(err, &notFound) {
			return nil
		}
		return &ExitError{Code: 1, Message: fmt.Sprintf("failed to read config file: %v", err)}
	}
	slog.Debug("Config file loaded.", "path", v.ConfigFileUsed())
	return nil
}
