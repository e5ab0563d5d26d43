package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/specialistvlad/projector/internal/app"
	"github.com/specialistvlad/projector/internal/cli"
	"github.com/specialistvlad/projector/internal/hcl"
)

// main is the entrypoint for the projector command.
func main() {
	// Use a minimal logger until the full one is configured.
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})))

	// The real main function handles errors and exit codes.
	if err := run(os.Stdout, os.Stderr, os.Args[1:]); err != nil {
		var exitErr *cli.ExitError
		if errors.As(err, &exitErr) {
			fmt.Fprintln(os.Stderr, exitErr.Message)
			os.Exit(exitErr.Code)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// run encapsulates the main application logic for easier testing and error
// handling. The report goes to outW, logs and traces to logW.
func run(outW, logW io.Writer, args []string) (err error) {
	appConfig, shouldExit, err := cli.Parse(args, outW)
	if err != nil {
		return err
	}
	if shouldExit {
		return nil
	}
	appConfig.Tracing.Writer = logW

	projectorApp, err := app.NewApp(outW, logW, appConfig, hcl.NewLoader())
	if err != nil {
		return &cli.ExitError{Code: 1, Message: err.Error()}
	}

	ctx := context.Background()
	defer func() {
		if closeErr := projectorApp.Close(ctx); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	return projectorApp.Run(ctx)
}
