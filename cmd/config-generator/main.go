// Command config-generator renders the containment XML and metadata catalogue
// of a class model and computes deltas between configuration snapshots.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"config-generator/internal/config"
	"config-generator/internal/logging"
)

// ExitError carries a specific process exit code.
type ExitError struct {
	Code    int
	Message string
}

func (e *ExitError) Error() string {
	return e.Message
}

func main() {
	// Use a minimal logger until the configured one is built.
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})))

	if err := run(context.Background(), os.Args[1:], os.Stdout, os.Stderr); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			if exitErr.Message != "" {
				fmt.Fprintln(os.Stderr, exitErr.Message)
			}

			os.Exit(exitErr.Code)
		}

		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// run executes the command line in args.
func run(ctx context.Context, args []string, outW, errW io.Writer) error {
	root := newRootCmd(outW, errW)
	root.SetArgs(args)

	return root.ExecuteContext(ctx)
}

// cli holds the state shared by every subcommand of one invocation.
type cli struct {
	cfg config.Config

	configPath string
	logLevel   string
	logFormat  string
	colorMode  string
}

func newRootCmd(outW, errW io.Writer) *cobra.Command {
	c := &cli{}

	root := &cobra.Command{
		Use:           "config-generator",
		Short:         "Class model renderer and configuration delta tool",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return c.setup(cmd, errW)
		},
	}

	root.SetOut(outW)
	root.SetErr(errW)

	flags := root.PersistentFlags()
	flags.StringVar(&c.configPath, "config", "", "path to a TOML configuration file")
	flags.StringVar(&c.logLevel, "log-level", "", "logging level (debug|info|warn|error)")
	flags.StringVar(&c.logFormat, "log-format", "", "log output format (text|json)")
	flags.StringVar(&c.colorMode, "color", "auto", "colorize output (auto|on|off)")

	root.AddCommand(
		newGenerateCmd(c),
		newRenderCmd(c),
		newMetaCmd(c),
		newDiffCmd(c),
		newPatchCmd(c),
		newCheckCmd(c),
		newVersionCmd(),
	)

	return root
}

// setup loads the configuration, applies flag overrides and installs the logger.
func (c *cli) setup(cmd *cobra.Command, errW io.Writer) error {
	cfg := config.Default()

	if c.configPath != "" {
		loaded, err := config.Load(c.configPath)
		if err != nil {
			return &ExitError{Code: 2, Message: err.Error()}
		}

		cfg = loaded
	}

	if c.logLevel != "" {
		cfg.Log.Level = c.logLevel
	}

	if c.logFormat != "" {
		cfg.Log.Format = c.logFormat
	}

	switch c.colorMode {
	case "auto", "on", "off":
	default:
		return &ExitError{Code: 2, Message: fmt.Sprintf("invalid --color %q: want auto, on or off", c.colorMode)}
	}

	if err := cfg.Validate(); err != nil {
		return &ExitError{Code: 2, Message: err.Error()}
	}

	c.cfg = cfg

	logger := logging.New(cfg.Log.Level, cfg.Log.Format, errW)
	cmd.SetContext(logging.WithLogger(cmd.Context(), logger))

	logger.Debug("configuration loaded", "path", c.configPath, "format", cfg.Output.Format)

	return nil
}
