// Package commands implements the genapi command tree.
package commands

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/Luna88k/msbuild/config"
	"github.com/Luna88k/msbuild/errors"
	"github.com/Luna88k/msbuild/logger"
)

// Exit codes
const (
	ExitOK      = 0
	ExitStale   = 1 // check: surface out of date
	ExitFailure = 2 // any other error
)

// ErrStale is returned by check when the existing surface differs.
var ErrStale = errors.New("surface is out of date")

// ExitCode maps an Execute error to a process exit code.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, ErrStale):
		return ExitStale
	default:
		return ExitFailure
	}
}

// app is the state shared by every command after PersistentPreRunE.
type app struct {
	configFlag string
	verbosity  int
	jsonLog    bool

	cfg     *config.Config
	cfgPath string
}

// NewRootCmd builds a fresh command tree.
func NewRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "genapi",
		Short: "Generate reference API surfaces from assembly metadata",
		Long: `genapi - Reference API surface generator.

Reads a metadata manifest describing a compiled library and writes the
declaration-only source of everything the configured filter includes:
types, members, base lists and constructor chains, with bodies stubbed.

Configuration sources (in order of precedence):
1. Command line flags
2. Environment variables (GENAPI_* prefix)
3. genapi.toml (--config, or searched upwards from the working directory)
4. Default values

Examples:
  genapi generate widgets.yaml                    # Write surface to stdout
  genapi generate widgets.yaml -o ref/Widgets.cs  # Write to file
  genapi check widgets.yaml ref/Widgets.cs        # Fail if out of date
  genapi watch widgets.yaml -o ref/Widgets.cs     # Regenerate on change
  genapi config init                              # Write default genapi.toml`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}

	root.PersistentFlags().StringVar(&a.configFlag, "config", "", "Path to genapi.toml (default: search upwards)")
	root.PersistentFlags().CountVarP(&a.verbosity, "verbose", "v", "Increase output verbosity (repeat for more detail: -v, -vv)")
	root.PersistentFlags().BoolVar(&a.jsonLog, "json-log", false, "Emit logs as JSON on stderr")

	root.AddCommand(newGenerateCmd(a))
	root.AddCommand(newCheckCmd(a))
	root.AddCommand(newWatchCmd(a))
	root.AddCommand(newConfigCmd(a))
	root.AddCommand(newVersionCmd())
	return root
}

// Execute runs the root command with SIGINT/SIGTERM cancelling its context.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return NewRootCmd().ExecuteContext(ctx)
}

// setup loads configuration and sets up logging. Commands under "config"
// and "version" do not need a valid config file.
func (a *app) setup(cmd *cobra.Command) error {
	if skipsConfig(cmd) {
		return logger.Initialize(a.jsonLog, a.verbosity)
	}

	cfg, path, err := config.Load(a.configFlag)
	if err != nil {
		return errors.Wrap(err, "failed to load config")
	}
	if !cmd.Flags().Changed("verbose") {
		a.verbosity = cfg.Log.Verbosity
	}
	if !cmd.Flags().Changed("json-log") {
		a.jsonLog = cfg.Log.JSON
	}
	if err := logger.Initialize(a.jsonLog, a.verbosity); err != nil {
		return errors.Wrap(err, "failed to initialize logger")
	}

	a.cfg = cfg
	a.cfgPath = path
	if path != "" {
		logger.Debugw("Loaded configuration", logger.FieldConfig, path)
	}
	return nil
}

func skipsConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		switch c.Name() {
		case "config", "version":
			return true
		}
	}
	return false
}
