package commands

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/Luna88k/msbuild/config"
	"github.com/Luna88k/msbuild/errors"
	"github.com/Luna88k/msbuild/logger"
	"github.com/Luna88k/msbuild/surface"
)

// addGenerateFlags registers the flags that override config values for
// every command that renders a surface.
func addGenerateFlags(fs *pflag.FlagSet) {
	fs.Bool("include-internals", false, "Include internal and private protected symbols")
	fs.Int("workers", 0, "Parallel workers (0 = all CPUs)")
	fs.Bool("continue-on-error", false, "Skip symbols that cannot be declared instead of failing")
	fs.Bool("no-header", false, "Omit the '// Assembly:' header line")
	fs.String("exclude-api-list", "", "File of documentation IDs to exclude")
}

// applyFlags copies explicitly set flags over cfg.
func applyFlags(fs *pflag.FlagSet, cfg *config.Config) error {
	var err error
	if fs.Changed("include-internals") {
		cfg.Filter.IncludeInternals, err = fs.GetBool("include-internals")
	}
	if err == nil && fs.Changed("workers") {
		cfg.Generate.Workers, err = fs.GetInt("workers")
	}
	if err == nil && fs.Changed("continue-on-error") {
		cfg.Generate.ContinueOnError, err = fs.GetBool("continue-on-error")
	}
	if err == nil && fs.Changed("no-header") {
		var noHeader bool
		noHeader, err = fs.GetBool("no-header")
		cfg.Generate.Header = !noHeader
	}
	if err == nil && fs.Changed("exclude-api-list") {
		cfg.Filter.ExcludeAPIList, err = flagPath(fs, "exclude-api-list")
	}
	if err == nil && fs.Changed("output") {
		cfg.Output.Path, err = fs.GetString("output")
	}
	if err != nil {
		return err
	}
	return cfg.Validate()
}

// flagPath returns a path flag made absolute against the working
// directory, so it is not later resolved against the config file.
func flagPath(fs *pflag.FlagSet, name string) (string, error) {
	p, err := fs.GetString(name)
	if err != nil || p == "" {
		return p, err
	}
	abs, err := filepath.Abs(p)
	if err != nil {
		return "", errors.Wrapf(err, "failed to resolve --%s %s", name, p)
	}
	return abs, nil
}

func newGenerateCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate <manifest>",
		Short: "Generate the API surface of an assembly",
		Long: `Generate the reference API surface described by a metadata manifest.

The manifest is YAML (or JSON) listing the assembly's types and members.
Output goes to stdout unless -o or output.path is set.

Examples:
  genapi generate widgets.yaml
  genapi generate widgets.yaml -o ref/Contoso.Widgets.cs
  genapi generate widgets.yaml --include-internals --workers 4`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := applyFlags(cmd.Flags(), a.cfg); err != nil {
				return err
			}

			res, err := render(cmd.Context(), a.cfg, a.cfgPath, args[0])
			if err != nil {
				return err
			}

			out := a.cfg.Output.Path
			if out == "" {
				_, err := fmt.Fprint(cmd.OutOrStdout(), res.Text)
				return err
			}
			if err := surface.Write(out, res.Text); err != nil {
				return err
			}
			logger.Infow("Wrote API surface",
				logger.FieldFile, out,
				logger.FieldAssembly, res.Assembly.Name,
				logger.FieldCount, res.Stats.Types+res.Stats.Members,
				logger.FieldSkipped, len(res.Stats.Skipped))
			return nil
		},
	}
	cmd.Flags().StringP("output", "o", "", "Output file (default: output.path, or stdout)")
	addGenerateFlags(cmd.Flags())
	return cmd
}
