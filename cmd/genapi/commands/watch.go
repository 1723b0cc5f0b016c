package commands

import (
	"context"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/Luna88k/msbuild/errors"
	"github.com/Luna88k/msbuild/surface"
	"github.com/Luna88k/msbuild/watch"
)

func newWatchCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch <manifest>",
		Short: "Regenerate the surface whenever the manifest changes",
		Long: `Watch a manifest (and the configured API exclusion list) and rewrite
the surface file after every change, until interrupted.

Examples:
  genapi watch widgets.yaml -o ref/Contoso.Widgets.cs`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := applyFlags(cmd.Flags(), a.cfg); err != nil {
				return err
			}
			out := a.cfg.Output.Path
			if out == "" {
				return errors.WithHint(errors.New("watch needs an output file"),
					"pass -o or set output.path in genapi.toml")
			}
			debounce, err := cmd.Flags().GetDuration("debounce")
			if err != nil {
				return err
			}

			manifest := args[0]
			printer := cmd.OutOrStdout()
			regenerate := func(ctx context.Context, _ string) error {
				res, err := render(ctx, a.cfg, a.cfgPath, manifest)
				if err != nil {
					pterm.Error.WithWriter(printer).Println(err.Error())
					return err
				}
				if err := surface.Write(out, res.Text); err != nil {
					return err
				}
				pterm.Success.WithWriter(printer).Printfln("%s: %d types, %d members", out, res.Stats.Types, res.Stats.Members)
				return nil
			}

			w, err := watch.New(watchedFiles(a.cfg, a.cfgPath, manifest), debounce)
			if err != nil {
				return err
			}
			// A broken manifest at startup is reported like any later edit
			_ = regenerate(cmd.Context(), manifest)

			pterm.Info.WithWriter(printer).Printfln("watching %s (Ctrl+C to stop)", manifest)
			return w.Run(cmd.Context(), regenerate)
		},
	}
	cmd.Flags().StringP("output", "o", "", "Output file (default: output.path)")
	cmd.Flags().Duration("debounce", watch.DefaultDebounce, "Quiet period before regenerating")
	addGenerateFlags(cmd.Flags())
	return cmd
}
