package commands

import (
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/Luna88k/msbuild/surface"
)

func newCheckCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check <manifest> <existing>",
		Short: "Check if a generated surface is up to date",
		Long: `Check if an existing surface file matches the current manifest.

The surface is rendered in memory and compared with the existing file,
ignoring the metadata header lines that change on every release.

Exit codes:
  0 - Surface is up to date
  1 - Surface is out of date (diff shown)
  2 - Error during check

Examples:
  genapi check widgets.yaml ref/Contoso.Widgets.cs`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := applyFlags(cmd.Flags(), a.cfg); err != nil {
				return err
			}

			res, err := render(cmd.Context(), a.cfg, a.cfgPath, args[0])
			if err != nil {
				return err
			}
			check, err := surface.Compare(res.Text, args[1])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			switch {
			case check.UpToDate:
				pterm.Success.WithWriter(out).Printfln("%s is up to date", args[1])
				return nil
			case check.Missing:
				pterm.Error.WithWriter(out).Printfln("%s does not exist", args[1])
			default:
				pterm.Error.WithWriter(out).Printfln("%s is out of date (-existing +generated):", args[1])
				pterm.Fprintln(out, check.Diff)
			}
			pterm.Info.WithWriter(out).Printfln("run 'genapi generate %s -o %s' to update", args[0], args[1])
			return ErrStale
		},
	}
	addGenerateFlags(cmd.Flags())
	return cmd
}
