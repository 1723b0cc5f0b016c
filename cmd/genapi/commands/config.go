package commands

import (
	"encoding/json"
	"fmt"

	"github.com/pelletier/go-toml/v2"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/Luna88k/msbuild/config"
	"github.com/Luna88k/msbuild/errors"
)

func newConfigCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage genapi configuration",
		Long: `Manage genapi configuration.

Examples:
  genapi config init                 # Write genapi.toml in the current directory
  genapi config init conf/api.toml   # Write to a specific path
  genapi config show --format yaml   # Show the effective configuration`,
	}

	initCmd := &cobra.Command{
		Use:   "init [path]",
		Short: "Write a default genapi.toml",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := config.FileName
			if len(args) == 1 {
				path = args[0]
			}
			force, err := cmd.Flags().GetBool("force")
			if err != nil {
				return err
			}
			if err := config.WriteDefault(path, force); err != nil {
				return err
			}
			pterm.Success.WithWriter(cmd.OutOrStdout()).Printfln("wrote %s", path)
			return nil
		},
	}
	initCmd.Flags().Bool("force", false, "Overwrite an existing file")

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Show the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, path, err := config.Load(a.configFlag)
			if err != nil {
				return err
			}
			format, err := cmd.Flags().GetString("format")
			if err != nil {
				return err
			}

			var data []byte
			switch format {
			case "toml":
				data, err = toml.Marshal(cfg)
			case "yaml":
				data, err = yaml.Marshal(cfg)
			case "json":
				data, err = json.MarshalIndent(cfg, "", "  ")
				data = append(data, '\n')
			default:
				return errors.Newf("unsupported format: %s (supported: toml, yaml, json)", format)
			}
			if err != nil {
				return errors.Wrapf(err, "failed to marshal config to %s", format)
			}

			out := cmd.OutOrStdout()
			if path == "" {
				path = "defaults"
			}
			if format != "json" {
				fmt.Fprintf(out, "# genapi configuration (%s)\n", path)
			}
			_, err = out.Write(data)
			return err
		},
	}
	showCmd.Flags().String("format", "toml", "Output format: toml, yaml, json")

	cmd.AddCommand(initCmd, showCmd)
	return cmd
}
