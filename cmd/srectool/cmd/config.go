package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/moffa90/go-srec/internal/config"
)

func newConfigCmd(a *app) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the srectool configuration file",
	}

	var force bool
	initCmd := &cobra.Command{
		Use:   "init [path]",
		Short: "Write a default configuration file",
		Long: `Write the default configuration to path, or to the default location
when no path is given.

Example:
  srectool config init
  srectool config init ./srectool.yaml`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := config.GetDefaultConfigPath()
			if len(args) == 1 {
				path = args[0]
			}
			if config.ConfigExists(path) && !force {
				return fmt.Errorf("config file %s already exists (use --force to overwrite)", path)
			}
			if err := config.SaveConfig(config.DefaultConfig(), path); err != nil {
				return err
			}
			a.log.Info("wrote config", "path", path)
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote configuration to %s\n", path)
			return nil
		},
	}
	initCmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite an existing file")

	configCmd.AddCommand(initCmd)
	return configCmd
}
