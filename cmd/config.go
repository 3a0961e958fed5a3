package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/abhisek/anerkennung/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect or create the configuration file",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the commented default configuration file",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := resolveConfigPath(cmd)
		if err != nil {
			return err
		}
		created, err := config.EnsureFile(path)
		if err != nil {
			return err
		}
		if created {
			fmt.Fprintf(cmd.OutOrStdout(), "Config erstellt: %s\n", path)
		} else {
			fmt.Fprintf(cmd.OutOrStdout(), "Config existiert bereits: %s\n", path)
		}
		return nil
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		effective := cfg
		effective.Template = cfg.TemplatePath()
		effective.Mapping = cfg.MappingPath()
		effective.LogFile = cfg.LogPath()
		effective.OutputDir = cfg.OutputDirFor(effective.Template)

		enc := yaml.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent(2)
		if err := enc.Encode(effective); err != nil {
			return fmt.Errorf("encode config: %w", err)
		}
		return enc.Close()
	},
}

func init() {
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configShowCmd)
}
