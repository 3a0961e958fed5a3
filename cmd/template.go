package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/anerkennung/internal/generate"
)

var templateCmd = &cobra.Command{
	Use:   "template",
	Short: "Manage the Word template",
}

var templateInitCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Write a starter template with all placeholders and a target table",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		force, _ := cmd.Flags().GetBool("force")
		path := cfg.TemplatePath()
		if len(args) == 1 {
			path = args[0]
		}
		if _, err := os.Stat(path); err == nil && !force {
			return fmt.Errorf("%s already exists (use --force to overwrite)", path)
		}

		doc := generate.StarterTemplate(loadMapping(cmd))
		if err := doc.Save(path); err != nil {
			return fmt.Errorf("save template: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Template erstellt: %s\n", path)
		return nil
	},
}

func init() {
	templateInitCmd.Flags().Bool("force", false, "Overwrite an existing file")
	templateCmd.AddCommand(templateInitCmd)
}
