package cmd

import (
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/abhisek/anerkennung/internal/mapping"
)

var mappingCmd = &cobra.Command{
	Use:   "mapping",
	Short: "Manage the course to module mapping",
}

var mappingInitCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Write the built-in mapping to the mapping file",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		force, _ := cmd.Flags().GetBool("force")
		path := cfg.MappingPath()
		if len(args) == 1 {
			path = args[0]
		}
		if _, err := os.Stat(path); err == nil && !force {
			return fmt.Errorf("%s already exists (use --force to overwrite)", path)
		}
		if err := mapping.Write(path, mapping.Default()); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Mapping erstellt: %s (%d Module)\n", path, len(mapping.Default()))
		return nil
	},
}

var mappingCheckCmd = &cobra.Command{
	Use:   "check [path]",
	Short: "Validate a mapping file without modifying it",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := cfg.MappingPath()
		if len(args) == 1 {
			path = args[0]
		}
		raw, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read mapping: %w", err)
		}
		m, err := mapping.Parse(raw)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%s: %d Kurse\n", path, len(m))

		shared := make(map[string][]string)
		for course, mod := range m {
			shared[mod.ID] = append(shared[mod.ID], course)
		}
		ids := make([]string, 0, len(shared))
		for id, courses := range shared {
			if len(courses) > 1 {
				ids = append(ids, id)
			}
		}
		sort.Strings(ids)
		for _, id := range ids {
			courses := shared[id]
			sort.Strings(courses)
			fmt.Fprintf(out, "  %s wird von %d Kursen belegt: %v\n", id, len(courses), courses)
		}
		return nil
	},
}

func init() {
	mappingInitCmd.Flags().Bool("force", false, "Overwrite an existing file")
	mappingCmd.AddCommand(mappingInitCmd)
	mappingCmd.AddCommand(mappingCheckCmd)
}
