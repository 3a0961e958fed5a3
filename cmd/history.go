package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List generated documents",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		sess, err := openSession(cmd)
		if err != nil {
			return err
		}
		defer sess.Close()

		events, err := sess.store.HistoryRepo().RecentGenerations(cmd.Context(), limit)
		if err != nil {
			return fmt.Errorf("query history: %w", err)
		}

		out := cmd.OutOrStdout()
		if len(events) == 0 {
			fmt.Fprintln(out, "Noch keine Dokumente erstellt.")
			return nil
		}

		fmt.Fprintf(out, "%-5s  %-16s  %-30s  %-10s  %-7s  %s\n",
			"ID", "Zeit", "Name", "Matrikel", "Kurse", "Dokument")
		fmt.Fprintln(out, strings.Repeat("─", 110))
		for _, e := range events {
			fmt.Fprintf(out, "%-5d  %-16s  %-30s  %-10s  %-7s  %s\n",
				e.ID,
				e.Timestamp.Local().Format("02.01.2006 15:04"),
				e.StudentName,
				e.MatriculationNumber,
				fmt.Sprintf("%d/%d", e.ActiveCount, e.RecordCount),
				e.OutputPath,
			)
		}
		return nil
	},
}

func init() {
	historyCmd.Flags().Int("limit", 20, "Maximum number of entries (0 = all)")
}
