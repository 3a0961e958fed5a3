package cmd

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/anerkennung/internal/recognition"
)

var coursesCmd = &cobra.Command{
	Use:   "courses",
	Short: "List the courses that can still be added",
	RunE: func(cmd *cobra.Command, args []string) error {
		all, _ := cmd.Flags().GetBool("all")

		sess, err := openSession(cmd)
		if err != nil {
			return err
		}
		defer sess.Close()

		courses := sess.ws.Available()
		if all {
			courses = sess.ws.Mapping().Keys()
		}
		out := cmd.OutOrStdout()
		m := sess.ws.Mapping()
		for _, c := range courses {
			fmt.Fprintf(out, "%-50s  %s\n", c, m[c].ID)
		}
		fmt.Fprintf(out, "\n%d Kurse\n", len(courses))
		return nil
	},
}

var addCmd = &cobra.Command{
	Use:   "add <course> [grade]",
	Short: "Add a prior course with its grade",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		grade := ""
		if len(args) == 2 {
			grade = args[1]
		}

		sess, err := openSession(cmd)
		if err != nil {
			return err
		}
		defer sess.Close()

		rec, err := sess.ws.Add(cmd.Context(), args[0], grade)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s → %s (%s)\n", rec.SourceKey, rec.TargetName, rec.Status())
		printRecords(cmd.OutOrStdout(), sess.ws.Records())
		return nil
	},
}

var editCmd = &cobra.Command{
	Use:   "edit <n> <grade>",
	Short: "Change the grade of entry n; the entry moves to the end",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, err := openSession(cmd)
		if err != nil {
			return err
		}
		defer sess.Close()

		i, err := entryIndex(args[0], sess.ws.Len())
		if err != nil {
			return err
		}
		if _, err := sess.ws.Regrade(cmd.Context(), i, args[1]); err != nil {
			return err
		}
		printRecords(cmd.OutOrStdout(), sess.ws.Records())
		return nil
	},
}

var removeCmd = &cobra.Command{
	Use:   "remove <n>",
	Short: "Remove entry n",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, err := openSession(cmd)
		if err != nil {
			return err
		}
		defer sess.Close()

		i, err := entryIndex(args[0], sess.ws.Len())
		if err != nil {
			return err
		}
		if err := sess.ws.Remove(cmd.Context(), i); err != nil {
			return err
		}
		printRecords(cmd.OutOrStdout(), sess.ws.Records())
		return nil
	},
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the entries and whether they count",
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, err := openSession(cmd)
		if err != nil {
			return err
		}
		defer sess.Close()

		printRecords(cmd.OutOrStdout(), sess.ws.Records())
		return nil
	},
}

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all entries",
	RunE: func(cmd *cobra.Command, args []string) error {
		yes, _ := cmd.Flags().GetBool("yes")
		if !yes && !confirm(cmd.InOrStdin(), cmd.OutOrStdout(), "Alle Einträge löschen?") {
			fmt.Fprintln(cmd.OutOrStdout(), "Abgebrochen.")
			return nil
		}

		sess, err := openSession(cmd)
		if err != nil {
			return err
		}
		defer sess.Close()

		if err := sess.ws.Clear(cmd.Context()); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Alle Einträge gelöscht.")
		return nil
	},
}

func init() {
	coursesCmd.Flags().Bool("all", false, "Include courses that are already entered")
	clearCmd.Flags().BoolP("yes", "y", false, "Do not ask for confirmation")
}

// entryIndex converts a 1-based entry number from the command line.
func entryIndex(arg string, n int) (int, error) {
	i, err := strconv.Atoi(arg)
	if err != nil {
		return 0, fmt.Errorf("invalid entry number %q: %w", arg, err)
	}
	if i < 1 || i > n {
		return 0, fmt.Errorf("entry %d out of range (1-%d)", i, n)
	}
	return i - 1, nil
}

func confirm(in io.Reader, out io.Writer, question string) bool {
	fmt.Fprintf(out, "%s [j/N] ", question)
	line, _ := bufio.NewReader(in).ReadString('\n')
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "j", "ja", "y", "yes":
		return true
	}
	return false
}

func printRecords(out io.Writer, records []recognition.Record) {
	if len(records) == 0 {
		fmt.Fprintln(out, "Noch keine Kurse eingetragen.")
		return
	}

	fmt.Fprintf(out, "%-3s  %-45s  %-6s  %-45s  %s\n", "#", "Kurs", "Note", "Zielmodul", "Status")
	fmt.Fprintln(out, strings.Repeat("─", 120))
	active := 0
	for i, r := range records {
		fmt.Fprintf(out, "%-3d  %-45s  %-6s  %-45s  %s\n", i+1, r.SourceKey, r.Grade, r.TargetName, r.Status())
		if r.Active {
			active++
		}
	}
	fmt.Fprintf(out, "\n%d von %d Einträgen zählen\n", active, len(records))
}
