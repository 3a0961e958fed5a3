package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/anerkennung/internal/filler"
	"github.com/abhisek/anerkennung/internal/generate"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Fill the template and write the recognition document",
	RunE: func(cmd *cobra.Command, args []string) error {
		template := cfg.TemplatePath()
		if cmd.Flags().Changed("template") {
			template, _ = cmd.Flags().GetString("template")
		}
		outDir := cfg.OutputDirFor(template)
		if cmd.Flags().Changed("out-dir") {
			outDir, _ = cmd.Flags().GetString("out-dir")
		}
		open := cfg.OpenAfterGenerate
		if cmd.Flags().Changed("open") {
			open, _ = cmd.Flags().GetBool("open")
		}

		sess, err := openSession(cmd)
		if err != nil {
			return err
		}
		defer sess.Close()

		gen := generate.New(sess.store.HistoryRepo(), logger)
		res, err := gen.Generate(cmd.Context(), generate.Request{
			Student:      sess.ws.Student(),
			Records:      sess.ws.Records(),
			TemplatePath: template,
			OutputDir:    outDir,
			Open:         open,
		})
		if err != nil {
			if msg := userMessage(err); msg != "" {
				fmt.Fprintln(cmd.ErrOrStderr(), msg)
			}
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Dokument erstellt: %s\n", res.OutputPath)
		rep := res.Report
		fmt.Fprintf(out, "%d Zeilen ausgefüllt, %d Zeilen entfernt\n", rep.RowsMatched, rep.RowsRemoved)
		if !rep.TableFound {
			fmt.Fprintln(cmd.ErrOrStderr(), "warning: keine Anerkennungstabelle im Template gefunden")
		}
		for _, id := range rep.UnmatchedTargetIDs {
			fmt.Fprintf(cmd.ErrOrStderr(), "warning: keine Zeile für %s im Template\n", id)
		}
		return nil
	},
}

func init() {
	generateCmd.Flags().String("template", "", "Template document (default from config)")
	generateCmd.Flags().String("out-dir", "", "Output directory (default: next to the template)")
	generateCmd.Flags().Bool("open", false, "Open the document after generating")
}

// userMessage returns the German hint for input errors, or "".
func userMessage(err error) string {
	switch {
	case errors.Is(err, generate.ErrMissingField):
		return "Bitte Name und Matrikelnummer ausfüllen (anerkennung student --name ... --matrikel ...)."
	case errors.Is(err, generate.ErrNoRecords):
		return "Keine Einträge vorhanden (anerkennung add ...)."
	case errors.Is(err, filler.ErrTemplateMissing):
		return "Template nicht gefunden."
	}
	return ""
}
