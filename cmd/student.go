package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/anerkennung/internal/filler"
)

var studentCmd = &cobra.Command{
	Use:   "student",
	Short: "Show or set the student details",
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, err := openSession(cmd)
		if err != nil {
			return err
		}
		defer sess.Close()

		st := sess.ws.Student()
		fields := []struct {
			flag string
			dst  *string
		}{
			{"name", &st.Name},
			{"matrikel", &st.MatriculationNumber},
			{"gender", &st.Gender},
			{"previous", &st.PreviousStudies},
			{"semester", &st.Semester},
			{"target", &st.TargetProgram},
		}
		changed := false
		for _, f := range fields {
			if cmd.Flags().Changed(f.flag) {
				*f.dst, _ = cmd.Flags().GetString(f.flag)
				changed = true
			}
		}

		if changed {
			if st.Gender != filler.GenderMale && st.Gender != filler.GenderFemale {
				return fmt.Errorf("gender must be %s or %s, got %q", filler.GenderMale, filler.GenderFemale, st.Gender)
			}
			if err := sess.ws.SetStudent(cmd.Context(), st); err != nil {
				return err
			}
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Anrede:              %s\n", st.Gender)
		fmt.Fprintf(out, "Name:                %s\n", st.Name)
		fmt.Fprintf(out, "Matrikelnummer:      %s\n", st.MatriculationNumber)
		fmt.Fprintf(out, "Bisheriges Studium:  %s\n", st.PreviousStudies)
		fmt.Fprintf(out, "Fachsemester:        %s\n", st.Semester)
		fmt.Fprintf(out, "Ziel-Studiengang:    %s\n", st.TargetProgram)
		return nil
	},
}

func init() {
	studentCmd.Flags().String("name", "", "Full name")
	studentCmd.Flags().String("matrikel", "", "Matriculation number")
	studentCmd.Flags().String("gender", "", "Salutation: Herr or Frau")
	studentCmd.Flags().String("previous", "", "Previous degree program and examination regulations")
	studentCmd.Flags().String("semester", "", "Fachsemester / Einstufung")
	studentCmd.Flags().String("target", "", "Target degree program")
}
