// Package filler merges student details and recognition records into a
// recognition template document.
package filler

import (
	"errors"
	"time"

	"github.com/abhisek/anerkennung/internal/docx"
	"github.com/abhisek/anerkennung/internal/recognition"
)

// ErrTemplateMissing is returned when no template document is supplied.
var ErrTemplateMissing = errors.New("template missing")

// Salutations as entered in the form.
const (
	GenderMale   = "Herr"
	GenderFemale = "Frau"
)

// Student holds the details substituted into the template.
type Student struct {
	Gender              string
	Name                string
	MatriculationNumber string
	PreviousStudies     string
	Semester            string
	TargetProgram       string
}

// Report describes what a fill changed. Nothing in it is an error; it
// exists for debug logging.
type Report struct {
	TokensReplaced     int
	ParagraphFallbacks int
	GrammarFixes       int
	TableFound         bool
	RowsMatched        int
	RowsRemoved        int
	GradesAppended     int
	UnmatchedTargetIDs []string
}

// Fill runs both passes over doc, which is modified in place. Only active
// records take part in table reconciliation.
func Fill(doc *docx.Document, student Student, records []recognition.Record, now time.Time) error {
	_, err := FillWithReport(doc, student, records, now)
	return err
}

// FillWithReport is Fill returning a summary of the changes.
func FillWithReport(doc *docx.Document, student Student, records []recognition.Record, now time.Time) (*Report, error) {
	if doc == nil {
		return nil, ErrTemplateMissing
	}

	rep := &Report{}
	substitute(doc, Placeholders(student, now), rep)
	if student.Gender == GenderMale {
		fixSalutation(doc, student.Name, rep)
	}

	var active []recognition.Record
	for _, r := range records {
		if r.Active {
			active = append(active, r)
		}
	}
	reconcile(doc, active, rep)
	return rep, nil
}
