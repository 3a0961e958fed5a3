package filler

import (
	"strings"

	"github.com/abhisek/anerkennung/internal/docx"
	"github.com/abhisek/anerkennung/internal/recognition"
)

// Header markers identifying the recognition table.
const (
	MarkerRecognized = "Anerkannt"
	MarkerPrior      = "Studienleistungen"
)

const (
	gradeWord        = "Note"
	languageCategory = "Deutsch"
)

// FindTargetTable returns the first top-level table whose header row
// mentions one of the markers.
func FindTargetTable(doc *docx.Document) (*docx.Table, bool) {
	for _, t := range doc.Tables() {
		rows := t.Rows()
		if len(rows) == 0 {
			continue
		}
		header := rows[0].Text()
		if strings.Contains(header, MarkerRecognized) || strings.Contains(header, MarkerPrior) {
			return t, true
		}
	}
	return nil, false
}

// SourceLabel is the first-cell text written for a matched record.
// Language courses keep their level in parentheses.
func SourceLabel(sourceKey string) string {
	if strings.Contains(sourceKey, languageCategory) {
		return sourceKey
	}
	before, _, _ := strings.Cut(sourceKey, "(")
	return strings.TrimRight(before, " \t")
}

func reconcile(doc *docx.Document, active []recognition.Record, rep *Report) {
	table, ok := FindTargetTable(doc)
	if !ok {
		for _, r := range active {
			rep.UnmatchedTargetIDs = append(rep.UnmatchedTargetIDs, r.TargetID)
		}
		return
	}
	rep.TableFound = true

	rows := table.Rows()
	consumed := make([]bool, len(active))
	for i := len(rows) - 1; i >= 1; i-- {
		row := rows[i]
		text := row.Text()

		match := -1
		for j, r := range active {
			if consumed[j] || r.TargetID == "" {
				continue
			}
			if strings.Contains(text, r.TargetID) {
				match = j
				break
			}
		}

		if match < 0 {
			if err := table.RemoveRow(i); err == nil {
				rep.RowsRemoved++
			}
			continue
		}

		fillRow(row, active[match], rep)
		consumed[match] = true
		rep.RowsMatched++
	}

	for j, r := range active {
		if !consumed[j] {
			rep.UnmatchedTargetIDs = append(rep.UnmatchedTargetIDs, r.TargetID)
		}
	}
}

func fillRow(row *docx.Row, rec recognition.Record, rep *Report) {
	cells := row.Cells()
	if len(cells) > 0 && strings.TrimSpace(cells[0].Text()) == "" {
		cells[0].SetText(SourceLabel(rec.SourceKey))
	}

	for _, c := range cells {
		for _, p := range c.Paragraphs() {
			text := p.Text()
			if strings.Contains(text, gradeWord) {
				p.SetText(strings.ReplaceAll(text, gradeWord, gradeWord+": "+rec.Grade))
				return
			}
		}
	}

	if len(cells) < 3 {
		return
	}
	last := cells[len(cells)-1]
	current := last.Text()
	if strings.HasSuffix(strings.TrimSpace(current), ":") {
		last.SetText(current + " " + rec.Grade)
	} else {
		last.SetText(current + ": " + rec.Grade)
	}
	rep.GradesAppended++
}
