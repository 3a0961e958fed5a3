package filler

import (
	"strings"
	"time"

	"github.com/abhisek/anerkennung/internal/docx"
)

// DateFormat is DD.MM.YYYY.
const DateFormat = "02.01.2006"

// Replacement maps a template token to its value.
type Replacement struct {
	Token string
	Value string
}

// Placeholders returns the token table in application order.
func Placeholders(s Student, now time.Time) []Replacement {
	today := now.Format(DateFormat)
	return []Replacement{
		{"{Name}", s.Name},
		{"{Matrikelnummer}", s.MatriculationNumber},
		{"{Matrikelnummer)", s.MatriculationNumber},
		{"{Studiengang+PO}", s.PreviousStudies},
		{"{Studiengang}", s.PreviousStudies},
		{"{Fachsemester}", s.Semester},
		{"{date}", today},
		{"xx.xx.2025", today},
		{"{Herrn|Frau}", salutationLong(s.Gender)},
		{"{Herr/Frau}", s.Gender},
	}
}

// salutationLong is the accusative form used after "für".
func salutationLong(gender string) string {
	if gender == GenderMale {
		return "Herrn"
	}
	return GenderFemale
}

// ReplaceInRuns replaces token inside every run that contains it whole.
// Run formatting is kept. It reports whether any run matched.
func ReplaceInRuns(p *docx.Paragraph, token, value string) bool {
	replaced := false
	for _, r := range p.Runs() {
		text := r.Text()
		if strings.Contains(text, token) {
			r.SetText(strings.ReplaceAll(text, token, value))
			replaced = true
		}
	}
	return replaced
}

// ReplaceInParagraph rewrites the whole paragraph text when it contains
// token. This collapses run formatting and is only meant for tokens split
// across runs.
func ReplaceInParagraph(p *docx.Paragraph, token, value string) bool {
	text := p.Text()
	if !strings.Contains(text, token) {
		return false
	}
	p.SetText(strings.ReplaceAll(text, token, value))
	return true
}

// replaceToken tries the run tier first and falls back to the paragraph
// tier.
func replaceToken(p *docx.Paragraph, token, value string, rep *Report) {
	if !strings.Contains(p.Text(), token) {
		return
	}
	if ReplaceInRuns(p, token, value) {
		rep.TokensReplaced++
		return
	}
	if ReplaceInParagraph(p, token, value) {
		rep.TokensReplaced++
		rep.ParagraphFallbacks++
	}
}

func substitute(doc *docx.Document, table []Replacement, rep *Report) {
	apply := func(p *docx.Paragraph) {
		for _, r := range table {
			replaceToken(p, r.Token, r.Value, rep)
		}
	}

	for _, p := range doc.Paragraphs() {
		apply(p)
	}
	for _, t := range doc.Tables() {
		for _, row := range t.Rows() {
			for _, cell := range row.Cells() {
				for _, p := range cell.Paragraphs() {
					apply(p)
				}
			}
		}
	}
}

// fixSalutation corrects "Herrn <name> kann" to the nominative "Herr".
func fixSalutation(doc *docx.Document, name string, rep *Report) {
	wrong := "Herrn " + name + " kann"
	right := GenderMale + " " + name + " kann"
	for _, p := range doc.Paragraphs() {
		text := p.Text()
		if strings.Contains(text, wrong) {
			p.SetText(strings.ReplaceAll(text, wrong, right))
			rep.GrammarFixes++
		}
	}
}
