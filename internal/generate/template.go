package generate

import (
	"sort"

	"github.com/abhisek/anerkennung/internal/docx"
	"github.com/abhisek/anerkennung/internal/mapping"
)

// StarterTemplate builds a minimal template that uses every placeholder
// and holds one target-table row per module in m.
func StarterTemplate(m mapping.Mapping) *docx.Document {
	doc := docx.New()
	doc.AddParagraph("Antrag auf Anerkennung von Studienleistungen")
	doc.AddParagraph("Datum: ", "{date}")
	doc.AddParagraph("Name: ", "{Herr/Frau}", " ", "{Name}")
	doc.AddParagraph("Matrikelnummer: ", "{Matrikelnummer}")
	doc.AddParagraph("Bisheriges Studium: ", "{Studiengang+PO}", ", ", "{Fachsemester}")
	doc.AddParagraph("{Herrn|Frau}", " ", "{Name}", " kann die folgenden Studienleistungen anrechnen lassen:")

	rows := [][]string{{"Anerkannte Studienleistungen", "Modul im Zielstudiengang", "Bewertung"}}
	for _, mod := range targets(m) {
		rows = append(rows, []string{"", mod.Name, "Note"})
	}
	doc.AddTable(rows...)

	doc.AddParagraph("Stand: ", "xx.xx.2025")
	return doc
}

// targets returns the distinct target modules of m ordered by id.
func targets(m mapping.Mapping) []mapping.Module {
	seen := make(map[string]bool, len(m))
	var out []mapping.Module
	for _, mod := range m {
		if seen[mod.ID] {
			continue
		}
		seen[mod.ID] = true
		out = append(out, mod)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
