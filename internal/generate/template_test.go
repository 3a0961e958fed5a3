package generate

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/anerkennung/internal/filler"
	"github.com/abhisek/anerkennung/internal/mapping"
	"github.com/abhisek/anerkennung/internal/recognition"
)

func TestStarterTemplateHasOneRowPerTarget(t *testing.T) {
	m := mapping.Default()
	doc := StarterTemplate(m)

	table, ok := filler.FindTargetTable(doc)
	require.True(t, ok)
	// Both computer science parts share MA4DSC1002.
	assert.Len(t, table.Rows(), len(m))
}

func TestStarterTemplateFills(t *testing.T) {
	doc := StarterTemplate(mapping.Default())
	records := []recognition.Record{{
		SourceKey:  "Elements of Computer Science (Part 1)",
		TargetID:   "MA4DSC1002",
		TargetName: "MA4DSC1002 Elements of Computer Science",
		Grade:      "1,3",
		Active:     true,
	}}
	student := filler.Student{Gender: filler.GenderMale, Name: "Max Muster", MatriculationNumber: "3012345"}

	rep, err := filler.FillWithReport(doc, student, records, time.Date(2025, 3, 7, 9, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, 1, rep.RowsMatched)
	assert.Empty(t, rep.UnmatchedTargetIDs)

	table, ok := filler.FindTargetTable(doc)
	require.True(t, ok)
	rows := table.Rows()
	require.Len(t, rows, 2)
	cells := rows[1].Cells()
	require.Len(t, cells, 3)
	assert.Equal(t, "Elements of Computer Science", cells[0].Text())
	assert.Equal(t, "Note: 1,3", cells[2].Text())

	var texts []string
	for _, p := range doc.Paragraphs() {
		texts = append(texts, p.Text())
	}
	assert.Contains(t, texts, "Datum: 07.03.2025")
	assert.Contains(t, texts, "Name: Herr Max Muster")
	assert.Contains(t, texts, "Herr Max Muster kann die folgenden Studienleistungen anrechnen lassen:")
	assert.Contains(t, texts, "Stand: 07.03.2025")
}
