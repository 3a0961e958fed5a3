package generate

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/abhisek/anerkennung/internal/docx"
	"github.com/abhisek/anerkennung/internal/filler"
	"github.com/abhisek/anerkennung/internal/recognition"
	"github.com/abhisek/anerkennung/internal/store"
)

var genDate = time.Date(2025, time.March, 7, 14, 30, 0, 0, time.UTC)

type fakeHistory struct {
	events []store.GenerationEventData
	err    error
}

func (f *fakeHistory) AppendGeneration(_ context.Context, data store.GenerationEventData) error {
	if f.err != nil {
		return f.err
	}
	f.events = append(f.events, data)
	return nil
}

func (f *fakeHistory) RecentGenerations(context.Context, int) ([]store.GenerationEventData, error) {
	return f.events, nil
}

func writeTemplate(t *testing.T, dir string) string {
	t.Helper()
	doc := docx.New()
	doc.AddParagraph("Antrag auf Anerkennung für {Herrn|Frau} {Name} ({Matrikelnummer})")
	doc.AddParagraph("{Herrn|Frau} {Name} kann folgende Leistungen anrechnen lassen.")
	doc.AddParagraph("Bonn, den xx.xx.2025")
	doc.AddTable(
		[]string{"Bisherige Studienleistungen", "Anerkannt als", "Bemerkung"},
		[]string{"", "MA4DSC1001 Elements of Mathematics (WP)", "Note"},
		[]string{"", "MA4DSC1003 Elements of Statistics", "Note"},
		[]string{"", "MA4DSC1004 Statistical Programming with R", "Note"},
	)
	path := filepath.Join(dir, "template.docx")
	require.NoError(t, doc.Save(path))
	return path
}

func request(tpl string) Request {
	return Request{
		Student: filler.Student{
			Gender:              filler.GenderMale,
			Name:                "Max Muster",
			MatriculationNumber: "3012345",
			PreviousStudies:     "M.Sc. Data Science (PO 2016/2021)",
			Semester:            "2",
		},
		Records: []recognition.Record{
			{SourceKey: "Elements of Mathematics", TargetID: "MA4DSC1001", Grade: "1,3", Active: true},
			{SourceKey: "Elements of Statistics", TargetID: "MA4DSC1003", Grade: "3,7", Active: false},
		},
		TemplatePath: tpl,
	}
}

func newGenerator(t *testing.T, h store.HistoryRepo, opts ...Option) *Generator {
	opts = append([]Option{WithClock(func() time.Time { return genDate })}, opts...)
	return New(h, zaptest.NewLogger(t), opts...)
}

func TestGenerateWritesFilledDocument(t *testing.T) {
	dir := t.TempDir()
	tpl := writeTemplate(t, dir)
	hist := &fakeHistory{}

	res, err := newGenerator(t, hist).Generate(context.Background(), request(tpl))
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "Anerkennung_Max_Muster_2025-03-07.docx"), res.OutputPath)
	assert.False(t, res.Opened)

	out, err := docx.Open(res.OutputPath)
	require.NoError(t, err)
	paras := out.Paragraphs()
	require.Len(t, paras, 3)
	assert.Equal(t, "Antrag auf Anerkennung für Herrn Max Muster (3012345)", paras[0].Text())
	assert.Equal(t, "Herr Max Muster kann folgende Leistungen anrechnen lassen.", paras[1].Text())
	assert.Equal(t, "Bonn, den 07.03.2025", paras[2].Text())

	rows := out.Tables()[0].Rows()
	require.Len(t, rows, 2)
	assert.Equal(t, "Elements of Mathematics", rows[1].Cells()[0].Text())
	assert.Equal(t, "Note: 1,3", rows[1].Cells()[2].Text())

	require.Len(t, hist.events, 1)
	ev := hist.events[0]
	assert.Equal(t, "Max Muster", ev.StudentName)
	assert.Equal(t, 2, ev.RecordCount)
	assert.Equal(t, 1, ev.ActiveCount)
	assert.Equal(t, 1, ev.RowsMatched)
	assert.Equal(t, 2, ev.RowsRemoved)

	// The template itself is untouched.
	tplDoc, err := docx.Open(tpl)
	require.NoError(t, err)
	assert.Len(t, tplDoc.Tables()[0].Rows(), 4)
}

func TestGenerateOutputDirAndOpener(t *testing.T) {
	tpl := writeTemplate(t, t.TempDir())
	outDir := filepath.Join(t.TempDir(), "ausgabe")
	var opened string
	opener := func(_ context.Context, p string) error {
		opened = p
		return nil
	}

	req := request(tpl)
	req.OutputDir = outDir
	req.Open = true
	res, err := newGenerator(t, nil, WithOpener(opener)).Generate(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, outDir, filepath.Dir(res.OutputPath))
	assert.Equal(t, res.OutputPath, opened)
	assert.True(t, res.Opened)
}

func TestGenerateOpenerFailureIsNotFatal(t *testing.T) {
	tpl := writeTemplate(t, t.TempDir())
	opener := func(context.Context, string) error { return errors.New("no viewer") }

	req := request(tpl)
	req.Open = true
	res, err := newGenerator(t, nil, WithOpener(opener)).Generate(context.Background(), req)
	require.NoError(t, err)
	assert.False(t, res.Opened)
	assert.FileExists(t, res.OutputPath)
}

func TestGenerateHistoryFailureIsNotFatal(t *testing.T) {
	tpl := writeTemplate(t, t.TempDir())
	hist := &fakeHistory{err: errors.New("database is locked")}

	res, err := newGenerator(t, hist).Generate(context.Background(), request(tpl))
	require.NoError(t, err)
	assert.FileExists(t, res.OutputPath)
}

func TestGenerateInputErrors(t *testing.T) {
	tpl := writeTemplate(t, t.TempDir())

	tests := []struct {
		name   string
		mutate func(*Request)
		want   error
	}{
		{"missing name", func(r *Request) { r.Student.Name = "  " }, ErrMissingField},
		{"missing matriculation number", func(r *Request) { r.Student.MatriculationNumber = "" }, ErrMissingField},
		{"no records", func(r *Request) { r.Records = nil }, ErrNoRecords},
		{"missing template", func(r *Request) { r.TemplatePath = filepath.Join(t.TempDir(), "fehlt.docx") }, filler.ErrTemplateMissing},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := request(tpl)
			tt.mutate(&req)

			_, err := newGenerator(t, nil).Generate(context.Background(), req)
			assert.True(t, errors.Is(err, tt.want), "got %v", err)
		})
	}
}

func TestGenerateMalformedTemplateLeavesNoOutput(t *testing.T) {
	dir := t.TempDir()
	tpl := filepath.Join(dir, "template.docx")
	require.NoError(t, os.WriteFile(tpl, []byte("not a zip"), 0o644))

	_, err := newGenerator(t, nil).Generate(context.Background(), request(tpl))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrGenerationFailed))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestOutputName(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"Max Muster", "Anerkennung_Max_Muster_2025-03-07.docx"},
		{" Anna  Maria Schmidt ", "Anerkennung_Anna__Maria_Schmidt_2025-03-07.docx"},
		{"a/b\\c", "Anerkennung_a_b_c_2025-03-07.docx"},
		{"Jo\u0308rg", "Anerkennung_J\u00f6rg_2025-03-07.docx"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, OutputName(tt.name, genDate))
		})
	}
}

func TestViewerCommand(t *testing.T) {
	name, args := viewerCommand("darwin", "/tmp/a.docx")
	assert.Equal(t, "open", name)
	assert.Equal(t, []string{"/tmp/a.docx"}, args)

	name, args = viewerCommand("windows", `C:\a.docx`)
	assert.Equal(t, "rundll32", name)
	assert.Equal(t, []string{"url.dll,FileProtocolHandler", `C:\a.docx`}, args)

	name, _ = viewerCommand("linux", "/tmp/a.docx")
	assert.Equal(t, "xdg-open", name)
}
