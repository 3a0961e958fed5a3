package docx

import (
	"archive/zip"
	"bytes"
	"path/filepath"
	"testing"

	"github.com/beevik/etree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func roundTrip(t *testing.T, d *Document) *Document {
	t.Helper()
	var buf bytes.Buffer
	_, err := d.WriteTo(&buf)
	require.NoError(t, err)
	out, err := Read(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	require.NoError(t, err)
	return out
}

func TestBuildAndRoundTrip(t *testing.T) {
	d := New()
	d.AddParagraph("Hello ", "{Na", "me}")
	d.AddTable(
		[]string{"Studienleistungen", "Anerkannt als", "Note"},
		[]string{"", "MA4DSC1001 Elements of Mathematics", "Note"},
	)

	got := roundTrip(t, d)

	paras := got.Paragraphs()
	require.Len(t, paras, 1)
	assert.Equal(t, "Hello {Name}", paras[0].Text())
	assert.Len(t, paras[0].Runs(), 3)

	tables := got.Tables()
	require.Len(t, tables, 1)
	rows := tables[0].Rows()
	require.Len(t, rows, 2)
	assert.Equal(t, "Studienleistungen Anerkannt als Note", rows[0].Text())
	cells := rows[1].Cells()
	require.Len(t, cells, 3)
	assert.Equal(t, "", cells[0].Text())
	assert.Len(t, cells[0].Paragraphs(), 1)
}

func TestRunSetTextKeepsFormatting(t *testing.T) {
	d := New()
	p := d.AddParagraph("plain")
	r := p.Runs()[0]
	rPr := etree.NewElement("w:rPr")
	rPr.CreateElement("w:b")
	r.el.InsertChildAt(0, rPr)

	r.SetText("bold\ttext\nnext")
	assert.Equal(t, "bold\ttext\nnext", r.Text())
	assert.NotNil(t, r.el.SelectElement("w:rPr"), "run properties must survive")
	assert.NotNil(t, r.el.SelectElement("w:tab"))
	assert.NotNil(t, r.el.SelectElement("w:br"))
}

func TestParagraphSetTextCollapsesRuns(t *testing.T) {
	d := New()
	p := d.AddParagraph("a", "b", "c")
	p.el.InsertChildAt(0, etree.NewElement("w:pPr"))

	p.SetText("xyz")
	assert.Equal(t, "xyz", p.Text())
	assert.Len(t, p.Runs(), 1)
	assert.NotNil(t, p.el.SelectElement("w:pPr"))
}

func TestCellSetText(t *testing.T) {
	d := New()
	tbl := d.AddTable([]string{"a", "b"})
	c := tbl.Rows()[0].Cells()[0]

	c.SetText("line one\nline two")
	assert.Len(t, c.Paragraphs(), 2)
	assert.Equal(t, "line one\nline two", c.Text())

	c.SetText("")
	assert.Len(t, c.Paragraphs(), 1)
	assert.Equal(t, "", c.Text())
}

func TestRemoveRow(t *testing.T) {
	d := New()
	tbl := d.AddTable([]string{"h"}, []string{"1"}, []string{"2"}, []string{"3"})

	require.NoError(t, tbl.RemoveRow(2))
	rows := tbl.Rows()
	require.Len(t, rows, 3)
	assert.Equal(t, "3", rows[2].Text())

	assert.ErrorIs(t, tbl.RemoveRow(3), ErrRowIndex)
	assert.ErrorIs(t, tbl.RemoveRow(-1), ErrRowIndex)
}

func TestHyperlinkRunsCount(t *testing.T) {
	d := New()
	p := d.AddParagraph("see ")
	link := p.el.CreateElement("w:hyperlink")
	(&Paragraph{el: link}).AddRun("here")

	assert.Equal(t, "see here", p.Text())
	assert.Len(t, p.Runs(), 2)
}

func TestAddParagraphBeforeSectionProperties(t *testing.T) {
	d := New()
	d.body.CreateElement("w:sectPr")
	d.AddParagraph("body text")

	children := d.body.ChildElements()
	require.Len(t, children, 2)
	assert.Equal(t, "p", children[0].Tag)
	assert.Equal(t, "sectPr", children[1].Tag)
}

func TestSaveAndOpen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.docx")
	d := New()
	d.AddParagraph("Ü ä ß & <tags>")
	require.NoError(t, d.Save(path))

	got, err := Open(path)
	require.NoError(t, err)
	assert.Equal(t, "Ü ä ß & <tags>", got.Paragraphs()[0].Text())

	zr, err := zip.OpenReader(path)
	require.NoError(t, err)
	defer zr.Close()
	var names []string
	for _, f := range zr.File {
		names = append(names, f.Name)
	}
	assert.Equal(t, []string{"[Content_Types].xml", "_rels/.rels", "word/document.xml"}, names)
}

func TestReadRejectsNonDocx(t *testing.T) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("hello.txt")
	require.NoError(t, err)
	_, _ = w.Write([]byte("hi"))
	require.NoError(t, zw.Close())

	_, err = Read(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	assert.ErrorIs(t, err, ErrNoDocumentPart)

	_, err = Read(bytes.NewReader([]byte("not a zip")), 9)
	assert.Error(t, err)
}
