package docx

import (
	"errors"
	"strings"

	"github.com/beevik/etree"
)

// ErrRowIndex is returned when removing a row that does not exist.
var ErrRowIndex = errors.New("docx: row index out of range")

// Paragraph is a w:p element.
type Paragraph struct{ el *etree.Element }

// Run is a w:r element, the unit that carries character formatting.
type Run struct{ el *etree.Element }

// Table is a w:tbl element.
type Table struct{ el *etree.Element }

// Row is a w:tr element.
type Row struct{ el *etree.Element }

// Cell is a w:tc element.
type Cell struct{ el *etree.Element }

// Paragraphs returns the top-level body paragraphs.
func (d *Document) Paragraphs() []*Paragraph {
	var out []*Paragraph
	for _, el := range wChildren(d.body, "p") {
		out = append(out, &Paragraph{el: el})
	}
	return out
}

// Tables returns the top-level body tables.
func (d *Document) Tables() []*Table {
	var out []*Table
	for _, el := range wChildren(d.body, "tbl") {
		out = append(out, &Table{el: el})
	}
	return out
}

// Runs returns the paragraph's runs, including runs inside hyperlinks.
func (p *Paragraph) Runs() []*Run {
	var out []*Run
	for _, child := range p.el.ChildElements() {
		switch {
		case isW(child, "r"):
			out = append(out, &Run{el: child})
		case isW(child, "hyperlink"):
			for _, r := range wChildren(child, "r") {
				out = append(out, &Run{el: r})
			}
		}
	}
	return out
}

// Text concatenates the text of all runs.
func (p *Paragraph) Text() string {
	var b strings.Builder
	for _, r := range p.Runs() {
		b.WriteString(r.Text())
	}
	return b.String()
}

// SetText replaces the paragraph content with a single unformatted run.
// Paragraph properties survive; run formatting does not.
func (p *Paragraph) SetText(text string) {
	for _, child := range p.el.ChildElements() {
		if !isW(child, "pPr") {
			p.el.RemoveChild(child)
		}
	}
	r := &Run{el: p.el.CreateElement("w:r")}
	r.SetText(text)
}

// AddRun appends a run with the given text.
func (p *Paragraph) AddRun(text string) *Run {
	r := &Run{el: p.el.CreateElement("w:r")}
	r.SetText(text)
	return r
}

// Text returns the run text with tabs and breaks as \t and \n.
func (r *Run) Text() string {
	var b strings.Builder
	for _, child := range r.el.ChildElements() {
		switch {
		case isW(child, "t"):
			b.WriteString(child.Text())
		case isW(child, "tab"):
			b.WriteByte('\t')
		case isW(child, "br"), isW(child, "cr"):
			b.WriteByte('\n')
		}
	}
	return b.String()
}

// SetText replaces the run's content and keeps its formatting (w:rPr).
func (r *Run) SetText(text string) {
	for _, child := range r.el.ChildElements() {
		if !isW(child, "rPr") {
			r.el.RemoveChild(child)
		}
	}

	var seg strings.Builder
	flush := func() {
		if seg.Len() == 0 {
			return
		}
		t := r.el.CreateElement("w:t")
		t.CreateAttr("xml:space", "preserve")
		t.SetText(seg.String())
		seg.Reset()
	}
	for _, c := range text {
		switch c {
		case '\t':
			flush()
			r.el.CreateElement("w:tab")
		case '\n':
			flush()
			r.el.CreateElement("w:br")
		default:
			seg.WriteRune(c)
		}
	}
	flush()
}

// Rows returns the table rows, header first.
func (t *Table) Rows() []*Row {
	var out []*Row
	for _, el := range wChildren(t.el, "tr") {
		out = append(out, &Row{el: el})
	}
	return out
}

// RemoveRow deletes the row at index i.
func (t *Table) RemoveRow(i int) error {
	rows := wChildren(t.el, "tr")
	if i < 0 || i >= len(rows) {
		return ErrRowIndex
	}
	t.el.RemoveChild(rows[i])
	return nil
}

// AddRow appends a row with one cell per text; see Cell.SetText.
func (t *Table) AddRow(cells ...string) *Row {
	row := &Row{el: t.el.CreateElement("w:tr")}
	for _, text := range cells {
		c := &Cell{el: row.el.CreateElement("w:tc")}
		c.SetText(text)
	}
	return row
}

// Cells returns the row's cells.
func (r *Row) Cells() []*Cell {
	var out []*Cell
	for _, el := range wChildren(r.el, "tc") {
		out = append(out, &Cell{el: el})
	}
	return out
}

// Text joins the cell texts with a space.
func (r *Row) Text() string {
	cells := r.Cells()
	parts := make([]string, len(cells))
	for i, c := range cells {
		parts[i] = c.Text()
	}
	return strings.Join(parts, " ")
}

// Paragraphs returns the paragraphs directly inside the cell.
func (c *Cell) Paragraphs() []*Paragraph {
	var out []*Paragraph
	for _, el := range wChildren(c.el, "p") {
		out = append(out, &Paragraph{el: el})
	}
	return out
}

// Text joins the cell's paragraph texts with newlines.
func (c *Cell) Text() string {
	paras := c.Paragraphs()
	parts := make([]string, len(paras))
	for i, p := range paras {
		parts[i] = p.Text()
	}
	return strings.Join(parts, "\n")
}

// SetText replaces the cell content with one paragraph per line of text.
// Cell properties survive; paragraph and run formatting do not. An empty
// text leaves a single empty paragraph, which a cell always needs.
func (c *Cell) SetText(text string) {
	for _, child := range c.el.ChildElements() {
		if !isW(child, "tcPr") {
			c.el.RemoveChild(child)
		}
	}
	for _, line := range strings.Split(text, "\n") {
		p := c.el.CreateElement("w:p")
		if line != "" {
			(&Paragraph{el: p}).AddRun(line)
		}
	}
}

func isW(el *etree.Element, local string) bool {
	return el.Space == "w" && el.Tag == local
}

func wChildren(el *etree.Element, local string) []*etree.Element {
	var out []*etree.Element
	for _, child := range el.ChildElements() {
		if isW(child, local) {
			out = append(out, child)
		}
	}
	return out
}
