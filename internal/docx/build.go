package docx

import (
	"time"

	"github.com/beevik/etree"
)

const (
	contentTypesXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types"><Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/><Default Extension="xml" ContentType="application/xml"/><Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/></Types>`

	relsXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships"><Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="word/document.xml"/></Relationships>`

	emptyDocumentXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body/></w:document>`
)

// New returns an empty but valid document package.
func New() *Document {
	now := time.Now()
	d := &Document{
		parts: []part{
			{name: "[Content_Types].xml", modified: now, data: []byte(contentTypesXML)},
			{name: "_rels/.rels", modified: now, data: []byte(relsXML)},
			{name: documentPart, modified: now, data: []byte(emptyDocumentXML)},
		},
	}
	if err := d.parseDocument([]byte(emptyDocumentXML)); err != nil {
		panic("docx: built-in document does not parse: " + err.Error())
	}
	return d
}

// AddParagraph appends a body paragraph with one run per text. Splitting
// text over several runs mimics formatting boundaries in real templates.
func (d *Document) AddParagraph(runs ...string) *Paragraph {
	p := &Paragraph{el: etree.NewElement("w:p")}
	d.appendBody(p.el)
	for _, text := range runs {
		p.AddRun(text)
	}
	return p
}

// AddTable appends a body table; rows[0] is the header row.
func (d *Document) AddTable(rows ...[]string) *Table {
	t := &Table{el: etree.NewElement("w:tbl")}
	d.appendBody(t.el)
	for _, cells := range rows {
		t.AddRow(cells...)
	}
	return t
}

// appendBody adds el to the body, keeping the section properties last.
func (d *Document) appendBody(el *etree.Element) {
	if sect := lastChild(d.body, "sectPr"); sect != nil {
		d.body.InsertChildAt(sect.Index(), el)
		return
	}
	d.body.AddChild(el)
}

func lastChild(el *etree.Element, local string) *etree.Element {
	children := wChildren(el, local)
	if len(children) == 0 {
		return nil
	}
	return children[len(children)-1]
}
