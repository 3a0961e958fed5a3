// Package docx is a paragraph/table model over a WordprocessingML (.docx)
// package. Only word/document.xml is parsed; every other part is carried
// through unchanged.
package docx

import (
	"archive/zip"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/beevik/etree"
)

const documentPart = "word/document.xml"

// ErrNoDocumentPart is returned for a zip that is not a Word document.
var ErrNoDocumentPart = errors.New("docx: word/document.xml not found")

type part struct {
	name     string
	modified time.Time
	data     []byte
}

// Document is an editable .docx package.
type Document struct {
	parts []part
	xml   *etree.Document
	body  *etree.Element
}

// Open reads the .docx file at path.
func Open(path string) (*Document, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Read(bytes.NewReader(raw), int64(len(raw)))
}

// Read parses a .docx package.
func Read(r io.ReaderAt, size int64) (*Document, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return nil, fmt.Errorf("open zip: %w", err)
	}

	d := &Document{}
	var docXML []byte
	for _, f := range zr.File {
		if f == nil {
			continue
		}
		data, err := readZipFile(f)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", f.Name, err)
		}
		d.parts = append(d.parts, part{name: f.Name, modified: f.Modified, data: data})
		if strings.EqualFold(f.Name, documentPart) {
			docXML = data
		}
	}
	if docXML == nil {
		return nil, ErrNoDocumentPart
	}

	if err := d.parseDocument(docXML); err != nil {
		return nil, err
	}
	return d, nil
}

func (d *Document) parseDocument(raw []byte) error {
	x := etree.NewDocument()
	if err := x.ReadFromBytes(raw); err != nil {
		return fmt.Errorf("parse %s: %w", documentPart, err)
	}
	root := x.Root()
	if root == nil {
		return fmt.Errorf("parse %s: empty document", documentPart)
	}
	body := root.SelectElement("w:body")
	if body == nil {
		return fmt.Errorf("parse %s: missing w:body", documentPart)
	}
	d.xml = x
	d.body = body
	return nil
}

func readZipFile(f *zip.File) ([]byte, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(rc)
}

// WriteTo writes the package as a zip archive, parts in their original
// order with the document part re-serialized.
func (d *Document) WriteTo(w io.Writer) (int64, error) {
	docXML, err := d.xml.WriteToBytes()
	if err != nil {
		return 0, fmt.Errorf("serialize %s: %w", documentPart, err)
	}

	cw := &countingWriter{w: w}
	zw := zip.NewWriter(cw)
	for _, p := range d.parts {
		data := p.data
		if strings.EqualFold(p.name, documentPart) {
			data = docXML
		}
		fw, err := zw.CreateHeader(&zip.FileHeader{
			Name:     p.name,
			Method:   zip.Deflate,
			Modified: p.modified,
		})
		if err != nil {
			return cw.n, fmt.Errorf("create %s: %w", p.name, err)
		}
		if _, err := fw.Write(data); err != nil {
			return cw.n, fmt.Errorf("write %s: %w", p.name, err)
		}
	}
	if err := zw.Close(); err != nil {
		return cw.n, fmt.Errorf("close zip: %w", err)
	}
	return cw.n, nil
}

// Save writes the package to path.
func (d *Document) Save(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if _, err := d.WriteTo(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}
