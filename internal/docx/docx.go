// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package docx reads the body paragraphs of a Word document as plain text
// and writes minimal documents from plain paragraphs.
//
// Only paragraphs that are direct children of the document body are read.
// Run formatting, images, text boxes and tables are dropped.
package docx

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	godocx "github.com/fumiama/go-docx"
)

// ErrNoDocumentPart is returned when the archive has no word/document.xml.
var ErrNoDocumentPart = errors.New("docx: missing word/document.xml")

// Paragraphs opens the .docx file at path and returns its body paragraphs
// in document order.
func Paragraphs(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	paras, err := Read(f, info.Size())
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return paras, nil
}

// Read parses a .docx archive of the given size. Each body paragraph yields
// one string: the concatenation of its text runs, hyperlinks included, with
// tabs as '\t' and line breaks as '\n'. Empty paragraphs yield "".
func Read(r io.ReaderAt, size int64) ([]string, error) {
	doc, err := godocx.Parse(r, size)
	if err != nil {
		return nil, fmt.Errorf("parsing document: %w", err)
	}
	// The parser leaves the document name unset when the part is absent.
	if doc.Document.XMLName.Local == "" {
		return nil, ErrNoDocumentPart
	}

	var paras []string
	for _, item := range doc.Document.Body.Items {
		p, ok := item.(*godocx.Paragraph)
		if !ok {
			continue
		}
		var b strings.Builder
		for _, child := range p.Children {
			switch c := child.(type) {
			case *godocx.Run:
				writeRun(&b, c)
			case *godocx.Hyperlink:
				writeRun(&b, &c.Run)
			}
		}
		paras = append(paras, b.String())
	}
	return paras, nil
}

func writeRun(b *strings.Builder, r *godocx.Run) {
	for _, child := range r.Children {
		switch c := child.(type) {
		case *godocx.Text:
			b.WriteString(c.Text)
		case *godocx.Tab:
			b.WriteByte('\t')
		case *godocx.BarterRabbet:
			b.WriteByte('\n')
		}
	}
}

// Write creates a minimal A4 .docx at path holding one plain paragraph per
// element of paragraphs. An existing file is truncated.
func Write(path string, paragraphs []string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := WriteTo(f, paragraphs); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return f.Close()
}

// WriteTo writes a minimal .docx archive to w.
func WriteTo(w io.Writer, paragraphs []string) error {
	doc := godocx.New().WithDefaultTheme()
	for _, p := range paragraphs {
		para := doc.AddParagraph()
		if p != "" {
			para.AddText(p)
		}
	}
	// Section properties close the body, after every paragraph.
	doc.WithA4Page()
	_, err := doc.WriteTo(w)
	return err
}
