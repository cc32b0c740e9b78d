// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package render

import (
	"fmt"

	"github.com/jung-kurt/gofpdf"
)

// Canvas is a drawing surface with an implicit first page.
type Canvas interface {
	// DrawText draws s with its baseline at (x, y), origin bottom-left.
	DrawText(x, y float64, s string)

	// NewPage ends the current page and starts the next one.
	NewPage()

	// Save writes all pages and releases the canvas.
	Save() error
}

// Draw lays out paragraphs with g and draws them on c, then saves c.
// It returns the number of pages drawn.
func Draw(c Canvas, paragraphs []string, g Geometry) (int, error) {
	if err := g.Validate(); err != nil {
		return 0, err
	}
	pages := Layout(paragraphs, g)
	for i, page := range pages {
		if i > 0 {
			c.NewPage()
		}
		for _, l := range page.Lines {
			c.DrawText(l.X, l.Y, l.Text)
		}
	}
	if err := c.Save(); err != nil {
		return 0, err
	}
	return len(pages), nil
}

// PDFCanvas is a Canvas writing an A4 PDF with the Helvetica core font.
// Text is translated from UTF-8 to cp1252; runes outside it are lost.
type PDFCanvas struct {
	pdf        *gofpdf.Fpdf
	path       string
	pageHeight float64
	tr         func(string) string
}

// NewPDFCanvas returns a canvas that writes to path on Save.
func NewPDFCanvas(path string, fontSize float64) *PDFCanvas {
	pdf := gofpdf.New("P", "pt", "A4", "")
	pdf.SetCreator("docx2pdf", true)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetFont("Helvetica", "", fontSize)
	pdf.AddPage()

	_, h := pdf.GetPageSize()
	return &PDFCanvas{
		pdf:        pdf,
		path:       path,
		pageHeight: h,
		tr:         pdf.UnicodeTranslatorFromDescriptor(""),
	}
}

func (c *PDFCanvas) DrawText(x, y float64, s string) {
	c.pdf.Text(x, c.pageHeight-y, c.tr(s))
}

func (c *PDFCanvas) NewPage() {
	c.pdf.AddPage()
}

func (c *PDFCanvas) Save() error {
	if err := c.pdf.OutputFileAndClose(c.path); err != nil {
		return fmt.Errorf("writing PDF %s: %w", c.path, err)
	}
	return nil
}
