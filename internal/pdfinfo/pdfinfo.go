// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pdfinfo validates converted PDFs and reads back their text.
// Validation and page counts come from pdfcpu; text positions come from
// ledongthuc/pdf.
package pdfinfo

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
)

func init() {
	// Keep pdfcpu from creating a configuration directory under $HOME.
	api.DisableConfigDir()
}

// Line is a run of text sharing one baseline. Y is in points from the
// bottom of the page.
type Line struct {
	Y    float64 `json:"y" yaml:"y"`
	Text string  `json:"text" yaml:"text"`
}

// Page holds the lines of one page, top to bottom.
type Page struct {
	Number int    `json:"number" yaml:"number"`
	Lines  []Line `json:"lines" yaml:"lines"`
}

// Info describes a PDF file.
type Info struct {
	Path      string `json:"path" yaml:"path"`
	PageCount int    `json:"page_count" yaml:"page_count"`
	Pages     []Page `json:"pages,omitempty" yaml:"pages,omitempty"`
}

// PageCount validates the PDF at path and returns its page count.
func PageCount(path string) (int, error) {
	if err := api.ValidateFile(path, nil); err != nil {
		return 0, fmt.Errorf("validating %s: %w", path, err)
	}
	n, err := api.PageCountFile(path)
	if err != nil {
		return 0, fmt.Errorf("counting pages of %s: %w", path, err)
	}
	return n, nil
}

// Inspect validates the PDF at path and extracts the text of every page,
// grouped into lines by baseline.
func Inspect(path string) (Info, error) {
	n, err := PageCount(path)
	if err != nil {
		return Info{}, err
	}
	pages, err := readPages(path)
	if err != nil {
		return Info{}, err
	}
	return Info{Path: path, PageCount: n, Pages: pages}, nil
}

// Text returns the text of every page, one string per line.
func (i Info) Text() []string {
	var out []string
	for _, p := range i.Pages {
		for _, l := range p.Lines {
			out = append(out, l.Text)
		}
	}
	return out
}

func readPages(path string) (pages []Page, err error) {
	// The reader panics on some malformed content streams.
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("reading text of %s: %v", path, r)
		}
	}()

	f, r, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	for i := 1; i <= r.NumPage(); i++ {
		p := r.Page(i)
		page := Page{Number: i}
		if !p.V.IsNull() {
			page.Lines = groupLines(p.Content().Text)
		}
		pages = append(pages, page)
	}
	return pages, nil
}

// groupLines joins glyph runs that share a baseline, highest line first.
func groupLines(texts []pdf.Text) []Line {
	byY := make(map[float64]*strings.Builder)
	var ys []float64
	for _, t := range texts {
		y := math.Round(t.Y*100) / 100
		b, ok := byY[y]
		if !ok {
			b = &strings.Builder{}
			byY[y] = b
			ys = append(ys, y)
		}
		b.WriteString(t.S)
	}
	sort.Sort(sort.Reverse(sort.Float64Slice(ys)))

	lines := make([]Line, 0, len(ys))
	for _, y := range ys {
		lines = append(lines, Line{Y: y, Text: byY[y].String()})
	}
	return lines
}
