// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pdfinfo

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/jung-kurt/gofpdf"
	"github.com/ledongthuc/pdf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writePDF writes a PDF with one page per entry of pages, each line drawn
// at the given distance from the bottom of the page.
func writePDF(t *testing.T, pages [][]Line) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "doc.pdf")
	f := gofpdf.New("P", "pt", "A4", "")
	f.SetFont("Helvetica", "", 12)
	_, h := f.GetPageSize()
	for _, lines := range pages {
		f.AddPage()
		for _, l := range lines {
			f.Text(50, h-l.Y, l.Text)
		}
	}
	require.NoError(t, f.OutputFileAndClose(path))
	return path
}

func TestPageCount(t *testing.T) {
	path := writePDF(t, [][]Line{{{Y: 800, Text: "one"}}, {{Y: 800, Text: "two"}}, nil})
	n, err := PageCount(path)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
}

func TestPageCount_NotAPDF(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fake.pdf")
	require.NoError(t, os.WriteFile(path, []byte("%PDF-fake"), 0o644))
	_, err := PageCount(path)
	assert.Error(t, err)
}

func TestInspect(t *testing.T) {
	path := writePDF(t, [][]Line{
		{{Y: 780, Text: "World"}, {Y: 800, Text: "Hello"}},
		{{Y: 800, Text: "Again"}},
	})

	info, err := Inspect(path)
	require.NoError(t, err)
	assert.Equal(t, path, info.Path)
	assert.Equal(t, 2, info.PageCount)
	require.Len(t, info.Pages, 2)
	assert.Equal(t, 1, info.Pages[0].Number)
	require.Len(t, info.Pages[0].Lines, 2)
	assert.Equal(t, "Hello", info.Pages[0].Lines[0].Text)
	assert.InDelta(t, 800, info.Pages[0].Lines[0].Y, 0.5)
	assert.Equal(t, []string{"Hello", "World", "Again"}, info.Text())
}

func TestGroupLines(t *testing.T) {
	texts := []pdf.Text{
		{Y: 780, S: "Wor"},
		{Y: 800.001, S: "Hel"},
		{Y: 780, S: "ld"},
		{Y: 800.004, S: "lo"},
	}
	assert.Equal(t, []Line{{Y: 800, Text: "Hello"}, {Y: 780, Text: "World"}}, groupLines(texts))
	assert.Empty(t, groupLines(nil))
}
