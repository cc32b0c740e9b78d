// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pdiddy/docx2pdf/internal/docx"
	"github.com/pdiddy/docx2pdf/internal/office"
	"github.com/pdiddy/docx2pdf/internal/pandoc"
	"github.com/pdiddy/docx2pdf/internal/render"
	"github.com/pdiddy/docx2pdf/pkg/types"
)

// OfficeBackend exports through an office-automation session (Word on
// Windows). Every call opens and releases its own session.
type OfficeBackend struct {
	Open office.Opener
}

// NewOfficeBackend returns an OfficeBackend using the platform session.
func NewOfficeBackend() *OfficeBackend {
	return &OfficeBackend{Open: office.NewSession}
}

func (b *OfficeBackend) Method() types.Method { return types.MethodNativeOffice }

func (b *OfficeBackend) Convert(input, output string) error {
	abs, err := filepath.Abs(input)
	if err != nil {
		return err
	}
	return writeAtomic(output, func(tmp string) error {
		return office.ExportPDF(b.Open, abs, tmp)
	})
}

// PandocBackend hands the whole conversion to pandoc.
type PandocBackend struct {
	Runner pandoc.Runner
}

func (b *PandocBackend) Method() types.Method { return types.MethodPandocPipeline }

func (b *PandocBackend) Convert(input, output string) error {
	if _, err := os.Stat(input); err != nil {
		return err
	}
	return writeAtomic(output, func(tmp string) error {
		return b.Runner.ConvertFile(input, "pdf", tmp)
	})
}

// RendererBackend draws paragraph text onto plain pages. It is lossy:
// styles, images, tables and headers are dropped and long paragraphs are
// not wrapped.
type RendererBackend struct {
	Geometry render.Geometry

	// NewCanvas opens a canvas that saves to path.
	NewCanvas func(path string, fontSize float64) render.Canvas
}

// NewRendererBackend returns a RendererBackend drawing PDFs with g.
func NewRendererBackend(g render.Geometry) *RendererBackend {
	return &RendererBackend{
		Geometry: g,
		NewCanvas: func(path string, fontSize float64) render.Canvas {
			return render.NewPDFCanvas(path, fontSize)
		},
	}
}

func (b *RendererBackend) Method() types.Method { return types.MethodBasicRenderer }

func (b *RendererBackend) Convert(input, output string) error {
	paragraphs, err := docx.Paragraphs(input)
	if err != nil {
		return err
	}
	return writeAtomic(output, func(tmp string) error {
		_, err := render.Draw(b.NewCanvas(tmp, b.Geometry.FontSize), paragraphs, b.Geometry)
		return err
	})
}

const outputMode = 0o644

// writeAtomic lets write fill a temporary sibling of output and renames it
// into place only when write succeeds, so a failed conversion never leaves
// a partial file at output.
func writeAtomic(output string, write func(tmp string) error) error {
	dir := filepath.Dir(output)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}
	f, err := os.CreateTemp(dir, ".docx2pdf-*"+filepath.Ext(output))
	if err != nil {
		return fmt.Errorf("creating temporary output: %w", err)
	}
	tmp := f.Name()
	f.Close()

	if err := write(tmp); err != nil {
		os.Remove(tmp)
		return err
	}
	// CreateTemp makes the file owner-only; outputs get the usual file mode.
	if err := os.Chmod(tmp, outputMode); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("setting output mode: %w", err)
	}
	if err := os.Rename(tmp, output); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("moving output into place: %w", err)
	}
	return nil
}
