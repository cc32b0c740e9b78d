// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pdiddy/docx2pdf/pkg/types"
)

// BatchOptions controls a batch conversion run.
type BatchOptions struct {
	// OutDir receives <name>.pdf for every input <name>.docx.
	OutDir string

	// Method is passed to the dispatcher for every file.
	Method types.Method

	// SkipExisting leaves inputs alone whose PDF already exists. By default
	// existing output is overwritten.
	SkipExisting bool
}

// BatchResult holds the outcome of a batch conversion run.
type BatchResult struct {
	Converted int
	Skipped   int
	Failed    int
}

// Total returns the total number of documents processed.
func (r BatchResult) Total() int {
	return r.Converted + r.Skipped + r.Failed
}

// HasFailures reports whether any document failed conversion.
func (r BatchResult) HasFailures() bool {
	return r.Failed > 0
}

// OutputPath returns the PDF path for input under outDir. An empty outDir
// places the PDF next to the input.
func OutputPath(input, outDir string) string {
	base := strings.TrimSuffix(filepath.Base(input), filepath.Ext(input))
	if outDir == "" {
		outDir = filepath.Dir(input)
	}
	return filepath.Join(outDir, base+".pdf")
}

// ConvertFile converts one document and prints a status line to w.
func ConvertFile(d *Dispatcher, input string, opts BatchOptions, w io.Writer) types.ConversionStatus {
	name := filepath.Base(input)
	output := OutputPath(input, opts.OutDir)

	if !strings.EqualFold(filepath.Ext(input), ".docx") {
		fmt.Fprintf(w, "failed:    %s (not a DOCX file)\n", name)
		return types.ConversionFailed
	}
	if opts.SkipExisting {
		if _, err := os.Stat(output); err == nil {
			fmt.Fprintf(w, "skipped:   %s (already exists)\n", name)
			return types.ConversionNone
		}
	}

	res, err := d.Run(types.ConversionRequest{InputPath: input, OutputPath: output, Method: opts.Method})
	status := res.Status()
	if status == types.ConversionFailed {
		fmt.Fprintf(w, "failed:    %s (%v)\n", name, err)
		return status
	}
	fmt.Fprintf(w, "converted: %s -> %s (%s, %d pages)\n", name, output, res.Backend, res.Pages)
	return status
}

// ConvertBatch converts inputs one after another, printing per-file status
// to w and returning a summary.
func ConvertBatch(d *Dispatcher, inputs []string, opts BatchOptions, w io.Writer) BatchResult {
	var result BatchResult
	for _, in := range inputs {
		switch ConvertFile(d, in, opts, w) {
		case types.ConversionDone:
			result.Converted++
		case types.ConversionNone:
			result.Skipped++
		case types.ConversionFailed:
			result.Failed++
		}
	}
	fmt.Fprintf(w, "\nBatch summary: %d converted, %d skipped, %d failed (total: %d)\n",
		result.Converted, result.Skipped, result.Failed, result.Total())
	return result
}
