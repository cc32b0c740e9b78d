// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/pdiddy/docx2pdf/internal/convert"
	"github.com/pdiddy/docx2pdf/internal/history"
	"github.com/pdiddy/docx2pdf/pkg/types"
)

var convertCmd = &cobra.Command{
	Use:   "convert [files...]",
	Short: "Convert DOCX files to PDF",
	Long: `Convert turns each DOCX file into a PDF with the requested method:

  auto            best installed backend: nativeOffice, then pandocPipeline,
                  then basicRenderer
  nativeOffice    Microsoft Word through COM automation (Windows only)
  pandocPipeline  pandoc, as a local binary or a container image
  basicRenderer   built-in renderer, always available

The basic renderer is lossy: it writes one line of plain text per paragraph
and drops styles, images, tables, headers and footers. Long paragraphs are
not wrapped.

An explicitly requested backend that is not installed fails instead of
falling back. Existing PDFs are overwritten unless --skip-existing is set.`,
	Args: cobra.MinimumNArgs(1),
	Annotations: map[string]string{
		"method":  "conversion.method",
		"out-dir": "conversion.output_dir",
	},
	RunE: runConvert,
}

func init() {
	convertCmd.Flags().String("method", "auto", "conversion method: auto, nativeOffice, pandocPipeline, basicRenderer")
	convertCmd.Flags().String("out-dir", "outputs", "directory receiving the PDFs")
	convertCmd.Flags().StringP("output", "o", "", "output PDF path (single input only)")
	convertCmd.Flags().Bool("skip-existing", false, "leave inputs alone whose PDF already exists")
	convertCmd.Flags().Bool("no-history", false, "do not record conversions in the history database")

	rootCmd.AddCommand(convertCmd)
}

func runConvert(cmd *cobra.Command, args []string) error {
	output, _ := cmd.Flags().GetString("output")
	skip, _ := cmd.Flags().GetBool("skip-existing")
	noHistory, _ := cmd.Flags().GetBool("no-history")

	if output != "" && len(args) > 1 {
		return fmt.Errorf("--output takes a single input, got %d", len(args))
	}

	d := convert.NewDefault(cfg.Conversion, logger)
	if !noHistory {
		if store := openHistory(); store != nil {
			defer store.Close()
			d.Recorder = store
		}
	}

	if output != "" {
		res, err := d.Run(types.ConversionRequest{
			InputPath:  args[0],
			OutputPath: output,
			Method:     cfg.Conversion.Method,
		})
		if err != nil {
			return err
		}
		fmt.Fprintf(os.Stdout, "converted: %s -> %s (%s, %d pages)\n", args[0], output, res.Backend, res.Pages)
		return nil
	}

	opts := convert.BatchOptions{
		OutDir:       cfg.Conversion.OutputDir,
		Method:       cfg.Conversion.Method,
		SkipExisting: skip,
	}
	result := convert.ConvertBatch(d, args, opts, os.Stdout)
	if result.HasFailures() {
		return fmt.Errorf("%d document(s) failed conversion", result.Failed)
	}
	return nil
}

// openHistory opens the history store, or returns nil when history is
// disabled or unavailable. Conversions never fail because of history.
func openHistory() *history.Store {
	if cfg.History.Dir == "" {
		return nil
	}
	store, err := history.NewStore(cfg.History)
	if err != nil {
		logger.Warn("history disabled", zap.Error(err))
		return nil
	}
	return store
}
