// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/docx2pdf/internal/pdfinfo"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect [file.pdf]",
	Short: "Validate a PDF and print its pages and text",
	Long: `Inspect validates a PDF, prints its page count and, with --text, the
text of every page grouped into lines from the top of the page down. Useful
for checking what a conversion produced.`,
	Args: cobra.ExactArgs(1),
	RunE: runInspect,
}

func init() {
	inspectCmd.Flags().Bool("text", false, "print the text of every page")
	inspectCmd.Flags().Bool("json", false, "output as JSON")

	rootCmd.AddCommand(inspectCmd)
}

func runInspect(cmd *cobra.Command, args []string) error {
	withText, _ := cmd.Flags().GetBool("text")
	jsonOutput, _ := cmd.Flags().GetBool("json")

	var (
		info pdfinfo.Info
		err  error
	)
	if withText || jsonOutput {
		info, err = pdfinfo.Inspect(args[0])
	} else {
		var n int
		n, err = pdfinfo.PageCount(args[0])
		info = pdfinfo.Info{Path: args[0], PageCount: n}
	}
	if err != nil {
		return err
	}
	return formatInspect(os.Stdout, info, withText, jsonOutput)
}

func formatInspect(w io.Writer, info pdfinfo.Info, withText, jsonOutput bool) error {
	if jsonOutput {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(info)
	}
	fmt.Fprintf(w, "%s: %d page(s)\n", info.Path, info.PageCount)
	if !withText {
		return nil
	}
	for _, p := range info.Pages {
		fmt.Fprintf(w, "\n--- page %d ---\n", p.Number)
		for _, l := range p.Lines {
			fmt.Fprintf(w, "%7.1f  %s\n", l.Y, l.Text)
		}
	}
	return nil
}
