// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/pdiddy/docx2pdf/internal/history"
	"github.com/pdiddy/docx2pdf/pkg/types"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List or export recorded conversions",
	Long: `History lists recent conversions recorded by convert and serve, newest
first. Use --export yaml or --export json to write every matching entry to
the history directory, or --summary for counts per outcome and backend.`,
	Args: cobra.NoArgs,
	Annotations: map[string]string{
		"limit": "history.max_results",
	},
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().Int("limit", 20, "maximum number of entries listed")
	historyCmd.Flags().Bool("failed", false, "only failed conversions")
	historyCmd.Flags().String("backend", "", "only conversions run by this backend")
	historyCmd.Flags().String("export", "", "export matching entries: yaml or json")
	historyCmd.Flags().Bool("summary", false, "print counts per outcome and backend")
	historyCmd.Flags().Bool("json", false, "output as JSON")

	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	failed, _ := cmd.Flags().GetBool("failed")
	backend, _ := cmd.Flags().GetString("backend")
	exportFormat, _ := cmd.Flags().GetString("export")
	summary, _ := cmd.Flags().GetBool("summary")
	jsonOutput, _ := cmd.Flags().GetBool("json")

	if cfg.History.Dir == "" {
		return fmt.Errorf("history is disabled (history.dir is empty)")
	}
	store, err := history.NewStore(cfg.History)
	if err != nil {
		return err
	}
	defer store.Close()

	ctx := context.Background()
	q := history.Query{Backend: types.Method(backend), FailedOnly: failed}

	switch {
	case exportFormat != "":
		path, err := store.ExportFile(ctx, q, strings.ToLower(exportFormat))
		if err != nil {
			return err
		}
		fmt.Fprintf(os.Stdout, "exported: %s\n", path)
		return nil
	case summary:
		s, err := store.Summarize(ctx)
		if err != nil {
			return err
		}
		return formatSummary(os.Stdout, s, jsonOutput)
	}

	entries, err := store.List(ctx, q)
	if err != nil {
		return err
	}
	return formatHistory(os.Stdout, entries, jsonOutput)
}

func formatHistory(w io.Writer, entries []history.Entry, jsonOutput bool) error {
	if jsonOutput {
		if entries == nil {
			entries = []history.Entry{}
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(entries)
	}

	if len(entries) == 0 {
		fmt.Fprintln(w, "No conversions recorded.")
		return nil
	}

	fmt.Fprintf(w, "%-20s  %-7s  %-14s  %-14s  %-5s  %-8s  %s\n",
		"Time", "Status", "Method", "Backend", "Pages", "Duration", "Input")
	fmt.Fprintln(w, strings.Repeat("-", 100))
	for _, e := range entries {
		status := "ok"
		if !e.Success {
			status = "failed"
		}
		backend := string(e.Backend)
		if backend == "" {
			backend = "-"
		}
		fmt.Fprintf(w, "%-20s  %-7s  %-14s  %-14s  %-5d  %-8s  %s\n",
			e.RecordedAt.Local().Format("2006-01-02 15:04:05"), status, e.Method, backend,
			e.Pages, e.Duration.Round(time.Millisecond), e.Input)
		if e.Error != "" {
			fmt.Fprintf(w, "%20s  error: %s\n", "", e.Error)
		}
	}
	fmt.Fprintf(w, "\n%d entries\n", len(entries))
	return nil
}

func formatSummary(w io.Writer, s history.Summary, jsonOutput bool) error {
	if jsonOutput {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(s)
	}
	fmt.Fprintf(w, "Total: %d (%d succeeded, %d failed)\n", s.Total, s.Succeeded, s.Failed)
	for _, m := range types.Methods() {
		if n, ok := s.ByBackend[m]; ok {
			fmt.Fprintf(w, "  %-16s %d\n", m, n)
		}
	}
	return nil
}
