// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/docx2pdf/internal/client"
	"github.com/pdiddy/docx2pdf/internal/convert"
	"github.com/pdiddy/docx2pdf/pkg/types"
)

var backendsCmd = &cobra.Command{
	Use:   "backends",
	Short: "Show which conversion backends are installed",
	Long: `Backends probes this machine (or, with --server, a running service) for
the optional conversion backends and prints which methods can be used. The
basic renderer is always available.`,
	Args: cobra.NoArgs,
	RunE: runBackends,
}

func init() {
	backendsCmd.Flags().String("server", "", "query a running service instead of this machine")
	backendsCmd.Flags().Bool("json", false, "output as JSON")
	backendsCmd.Flags().Bool("yaml", false, "output as YAML")

	rootCmd.AddCommand(backendsCmd)
}

// backendStatus is one row of the backends report.
type backendStatus struct {
	Method    types.Method `json:"method" yaml:"method"`
	Available bool         `json:"available" yaml:"available"`
}

func runBackends(cmd *cobra.Command, args []string) error {
	serverURL, _ := cmd.Flags().GetString("server")
	jsonOutput, _ := cmd.Flags().GetBool("json")
	yamlOutput, _ := cmd.Flags().GetBool("yaml")

	var caps types.Capabilities
	if serverURL != "" {
		c, err := client.New(serverURL, cfg.Client, logger).Backends(context.Background())
		if err != nil {
			return err
		}
		caps = c
	} else {
		caps, _ = convert.DetectCapabilities(cfg.Conversion, logger)
	}

	rows := make([]backendStatus, 0, len(types.Methods())-1)
	for _, m := range types.Methods() {
		if m == types.MethodAuto {
			continue
		}
		rows = append(rows, backendStatus{Method: m, Available: caps.Available(m)})
	}
	return formatBackends(os.Stdout, rows, jsonOutput, yamlOutput)
}

func formatBackends(w io.Writer, rows []backendStatus, jsonOutput, yamlOutput bool) error {
	switch {
	case jsonOutput:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(rows)
	case yamlOutput:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		defer enc.Close()
		return enc.Encode(rows)
	}

	fmt.Fprintf(w, "%-16s  %s\n", "Method", "Available")
	fmt.Fprintln(w, strings.Repeat("-", 27))
	for _, r := range rows {
		avail := "no"
		if r.Available {
			avail = "yes"
		}
		fmt.Fprintf(w, "%-16s  %s\n", r.Method, avail)
	}
	return nil
}
