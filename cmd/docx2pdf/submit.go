// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/docx2pdf/internal/client"
	"github.com/pdiddy/docx2pdf/internal/convert"
)

var submitCmd = &cobra.Command{
	Use:   "submit [file]",
	Short: "Convert a DOCX file on a running docx2pdf service",
	Long: `Submit uploads a DOCX file to a docx2pdf service started with serve and
saves the returned PDF. When the service is busy (HTTP 429) the upload is
retried, waiting as long as the service's Retry-After asks.`,
	Args: cobra.ExactArgs(1),
	Annotations: map[string]string{
		"method":      "conversion.method",
		"timeout":     "client.timeout",
		"max-retries": "client.max_retries",
	},
	RunE: runSubmit,
}

func init() {
	submitCmd.Flags().String("server", "http://localhost:5000", "base URL of the docx2pdf service")
	submitCmd.Flags().String("method", "auto", "conversion method requested from the service")
	submitCmd.Flags().StringP("output", "o", "", "output PDF path (default: next to the input)")
	submitCmd.Flags().Duration("timeout", 0, "HTTP request timeout")
	submitCmd.Flags().Int("max-retries", 0, "retries while the service is busy")

	rootCmd.AddCommand(submitCmd)
}

func runSubmit(cmd *cobra.Command, args []string) error {
	serverURL, _ := cmd.Flags().GetString("server")
	output, _ := cmd.Flags().GetString("output")
	if output == "" {
		output = convert.OutputPath(args[0], "")
	}

	c := client.New(serverURL, cfg.Client, logger)
	if err := c.Submit(context.Background(), args[0], output, cfg.Conversion.Method); err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "converted: %s -> %s\n", args[0], output)
	return nil
}
