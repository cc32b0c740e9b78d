// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/pdiddy/docx2pdf/internal/convert"
	"github.com/pdiddy/docx2pdf/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP upload service",
	Long: `Serve starts an HTTP service with an upload form at /. POST a DOCX file
as the multipart field "file" (and optionally "method") to /convert to get
the PDF back as an attachment. /backends reports the installed backends and
/health the number of conversions in flight.

At most --max-concurrent conversions run at once; further uploads are
answered with 429 and a Retry-After header.`,
	Args: cobra.NoArgs,
	Annotations: map[string]string{
		"addr":           "server.addr",
		"upload-dir":     "server.upload_dir",
		"output-dir":     "server.output_dir",
		"max-concurrent": "server.max_concurrent",
		"max-upload":     "server.max_upload_bytes",
	},
	RunE: runServe,
}

func init() {
	serveCmd.Flags().String("addr", ":5000", "listen address")
	serveCmd.Flags().String("upload-dir", "uploads", "directory for uploaded documents")
	serveCmd.Flags().String("output-dir", "outputs", "directory for converted PDFs")
	serveCmd.Flags().Int64("max-concurrent", 4, "maximum conversions running at once")
	serveCmd.Flags().Int64("max-upload", 20<<20, "maximum upload size in bytes")

	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	gin.SetMode(gin.ReleaseMode)

	d := convert.NewDefault(cfg.Conversion, logger)
	if store := openHistory(); store != nil {
		defer store.Close()
		d.Recorder = store
	}

	srv, err := server.New(cfg.Server, d, logger)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return srv.ListenAndServe(ctx)
}
