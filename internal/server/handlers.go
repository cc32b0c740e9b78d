// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package server

import (
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/pdiddy/docx2pdf/pkg/types"
)

// Client-facing messages.
const (
	msgNoFile        = "No file uploaded"
	msgNoSelection   = "No selected file"
	msgInvalidType   = "Invalid file type. Please upload a DOCX file."
	msgInvalidMethod = "Invalid conversion method"
	msgFailed        = "Conversion failed"
	msgBusy          = "Server busy, retry later"
	msgTooLarge      = "File too large"
)

// retryAfterSeconds is advertised on 429 responses.
const retryAfterSeconds = "5"

type methodOption struct {
	Value     types.Method
	Available bool
}

func (s *Server) handleIndex(c *gin.Context) {
	caps := s.conv.Capabilities()
	var opts []methodOption
	for _, m := range types.Methods() {
		opts = append(opts, methodOption{
			Value:     m,
			Available: m == types.MethodAuto || m == types.MethodBasicRenderer || caps.Available(m),
		})
	}
	c.Header("Content-Type", "text/html; charset=utf-8")
	c.Status(http.StatusOK)
	if err := s.index.Execute(c.Writer, gin.H{"Methods": opts}); err != nil {
		c.Error(err)
	}
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"in_flight": s.inFlight.Load(),
	})
}

func (s *Server) handleBackends(c *gin.Context) {
	c.JSON(http.StatusOK, s.conv.Capabilities())
}

func (s *Server) handleConvert(c *gin.Context) {
	log := requestLogger(c)

	fh, err := c.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		switch {
		case errors.As(err, &tooLarge):
			c.String(http.StatusRequestEntityTooLarge, msgTooLarge)
		case c.Request.MultipartForm != nil && len(c.Request.MultipartForm.Value["file"]) > 0:
			// A file input submitted with nothing chosen arrives as a
			// plain field with an empty filename.
			c.String(http.StatusBadRequest, msgNoSelection)
		default:
			c.String(http.StatusBadRequest, msgNoFile)
		}
		return
	}
	if fh.Filename == "" {
		c.String(http.StatusBadRequest, msgNoSelection)
		return
	}
	if !strings.EqualFold(filepath.Ext(fh.Filename), ".docx") {
		c.String(http.StatusBadRequest, msgInvalidType)
		return
	}
	method := types.Method(c.DefaultPostForm("method", string(types.MethodAuto)))
	if !method.Valid() {
		c.String(http.StatusBadRequest, msgInvalidMethod)
		return
	}

	if !s.sem.TryAcquire(1) {
		c.Header("Retry-After", retryAfterSeconds)
		c.String(http.StatusTooManyRequests, msgBusy)
		return
	}
	s.inFlight.Add(1)
	defer func() {
		s.inFlight.Add(-1)
		s.sem.Release(1)
	}()

	// Each request works in its own directories so equal filenames from
	// concurrent uploads never collide.
	job := uuid.NewString()
	name := SanitizeFilename(fh.Filename)
	uploadDir := filepath.Join(s.cfg.UploadDir, job)
	outputDir := filepath.Join(s.cfg.OutputDir, job)
	defer os.RemoveAll(uploadDir)
	defer os.RemoveAll(outputDir)

	input := filepath.Join(uploadDir, name)
	if err := c.SaveUploadedFile(fh, input); err != nil {
		log.Error("saving upload", zap.Error(err))
		c.String(http.StatusInternalServerError, msgFailed)
		return
	}
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		log.Error("creating output directory", zap.Error(err))
		c.String(http.StatusInternalServerError, msgFailed)
		return
	}

	pdfName := strings.TrimSuffix(name, filepath.Ext(name)) + ".pdf"
	output := filepath.Join(outputDir, pdfName)
	res, err := s.conv.Run(types.ConversionRequest{InputPath: input, OutputPath: output, Method: method})
	if err != nil {
		log.Warn("conversion failed", zap.String("job", job), zap.Error(err))
		c.String(http.StatusInternalServerError, msgFailed)
		return
	}

	c.Header("X-Conversion-Backend", string(res.Backend))
	c.FileAttachment(output, pdfName)
}

// SanitizeFilename reduces name to a safe base name of ASCII letters,
// digits, dots, dashes and underscores. Spaces become underscores and
// leading dots are dropped. An empty result becomes "document.docx".
func SanitizeFilename(name string) string {
	name = filepath.Base(strings.ReplaceAll(name, "\\", "/"))
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '.', r == '-', r == '_':
			b.WriteRune(r)
		case r == ' ':
			b.WriteRune('_')
		}
	}
	out := strings.TrimLeft(b.String(), "._")
	if out == "" || strings.EqualFold(out, "docx") {
		return "document.docx"
	}
	return out
}
