// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/docx2pdf/internal/history"
	"github.com/pdiddy/docx2pdf/internal/pdfinfo"
	"github.com/pdiddy/docx2pdf/pkg/types"
)

// resetViper gives each test a fresh viper with defaults and env binding.
func resetViper(t *testing.T) {
	t.Helper()
	viper.Reset()
	viper.SetEnvPrefix("DOCX2PDF")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
	setDefaults(types.DefaultConfig())
	t.Cleanup(viper.Reset)
}

func TestLoadConfig_Defaults(t *testing.T) {
	resetViper(t)

	c, err := loadConfig()
	require.NoError(t, err)
	assert.Equal(t, types.DefaultConfig(), c)
}

func TestLoadConfig_FileAndEnv(t *testing.T) {
	resetViper(t)
	path := filepath.Join(t.TempDir(), "docx2pdf.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
conversion:
  method: basicRenderer
  render:
    line_height: 14
server:
  addr: ":8080"
  shutdown_timeout: 3s
`), 0o644))
	viper.SetConfigFile(path)
	require.NoError(t, viper.ReadInConfig())
	t.Setenv("DOCX2PDF_SERVER_ADDR", ":9090")
	t.Setenv("DOCX2PDF_HISTORY_DIR", "/tmp/h")

	c, err := loadConfig()
	require.NoError(t, err)
	assert.Equal(t, types.MethodBasicRenderer, c.Conversion.Method)
	assert.Equal(t, 14.0, c.Conversion.Render.LineHeight)
	assert.Equal(t, 800.0, c.Conversion.Render.Top)
	assert.Equal(t, ":9090", c.Server.Addr, "environment beats config file")
	assert.Equal(t, 3*time.Second, c.Server.ShutdownTimeout)
	assert.Equal(t, "/tmp/h", c.History.Dir)
}

func TestLoadConfig_InvalidMethod(t *testing.T) {
	resetViper(t)
	t.Setenv("DOCX2PDF_CONVERSION_METHOD", "magic")

	_, err := loadConfig()
	assert.ErrorContains(t, err, "unknown method")
}

func TestBindFlags_OnlyChangedFlagsOverride(t *testing.T) {
	resetViper(t)
	t.Setenv("DOCX2PDF_CONVERSION_OUTPUT_DIR", "from-env")

	cmd := &cobra.Command{Use: "convert", Annotations: convertCmd.Annotations}
	cmd.Flags().String("method", "auto", "")
	cmd.Flags().String("out-dir", "outputs", "")
	require.NoError(t, cmd.Flags().Parse([]string{"--method", "pandocPipeline"}))
	require.NoError(t, bindFlags(cmd))

	c, err := loadConfig()
	require.NoError(t, err)
	assert.Equal(t, types.MethodPandocPipeline, c.Conversion.Method)
	assert.Equal(t, "from-env", c.Conversion.OutputDir)
}

func TestFormatBackends(t *testing.T) {
	rows := []backendStatus{
		{Method: types.MethodNativeOffice},
		{Method: types.MethodBasicRenderer, Available: true},
	}

	var text bytes.Buffer
	require.NoError(t, formatBackends(&text, rows, false, false))
	assert.Contains(t, text.String(), "nativeOffice      no")
	assert.Contains(t, text.String(), "basicRenderer     yes")

	var js bytes.Buffer
	require.NoError(t, formatBackends(&js, rows, true, false))
	assert.JSONEq(t, `[{"method":"nativeOffice","available":false},{"method":"basicRenderer","available":true}]`, js.String())

	var y bytes.Buffer
	require.NoError(t, formatBackends(&y, rows, false, true))
	assert.Contains(t, y.String(), "- method: basicRenderer")
	assert.Contains(t, y.String(), "  available: true")
}

func TestFormatHistory(t *testing.T) {
	var empty bytes.Buffer
	require.NoError(t, formatHistory(&empty, nil, false))
	assert.Equal(t, "No conversions recorded.\n", empty.String())

	var emptyJSON bytes.Buffer
	require.NoError(t, formatHistory(&emptyJSON, nil, true))
	assert.Equal(t, "[]\n", emptyJSON.String())

	entries := []history.Entry{{
		Input:      "a.docx",
		Method:     types.MethodPandocPipeline,
		Error:      "conversion backend unavailable: pandocPipeline",
		RecordedAt: time.Now(),
	}}
	var out bytes.Buffer
	require.NoError(t, formatHistory(&out, entries, false))
	assert.Contains(t, out.String(), "failed")
	assert.Contains(t, out.String(), "error: conversion backend unavailable")
	assert.Contains(t, out.String(), "1 entries")
}

func TestFormatSummary(t *testing.T) {
	var out bytes.Buffer
	s := history.Summary{Total: 3, Succeeded: 2, Failed: 1, ByBackend: map[types.Method]int{types.MethodBasicRenderer: 2}}
	require.NoError(t, formatSummary(&out, s, false))
	assert.Equal(t, "Total: 3 (2 succeeded, 1 failed)\n  basicRenderer    2\n", out.String())
}

func TestFormatInspect(t *testing.T) {
	info := pdfinfo.Info{
		Path:      "out.pdf",
		PageCount: 1,
		Pages:     []pdfinfo.Page{{Number: 1, Lines: []pdfinfo.Line{{Y: 800, Text: "Hello"}}}},
	}

	var short bytes.Buffer
	require.NoError(t, formatInspect(&short, info, false, false))
	assert.Equal(t, "out.pdf: 1 page(s)\n", short.String())

	var full bytes.Buffer
	require.NoError(t, formatInspect(&full, info, true, false))
	assert.Contains(t, full.String(), "--- page 1 ---")
	assert.Contains(t, full.String(), "  800.0  Hello")
}
