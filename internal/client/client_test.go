// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package client

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/docx2pdf/internal/httputil"
	"github.com/pdiddy/docx2pdf/pkg/types"
)

func init() {
	httputil.RetryBaseDelay = time.Millisecond
}

func writeInput(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "report.docx")
	require.NoError(t, os.WriteFile(path, []byte("PK fake docx"), 0o644))
	return path
}

func TestSubmit(t *testing.T) {
	var gotName, gotMethod, gotBody, gotUA string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/convert", r.URL.Path)
		gotUA = r.UserAgent()
		gotMethod = r.FormValue("method")
		f, hdr, err := r.FormFile("file")
		if assert.NoError(t, err) {
			gotName = hdr.Filename
			data, _ := io.ReadAll(f)
			gotBody = string(data)
		}
		w.Header().Set("Content-Type", "application/pdf")
		w.Write([]byte("%PDF-1.3 result"))
	}))
	defer ts.Close()

	output := filepath.Join(t.TempDir(), "report.pdf")
	c := New(ts.URL+"/", types.HTTPConfig{UserAgent: "docx2pdf-test"}, nil)
	require.NoError(t, c.Submit(context.Background(), writeInput(t), output, types.MethodBasicRenderer))

	assert.Equal(t, "report.docx", gotName)
	assert.Equal(t, "basicRenderer", gotMethod)
	assert.Equal(t, "PK fake docx", gotBody)
	assert.Equal(t, "docx2pdf-test", gotUA)

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.3 result", string(data))
}

func TestSubmit_RetriesWhenBusy(t *testing.T) {
	var calls int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, _, err := r.FormFile("file"); err != nil {
			http.Error(w, "missing file on replay", http.StatusBadRequest)
			return
		}
		if atomic.AddInt32(&calls, 1) < 3 {
			w.Header().Set("Retry-After", "0")
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		w.Write([]byte("%PDF"))
	}))
	defer ts.Close()

	output := filepath.Join(t.TempDir(), "out.pdf")
	c := New(ts.URL, types.HTTPConfig{MaxRetries: 5}, nil)
	require.NoError(t, c.Submit(context.Background(), writeInput(t), output, types.MethodAuto))
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
	assert.FileExists(t, output)
}

func TestSubmit_ServerError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error":"Conversion failed"}`))
	}))
	defer ts.Close()

	output := filepath.Join(t.TempDir(), "out.pdf")
	err := New(ts.URL, types.HTTPConfig{}, nil).Submit(context.Background(), writeInput(t), output, types.MethodAuto)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "HTTP 500")
	assert.Contains(t, err.Error(), "Conversion failed")
	assert.NoFileExists(t, output)
}

func TestSubmit_MissingInput(t *testing.T) {
	err := New("http://127.0.0.1:1", types.HTTPConfig{}, nil).
		Submit(context.Background(), filepath.Join(t.TempDir(), "none.docx"), "out.pdf", types.MethodAuto)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestBackends(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/backends", r.URL.Path)
		w.Write([]byte(`{"basicRenderer":true,"nativeOffice":false,"pandocPipeline":true}`))
	}))
	defer ts.Close()

	caps, err := New(ts.URL, types.HTTPConfig{}, nil).Backends(context.Background())
	require.NoError(t, err)
	assert.True(t, caps.Available(types.MethodPandocPipeline))
	assert.False(t, caps.Available(types.MethodNativeOffice))
}

func TestErrorMessage(t *testing.T) {
	assert.Equal(t, "No selected file", errorMessage(strings.NewReader(`{"error":"No selected file"}`)))
	assert.Equal(t, "plain failure", errorMessage(strings.NewReader("plain failure\n")))
}
