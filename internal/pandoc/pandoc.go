// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pandoc runs the pandoc document converter, either as a local
// binary or inside a container when pandoc is not installed.
package pandoc

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/pdiddy/docx2pdf/internal/container"
	"github.com/pdiddy/docx2pdf/pkg/types"
)

// ErrNotInstalled is returned by Detect when neither a pandoc binary nor a
// usable pandoc container image is present.
var ErrNotInstalled = errors.New("pandoc is not installed")

// Runner converts a file to a target format.
type Runner interface {
	// Name describes where pandoc runs, e.g. "pandoc" or "docker:pandoc/latex".
	Name() string

	// ConvertFile converts input to format and writes the result to output.
	ConvertFile(input, format, output string) error
}

// executor abstracts command execution for testing.
type executor interface {
	LookPath(file string) (string, error)
	Run(name string, args []string) ([]byte, error)
}

type osExecutor struct{}

func (osExecutor) LookPath(file string) (string, error) { return exec.LookPath(file) }

func (osExecutor) Run(name string, args []string) ([]byte, error) {
	return exec.Command(name, args...).CombinedOutput()
}

// Detect picks a Runner for cfg. A binary on PATH wins; otherwise the
// configured image is used through docker or podman.
func Detect(cfg types.PandocConfig) (Runner, error) {
	return detect(cfg, osExecutor{}, container.DetectRuntime)
}

func detect(cfg types.PandocConfig, exec executor, detectRuntime func() (container.Runtime, error)) (Runner, error) {
	bin := cfg.Binary
	if bin == "" {
		bin = "pandoc"
	}
	if path, err := exec.LookPath(bin); err == nil {
		return &localRunner{bin: path, pdfEngine: cfg.PDFEngine, exec: exec}, nil
	}

	if cfg.Image == "" {
		return nil, ErrNotInstalled
	}
	rt, err := detectRuntime()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotInstalled, err)
	}
	if err := rt.ImageExists(cfg.Image); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotInstalled, err)
	}
	return &containerRunner{runtime: rt, image: cfg.Image, pdfEngine: cfg.PDFEngine}, nil
}

// localRunner invokes a pandoc binary by path.
type localRunner struct {
	bin       string
	pdfEngine string
	exec      executor
}

func (r *localRunner) Name() string { return filepath.Base(r.bin) }

func (r *localRunner) ConvertFile(input, format, output string) error {
	args := []string{input, "-t", format, "-o", output}
	if r.pdfEngine != "" {
		args = append(args, "--pdf-engine="+r.pdfEngine)
	}
	out, err := r.exec.Run(r.bin, args)
	if err != nil {
		if msg := strings.TrimSpace(string(out)); msg != "" {
			return fmt.Errorf("pandoc failed: %w, output: %s", err, msg)
		}
		return fmt.Errorf("pandoc failed: %w", err)
	}
	return nil
}

// containerRunner pipes the input through a pandoc container. The input
// format is taken from the file extension since stdin has no name.
type containerRunner struct {
	runtime   container.Runtime
	image     string
	pdfEngine string
}

func (r *containerRunner) Name() string { return r.runtime.Name() + ":" + r.image }

func (r *containerRunner) ConvertFile(input, format, output string) error {
	in, err := os.Open(input)
	if err != nil {
		return fmt.Errorf("opening %s: %w", input, err)
	}
	defer in.Close()

	out, err := os.Create(output)
	if err != nil {
		return fmt.Errorf("creating %s: %w", output, err)
	}

	if err := r.run(in, out, inputFormat(input), format); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

func (r *containerRunner) run(in io.Reader, out io.Writer, from, to string) error {
	args := []string{"-f", from, "-t", to, "-o", "-"}
	if r.pdfEngine != "" {
		args = append(args, "--pdf-engine="+r.pdfEngine)
	}
	return r.runtime.Run(r.image, args, in, out)
}

func inputFormat(path string) string {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	switch ext {
	case "", "docx":
		return "docx"
	case "md":
		return "markdown"
	default:
		return ext
	}
}
