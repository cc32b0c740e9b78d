// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package convert implements DOCX-to-PDF conversion with pluggable backends.
// A Dispatcher picks exactly one backend per request from the requested
// method and the capabilities detected at startup, runs it, and reports
// success as a boolean or as a ConversionResult.
package convert

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/pdiddy/docx2pdf/pkg/types"
)

var (
	// ErrInvalidMethod is returned for a method string that names no backend.
	ErrInvalidMethod = errors.New("invalid conversion method")

	// ErrBackendUnavailable is returned when an explicitly requested backend
	// is not installed. The backend is not attempted.
	ErrBackendUnavailable = errors.New("conversion backend unavailable")

	// ErrConversionFailed wraps any error or panic raised by a backend.
	ErrConversionFailed = errors.New("conversion failed")
)

// priority is the order in which auto tries backends. The last entry is the
// unconditional fallback and is selected without a capability check.
var priority = []types.Method{
	types.MethodNativeOffice,
	types.MethodPandocPipeline,
	types.MethodBasicRenderer,
}

// Backend transforms the document at input into a PDF at output. A backend
// leaves output untouched when it fails.
type Backend interface {
	// Method names the backend.
	Method() types.Method

	// Convert writes a PDF rendition of input to output.
	Convert(input, output string) error
}

// Recorder receives every finished conversion. The history store
// implements it.
type Recorder interface {
	Record(ctx context.Context, req types.ConversionRequest, res types.ConversionResult) error
}

// Dispatcher selects and runs backends. It holds only read-only state and
// is safe for concurrent use.
type Dispatcher struct {
	backends map[types.Method]Backend
	caps     types.Capabilities
	log      *zap.Logger

	// PageCounter, when set, fills ConversionResult.Pages after a
	// successful conversion.
	PageCounter func(path string) (int, error)

	// Recorder, when set, is called after every Run.
	Recorder Recorder
}

// New returns a Dispatcher over backends. caps decides which optional
// backends may be selected; a nil logger disables logging.
func New(caps types.Capabilities, log *zap.Logger, backends ...Backend) *Dispatcher {
	if log == nil {
		log = zap.NewNop()
	}
	d := &Dispatcher{
		backends: make(map[types.Method]Backend, len(backends)),
		caps:     caps,
		log:      log,
	}
	for _, b := range backends {
		d.backends[b.Method()] = b
	}
	return d
}

// Capabilities returns the capability table the dispatcher was built with.
func (d *Dispatcher) Capabilities() types.Capabilities {
	return d.caps
}

// Select returns the backend that would serve method.
func (d *Dispatcher) Select(method types.Method) (Backend, error) {
	if !method.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidMethod, method)
	}
	fallback := priority[len(priority)-1]
	for _, m := range priority {
		switch {
		case method == m:
			if m != fallback && !d.caps.Available(m) {
				return nil, fmt.Errorf("%w: %s", ErrBackendUnavailable, m)
			}
		case method == types.MethodAuto && (m == fallback || d.caps.Available(m)):
		default:
			continue
		}
		b, ok := d.backends[m]
		if !ok {
			return nil, fmt.Errorf("%w: %s not registered", ErrBackendUnavailable, m)
		}
		return b, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrInvalidMethod, method)
}

// Run converts req.InputPath to req.OutputPath with the backend selected
// for req.Method. The returned error is nil exactly when the result
// reports success.
func (d *Dispatcher) Run(req types.ConversionRequest) (types.ConversionResult, error) {
	res, err := d.run(req)
	if d.Recorder != nil {
		if rerr := d.Recorder.Record(context.Background(), req, res); rerr != nil {
			d.log.Warn("recording conversion", zap.Error(rerr))
		}
	}
	return res, err
}

func (d *Dispatcher) run(req types.ConversionRequest) (types.ConversionResult, error) {
	var res types.ConversionResult
	log := d.log.With(
		zap.String("input", req.InputPath),
		zap.String("output", req.OutputPath),
		zap.String("method", string(req.Method)),
	)

	b, err := d.Select(req.Method)
	if err != nil {
		log.Warn("no backend selected", zap.Error(err))
		res.Error = err.Error()
		return res, err
	}
	res.Backend = b.Method()
	log = log.With(zap.String("backend", string(res.Backend)))
	log.Debug("backend selected")

	start := time.Now()
	err = invoke(b, req.InputPath, req.OutputPath)
	res.Duration = time.Since(start)
	if err != nil {
		err = fmt.Errorf("%w: %s: %w", ErrConversionFailed, res.Backend, err)
		log.Error("conversion failed", zap.Duration("duration", res.Duration), zap.Error(err))
		res.Error = err.Error()
		return res, err
	}
	res.Success = true

	if d.PageCounter != nil {
		if n, perr := d.PageCounter(req.OutputPath); perr != nil {
			log.Warn("counting pages", zap.Error(perr))
		} else {
			res.Pages = n
		}
	}
	log.Info("conversion finished", zap.Duration("duration", res.Duration), zap.Int("pages", res.Pages))
	return res, nil
}

// Convert is the boolean form of Run: it reports whether a new PDF now
// exists at outputPath. Errors are logged, never returned.
func (d *Dispatcher) Convert(inputPath, outputPath, method string) bool {
	res, _ := d.Run(types.ConversionRequest{
		InputPath:  inputPath,
		OutputPath: outputPath,
		Method:     types.Method(method),
	})
	return res.Success
}

// invoke runs b and turns a panic into an error.
func invoke(b Backend, input, output string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("backend panicked: %v", r)
		}
	}()
	return b.Convert(input, output)
}
