// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"go.uber.org/zap"

	"github.com/pdiddy/docx2pdf/internal/office"
	"github.com/pdiddy/docx2pdf/internal/pandoc"
	"github.com/pdiddy/docx2pdf/internal/pdfinfo"
	"github.com/pdiddy/docx2pdf/internal/render"
	"github.com/pdiddy/docx2pdf/pkg/types"
)

// probes are the detection hooks, swapped out in tests.
type probes struct {
	officeAvailable func() bool
	detectPandoc    func(types.PandocConfig) (pandoc.Runner, error)
}

var defaultProbes = probes{
	officeAvailable: office.Available,
	detectPandoc:    pandoc.Detect,
}

// DetectCapabilities probes the optional backends once and returns the
// capability table together with the backends that can serve it. The
// basic renderer is always present.
func DetectCapabilities(cfg types.ConversionConfig, log *zap.Logger) (types.Capabilities, []Backend) {
	return detectCapabilities(cfg, log, defaultProbes)
}

func detectCapabilities(cfg types.ConversionConfig, log *zap.Logger, p probes) (types.Capabilities, []Backend) {
	if log == nil {
		log = zap.NewNop()
	}
	caps := types.Capabilities{
		types.MethodNativeOffice:   false,
		types.MethodPandocPipeline: false,
		types.MethodBasicRenderer:  true,
	}
	backends := []Backend{NewRendererBackend(render.GeometryFromConfig(cfg.Render))}

	if p.officeAvailable() {
		caps[types.MethodNativeOffice] = true
		backends = append(backends, NewOfficeBackend())
	}

	runner, err := p.detectPandoc(cfg.Pandoc)
	if err != nil {
		log.Debug("pandoc not available", zap.Error(err))
	} else {
		caps[types.MethodPandocPipeline] = true
		backends = append(backends, &PandocBackend{Runner: runner})
		log.Debug("pandoc detected", zap.String("runner", runner.Name()))
	}

	log.Info("backends detected",
		zap.Bool(string(types.MethodNativeOffice), caps[types.MethodNativeOffice]),
		zap.Bool(string(types.MethodPandocPipeline), caps[types.MethodPandocPipeline]),
	)
	return caps, backends
}

// NewDefault detects the installed backends and returns a Dispatcher over
// them that also counts output pages.
func NewDefault(cfg types.ConversionConfig, log *zap.Logger) *Dispatcher {
	caps, backends := DetectCapabilities(cfg, log)
	d := New(caps, log, backends...)
	d.PageCounter = pdfinfo.PageCount
	return d
}
