package types

import "time"

// Method identifies how a document is converted. MethodAuto lets the
// dispatcher pick the best available backend; the other values name a
// backend explicitly.
type Method string

const (
	MethodAuto           Method = "auto"
	MethodNativeOffice   Method = "nativeOffice"
	MethodPandocPipeline Method = "pandocPipeline"
	MethodBasicRenderer  Method = "basicRenderer"
)

// Methods lists every recognised method value, auto first.
func Methods() []Method {
	return []Method{MethodAuto, MethodNativeOffice, MethodPandocPipeline, MethodBasicRenderer}
}

// Valid reports whether m is one of the recognised method values.
func (m Method) Valid() bool {
	for _, v := range Methods() {
		if m == v {
			return true
		}
	}
	return false
}

// HTTPConfig holds shared HTTP settings used by the upload client.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "docx2pdf/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`

	// MaxRetries bounds the number of retries on HTTP 429 (default 5).
	MaxRetries int `json:"max_retries" yaml:"max_retries"`
}

// PandocConfig holds settings for the pandoc pipeline backend.
type PandocConfig struct {
	// Binary is the pandoc executable name or path (default "pandoc").
	Binary string `json:"binary" yaml:"binary"`

	// PDFEngine is passed as --pdf-engine when set (e.g. "xelatex").
	PDFEngine string `json:"pdf_engine,omitempty" yaml:"pdf_engine,omitempty"`

	// Image is the container image used when the binary is not on PATH.
	// Empty disables the container fallback.
	Image string `json:"image" yaml:"image"`
}

// RenderConfig holds the page geometry of the basic renderer, in points
// with the origin at the bottom-left corner of the page.
type RenderConfig struct {
	Left       float64 `json:"left" yaml:"left"`
	Top        float64 `json:"top" yaml:"top"`
	Bottom     float64 `json:"bottom" yaml:"bottom"`
	LineHeight float64 `json:"line_height" yaml:"line_height"`
	FontSize   float64 `json:"font_size" yaml:"font_size"`
}

// ConversionConfig holds settings for the conversion dispatcher.
type ConversionConfig struct {
	// Method is the default method when none is requested.
	Method Method `json:"method" yaml:"method"`

	// OutputDir is where batch conversions write their PDFs.
	OutputDir string `json:"output_dir" yaml:"output_dir"`

	Pandoc PandocConfig `json:"pandoc" yaml:"pandoc"`
	Render RenderConfig `json:"render" yaml:"render"`
}

// ServerConfig holds settings for the HTTP upload service.
type ServerConfig struct {
	// Addr is the listen address (default ":5000").
	Addr string `json:"addr" yaml:"addr"`

	// UploadDir receives uploaded documents.
	UploadDir string `json:"upload_dir" yaml:"upload_dir"`

	// OutputDir receives converted PDFs.
	OutputDir string `json:"output_dir" yaml:"output_dir"`

	// MaxUploadBytes limits the request body size (default 20 MiB).
	MaxUploadBytes int64 `json:"max_upload_bytes" yaml:"max_upload_bytes"`

	// MaxConcurrent bounds conversions running at once; extra requests get 429.
	MaxConcurrent int64 `json:"max_concurrent" yaml:"max_concurrent"`

	// ShutdownTimeout bounds graceful shutdown.
	ShutdownTimeout time.Duration `json:"shutdown_timeout" yaml:"shutdown_timeout"`
}

// HistoryConfig holds settings for the conversion history database.
type HistoryConfig struct {
	// Dir contains history.db and export files. Empty disables history.
	Dir string `json:"dir" yaml:"dir"`

	// MaxResults is the default number of entries listed (default 20).
	MaxResults int `json:"max_results" yaml:"max_results"`
}

// LogConfig holds logger settings.
type LogConfig struct {
	Level  string `json:"level" yaml:"level"`
	Format string `json:"format" yaml:"format"`
	Output string `json:"output" yaml:"output"`
}

// Config groups all settings.
type Config struct {
	Conversion ConversionConfig `json:"conversion" yaml:"conversion"`
	Server     ServerConfig     `json:"server" yaml:"server"`
	Client     HTTPConfig       `json:"client" yaml:"client"`
	History    HistoryConfig    `json:"history" yaml:"history"`
	Log        LogConfig        `json:"log" yaml:"log"`
}

// DefaultConfig returns the configuration used when nothing is overridden.
func DefaultConfig() Config {
	return Config{
		Conversion: ConversionConfig{
			Method:    MethodAuto,
			OutputDir: "outputs",
			Pandoc: PandocConfig{
				Binary: "pandoc",
				Image:  "pandoc/latex:latest",
			},
			Render: RenderConfig{
				Left:       50,
				Top:        800,
				Bottom:     50,
				LineHeight: 20,
				FontSize:   12,
			},
		},
		Server: ServerConfig{
			Addr:            ":5000",
			UploadDir:       "uploads",
			OutputDir:       "outputs",
			MaxUploadBytes:  20 << 20,
			MaxConcurrent:   4,
			ShutdownTimeout: 10 * time.Second,
		},
		Client: HTTPConfig{
			Timeout:    2 * time.Minute,
			UserAgent:  "docx2pdf",
			MaxRetries: 5,
		},
		History: HistoryConfig{
			Dir:        ".docx2pdf",
			MaxResults: 20,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "console",
			Output: "stderr",
		},
	}
}
