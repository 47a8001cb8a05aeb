// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// PDFBackend identifies the external tool used to pull text out of a PDF.
type PDFBackend string

const (
	BackendAuto       PDFBackend = "auto"
	BackendPdftotext  PDFBackend = "pdftotext"
	BackendMarkitdown PDFBackend = "markitdown"
)

// SourceConfig locates the FAQ documents.
type SourceConfig struct {
	// Markdown is the FAQ Markdown file (e.g. "DES166 Questions.md").
	Markdown string `json:"markdown" yaml:"markdown" mapstructure:"markdown"`

	// PDF is the optional FAQ PDF export.
	PDF string `json:"pdf" yaml:"pdf" mapstructure:"pdf"`

	// PDFBackend selects auto, pdftotext, or markitdown.
	PDFBackend PDFBackend `json:"pdf_backend" yaml:"pdf_backend" mapstructure:"pdf_backend"`
}

// LogConfig controls the structured logger.
type LogConfig struct {
	// Level is one of trace, debug, info, warn, error.
	Level string `json:"level" yaml:"level" mapstructure:"level"`

	// Format is console, json, or pretty.
	Format string `json:"format" yaml:"format" mapstructure:"format"`
}

// Config groups every setting the CLI reads from flags, env, and file.
type Config struct {
	// Source fields sit at the top level of the config file, next to
	// dataset and report_dir.
	Source SourceConfig `json:"source" yaml:",inline" mapstructure:",squash"`

	// Dataset is the generated data file read by the loader and written
	// by the emitter (e.g. "data/qa-data.ts").
	Dataset string `json:"dataset" yaml:"dataset" mapstructure:"dataset"`

	// ReportDir receives the text reports.
	ReportDir string `json:"report_dir" yaml:"report_dir" mapstructure:"report_dir"`

	// IndexDir holds the SQLite search index and exports.
	IndexDir string `json:"index_dir" yaml:"index_dir" mapstructure:"index_dir"`

	Log LogConfig `json:"log" yaml:"log" mapstructure:"log"`
}

// DefaultConfig returns the paths of the standard course repository layout.
func DefaultConfig() Config {
	return Config{
		Source: SourceConfig{
			Markdown:   "DES166 Questions.md",
			PDF:        "DES166 Questions (1).pdf",
			PDFBackend: BackendAuto,
		},
		Dataset:   "data/qa-data.ts",
		ReportDir: "scripts",
		IndexDir:  ".faqsync",
		Log: LogConfig{
			Level:  "info",
			Format: "console",
		},
	}
}
