// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/faqsync/internal/convert"
	"github.com/pdiddy/faqsync/internal/dataset"
	"github.com/pdiddy/faqsync/internal/extract"
	"github.com/pdiddy/faqsync/internal/logging"
	"github.com/pdiddy/faqsync/pkg/types"
)

// errSkipped ends a command early without failing it.
var errSkipped = errors.New("skipped")

// runEnv is what every command needs: settings, loggers, and an output.
type runEnv struct {
	cfg  types.Config
	logs *logging.Provider
	out  io.Writer
}

func newRunEnv(cmd *cobra.Command) (*runEnv, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	logs, err := logging.New(cfg.Log)
	if err != nil {
		return nil, err
	}
	return &runEnv{cfg: cfg, logs: logs, out: cmd.OutOrStdout()}, nil
}

// sourceLabel names the document kind in progress lines and reports.
func sourceLabel(pdf bool) string {
	if pdf {
		return "PDF"
	}
	return "Markdown"
}

// extractSource reads and scans the configured FAQ document. For PDFs,
// a missing text backend prints a warning and returns errSkipped.
func (e *runEnv) extractSource(ctx context.Context, pdf bool) ([]types.QAItem, error) {
	log := e.logs.Get("extract")

	if !pdf {
		path := e.cfg.Source.Markdown
		fmt.Fprintf(e.out, "\nReading Markdown file: %s\n", path)
		items, err := extract.File(path)
		if err != nil {
			if errors.Is(err, extract.ErrSourceNotFound) {
				return nil, fmt.Errorf("markdown file not found at %s: %w", path, err)
			}
			return nil, err
		}
		log.Info("extracted questions", "source", path, "count", len(items))
		fmt.Fprintf(e.out, "   Found %d questions in Markdown\n", len(items))
		return items, nil
	}

	path := e.cfg.Source.PDF
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("PDF file not found at %s: %w", path, extract.ErrSourceNotFound)
	}

	conv, err := convert.Detect(ctx, e.cfg.Source.PDFBackend, e.logs.Get("convert"))
	if err != nil {
		if errors.Is(err, convert.ErrNoBackend) {
			fmt.Fprintf(e.out, "warning: %v\n", err)
			fmt.Fprintln(e.out, "Install poppler (pdftotext) or build the markitdown image to compare PDFs.")
			return nil, errSkipped
		}
		return nil, err
	}

	fmt.Fprintf(e.out, "\nReading PDF file: %s\n", path)
	text, err := convert.Cached(ctx, conv, path, e.cfg.IndexDir, e.out)
	if err != nil {
		return nil, err
	}
	items := extract.PDFText(text)
	log.Info("extracted questions", "source", path, "backend", conv.Name(), "count", len(items))
	fmt.Fprintf(e.out, "   Found %d questions in PDF\n", len(items))
	return items, nil
}

// loadDataset reads the existing dataset file; a missing file is empty.
func (e *runEnv) loadDataset() ([]types.QAItem, error) {
	items, err := dataset.Load(e.cfg.Dataset)
	if err != nil {
		return nil, err
	}
	e.logs.Get("dataset").Info("loaded dataset", "path", e.cfg.Dataset, "count", len(items))
	fmt.Fprintf(e.out, "   Found %d questions in database\n", len(items))
	return items, nil
}

// skipOK turns errSkipped into success.
func skipOK(err error) error {
	if errors.Is(err, errSkipped) {
		return nil
	}
	return err
}
