// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package convert pulls plain text out of FAQ PDFs through external tools:
// poppler's pdftotext or the markitdown container image.
package convert

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pdiddy/faqsync/internal/logging"
	"github.com/pdiddy/faqsync/pkg/types"
)

// ErrNoBackend is returned by Detect when no conversion tool is usable.
var ErrNoBackend = errors.New("no PDF text backend available")

// Converter turns a PDF file into text.
type Converter interface {
	// Name identifies the backend, e.g. "pdftotext".
	Name() string

	// Text reads the PDF at pdfPath and returns its text content.
	Text(ctx context.Context, pdfPath string) (string, error)
}

const binPdftotext = "pdftotext"

// Pdftotext runs poppler's pdftotext with layout preservation and reads
// the text from its stdout.
type Pdftotext struct {
	exec executor
}

func (p *Pdftotext) Name() string { return binPdftotext }

func (p *Pdftotext) Text(ctx context.Context, pdfPath string) (string, error) {
	if _, err := os.Stat(pdfPath); err != nil {
		return "", fmt.Errorf("opening PDF %s: %w", pdfPath, err)
	}
	var out bytes.Buffer
	args := []string{"-layout", pdfPath, "-"}
	if err := p.exec.RunPiped(ctx, binPdftotext, args, nil, &out); err != nil {
		return "", fmt.Errorf("converting %s with pdftotext: %w", pdfPath, err)
	}
	if out.Len() == 0 {
		return "", fmt.Errorf("pdftotext produced empty output for %s", pdfPath)
	}
	return out.String(), nil
}

const imageMarkitdown = "markitdown:latest"

// Markitdown pipes the PDF through the markitdown container image.
type Markitdown struct {
	runtime *runtime
}

func (m *Markitdown) Name() string { return "markitdown (" + m.runtime.bin + ")" }

func (m *Markitdown) Text(ctx context.Context, pdfPath string) (string, error) {
	f, err := os.Open(pdfPath)
	if err != nil {
		return "", fmt.Errorf("opening PDF %s: %w", pdfPath, err)
	}
	defer f.Close()

	var out bytes.Buffer
	if err := m.runtime.run(ctx, imageMarkitdown, f, &out); err != nil {
		return "", fmt.Errorf("converting %s with markitdown: %w", pdfPath, err)
	}
	if out.Len() == 0 {
		return "", fmt.Errorf("markitdown produced empty output for %s", pdfPath)
	}
	return out.String(), nil
}

// Detect returns the converter for backend. With auto, pdftotext is tried
// first, then markitdown. When nothing is usable the error wraps
// ErrNoBackend.
func Detect(ctx context.Context, backend types.PDFBackend, log logging.Logger) (Converter, error) {
	return detect(ctx, backend, osExecutor{}, logging.OrNop(log))
}

func detect(ctx context.Context, backend types.PDFBackend, exec executor, log logging.Logger) (Converter, error) {
	var reasons []string

	if backend == "" || backend == types.BackendAuto || backend == types.BackendPdftotext {
		if _, err := exec.LookPath(binPdftotext); err == nil {
			log.Debug("pdf backend selected", "backend", binPdftotext)
			return &Pdftotext{exec: exec}, nil
		}
		reasons = append(reasons, "pdftotext not on PATH")
	}

	if backend == "" || backend == types.BackendAuto || backend == types.BackendMarkitdown {
		rt, err := detectRuntime(ctx, exec)
		if err == nil {
			err = rt.imageExists(ctx, imageMarkitdown)
		}
		if err == nil {
			log.Debug("pdf backend selected", "backend", "markitdown", "runtime", rt.bin)
			return &Markitdown{runtime: rt}, nil
		}
		reasons = append(reasons, err.Error())
	}

	if len(reasons) == 0 {
		return nil, fmt.Errorf("unknown PDF backend %q", backend)
	}
	return nil, fmt.Errorf("%w: %s", ErrNoBackend, strings.Join(reasons, "; "))
}

// Cached returns the text of pdfPath, converting it with c only when the
// cache file in cacheDir (see cacheFile) is missing or older than the PDF. Fresh text is
// stored with a frontmatter header naming its source. Progress goes to w.
func Cached(ctx context.Context, c Converter, pdfPath, cacheDir string, w io.Writer) (string, error) {
	info, err := os.Stat(pdfPath)
	if err != nil {
		return "", fmt.Errorf("opening PDF %s: %w", pdfPath, err)
	}

	base := strings.TrimSuffix(filepath.Base(pdfPath), filepath.Ext(pdfPath))
	cachePath, err := cacheFile(cacheDir, pdfPath)
	if err != nil {
		return "", err
	}

	if cached, err := os.Stat(cachePath); err == nil && !cached.ModTime().Before(info.ModTime()) {
		data, err := os.ReadFile(cachePath)
		if err != nil {
			return "", fmt.Errorf("reading %s: %w", cachePath, err)
		}
		fmt.Fprintf(w, "skipped: %s (cached text is current)\n", base)
		return string(data), nil
	}

	raw, err := c.Text(ctx, pdfPath)
	if err != nil {
		return "", err
	}

	content := addFrontmatter(pdfPath, c.Name(), raw)
	if err := os.MkdirAll(cacheDir, 0o755); err != nil {
		return "", fmt.Errorf("creating %s: %w", cacheDir, err)
	}
	if err := os.WriteFile(cachePath, []byte(content), 0o644); err != nil {
		return "", fmt.Errorf("writing %s: %w", cachePath, err)
	}
	fmt.Fprintf(w, "converted: %s (%s)\n", base, c.Name())
	return content, nil
}

// cacheFile names the cache entry for pdfPath: the PDF's base name plus a
// short hash of its absolute path, so same-named PDFs in different
// directories do not share an entry.
func cacheFile(cacheDir, pdfPath string) (string, error) {
	abs, err := filepath.Abs(pdfPath)
	if err != nil {
		return "", fmt.Errorf("resolving %s: %w", pdfPath, err)
	}
	sum := sha256.Sum256([]byte(abs))
	base := strings.TrimSuffix(filepath.Base(pdfPath), filepath.Ext(pdfPath))
	return filepath.Join(cacheDir, fmt.Sprintf("%s-%s.md", base, hex.EncodeToString(sum[:4]))), nil
}

// addFrontmatter prepends YAML frontmatter to converted text.
func addFrontmatter(pdfPath, backend, body string) string {
	ts := time.Now().UTC().Format(time.RFC3339)
	var b strings.Builder
	b.WriteString("---\n")
	fmt.Fprintf(&b, "source_pdf: %q\n", pdfPath)
	fmt.Fprintf(&b, "backend: %q\n", backend)
	fmt.Fprintf(&b, "converted_at: %q\n", ts)
	b.WriteString("---\n\n")
	b.WriteString(body)
	return b.String()
}
