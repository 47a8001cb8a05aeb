// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/faqsync/pkg/types"
)

func TestLoadConfig_File(t *testing.T) {
	t.Cleanup(viper.Reset)

	path := filepath.Join(t.TempDir(), "faqsync.yaml")
	content := "markdown: docs/faq.md\n" +
		"pdf: docs/faq.pdf\n" +
		"pdf_backend: markitdown\n" +
		"dataset: web/data/qa-data.ts\n" +
		"log:\n  level: debug\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	viper.SetConfigFile(path)
	require.NoError(t, viper.ReadInConfig())

	cfg, err := loadConfig()
	require.NoError(t, err)
	assert.Equal(t, "docs/faq.md", cfg.Source.Markdown)
	assert.Equal(t, "docs/faq.pdf", cfg.Source.PDF)
	assert.Equal(t, types.BackendMarkitdown, cfg.Source.PDFBackend)
	assert.Equal(t, "web/data/qa-data.ts", cfg.Dataset)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "scripts", cfg.ReportDir, "unset keys keep their defaults")
}
