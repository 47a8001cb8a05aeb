// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"testing"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.yaml.in/yaml/v3"
)

func validItem() QAItem {
	return QAItem{
		ID:       1,
		Category: CategoryApplication,
		Question: "What GPA do I need to apply?",
		Answer:   "You need a 3.0 or higher.",
		Links:    []string{"https://art.washington.edu/design"},
	}
}

func TestQAItemValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*QAItem)
		wantErr string
	}{
		{"valid", func(*QAItem) {}, ""},
		{"short question", func(q *QAItem) { q.Question = "Why GPA?" }, "question"},
		{"exactly ten runes", func(q *QAItem) { q.Answer = "0123456789" }, "answer"},
		{"general is report only", func(q *QAItem) { q.Category = CategoryGeneral }, "category"},
		{"unknown category", func(q *QAItem) { q.Category = "housing" }, "category"},
		{"relative link", func(q *QAItem) { q.Links = []string{"/design"} }, "links"},
		{"ftp link", func(q *QAItem) { q.Links = []string{"ftp://example.com/file"} }, "links"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			item := validItem()
			tc.mutate(&item)
			err := item.Validate()
			if tc.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			var errs validation.Errors
			require.ErrorAs(t, err, &errs)
			assert.Contains(t, errs, tc.wantErr)
		})
	}
}

func TestConfigValidate(t *testing.T) {
	assert.NoError(t, DefaultConfig().Validate())

	cfg := DefaultConfig()
	cfg.Dataset = " "
	cfg.Source.PDFBackend = "ocr"
	err := cfg.Validate()
	require.Error(t, err)

	var errs validation.Errors
	require.ErrorAs(t, err, &errs)
	assert.Contains(t, errs, "dataset")
	assert.Contains(t, errs, "pdf_backend")
	assert.NotContains(t, errs, "report_dir")
}

func TestCategories(t *testing.T) {
	cats := Categories()
	require.Len(t, cats, 6)
	assert.Equal(t, CategoryApplication, cats[0].ID)

	for _, c := range cats {
		assert.True(t, IsDatasetCategory(c.ID), c.ID)
	}
	assert.False(t, IsDatasetCategory(CategoryGeneral))
	assert.Equal(t, "General/Other", DisplayName(CategoryGeneral))
}

func TestConfigYAMLIsFlat(t *testing.T) {
	data, err := yaml.Marshal(DefaultConfig())
	require.NoError(t, err)
	assert.NotContains(t, string(data), "source:")
	assert.Contains(t, string(data), "markdown: DES166 Questions.md")
	assert.Contains(t, string(data), "pdf_backend: auto")

	var cfg Config
	require.NoError(t, yaml.Unmarshal([]byte("markdown: faq.md\npdf_backend: pdftotext\ndataset: out.ts\n"), &cfg))
	assert.Equal(t, "faq.md", cfg.Source.Markdown)
	assert.Equal(t, BackendPdftotext, cfg.Source.PDFBackend)
	assert.Equal(t, "out.ts", cfg.Dataset)
}
