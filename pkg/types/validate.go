// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

// MinTextLength is the exclusive lower bound on question and answer length,
// counted in code points.
const MinTextLength = 10

// Validate checks an item is fit for the dataset file: long enough question
// and answer, a category from the fixed enumeration, and absolute links.
func (q QAItem) Validate() error {
	return validation.ValidateStruct(&q,
		validation.Field(&q.Question, validation.Required, validation.RuneLength(MinTextLength+1, 0)),
		validation.Field(&q.Answer, validation.Required, validation.RuneLength(MinTextLength+1, 0)),
		validation.Field(&q.Category, validation.Required, validation.By(func(value any) error {
			if !IsDatasetCategory(value.(CategoryID)) {
				return validation.NewError("faqsync.item.category_invalid", "category must be one of the dataset categories")
			}
			return nil
		})),
		validation.Field(&q.Links, validation.Each(is.URL, validation.By(func(value any) error {
			s, _ := value.(string)
			if !strings.HasPrefix(s, "http://") && !strings.HasPrefix(s, "https://") {
				return validation.NewError("faqsync.item.link_scheme", "links must be http or https URLs")
			}
			return nil
		}))),
	)
}

// Validate checks the settings every command depends on.
func (c Config) Validate() error {
	errs := validation.Errors{}
	if strings.TrimSpace(c.Dataset) == "" {
		errs["dataset"] = validation.NewError("faqsync.config.dataset_required", "dataset path is required")
	}
	if strings.TrimSpace(c.ReportDir) == "" {
		errs["report_dir"] = validation.NewError("faqsync.config.report_dir_required", "report_dir is required")
	}
	switch c.Source.PDFBackend {
	case "", BackendAuto, BackendPdftotext, BackendMarkitdown:
	default:
		errs["pdf_backend"] = validation.NewError("faqsync.config.pdf_backend_invalid", "pdf_backend must be auto, pdftotext, or markitdown")
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}
