// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package report renders the plain-text reports and console summaries
// produced by the compare and categorize commands.
package report

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/pdiddy/faqsync/internal/categorize"
	"github.com/pdiddy/faqsync/internal/reconcile"
	"github.com/pdiddy/faqsync/pkg/types"
)

// Report file names inside the report directory.
const (
	MarkdownComparisonFile = "markdown-comparison-report.txt"
	PDFComparisonFile      = "comparison-report.txt"
	CategorizedFile        = "categorized-missing-questions.txt"
)

// Listing limits for the console and file reports.
const (
	maxMissingListed  = 50
	maxMatchesListed  = 10
	questionPreview   = 100
	matchPreview      = 80
	answerPreview     = 150
	detailAnswerWidth = 200
)

var rule = strings.Repeat("=", 70)

// NewRunID returns an identifier that ties a report file to the log lines
// of the run that produced it.
func NewRunID() string {
	return uuid.NewString()
}

// Comparison is everything the comparison report shows.
type Comparison struct {
	RunID string

	// Source names the document kind in headings, "Markdown" or "PDF".
	Source string

	Extracted []types.QAItem
	Result    reconcile.Result
}

// FileName returns the report file name for the comparison's source.
func (c Comparison) FileName() string {
	if c.Source == "PDF" {
		return PDFComparisonFile
	}
	return MarkdownComparisonFile
}

// truncate cuts s to at most n code points.
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

func heading(w io.Writer, title string) {
	fmt.Fprintf(w, "\n%s\n%s\n%s\n", rule, title, rule)
}

// WriteComparison writes the summary portion of the comparison report,
// the part echoed to the console.
func WriteComparison(w io.Writer, c Comparison) {
	res := c.Result
	src := c.Source

	fmt.Fprintf(w, "%s\n%s TO DATABASE COMPARISON REPORT\n%s\n", rule, strings.ToUpper(src), rule)
	fmt.Fprintf(w, "Run: %s\n", c.RunID)
	fmt.Fprintf(w, "\n%s Questions Found: %d\n", src, res.Extracted)
	fmt.Fprintf(w, "Database Questions: %d\n", res.DatasetSize)
	fmt.Fprintf(w, "Matched: %d\n", len(res.Matches))
	fmt.Fprintf(w, "%s Only (Missing in DB): %d\n", src, len(res.SourceOnly))
	fmt.Fprintf(w, "DB Only (Not in %s): %d\n", src, len(res.DatasetOnly))

	heading(w, fmt.Sprintf("QUESTIONS IN %s BUT NOT IN DATABASE:", strings.ToUpper(src)))
	if len(res.SourceOnly) == 0 {
		fmt.Fprintf(w, "\nNone - All %s questions are in the database!\n", src)
	}
	for i, q := range res.SourceOnly {
		if i == maxMissingListed {
			fmt.Fprintf(w, "\n... and %d more questions\n", len(res.SourceOnly)-maxMissingListed)
			break
		}
		fmt.Fprintf(w, "\n%d. %s\n", i+1, truncate(q.Question, questionPreview))
		if q.Answer != "" {
			fmt.Fprintf(w, "   Answer: %s...\n", truncate(q.Answer, answerPreview))
		}
	}

	heading(w, fmt.Sprintf("QUESTIONS IN DATABASE BUT NOT IN %s:", strings.ToUpper(src)))
	if len(res.DatasetOnly) == 0 {
		fmt.Fprintf(w, "\nNone - All database questions are in the %s!\n", src)
	}
	for i, q := range res.DatasetOnly {
		fmt.Fprintf(w, "\n%d. %s\n", i+1, q.Question)
	}

	heading(w, "MATCHED QUESTIONS:")
	fmt.Fprintf(w, "\nFound %d matching questions\n", len(res.Matches))
	for i, m := range res.Matches {
		if i == maxMatchesListed {
			break
		}
		fmt.Fprintf(w, "\n%d. %s\n", i+1, truncate(m.Source.Question, matchPreview))
		fmt.Fprintf(w, "   Match type: %s\n", m.Kind)
	}
}

// writeDetail appends every extracted question with a short answer.
func writeDetail(w io.Writer, c Comparison) {
	heading(w, fmt.Sprintf("DETAILED %s QUESTIONS:", strings.ToUpper(c.Source)))
	for i, q := range c.Extracted {
		fmt.Fprintf(w, "\n%d. Question: %s\n", i+1, q.Question)
		if q.Answer != "" {
			fmt.Fprintf(w, "   Answer: %s\n", truncate(q.Answer, detailAnswerWidth))
		}
	}
}

// RenderComparison returns the full report file content: the summary
// followed by the detailed listing of extracted questions.
func RenderComparison(c Comparison) string {
	var buf bytes.Buffer
	WriteComparison(&buf, c)
	writeDetail(&buf, c)
	return buf.String()
}

// Coverage writes the one-line coverage summary and the missing count.
func Coverage(w io.Writer, source string, res reconcile.Result) {
	fmt.Fprintf(w, "\nSUMMARY:\n")
	fmt.Fprintf(w, "   Coverage: %.1f%% of %s questions are in database\n", res.Coverage(), source)
	fmt.Fprintf(w, "   Missing: %d questions need to be added\n", len(res.SourceOnly))
}

// Categorized is the categorized missing-questions report.
type Categorized struct {
	RunID  string
	Total  int
	Groups []categorize.Group
}

// WriteCategorized writes the full categorized report.
func WriteCategorized(w io.Writer, c Categorized) {
	fmt.Fprintf(w, "%s\nCATEGORIZED MISSING QUESTIONS REPORT\n%s\n", rule, rule)
	fmt.Fprintf(w, "Run: %s\n", c.RunID)
	fmt.Fprintf(w, "\nTotal Missing Questions: %d\n", c.Total)
	fmt.Fprintf(w, "\nBreakdown by Category:\n\n")
	for _, g := range c.Groups {
		fmt.Fprintf(w, "%s: %d questions\n", types.DisplayName(g.Category), len(g.Items))
	}

	heading(w, "DETAILED BREAKDOWN BY CATEGORY")
	for _, g := range c.Groups {
		heading(w, fmt.Sprintf("%s (%d questions)", strings.ToUpper(types.DisplayName(g.Category)), len(g.Items)))
		for i, q := range g.Items {
			preview := truncate(q.Answer, answerPreview)
			if preview != q.Answer {
				preview += "..."
			}
			fmt.Fprintf(w, "\n%d. %s\n", i+1, q.Question)
			fmt.Fprintf(w, "   Answer: %s\n", preview)
		}
	}
}

// CategorySummary writes the per-category console table.
func CategorySummary(w io.Writer, c Categorized) {
	fmt.Fprintf(w, "\nSUMMARY BY CATEGORY:\n")
	for _, g := range c.Groups {
		pct := 0.0
		if c.Total > 0 {
			pct = float64(len(g.Items)) / float64(c.Total) * 100
		}
		fmt.Fprintf(w, "   %-25s: %3d questions (%5.1f%%)\n", types.DisplayName(g.Category), len(g.Items), pct)
	}
}

// Save writes content to name inside dir, creating dir if needed, and
// returns the file path.
func Save(dir, name, content string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating report directory %s: %w", dir, err)
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return "", fmt.Errorf("writing report %s: %w", path, err)
	}
	return path, nil
}
