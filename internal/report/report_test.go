// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package report

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/faqsync/internal/categorize"
	"github.com/pdiddy/faqsync/internal/reconcile"
	"github.com/pdiddy/faqsync/pkg/types"
)

func item(q, a string) types.QAItem {
	return types.QAItem{Category: types.CategoryAdvising, Question: q, Answer: a}
}

func TestNewRunID(t *testing.T) {
	id := NewRunID()
	_, err := uuid.Parse(id)
	require.NoError(t, err)
	assert.NotEqual(t, id, NewRunID())
}

func TestWriteComparison(t *testing.T) {
	extracted := []types.QAItem{
		item("What GPA do I need to apply?", "You need a 3.0 or higher."),
		item("Is there a waitlist for the major?", "No, there is no waitlist."),
	}
	dataset := []types.QAItem{
		item("what gpa do i need to apply", "You need a 3.0 or higher."),
		item("When are critiques held?", "Every other Friday afternoon."),
	}
	c := Comparison{RunID: "run-1", Source: "Markdown", Extracted: extracted, Result: reconcile.Compare(extracted, dataset)}

	var buf bytes.Buffer
	WriteComparison(&buf, c)
	out := buf.String()

	assert.True(t, strings.HasPrefix(out, strings.Repeat("=", 70)+"\nMARKDOWN TO DATABASE COMPARISON REPORT\n"))
	assert.Contains(t, out, "Run: run-1\n")
	assert.Contains(t, out, "Markdown Questions Found: 2\n")
	assert.Contains(t, out, "Database Questions: 2\n")
	assert.Contains(t, out, "Matched: 1\n")
	assert.Contains(t, out, "Markdown Only (Missing in DB): 1\n")
	assert.Contains(t, out, "DB Only (Not in Markdown): 1\n")
	assert.Contains(t, out, "\n1. Is there a waitlist for the major?\n   Answer: No, there is no waitlist....\n")
	assert.Contains(t, out, "\n1. When are critiques held?\n")
	assert.Contains(t, out, "   Match type: exact\n")
	assert.NotContains(t, out, "DETAILED MARKDOWN QUESTIONS")
}

func TestWriteComparison_TruncatesMissingList(t *testing.T) {
	var extracted []types.QAItem
	for i := 0; i < 53; i++ {
		extracted = append(extracted, item(fmt.Sprintf("Unique question number %d?", i), "Some answer text here."))
	}
	c := Comparison{Source: "PDF", Extracted: extracted, Result: reconcile.Compare(extracted, nil)}

	var buf bytes.Buffer
	WriteComparison(&buf, c)
	out := buf.String()

	assert.Contains(t, out, "\n50. Unique question number 49?\n")
	assert.NotContains(t, out, "\n51. ")
	assert.Contains(t, out, "... and 3 more questions")
	assert.Contains(t, out, "None - All database questions are in the PDF!")
	assert.Equal(t, PDFComparisonFile, c.FileName())
}

func TestRenderComparison_Detail(t *testing.T) {
	long := strings.Repeat("a", 250)
	extracted := []types.QAItem{item("Is this answer long enough to cut?", long)}
	c := Comparison{Source: "Markdown", Extracted: extracted, Result: reconcile.Compare(extracted, extracted)}

	out := RenderComparison(c)
	assert.Contains(t, out, "DETAILED MARKDOWN QUESTIONS:")
	assert.Contains(t, out, "\n1. Question: Is this answer long enough to cut?\n   Answer: "+strings.Repeat("a", 200)+"\n")
	assert.Contains(t, out, "None - All Markdown questions are in the database!")
	assert.Equal(t, MarkdownComparisonFile, c.FileName())
}

func TestCoverage(t *testing.T) {
	extracted := []types.QAItem{
		item("First question in the document?", "First answer text."),
		item("Second question in the document?", "Second answer text."),
		item("Third question in the document?", "Third answer text."),
	}
	res := reconcile.Compare(extracted, extracted[:1])

	var buf bytes.Buffer
	Coverage(&buf, "Markdown", res)
	assert.Contains(t, buf.String(), "Coverage: 33.3% of Markdown questions are in database")
	assert.Contains(t, buf.String(), "Missing: 2 questions need to be added")
}

func TestWriteCategorized(t *testing.T) {
	items := []types.QAItem{
		{Category: types.CategoryGeneral, Question: "Where is the room?", Answer: strings.Repeat("b", 160)},
		{Category: types.CategoryGrade, Question: "Is there a curve?", Answer: "No curve."},
		{Category: types.CategoryGeneral, Question: "Who runs the shop?", Answer: "The shop staff."},
	}
	c := Categorized{RunID: "run-2", Total: len(items), Groups: categorize.GroupByCategory(items)}

	var buf bytes.Buffer
	WriteCategorized(&buf, c)
	out := buf.String()

	assert.Contains(t, out, "Total Missing Questions: 3\n")
	assert.Contains(t, out, "General/Other: 2 questions\nGrades & Requirements: 1 questions\n")
	assert.Contains(t, out, "GENERAL/OTHER (2 questions)")
	assert.Contains(t, out, "   Answer: "+strings.Repeat("b", 150)+"...\n")
	assert.Contains(t, out, "   Answer: No curve.\n")

	buf.Reset()
	CategorySummary(&buf, c)
	assert.Contains(t, buf.String(), fmt.Sprintf("   %-25s: %3d questions (%5.1f%%)\n", "General/Other", 2, 200.0/3))
}

func TestSave(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "scripts")
	path, err := Save(dir, CategorizedFile, "hello")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, CategorizedFile), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(data))
}
