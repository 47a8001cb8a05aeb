// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package reconcile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/faqsync/pkg/types"
)

func qa(q string) types.QAItem {
	return types.QAItem{Category: types.CategoryAdvising, Question: q, Answer: "An answer long enough to keep."}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"What is the GPA requirement?", "what is the gpa requirement"},
		{"  Tabs\tand\n\nnewlines  ", "tabs and newlines"},
		{"VCD/IxD - which one?", "vcdixd which one"},
		{"snake_case stays", "snake_case stays"},
		{"Café ouvert?", "café ouvert"},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Normalize(tt.in), "Normalize(%q)", tt.in)
	}
}

func TestCompare_ExactIgnoresCaseAndPunctuation(t *testing.T) {
	res := Compare(
		[]types.QAItem{qa("What is the GPA requirement?")},
		[]types.QAItem{qa("what is the gpa requirement")},
	)
	require.Len(t, res.Matches, 1)
	assert.Equal(t, KindExact, res.Matches[0].Kind)
	assert.Empty(t, res.SourceOnly)
	assert.Empty(t, res.DatasetOnly)
	assert.InDelta(t, 100.0, res.Coverage(), 0.001)
}

func TestCompare_ShortSubstringsDoNotMatch(t *testing.T) {
	// Both normalized forms are at most 20 code points.
	res := Compare(
		[]types.QAItem{qa("Portfolio tips?")},
		[]types.QAItem{qa("Portfolio tips 2?")},
	)
	assert.Empty(t, res.Matches)
	assert.Len(t, res.SourceOnly, 1)
	assert.Len(t, res.DatasetOnly, 1)
}

func TestCompare_FuzzySubstring(t *testing.T) {
	res := Compare(
		[]types.QAItem{qa("How do I submit my portfolio?")},
		[]types.QAItem{qa("How do I submit my portfolio online before the deadline?")},
	)
	require.Len(t, res.Matches, 1)
	assert.Equal(t, KindFuzzy, res.Matches[0].Kind)
	assert.Empty(t, res.DatasetOnly)
}

func TestCompare_ExactBeatsEarlierFuzzy(t *testing.T) {
	dataset := []types.QAItem{
		qa("How do I submit my portfolio online before the deadline?"),
		qa("How do I submit my portfolio?"),
	}
	res := Compare([]types.QAItem{qa("how do i submit my portfolio")}, dataset)

	require.Len(t, res.Matches, 1)
	assert.Equal(t, KindExact, res.Matches[0].Kind)
	assert.Equal(t, dataset[1].Question, res.Matches[0].Dataset.Question)
	// The longer record still contains an extracted question.
	assert.Empty(t, res.DatasetOnly)
}

func TestCompare_SourceAndDatasetOnly(t *testing.T) {
	extracted := []types.QAItem{
		qa("Is there a waitlist for the design major?"),
		qa("Can I double major with interior design?"),
	}
	dataset := []types.QAItem{
		qa("Can I double major with interior design?"),
		qa("When are studio critiques scheduled?"),
	}

	res := Compare(extracted, dataset)
	assert.Equal(t, 2, res.Extracted)
	assert.Equal(t, 2, res.DatasetSize)
	require.Len(t, res.Matches, 1)
	require.Len(t, res.SourceOnly, 1)
	assert.Equal(t, extracted[0].Question, res.SourceOnly[0].Question)
	require.Len(t, res.DatasetOnly, 1)
	assert.Equal(t, dataset[1].Question, res.DatasetOnly[0].Question)
	assert.InDelta(t, 50.0, res.Coverage(), 0.001)
}

func TestCompare_MatchedSetAgainstItself(t *testing.T) {
	extracted := []types.QAItem{
		qa("What GPA do I need to apply?"),
		qa("How long is the portfolio review?"),
		qa("Which advisor should I contact first?"),
	}
	first := Compare(extracted, extracted)

	var matched []types.QAItem
	for _, m := range first.Matches {
		matched = append(matched, m.Source)
	}
	again := Compare(matched, matched)
	assert.Empty(t, again.SourceOnly)
	assert.Empty(t, again.DatasetOnly)
}

func TestCoverage_Empty(t *testing.T) {
	assert.Zero(t, Compare(nil, []types.QAItem{qa("Anything at all here?")}).Coverage())
}
