// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package categorize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/faqsync/pkg/types"
)

func TestCategorize(t *testing.T) {
	tests := []struct {
		name     string
		rs       Ruleset
		question string
		answer   string
		want     types.CategoryID
	}{
		{"gpa to apply", Report, "What GPA do I need to apply?", "You need a 3.0 or higher.", types.CategoryApplication},
		{"application beats portfolio", Report, "Is the portfolio review part of admission?", "Yes it is.", types.CategoryApplication},
		{"portfolio", Report, "Should I use a hero image?", "Yes, lead with your strongest work.", types.CategoryPortfolio},
		{"major", Report, "How are VCD and ixd different?", "They differ in focus.", types.CategoryMajor},
		{"grade", Report, "Is there a curve?", "No curve in this course.", types.CategoryGrade},
		{"advising", Report, "Can I study abroad?", "Yes, talk to us first.", types.CategoryAdvising},
		{"project", Report, "How big should the stool be?", "Follow the brief.", types.CategoryProject},
		{"report default", Report, "Where is the room?", "Upstairs on the left.", types.CategoryGeneral},
		{"import default", Import, "Where is the room?", "Upstairs on the left.", types.CategoryAdvising},
		{"import extra keyword", Import, "When is the deadline?", "Early in February.", types.CategoryApplication},
		{"report lacks extra keyword", Report, "When is the deadline?", "Early in February.", types.CategoryGeneral},
		{"import canvas", Import, "Where are lectures posted?", "On canvas, under modules.", types.CategoryProject},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.rs.Categorize(tt.question, tt.answer))
		})
	}
}

func TestImportNeverGeneral(t *testing.T) {
	items := Import.Apply([]types.QAItem{
		{Question: "Where is the room?", Answer: "Upstairs on the left."},
		{Question: "What should I bring?", Answer: "Nothing special."},
	})
	for _, item := range items {
		assert.True(t, types.IsDatasetCategory(item.Category), item.Category)
	}
}

func TestApply_DoesNotModifyInput(t *testing.T) {
	in := []types.QAItem{{Question: "What GPA do I need to apply?", Answer: "You need a 3.0 or higher."}}
	out := Report.Apply(in)
	assert.Empty(t, in[0].Category)
	assert.Equal(t, types.CategoryApplication, out[0].Category)
}

func TestGroupByCategory(t *testing.T) {
	items := []types.QAItem{
		{Category: types.CategoryGeneral, Question: "g1"},
		{Category: types.CategoryProject, Question: "p1"},
		{Category: types.CategoryGrade, Question: "gr1"},
		{Category: types.CategoryProject, Question: "p2"},
		{Category: types.CategoryGeneral, Question: "g2"},
		{Category: types.CategoryApplication, Question: "a1"},
	}

	groups := GroupByCategory(items)
	require.Len(t, groups, 4)

	var order []types.CategoryID
	for _, g := range groups {
		order = append(order, g.Category)
	}
	// project and general tie at two; project comes first in priority.
	assert.Equal(t, []types.CategoryID{
		types.CategoryProject, types.CategoryGeneral,
		types.CategoryApplication, types.CategoryGrade,
	}, order)
	assert.Equal(t, "p1", groups[0].Items[0].Question)
	assert.Equal(t, "p2", groups[0].Items[1].Question)
}

func TestGroupByCategory_Empty(t *testing.T) {
	assert.Empty(t, GroupByCategory(nil))
}
