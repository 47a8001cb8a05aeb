// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package categorize assigns FAQ items to a dataset category with ordered
// keyword rules.
package categorize

import (
	"sort"
	"strings"

	"github.com/pdiddy/faqsync/pkg/types"
)

// Ruleset is an ordered set of keyword rules plus the category used when
// none of them fires.
type Ruleset struct {
	Name     string
	Keywords map[types.CategoryID][]string
	Default  types.CategoryID
}

var (
	applicationKeywords = []string{
		"application", "apply", "admission", "admit", "portfolio application",
		"portfolio review", "work samples", "5-10", "infosession", "info session",
	}
	portfolioKeywords = []string{
		"portfolio", "work sample", "showcase", "project page", "hero image",
		"template", "organize", "revision", "improve past work",
	}
	majorKeywords = []string{
		"major", "vcd", "ixd", "industrial design", "id", "choose", "select",
		"creative direction", "career", "interior design", "minor", "dxarts",
		"animation", "fashion", "program", "pathway",
	}
	gradeKeywords = []string{
		"grade", "gpa", "3.7", "curve", "grading", "canvas grade", "final grade",
		"points", "rubric", "criteria", "requirement",
	}
	advisingKeywords = []string{
		"advisor", "advising", "counsel", "academic advisor", "contact", "appointment",
		"opt", "stem", "visa", "international", "study abroad", "internship",
		"transfer", "credit",
	}
	projectKeywords = []string{
		"project", "assignment", "deliverable", "critique", "submission", "stool",
		"cardboard", "mockup", "slide", "deck", "template", "process", "concept",
		"photography", "photo", "cover", "magazine", "illustration", "collage",
		"photoshop", "illustrator", "printing", "mounting", "bleed", "crop mark",
	}
)

// Report is used for the missing-questions report. Unmatched items land in
// the general bucket.
var Report = Ruleset{
	Name: "report",
	Keywords: map[types.CategoryID][]string{
		types.CategoryApplication: applicationKeywords,
		types.CategoryPortfolio:   portfolioKeywords,
		types.CategoryMajor:       majorKeywords,
		types.CategoryGrade:       gradeKeywords,
		types.CategoryAdvising:    advisingKeywords,
		types.CategoryProject:     projectKeywords,
	},
	Default: types.CategoryGeneral,
}

// Import is used when writing the dataset, which has no general category,
// so unmatched items fall back to advising. Its lists extend Report's.
var Import = Ruleset{
	Name: "import",
	Keywords: map[types.CategoryID][]string{
		types.CategoryApplication: with(applicationKeywords, "deadline", "3.7", "acceptance"),
		types.CategoryPortfolio:   portfolioKeywords,
		types.CategoryMajor:       with(majorKeywords, "degree"),
		types.CategoryGrade:       with(gradeKeywords, "workshop"),
		types.CategoryAdvising:    advisingKeywords,
		types.CategoryProject:     with(projectKeywords, "canvas", "clue", "office hours"),
	},
	Default: types.CategoryAdvising,
}

func with(base []string, extra ...string) []string {
	out := make([]string, 0, len(base)+len(extra))
	out = append(out, base...)
	return append(out, extra...)
}

// Priority returns the dataset categories in the order rules are tried.
func Priority() []types.CategoryID {
	cats := types.Categories()
	ids := make([]types.CategoryID, len(cats))
	for i, c := range cats {
		ids[i] = c.ID
	}
	return ids
}

// Categorize returns the first category, in priority order, with a keyword
// contained in the lowercased question and answer. Keywords match as plain
// substrings, so short ones like "id" also fire inside longer words.
func (rs Ruleset) Categorize(question, answer string) types.CategoryID {
	text := strings.ToLower(question + " " + answer)
	for _, id := range Priority() {
		for _, kw := range rs.Keywords[id] {
			if strings.Contains(text, kw) {
				return id
			}
		}
	}
	return rs.Default
}

// Apply returns copies of items with Category set by rs.
func (rs Ruleset) Apply(items []types.QAItem) []types.QAItem {
	out := make([]types.QAItem, len(items))
	for i, item := range items {
		item.Category = rs.Categorize(item.Question, item.Answer)
		out[i] = item
	}
	return out
}

// Group is one category's share of a categorized batch.
type Group struct {
	Category types.CategoryID
	Items    []types.QAItem
}

// GroupByCategory buckets items by their Category field. Groups are ordered
// by size, largest first; ties follow priority order with general last.
func GroupByCategory(items []types.QAItem) []Group {
	rank := make(map[types.CategoryID]int)
	for i, id := range Priority() {
		rank[id] = i
	}
	rankOf := func(id types.CategoryID) int {
		if r, ok := rank[id]; ok {
			return r
		}
		return len(rank)
	}

	index := make(map[types.CategoryID]int)
	var groups []Group
	for _, item := range items {
		i, ok := index[item.Category]
		if !ok {
			i = len(groups)
			index[item.Category] = i
			groups = append(groups, Group{Category: item.Category})
		}
		groups[i].Items = append(groups[i].Items, item)
	}

	sort.SliceStable(groups, func(i, j int) bool {
		if len(groups[i].Items) != len(groups[j].Items) {
			return len(groups[i].Items) > len(groups[j].Items)
		}
		return rankOf(groups[i].Category) < rankOf(groups[j].Category)
	})
	return groups
}
