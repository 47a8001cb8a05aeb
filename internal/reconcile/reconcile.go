// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package reconcile matches freshly extracted FAQ items against the
// records already in the dataset.
package reconcile

import (
	"strings"
	"unicode"

	"github.com/pdiddy/faqsync/pkg/types"
)

// fuzzyMinLength is the exclusive lower bound, in code points, both
// normalized questions must exceed before a substring counts as a match.
const fuzzyMinLength = 20

// Kind says how two questions matched.
type Kind string

const (
	KindExact Kind = "exact"
	KindFuzzy Kind = "fuzzy"
)

// Match pairs an extracted item with the dataset record it corresponds to.
type Match struct {
	Source  types.QAItem
	Dataset types.QAItem
	Kind    Kind
}

// Result is the outcome of Compare.
type Result struct {
	Extracted   int
	DatasetSize int
	Matches     []Match

	// SourceOnly holds extracted items with no dataset counterpart, in
	// extraction order.
	SourceOnly []types.QAItem

	// DatasetOnly holds dataset records no extracted item matches, in
	// dataset order.
	DatasetOnly []types.QAItem
}

// Coverage is the share of extracted items already in the dataset, as a
// percentage. It is 0 when nothing was extracted.
func (r Result) Coverage() float64 {
	if r.Extracted == 0 {
		return 0
	}
	return float64(len(r.Matches)) / float64(r.Extracted) * 100
}

// Normalize lowercases s, drops every character that is not a letter,
// digit, underscore or whitespace, collapses whitespace runs and trims.
func Normalize(s string) string {
	s = strings.Map(func(r rune) rune {
		switch {
		case unicode.IsLetter(r), unicode.IsDigit(r), r == '_':
			return unicode.ToLower(r)
		case unicode.IsSpace(r):
			return ' '
		default:
			return -1
		}
	}, s)
	return strings.Join(strings.Fields(s), " ")
}

// matchKind compares two normalized questions. The empty kind means no
// match.
func matchKind(a, b string) Kind {
	if a == b {
		return KindExact
	}
	if len([]rune(a)) <= fuzzyMinLength || len([]rune(b)) <= fuzzyMinLength {
		return ""
	}
	if strings.Contains(a, b) || strings.Contains(b, a) {
		return KindFuzzy
	}
	return ""
}

// Compare classifies every extracted item as matched or source-only and
// collects dataset records that nothing extracted matches. An exact match
// anywhere in the dataset beats a fuzzy one; among fuzzy candidates the
// first in dataset order wins. One dataset record may match several
// extracted items.
func Compare(extracted, dataset []types.QAItem) Result {
	res := Result{Extracted: len(extracted), DatasetSize: len(dataset)}

	keys := make([]string, len(dataset))
	exact := make(map[string]int, len(dataset))
	for i, d := range dataset {
		keys[i] = Normalize(d.Question)
		if _, ok := exact[keys[i]]; !ok {
			exact[keys[i]] = i
		}
	}

	claimed := make([]bool, len(dataset))
	for _, item := range extracted {
		key := Normalize(item.Question)

		idx, kind := -1, Kind("")
		if i, ok := exact[key]; ok {
			idx, kind = i, KindExact
		} else {
			for i, dk := range keys {
				if matchKind(key, dk) == KindFuzzy {
					idx, kind = i, KindFuzzy
					break
				}
			}
		}

		if idx < 0 {
			res.SourceOnly = append(res.SourceOnly, item)
			continue
		}
		claimed[idx] = true
		res.Matches = append(res.Matches, Match{Source: item, Dataset: dataset[idx], Kind: kind})
	}

	for i, d := range dataset {
		if claimed[i] {
			continue
		}
		// A record shadowed by an earlier duplicate still counts as present
		// when any extracted question matches it.
		if matchesAny(keys[i], extracted) {
			continue
		}
		res.DatasetOnly = append(res.DatasetOnly, d)
	}

	return res
}

func matchesAny(key string, items []types.QAItem) bool {
	for _, item := range items {
		if matchKind(key, Normalize(item.Question)) != "" {
			return true
		}
	}
	return false
}
