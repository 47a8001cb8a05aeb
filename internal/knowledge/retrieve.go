// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package knowledge

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/pdiddy/faqsync/pkg/types"
)

// DefaultTopK is the number of search results returned when none is asked for.
const DefaultTopK = 5

// Match weights per query word.
const (
	questionWeight = 3
	keywordWeight  = 2
	answerWeight   = 1
)

// SearchResult is an item with its relevance score.
type SearchResult struct {
	types.QAItem `yaml:",inline"`
	Score        int `json:"score" yaml:"score"`
}

// queryWords lowercases q, splits it on whitespace, and keeps words longer
// than two characters. Repeated words count once per occurrence.
func queryWords(q string) []string {
	var words []string
	for _, w := range strings.Fields(strings.ToLower(q)) {
		if utf8.RuneCountInString(w) > 2 {
			words = append(words, w)
		}
	}
	return words
}

// Search ranks items by keyword overlap with query. Each query word adds
// 3 when the question contains it, 2 when any keyword does, and 1 when the
// answer does. Items scoring zero are dropped; ties keep dataset order.
func (s *Store) Search(ctx context.Context, query string, topK int) ([]SearchResult, error) {
	words := queryWords(query)
	if len(words) == 0 {
		return nil, nil
	}
	if topK <= 0 {
		topK = DefaultTopK
	}

	var (
		terms []string
		args  []any
	)
	for _, w := range words {
		terms = append(terms, fmt.Sprintf(
			`(CASE WHEN instr(question_lc, ?) > 0 THEN %d ELSE 0 END)
			+ (CASE WHEN instr(keywords_lc, ?) > 0 THEN %d ELSE 0 END)
			+ (CASE WHEN instr(answer_lc, ?) > 0 THEN %d ELSE 0 END)`,
			questionWeight, keywordWeight, answerWeight))
		args = append(args, w, w, w)
	}
	args = append(args, topK)

	q := `SELECT ` + itemColumns + `, score FROM (
			SELECT position, ` + itemColumns + `, (` + strings.Join(terms, " + ") + `) AS score
			FROM items
		) WHERE score > 0
		ORDER BY score DESC, position ASC
		LIMIT ?`

	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("searching index: %w", err)
	}
	defer rows.Close()

	var results []SearchResult
	for rows.Next() {
		var r SearchResult
		item, err := scanItem(rows, &r.Score)
		if err != nil {
			return nil, fmt.Errorf("scanning search result: %w", err)
		}
		r.QAItem = item
		results = append(results, r)
	}
	return results, rows.Err()
}

// ListOptions selects items for List and exports.
type ListOptions struct {
	// Category keeps only items with this category.
	Category types.CategoryID

	// OnePerCategory keeps the first item of each category. Ignored when
	// Category is set.
	OnePerCategory bool

	// Limit caps the result count. Zero or less means no cap.
	Limit int
}

// CategoryCount is the number of indexed items in one category.
type CategoryCount struct {
	types.Category `yaml:",inline"`
	Count          int `json:"count" yaml:"count"`
}

// ListResult is a listing plus totals over the whole index.
type ListResult struct {
	Items      []types.QAItem  `json:"data" yaml:"data"`
	Total      int             `json:"total" yaml:"total"`
	Filtered   int             `json:"filtered" yaml:"filtered"`
	Categories []CategoryCount `json:"categories" yaml:"categories"`
}

// List returns indexed items in dataset order, filtered by opts.
func (s *Store) List(ctx context.Context, opts ListOptions) (ListResult, error) {
	items, err := s.items(ctx, opts)
	if err != nil {
		return ListResult{}, err
	}

	counts, total, err := s.CategoryCounts(ctx)
	if err != nil {
		return ListResult{}, err
	}

	return ListResult{
		Items:      items,
		Total:      total,
		Filtered:   len(items),
		Categories: counts,
	}, nil
}

func (s *Store) items(ctx context.Context, opts ListOptions) ([]types.QAItem, error) {
	var (
		qb   strings.Builder
		args []any
	)
	qb.WriteString(`SELECT ` + itemColumns + ` FROM items`)
	switch {
	case opts.Category != "":
		qb.WriteString(` WHERE category = ?`)
		args = append(args, string(opts.Category))
	case opts.OnePerCategory:
		qb.WriteString(` WHERE position IN (SELECT MIN(position) FROM items GROUP BY category)`)
	}
	qb.WriteString(` ORDER BY position ASC`)
	if opts.Limit > 0 {
		qb.WriteString(` LIMIT ?`)
		args = append(args, opts.Limit)
	}

	rows, err := s.db.QueryContext(ctx, qb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("listing items: %w", err)
	}
	defer rows.Close()

	var items []types.QAItem
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning item: %w", err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// CategoryCounts returns the item count of every dataset category, in
// priority order, and the total number of indexed items.
func (s *Store) CategoryCounts(ctx context.Context) ([]CategoryCount, int, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT category, COUNT(*) FROM items GROUP BY category`)
	if err != nil {
		return nil, 0, fmt.Errorf("counting categories: %w", err)
	}
	defer rows.Close()

	byID := make(map[types.CategoryID]int)
	total := 0
	for rows.Next() {
		var (
			id string
			n  int
		)
		if err := rows.Scan(&id, &n); err != nil {
			return nil, 0, fmt.Errorf("scanning category count: %w", err)
		}
		byID[types.CategoryID(id)] = n
		total += n
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	var counts []CategoryCount
	for _, c := range types.Categories() {
		counts = append(counts, CategoryCount{Category: c, Count: byID[c.ID]})
	}
	return counts, total, nil
}
