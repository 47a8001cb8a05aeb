// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"regexp"
	"sort"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

var (
	// mdLinkRe matches [label](url) link markup.
	mdLinkRe = regexp.MustCompile(`\[([^\]]+)\]\([^)]+\)`)

	// bareURLRe matches a bare http(s) URL up to the next whitespace.
	bareURLRe = regexp.MustCompile(`https?://\S+`)

	// linkURLRe matches a bare URL for link harvesting; it also stops at a
	// closing parenthesis or angle bracket so URLs inside link markup come out clean.
	linkURLRe = regexp.MustCompile(`https?://[^\s)>]+`)

	keywordRe = regexp.MustCompile(`\b[a-z]{4,}\b`)
)

// CleanAnswer replaces link markup with its label, strips bare URLs,
// collapses whitespace, and trims.
func CleanAnswer(raw string) string {
	s := mdLinkRe.ReplaceAllString(raw, "$1")
	s = bareURLRe.ReplaceAllString(s, "")
	return strings.Join(strings.Fields(s), " ")
}

var linkParser = goldmark.New().Parser()

// Links harvests http(s) URLs from raw answer text: Markdown link
// destinations first, then bare URLs. Trailing punctuation is trimmed and
// duplicates dropped, keeping first-seen order. Returns nil when none.
func Links(raw string) []string {
	var urls []string

	source := []byte(raw)
	doc := linkParser.Parse(text.NewReader(source))
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch node := n.(type) {
		case *ast.Link:
			urls = append(urls, string(node.Destination))
		case *ast.AutoLink:
			urls = append(urls, string(node.URL(source)))
		}
		return ast.WalkContinue, nil
	})

	urls = append(urls, linkURLRe.FindAllString(raw, -1)...)

	seen := make(map[string]bool, len(urls))
	var out []string
	for _, u := range urls {
		u = strings.TrimRight(u, ".,;:")
		if !strings.HasPrefix(u, "http://") && !strings.HasPrefix(u, "https://") {
			continue
		}
		if seen[u] {
			continue
		}
		seen[u] = true
		out = append(out, u)
	}
	return out
}

// stopWords are skipped when picking keywords.
var stopWords = map[string]bool{
	"that": true, "this": true, "with": true, "from": true, "have": true,
	"will": true, "what": true, "when": true, "where": true, "which": true,
	"their": true, "there": true, "about": true, "would": true, "could": true,
	"should": true,
}

const maxKeywords = 5

// Keywords returns up to five frequent words of four or more letters,
// most frequent first; ties keep first-seen order.
func Keywords(s string) []string {
	counts := make(map[string]int)
	var order []string
	for _, w := range keywordRe.FindAllString(strings.ToLower(s), -1) {
		if stopWords[w] {
			continue
		}
		if counts[w] == 0 {
			order = append(order, w)
		}
		counts[w]++
	}

	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})
	if len(order) > maxKeywords {
		order = order[:maxKeywords]
	}
	return order
}
