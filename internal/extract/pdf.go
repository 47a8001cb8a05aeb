// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"regexp"
	"strings"

	"github.com/pdiddy/faqsync/pkg/types"
)

// questionPrefixRe matches the "Q:" and "Question:" markers some PDF
// exports put in front of questions.
var questionPrefixRe = regexp.MustCompile(`(?i)^(?:q:|question:)\s*`)

// PDFText extracts pairs from text pulled out of a PDF. Layout is lost in
// that text, so blank lines carry no meaning: every line ending in "?" or
// carrying a Q:/Question: prefix opens a question and every other line
// extends the current answer. A leading frontmatter block, as written by
// the conversion cache, is ignored. CRLF line endings are accepted.
func PDFText(content string) []types.QAItem {
	var (
		items    []types.QAItem
		question string
		answer   []string
	)

	flush := func() {
		if question != "" && len(answer) > 0 {
			items = append(items, newItem(question, strings.Join(answer, " ")))
		}
	}

	for _, line := range strings.Split(stripFrontmatter(newlines.Replace(content)), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if strings.HasSuffix(line, "?") || questionPrefixRe.MatchString(line) {
			flush()
			question = strings.TrimSpace(questionPrefixRe.ReplaceAllString(line, ""))
			answer = nil
			continue
		}

		if question != "" {
			answer = append(answer, line)
		}
	}
	flush()

	return Dedup(items)
}
