// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package extract pulls question/answer pairs out of FAQ documents.
//
// Markdown input goes through two scans whose results are concatenated and
// then de-duplicated: a bold-question scan and a line-oriented scan for
// loose questions. PDF text goes through a simpler line-stream scan.
package extract

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/adrg/frontmatter"

	"github.com/pdiddy/faqsync/pkg/types"
)

const (
	// minQuestionLine is the length a loose "...?" line must exceed to
	// start a question.
	minQuestionLine = 15

	// minAnswerLine is the length an answer line must exceed to be kept.
	minAnswerLine = 5
)

// ErrSourceNotFound is returned when the FAQ document does not exist.
var ErrSourceNotFound = errors.New("source document not found")

var (
	// boldQuestionRe matches **Question?** followed by optional whitespace
	// and a newline. The body begins right after the match.
	boldQuestionRe = regexp.MustCompile(`\*\*([^*?]+\?)\*\*\s*\n`)

	// bodyBoundaryRe ends a bold-question body: a blank line or a line
	// that opens another bold span.
	bodyBoundaryRe = regexp.MustCompile(`\n[ \t]*(?:\n|\*\*)`)
)

// newlines rewrites CRLF and lone CR line endings to LF. Every scan
// assumes LF.
var newlines = strings.NewReplacer("\r\n", "\n", "\r", "\n")

// File reads the Markdown document at path and extracts its pairs.
func File(path string) ([]types.QAItem, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrSourceNotFound, path)
		}
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return Markdown(string(data)), nil
}

// Markdown runs both Markdown scans over content and returns the
// de-duplicated pairs in document order (bold scan first).
func Markdown(content string) []types.QAItem {
	body := stripFrontmatter(newlines.Replace(content))

	items := scanBoldQuestions(body)
	items = append(items, scanLooseQuestions(body)...)
	return Dedup(items)
}

// stripFrontmatter drops a leading YAML frontmatter block, such as the one
// written when a PDF is converted to Markdown. Malformed frontmatter leaves
// the content as is.
func stripFrontmatter(content string) string {
	if !strings.HasPrefix(content, "---") {
		return content
	}
	var meta map[string]any
	body, err := frontmatter.Parse(strings.NewReader(content), &meta)
	if err != nil {
		return content
	}
	return string(bytes.TrimLeft(body, "\n"))
}

// scanBoldQuestions captures every **Question?** span together with the
// body text that follows it.
func scanBoldQuestions(content string) []types.QAItem {
	matches := boldQuestionRe.FindAllStringSubmatchIndex(content, -1)
	var items []types.QAItem

	for i, m := range matches {
		question := strings.TrimSpace(content[m[2]:m[3]])

		end := len(content)
		if i+1 < len(matches) {
			end = matches[i+1][0]
		}
		body := content[m[1]:end]
		if loc := bodyBoundaryRe.FindStringIndex(body); loc != nil {
			body = body[:loc[0]]
		}
		if strings.TrimSpace(body) == "" {
			continue
		}

		items = append(items, newItem(question, body))
	}
	return items
}

// lineScanner tracks the question currently being answered while the
// loose-question scan walks the document.
type lineScanner struct {
	items    []types.QAItem
	question string
	answer   []string
	inAnswer bool
}

func (s *lineScanner) pending() bool {
	return s.question != "" && len(s.answer) > 0 && s.inAnswer
}

// commit emits the pending pair when its cleaned answer is long enough.
func (s *lineScanner) commit() {
	if !s.pending() {
		return
	}
	item := newItem(s.question, strings.Join(s.answer, " "))
	if runeLen(item.Answer) > types.MinTextLength {
		s.items = append(s.items, item)
	}
}

func (s *lineScanner) reset() {
	s.question = ""
	s.answer = nil
	s.inAnswer = false
}

// scanLooseQuestions walks content line by line. A long line ending in "?"
// opens a question; following lines form its answer until a blank line,
// a ## heading, or the next question. A blank line before any answer text
// keeps the question open.
func scanLooseQuestions(content string) []types.QAItem {
	var s lineScanner

	for _, line := range strings.Split(content, "\n") {
		trimmed := strings.TrimSpace(line)

		if trimmed == "" {
			if s.pending() {
				s.commit()
				s.reset()
			}
			continue
		}

		if strings.HasSuffix(trimmed, "?") && runeLen(trimmed) > minQuestionLine {
			s.commit()
			s.question = strings.TrimSpace(strings.ReplaceAll(trimmed, "**", ""))
			s.answer = nil
			s.inAnswer = false
			continue
		}

		if s.question == "" {
			continue
		}

		if isHeading(trimmed) {
			s.commit()
			s.reset()
			continue
		}

		s.inAnswer = true
		if runeLen(trimmed) > minAnswerLine {
			s.answer = append(s.answer, trimmed)
		}
	}

	s.commit()
	return s.items
}

// isHeading reports whether the line is a ## (or deeper) heading.
func isHeading(line string) bool {
	return strings.HasPrefix(line, "##")
}

// newItem builds a pair from a question and its raw answer text. Links are
// harvested before the answer is cleaned.
func newItem(question, rawAnswer string) types.QAItem {
	return types.QAItem{
		Question: strings.TrimSpace(question),
		Answer:   CleanAnswer(rawAnswer),
		Links:    Links(rawAnswer),
	}
}

// QuestionKey is the de-duplication key for a question: lowercase with
// whitespace runs collapsed.
func QuestionKey(question string) string {
	return strings.Join(strings.Fields(strings.ToLower(question)), " ")
}

// Dedup keeps the first pair per QuestionKey and drops pairs whose question
// or answer is too short. It is idempotent.
func Dedup(items []types.QAItem) []types.QAItem {
	seen := make(map[string]bool, len(items))
	var out []types.QAItem

	for _, item := range items {
		key := QuestionKey(item.Question)
		if seen[key] {
			continue
		}
		if runeLen(item.Question) <= types.MinTextLength || runeLen(item.Answer) <= types.MinTextLength {
			continue
		}
		seen[key] = true
		out = append(out, item)
	}
	return out
}

func runeLen(s string) int {
	return utf8.RuneCountInString(s)
}
