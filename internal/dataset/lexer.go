// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package dataset

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokIdent
	tokNumber
	tokString
	tokPunct
)

type token struct {
	kind tokenKind
	text string // identifier, digits, unescaped string body, or punctuation
	pos  int
}

// lexer tokenizes the subset of TypeScript the emitter writes: identifiers,
// integers, double- or single-quoted strings, punctuation, and comments.
type lexer struct {
	src string
	pos int
}

func (l *lexer) next() (token, error) {
	l.skipSpaceAndComments()
	if l.pos >= len(l.src) {
		return token{kind: tokEOF, pos: l.pos}, nil
	}

	start := l.pos
	r, size := utf8.DecodeRuneInString(l.src[l.pos:])

	switch {
	case r == '"' || r == '\'':
		body, err := l.readString(r)
		if err != nil {
			return token{}, err
		}
		return token{kind: tokString, text: body, pos: start}, nil
	case r == '-' || unicode.IsDigit(r):
		l.pos += size
		for l.pos < len(l.src) && isDigit(l.src[l.pos]) {
			l.pos++
		}
		return token{kind: tokNumber, text: l.src[start:l.pos], pos: start}, nil
	case r == '_' || r == '$' || unicode.IsLetter(r):
		l.pos += size
		for l.pos < len(l.src) {
			r, size := utf8.DecodeRuneInString(l.src[l.pos:])
			if r != '_' && r != '$' && !unicode.IsLetter(r) && !unicode.IsDigit(r) {
				break
			}
			l.pos += size
		}
		return token{kind: tokIdent, text: l.src[start:l.pos], pos: start}, nil
	default:
		l.pos += size
		return token{kind: tokPunct, text: string(r), pos: start}, nil
	}
}

func (l *lexer) skipSpaceAndComments() {
	for l.pos < len(l.src) {
		switch {
		case strings.HasPrefix(l.src[l.pos:], "//"):
			end := strings.IndexByte(l.src[l.pos:], '\n')
			if end < 0 {
				l.pos = len(l.src)
				return
			}
			l.pos += end + 1
		case strings.HasPrefix(l.src[l.pos:], "/*"):
			end := strings.Index(l.src[l.pos+2:], "*/")
			if end < 0 {
				l.pos = len(l.src)
				return
			}
			l.pos += end + 4
		default:
			r, size := utf8.DecodeRuneInString(l.src[l.pos:])
			if !unicode.IsSpace(r) {
				return
			}
			l.pos += size
		}
	}
}

// readString consumes a quoted string starting at l.pos and returns its
// unescaped body. Raw newlines are not allowed inside a string.
func (l *lexer) readString(quote rune) (string, error) {
	start := l.pos
	l.pos++ // opening quote

	var b strings.Builder
	for l.pos < len(l.src) {
		c := l.src[l.pos]
		switch {
		case rune(c) == quote:
			l.pos++
			return b.String(), nil
		case c == '\n':
			return "", fmt.Errorf("unterminated string at offset %d", start)
		case c == '\\':
			if l.pos+1 >= len(l.src) {
				return "", fmt.Errorf("unterminated escape at offset %d", l.pos)
			}
			l.pos++
			if r, ok := l.readUnicodeEscape(); ok {
				b.WriteRune(r)
				continue
			}
			r, size := utf8.DecodeRuneInString(l.src[l.pos:])
			b.WriteString(unescape(r))
			l.pos += size
		default:
			r, size := utf8.DecodeRuneInString(l.src[l.pos:])
			b.WriteRune(r)
			l.pos += size
		}
	}
	return "", fmt.Errorf("unterminated string at offset %d", start)
}

// readUnicodeEscape consumes a \uXXXX escape positioned after the
// backslash. It reports false, consuming nothing, for anything else.
func (l *lexer) readUnicodeEscape() (rune, bool) {
	if l.src[l.pos] != 'u' || l.pos+5 > len(l.src) {
		return 0, false
	}
	v, err := strconv.ParseUint(l.src[l.pos+1:l.pos+5], 16, 32)
	if err != nil {
		return 0, false
	}
	l.pos += 5
	return rune(v), true
}

// unescape maps the character after a backslash to its value. Unknown
// escapes yield the character itself.
func unescape(r rune) string {
	switch r {
	case 'n':
		return "\n"
	case 't':
		return "\t"
	case 'r':
		return "\r"
	default:
		return string(r)
	}
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
