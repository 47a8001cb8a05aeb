// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package dataset reads and writes the generated FAQ data file.
//
// The file is a TypeScript module exporting a typed qaData array literal.
// It is treated as a serialization format: Load tokenizes the array and
// recovers its records without evaluating anything, and Write renders
// records back into the same layout.
package dataset

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/pdiddy/faqsync/pkg/types"
)

// arrayName is the exported identifier holding the records.
const arrayName = "qaData"

// Load reads the data file at path. A missing file yields an empty slice
// and no error, since callers treat it as "nothing existed yet".
func Load(path string) ([]types.QAItem, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading dataset %s: %w", path, err)
	}
	return Parse(string(data)), nil
}

// Parse recovers records from data file source. A record needs id,
// category, question and answer; links, keywords and date are optional.
// Records that are incomplete or malformed are skipped.
func Parse(src string) []types.QAItem {
	start := strings.Index(src, "export const "+arrayName)
	if start < 0 {
		start = strings.Index(src, arrayName)
	}
	if start < 0 {
		return nil
	}

	p := &parser{lex: lexer{src: src, pos: start}}
	if !p.seekArrayStart() {
		return nil
	}
	return p.parseRecords()
}

type parser struct {
	lex lexer
}

// next returns the next token, stepping over lines the lexer cannot read.
func (p *parser) next() token {
	for {
		tok, err := p.lex.next()
		if err == nil {
			return tok
		}
		p.skipLine()
	}
}

func (p *parser) skipLine() {
	end := strings.IndexByte(p.lex.src[p.lex.pos:], '\n')
	if end < 0 {
		p.lex.pos = len(p.lex.src)
		return
	}
	p.lex.pos += end + 1
}

// seekArrayStart advances past the "=" and "[" that open the array.
func (p *parser) seekArrayStart() bool {
	sawAssign := false
	for {
		tok := p.next()
		switch {
		case tok.kind == tokEOF:
			return false
		case tok.kind == tokPunct && tok.text == "=":
			sawAssign = true
		case sawAssign && tok.kind == tokPunct && tok.text == "[":
			return true
		}
	}
}

func (p *parser) parseRecords() []types.QAItem {
	var items []types.QAItem
	for {
		tok := p.next()
		switch {
		case tok.kind == tokEOF:
			return items
		case tok.kind == tokPunct && tok.text == "]":
			return items
		case tok.kind == tokPunct && tok.text == "{":
			item, err := p.parseRecord()
			if err != nil {
				p.lex.pos = tok.pos
				p.skipBalanced()
				continue
			}
			if item != nil {
				items = append(items, *item)
			}
		}
	}
}

// parseRecord reads one object literal after its opening brace. It
// returns nil without error when required fields are missing.
func (p *parser) parseRecord() (*types.QAItem, error) {
	var (
		item types.QAItem
		seen = map[string]bool{}
	)

	for {
		tok := p.next()
		if tok.kind == tokPunct && tok.text == "}" {
			break
		}
		if tok.kind == tokPunct && tok.text == "," {
			continue
		}
		if tok.kind != tokIdent && tok.kind != tokString {
			return nil, fmt.Errorf("offset %d: expected field name", tok.pos)
		}
		key := tok.text

		if colon := p.next(); colon.kind != tokPunct || colon.text != ":" {
			return nil, fmt.Errorf("offset %d: expected ':' after %s", colon.pos, key)
		}

		switch key {
		case "id":
			v := p.next()
			if v.kind != tokNumber {
				return nil, fmt.Errorf("offset %d: id is not a number", v.pos)
			}
			id, err := strconv.Atoi(v.text)
			if err != nil {
				return nil, fmt.Errorf("offset %d: %w", v.pos, err)
			}
			item.ID = id
		case "category", "question", "answer", "date":
			v := p.next()
			if v.kind != tokString {
				return nil, fmt.Errorf("offset %d: %s is not a string", v.pos, key)
			}
			switch key {
			case "category":
				item.Category = types.CategoryID(v.text)
			case "question":
				item.Question = v.text
			case "answer":
				item.Answer = v.text
			case "date":
				item.Date = v.text
			}
		case "links", "keywords":
			list, err := p.parseStringArray()
			if err != nil {
				return nil, err
			}
			if key == "links" {
				item.Links = list
			} else {
				item.Keywords = list
			}
		default:
			if err := p.skipValue(); err != nil {
				return nil, err
			}
		}
		seen[key] = true
	}

	for _, required := range []string{"id", "category", "question", "answer"} {
		if !seen[required] {
			return nil, nil
		}
	}
	return &item, nil
}

func (p *parser) parseStringArray() ([]string, error) {
	open := p.next()
	if open.kind != tokPunct || open.text != "[" {
		return nil, fmt.Errorf("offset %d: expected '['", open.pos)
	}
	var out []string
	for {
		tok := p.next()
		switch {
		case tok.kind == tokEOF:
			return nil, fmt.Errorf("unterminated array")
		case tok.kind == tokPunct && tok.text == "]":
			return out, nil
		case tok.kind == tokPunct && tok.text == ",":
		case tok.kind == tokString:
			out = append(out, tok.text)
		default:
			return nil, fmt.Errorf("offset %d: unexpected %q in string array", tok.pos, tok.text)
		}
	}
}

// skipValue consumes one value of a field the loader does not keep.
func (p *parser) skipValue() error {
	tok := p.next()
	switch {
	case tok.kind == tokEOF:
		return fmt.Errorf("unexpected end of input")
	case tok.kind == tokPunct && (tok.text == "[" || tok.text == "{"):
		p.lex.pos = tok.pos
		p.skipBalanced()
	}
	return nil
}

// skipBalanced consumes tokens from an opening bracket or brace up to and
// including its match.
func (p *parser) skipBalanced() {
	depth := 0
	for {
		tok := p.next()
		if tok.kind == tokEOF {
			return
		}
		if tok.kind != tokPunct {
			continue
		}
		switch tok.text {
		case "{", "[":
			depth++
		case "}", "]":
			depth--
			if depth <= 0 {
				return
			}
		}
	}
}
