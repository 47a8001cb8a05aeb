// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package dataset

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pdiddy/faqsync/pkg/types"
)

// BackupSuffix is appended to the data file name for the previous version.
const BackupSuffix = ".backup"

// preamble declares the record and category types ahead of the data.
var preamble = []string{
	"export type QAItem = {",
	"  id: number;",
	"  category: string;",
	"  question: string;",
	"  answer: string;",
	"  links?: string[];",
	"  date?: string;",
	"  keywords?: string[];",
	"};",
	"",
	"export type Category = {",
	"  id: string;",
	"  name: string;",
	"  icon: string;",
	"  description: string;",
	"};",
	"",
}

// escaper covers every character that cannot appear raw inside a
// double-quoted string literal.
var escaper = strings.NewReplacer(
	`\`, `\\`,
	`"`, `\"`,
	"\n", `\n`,
	"\r", `\r`,
	"\u2028", `\u2028`,
	"\u2029", `\u2029`,
)

// quote renders s as a double-quoted string literal.
func quote(s string) string {
	return `"` + escaper.Replace(s) + `"`
}

// Render produces the full data file for items. IDs are assigned 1..n in
// slice order; the input slice is not modified.
func Render(items []types.QAItem) string {
	lines := append([]string{}, preamble...)

	lines = append(lines, "export const categories: Category[] = [")
	for _, c := range types.Categories() {
		lines = append(lines,
			"  {",
			fmt.Sprintf("    id: %s,", quote(string(c.ID))),
			fmt.Sprintf("    name: %s,", quote(c.Name)),
			fmt.Sprintf("    icon: %s,", quote(c.Icon)),
			fmt.Sprintf("    description: %s,", quote(c.Description)),
			"  },",
		)
	}
	lines = append(lines, "];", "")

	lines = append(lines, "export const "+arrayName+": QAItem[] = [")
	for i, item := range items {
		lines = append(lines,
			"  {",
			fmt.Sprintf("    id: %d,", i+1),
			fmt.Sprintf("    category: %s,", quote(string(item.Category))),
			fmt.Sprintf("    question: %s,", quote(item.Question)),
			fmt.Sprintf("    answer: %s,", quote(item.Answer)),
		)
		lines = appendList(lines, "links", item.Links)
		if item.Date != "" {
			lines = append(lines, fmt.Sprintf("    date: %s,", quote(item.Date)))
		}
		lines = appendList(lines, "keywords", item.Keywords)
		lines = append(lines, "  },")
	}
	lines = append(lines, "];")

	return strings.Join(lines, "\n") + "\n"
}

func appendList(lines []string, name string, values []string) []string {
	if len(values) == 0 {
		return lines
	}
	lines = append(lines, fmt.Sprintf("    %s: [", name))
	for _, v := range values {
		lines = append(lines, fmt.Sprintf("      %s,", quote(v)))
	}
	return append(lines, "    ],")
}

// WriteResult describes a completed Write.
type WriteResult struct {
	Path       string
	BackupPath string // empty when there was no previous file
	Count      int
}

// Write validates items, renders them, copies any existing file to
// path+".backup", and replaces path. Nothing is written when validation
// fails. The new content goes to a temporary file first and is renamed
// over path, so readers never see a partial file.
func Write(path string, items []types.QAItem) (WriteResult, error) {
	for i, item := range items {
		if err := item.Validate(); err != nil {
			return WriteResult{}, fmt.Errorf("item %d (%q): %w", i+1, item.Question, err)
		}
	}

	content := Render(items)
	result := WriteResult{Path: path, Count: len(items)}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return WriteResult{}, fmt.Errorf("creating %s: %w", dir, err)
	}

	previous, err := os.ReadFile(path)
	switch {
	case err == nil:
		result.BackupPath = path + BackupSuffix
		if err := os.WriteFile(result.BackupPath, previous, 0o644); err != nil {
			return WriteResult{}, fmt.Errorf("writing backup %s: %w", result.BackupPath, err)
		}
	case !os.IsNotExist(err):
		return WriteResult{}, fmt.Errorf("reading %s for backup: %w", path, err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return WriteResult{}, fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.WriteString(content); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return WriteResult{}, fmt.Errorf("writing %s: %w", tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return WriteResult{}, fmt.Errorf("closing %s: %w", tmpName, err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		os.Remove(tmpName)
		return WriteResult{}, fmt.Errorf("setting mode on %s: %w", tmpName, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return WriteResult{}, fmt.Errorf("replacing %s: %w", path, err)
	}

	return result, nil
}
