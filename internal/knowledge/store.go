// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package knowledge keeps a SQLite copy of the FAQ dataset for keyword
// search, category listings, and exports. The dataset file stays the
// source of truth; the database can be deleted and rebuilt at any time.
package knowledge

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/faqsync/internal/dataset"
	"github.com/pdiddy/faqsync/internal/logging"
	"github.com/pdiddy/faqsync/pkg/types"
)

const dbFile = "faq.db"

// keywordSep joins lowercased keywords so a substring test on the joined
// column cannot span two keywords.
const keywordSep = "\x1f"

// Store manages the index database.
type Store struct {
	db       *sql.DB
	indexDir string
	log      logging.Logger
}

// NewStore opens or creates indexDir/faq.db and its schema.
func NewStore(indexDir string, log logging.Logger) (*Store, error) {
	if err := os.MkdirAll(indexDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating index directory: %w", err)
	}

	dbPath := filepath.Join(indexDir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db, indexDir: indexDir, log: logging.OrNop(log)}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Dir returns the directory holding the database and exports.
func (s *Store) Dir() string { return s.indexDir }

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS items (
			position INTEGER PRIMARY KEY,
			id INTEGER NOT NULL,
			category TEXT NOT NULL,
			question TEXT NOT NULL,
			answer TEXT NOT NULL,
			links TEXT,
			date TEXT,
			keywords TEXT,
			question_lc TEXT NOT NULL,
			answer_lc TEXT NOT NULL,
			keywords_lc TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_items_category ON items(category)`,
		`CREATE TABLE IF NOT EXISTS indexing_status (
			source TEXT PRIMARY KEY,
			file_mod_time TEXT,
			item_count INTEGER
		)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// SyncSummary reports what Sync did.
type SyncSummary struct {
	Items   int
	Skipped bool
}

// Sync rebuilds the index from the dataset file at datasetPath unless the
// file is unchanged since the last sync. force rebuilds regardless. After
// a rebuild export.yaml is refreshed. Progress goes to w.
func (s *Store) Sync(ctx context.Context, datasetPath string, force bool, w io.Writer) (SyncSummary, error) {
	info, err := os.Stat(datasetPath)
	if err != nil {
		return SyncSummary{}, fmt.Errorf("reading dataset %s: %w", datasetPath, err)
	}
	modTime := info.ModTime().UTC().Format(time.RFC3339Nano)

	if !force {
		var stored string
		var count int
		err := s.db.QueryRowContext(ctx,
			`SELECT file_mod_time, item_count FROM indexing_status WHERE source = ?`, datasetPath,
		).Scan(&stored, &count)
		switch {
		case err == nil && stored == modTime:
			fmt.Fprintf(w, "skipped %s (unchanged, %d items)\n", datasetPath, count)
			return SyncSummary{Items: count, Skipped: true}, nil
		case err != nil && !errors.Is(err, sql.ErrNoRows):
			return SyncSummary{}, fmt.Errorf("reading indexing status: %w", err)
		}
	}

	items, err := dataset.Load(datasetPath)
	if err != nil {
		return SyncSummary{}, err
	}
	if err := s.Rebuild(ctx, items); err != nil {
		return SyncSummary{}, err
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO indexing_status (source, file_mod_time, item_count) VALUES (?, ?, ?)
		 ON CONFLICT(source) DO UPDATE SET file_mod_time=excluded.file_mod_time, item_count=excluded.item_count`,
		datasetPath, modTime, len(items),
	)
	if err != nil {
		return SyncSummary{}, fmt.Errorf("updating indexing status: %w", err)
	}
	fmt.Fprintf(w, "indexed %s (%d items)\n", datasetPath, len(items))

	if _, err := s.ExportYAML(ctx, ListOptions{}); err != nil {
		fmt.Fprintf(w, "warning: export.yaml write failed: %v\n", err)
	}
	return SyncSummary{Items: len(items)}, nil
}

// Rebuild replaces every indexed item with items in one transaction.
func (s *Store) Rebuild(ctx context.Context, items []types.QAItem) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM items`); err != nil {
		return fmt.Errorf("clearing items: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO items (position, id, category, question, answer, links, date, keywords,
			question_lc, answer_lc, keywords_lc)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for i, item := range items {
		linksJSON, _ := json.Marshal(item.Links)
		keywordsJSON, _ := json.Marshal(item.Keywords)
		_, err := stmt.ExecContext(ctx,
			i, item.ID, string(item.Category), item.Question, item.Answer,
			string(linksJSON), item.Date, string(keywordsJSON),
			strings.ToLower(item.Question), strings.ToLower(item.Answer),
			strings.ToLower(strings.Join(item.Keywords, keywordSep)),
		)
		if err != nil {
			return fmt.Errorf("inserting item %d: %w", item.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing index: %w", err)
	}
	s.log.Debug("index rebuilt", "items", len(items), "dir", s.indexDir)
	return nil
}

const itemColumns = `id, category, question, answer, links, date, keywords`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanItem(row rowScanner, extra ...any) (types.QAItem, error) {
	var (
		item           types.QAItem
		category       string
		links, keyword sql.NullString
		date           sql.NullString
	)
	dest := append([]any{&item.ID, &category, &item.Question, &item.Answer, &links, &date, &keyword}, extra...)
	if err := row.Scan(dest...); err != nil {
		return types.QAItem{}, err
	}
	item.Category = types.CategoryID(category)
	item.Date = date.String
	if links.Valid {
		_ = json.Unmarshal([]byte(links.String), &item.Links)
	}
	if keyword.Valid {
		_ = json.Unmarshal([]byte(keyword.String), &item.Keywords)
	}
	return item, nil
}
