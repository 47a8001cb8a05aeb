// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package knowledge

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/faqsync/pkg/types"
)

// ExportYAML writes the selected items to export.yaml in the index
// directory and returns its path.
func (s *Store) ExportYAML(ctx context.Context, opts ListOptions) (string, error) {
	items, err := s.exportItems(ctx, opts)
	if err != nil {
		return "", err
	}
	data, err := yaml.Marshal(items)
	if err != nil {
		return "", fmt.Errorf("marshaling YAML: %w", err)
	}
	return s.writeExport("export.yaml", data)
}

// ExportJSON writes the selected items to export.json in the index
// directory and returns its path.
func (s *Store) ExportJSON(ctx context.Context, opts ListOptions) (string, error) {
	items, err := s.exportItems(ctx, opts)
	if err != nil {
		return "", err
	}
	data, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshaling JSON: %w", err)
	}
	return s.writeExport("export.json", data)
}

func (s *Store) exportItems(ctx context.Context, opts ListOptions) ([]types.QAItem, error) {
	items, err := s.items(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("querying for export: %w", err)
	}
	if items == nil {
		items = []types.QAItem{}
	}
	return items, nil
}

func (s *Store) writeExport(name string, data []byte) (string, error) {
	path := filepath.Join(s.indexDir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("writing %s: %w", path, err)
	}
	return path, nil
}
