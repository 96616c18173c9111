// Package csvstore reads the raw tabular source files, one per dataset kind.
package csvstore

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/de-tools/promo-atlas/pkg/models/domain"
)

// DefaultFiles maps each dataset kind to its conventional file name under
// the data directory.
func DefaultFiles() map[domain.DatasetKind]string {
	return map[domain.DatasetKind]string{
		domain.KindCampaign:  "dim_campaigns.csv",
		domain.KindProduct:   "dim_products.csv",
		domain.KindStore:     "dim_stores.csv",
		domain.KindEvent:     "fact_events.csv",
		domain.KindRevenue:   "clean_revenue.csv",
		domain.KindCitySales: "city_sales.csv",
		domain.KindCombined:  "clean_all.csv",
	}
}

type Store struct {
	dir   string
	files map[domain.DatasetKind]string
}

// New creates a store over dir. A nil files map uses DefaultFiles.
func New(dir string, files map[domain.DatasetKind]string) *Store {
	if files == nil {
		files = DefaultFiles()
	}
	return &Store{dir: dir, files: files}
}

// Fetch reads the file for a kind into a RawTable. The header row becomes
// the column list (whitespace-trimmed); every data row becomes a raw column
// to cell mapping. Short rows leave trailing columns empty.
func (s *Store) Fetch(_ context.Context, kind domain.DatasetKind) (*domain.RawTable, error) {
	name, ok := s.files[kind]
	if !ok {
		return nil, fmt.Errorf("no source file configured for dataset %q", kind)
	}
	path := filepath.Join(s.dir, name)

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", name, err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", name, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%s has no header row", name)
	}

	header := make([]string, len(rows[0]))
	for i, col := range rows[0] {
		header[i] = strings.TrimSpace(col)
	}

	table := &domain.RawTable{Columns: header}
	for _, row := range rows[1:] {
		cells := make(map[string]string, len(header))
		for i, col := range header {
			if i < len(row) {
				cells[col] = row[i]
			} else {
				cells[col] = ""
			}
		}
		table.Rows = append(table.Rows, cells)
	}
	return table, nil
}
