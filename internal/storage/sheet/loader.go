// Package sheet loads ABSA result spreadsheets (.xlsx or .csv) into the
// canonical review table.
package sheet

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"absa_dashboard/internal/domain"
)

// Loader reads one spreadsheet file. It holds no data between calls.
type Loader struct {
	path  string
	sheet string
}

// New returns a loader for path. For workbooks the first sheet is read
// unless sheet is set.
func New(path, sheet string) *Loader {
	return &Loader{path: path, sheet: sheet}
}

func (l *Loader) Load(ctx context.Context) (domain.Table, error) {
	if err := ctx.Err(); err != nil {
		return domain.Table{}, err
	}
	var (
		rows [][]string
		err  error
	)
	switch strings.ToLower(filepath.Ext(l.path)) {
	case ".csv":
		rows, err = readCSV(l.path)
	default:
		rows, err = readWorkbook(l.path, l.sheet)
	}
	if err != nil {
		return domain.Table{}, fmt.Errorf("%w: %s: %w", domain.ErrLoadFailure, l.path, err)
	}
	return FromRows("file:"+filepath.Base(l.path), rows)
}

func readWorkbook(path, sheet string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	if sheet == "" {
		list := f.GetSheetList()
		if len(list) == 0 {
			return nil, fmt.Errorf("workbook has no sheets")
		}
		sheet = list[0]
	}
	return f.GetRows(sheet)
}

func readCSV(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	return r.ReadAll()
}

// FromRows normalizes a header row plus data rows into the canonical
// schema. Header names are trimmed and lowercased; unknown columns are
// dropped; a missing required column fails with ErrMissingColumn.
func FromRows(source string, rows [][]string) (domain.Table, error) {
	var header []string
	if len(rows) > 0 {
		header = rows[0]
	}
	index := make(map[string]int, len(header))
	for i, h := range header {
		if i == 0 {
			h = strings.TrimPrefix(h, "\ufeff") // Excel CSV exports lead with a BOM
		}
		name := domain.Normalize(h)
		if _, dup := index[name]; !dup {
			index[name] = i
		}
	}
	for _, col := range domain.RequiredColumns {
		if _, ok := index[col]; !ok {
			return domain.Table{}, fmt.Errorf("%w: %q in %s", domain.ErrMissingColumn, col, source)
		}
	}

	cell := func(row []string, col string) string {
		if i := index[col]; i < len(row) {
			return row[i]
		}
		return ""
	}

	t := domain.Table{Source: source, Columns: domain.RequiredColumns}
	if len(rows) > 1 {
		t.Records = make([]domain.ReviewRecord, 0, len(rows)-1)
	}
	for _, row := range rows[min(1, len(rows)):] {
		if isBlank(row) {
			continue
		}
		t.Records = append(t.Records, domain.NewReviewRecord(
			cell(row, domain.ColPlatform),
			cell(row, domain.ColSentiment),
			cell(row, domain.ColSentence),
		))
	}
	return t, nil
}

func isBlank(row []string) bool {
	for _, c := range row {
		if c != "" {
			return false
		}
	}
	return true
}
