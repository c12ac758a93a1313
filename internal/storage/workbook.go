package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"
)

// Workbook persists each collection as a single-sheet spreadsheet file under
// its own key in the data directory. Reads and writes are synchronous, so
// Init only ensures the directory exists.
type Workbook struct {
	dir string
}

// NewWorkbook returns a workbook backend rooted at dir.
func NewWorkbook(dir string) *Workbook {
	return &Workbook{dir: dir}
}

func (w *Workbook) Init(ctx context.Context) error {
	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return fmt.Errorf("create data directory: %w", err)
	}
	return nil
}

func (w *Workbook) path(key string) string {
	return filepath.Join(w.dir, key+".xlsx")
}

func (w *Workbook) ReadAll(ctx context.Context, key string) ([]Row, error) {
	file, err := excelize.OpenFile(w.path(key))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("open workbook %s: %w", key, err)
	}
	defer file.Close()

	sheet := file.GetSheetName(0)
	if sheet == "" {
		return nil, nil
	}

	cells, err := file.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %s: %w", key, err)
	}
	if len(cells) < 2 {
		return nil, nil
	}

	header := cells[0]
	rows := make([]Row, 0, len(cells)-1)
	for _, line := range cells[1:] {
		row := make(Row, len(header))
		for idx, column := range header {
			if idx < len(line) {
				row[column] = line[idx]
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func (w *Workbook) WriteAll(ctx context.Context, key string, columns []string, rows []Row) error {
	file := excelize.NewFile()
	defer file.Close()

	if err := file.SetSheetName("Sheet1", key); err != nil {
		return fmt.Errorf("name sheet %s: %w", key, err)
	}

	header := make([]any, len(columns))
	for idx, column := range columns {
		header[idx] = column
	}
	if err := file.SetSheetRow(key, "A1", &header); err != nil {
		return fmt.Errorf("write header %s: %w", key, err)
	}

	for idx, row := range rows {
		cells := make([]any, len(columns))
		for col, column := range columns {
			cells[col] = row[column]
		}
		anchor, err := excelize.CoordinatesToCellName(1, idx+2)
		if err != nil {
			return fmt.Errorf("address row %d of %s: %w", idx+2, key, err)
		}
		if err := file.SetSheetRow(key, anchor, &cells); err != nil {
			return fmt.Errorf("write row %d of %s: %w", idx+2, key, err)
		}
	}

	if err := file.SaveAs(w.path(key)); err != nil {
		return fmt.Errorf("save workbook %s: %w", key, err)
	}
	return nil
}
