// Package xlsx writes batch results as an Excel workbook.
package xlsx

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"
)

const sheetName = "Descriptions"

// headerRow is the fixed three-column header of the output sheet.
var headerRow = []interface{}{"ID", "Nazwa produktu", "Opis HTML"}

// Row is one result line: product identifier, product name, and either the
// generated HTML or an error marker.
type Row struct {
	ID   string
	Name string
	HTML string
}

// Writer persists result rows into .xlsx files under a base directory.
type Writer struct {
	dir string
}

// NewWriter creates a writer rooted at dir. The directory is created on the
// first write.
func NewWriter(dir string) *Writer {
	return &Writer{dir: dir}
}

// Write saves the rows as a workbook named filename inside the base
// directory, overwriting any prior file of the same name. It returns the
// full path of the written file.
func (w *Writer) Write(filename string, rows []Row) (string, error) {
	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	f := excelize.NewFile()
	defer func() {
		_ = f.Close()
	}()

	// A new workbook starts with a default sheet; rename it instead of
	// leaving an empty one behind.
	if err := f.SetSheetName(f.GetSheetName(0), sheetName); err != nil {
		return "", fmt.Errorf("failed to name sheet: %w", err)
	}

	if err := f.SetSheetRow(sheetName, "A1", &headerRow); err != nil {
		return "", fmt.Errorf("failed to write header: %w", err)
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return "", fmt.Errorf("failed to address row %d: %w", i+2, err)
		}
		values := []interface{}{row.ID, row.Name, row.HTML}
		if err := f.SetSheetRow(sheetName, cell, &values); err != nil {
			return "", fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}

	path := filepath.Join(w.dir, filename)
	if err := f.SaveAs(path); err != nil {
		return "", fmt.Errorf("failed to save workbook: %w", err)
	}

	return path, nil
}
