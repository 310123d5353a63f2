package parser

import (
	"fmt"
	"io"

	"github.com/ukaji3/saipos-normalize-go/pkg/normalize/models"
	"github.com/xuri/excelize/v2"
)

// WriteOptions controls how a normalized grid is written.
type WriteOptions struct {
	// DropRows is the number of leading source rows absent from the grid.
	// Only RewriteXLSX uses it, to remove them from the copied workbook.
	DropRows int
	// Header, when non-nil, is written as the first output row.
	Header []interface{}
}

// ReadXLSX loads a worksheet from an xlsx/xlsm workbook.
// An empty sheetName selects the first sheet.
func ReadXLSX(path, sheetName string) (*models.Sheet, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}
	defer f.Close()

	_, name, err := resolveSheet(f.GetSheetList(), sheetName)
	if err != nil {
		return nil, err
	}

	rows, err := ExtractCells(f, name)
	if err != nil {
		return nil, fmt.Errorf("%w: sheet %q: %v", ErrInvalidFormat, name, err)
	}

	return &models.Sheet{
		Name: name,
		Path: path,
		Rows: rows,
	}, nil
}

// RewriteXLSX writes grid to dst as a copy of the workbook src was read from.
//
// The copy keeps only src's sheet, drops opts.DropRows leading rows, inserts
// the annotation column at A and rewrites text cells from grid. Cells that are
// not text in grid keep their original value, style and formula.
func RewriteXLSX(src *models.Sheet, grid models.Grid, dst string, opts WriteOptions) error {
	f, err := excelize.OpenFile(src.Path)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}
	defer f.Close()

	for _, name := range f.GetSheetList() {
		if name == src.Name {
			continue
		}
		if err := f.DeleteSheet(name); err != nil {
			return fmt.Errorf("delete sheet %q: %w", name, err)
		}
	}
	if idx, err := f.GetSheetIndex(src.Name); err == nil && idx >= 0 {
		f.SetActiveSheet(idx)
	}

	drop := opts.DropRows
	if drop > len(src.Rows) {
		drop = len(src.Rows)
	}
	for i := 0; i < drop; i++ {
		if err := f.RemoveRow(src.Name, 1); err != nil {
			return fmt.Errorf("remove row: %w", err)
		}
	}
	if err := f.InsertCols(src.Name, "A", 1); err != nil {
		return fmt.Errorf("insert annotation column: %w", err)
	}

	offset := 0
	if opts.Header != nil {
		if err := f.InsertRows(src.Name, 1, 1); err != nil {
			return fmt.Errorf("insert header row: %w", err)
		}
		if err := f.SetSheetRow(src.Name, "A1", &opts.Header); err != nil {
			return fmt.Errorf("write header row: %w", err)
		}
		offset = 1
	}

	for rowIdx, row := range grid {
		for colIdx, cell := range row {
			text, ok := cell.AsText()
			if !ok || (colIdx == 0 && text == "") {
				continue
			}
			cellName, err := excelize.CoordinatesToCellName(colIdx+1, rowIdx+1+offset)
			if err != nil {
				return err
			}
			if err := f.SetCellStr(src.Name, cellName, text); err != nil {
				return fmt.Errorf("cell %s: %w", cellName, err)
			}
		}
	}

	return writeAtomic(dst, func(w io.Writer) error {
		return f.Write(w)
	})
}

// WriteWorkbook writes grid to dst as a new single-sheet xlsx workbook.
// Used for sources excelize cannot rewrite in place.
func WriteWorkbook(sheetName string, grid models.Grid, dst string, opts WriteOptions) error {
	f := excelize.NewFile()
	defer f.Close()

	name := f.GetSheetName(0)
	if sheetName != "" && sheetName != name {
		if err := f.SetSheetName(name, sheetName); err != nil {
			return fmt.Errorf("rename sheet: %w", err)
		}
		name = sheetName
	}

	sw, err := f.NewStreamWriter(name)
	if err != nil {
		return err
	}

	rowNum := 1
	if opts.Header != nil {
		if err := sw.SetRow("A1", opts.Header); err != nil {
			return fmt.Errorf("write header row: %w", err)
		}
		rowNum++
	}

	for _, row := range grid {
		values := make([]interface{}, len(row))
		for i, cell := range row {
			values[i] = cellValue(cell)
		}
		cellName, err := excelize.CoordinatesToCellName(1, rowNum)
		if err != nil {
			return err
		}
		if err := sw.SetRow(cellName, values); err != nil {
			return fmt.Errorf("write row %d: %w", rowNum, err)
		}
		rowNum++
	}

	if err := sw.Flush(); err != nil {
		return err
	}

	return writeAtomic(dst, func(w io.Writer) error {
		return f.Write(w)
	})
}

// resolveSheet returns the index and name of the wanted sheet.
// An empty want selects the first sheet.
func resolveSheet(names []string, want string) (int, string, error) {
	if len(names) == 0 {
		return -1, "", fmt.Errorf("%w: workbook has no sheets", ErrSheetNotFound)
	}
	if want == "" {
		return 0, names[0], nil
	}
	for i, name := range names {
		if name == want {
			return i, name, nil
		}
	}
	return -1, "", fmt.Errorf("%w: %q", ErrSheetNotFound, want)
}
