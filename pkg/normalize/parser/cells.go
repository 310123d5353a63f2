package parser

import (
	"fmt"
	"strconv"
	"time"

	"github.com/ukaji3/saipos-normalize-go/pkg/normalize/models"
	"github.com/xuri/excelize/v2"
)

// ExtractCells extracts typed cell data from a sheet.
// Row i of the result is sheet row i+1; every row is padded to the sheet width.
func ExtractCells(f *excelize.File, sheetName string) (models.Grid, error) {
	rows, err := f.GetRows(sheetName, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, err
	}

	grid := make(models.Grid, 0, len(rows))
	for rowIdx, row := range rows {
		cells := make(models.Row, len(row))
		for colIdx, raw := range row {
			if raw == "" {
				cells[colIdx] = models.Empty()
				continue
			}

			cellName, err := excelize.CoordinatesToCellName(colIdx+1, rowIdx+1)
			if err != nil {
				return nil, err
			}
			cellType, err := f.GetCellType(sheetName, cellName)
			if err != nil {
				return nil, fmt.Errorf("cell %s: %w", cellName, err)
			}
			formula, err := f.GetCellFormula(sheetName, cellName)
			if err != nil {
				return nil, fmt.Errorf("cell %s: %w", cellName, err)
			}

			cells[colIdx] = classifyCell(cellType, formula, raw)
		}
		grid = append(grid, cells)
	}

	grid.Pad(grid.Width())
	return grid, nil
}

// classifyCell maps an excelize cell type and raw value to a typed cell.
// Formula cells are never text, whatever their cached result.
func classifyCell(cellType excelize.CellType, formula, raw string) models.Cell {
	if formula != "" {
		return models.Other(raw)
	}

	switch cellType {
	case excelize.CellTypeSharedString, excelize.CellTypeInlineString, excelize.CellTypeFormula:
		// t="str" without a formula is a plain string written by some exporters.
		return models.Text(raw)
	case excelize.CellTypeBool:
		return models.Bool(raw == "1" || raw == "TRUE" || raw == "true")
	case excelize.CellTypeDate:
		if t, err := time.Parse(time.RFC3339, raw); err == nil {
			return models.Date(t)
		}
		return models.Other(raw)
	case excelize.CellTypeNumber, excelize.CellTypeUnset:
		v := parseValue(raw)
		if s, ok := v.(string); ok {
			return models.Other(s)
		}
		return models.Number(v)
	default:
		return models.Other(raw)
	}
}

// parseValue attempts to parse a string value as a number.
// Returns int64 for integers, float64 for decimals, or the original string.
func parseValue(s string) interface{} {
	// Try integer first
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i
	}
	// Try float
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	// Return as string
	return s
}

// cellValue converts a cell to the value excelize writes for it.
func cellValue(c models.Cell) interface{} {
	if c.Kind == models.CellEmpty {
		return nil
	}
	return c.Value
}

// cellString renders a cell for text formats.
func cellString(c models.Cell) string {
	if c.Raw != "" {
		return c.Raw
	}
	switch v := c.Value.(type) {
	case nil:
		return ""
	case string:
		return v
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		if v {
			return "TRUE"
		}
		return "FALSE"
	case time.Time:
		if v.Hour() == 0 && v.Minute() == 0 && v.Second() == 0 {
			return v.Format("2006-01-02")
		}
		return v.Format("2006-01-02 15:04:05")
	default:
		return fmt.Sprint(v)
	}
}
