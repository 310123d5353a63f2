package parser

import (
	"fmt"
	"io"
	"math"

	"github.com/ukaji3/saipos-normalize-go/pkg/normalize/models"
	"github.com/yamitzky/xlrd-go/xlrd"
)

// ReadXLS loads a worksheet from a legacy BIFF (.xls) workbook.
// An empty sheetName selects the first sheet.
func ReadXLS(path, sheetName string) (*models.Sheet, error) {
	book, err := xlrd.OpenWorkbook(path, &xlrd.OpenWorkbookOptions{
		Logfile:        io.Discard,
		FormattingInfo: true,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}
	defer book.ReleaseResources()

	idx, name, err := resolveSheet(book.SheetNames(), sheetName)
	if err != nil {
		return nil, err
	}
	sheet, err := book.SheetByIndex(idx)
	if err != nil {
		return nil, fmt.Errorf("%w: sheet %q: %v", ErrInvalidFormat, name, err)
	}

	grid := make(models.Grid, sheet.NRows)
	for rowx := 0; rowx < sheet.NRows; rowx++ {
		row := make(models.Row, sheet.NCols)
		for colx := 0; colx < sheet.NCols; colx++ {
			row[colx] = xlsCell(book, sheet, rowx, colx)
		}
		grid[rowx] = row
	}

	return &models.Sheet{
		Name: name,
		Path: path,
		Rows: grid,
	}, nil
}

func xlsCell(book *xlrd.Book, sheet *xlrd.Sheet, rowx, colx int) models.Cell {
	value := sheet.CellValue(rowx, colx)

	switch sheet.CellType(rowx, colx) {
	case xlrd.XL_CELL_TEXT:
		s, _ := value.(string)
		if s == "" {
			return models.Empty()
		}
		return models.Text(s)
	case xlrd.XL_CELL_NUMBER, xlrd.XL_CELL_DATE:
		v, ok := toFloat(value)
		if !ok {
			return models.Other(fmt.Sprint(value))
		}
		if isDateCell(book, sheet.CellXFIndex(rowx, colx)) && !math.IsNaN(v) && !math.IsInf(v, 0) {
			if t, err := xlrd.XldateAsDatetime(v, book.Datemode); err == nil {
				return models.Date(t)
			}
		}
		return models.Number(v)
	case xlrd.XL_CELL_BOOLEAN:
		switch b := value.(type) {
		case bool:
			return models.Bool(b)
		case int:
			return models.Bool(b != 0)
		}
		return models.Other(fmt.Sprint(value))
	case xlrd.XL_CELL_ERROR:
		return models.Other(errorText(value))
	default:
		return models.Empty()
	}
}

func isDateCell(book *xlrd.Book, xfIndex int) bool {
	if xfIndex < 0 || xfIndex >= len(book.XFList) {
		return false
	}
	formatKey := book.XFList[xfIndex].FormatKey
	switch formatKey {
	case 14, 15, 16, 17, 18, 19, 20, 21, 22, 27, 30, 36, 50, 57, 58:
		return true
	}
	if book.FormatMap == nil {
		return false
	}
	format := book.FormatMap[formatKey]
	if format == nil || format.FormatString == "" {
		return false
	}
	return xlrd.IsDateFormatString(book, format.FormatString)
}

func errorText(value interface{}) string {
	switch v := value.(type) {
	case byte:
		if text, ok := xlrd.ErrorTextFromCode[v]; ok {
			return text
		}
	case int:
		if text, ok := xlrd.ErrorTextFromCode[byte(v)]; ok {
			return text
		}
	}
	return "#ERROR"
}

func toFloat(value interface{}) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	default:
		return 0, false
	}
}
