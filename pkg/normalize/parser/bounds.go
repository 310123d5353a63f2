package parser

import (
	"fmt"

	"github.com/ukaji3/saipos-normalize-go/pkg/normalize/models"
	"github.com/xuri/excelize/v2"
)

// DataRange returns the cell range (e.g., "A1:D10") bounding the non-empty
// cells of grid, or "" when every cell is empty.
func DataRange(grid models.Grid) string {
	minRow, maxRow, minCol, maxCol := findDataBounds(grid)
	if minRow < 0 {
		return ""
	}

	startCell, _ := excelize.CoordinatesToCellName(minCol+1, minRow+1)
	endCell, _ := excelize.CoordinatesToCellName(maxCol+1, maxRow+1)
	return fmt.Sprintf("%s:%s", startCell, endCell)
}

// findDataBounds finds the bounding box of non-empty cells.
func findDataBounds(grid models.Grid) (minRow, maxRow, minCol, maxCol int) {
	minRow, maxRow = -1, -1
	minCol, maxCol = -1, -1

	for rowIdx, row := range grid {
		for colIdx, cell := range row {
			if isBlank(cell) {
				continue
			}
			if minRow < 0 || rowIdx < minRow {
				minRow = rowIdx
			}
			if maxRow < 0 || rowIdx > maxRow {
				maxRow = rowIdx
			}
			if minCol < 0 || colIdx < minCol {
				minCol = colIdx
			}
			if maxCol < 0 || colIdx > maxCol {
				maxCol = colIdx
			}
		}
	}

	return
}

// CountNonEmpty counts cells that are neither empty nor blank text.
func CountNonEmpty(grid models.Grid) int {
	count := 0
	for _, row := range grid {
		for _, cell := range row {
			if !isBlank(cell) {
				count++
			}
		}
	}
	return count
}

func isBlank(cell models.Cell) bool {
	if cell.Kind == models.CellEmpty {
		return true
	}
	text, ok := cell.AsText()
	return ok && text == ""
}
