package models

// Row is an ordered sequence of cells indexed by column position (0-based).
type Row []Cell

// Grid is an ordered sequence of rows.
type Grid []Row

// Width returns the largest row length in the grid.
func (g Grid) Width() int {
	width := 0
	for _, row := range g {
		if len(row) > width {
			width = len(row)
		}
	}
	return width
}

// Pad extends every row with empty cells up to width columns.
// Rows already at or beyond width are left as they are.
func (g Grid) Pad(width int) {
	for i, row := range g {
		for len(row) < width {
			row = append(row, Empty())
		}
		g[i] = row
	}
}

// Sheet represents a single worksheet loaded from a file.
type Sheet struct {
	// Name is the worksheet name. CSV sources use the file base name.
	Name string `json:"name"`
	// Path is the file the sheet was read from.
	Path string `json:"path"`
	// Rows contains every row of the sheet, header rows included.
	Rows Grid `json:"rows"`
}

// Width returns the column count of the sheet.
func (s *Sheet) Width() int {
	return s.Rows.Width()
}
