package models

// Report summarizes a completed normalization run.
type Report struct {
	// BookName is the input file name (no path).
	BookName string `json:"book_name"`
	// SheetName is the processed worksheet.
	SheetName string `json:"sheet_name"`
	// OutputPath is where the normalized file was written.
	OutputPath string `json:"output_path"`
	// Rows is the number of data rows written, header excluded.
	Rows int `json:"rows"`
	// Columns is the number of columns written, annotation column included.
	Columns int `json:"columns"`
	// Annotated is the number of rows with a non-empty annotation.
	Annotated int `json:"annotated"`
}
