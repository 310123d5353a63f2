package normalize

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/ukaji3/saipos-normalize-go/pkg/normalize/annotator"
	"github.com/ukaji3/saipos-normalize-go/pkg/normalize/models"
	"github.com/ukaji3/saipos-normalize-go/pkg/normalize/parser"
)

// Normalize reads the first (or selected) sheet of the file at path, applies
// the annotator and writes <basename>_tratado.<ext> into opts.OutputDir.
func Normalize(path string, opts Options) (*models.Report, error) {
	info, err := os.Stat(path)
	if err != nil || !info.Mode().IsRegular() {
		return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
	}

	format, err := DetectFormat(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", err, filepath.Ext(path))
	}

	logger := opts.logger().With(
		slog.String("input", path),
		slog.String("format", string(format)),
	)
	logger.Info("Reading sheet", slog.String("sheet", opts.Sheet))

	sheet, err := readSheet(path, format, opts)
	if err != nil {
		return nil, NewNormalizeError(StageRead, path, err)
	}
	logger.Info("Sheet loaded",
		slog.String("sheet", sheet.Name),
		slog.Int("rows", len(sheet.Rows)),
		slog.Int("columns", sheet.Width()),
		slog.String("data_range", parser.DataRange(sheet.Rows)),
		slog.Int("non_empty_cells", parser.CountNonEmpty(sheet.Rows)))

	aopts := annotator.DefaultOptions()
	aopts.HeaderRows = opts.HeaderRows
	grid := annotator.Annotate(sheet.Rows, aopts)

	annotated := 0
	for i, row := range grid {
		if text, _ := row[0].AsText(); text != "" {
			annotated++
			logger.Debug("Row annotated", slog.Int("row", i), slog.String("annotation", text))
		}
	}

	columns := sheet.Width() + 1
	wopts := parser.WriteOptions{DropRows: opts.HeaderRows}
	if opts.WriteHeader {
		wopts.Header = headerRow(columns)
	}

	dst := OutputPath(path, opts.OutputDir)
	logger.Info("Writing output", slog.String("output", dst), slog.Int("rows", len(grid)))
	if err := writeSheet(sheet, grid, format, dst, opts, wopts); err != nil {
		return nil, NewNormalizeError(StageWrite, dst, err)
	}

	return &models.Report{
		BookName:   filepath.Base(path),
		SheetName:  sheet.Name,
		OutputPath: dst,
		Rows:       len(grid),
		Columns:    columns,
		Annotated:  annotated,
	}, nil
}

func readSheet(path string, format Format, opts Options) (*models.Sheet, error) {
	switch format {
	case FormatXLSX:
		return parser.ReadXLSX(path, opts.Sheet)
	case FormatXLS:
		return parser.ReadXLS(path, opts.Sheet)
	case FormatCSV:
		return parser.ReadCSV(path, opts.CSV)
	default:
		return nil, ErrUnsupportedFormat
	}
}

func writeSheet(sheet *models.Sheet, grid models.Grid, format Format, dst string, opts Options, wopts parser.WriteOptions) error {
	switch format {
	case FormatXLSX:
		return parser.RewriteXLSX(sheet, grid, dst, wopts)
	case FormatXLS:
		return parser.WriteWorkbook(sheet.Name, grid, dst, wopts)
	case FormatCSV:
		return parser.WriteCSV(grid, dst, opts.CSV, wopts)
	default:
		return ErrUnsupportedFormat
	}
}

// headerRow labels the annotation column and then each source column by its
// 0-based index.
func headerRow(columns int) []interface{} {
	header := make([]interface{}, columns)
	header[0] = annotator.AnnotationColumn
	for i := 1; i < columns; i++ {
		header[i] = i - 1
	}
	return header
}
