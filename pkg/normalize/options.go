// Package normalize cleans Saipos spreadsheet exports: it drops the report
// header rows, moves parenthesized annotations into a leading column and
// strips the noise prefixes from item names.
package normalize

import (
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/ukaji3/saipos-normalize-go/pkg/normalize/annotator"
	"github.com/ukaji3/saipos-normalize-go/pkg/normalize/parser"
)

// Format represents an input file format.
type Format string

const (
	// FormatXLSX is an Office Open XML workbook (.xlsx, .xlsm).
	FormatXLSX Format = "xlsx"
	// FormatXLS is a legacy BIFF workbook (.xls). Output is written as xlsx.
	FormatXLS Format = "xls"
	// FormatCSV is a delimited text file (.csv).
	FormatCSV Format = "csv"
)

// OutputSuffix is appended to the input base name to build the output name.
const OutputSuffix = "_tratado"

// Options configures normalization behavior.
type Options struct {
	// Sheet is the worksheet to process. Empty selects the first sheet.
	Sheet string
	// HeaderRows is the number of leading rows dropped before processing.
	HeaderRows int
	// OutputDir is the directory the output file is written to.
	// Empty means the current working directory.
	OutputDir string
	// WriteHeader adds a header row naming the annotation column and the
	// original column indexes.
	WriteHeader bool
	// CSV configures delimiter and encoding for CSV inputs.
	CSV parser.CSVOptions
	// Logger receives progress logs. Nil discards them.
	Logger *slog.Logger
}

func (o Options) logger() *slog.Logger {
	if o.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return o.Logger
}

// DefaultOptions returns default normalization options.
func DefaultOptions() Options {
	return Options{
		HeaderRows: annotator.DefaultHeaderRows,
		OutputDir:  ".",
	}
}

// DetectFormat returns the format for path based on its extension.
func DetectFormat(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		return FormatXLSX, nil
	case ".xls":
		return FormatXLS, nil
	case ".csv":
		return FormatCSV, nil
	default:
		return "", ErrUnsupportedFormat
	}
}

// OutputPath returns <outputDir>/<basename>_tratado.<ext> for inputPath.
// Legacy .xls inputs get an .xlsx extension since they are written as xlsx.
func OutputPath(inputPath, outputDir string) string {
	base := filepath.Base(inputPath)
	ext := filepath.Ext(base)
	name := strings.TrimSuffix(base, ext)
	if strings.EqualFold(ext, ".xls") {
		ext = ".xlsx"
	}
	if outputDir == "" {
		outputDir = "."
	}
	return filepath.Join(outputDir, name+OutputSuffix+ext)
}
