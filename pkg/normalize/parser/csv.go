package parser

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ukaji3/saipos-normalize-go/pkg/normalize/models"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

// CSVOptions configures CSV reading and writing.
type CSVOptions struct {
	// Delimiter is the field separator. Zero means ','.
	Delimiter rune
	// Encoding is the input encoding: "utf-8", "windows-1252" or "iso-8859-1".
	// Output is always UTF-8.
	Encoding string
}

func (o CSVOptions) delimiter() rune {
	if o.Delimiter == 0 {
		return ','
	}
	return o.Delimiter
}

// SupportedEncodings lists the accepted CSVOptions.Encoding values.
var SupportedEncodings = []string{"utf-8", "windows-1252", "iso-8859-1"}

// decoder wraps r with a decoder for the named encoding.
func decoder(r io.Reader, encoding string) (io.Reader, error) {
	switch strings.ToLower(encoding) {
	case "", "utf-8", "utf8":
		return r, nil
	case "windows-1252", "cp1252":
		return transform.NewReader(r, charmap.Windows1252.NewDecoder()), nil
	case "iso-8859-1", "latin1":
		return transform.NewReader(r, charmap.ISO8859_1.NewDecoder()), nil
	default:
		return nil, fmt.Errorf("unsupported encoding %q", encoding)
	}
}

// ReadCSV loads a CSV file as a single sheet named after the file.
// Numeric fields become number cells that keep their source text; empty
// fields are empty cells; everything else is text.
func ReadCSV(path string, opts CSVOptions) (*models.Sheet, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	in, err := decoder(file, opts.Encoding)
	if err != nil {
		return nil, err
	}

	r := csv.NewReader(in)
	r.Comma = opts.delimiter()
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}

	grid := make(models.Grid, 0, len(records))
	for i, record := range records {
		if i == 0 && len(record) > 0 {
			record[0] = strings.TrimPrefix(record[0], "\ufeff")
		}
		row := make(models.Row, len(record))
		for j, field := range record {
			row[j] = csvCell(field)
		}
		grid = append(grid, row)
	}
	grid.Pad(grid.Width())

	base := filepath.Base(path)
	return &models.Sheet{
		Name: strings.TrimSuffix(base, filepath.Ext(base)),
		Path: path,
		Rows: grid,
	}, nil
}

func csvCell(field string) models.Cell {
	if field == "" {
		return models.Empty()
	}
	v := parseValue(field)
	if _, ok := v.(string); ok {
		return models.Text(field)
	}
	c := models.Number(v)
	c.Raw = field
	return c
}

// WriteCSV writes grid to dst as UTF-8 CSV.
func WriteCSV(grid models.Grid, dst string, opts CSVOptions, wopts WriteOptions) error {
	return writeAtomic(dst, func(out io.Writer) error {
		w := csv.NewWriter(out)
		w.Comma = opts.delimiter()

		if wopts.Header != nil {
			record := make([]string, len(wopts.Header))
			for i, v := range wopts.Header {
				record[i] = fmt.Sprint(v)
			}
			if err := w.Write(record); err != nil {
				return err
			}
		}

		for _, row := range grid {
			record := make([]string, len(row))
			for i, cell := range row {
				record[i] = cellString(cell)
			}
			if err := w.Write(record); err != nil {
				return err
			}
		}

		w.Flush()
		return w.Error()
	})
}
