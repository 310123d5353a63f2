// Package annotator extracts parenthesized annotations from text cells into a
// leading column and strips the noise prefixes Saipos puts in item names.
package annotator

import (
	"regexp"
	"strings"

	"github.com/ukaji3/saipos-normalize-go/pkg/normalize/models"
)

// AnnotationColumn is the header label of the synthetic leading column.
const AnnotationColumn = "extraido_parenteses"

// DefaultHeaderRows is the number of report header rows in a Saipos export.
const DefaultHeaderRows = 3

// DefaultPrefixes are removed from every text cell, in order.
var DefaultPrefixes = []string{"Diversos - ", "- "}

var parenthesized = regexp.MustCompile(`\((.*?)\)`)

// Options configures Annotate.
type Options struct {
	// HeaderRows is the number of leading rows dropped before processing.
	HeaderRows int
	// Prefixes are literal substrings removed from every text cell, in order.
	Prefixes []string
}

// DefaultOptions returns the options used for Saipos exports.
func DefaultOptions() Options {
	return Options{
		HeaderRows: DefaultHeaderRows,
		Prefixes:   append([]string(nil), DefaultPrefixes...),
	}
}

// Annotate returns a new grid without the first opts.HeaderRows rows and with
// an annotation column inserted at position 0.
//
// Every output row has grid.Width()+1 cells. Column 0 is a text cell holding
// the trimmed content of the first parenthesized group found in the row, or ""
// when there is none. Text cells are cleaned with CleanCell; all other cells
// are copied as they are. The input grid is not modified.
func Annotate(grid models.Grid, opts Options) models.Grid {
	skip := opts.HeaderRows
	if skip < 0 {
		skip = 0
	}
	if skip >= len(grid) {
		return models.Grid{}
	}

	width := grid.Width()
	out := make(models.Grid, 0, len(grid)-skip)
	for _, src := range grid[skip:] {
		out = append(out, annotateRow(src, width, opts.Prefixes))
	}
	return out
}

func annotateRow(src models.Row, width int, prefixes []string) models.Row {
	row := make(models.Row, width+1)
	annotation := ""
	found := false

	for col := 0; col < width; col++ {
		if col >= len(src) {
			row[col+1] = models.Empty()
			continue
		}
		cell := src[col]
		text, ok := cell.AsText()
		if !ok {
			row[col+1] = cell
			continue
		}

		value, inner, matched := CleanCell(text, prefixes)
		if matched && !found {
			annotation = inner
			found = true
		}
		row[col+1] = models.Text(value)
	}

	row[0] = models.Text(annotation)
	return row
}

// CleanCell applies the text rules to a single cell value. Prefixes are
// stripped first. If the result contains a parenthesized group, inner is the
// trimmed content of the leftmost group and value has every group removed and
// is trimmed; otherwise value is the prefix-stripped text unchanged.
func CleanCell(text string, prefixes []string) (value, inner string, matched bool) {
	value = StripPrefixes(text, prefixes)
	inner, value, matched = ExtractAnnotation(value)
	return value, inner, matched
}

// StripPrefixes removes every occurrence of each literal in prefixes, in order.
// The ordered pass is repeated until the text stops changing, so applying
// StripPrefixes to its own result is a no-op.
func StripPrefixes(s string, prefixes []string) string {
	for {
		next := stripOnce(s, prefixes)
		if next == s {
			return s
		}
		s = next
	}
}

func stripOnce(s string, prefixes []string) string {
	for _, p := range prefixes {
		if p != "" {
			s = strings.ReplaceAll(s, p, "")
		}
	}
	return s
}

// ExtractAnnotation looks for the leftmost "(...)" group in s. When one is
// found it returns the group content trimmed, s with all groups removed and
// trimmed, and true. Otherwise it returns "", s and false.
func ExtractAnnotation(s string) (annotation, cleaned string, ok bool) {
	m := parenthesized.FindStringSubmatch(s)
	if m == nil {
		return "", s, false
	}
	annotation = strings.TrimSpace(m[1])
	cleaned = strings.TrimSpace(parenthesized.ReplaceAllLiteralString(s, ""))
	return annotation, cleaned, true
}
