// Package models defines data structures for spreadsheet normalization.
package models

import "time"

// CellKind identifies the type of value held by a Cell.
type CellKind int

const (
	// CellEmpty is a blank cell.
	CellEmpty CellKind = iota
	// CellText is a plain string cell. Only text cells are rewritten.
	CellText
	// CellNumber holds a float64 or int64.
	CellNumber
	// CellBool holds a bool.
	CellBool
	// CellDate holds a time.Time.
	CellDate
	// CellOther holds anything else (errors, formulas) as its raw string.
	CellOther
)

func (k CellKind) String() string {
	switch k {
	case CellEmpty:
		return "empty"
	case CellText:
		return "text"
	case CellNumber:
		return "number"
	case CellBool:
		return "bool"
	case CellDate:
		return "date"
	default:
		return "other"
	}
}

// Cell is a single grid value.
type Cell struct {
	// Kind is the cell type.
	Kind CellKind `json:"kind"`
	// Value is a string for CellText and CellOther, float64 or int64 for
	// CellNumber, bool for CellBool, time.Time for CellDate and nil for CellEmpty.
	Value interface{} `json:"value,omitempty"`
	// Raw is the cell's source text when the reader keeps one (CSV fields).
	Raw string `json:"raw,omitempty"`
}

// Empty returns a blank cell.
func Empty() Cell {
	return Cell{Kind: CellEmpty}
}

// Text returns a text cell.
func Text(s string) Cell {
	return Cell{Kind: CellText, Value: s}
}

// Number returns a numeric cell. v should be a float64 or int64.
func Number(v interface{}) Cell {
	return Cell{Kind: CellNumber, Value: v}
}

// Bool returns a boolean cell.
func Bool(v bool) Cell {
	return Cell{Kind: CellBool, Value: v}
}

// Date returns a date cell.
func Date(t time.Time) Cell {
	return Cell{Kind: CellDate, Value: t}
}

// Other returns an opaque cell carrying its raw representation.
func Other(raw string) Cell {
	return Cell{Kind: CellOther, Value: raw}
}

// AsText returns the string of a text cell. ok is false for every other kind.
func (c Cell) AsText() (s string, ok bool) {
	if c.Kind != CellText {
		return "", false
	}
	s, ok = c.Value.(string)
	return s, ok
}
