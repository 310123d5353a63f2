package parser

import "errors"

// ErrInvalidFormat indicates the input could not be parsed as its format.
var ErrInvalidFormat = errors.New("invalid spreadsheet format")

// ErrSheetNotFound indicates the requested worksheet does not exist.
var ErrSheetNotFound = errors.New("sheet not found")
