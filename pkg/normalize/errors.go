package normalize

import (
	"errors"
	"fmt"

	"github.com/ukaji3/saipos-normalize-go/pkg/normalize/parser"
)

// ErrFileNotFound indicates the input path is not an existing regular file.
var ErrFileNotFound = errors.New("file not found")

// ErrUnsupportedFormat indicates the input extension has no reader.
var ErrUnsupportedFormat = errors.New("unsupported file format")

// ErrInvalidFormat indicates the input could not be parsed as its format.
var ErrInvalidFormat = parser.ErrInvalidFormat

// ErrSheetNotFound indicates the requested worksheet does not exist.
var ErrSheetNotFound = parser.ErrSheetNotFound

// Stage names used in NormalizeError.
const (
	StageRead  = "read"
	StageWrite = "write"
)

// NormalizeError represents a failure while processing a file.
type NormalizeError struct {
	Stage string // "read" or "write"
	Path  string
	Err   error
}

func (e *NormalizeError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Stage, e.Path, e.Err)
}

func (e *NormalizeError) Unwrap() error {
	return e.Err
}

// NewNormalizeError creates a new NormalizeError.
func NewNormalizeError(stage, path string, err error) *NormalizeError {
	return &NormalizeError{
		Stage: stage,
		Path:  path,
		Err:   err,
	}
}
