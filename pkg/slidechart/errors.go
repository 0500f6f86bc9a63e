package slidechart

import (
	"errors"
	"fmt"
)

// ErrFileNotFound indicates the input file does not exist.
var ErrFileNotFound = errors.New("file not found")

// ErrInvalidFormat indicates the input file is not a valid xlsx format.
var ErrInvalidFormat = errors.New("invalid xlsx format")

// ImportError represents an error while importing one part of a workbook.
type ImportError struct {
	Sheet     string
	Component string // "charts", "tables"
	Err       error
}

func (e *ImportError) Error() string {
	if e.Sheet == "" {
		return fmt.Sprintf("import error (%s): %v", e.Component, e.Err)
	}
	return fmt.Sprintf("import error in sheet %q (%s): %v", e.Sheet, e.Component, e.Err)
}

func (e *ImportError) Unwrap() error {
	return e.Err
}

// NewImportError creates a new ImportError.
func NewImportError(sheet, component string, err error) *ImportError {
	return &ImportError{
		Sheet:     sheet,
		Component: component,
		Err:       err,
	}
}
