package dataset

import (
	"errors"
	"fmt"

	"github.com/calebsarmiento/Babies-Dogs-Naming/schema"
)

var (
	// ErrMissingColumn is returned when a source header lacks a schema column.
	ErrMissingColumn = schema.ErrMissingColumn
	// ErrMalformedCSV is returned when a file is not well-formed delimited text.
	ErrMalformedCSV = errors.New("malformed csv")
	// ErrInvalidValue is returned when a cell cannot be coerced to its column type.
	ErrInvalidValue = errors.New("invalid value")
)

// ParseError describes a single cell that failed type coercion.
// Row is the 1-based line number in the source file, header included.
type ParseError struct {
	File   string
	Row    int
	Column string
	Value  string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s:%d: column %s: %v %q: %v", e.File, e.Row, e.Column, ErrInvalidValue, e.Value, e.Err)
}

// Unwrap lets errors.Is match both ErrInvalidValue and the underlying cause.
func (e *ParseError) Unwrap() []error {
	return []error{ErrInvalidValue, e.Err}
}
