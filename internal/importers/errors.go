// Package importers turns uploaded statement files into canonical
// transactions.
package importers

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedFile means the byte stream could not be parsed at all.
	ErrMalformedFile = errors.New("malformed file")

	ErrEmptySplitAmount = errors.New("both debit and credit are empty")
	ErrInvalidMapping   = errors.New("invalid column mapping")
	ErrUnsupportedType  = errors.New("unsupported file format")
)

// RowError describes a single row that was skipped. The import continues.
type RowError struct {
	Row   int    `json:"row"`
	Field string `json:"field"`
	Value string `json:"value,omitempty"`
	Err   error  `json:"-"`
}

func (e *RowError) Error() string {
	return fmt.Sprintf("row %d: %s %q: %v", e.Row, e.Field, e.Value, e.Err)
}

func (e *RowError) Unwrap() error {
	return e.Err
}

// Message is the user-facing reason, used in preview payloads.
func (e *RowError) Message() string {
	if e.Err == nil {
		return ""
	}
	return e.Err.Error()
}
