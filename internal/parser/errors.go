package parser

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorKind classifies structural failures of a workbook.
type ErrorKind string

const (
	ErrSheetNotFound          ErrorKind = "SHEET_NOT_FOUND"
	ErrHeaderNotFound         ErrorKind = "HEADER_NOT_FOUND"
	ErrMissingRequiredColumns ErrorKind = "MISSING_REQUIRED_COLUMNS"
	ErrNoExtractableRows      ErrorKind = "NO_EXTRACTABLE_ROWS"
)

// StructuralError reports that the workbook does not have the shape an import
// pipeline expects. It is a client error: retrying the same file fails again.
type StructuralError struct {
	Kind    ErrorKind `json:"kind"`
	Sheet   string    `json:"sheet,omitempty"`
	Message string    `json:"message"`
	Missing []string  `json:"missing,omitempty"`
}

func (e *StructuralError) Error() string {
	var b strings.Builder
	b.WriteString(string(e.Kind))
	b.WriteString(": ")
	b.WriteString(e.Message)
	if len(e.Missing) > 0 {
		fmt.Fprintf(&b, " (missing: %s)", strings.Join(e.Missing, ", "))
	}
	return b.String()
}

// AsStructural unwraps err into a *StructuralError.
func AsStructural(err error) (*StructuralError, bool) {
	var se *StructuralError
	if errors.As(err, &se) {
		return se, true
	}
	return nil, false
}

// IsKind reports whether err is a structural error of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	se, ok := AsStructural(err)
	return ok && se.Kind == kind
}
