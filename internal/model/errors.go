package model

import (
	"errors"
	"fmt"
	"strings"
)

// Error kinds shared by both tools.
// Callers classify failures with errors.Is; the concrete error carries the
// path or column names involved.
var (
	// ErrNotFound is returned when an input file or directory is missing.
	ErrNotFound = errors.New("not found")

	// ErrSchema is returned when a table lacks required columns.
	ErrSchema = errors.New("schema error")

	// ErrRead is returned when an input cannot be decoded or parsed.
	ErrRead = errors.New("read error")

	// ErrIO is returned when an output file cannot be written or removed.
	ErrIO = errors.New("i/o error")

	// ErrConfigWarning marks non-fatal per-entry problems. Errors of this kind
	// are logged and the affected entry keeps its default values.
	ErrConfigWarning = errors.New("warning")
)

// MissingColumnsError reports required columns absent from a table header.
// It matches ErrSchema under errors.Is.
type MissingColumnsError struct {
	// Missing lists the required columns that were not found, in the order
	// they were requested.
	Missing []string

	// Available lists the header columns that were found.
	Available []string
}

// Error implements the error interface.
func (e *MissingColumnsError) Error() string {
	quoted := make([]string, len(e.Missing))
	for i, m := range e.Missing {
		quoted[i] = fmt.Sprintf("%q", m)
	}
	return fmt.Sprintf("required columns %s not found (available columns: %s)",
		strings.Join(quoted, ", "), strings.Join(e.Available, ", "))
}

// Is reports whether target is ErrSchema.
func (e *MissingColumnsError) Is(target error) bool {
	return target == ErrSchema
}
