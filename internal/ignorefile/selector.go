package ignorefile

import (
	"iter"

	"github.com/nao1215/wpkit/internal/table"
)

// Default column names and marker of the diff analysis report.
const (
	DefaultActionColumn = "GitHub Action"
	DefaultPathColumn   = "Full Path and Filename"
	DefaultMarker       = "Ignore"
)

// Selector chooses which report rows become ignore entries.
type Selector struct {
	// ActionColumn holds the per-row decision.
	ActionColumn string

	// PathColumn holds the path or pattern to ignore.
	PathColumn string

	// Marker is the action value that selects a row. Comparison is exact and
	// case-sensitive. Rows with an empty action are selected as well.
	Marker string
}

// NewSelector returns a Selector using the default columns and marker.
func NewSelector() *Selector {
	return &Selector{
		ActionColumn: DefaultActionColumn,
		PathColumn:   DefaultPathColumn,
		Marker:       DefaultMarker,
	}
}

// Columns returns the columns a table must have for this Selector.
func (s *Selector) Columns() []string {
	return []string{s.ActionColumn, s.PathColumn}
}

// Match returns the path of rec and true when rec should be ignored.
// Values are expected to be trimmed already, as table.Reader does.
func (s *Selector) Match(rec table.Record) (string, bool) {
	action := rec.Get(s.ActionColumn)
	if action != s.Marker && action != "" {
		return "", false
	}
	path := rec.Get(s.PathColumn)
	if path == "" {
		return "", false
	}
	return path, true
}

// Select returns the selected paths in source row order. It stops at the
// first error from records.
func (s *Selector) Select(records iter.Seq2[table.Record, error]) ([]string, error) {
	var paths []string
	for rec, err := range records {
		if err != nil {
			return nil, err
		}
		if path, ok := s.Match(rec); ok {
			paths = append(paths, path)
		}
	}
	return paths, nil
}
