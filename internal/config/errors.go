package config

import "errors"

// Validation errors returned by IgnoreConfig.Validate and ScanConfig.Validate.
// Callers match them with errors.Is.
var (
	// ErrNoInput is returned when no table file is given.
	ErrNoInput = errors.New("no input table specified")

	// ErrNoOutput is returned when the output path is empty.
	ErrNoOutput = errors.New("no output file specified")

	// ErrInvalidMode is returned when the write mode is not append or replace.
	ErrInvalidMode = errors.New("invalid mode: must be append or replace")

	// ErrEmptyColumn is returned when a column name is blank.
	ErrEmptyColumn = errors.New("column names must not be empty")

	// ErrSameColumn is returned when the action and path columns are the same.
	// A row could then never hold both a decision and a path.
	ErrSameColumn = errors.New("action column and path column must differ")

	// ErrEmptyMarker is returned when the ignore marker is blank.
	ErrEmptyMarker = errors.New("marker must not be empty")

	// ErrNoRoot is returned when no WordPress root is given.
	ErrNoRoot = errors.New("no WordPress root specified")

	// ErrInvalidFormat is returned when the report format is unknown.
	ErrInvalidFormat = errors.New("invalid format")
)
