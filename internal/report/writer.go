package report

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"
)

// Writer defines the interface for report output.
// Every format renders the same assembled Report.
type Writer interface {
	// Write outputs the report to the configured destination.
	// Returns the number of bytes written and any error encountered.
	Write(report *Report) (int, error)
}

// Format is an output file format.
type Format string

const (
	// FormatXLSX is an Excel workbook.
	FormatXLSX Format = "xlsx"
	// FormatMarkdown is a Markdown document.
	FormatMarkdown Format = "markdown"
	// FormatJSON is a JSON document.
	FormatJSON Format = "json"
)

// Formats lists the supported formats.
func Formats() []Format {
	return []Format{FormatXLSX, FormatMarkdown, FormatJSON}
}

// formatList joins Formats for help and error text.
func formatList() string {
	names := make([]string, 0, len(Formats()))
	for _, f := range Formats() {
		names = append(names, string(f))
	}
	return strings.Join(names, ", ")
}

// FormatHelp describes the --format flag.
func FormatHelp() string {
	return "Report format: " + formatList() + " (default: from --output extension)"
}

// ParseFormat parses a --format value. "md" is accepted for markdown.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "xlsx", "excel":
		return FormatXLSX, nil
	case "markdown", "md":
		return FormatMarkdown, nil
	case "json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("unsupported format %q: must be one of %s", s, formatList())
	}
}

// FormatFromPath infers the format from the output file extension,
// falling back to xlsx.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".md", ".markdown":
		return FormatMarkdown
	case ".json":
		return FormatJSON
	default:
		return FormatXLSX
	}
}

// NewWriter returns the Writer for format writing to output.
func NewWriter(format Format, output io.Writer) (Writer, error) {
	switch format {
	case FormatXLSX:
		return NewXLSXWriter(output), nil
	case FormatMarkdown:
		return NewMarkdownWriter(output), nil
	case FormatJSON:
		return NewJSONWriter(output, WithPrettyPrint()), nil
	default:
		return nil, fmt.Errorf("unsupported format %q", format)
	}
}

// baseWriter provides common functionality for report writers.
type baseWriter struct {
	output io.Writer
}

// newBaseWriter creates a baseWriter with the given output destination.
func newBaseWriter(output io.Writer) baseWriter {
	return baseWriter{output: output}
}
