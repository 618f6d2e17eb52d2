package report

import (
	"bytes"
	"encoding/json"
	"io"

	"github.com/nao1215/wpkit/internal/model"
)

// JSONWriter outputs reports in JSON format.
// Unlike the sheets, the JSON document carries untruncated descriptions and
// any extra header labels. HTML characters are not escaped so plugin URIs
// with query strings stay readable.
type JSONWriter struct {
	baseWriter

	// prefix and indent are passed to json.Encoder.SetIndent when pretty
	// is set.
	pretty         bool
	prefix, indent string
}

// JSONWriterOption configures a JSONWriter.
type JSONWriterOption func(*JSONWriter)

// WithIndent enables indented output.
func WithIndent(prefix, indent string) JSONWriterOption {
	return func(w *JSONWriter) {
		w.pretty = true
		w.prefix = prefix
		w.indent = indent
	}
}

// WithPrettyPrint indents with two spaces.
func WithPrettyPrint() JSONWriterOption {
	return WithIndent("", "  ")
}

// NewJSONWriter creates a JSONWriter that outputs to the given writer.
func NewJSONWriter(output io.Writer, opts ...JSONWriterOption) *JSONWriter {
	w := &JSONWriter{
		baseWriter: newBaseWriter(output),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// JSONReport is the document written by JSONWriter.
type JSONReport struct {
	ID       string                    `json:"id,omitempty"`
	Overview Overview                  `json:"overview"`
	Plugins  []model.ComponentMetadata `json:"plugins"`
	Themes   []model.ComponentMetadata `json:"themes"`
	Warnings []string                  `json:"warnings,omitempty"`
}

// NewJSONReport builds the JSON document for report.
func NewJSONReport(report *Report) *JSONReport {
	doc := &JSONReport{
		Overview: report.Overview,
		Plugins:  []model.ComponentMetadata{},
		Themes:   []model.ComponentMetadata{},
	}
	if r := report.Result; r != nil {
		doc.ID = r.ID
		doc.Plugins = append(doc.Plugins, r.Components(model.KindPlugin)...)
		doc.Themes = append(doc.Themes, r.Components(model.KindTheme)...)
		doc.Warnings = r.Warnings
	}
	return doc
}

// Write outputs the report in JSON format.
func (w *JSONWriter) Write(report *Report) (int, error) {
	return w.writeJSON(NewJSONReport(report))
}

// WriteDiff outputs a scan comparison in JSON format.
func (w *JSONWriter) WriteDiff(diff *model.ScanDiff) (int, error) {
	return w.writeJSON(diff)
}

// writeJSON encodes v followed by a newline.
func (w *JSONWriter) writeJSON(v any) (int, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if w.pretty {
		enc.SetIndent(w.prefix, w.indent)
	}
	if err := enc.Encode(v); err != nil {
		return 0, err
	}
	return w.output.Write(buf.Bytes())
}
