package report

import (
	"fmt"
	"io"
	"strings"
)

// summaryRuleWidth is the width of the rules around the summary block.
const summaryRuleWidth = 60

// SimpleWriter outputs the terminal summary printed after a scan.
type SimpleWriter struct {
	baseWriter

	// verbose lists every warning instead of only counting them.
	verbose bool
}

// SimpleWriterOption configures a SimpleWriter.
type SimpleWriterOption func(*SimpleWriter)

// WithVerbose enables verbose output with additional details.
func WithVerbose(verbose bool) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.verbose = verbose
	}
}

// NewSimpleWriter creates a SimpleWriter that outputs to the given writer.
func NewSimpleWriter(output io.Writer, opts ...SimpleWriterOption) *SimpleWriter {
	w := &SimpleWriter{
		baseWriter: newBaseWriter(output),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Write outputs the summary block.
func (w *SimpleWriter) Write(report *Report) (int, error) {
	rule := strings.Repeat("=", summaryRuleWidth)

	var sb strings.Builder
	sb.WriteString("\n" + rule + "\n")
	sb.WriteString("📊 SCAN SUMMARY\n")
	sb.WriteString(rule + "\n")
	sb.WriteString(fmt.Sprintf("WordPress Version: %s\n", report.Overview.PlatformVersion))
	sb.WriteString(fmt.Sprintf("Total Plugins: %d\n", report.Overview.PluginCount))
	sb.WriteString(fmt.Sprintf("Total Themes: %d\n", report.Overview.ThemeCount))

	if r := report.Result; r != nil && len(r.Warnings) > 0 {
		sb.WriteString(fmt.Sprintf("Warnings: %d\n", len(r.Warnings)))
		if w.verbose {
			for _, warn := range r.Warnings {
				sb.WriteString("  - " + warn + "\n")
			}
		}
	}
	sb.WriteString(rule + "\n")

	return w.output.Write([]byte(sb.String()))
}
