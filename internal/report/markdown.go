package report

import (
	"io"
	"strconv"

	"github.com/nao1215/markdown"

	"github.com/nao1215/wpkit/internal/model"
)

// MarkdownWriter outputs reports in Markdown format.
// This format is designed for pull requests and wiki pages.
type MarkdownWriter struct {
	baseWriter
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{
		baseWriter: newBaseWriter(output),
	}
}

// Write outputs the report in Markdown format.
func (w *MarkdownWriter) Write(report *Report) (int, error) {
	md := markdown.NewMarkdown(w.output)

	md.H1(Title)
	md.PlainText("")
	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Scan Date", report.Overview.ScanDate},
			{"WordPress Path", "`" + report.Overview.Root + "`"},
			{"WordPress Version", report.Overview.PlatformVersion},
			{"Total Plugins", strconv.Itoa(report.Overview.PluginCount)},
			{"Total Themes", strconv.Itoa(report.Overview.ThemeCount)},
		},
	})
	md.PlainText("")

	for _, s := range report.Sheets {
		w.writeSheet(md, s)
	}
	w.writeWarnings(md, report.Result)
	w.writeFooter(md)

	return len(md.String()), md.Build()
}

// WriteDiff outputs the changes between two scans.
func (w *MarkdownWriter) WriteDiff(diff *model.ScanDiff) (int, error) {
	md := markdown.NewMarkdown(w.output)

	md.H1("WordPress Scan Comparison")
	md.PlainText("")
	md.Table(markdown.TableSet{
		Header: []string{"", "Previous", "Current"},
		Rows: [][]string{
			{"Scan", "`" + diff.Previous + "`", "`" + diff.Current + "`"},
			{"WordPress Version", diff.PlatformFrom, diff.PlatformTo},
		},
	})
	md.PlainText("")

	if !diff.HasChanges() {
		md.Tip("No changes between the two scans.")
		md.PlainText("")
		return len(md.String()), md.Build()
	}

	if diff.PlatformFrom != diff.PlatformTo {
		md.Importantf("WordPress core changed from %s to %s.", diff.PlatformFrom, diff.PlatformTo)
		md.PlainText("")
	}

	if len(diff.Changed) > 0 {
		md.H2("Version Changes")
		md.PlainText("")
		rows := make([][]string, len(diff.Changed))
		for i, c := range diff.Changed {
			rows[i] = []string{c.Kind.String(), c.Name, c.Directory, c.From, c.To}
		}
		md.Table(markdown.TableSet{
			Header: []string{"Kind", "Name", "Directory", "From", "To"},
			Rows:   rows,
		})
		md.PlainText("")
	}

	w.writeComponentList(md, "Added", diff.Added)
	w.writeComponentList(md, "Removed", diff.Removed)

	return len(md.String()), md.Build()
}

// writeSheet writes one component table.
func (w *MarkdownWriter) writeSheet(md *markdown.Markdown, s Sheet) {
	md.H2(s.Name)
	md.PlainText("")

	if len(s.Rows) == 0 {
		md.PlainText("None found.")
		md.PlainText("")
		return
	}

	md.Table(markdown.TableSet{
		Header: s.Header,
		Rows:   s.Rows,
	})
	md.PlainText("")
}

func (w *MarkdownWriter) writeComponentList(md *markdown.Markdown, title string, components []model.ComponentMetadata) {
	if len(components) == 0 {
		return
	}
	md.H2(title)
	md.PlainText("")
	items := make([]string, len(components))
	for i, c := range components {
		items[i] = c.Kind.String() + ": " + c.Name + " " + c.Version + " (`" + c.Directory + "`)"
	}
	md.BulletList(items...)
	md.PlainText("")
}

func (w *MarkdownWriter) writeWarnings(md *markdown.Markdown, result *model.ScanResult) {
	if result == nil || len(result.Warnings) == 0 {
		return
	}
	md.H2("Warnings")
	md.PlainText("")
	md.Warningf("%d problem(s) were found while scanning.", len(result.Warnings))
	md.PlainText("")
	md.BulletList(result.Warnings...)
	md.PlainText("")
}

// writeFooter writes the report footer.
func (w *MarkdownWriter) writeFooter(md *markdown.Markdown) {
	md.HorizontalRule()
	md.PlainText("")
	md.PlainTextf("*Report generated by wpscan*")
}
