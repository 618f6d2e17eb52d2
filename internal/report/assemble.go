package report

import (
	"unicode/utf8"

	"github.com/nao1215/wpkit/internal/model"
)

const (
	// Title is the heading of every report.
	Title = "WordPress Site Information Report"

	// DescriptionLimit is the maximum number of characters of a description
	// placed in a sheet cell.
	DescriptionLimit = 255

	// MaxColumnWidth caps automatic column widths.
	MaxColumnWidth = 50

	// columnPadding is added to the longest cell of a column.
	columnPadding = 2
)

// Sheet names.
const (
	SheetOverview = "Overview"
	SheetPlugins  = "Plugins"
	SheetThemes   = "Themes"
)

// Column headers of the component sheets.
var (
	PluginHeader = []string{"Plugin Name", "Version", "Author", "Description", "Plugin URI", "Directory"}
	ThemeHeader  = []string{"Theme Name", "Version", "Author", "Description", "Theme URI", "Parent Theme", "Directory"}
)

// Overview is the summary shown on the first sheet.
type Overview struct {
	ScanDate        string `json:"scan_date"`
	Root            string `json:"root"`
	PlatformVersion string `json:"platform_version"`
	PluginCount     int    `json:"plugin_count"`
	ThemeCount      int    `json:"theme_count"`
}

// Sheet is one table of the report.
type Sheet struct {
	// Name is the sheet (or section) title.
	Name string

	// Header holds the column titles.
	Header []string

	// Rows holds the cell values, one slice per component.
	Rows [][]string

	// Widths holds one width per column, in characters.
	Widths []int
}

// Report is the assembled, format-neutral report.
type Report struct {
	Overview Overview

	// Sheets holds the Plugins sheet followed by the Themes sheet.
	Sheets []Sheet

	// Result is the scan the report was built from.
	Result *model.ScanResult
}

// Assemble builds the Report for result.
func Assemble(result *model.ScanResult) *Report {
	r := &Report{
		Overview: Overview{
			ScanDate:        result.ScannedAt.Format(model.ScanDateLayout),
			Root:            result.Root,
			PlatformVersion: result.PlatformVersionString(),
			PluginCount:     result.PluginCount(),
			ThemeCount:      result.ThemeCount(),
		},
		Result: result,
	}

	var plugins [][]string
	for _, c := range result.Components(model.KindPlugin) {
		plugins = append(plugins, []string{
			c.Name,
			c.Version,
			c.Author,
			Truncate(c.Description, DescriptionLimit),
			c.URI,
			c.Directory,
		})
	}

	var themes [][]string
	for _, c := range result.Components(model.KindTheme) {
		themes = append(themes, []string{
			c.Name,
			c.Version,
			c.Author,
			Truncate(c.Description, DescriptionLimit),
			c.URI,
			c.Template,
			c.Directory,
		})
	}

	r.Sheets = []Sheet{
		newSheet(SheetPlugins, PluginHeader, plugins),
		newSheet(SheetThemes, ThemeHeader, themes),
	}
	return r
}

// OverviewRows returns the overview as a two-column grid. Row positions are
// fixed: the title is row 1 and "Summary" is row 7.
func (r *Report) OverviewRows() [][]any {
	return [][]any{
		{Title, ""},
		{"", ""},
		{"Scan Date:", r.Overview.ScanDate},
		{"WordPress Path:", r.Overview.Root},
		{"WordPress Version:", r.Overview.PlatformVersion},
		{"", ""},
		{"Summary", ""},
		{"Total Plugins:", r.Overview.PluginCount},
		{"Total Themes:", r.Overview.ThemeCount},
	}
}

// Sheet returns the sheet with the given name.
func (r *Report) Sheet(name string) (Sheet, bool) {
	for _, s := range r.Sheets {
		if s.Name == name {
			return s, true
		}
	}
	return Sheet{}, false
}

func newSheet(name string, header []string, rows [][]string) Sheet {
	return Sheet{
		Name:   name,
		Header: header,
		Rows:   rows,
		Widths: ColumnWidths(header, rows),
	}
}

// ColumnWidths returns min(longest cell + 2, MaxColumnWidth) for each
// column, counting the header row. Lengths are in characters.
func ColumnWidths(header []string, rows [][]string) []int {
	longest := make([]int, len(header))
	for i, h := range header {
		longest[i] = utf8.RuneCountInString(h)
	}
	for _, row := range rows {
		for i := 0; i < len(row) && i < len(longest); i++ {
			longest[i] = max(longest[i], utf8.RuneCountInString(row[i]))
		}
	}

	widths := make([]int, len(longest))
	for i, n := range longest {
		widths[i] = min(n+columnPadding, MaxColumnWidth)
	}
	return widths
}

// Truncate returns the first n characters of s.
func Truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}
