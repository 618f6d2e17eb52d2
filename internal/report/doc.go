// Package report turns a scan result into a tabular report and writes it.
//
// Assemble builds a format-neutral Report: an overview plus one Sheet per
// component kind, with rows already ordered, descriptions truncated and
// column widths computed. Writers then render that Report:
//   - XLSXWriter: the spreadsheet report (Overview, Plugins, Themes sheets)
//   - MarkdownWriter: the same tables as a Markdown document, plus scan diffs
//   - JSONWriter: untruncated metadata for tool integration
//   - SimpleWriter: the short summary block printed to the terminal
//
// Design decision: all layout decisions (ordering, truncation, widths) live
// in Assemble so every format shows the same rows and tests can check the
// layout without opening a workbook.
package report
