// Package table reads tabular reports into records keyed by column name.
//
// Delimited text files are sniffed for their delimiter: if the first
// SampleSize bytes contain a tab the file is parsed as tab-separated,
// otherwise as comma-separated. Spreadsheet (.xlsx) files are read from
// their first sheet. In both cases the first row is the header, and header
// names and cell values are stripped of surrounding whitespace.
//
// Records are produced lazily through Reader.Records, so a caller that stops
// early never reads the rest of the file.
package table
