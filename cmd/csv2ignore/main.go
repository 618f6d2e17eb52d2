// Package main provides the entry point for csv2ignore.
//
// csv2ignore reads a diff analysis report (CSV, TSV or XLSX) and adds every
// row marked for ignoring to a .gitignore file.
//
// Usage:
//
//	csv2ignore [table-file]
//	csv2ignore --mode replace -o .gitignore report.csv
//	csv2ignore check report.csv
//
// See --help for all available options.
package main

func main() {
	Execute()
}
