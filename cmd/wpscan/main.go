// Package main provides the entry point for wpscan.
//
// wpscan inventories a WordPress installation: the core version, every
// plugin and every theme, read from their header comments. The result is
// written as an xlsx workbook (default), a Markdown document or JSON.
//
// Usage:
//
//	wpscan [root]
//	wpscan -o report.md /srv/www/wordpress
//	wpscan compare /srv/www/wordpress
//
// See --help for all available options.
package main

func main() {
	Execute()
}
