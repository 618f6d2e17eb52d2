// Package wordpress reads component metadata from a WordPress installation
// on disk.
//
// # Layout
//
// An installation is a directory holding wp-config.php. Plugins live in
// wp-content/plugins/<dir> and themes in wp-content/themes/<dir>. Each
// immediate, non-hidden child directory is one component.
//
// # Header Blocks
//
// WordPress declares component metadata in a comment block of "Label: value"
// lines near the top of a file. For plugins the block sits in one of the
// top-level *.php files; for themes it is in style.css. Only the first
// HeaderReadLimit bytes are inspected, which is also what WordPress itself
// does.
//
// Design decision: the labels are data (HeaderSpec) rather than code. The
// extractor compiles every label into a case-insensitive "Label:\s*(.+)"
// pattern, so users can add labels such as "Requires PHP" from the config
// file without touching the extractor.
//
// # Failure Handling
//
// Problems with a single component never abort a scan. The component is still
// recorded with its defaults (name = directory, version = "Unknown") and the
// problem is returned wrapped in model.ErrConfigWarning for the caller to
// report.
package wordpress
