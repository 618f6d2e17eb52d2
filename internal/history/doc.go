// Package history stores scan results in SQLite so that two scans of the
// same installation can be compared later.
//
// The database is a single file under the XDG data directory, opened with
// the CGO-free modernc.org/sqlite driver.
//
// Each scan is stored as one row: a few columns for listing plus the whole
// ScanResult as JSON. Nothing is written unless the user asks for it with
// wpscan --history.
package history
