// Package log builds the slog loggers used by csv2ignore and wpscan.
//
// Both tools read files that can hold credentials: a wp-config.php next to
// the scanned tree, or a report row that happens to carry a token. The
// SecureHandler wraps any slog.Handler and masks attribute values whose key
// or shape looks secret before the record reaches the output.
//
// Design decision: redaction lives in a handler wrapper, not in the call
// sites. Components accept a plain *slog.Logger through functional options,
// so nothing outside this package needs to know which keys are masked.
//
// # Usage
//
//	logger := log.NewLogger(os.Stderr, verbose)
//	logger.Warn("unreadable plugin file", "path", p, "db_password", pw)
//	// db_password=***REDACTED***
package log
