// Package progress isolates human-readable progress output behind a sink.
//
// Extraction, selection and report code emit structured Events instead of
// printing. The CLIs plug in a ConsoleSink; tests use a Recorder and inspect
// what would have been printed.
package progress
