// Package model defines the core data structures shared by wpkit's tools.
//
// This package contains the following main types:
//   - ComponentMetadata: Header metadata of one installed plugin or theme
//   - ScanResult: The aggregate produced by one wpscan run
//   - ScanDiff: Differences between two stored ScanResults
//   - MissingColumnsError and the sentinel error kinds used across packages
//
// The wordpress, pipeline, report and history packages all share these types.
//
// The models are serializable to JSON for report output and history storage.
package model
