// Package pipeline runs a WordPress scan as an ordered list of steps.
//
// DefaultPipeline verifies the installation, reads the core version, then
// records plugins and themes. Every step receives the ScanResult under
// construction and adds to it.
//
// Design decision: a step returns an error only when the scan cannot go on
// (no wp-config.php, cancelled context). Problems with a single plugin or
// theme are warnings on the ScanResult, so one broken directory never hides
// the rest of the inventory.
package pipeline
