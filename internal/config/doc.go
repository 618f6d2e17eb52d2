// Package config provides configuration structures and utilities for the
// csv2ignore and wpscan commands.
//
// Values are resolved in three layers: built-in defaults (NewIgnoreConfig,
// NewScanConfig), then the optional YAML file, then command-line flags that
// were set explicitly. The file is looked up by FindConfigFile.
package config
