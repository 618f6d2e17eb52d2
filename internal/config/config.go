package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/nao1215/wpkit/internal/report"
)

// Default configuration values.
const (
	// AppName is the application name used for XDG directory paths.
	AppName = "wpkit"

	// DefaultTableFile is the report exported by the diff analysis tool.
	DefaultTableFile = "Analyzed - Diff Analysis Report - Data.csv"

	// DefaultIgnoreFile is the ignore file csv2ignore writes.
	DefaultIgnoreFile = ".gitignore"

	// DefaultMode keeps existing ignore rules.
	DefaultMode = "append"

	// DefaultActionColumn holds the per-row decision.
	DefaultActionColumn = "GitHub Action"

	// DefaultPathColumn holds the path to ignore.
	DefaultPathColumn = "Full Path and Filename"

	// DefaultMarker selects a row for ignoring.
	DefaultMarker = "Ignore"

	// DefaultScanRoot is the current directory.
	DefaultScanRoot = "."

	// DefaultReportFile is the spreadsheet wpscan writes.
	DefaultReportFile = "wordpress_site_info.xlsx"

	// DefaultFormat is the spreadsheet format.
	DefaultFormat = "xlsx"
)

// IgnoreConfig holds the options of csv2ignore.
type IgnoreConfig struct {
	// Input is the table file to read.
	Input string

	// Output is the ignore file to write.
	Output string

	// Mode is "append" or "replace".
	Mode string

	// ActionColumn, PathColumn and Marker select rows.
	ActionColumn string
	PathColumn   string
	Marker       string

	// DryRun reports what would change without writing.
	DryRun bool

	// Verbose enables debug logging.
	Verbose bool

	// ConfigFilePath is an explicit configuration file.
	ConfigFilePath string
}

// NewIgnoreConfig creates an IgnoreConfig with default values.
func NewIgnoreConfig() *IgnoreConfig {
	return &IgnoreConfig{
		Input:        DefaultTableFile,
		Output:       DefaultIgnoreFile,
		Mode:         DefaultMode,
		ActionColumn: DefaultActionColumn,
		PathColumn:   DefaultPathColumn,
		Marker:       DefaultMarker,
	}
}

// Validate checks if the configuration is valid and returns the first
// problem found.
func (c *IgnoreConfig) Validate() error {
	if strings.TrimSpace(c.Input) == "" {
		return ErrNoInput
	}
	if strings.TrimSpace(c.Output) == "" {
		return ErrNoOutput
	}
	switch strings.ToLower(strings.TrimSpace(c.Mode)) {
	case "append", "replace":
	default:
		return ErrInvalidMode
	}
	if strings.TrimSpace(c.ActionColumn) == "" || strings.TrimSpace(c.PathColumn) == "" {
		return ErrEmptyColumn
	}
	if strings.TrimSpace(c.ActionColumn) == strings.TrimSpace(c.PathColumn) {
		return ErrSameColumn
	}
	if strings.TrimSpace(c.Marker) == "" {
		return ErrEmptyMarker
	}
	return nil
}

// ScanConfig holds the options of wpscan.
type ScanConfig struct {
	// Root is the WordPress installation directory.
	Root string

	// Output is the report file.
	Output string

	// Format is xlsx, markdown or json.
	Format string

	// Exclude lists component directory names to skip.
	Exclude []string

	// PluginLabels and ThemeLabels are extra header labels to collect.
	PluginLabels []string
	ThemeLabels  []string

	// SaveHistory stores the scan in the history database.
	SaveHistory bool

	// HistoryDir is the directory of the history database.
	// Defaults to the XDG data directory.
	HistoryDir string

	// Verbose enables debug logging.
	Verbose bool

	// ConfigFilePath is an explicit configuration file.
	ConfigFilePath string
}

// NewScanConfig creates a ScanConfig with default values.
func NewScanConfig() *ScanConfig {
	return &ScanConfig{
		Root:       DefaultScanRoot,
		Output:     DefaultReportFile,
		Format:     DefaultFormat,
		HistoryDir: XDGDataDir(),
	}
}

// Validate checks if the configuration is valid and returns the first
// problem found.
func (c *ScanConfig) Validate() error {
	if strings.TrimSpace(c.Root) == "" {
		return ErrNoRoot
	}
	if strings.TrimSpace(c.Output) == "" {
		return ErrNoOutput
	}
	if _, err := report.ParseFormat(c.Format); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidFormat, err)
	}
	return nil
}

// XDGDataDir returns the XDG data directory for wpkit.
// On Linux: ~/.local/share/wpkit
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// XDGConfigDir returns the XDG config directory for wpkit.
// On Linux: ~/.config/wpkit
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}
