package model

import (
	"sort"
	"time"

	"github.com/google/uuid"
)

// ScanDateLayout is the layout used to render scan timestamps.
const ScanDateLayout = "2006-01-02 15:04:05"

// ScanResult is the aggregate produced by one scan of a WordPress tree.
// It is created at scan start, populated by the pipeline steps, and consumed
// by report assembly.
type ScanResult struct {
	// ID uniquely identifies the scan in the history store.
	ID string `json:"id"`

	// ScannedAt is when the scan started.
	ScannedAt time.Time `json:"scanned_at"`

	// Root is the absolute path of the scanned installation.
	Root string `json:"root"`

	// PlatformVersion is the detected WordPress version, or nil when the
	// version file was missing or unreadable.
	PlatformVersion *string `json:"platform_version,omitempty"`

	// Plugins maps plugin directory names to their metadata.
	Plugins map[string]ComponentMetadata `json:"plugins"`

	// Themes maps theme directory names to their metadata.
	Themes map[string]ComponentMetadata `json:"themes"`

	// Warnings collects non-fatal problems met during the scan.
	Warnings []string `json:"warnings,omitempty"`

	// Steps lists the pipeline steps that ran, in order.
	Steps []string `json:"steps,omitempty"`

	// Cancelled is true when the scan was interrupted before all steps ran.
	Cancelled bool `json:"cancelled,omitempty"`
}

// NewScanResult creates an empty ScanResult for root.
func NewScanResult(root string) *ScanResult {
	return &ScanResult{
		ID:        uuid.NewString(),
		ScannedAt: time.Now(),
		Root:      root,
		Plugins:   make(map[string]ComponentMetadata),
		Themes:    make(map[string]ComponentMetadata),
	}
}

// SetPlatformVersion records the detected WordPress version.
func (r *ScanResult) SetPlatformVersion(v string) {
	r.PlatformVersion = &v
}

// PlatformVersionString returns the detected version or UnknownValue.
func (r *ScanResult) PlatformVersionString() string {
	if r.PlatformVersion == nil || *r.PlatformVersion == "" {
		return UnknownValue
	}
	return *r.PlatformVersion
}

// Add stores a component under its directory name, replacing any earlier
// record for the same directory.
func (r *ScanResult) Add(c ComponentMetadata) {
	switch c.Kind {
	case KindPlugin:
		r.Plugins[c.Directory] = c
	case KindTheme:
		r.Themes[c.Directory] = c
	}
}

// AddWarning records a non-fatal problem.
func (r *ScanResult) AddWarning(msg string) {
	r.Warnings = append(r.Warnings, msg)
}

// Components returns the components of the given kind sorted by directory name.
func (r *ScanResult) Components(kind ComponentKind) []ComponentMetadata {
	var src map[string]ComponentMetadata
	switch kind {
	case KindPlugin:
		src = r.Plugins
	case KindTheme:
		src = r.Themes
	default:
		return nil
	}

	dirs := make([]string, 0, len(src))
	for dir := range src {
		dirs = append(dirs, dir)
	}
	sort.Strings(dirs)

	out := make([]ComponentMetadata, 0, len(dirs))
	for _, dir := range dirs {
		out = append(out, src[dir])
	}
	return out
}

// PluginCount returns the number of plugins found.
func (r *ScanResult) PluginCount() int {
	return len(r.Plugins)
}

// ThemeCount returns the number of themes found.
func (r *ScanResult) ThemeCount() int {
	return len(r.Themes)
}
