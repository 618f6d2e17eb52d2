package config

// File represents the structure of the configuration file.
type File struct {
	// Ignore configures csv2ignore.
	Ignore IgnoreSection `yaml:"ignore,omitempty"`

	// Scan configures wpscan.
	Scan ScanSection `yaml:"scan,omitempty"`
}

// IgnoreSection holds csv2ignore settings. Empty values keep the defaults.
type IgnoreSection struct {
	Output       string `yaml:"output,omitempty"`
	Mode         string `yaml:"mode,omitempty"`
	ActionColumn string `yaml:"actionColumn,omitempty"`
	PathColumn   string `yaml:"pathColumn,omitempty"`
	Marker       string `yaml:"marker,omitempty"`
}

// ScanSection holds wpscan settings. Empty values keep the defaults.
type ScanSection struct {
	Output      string       `yaml:"output,omitempty"`
	Format      string       `yaml:"format,omitempty"`
	Exclude     []string     `yaml:"exclude,omitempty"`
	ExtraLabels LabelSection `yaml:"extraLabels,omitempty"`
	History     bool         `yaml:"history,omitempty"`
	HistoryDir  string       `yaml:"historyDir,omitempty"`
}

// LabelSection lists additional header labels per component kind.
type LabelSection struct {
	Plugins []string `yaml:"plugins,omitempty"`
	Themes  []string `yaml:"themes,omitempty"`
}

// ApplyIgnore copies the non-empty ignore settings into c.
func (f *File) ApplyIgnore(c *IgnoreConfig) {
	s := f.Ignore
	if s.Output != "" {
		c.Output = s.Output
	}
	if s.Mode != "" {
		c.Mode = s.Mode
	}
	if s.ActionColumn != "" {
		c.ActionColumn = s.ActionColumn
	}
	if s.PathColumn != "" {
		c.PathColumn = s.PathColumn
	}
	if s.Marker != "" {
		c.Marker = s.Marker
	}
}

// ApplyScan copies the non-empty scan settings into c. Lists are appended.
func (f *File) ApplyScan(c *ScanConfig) {
	s := f.Scan
	if s.Output != "" {
		c.Output = s.Output
	}
	if s.Format != "" {
		c.Format = s.Format
	}
	if s.HistoryDir != "" {
		c.HistoryDir = s.HistoryDir
	}
	if s.History {
		c.SaveHistory = true
	}
	c.Exclude = append(c.Exclude, s.Exclude...)
	c.PluginLabels = append(c.PluginLabels, s.ExtraLabels.Plugins...)
	c.ThemeLabels = append(c.ThemeLabels, s.ExtraLabels.Themes...)
}
