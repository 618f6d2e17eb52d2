package model

// UnknownValue is the placeholder used for metadata that could not be found.
const UnknownValue = "Unknown"

// ComponentKind identifies the category of an installed component.
type ComponentKind string

const (
	// KindPlugin is a plugin under wp-content/plugins.
	KindPlugin ComponentKind = "plugin"
	// KindTheme is a theme under wp-content/themes.
	KindTheme ComponentKind = "theme"
)

// String returns the string representation of the ComponentKind.
func (k ComponentKind) String() string {
	return string(k)
}

// IsValid returns true if this is a known kind.
func (k ComponentKind) IsValid() bool {
	switch k {
	case KindPlugin, KindTheme:
		return true
	default:
		return false
	}
}

// Directory returns the directory name holding components of this kind
// inside the content directory.
func (k ComponentKind) Directory() string {
	switch k {
	case KindPlugin:
		return "plugins"
	case KindTheme:
		return "themes"
	default:
		return ""
	}
}

// ComponentMetadata is the header metadata of one plugin or theme.
// It is created once per scanned directory and not modified after the scan
// result is assembled.
type ComponentMetadata struct {
	// Kind is plugin or theme.
	Kind ComponentKind `json:"kind"`

	// Name is the declared name. Defaults to the directory name.
	Name string `json:"name"`

	// Version is the declared version. Defaults to UnknownValue.
	Version string `json:"version"`

	// Description is the declared description, untruncated.
	Description string `json:"description"`

	// Author is the declared author.
	Author string `json:"author"`

	// URI is the Plugin URI or Theme URI.
	URI string `json:"uri"`

	// Template is the parent theme of a child theme. Always empty for plugins.
	Template string `json:"template,omitempty"`

	// Directory is the component's directory name and its key in ScanResult.
	Directory string `json:"directory"`

	// File is the header-bearing file relative to the component directory.
	// Empty when no header file was found.
	File string `json:"file,omitempty"`

	// Extra holds values of additional configured header labels, keyed by label.
	Extra map[string]string `json:"extra,omitempty"`
}

// NewComponentMetadata returns a record for dir with every field defaulted.
func NewComponentMetadata(kind ComponentKind, dir string) ComponentMetadata {
	return ComponentMetadata{
		Kind:      kind,
		Name:      dir,
		Version:   UnknownValue,
		Directory: dir,
	}
}

// HasHeader reports whether a header-bearing file was found for the component.
func (c ComponentMetadata) HasHeader() bool {
	return c.File != ""
}

// IsChildTheme reports whether the component is a theme with a parent template.
func (c ComponentMetadata) IsChildTheme() bool {
	return c.Kind == KindTheme && c.Template != ""
}
