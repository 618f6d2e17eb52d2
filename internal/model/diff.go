package model

// VersionChange describes a component present in both scans whose version differs.
type VersionChange struct {
	Kind      ComponentKind `json:"kind"`
	Directory string        `json:"directory"`
	Name      string        `json:"name"`
	From      string        `json:"from"`
	To        string        `json:"to"`
}

// ScanDiff is the difference between an older and a newer scan of the same tree.
type ScanDiff struct {
	// Previous and Current identify the compared scans.
	Previous string `json:"previous"`
	Current  string `json:"current"`

	// PlatformFrom and PlatformTo are the detected WordPress versions.
	PlatformFrom string `json:"platform_from"`
	PlatformTo   string `json:"platform_to"`

	// Added lists components present only in the newer scan.
	Added []ComponentMetadata `json:"added,omitempty"`

	// Removed lists components present only in the older scan.
	Removed []ComponentMetadata `json:"removed,omitempty"`

	// Changed lists components whose version changed.
	Changed []VersionChange `json:"changed,omitempty"`
}

// HasChanges reports whether anything differs between the two scans.
func (d *ScanDiff) HasChanges() bool {
	return len(d.Added) > 0 || len(d.Removed) > 0 || len(d.Changed) > 0 ||
		d.PlatformFrom != d.PlatformTo
}

// CompareScans computes the differences from previous to current.
// Results are ordered by kind (plugins first) and then directory name.
func CompareScans(previous, current *ScanResult) *ScanDiff {
	diff := &ScanDiff{
		Previous:     previous.ID,
		Current:      current.ID,
		PlatformFrom: previous.PlatformVersionString(),
		PlatformTo:   current.PlatformVersionString(),
	}

	for _, kind := range []ComponentKind{KindPlugin, KindTheme} {
		before := indexByDirectory(previous.Components(kind))

		for _, c := range current.Components(kind) {
			old, ok := before[c.Directory]
			if !ok {
				diff.Added = append(diff.Added, c)
				continue
			}
			if old.Version != c.Version {
				diff.Changed = append(diff.Changed, VersionChange{
					Kind:      kind,
					Directory: c.Directory,
					Name:      c.Name,
					From:      old.Version,
					To:        c.Version,
				})
			}
		}

		after := indexByDirectory(current.Components(kind))
		for _, c := range previous.Components(kind) {
			if _, ok := after[c.Directory]; !ok {
				diff.Removed = append(diff.Removed, c)
			}
		}
	}

	return diff
}

func indexByDirectory(components []ComponentMetadata) map[string]ComponentMetadata {
	m := make(map[string]ComponentMetadata, len(components))
	for _, c := range components {
		m[c.Directory] = c
	}
	return m
}
