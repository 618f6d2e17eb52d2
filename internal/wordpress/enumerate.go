package wordpress

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/nao1215/wpkit/internal/model"
)

// ListComponentDirs returns the sorted names of the immediate child
// directories of the kind's component root. Names starting with "." and
// names listed in exclude are skipped. Symlinks to directories count as
// directories. A missing component root yields an
// error wrapping model.ErrNotFound; callers treat it as a warning.
func ListComponentDirs(root string, kind model.ComponentKind, exclude []string) ([]string, error) {
	if !kind.IsValid() {
		return nil, fmt.Errorf("unknown component kind %q", kind)
	}

	dir := ComponentRoot(root, kind)
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%s directory not found at %s: %w", kind.Directory(), dir, model.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to list %s: %w: %w", dir, model.ErrRead, err)
	}

	var names []string
	for _, e := range entries {
		name := e.Name()
		if strings.HasPrefix(name, ".") || !isDir(dir, e) {
			continue
		}
		if slices.Contains(exclude, name) {
			continue
		}
		names = append(names, name)
	}
	slices.Sort(names)
	return names, nil
}

// isDir reports whether e is a directory, following symlinks. A dangling
// link is not a directory.
func isDir(dir string, e fs.DirEntry) bool {
	if e.Type()&fs.ModeSymlink == 0 {
		return e.IsDir()
	}
	info, err := os.Stat(filepath.Join(dir, e.Name()))
	return err == nil && info.IsDir()
}
