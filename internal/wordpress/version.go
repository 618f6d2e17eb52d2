package wordpress

import (
	"errors"
	"fmt"
	"os"
	"regexp"

	"github.com/nao1215/wpkit/internal/model"
)

// versionPattern matches the core version assignment in version.php.
var versionPattern = regexp.MustCompile(`\$wp_version\s*=\s*'([^']+)'`)

// DetectVersion returns the WordPress version declared under root.
// A missing version file wraps model.ErrNotFound; a file without the
// assignment or one that cannot be read wraps model.ErrRead.
func DetectVersion(root string) (string, error) {
	path := VersionPath(root)
	data, err := os.ReadFile(path) //nolint:gosec // Path is derived from the scan root
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("version file not found at %s: %w", path, model.ErrNotFound)
		}
		return "", fmt.Errorf("failed to read %s: %w: %w", path, model.ErrRead, err)
	}

	m := versionPattern.FindSubmatch(data)
	if m == nil {
		return "", fmt.Errorf("no $wp_version assignment in %s: %w", path, model.ErrRead)
	}
	return string(m[1]), nil
}
