package wordpress

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/nao1215/wpkit/internal/model"
)

// Well-known paths relative to the installation root.
const (
	// ContentDir holds plugins and themes.
	ContentDir = "wp-content"

	// ConfigFile marks a directory as a WordPress installation.
	ConfigFile = "wp-config.php"

	// IncludesDir holds core files, including version.php.
	IncludesDir = "wp-includes"

	// VersionFile declares $wp_version.
	VersionFile = "version.php"

	// ThemeStylesheet carries the theme header block.
	ThemeStylesheet = "style.css"
)

// HeaderReadLimit is how many leading bytes of a file are searched for
// header labels.
const HeaderReadLimit = 8192

// ComponentRoot returns the directory holding components of kind under root.
func ComponentRoot(root string, kind model.ComponentKind) string {
	return filepath.Join(root, ContentDir, kind.Directory())
}

// VersionPath returns the path of the file declaring the core version.
func VersionPath(root string) string {
	return filepath.Join(root, IncludesDir, VersionFile)
}

// VerifyInstallation checks that root is an existing directory containing
// wp-config.php. Failures wrap model.ErrNotFound.
func VerifyInstallation(root string) error {
	info, err := os.Stat(root)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("path %s does not exist: %w", root, model.ErrNotFound)
		}
		return fmt.Errorf("failed to stat %s: %w", root, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("path %s is not a directory: %w", root, model.ErrNotFound)
	}

	cfg := filepath.Join(root, ConfigFile)
	if _, err := os.Stat(cfg); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("no %s found in %s, is this a WordPress installation?: %w",
				ConfigFile, root, model.ErrNotFound)
		}
		return fmt.Errorf("failed to stat %s: %w", cfg, err)
	}
	return nil
}
