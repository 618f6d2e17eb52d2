package wordpress

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/nao1215/wpkit/internal/model"
)

// Extractor reads header metadata for components of one kind.
type Extractor struct {
	kind   model.ComponentKind
	parser *headerParser
}

// NewExtractor creates an Extractor for spec.
func NewExtractor(spec HeaderSpec) *Extractor {
	return &Extractor{
		kind:   spec.Kind,
		parser: newHeaderParser(spec),
	}
}

// Kind returns the component kind this Extractor handles.
func (e *Extractor) Kind() model.ComponentKind {
	return e.kind
}

// Extract returns the metadata of the component in dir. The returned record
// is always usable: fields without a matching label keep their defaults. A
// non-nil error wraps model.ErrConfigWarning and describes files that could
// not be read.
func (e *Extractor) Extract(dir string) (model.ComponentMetadata, error) {
	meta := model.NewComponentMetadata(e.kind, filepath.Base(dir))

	switch e.kind {
	case model.KindPlugin:
		return meta, e.extractPlugin(dir, &meta)
	case model.KindTheme:
		return meta, e.extractTheme(dir, &meta)
	default:
		return meta, fmt.Errorf("unknown component kind %q", e.kind)
	}
}

// extractPlugin uses the first top-level *.php file, in name order, whose
// leading bytes contain the marker. Unreadable files are skipped.
func (e *Extractor) extractPlugin(dir string, meta *model.ComponentMetadata) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return warning(dir, err)
	}

	var errs []error
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".php") {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		content, err := readHead(path)
		if err != nil {
			errs = append(errs, warning(path, err))
			continue
		}
		if !e.parser.accepts(content) {
			continue
		}
		e.parser.apply(content, meta)
		meta.File = entry.Name()
		break
	}
	return errors.Join(errs...)
}

// extractTheme reads style.css. A theme without a stylesheet keeps its
// defaults silently.
func (e *Extractor) extractTheme(dir string, meta *model.ComponentMetadata) error {
	path := filepath.Join(dir, ThemeStylesheet)
	content, err := readHead(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return warning(path, err)
	}
	if !e.parser.accepts(content) {
		return nil
	}
	e.parser.apply(content, meta)
	meta.File = ThemeStylesheet
	return nil
}

// readHead returns at most HeaderReadLimit leading bytes of path as text.
// Invalid UTF-8 sequences are dropped.
func readHead(path string) (string, error) {
	f, err := os.Open(path) //nolint:gosec // Paths come from the scanned tree
	if err != nil {
		return "", err
	}
	defer f.Close()

	buf, err := io.ReadAll(io.LimitReader(f, HeaderReadLimit))
	if err != nil {
		return "", err
	}
	return strings.ToValidUTF8(string(buf), ""), nil
}

func warning(path string, err error) error {
	return fmt.Errorf("error reading %s: %w: %w", path, model.ErrConfigWarning, err)
}
