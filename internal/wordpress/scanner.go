package wordpress

import (
	"context"
	"errors"
	"log/slog"
	"path/filepath"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/nao1215/wpkit/internal/model"
	"github.com/nao1215/wpkit/internal/progress"
)

// Scanner fills a ScanResult from an installation on disk. Problems with
// individual components are recorded as warnings and never returned.
type Scanner struct {
	extractors map[model.ComponentKind]*Extractor
	exclude    []string
	logger     *slog.Logger
	sink       progress.Sink
}

// Option configures a Scanner.
type Option func(*Scanner)

// WithExclude skips component directories with the given names.
func WithExclude(names ...string) Option {
	return func(s *Scanner) {
		s.exclude = append(s.exclude, names...)
	}
}

// WithExtraLabels collects additional header labels for kind into
// ComponentMetadata.Extra.
func WithExtraLabels(kind model.ComponentKind, labels ...string) Option {
	return func(s *Scanner) {
		spec, ok := HeaderSpecFor(kind)
		if !ok {
			return
		}
		s.extractors[kind] = NewExtractor(spec.WithExtra(labels...))
	}
}

// WithLogger sets a custom logger for the Scanner.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Scanner) {
		s.logger = logger
	}
}

// WithSink sets where progress events are sent.
func WithSink(sink progress.Sink) Option {
	return func(s *Scanner) {
		s.sink = sink
	}
}

// NewScanner creates a Scanner with the built-in header labels.
func NewScanner(opts ...Option) *Scanner {
	s := &Scanner{
		extractors: map[model.ComponentKind]*Extractor{
			model.KindPlugin: NewExtractor(PluginHeaderSpec()),
			model.KindTheme:  NewExtractor(ThemeHeaderSpec()),
		},
		logger: slog.Default(),
		sink:   progress.Discard,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// DetectVersion stores the core version in result. When it cannot be
// determined the version stays nil and a warning is recorded.
func (s *Scanner) DetectVersion(result *model.ScanResult) {
	v, err := DetectVersion(result.Root)
	if err != nil {
		s.warn(result, err)
		return
	}
	result.SetPlatformVersion(v)
	progress.Successf(s.sink, "WordPress Version: %s", v)
}

// ScanComponents records every component of kind found under result.Root.
// It returns only context errors.
func (s *Scanner) ScanComponents(ctx context.Context, result *model.ScanResult, kind model.ComponentKind) error {
	ext, ok := s.extractors[kind]
	if !ok {
		s.warn(result, errors.New("unknown component kind "+kind.String()))
		return nil
	}

	dirs, err := ListComponentDirs(result.Root, kind, s.exclude)
	if err != nil {
		s.warn(result, err)
		return nil
	}

	progress.Sectionf(s.sink, "Scanning %s...", cases.Title(language.English).String(kind.Directory()))
	root := ComponentRoot(result.Root, kind)
	for _, dir := range dirs {
		if err := ctx.Err(); err != nil {
			return err
		}

		meta, err := ext.Extract(filepath.Join(root, dir))
		if err != nil {
			s.warn(result, err)
		}
		result.Add(meta)

		s.logger.Debug("component scanned",
			"kind", kind,
			"directory", dir,
			"name", meta.Name,
			"version", meta.Version,
			"file", meta.File,
			"childTheme", meta.IsChildTheme(),
		)
		progress.Emitf(s.sink, progress.KindItem, progress.Fields{
			"kind":       kind,
			"directory":  dir,
			"name":       meta.Name,
			"version":    meta.Version,
			"childTheme": meta.IsChildTheme(),
		}, "Found: %s (v%s)", meta.Name, meta.Version)
	}
	return nil
}

func (s *Scanner) warn(result *model.ScanResult, err error) {
	result.AddWarning(err.Error())
	s.logger.Warn("scan warning", "error", err)
	progress.Warnf(s.sink, "%v", err)
}
