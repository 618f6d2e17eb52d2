package pipeline

import (
	"context"
	"log/slog"

	"github.com/nao1215/wpkit/internal/model"
	"github.com/nao1215/wpkit/internal/progress"
	"github.com/nao1215/wpkit/internal/wordpress"
)

// VerifyStep checks that the scan root is a WordPress installation.
// It is the only step whose failure is fatal.
type VerifyStep struct {
	sink progress.Sink
}

// NewVerifyStep creates a VerifyStep.
func NewVerifyStep(sink progress.Sink) *VerifyStep {
	return &VerifyStep{sink: sink}
}

// Name returns the step name.
func (s *VerifyStep) Name() string {
	return "verify"
}

// Do returns an error wrapping model.ErrNotFound when the root is missing
// or lacks wp-config.php.
func (s *VerifyStep) Do(_ context.Context, result *model.ScanResult) error {
	if err := wordpress.VerifyInstallation(result.Root); err != nil {
		return err
	}
	progress.Infof(s.sink, "Starting WordPress scan at: %s", result.Root)
	return nil
}

// VersionStep detects the WordPress core version.
type VersionStep struct {
	scanner *wordpress.Scanner
}

// NewVersionStep creates a VersionStep.
func NewVersionStep(scanner *wordpress.Scanner) *VersionStep {
	return &VersionStep{scanner: scanner}
}

// Name returns the step name.
func (s *VersionStep) Name() string {
	return "version"
}

// Do records the version, or a warning when it cannot be found.
func (s *VersionStep) Do(_ context.Context, result *model.ScanResult) error {
	s.scanner.DetectVersion(result)
	return nil
}

// ComponentStep records every component of one kind.
type ComponentStep struct {
	scanner *wordpress.Scanner
	kind    model.ComponentKind
}

// NewComponentStep creates a ComponentStep for kind.
func NewComponentStep(scanner *wordpress.Scanner, kind model.ComponentKind) *ComponentStep {
	return &ComponentStep{scanner: scanner, kind: kind}
}

// Name returns the step name, e.g. "plugins".
func (s *ComponentStep) Name() string {
	return s.kind.Directory()
}

// Do scans the components. Only cancellation is returned as an error.
func (s *ComponentStep) Do(ctx context.Context, result *model.ScanResult) error {
	return s.scanner.ScanComponents(ctx, result, s.kind)
}

// DefaultPipeline returns the full scan: verify, version, plugins, themes.
func DefaultPipeline(scanner *wordpress.Scanner, sink progress.Sink, logger *slog.Logger) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}
	if sink == nil {
		sink = progress.Discard
	}
	p := New(WithLogger(logger))
	p.AddSteps(
		NewVerifyStep(sink),
		NewVersionStep(scanner),
		NewComponentStep(scanner, model.KindPlugin),
		NewComponentStep(scanner, model.KindTheme),
	)
	return p
}

// Scan runs the default pipeline on root and returns the populated result.
// The result is returned even on error so callers can inspect partial work.
func Scan(ctx context.Context, root string, scanner *wordpress.Scanner, sink progress.Sink, logger *slog.Logger) (*model.ScanResult, error) {
	result := model.NewScanResult(root)
	err := DefaultPipeline(scanner, sink, logger).Execute(ctx, result)
	return result, err
}
