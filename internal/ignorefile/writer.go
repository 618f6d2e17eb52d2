package ignorefile

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sort"
	"strings"

	"github.com/nao1215/wpkit/internal/model"
)

// AppendHeader precedes each block of entries added in append mode.
const AppendHeader = "# Auto-added from CSV analysis"

// ReplaceHeader starts every file written in replace mode.
const ReplaceHeader = `# Generated by csv2ignore from a CSV analysis report.
# Do not edit by hand: re-run csv2ignore --mode replace to regenerate.

# Version control metadata
.git/

`

// fileMode is the permission of newly created ignore files.
const fileMode = 0o644

// Result describes what a Write did.
type Result struct {
	// Path is the ignore file.
	Path string

	// Policy is the policy that was applied.
	Policy WritePolicy

	// Added holds the entries written by this run, sorted and deduplicated.
	Added []string

	// AlreadyPresent counts selected paths skipped because the existing file
	// listed them (append mode only).
	AlreadyPresent int

	// Removed is true when replace mode deleted an existing file.
	Removed bool

	// DryRun is true when nothing was written.
	DryRun bool
}

// Writer applies a WritePolicy to one ignore file.
type Writer struct {
	path   string
	policy WritePolicy
	dryRun bool
	logger *slog.Logger
}

// WriterOption configures a Writer.
type WriterOption func(*Writer)

// WithDryRun computes the result without touching the file.
func WithDryRun(dryRun bool) WriterOption {
	return func(w *Writer) {
		w.dryRun = dryRun
	}
}

// WithLogger sets a custom logger for the Writer.
func WithLogger(logger *slog.Logger) WriterOption {
	return func(w *Writer) {
		w.logger = logger
	}
}

// NewWriter creates a Writer for the ignore file at path.
func NewWriter(path string, policy WritePolicy, opts ...WriterOption) *Writer {
	w := &Writer{
		path:   path,
		policy: policy,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Write applies the policy to paths. Filesystem failures wrap model.ErrIO.
// Partial writes are not rolled back.
func (w *Writer) Write(paths []string) (*Result, error) {
	switch w.policy {
	case PolicyAppend:
		return w.appendEntries(paths)
	case PolicyReplace:
		return w.replaceEntries(paths)
	default:
		return nil, fmt.Errorf("unsupported write policy %d", w.policy)
	}
}

// appendEntries appends paths missing from the existing file.
func (w *Writer) appendEntries(paths []string) (*Result, error) {
	existing, err := ReadEntries(w.path)
	if err != nil {
		return nil, err
	}

	res := &Result{Path: w.path, Policy: PolicyAppend, DryRun: w.dryRun}
	var fresh []string
	for _, p := range Normalize(paths) {
		if _, ok := existing[p]; ok {
			res.AlreadyPresent++
			continue
		}
		fresh = append(fresh, p)
	}
	res.Added = fresh

	w.logger.Debug("append selection computed",
		"path", w.path,
		"new", len(fresh),
		"alreadyPresent", res.AlreadyPresent,
	)

	if len(fresh) == 0 || w.dryRun {
		return res, nil
	}

	f, err := os.OpenFile(w.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, fileMode) //nolint:gosec // User-provided output path is intentional
	if err != nil {
		return nil, fmt.Errorf("open %s: %w: %w", w.path, model.ErrIO, err)
	}
	defer f.Close()

	var sb strings.Builder
	sb.WriteString("\n" + AppendHeader + "\n")
	for _, p := range fresh {
		sb.WriteString(p + "\n")
	}
	if _, err := f.WriteString(sb.String()); err != nil {
		return nil, fmt.Errorf("write %s: %w: %w", w.path, model.ErrIO, err)
	}
	if err := f.Close(); err != nil {
		return nil, fmt.Errorf("close %s: %w: %w", w.path, model.ErrIO, err)
	}
	return res, nil
}

// replaceEntries regenerates the file from paths.
func (w *Writer) replaceEntries(paths []string) (*Result, error) {
	res := &Result{
		Path:   w.path,
		Policy: PolicyReplace,
		Added:  Normalize(paths),
		DryRun: w.dryRun,
	}

	_, statErr := os.Stat(w.path)
	exists := statErr == nil
	if statErr != nil && !errors.Is(statErr, os.ErrNotExist) {
		return nil, fmt.Errorf("stat %s: %w: %w", w.path, model.ErrIO, statErr)
	}

	if w.dryRun {
		res.Removed = exists
		return res, nil
	}

	if exists {
		if err := os.Remove(w.path); err != nil {
			return nil, fmt.Errorf("remove %s: %w: %w", w.path, model.ErrIO, err)
		}
		res.Removed = true
		w.logger.Debug("removed existing ignore file", "path", w.path)
	}

	if len(res.Added) == 0 {
		return res, nil
	}

	if err := os.WriteFile(w.path, []byte(Render(res.Added)), fileMode); err != nil {
		return nil, fmt.Errorf("write %s: %w: %w", w.path, model.ErrIO, err)
	}
	return res, nil
}

// Render returns the replace-mode file content for already normalized entries.
func Render(entries []string) string {
	var sb strings.Builder
	sb.WriteString(ReplaceHeader)
	for _, e := range entries {
		sb.WriteString(e + "\n")
	}
	return sb.String()
}

// Normalize returns paths deduplicated and sorted ascending. The input slice
// is not modified.
func Normalize(paths []string) []string {
	seen := make(map[string]struct{}, len(paths))
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}

// ReadEntries returns the set of trimmed, non-blank, non-comment lines of the
// ignore file at path. A missing file yields an empty set.
func ReadEntries(path string) (map[string]struct{}, error) {
	entries := make(map[string]struct{})

	f, err := os.Open(path) //nolint:gosec // User-provided output path is intentional
	if errors.Is(err, os.ErrNotExist) {
		return entries, nil
	}
	if err != nil {
		return nil, fmt.Errorf("open %s: %w: %w", path, model.ErrIO, err)
	}
	defer f.Close()

	// Lines may be arbitrarily long, so no bufio.Scanner token limit applies.
	r := bufio.NewReader(f)
	for {
		raw, err := r.ReadString('\n')
		if line := strings.TrimSpace(raw); line != "" && !strings.HasPrefix(line, "#") {
			entries[line] = struct{}{}
		}
		if errors.Is(err, io.EOF) {
			return entries, nil
		}
		if err != nil {
			return nil, fmt.Errorf("read %s: %w: %w", path, model.ErrIO, err)
		}
	}
}
