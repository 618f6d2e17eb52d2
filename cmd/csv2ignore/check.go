package main

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/nao1215/wpkit/internal/ignorefile"
	"github.com/nao1215/wpkit/internal/log"
	"github.com/nao1215/wpkit/internal/progress"
	"github.com/spf13/cobra"
)

// errUncovered makes check exit non-zero when rules are missing.
var errUncovered = errors.New("ignore file does not cover every selected path")

// NewCheckCmd creates the check command.
func NewCheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check [table-file]",
		Short: "Verify that the ignore file covers every selected row",
		Long: `Check selects rows exactly like the root command, then evaluates the
ignore file with gitignore semantics and lists the selected paths that no
rule matches. Directory rules and globs count: "cache/" covers "cache/a.tmp".

The command exits non-zero when any path is uncovered, so it can guard CI.

Examples:
  csv2ignore check
  csv2ignore check -o sub/.gitignore report.csv`,
		Args: cobra.MaximumNArgs(1),
		RunE: runCheckCmd,
	}

	addSelectionFlags(cmd)
	return cmd
}

func runCheckCmd(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args)
	if err != nil {
		return err
	}

	logger := log.NewLogger(cmd.ErrOrStderr(), cfg.Verbose)
	sink := progress.NewConsoleSink(cmd.OutOrStdout())

	paths, err := selectPaths(cfg, sink, logger)
	if err != nil {
		return err
	}
	return check(cfg.Output, paths, sink, logger)
}

// check reports which of paths the ignore file at ignorePath leaves uncovered.
func check(ignorePath string, paths []string, sink progress.Sink, logger *slog.Logger) error {
	paths = ignorefile.Normalize(paths)
	uncovered, err := ignorefile.Uncovered(ignorePath, paths)
	if err != nil {
		return err
	}
	logger.Debug("coverage checked", "file", ignorePath, "selected", len(paths), "uncovered", len(uncovered))

	if len(uncovered) == 0 {
		progress.Successf(sink, "All %d selected paths are covered by %s", len(paths), ignorePath)
		return nil
	}

	progress.Warnf(sink, "%d of %d selected paths are not covered by %s", len(uncovered), len(paths), ignorePath)
	s := ignorefile.Summarize(uncovered)
	for _, p := range s.Preview {
		progress.Itemf(sink, "%s", p)
	}
	if s.Remaining > 0 {
		progress.Infof(sink, "  ... and %d more", s.Remaining)
	}
	return fmt.Errorf("%s: %w", ignorePath, errUncovered)
}
