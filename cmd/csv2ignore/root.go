package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/nao1215/wpkit/internal/buildinfo"
	"github.com/nao1215/wpkit/internal/config"
	"github.com/nao1215/wpkit/internal/ignorefile"
	"github.com/nao1215/wpkit/internal/log"
	"github.com/nao1215/wpkit/internal/progress"
	"github.com/nao1215/wpkit/internal/table"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// NewRootCmd creates the root command for csv2ignore.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "csv2ignore [table-file]",
		Short: "Add rows of a diff analysis report to .gitignore",
		Long: `csv2ignore reads a diff analysis report and writes every path whose
action column is "Ignore" (or empty) to an ignore file.

The report may be comma-separated, tab-separated or an .xlsx workbook.
The default file is "` + config.DefaultTableFile + `".

Modes:
  append   add paths not yet listed, keeping the existing file (default)
  replace  regenerate the whole file from the report

Examples:
  # Append ignored rows of the default report to .gitignore
  csv2ignore

  # Regenerate .gitignore from a TSV export
  csv2ignore --mode replace export.tsv

  # Show what would be added without writing
  csv2ignore --dry-run report.csv`,
		Version:       buildinfo.Version(),
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runRootCmd,
	}

	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")
	cmd.PersistentFlags().StringP("config", "c", "",
		"Configuration file path (default: "+config.DefaultConfigFile+" in current directory or XDG config directory)")

	addSelectionFlags(cmd)
	cmd.Flags().String("mode", config.DefaultMode, "Write mode: append or replace")
	cmd.Flags().Bool("dry-run", false, "Report what would change without writing")

	cmd.AddCommand(NewCheckCmd())
	cmd.AddCommand(NewInitCmd())
	cmd.AddCommand(buildinfo.NewVersionCmd("csv2ignore"))

	return cmd
}

// addSelectionFlags registers the flags shared by the root and check commands.
func addSelectionFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("output", "o", config.DefaultIgnoreFile, "Ignore file to write")
	cmd.Flags().String("action-column", config.DefaultActionColumn, "Column holding the per-row action")
	cmd.Flags().String("path-column", config.DefaultPathColumn, "Column holding the path to ignore")
	cmd.Flags().String("marker", config.DefaultMarker, "Action value that selects a row")
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func runRootCmd(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args)
	if err != nil {
		return err
	}

	logger := log.NewLogger(cmd.ErrOrStderr(), cfg.Verbose)
	slog.SetDefault(logger)
	sink := progress.NewConsoleSink(cmd.OutOrStdout())

	res, err := convert(cfg, sink, logger)
	if err != nil {
		return err
	}

	res.Emit(sink)
	if !res.DryRun {
		printNextSteps(sink)
	}
	return nil
}

// buildConfig merges defaults, the configuration file, the positional
// argument and explicitly set flags, in that order, and validates the result.
func buildConfig(cmd *cobra.Command, args []string) (*config.IgnoreConfig, error) {
	flags := cmd.Flags()
	cfg := config.NewIgnoreConfig()

	configPath, err := flags.GetString("config")
	if err != nil {
		return nil, err
	}
	file, path, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config file: %w", err)
	}
	file.ApplyIgnore(cfg)
	cfg.ConfigFilePath = path

	if len(args) > 0 {
		cfg.Input = args[0]
	}

	for name, dst := range map[string]*string{
		"output":        &cfg.Output,
		"mode":          &cfg.Mode,
		"action-column": &cfg.ActionColumn,
		"path-column":   &cfg.PathColumn,
		"marker":        &cfg.Marker,
	} {
		if err := overrideString(flags, name, dst); err != nil {
			return nil, err
		}
	}

	if flags.Lookup("dry-run") != nil {
		if cfg.DryRun, err = flags.GetBool("dry-run"); err != nil {
			return nil, err
		}
	}
	if cfg.Verbose, err = flags.GetBool("verbose"); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration error: %w", err)
	}
	return cfg, nil
}

// overrideString copies the value of flag name into dst when the user set it.
// Flags the command does not define are ignored.
func overrideString(flags *pflag.FlagSet, name string, dst *string) error {
	f := flags.Lookup(name)
	if f == nil || !f.Changed {
		return nil
	}
	v, err := flags.GetString(name)
	if err != nil {
		return err
	}
	*dst = v
	return nil
}

// selectPaths opens the table named by cfg and returns the selected paths.
func selectPaths(cfg *config.IgnoreConfig, sink progress.Sink, logger *slog.Logger) ([]string, error) {
	progress.Infof(sink, "Processing table file: %s", cfg.Input)

	r, err := table.Open(cfg.Input)
	if err != nil {
		return nil, err
	}
	defer r.Close() //nolint:errcheck // read-only file

	sel := &ignorefile.Selector{
		ActionColumn: cfg.ActionColumn,
		PathColumn:   cfg.PathColumn,
		Marker:       cfg.Marker,
	}
	if err := r.Require(sel.Columns()...); err != nil {
		return nil, fmt.Errorf("%s: %w", cfg.Input, err)
	}

	paths, err := sel.Select(r.Records())
	if err != nil {
		return nil, err
	}
	logger.Debug("rows selected", "file", cfg.Input, "columns", len(r.Header()), "count", len(paths))
	return paths, nil
}

// convert runs the whole table-to-ignore-file flow.
func convert(cfg *config.IgnoreConfig, sink progress.Sink, logger *slog.Logger) (*ignorefile.Result, error) {
	policy, err := ignorefile.ParseWritePolicy(cfg.Mode)
	if err != nil {
		return nil, err
	}

	paths, err := selectPaths(cfg, sink, logger)
	if err != nil {
		return nil, err
	}

	w := ignorefile.NewWriter(cfg.Output, policy,
		ignorefile.WithDryRun(cfg.DryRun),
		ignorefile.WithLogger(logger),
	)
	return w.Write(paths)
}

func printNextSteps(sink progress.Sink) {
	progress.Sectionf(sink, "Done! Don't forget to:")
	progress.Infof(sink, "1. Review the updated .gitignore file")
	progress.Infof(sink, "2. Run 'git rm -r --cached .' to remove already tracked files")
	progress.Infof(sink, "3. Run 'git add .' to re-add files with new .gitignore rules")
	progress.Infof(sink, "4. Commit your changes")
}
