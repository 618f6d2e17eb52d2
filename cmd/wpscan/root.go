package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/nao1215/wpkit/internal/buildinfo"
	"github.com/nao1215/wpkit/internal/config"
	"github.com/nao1215/wpkit/internal/history"
	"github.com/nao1215/wpkit/internal/log"
	"github.com/nao1215/wpkit/internal/model"
	"github.com/nao1215/wpkit/internal/pipeline"
	"github.com/nao1215/wpkit/internal/progress"
	"github.com/nao1215/wpkit/internal/report"
	"github.com/nao1215/wpkit/internal/wordpress"
	"github.com/spf13/cobra"
)

// formatLabels names each format in the "report saved" line.
var formatLabels = map[report.Format]string{
	report.FormatXLSX:     "Excel",
	report.FormatMarkdown: "Markdown",
	report.FormatJSON:     "JSON",
}

// NewRootCmd creates the root command for wpscan.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "wpscan [root]",
		Short: "Inventory the plugins and themes of a WordPress installation",
		Long: `wpscan reads a WordPress installation and reports its core version and the
name, version, author, description and URI of every plugin and theme.

The root directory (default ".") must contain wp-config.php.
Unreadable plugin or theme files are reported as warnings and do not stop
the scan.

The report format follows --format, or the extension of --output when
--format is not given: .md for Markdown, .json for JSON, anything else xlsx.
scan.format in the configuration file applies only when neither flag is set.

Examples:
  # Scan the current directory into wordpress_site_info.xlsx
  wpscan

  # Scan another installation and write Markdown
  wpscan -o site.md /srv/www/wordpress

  # Keep the scan for later comparison
  wpscan --history /srv/www/wordpress
  wpscan compare /srv/www/wordpress`,
		Version:       buildinfo.Version(),
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runRootCmd,
	}

	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")
	cmd.PersistentFlags().StringP("config", "c", "",
		"Configuration file path (default: "+config.DefaultConfigFile+" in current directory or XDG config directory)")
	cmd.PersistentFlags().String("history-dir", "",
		"Directory of the scan history database (default: XDG data directory)")

	cmd.Flags().StringP("output", "o", config.DefaultReportFile, "Report file to write")
	cmd.Flags().StringP("format", "f", "", report.FormatHelp())
	cmd.Flags().StringSlice("exclude", nil, "Plugin or theme directory names to skip")
	cmd.Flags().Bool("history", false, "Save the scan to the history database")

	cmd.AddCommand(NewCompareCmd())
	cmd.AddCommand(NewInitCmd())
	cmd.AddCommand(buildinfo.NewVersionCmd("wpscan"))

	return cmd
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

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := runScan(ctx, cfg, cmd.OutOrStdout(), sink, logger); err != nil {
		progress.Errorf(sink, "Scan failed!")
		return err
	}
	progress.Successf(sink, "Scan completed successfully!")
	return nil
}

// loadScanConfig applies the configuration file and the persistent flags
// to the defaults.
func loadScanConfig(cmd *cobra.Command) (*config.ScanConfig, *config.File, error) {
	flags := cmd.Flags()
	cfg := config.NewScanConfig()

	configPath, err := flags.GetString("config")
	if err != nil {
		return nil, nil, err
	}
	file, path, err := config.Load(configPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config file: %w", err)
	}
	file.ApplyScan(cfg)
	cfg.ConfigFilePath = path

	if dir, err := flags.GetString("history-dir"); err != nil {
		return nil, nil, err
	} else if dir != "" {
		cfg.HistoryDir = dir
	}
	if cfg.Verbose, err = flags.GetBool("verbose"); err != nil {
		return nil, nil, err
	}
	return cfg, file, nil
}

// buildConfig merges defaults, the configuration file, the positional
// argument and explicitly set flags, and validates the result.
func buildConfig(cmd *cobra.Command, args []string) (*config.ScanConfig, error) {
	flags := cmd.Flags()
	cfg, file, err := loadScanConfig(cmd)
	if err != nil {
		return nil, err
	}

	if len(args) > 0 {
		cfg.Root = args[0]
	}

	if flags.Changed("output") {
		if cfg.Output, err = flags.GetString("output"); err != nil {
			return nil, err
		}
	}

	// --format, then the extension of an explicit --output, then scan.format,
	// then the extension of the configured output.
	switch {
	case flags.Changed("format"):
		if cfg.Format, err = flags.GetString("format"); err != nil {
			return nil, err
		}
	case flags.Changed("output") || file.Scan.Format == "":
		cfg.Format = string(report.FormatFromPath(cfg.Output))
	}

	exclude, err := flags.GetStringSlice("exclude")
	if err != nil {
		return nil, err
	}
	cfg.Exclude = append(cfg.Exclude, exclude...)

	if flags.Changed("history") {
		if cfg.SaveHistory, err = flags.GetBool("history"); err != nil {
			return nil, err
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration error: %w", err)
	}
	return cfg, nil
}

// runScan scans cfg.Root, writes the report and the console summary, and
// stores the scan when history is enabled.
func runScan(ctx context.Context, cfg *config.ScanConfig, out io.Writer, sink progress.Sink, logger *slog.Logger) error {
	format, err := report.ParseFormat(cfg.Format)
	if err != nil {
		return err
	}

	root, err := filepath.Abs(cfg.Root)
	if err != nil {
		return fmt.Errorf("resolve %s: %w", cfg.Root, err)
	}

	scanner := wordpress.NewScanner(
		wordpress.WithExclude(cfg.Exclude...),
		wordpress.WithExtraLabels(model.KindPlugin, cfg.PluginLabels...),
		wordpress.WithExtraLabels(model.KindTheme, cfg.ThemeLabels...),
		wordpress.WithLogger(logger),
		wordpress.WithSink(sink),
	)

	result, err := pipeline.Scan(ctx, root, scanner, sink, logger)
	if err != nil {
		return err
	}

	rep := report.Assemble(result)
	if _, err := report.NewSimpleWriter(out, report.WithVerbose(cfg.Verbose)).Write(rep); err != nil {
		return fmt.Errorf("write summary: %w", err)
	}

	if err := writeReport(cfg.Output, format, rep); err != nil {
		return err
	}
	progress.Infof(sink, "\n💾 %s report saved to: %s", formatLabels[format], cfg.Output)

	if cfg.SaveHistory {
		if err := saveHistory(ctx, cfg.HistoryDir, result); err != nil {
			return err
		}
		progress.Infof(sink, "🗄  Scan %s saved to history", result.ID)
	}

	logger.Debug("scan finished",
		"root", root,
		"plugins", result.PluginCount(),
		"themes", result.ThemeCount(),
		"warnings", len(result.Warnings),
	)
	return nil
}

// writeReport renders rep to path in format. A partially written file is
// removed on failure.
func writeReport(path string, format report.Format, rep *report.Report) (err error) {
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return fmt.Errorf("create directory %s: %w: %w", dir, model.ErrIO, err)
		}
	}

	f, err := os.Create(path) //nolint:gosec // User-provided output path is intentional
	if err != nil {
		return fmt.Errorf("create %s: %w: %w", path, model.ErrIO, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close %s: %w: %w", path, model.ErrIO, cerr)
		}
		if err != nil {
			_ = os.Remove(path)
		}
	}()

	w, err := report.NewWriter(format, f)
	if err != nil {
		return err
	}
	if _, err := w.Write(rep); err != nil {
		return fmt.Errorf("write %s: %w: %w", path, model.ErrIO, err)
	}
	return nil
}

func saveHistory(ctx context.Context, dir string, result *model.ScanResult) error {
	store, err := history.Open(dir, history.DefaultOptions())
	if err != nil {
		return fmt.Errorf("failed to open history database: %w", err)
	}
	defer store.Close()

	if err := store.SaveScan(ctx, result); err != nil {
		return fmt.Errorf("%w: %w", model.ErrIO, err)
	}
	return nil
}
