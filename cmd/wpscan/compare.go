package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/nao1215/wpkit/internal/history"
	"github.com/nao1215/wpkit/internal/model"
	"github.com/nao1215/wpkit/internal/report"
	"github.com/spf13/cobra"
)

// errTooFewScans is returned when compare has fewer than two stored scans.
var errTooFewScans = errors.New("at least 2 scans are required for comparison")

// NewCompareCmd creates the compare command.
func NewCompareCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compare [root]",
		Short: "Compare the latest two saved scans of an installation",
		Long: `Compare reads the scan history written by "wpscan --history" and shows
what changed between the two most recent scans of root (default "."):
- plugins and themes that were added or removed
- components whose version changed
- the WordPress core version

Examples:
  # Compare the latest two scans of the current directory
  wpscan compare

  # List saved scans of an installation
  wpscan compare --list /srv/www/wordpress

  # List every saved scan
  wpscan compare --list --all

  # Machine-readable diff
  wpscan compare -f json /srv/www/wordpress`,
		Args: cobra.MaximumNArgs(1),
		RunE: runCompareCmd,
	}

	cmd.Flags().BoolP("list", "l", false, "List saved scans instead of comparing")
	cmd.Flags().Bool("all", false, "With --list, show scans of every installation")
	cmd.Flags().StringP("format", "f", string(report.FormatMarkdown), "Output format: markdown or json")

	return cmd
}

func runCompareCmd(cmd *cobra.Command, args []string) error {
	cfg, _, err := loadScanConfig(cmd)
	if err != nil {
		return err
	}

	root := "."
	if len(args) > 0 {
		root = args[0]
	}
	if root, err = filepath.Abs(root); err != nil {
		return fmt.Errorf("resolve root: %w", err)
	}

	list, err := cmd.Flags().GetBool("list")
	if err != nil {
		return err
	}
	all, err := cmd.Flags().GetBool("all")
	if err != nil {
		return err
	}
	formatFlag, err := cmd.Flags().GetString("format")
	if err != nil {
		return err
	}
	format, err := report.ParseFormat(formatFlag)
	if err != nil {
		return err
	}
	if format == report.FormatXLSX {
		return fmt.Errorf("compare supports markdown or json output, not %s", format)
	}

	opts := history.DefaultOptions()
	opts.CreateIfNotExists = false
	store, err := history.Open(cfg.HistoryDir, opts)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return fmt.Errorf("no scan history (run 'wpscan --history' first): %w", err)
		}
		return err
	}
	defer store.Close()

	ctx := cmd.Context()
	out := cmd.OutOrStdout()
	if list {
		if all {
			root = ""
		}
		return listScans(ctx, store, root, out)
	}
	return compareLatest(ctx, store, root, format, out)
}

// listScans prints the saved scans of root, or of every root when empty.
func listScans(ctx context.Context, store *history.Store, root string, out io.Writer) error {
	scans, err := store.ListScans(ctx, root)
	if err != nil {
		return fmt.Errorf("failed to list scans: %w", err)
	}

	target := root
	if target == "" {
		target = "all installations"
	}
	if len(scans) == 0 {
		fmt.Fprintf(out, "No scan history found for %s\n", target)
		fmt.Fprintln(out, "\nUse 'wpscan --history' to save scans.")
		return nil
	}

	fmt.Fprintf(out, "Scan history for %s (%d scans):\n\n", target, len(scans))
	fmt.Fprintf(out, "  %-36s  %-19s  %-10s  %7s  %6s  %s\n", "ID", "Date", "WordPress", "Plugins", "Themes", "Root")
	fmt.Fprintln(out, "  "+strings.Repeat("-", 100))
	for _, m := range scans {
		fmt.Fprintf(out, "  %-36s  %-19s  %-10s  %7d  %6d  %s\n",
			m.ID,
			m.ScannedAt.Local().Format("2006-01-02 15:04:05"),
			m.PlatformVersion,
			m.PluginCount,
			m.ThemeCount,
			m.Root,
		)
	}
	return nil
}

// compareLatest writes the diff between the two newest scans of root.
func compareLatest(ctx context.Context, store *history.Store, root string, format report.Format, out io.Writer) error {
	scans, err := store.LatestScans(ctx, root, 2)
	if err != nil {
		return fmt.Errorf("failed to get scan history: %w", err)
	}
	if len(scans) < 2 {
		return fmt.Errorf("%s: %w (found %d)", root, errTooFewScans, len(scans))
	}

	diff := model.CompareScans(scans[1], scans[0])
	if format == report.FormatJSON {
		_, err = report.NewJSONWriter(out, report.WithPrettyPrint()).WriteDiff(diff)
	} else {
		_, err = report.NewMarkdownWriter(out).WriteDiff(diff)
	}
	return err
}
