package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nao1215/wpkit/internal/config"
	"github.com/nao1215/wpkit/internal/ignorefile"
	"github.com/nao1215/wpkit/internal/model"
)

const reportCSV = `GitHub Action,Full Path and Filename,Size
Ignore,wp-content/cache/,10
Keep,wp-config.php,3
,debug.log,1
Ignore,wp-content/uploads/2024/,99
`

// fixture creates a report, an empty config file and an output path in a
// fresh directory.
type fixture struct {
	dir    string
	report string
	config string
	output string
}

func newFixture(t *testing.T, report, cfg string) fixture {
	t.Helper()
	dir := t.TempDir()
	f := fixture{
		dir:    dir,
		report: filepath.Join(dir, "report.csv"),
		config: filepath.Join(dir, ".wpkit.yaml"),
		output: filepath.Join(dir, ".gitignore"),
	}
	if err := os.WriteFile(f.report, []byte(report), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(f.config, []byte(cfg), 0o600); err != nil {
		t.Fatal(err)
	}
	return f
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), err
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return string(data)
}

func TestNewRootCmd(t *testing.T) {
	t.Parallel()

	cmd := NewRootCmd()

	t.Run("has correct use", func(t *testing.T) {
		t.Parallel()
		if cmd.Use != "csv2ignore [table-file]" {
			t.Errorf("expected use 'csv2ignore [table-file]', got %q", cmd.Use)
		}
	})

	t.Run("has version", func(t *testing.T) {
		t.Parallel()
		if cmd.Version == "" {
			t.Error("expected non-empty version")
		}
	})

	t.Run("flag defaults", func(t *testing.T) {
		t.Parallel()
		want := map[string]string{
			"output":        config.DefaultIgnoreFile,
			"mode":          config.DefaultMode,
			"action-column": config.DefaultActionColumn,
			"path-column":   config.DefaultPathColumn,
			"marker":        config.DefaultMarker,
			"dry-run":       "false",
		}
		for name, def := range want {
			flag := cmd.Flags().Lookup(name)
			if flag == nil {
				t.Errorf("missing flag %q", name)
				continue
			}
			if flag.DefValue != def {
				t.Errorf("flag %q default = %q, want %q", name, flag.DefValue, def)
			}
		}
		for _, name := range []string{"verbose", "config"} {
			if cmd.PersistentFlags().Lookup(name) == nil {
				t.Errorf("missing persistent flag %q", name)
			}
		}
	})

	t.Run("has subcommands", func(t *testing.T) {
		t.Parallel()
		found := map[string]bool{}
		for _, sub := range cmd.Commands() {
			found[sub.Name()] = true
		}
		for _, name := range []string{"check", "init", "version"} {
			if !found[name] {
				t.Errorf("expected %s subcommand", name)
			}
		}
	})

	t.Run("silences usage and errors", func(t *testing.T) {
		t.Parallel()
		if !cmd.SilenceUsage || !cmd.SilenceErrors {
			t.Error("expected SilenceUsage and SilenceErrors")
		}
	})
}

func TestRootCmd_Append(t *testing.T) {
	t.Parallel()

	f := newFixture(t, reportCSV, "")
	if err := os.WriteFile(f.output, []byte("node_modules/\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	out, err := execute(t, "-c", f.config, "-o", f.output, f.report)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got := readFile(t, f.output)
	want := "node_modules/\n\n" + ignorefile.AppendHeader + "\n" +
		"debug.log\nwp-content/cache/\nwp-content/uploads/2024/\n"
	if got != want {
		t.Errorf("ignore file =\n%q\nwant\n%q", got, want)
	}

	for _, s := range []string{
		"Processing table file: " + f.report,
		"Successfully added 3 entries to " + f.output,
		"  - debug.log",
		"Done! Don't forget to:",
	} {
		if !strings.Contains(out, s) {
			t.Errorf("output missing %q:\n%s", s, out)
		}
	}

	t.Run("second run adds nothing", func(t *testing.T) {
		out, err := execute(t, "-c", f.config, "-o", f.output, f.report)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if readFile(t, f.output) != want {
			t.Error("second run changed the file")
		}
		if !strings.Contains(out, "No new files to add") {
			t.Errorf("output = %q", out)
		}
		if !strings.Contains(out, "Don't forget to:") {
			t.Errorf("next steps missing after a run with nothing new: %q", out)
		}
	})
}

func TestRootCmd_ReplaceFromConfigFile(t *testing.T) {
	t.Parallel()

	f := newFixture(t, reportCSV, "ignore:\n  mode: replace\n")
	if err := os.WriteFile(f.output, []byte("stale-entry\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	if _, err := execute(t, "-c", f.config, "-o", f.output, f.report); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got := readFile(t, f.output)
	if !strings.HasPrefix(got, ignorefile.ReplaceHeader) {
		t.Errorf("replace header missing:\n%s", got)
	}
	if strings.Contains(got, "stale-entry") {
		t.Errorf("stale entry survived replace:\n%s", got)
	}
	if !strings.HasSuffix(got, "debug.log\nwp-content/cache/\nwp-content/uploads/2024/\n") {
		t.Errorf("entries not sorted at end:\n%s", got)
	}
}

func TestRootCmd_FlagsOverrideConfigFile(t *testing.T) {
	t.Parallel()

	report := "Decision\tPath\nSkip\ta.txt\nIgnore\tb.txt\n"
	f := newFixture(t, report, "ignore:\n  actionColumn: Decision\n  pathColumn: Path\n  marker: Ignore\n")

	_, err := execute(t, "-c", f.config, "-o", f.output, "--marker", "Skip", f.report)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got := readFile(t, f.output)
	if !strings.Contains(got, "a.txt\n") || strings.Contains(got, "b.txt") {
		t.Errorf("marker flag did not override config:\n%s", got)
	}
}

func TestRootCmd_DryRun(t *testing.T) {
	t.Parallel()

	f := newFixture(t, reportCSV, "")
	out, err := execute(t, "-c", f.config, "-o", f.output, "--dry-run", f.report)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := os.Stat(f.output); !os.IsNotExist(err) {
		t.Errorf("dry run created %s", f.output)
	}
	if !strings.Contains(out, "Dry run: 3 entries would be added") {
		t.Errorf("output = %q", out)
	}
	if strings.Contains(out, "Don't forget") {
		t.Errorf("next steps printed for a dry run: %q", out)
	}
}

func TestRootCmd_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		report  string
		args    func(f fixture) []string
		wantErr error
	}{
		{
			name:    "missing table file",
			report:  reportCSV,
			args:    func(f fixture) []string { return []string{filepath.Join(f.dir, "missing.csv")} },
			wantErr: model.ErrNotFound,
		},
		{
			name:    "missing columns",
			report:  "Action,Path\nIgnore,a\n",
			args:    func(f fixture) []string { return []string{f.report} },
			wantErr: model.ErrSchema,
		},
		{
			name:    "invalid mode",
			report:  reportCSV,
			args:    func(f fixture) []string { return []string{"--mode", "merge", f.report} },
			wantErr: config.ErrInvalidMode,
		},
		{
			name:    "same column",
			report:  reportCSV,
			args:    func(f fixture) []string { return []string{"--path-column", config.DefaultActionColumn, f.report} },
			wantErr: config.ErrSameColumn,
		},
		{
			name:    "explicit config missing",
			report:  reportCSV,
			args:    func(f fixture) []string { return []string{"-c", filepath.Join(f.dir, "nope.yaml"), f.report} },
			wantErr: config.ErrConfigNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			f := newFixture(t, tt.report, "")
			args := append([]string{"-c", f.config, "-o", f.output}, tt.args(f)...)
			_, err := execute(t, args...)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("error = %v, want %v", err, tt.wantErr)
			}
			if _, statErr := os.Stat(f.output); !os.IsNotExist(statErr) {
				t.Errorf("output written despite error")
			}
		})
	}

	t.Run("too many arguments", func(t *testing.T) {
		t.Parallel()
		if _, err := execute(t, "a.csv", "b.csv"); err == nil {
			t.Error("expected error for two arguments")
		}
	})
}
