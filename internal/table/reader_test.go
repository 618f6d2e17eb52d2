package table

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/nao1215/wpkit/internal/model"
)

// writeFile creates a file with content in a fresh temporary directory.
func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
	return path
}

// collect reads all records, failing the test on error.
func collect(t *testing.T, r *Reader) []Record {
	t.Helper()
	var out []Record
	for rec, err := range r.Records() {
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		out = append(out, rec)
	}
	return out
}

func TestDetectDelimiter(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		sample []byte
		want   rune
	}{
		{"comma separated", []byte("a,b\n1,2\n"), ','},
		{"tab separated", []byte("a\tb\n1\t2\n"), '\t'},
		{"empty sample", nil, ','},
		{"tab after sample window is ignored", []byte(strings.Repeat("x", SampleSize) + "\t"), ','},
		{"tab at last sampled byte", []byte(strings.Repeat("x", SampleSize-1) + "\t"), '\t'},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := DetectDelimiter(tt.sample); got != tt.want {
				t.Errorf("DetectDelimiter() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestOpenDelimited(t *testing.T) {
	t.Parallel()

	t.Run("reads comma separated records with trimmed values", func(t *testing.T) {
		t.Parallel()

		path := writeFile(t, "report.csv", "Action , Path\n Ignore ,  build/out.log \n,tmp/cache\n")
		r, err := Open(path)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		defer r.Close()

		if r.Delimiter() != ',' {
			t.Errorf("expected comma delimiter, got %q", r.Delimiter())
		}
		if got := r.Header(); len(got) != 2 || got[0] != "Action" || got[1] != "Path" {
			t.Errorf("unexpected header %q", got)
		}

		recs := collect(t, r)
		if len(recs) != 2 {
			t.Fatalf("expected 2 records, got %d", len(recs))
		}
		if recs[0].Get("Action") != "Ignore" || recs[0].Get("Path") != "build/out.log" {
			t.Errorf("unexpected first record %+v", recs[0].Values)
		}
		if recs[1].Get("Action") != "" || recs[1].Get("Path") != "tmp/cache" {
			t.Errorf("unexpected second record %+v", recs[1].Values)
		}
		if recs[0].Line != 2 {
			t.Errorf("expected first record on line 2, got %d", recs[0].Line)
		}
	})

	t.Run("reads tab separated records", func(t *testing.T) {
		t.Parallel()

		path := writeFile(t, "report.tsv", "Action\tPath\nIgnore\tsrc/a, b.txt\n")
		r, err := Open(path)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		defer r.Close()

		if r.Delimiter() != '\t' {
			t.Errorf("expected tab delimiter, got %q", r.Delimiter())
		}
		recs := collect(t, r)
		if len(recs) != 1 || recs[0].Get("Path") != "src/a, b.txt" {
			t.Errorf("unexpected records %+v", recs)
		}
	})

	t.Run("tab beyond the sample does not switch delimiter", func(t *testing.T) {
		t.Parallel()

		long := strings.Repeat("x", SampleSize)
		content := "Action,Path\nKeep," + long + "\nIgnore,with\ttab\n"
		r, err := Open(writeFile(t, "report.csv", content))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		defer r.Close()

		if r.Delimiter() != ',' {
			t.Errorf("expected comma delimiter, got %q", r.Delimiter())
		}
		recs := collect(t, r)
		if len(recs) != 2 || recs[1].Get("Path") != "with\ttab" {
			t.Errorf("unexpected records %+v", recs)
		}
	})

	t.Run("strips a UTF-8 byte order mark", func(t *testing.T) {
		t.Parallel()

		r, err := Open(writeFile(t, "bom.csv", "\uFEFFAction,Path\nIgnore,a\n"))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		defer r.Close()

		if err := r.Require("Action", "Path"); err != nil {
			t.Errorf("expected header without BOM, got %v", err)
		}
	})

	t.Run("short rows read missing cells as empty", func(t *testing.T) {
		t.Parallel()

		r, err := Open(writeFile(t, "short.csv", "Action,Path,Notes\nIgnore\n"))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		defer r.Close()

		recs := collect(t, r)
		if len(recs) != 1 || recs[0].Get("Path") != "" {
			t.Errorf("unexpected records %+v", recs)
		}
	})

	t.Run("iteration can stop early", func(t *testing.T) {
		t.Parallel()

		r, err := Open(writeFile(t, "many.csv", "A\n1\n2\n3\n"))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		defer r.Close()

		count := 0
		for _, err := range r.Records() {
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			count++
			break
		}
		if count != 1 {
			t.Errorf("expected to stop after 1 record, got %d", count)
		}
	})

	t.Run("invalid UTF-8 is a read error", func(t *testing.T) {
		t.Parallel()

		r, err := Open(writeFile(t, "bad.csv", "A,B\nok,\xff\xfe\n"))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		defer r.Close()

		var gotErr error
		for _, err := range r.Records() {
			if err != nil {
				gotErr = err
			}
		}
		if !errors.Is(gotErr, model.ErrRead) {
			t.Errorf("expected ErrRead, got %v", gotErr)
		}
	})
}

func TestOpenErrors(t *testing.T) {
	t.Parallel()

	t.Run("missing file is ErrNotFound", func(t *testing.T) {
		t.Parallel()

		_, err := Open(filepath.Join(t.TempDir(), "absent.csv"))
		if !errors.Is(err, model.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("missing columns are a schema error", func(t *testing.T) {
		t.Parallel()

		r, err := Open(writeFile(t, "report.csv", "Status,File\nIgnore,a\n"))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		defer r.Close()

		err = r.Require("GitHub Action", "Full Path and Filename")
		if !errors.Is(err, model.ErrSchema) {
			t.Fatalf("expected ErrSchema, got %v", err)
		}
		var mce *model.MissingColumnsError
		if !errors.As(err, &mce) {
			t.Fatal("expected MissingColumnsError")
		}
		if len(mce.Missing) != 2 {
			t.Errorf("expected 2 missing columns, got %v", mce.Missing)
		}
		if len(mce.Available) != 2 || mce.Available[0] != "Status" {
			t.Errorf("unexpected available columns %v", mce.Available)
		}
	})

	t.Run("empty file has no columns", func(t *testing.T) {
		t.Parallel()

		r, err := Open(writeFile(t, "empty.csv", ""))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		defer r.Close()

		if err := r.Require("Action"); !errors.Is(err, model.ErrSchema) {
			t.Errorf("expected ErrSchema, got %v", err)
		}
	})
}

func TestOpenSpreadsheet(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "report.xlsx")
	f := excelize.NewFile()
	rows := [][]any{
		{"GitHub Action", "Full Path and Filename"},
		{"Ignore", " wp-content/cache "},
		{"Keep", "wp-config.php"},
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			t.Fatal(err)
		}
		if err := f.SetSheetRow("Sheet1", cell, &row); err != nil {
			t.Fatal(err)
		}
	}
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("failed to save workbook: %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}

	r, err := Open(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer r.Close()

	if err := r.Require("GitHub Action", "Full Path and Filename"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	recs := collect(t, r)
	if len(recs) != 2 {
		t.Fatalf("expected 2 records, got %d", len(recs))
	}
	if recs[0].Get("Full Path and Filename") != "wp-content/cache" {
		t.Errorf("expected trimmed value, got %q", recs[0].Get("Full Path and Filename"))
	}
	if recs[1].Line != 3 {
		t.Errorf("expected second record on row 3, got %d", recs[1].Line)
	}
}
