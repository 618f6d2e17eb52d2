package pipeline

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/nao1215/wpkit/internal/model"
	"github.com/nao1215/wpkit/internal/progress"
	"github.com/nao1215/wpkit/internal/wordpress"
)

// writeFile creates path with content, making parent directories.
func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
}

func TestDefaultPipeline(t *testing.T) {
	t.Parallel()

	p := DefaultPipeline(wordpress.NewScanner(), nil, nil)
	want := []string{"verify", "version", "plugins", "themes"}
	if got := p.StepNames(); !slices.Equal(got, want) {
		t.Errorf("StepNames() = %v, want %v", got, want)
	}
}

func TestScan(t *testing.T) {
	t.Parallel()

	t.Run("full installation", func(t *testing.T) {
		t.Parallel()

		root := t.TempDir()
		writeFile(t, filepath.Join(root, "wp-config.php"), "<?php")
		writeFile(t, filepath.Join(root, "wp-includes", "version.php"), "<?php $wp_version = '6.5';")
		writeFile(t, filepath.Join(root, "wp-content", "plugins", "foo", "foo.php"),
			"<?php\n/*\nPlugin Name: Foo\nVersion: 1.2\n*/\n")
		writeFile(t, filepath.Join(root, "wp-content", "themes", "astra", "style.css"),
			"/*\nTheme Name: Astra\nVersion: 4.0\n*/\n")

		rec := progress.NewRecorder()
		result, err := Scan(context.Background(), root, wordpress.NewScanner(wordpress.WithSink(rec)), rec, nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if result.PlatformVersionString() != "6.5" {
			t.Errorf("unexpected version %q", result.PlatformVersionString())
		}
		foo := result.Plugins["foo"]
		if foo.Name != "Foo" || foo.Version != "1.2" || foo.Author != "" {
			t.Errorf("unexpected plugin %+v", foo)
		}
		if result.Themes["astra"].Name != "Astra" {
			t.Errorf("unexpected theme %+v", result.Themes["astra"])
		}
		if len(result.Warnings) != 0 {
			t.Errorf("unexpected warnings %q", result.Warnings)
		}
		if len(result.Steps) != 4 {
			t.Errorf("expected 4 steps, got %v", result.Steps)
		}
	})

	t.Run("not an installation", func(t *testing.T) {
		t.Parallel()

		result, err := Scan(context.Background(), t.TempDir(), wordpress.NewScanner(), nil, nil)
		if !errors.Is(err, model.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
		if len(result.Steps) != 0 {
			t.Errorf("expected no completed steps, got %v", result.Steps)
		}
	})

	t.Run("missing component directories are warnings", func(t *testing.T) {
		t.Parallel()

		root := t.TempDir()
		writeFile(t, filepath.Join(root, "wp-config.php"), "<?php")

		result, err := Scan(context.Background(), root, wordpress.NewScanner(), nil, nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if result.PlatformVersion != nil {
			t.Error("expected unknown version")
		}
		if len(result.Warnings) != 3 {
			t.Errorf("expected 3 warnings, got %q", result.Warnings)
		}
	})
}
