package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nao1215/wpkit/internal/config"
)

func TestInitCmd(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), ".wpkit.yaml")

	var buf bytes.Buffer
	cmd := NewInitCmd()
	cmd.SetOut(&buf)
	cmd.SetArgs([]string{"-o", path})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(buf.String(), `Edit the "scan" section`) {
		t.Errorf("output = %q", buf.String())
	}

	cf, err := config.LoadConfigFile(path)
	if err != nil {
		t.Fatalf("template does not load: %v", err)
	}
	if cf.Scan.Output != config.DefaultReportFile {
		t.Errorf("scan.output = %q, want %q", cf.Scan.Output, config.DefaultReportFile)
	}

	cmd = NewInitCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{"-o", path})
	if err := cmd.Execute(); !errors.Is(err, config.ErrConfigExists) {
		t.Errorf("second init error = %v, want ErrConfigExists", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("config removed: %v", err)
	}
}
