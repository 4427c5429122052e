package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"

	"github.com/deadroot/deadroot/domain"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{Use: "deadroot"}
	root.AddCommand(scanCmd())
	root.AddCommand(initCmd())
	root.AddCommand(versionCmd())
	return root
}

func TestScanCommandWritesJSONReport(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "index.ts"), []byte("export function f() {}\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	out := filepath.Join(dir, "report.json")

	cmd := newRootCmd()
	cmd.SetArgs([]string{"scan", dir, "--quiet", "--output", out})
	var stderr bytes.Buffer
	cmd.SetErr(&stderr)
	if err := cmd.Execute(); err != nil {
		t.Fatalf("scan command error = %v, stderr=%s", err, stderr.String())
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("read report: %v", err)
	}
	var report domain.AnalysisReport
	if err := json.Unmarshal(data, &report); err != nil {
		t.Fatalf("unmarshal report: %v", err)
	}
	if report.Totals.TotalFiles != 1 {
		t.Errorf("TotalFiles = %d, want 1", report.Totals.TotalFiles)
	}
}

func TestScanCommandRejectsMissingRoot(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetArgs([]string{"scan", filepath.Join(t.TempDir(), "missing"), "--quiet"})
	cmd.SetOut(&bytes.Buffer{})
	if err := cmd.Execute(); err == nil {
		t.Fatal("expected an error for a missing project root")
	}
}

func TestInitCommandWritesScaffold(t *testing.T) {
	dir := t.TempDir()
	wd, _ := os.Getwd()
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	defer os.Chdir(wd)

	cmd := newRootCmd()
	cmd.SetArgs([]string{"init"})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("init command error = %v", err)
	}
	if _, err := os.Stat(".deadroot.toml"); err != nil {
		t.Fatalf("expected .deadroot.toml to be written: %v", err)
	}
}

func TestInitCommandRefusesToOverwriteWithoutForce(t *testing.T) {
	dir := t.TempDir()
	wd, _ := os.Getwd()
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	defer os.Chdir(wd)

	if err := os.WriteFile(".deadroot.toml", []byte("maxFileBytes = 1\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cmd := newRootCmd()
	cmd.SetArgs([]string{"init"})
	if err := cmd.Execute(); err == nil {
		t.Fatal("expected an error when the config file already exists")
	}
}
