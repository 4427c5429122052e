package app

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestExecuteRejectsMissingRoot(t *testing.T) {
	uc := NewAnalyzeUseCase()
	_, err := uc.Execute(context.Background(), AnalyzeRequest{ProjectRoot: filepath.Join(t.TempDir(), "nope")})
	if err == nil {
		t.Fatal("expected an error for a missing project root")
	}
}

func TestExecuteRejectsEmptyRoot(t *testing.T) {
	uc := NewAnalyzeUseCase()
	_, err := uc.Execute(context.Background(), AnalyzeRequest{})
	if err == nil {
		t.Fatal("expected an error for an empty project root")
	}
}

func TestExecuteRunsAgainstRealDirectory(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "index.ts"), []byte("export function f() {}\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	uc := NewAnalyzeUseCase()
	report, err := uc.Execute(context.Background(), AnalyzeRequest{ProjectRoot: dir})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if report.Totals.TotalFiles != 1 {
		t.Errorf("TotalFiles = %d, want 1", report.Totals.TotalFiles)
	}
}
