package service

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/deadroot/deadroot/domain"
)

func writeProject(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for rel, content := range files {
		full := filepath.Join(dir, rel)
		if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(full, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func TestAnalyzeFindsOrphanAndLiveFiles(t *testing.T) {
	dir := writeProject(t, map[string]string{
		"package.json": `{"name": "sample", "main": "src/index.ts"}`,
		"src/index.ts": "import { helper } from './util';\nhelper();\n",
		"src/util.ts":  "export function helper() {}\nexport function unused() {}\n",
		"src/orphan.ts": "export function neverImported() {}\n",
	})

	report, err := NewAnalyzer().Analyze(context.Background(), dir, domain.AnalysisConfig{}, nil)
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}
	if report.Cancelled {
		t.Fatal("report should not be cancelled")
	}
	if report.Totals.TotalFiles != 4 {
		t.Fatalf("TotalFiles = %d, want 4 (report=%+v)", report.Totals.TotalFiles, report)
	}

	var orphan, util *domain.DeadFile
	for i := range report.DeadFiles {
		switch report.DeadFiles[i].Path {
		case "src/orphan.ts":
			orphan = &report.DeadFiles[i]
		case "src/util.ts":
			util = &report.DeadFiles[i]
		}
	}
	if orphan == nil || orphan.Verdict != domain.StatusUnreachable {
		t.Errorf("orphan.ts verdict = %+v, want unreachable", orphan)
	}
	if util == nil || util.Verdict != domain.StatusPartiallyUnreachable {
		t.Fatalf("util.ts verdict = %+v, want partially-unreachable", util)
	}
	if len(util.Exports) != 1 || util.Exports[0].Name != "unused" {
		t.Errorf("util.ts dead exports = %+v, want only 'unused'", util.Exports)
	}
}

func TestAnalyzeResolvesReachabilityThroughBarrelReexport(t *testing.T) {
	dir := writeProject(t, map[string]string{
		"package.json":  `{"name": "sample", "main": "src/index.ts"}`,
		"src/index.ts":  "import { realWork } from './barrel';\nrealWork();\n",
		"src/barrel.ts": "export * from './impl';\n",
		"src/impl.ts":   "export function realWork() {}\nexport function neverCalled() {}\n",
	})

	report, err := NewAnalyzer().Analyze(context.Background(), dir, domain.AnalysisConfig{}, nil)
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}

	for _, df := range report.DeadFiles {
		if (df.Path == "src/barrel.ts" || df.Path == "src/impl.ts") && df.Verdict == domain.StatusUnreachable {
			t.Fatalf("%s should not be unreachable (report=%+v)", df.Path, report)
		}
	}

	var impl *domain.DeadFile
	for i := range report.DeadFiles {
		if report.DeadFiles[i].Path == "src/impl.ts" {
			impl = &report.DeadFiles[i]
		}
	}
	if impl != nil {
		for _, exp := range impl.Exports {
			if exp.Name == "realWork" {
				t.Fatal("realWork should be reachable through the barrel re-export, not reported dead")
			}
		}
	}
}

func TestAnalyzeReturnsCancelledReportOnCancelledContext(t *testing.T) {
	dir := writeProject(t, map[string]string{
		"src/index.ts": "export function f() {}\n",
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	report, err := NewAnalyzer().Analyze(ctx, dir, domain.AnalysisConfig{}, nil)
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}
	if !report.Cancelled {
		t.Error("expected Cancelled = true for an already-cancelled context")
	}
}

func TestAnalyzeReportsMissingProjectRoot(t *testing.T) {
	_, err := NewAnalyzer().Analyze(context.Background(), filepath.Join(t.TempDir(), "missing"), domain.AnalysisConfig{}, nil)
	if err == nil {
		t.Fatal("expected an error for a missing project root")
	}
}

func TestAnalyzeEmitsProgressEvents(t *testing.T) {
	dir := writeProject(t, map[string]string{
		"src/index.ts": "export function f() {}\n",
	})

	var phases []domain.ProgressPhase
	_, err := NewAnalyzer().Analyze(context.Background(), dir, domain.AnalysisConfig{}, func(e domain.ProgressEvent) {
		phases = append(phases, e.Phase)
	})
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}
	want := domain.PhaseAssemble
	found := false
	for _, p := range phases {
		if p == want {
			found = true
		}
	}
	if !found {
		t.Errorf("phases = %v, want to include %s", phases, want)
	}
}
