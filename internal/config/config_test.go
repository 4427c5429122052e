package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultParsesEmbeddedTOML(t *testing.T) {
	cfg, err := Default()
	if err != nil {
		t.Fatalf("Default() error = %v", err)
	}
	if len(cfg.IgnorePatterns) == 0 {
		t.Error("expected non-empty IgnorePatterns from embedded defaults")
	}
	if cfg.MaxFileBytes == 0 {
		t.Error("expected non-zero MaxFileBytes from embedded defaults")
	}
	if len(cfg.TestPatterns["jest"]) == 0 {
		t.Error("expected jest test patterns from embedded defaults")
	}
}

func TestLoadMergesProjectFileOverDefaults(t *testing.T) {
	dir := t.TempDir()
	projectFile := filepath.Join(dir, ".deadroot.toml")
	if err := os.WriteFile(projectFile, []byte("maxFileBytes = 9999\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load("", dir)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.MaxFileBytes != 9999 {
		t.Errorf("MaxFileBytes = %d, want 9999", cfg.MaxFileBytes)
	}
	if len(cfg.IgnorePatterns) == 0 {
		t.Error("expected default IgnorePatterns to survive a partial override")
	}
}

func TestLoadWithNoProjectFileReturnsDefaults(t *testing.T) {
	dir := t.TempDir()
	cfg, err := Load("", dir)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	want, _ := Default()
	if len(cfg.IgnorePatterns) != len(want.IgnorePatterns) {
		t.Errorf("IgnorePatterns = %v, want %v", cfg.IgnorePatterns, want.IgnorePatterns)
	}
}

func TestDiscoverWalksUpToParentDirectory(t *testing.T) {
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, ".deadroot.toml"), []byte("maxFileBytes = 42\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load("", nested)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.MaxFileBytes != 42 {
		t.Errorf("MaxFileBytes = %d, want 42 (discovered from ancestor dir)", cfg.MaxFileBytes)
	}
}
