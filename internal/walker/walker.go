// Package walker implements spec.md §4.1's FileWalker: it enumerates
// candidate source files under a project root, applying ignore rules, and
// never aborts the walk on a single file's failure.
package walker

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	ignore "github.com/sabhiram/go-gitignore"

	"github.com/deadroot/deadroot/domain"
	"github.com/deadroot/deadroot/internal/errs"
	"github.com/deadroot/deadroot/internal/langs"
)

// DefaultMaxFileBytes is the byte cap above which a file is skipped as
// unlikely to be meaningfully analyzable source, per spec.md §4.1.
const DefaultMaxFileBytes = 2 * 1024 * 1024

var defaultIgnoreDirs = []string{
	".git", ".hg", ".svn", "node_modules", "dist", "build", "out",
	"target", "vendor", ".next", ".nuxt", ".venv", "__pycache__",
	".quarantine", ".snapshots",
}

var binaryExtensions = map[string]bool{
	".png": true, ".jpg": true, ".jpeg": true, ".gif": true, ".ico": true,
	".pdf": true, ".zip": true, ".tar": true, ".gz": true, ".woff": true,
	".woff2": true, ".ttf": true, ".eot": true, ".mp4": true, ".mp3": true,
	".exe": true, ".dll": true, ".so": true, ".dylib": true, ".wasm": true,
}

// Walker walks a project root and reports every candidate file, skipping
// binaries, oversized files, and anything matching an ignore pattern.
type Walker struct {
	config           domain.AnalysisConfig
	ignorePatterns   []string
	generatedPatterns []string
}

// New creates a Walker bound to cfg. A zero MaxFileBytes is replaced by
// DefaultMaxFileBytes; IgnorePatterns and GeneratedPatterns are used as given.
func New(cfg domain.AnalysisConfig) *Walker {
	maxBytes := cfg.MaxFileBytes
	if maxBytes <= 0 {
		maxBytes = DefaultMaxFileBytes
		cfg.MaxFileBytes = maxBytes
	}
	return &Walker{
		config:            cfg,
		ignorePatterns:    cfg.IgnorePatterns,
		generatedPatterns: cfg.GeneratedPatterns,
	}
}

// Walk enumerates every file under root, invoking visit(path, bytes,
// language) for each candidate. It returns *errs.ProjectNotFound if root
// does not exist; any other per-file error is appended to diagnostics and
// the walk continues.
func (w *Walker) Walk(root string, visit func(path string, size int64, lang domain.Language)) ([]domain.Diagnostic, error) {
	info, err := os.Stat(root)
	if err != nil || !info.IsDir() {
		return nil, &errs.ProjectNotFound{Root: root}
	}

	var diagnostics []domain.Diagnostic
	gi := loadGitIgnore(root)

	walkErr := filepath.Walk(root, func(path string, fi os.FileInfo, walkErr error) error {
		if walkErr != nil {
			diagnostics = append(diagnostics, domain.Diagnostic{
				Kind: domain.DiagnosticIOError, Path: path, Reason: walkErr.Error(),
			})
			return nil
		}

		rel, relErr := filepath.Rel(root, path)
		if relErr != nil {
			rel = path
		}
		rel = filepath.ToSlash(rel)

		if fi.IsDir() {
			if w.isIgnoredDir(rel, fi.Name(), gi) {
				return filepath.SkipDir
			}
			return nil
		}

		if w.isIgnoredFile(rel, gi) {
			return nil
		}

		ext := strings.ToLower(filepath.Ext(path))
		if binaryExtensions[ext] {
			return nil
		}
		if fi.Size() > w.config.MaxFileBytes {
			return nil
		}

		lang := langs.RouteFile(rel)
		visit(rel, fi.Size(), lang)
		return nil
	})

	if walkErr != nil {
		diagnostics = append(diagnostics, domain.Diagnostic{
			Kind: domain.DiagnosticIOError, Path: root, Reason: walkErr.Error(),
		})
	}
	return diagnostics, nil
}

func (w *Walker) isIgnoredDir(rel, name string, gi *ignore.GitIgnore) bool {
	for _, d := range defaultIgnoreDirs {
		if name == d {
			return true
		}
	}
	if gi != nil && gi.MatchesPath(rel) {
		return true
	}
	return w.matchesAny(rel, w.ignorePatterns)
}

func (w *Walker) isIgnoredFile(rel string, gi *ignore.GitIgnore) bool {
	if gi != nil && gi.MatchesPath(rel) {
		return true
	}
	if w.matchesAny(rel, w.ignorePatterns) {
		return true
	}
	return w.matchesAny(rel, w.generatedPatterns)
}

func (w *Walker) matchesAny(rel string, patterns []string) bool {
	for _, pat := range patterns {
		if ok, err := doublestar.Match(pat, rel); err == nil && ok {
			return true
		}
	}
	return false
}

func loadGitIgnore(root string) *ignore.GitIgnore {
	gi, err := ignore.CompileIgnoreFile(filepath.Join(root, ".gitignore"))
	if err != nil {
		return nil
	}
	return gi
}
