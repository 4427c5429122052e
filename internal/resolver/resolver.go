// Package resolver implements spec.md §4.4's ImportResolver: turning each
// ImportRef's raw module text into a Resolved/External/Unresolved outcome,
// one strategy per language family. Resolution failures are always recorded
// on the edge rather than aborting analysis, per spec.md §4.4/§7.
package resolver

import (
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/deadroot/deadroot/domain"
)

// jsExtensionSearchOrder is tried, in order, after a relative specifier with
// no extension of its own, per spec.md §4.4.
var jsExtensionSearchOrder = []string{
	".ts", ".tsx", ".mts", ".cts", ".js", ".jsx", ".mjs", ".cjs", ".vue",
}

// FileSet is the set of project-relative paths the walker discovered,
// indexed for the O(1) existence checks every resolution strategy needs.
type FileSet struct {
	paths map[string]bool
	all   []string
}

// NewFileSet builds a FileSet from the walked relative paths.
func NewFileSet(paths []string) *FileSet {
	fs := &FileSet{paths: make(map[string]bool, len(paths)), all: append([]string(nil), paths...)}
	for _, p := range paths {
		fs.paths[p] = true
	}
	sort.Strings(fs.all)
	return fs
}

// Has reports whether rel is a known project file.
func (fs *FileSet) Has(rel string) bool { return fs.paths[rel] }

// Glob returns every known path matching pattern, relative to base.
func (fs *FileSet) Glob(base, pattern string) []string {
	full := pattern
	if !path.IsAbs(pattern) && !strings.HasPrefix(pattern, "*") {
		full = path.Join(base, pattern)
	}
	var out []string
	for _, p := range fs.all {
		if ok, _ := doublestar.Match(full, p); ok {
			out = append(out, p)
		}
	}
	return out
}

// Resolver dispatches each ImportRef to a per-language strategy. It is built
// once per analysis run against the fully-walked FileSet and the discovered
// tsconfig.json, package.json and go.mod manifests; Cargo.toml and
// pyproject.toml are not read.
type Resolver struct {
	files     *FileSet
	root      string
	jsConfigs *jsManifests
	goModules []goModuleRoot
}

// New builds a Resolver over the walked file set rooted at projectRoot.
// Manifests are loaded eagerly, best-effort: a missing or malformed manifest
// degrades resolution quality but never fails construction.
func New(projectRoot string, files *FileSet) *Resolver {
	r := &Resolver{files: files, root: projectRoot}
	r.jsConfigs = loadJSManifests(projectRoot, files)
	r.goModules = loadGoModules(projectRoot, files)
	return r
}

// Resolve maps one ImportRef, found in fromPath, to a Resolution.
func (r *Resolver) Resolve(fromPath string, lang domain.Language, ref domain.ImportRef) domain.Resolution {
	if ref.RawModule == "" {
		return domain.Resolution{Kind: domain.ResolutionUnresolved, Reason: "empty specifier"}
	}

	switch lang {
	case domain.LanguageJavaScript, domain.LanguageTypeScript, domain.LanguageVue:
		return r.resolveJS(fromPath, ref)
	case domain.LanguagePython:
		return r.resolvePython(fromPath, ref)
	case domain.LanguageGo:
		return r.resolveGo(fromPath, ref)
	case domain.LanguageRust:
		return r.resolveRust(fromPath, ref)
	case domain.LanguageJava, domain.LanguageKotlin:
		return r.resolveJVM(fromPath, ref)
	default:
		return r.resolveBestEffort(fromPath, ref)
	}
}

// ExpandGlob resolves a glob-style ImportRef (import.meta.glob,
// require.context, glob.sync) into one edge target per matching file, per
// spec.md §4.4's "Globs ... expand at resolution time against the walked
// file set" rule.
func (r *Resolver) ExpandGlob(fromPath string, ref domain.ImportRef) []string {
	if ref.RawModule == "" {
		return nil
	}
	base := path.Dir(fromPath)
	pattern := ref.RawModule
	if strings.HasPrefix(pattern, "./") || strings.HasPrefix(pattern, "../") {
		pattern = path.Join(base, pattern)
	}
	if ref.Kind == domain.ImportRequireContext {
		// require.context names a directory: every walked file under it
		// matches (its recursive flag and filter regex are not applied).
		pattern = path.Join(pattern, "**")
	}
	return r.files.Glob(".", pattern)
}

// cleanRel normalizes a joined relative path to forward slashes with no
// leading "./", matching the walker's path representation.
func cleanRel(p string) string {
	p = path.Clean(filepath.ToSlash(p))
	p = strings.TrimPrefix(p, "./")
	return p
}
