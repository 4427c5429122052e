package resolver

import (
	"path"
	"strings"

	"github.com/deadroot/deadroot/domain"
)

// bestEffortExtensions covers the remaining language families spec.md §4.4
// groups under "Others": best-effort relative and package-path resolution.
var bestEffortExtensions = []string{
	".php", ".rb", ".cs", ".dart", ".swift", ".scala", ".ex", ".exs", ".hs",
	".lua", ".c", ".h", ".cpp", ".hpp", ".pl", ".r", ".clj", ".fs", ".ml",
	".jl", ".zig", ".nim", ".erl", ".groovy", ".cr", ".v", ".m", ".sh",
	".ps1", ".cob", ".f90", ".vb",
}

// resolveBestEffort tries relative resolution first (the common case for
// PHP `require`/`include`, Ruby `require_relative`, C/C++ `#include "..."`),
// then a project-tree-wide basename search, and only then gives up with an
// explicit reason — never silently dropping the import, per spec.md §4.4.
func (r *Resolver) resolveBestEffort(fromPath string, ref domain.ImportRef) domain.Resolution {
	mod := ref.RawModule
	dir := path.Dir(fromPath)

	if strings.HasPrefix(mod, "./") || strings.HasPrefix(mod, "../") {
		joined := cleanRel(path.Join(dir, mod))
		if res, ok := r.tryBestEffortCandidates(joined); ok {
			return res
		}
		return domain.Resolution{Kind: domain.ResolutionUnresolved, Reason: "relative path not found: " + mod}
	}

	joined := cleanRel(path.Join(dir, mod))
	if res, ok := r.tryBestEffortCandidates(joined); ok {
		return res
	}

	base := path.Base(mod)
	for _, p := range r.files.all {
		if path.Base(p) == base || path.Base(p) == base+path.Ext(base) {
			return domain.Resolution{Kind: domain.ResolutionResolved, Path: p}
		}
	}

	if !strings.ContainsAny(mod, "/\\") {
		return domain.Resolution{Kind: domain.ResolutionExternal}
	}
	return domain.Resolution{Kind: domain.ResolutionUnresolved, Reason: "no matching file for: " + mod}
}

func (r *Resolver) tryBestEffortCandidates(joined string) (domain.Resolution, bool) {
	if r.files.Has(joined) {
		return domain.Resolution{Kind: domain.ResolutionResolved, Path: joined}, true
	}
	for _, ext := range bestEffortExtensions {
		cand := joined + ext
		if r.files.Has(cand) {
			return domain.Resolution{Kind: domain.ResolutionResolved, Path: cand}, true
		}
	}
	return domain.Resolution{}, false
}
