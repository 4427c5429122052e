package resolver

import (
	"path"
	"strings"

	"github.com/deadroot/deadroot/domain"
)

// resolveRust implements spec.md §4.4's Rust strategy: `mod foo;` resolves
// relative to the declaring file (foo.rs or foo/mod.rs); `use` paths are
// crate-relative and resolved against the whole walked tree on a best-effort
// basis since full crate-root detection (Cargo workspace member list) is out
// of scope for a single-pass resolver.
func (r *Resolver) resolveRust(fromPath string, ref domain.ImportRef) domain.Resolution {
	mod := ref.RawModule
	if ref.Kind == domain.ImportMod {
		dir := path.Dir(fromPath)
		candidates := []string{
			cleanRel(path.Join(dir, mod+".rs")),
			cleanRel(path.Join(dir, mod, "mod.rs")),
		}
		for _, c := range candidates {
			if r.files.Has(c) {
				return domain.Resolution{Kind: domain.ResolutionResolved, Path: c}
			}
		}
		return domain.Resolution{Kind: domain.ResolutionUnresolved, Reason: "module file not found: " + mod}
	}

	// `use` path: first segment is the crate name (or "crate"/"self"/"super"),
	// remaining segments are a path under src/.
	segs := strings.Split(mod, "::")
	if len(segs) == 0 {
		return domain.Resolution{Kind: domain.ResolutionUnresolved, Reason: "empty use path"}
	}
	if segs[0] != "crate" && segs[0] != "self" && segs[0] != "super" {
		return domain.Resolution{Kind: domain.ResolutionExternal}
	}
	rel := strings.Join(segs[1:], "/")
	for _, ext := range []string{".rs"} {
		cand := cleanRel("src/" + rel + ext)
		if r.files.Has(cand) {
			return domain.Resolution{Kind: domain.ResolutionResolved, Path: cand}
		}
		cand = cleanRel("src/" + rel + "/mod" + ext)
		if r.files.Has(cand) {
			return domain.Resolution{Kind: domain.ResolutionResolved, Path: cand}
		}
	}
	return domain.Resolution{Kind: domain.ResolutionUnresolved, Reason: "use path not found: " + mod}
}
