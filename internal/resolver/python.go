package resolver

import (
	"path"
	"strings"

	"github.com/deadroot/deadroot/domain"
)

// resolvePython implements spec.md §4.4's Python strategy: a relative
// `from .x import y` resolves against the importing file's package
// directory; an absolute dotted name resolves against the project tree,
// honoring `__init__.py` package roots over bare module files.
func (r *Resolver) resolvePython(fromPath string, ref domain.ImportRef) domain.Resolution {
	mod := ref.RawModule
	dir := path.Dir(fromPath)

	leadingDots := 0
	for leadingDots < len(mod) && mod[leadingDots] == '.' {
		leadingDots++
	}
	if leadingDots > 0 {
		rest := strings.TrimPrefix(mod[leadingDots:], ".")
		base := dir
		for i := 1; i < leadingDots; i++ {
			base = path.Dir(base)
		}
		return r.resolvePythonDotted(base, rest)
	}

	return r.resolvePythonDotted(".", mod)
}

func (r *Resolver) resolvePythonDotted(base, dotted string) domain.Resolution {
	if dotted == "" {
		if r.files.Has(cleanRel(path.Join(base, "__init__.py"))) {
			return domain.Resolution{Kind: domain.ResolutionResolved, Path: cleanRel(path.Join(base, "__init__.py"))}
		}
		return domain.Resolution{Kind: domain.ResolutionUnresolved, Reason: "empty relative import"}
	}

	segs := strings.Split(dotted, ".")
	dir := cleanRel(path.Join(append([]string{base}, segs[:len(segs)-1]...)...))
	last := segs[len(segs)-1]

	pkgInit := cleanRel(path.Join(dir, last, "__init__.py"))
	if r.files.Has(pkgInit) {
		return domain.Resolution{Kind: domain.ResolutionResolved, Path: pkgInit}
	}
	modFile := cleanRel(path.Join(dir, last+".py"))
	if r.files.Has(modFile) {
		return domain.Resolution{Kind: domain.ResolutionResolved, Path: modFile}
	}

	// Might be "from pkg.sub import name" where name is an attribute, not a
	// submodule: retry treating the whole dotted path as the package.
	full := cleanRel(path.Join(base, strings.ReplaceAll(dotted, ".", "/")))
	if r.files.Has(full + ".py") {
		return domain.Resolution{Kind: domain.ResolutionResolved, Path: full + ".py"}
	}
	if r.files.Has(full + "/__init__.py") {
		return domain.Resolution{Kind: domain.ResolutionResolved, Path: full + "/__init__.py"}
	}

	if base == "." {
		return domain.Resolution{Kind: domain.ResolutionExternal}
	}
	return domain.Resolution{Kind: domain.ResolutionUnresolved, Reason: "module not found: " + dotted}
}
