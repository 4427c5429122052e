package resolver

import (
	"path"
	"strings"

	"golang.org/x/mod/modfile"

	"github.com/deadroot/deadroot/domain"
)

// goModuleRoot is one parsed go.mod: its module path and the project-root-
// relative directory it lives in (non-empty for a multi-module workspace).
type goModuleRoot struct {
	modulePath string
	dir        string
}

// loadGoModules parses every go.mod found anywhere in the walked file set
// with golang.org/x/mod/modfile, the library the rest of the retrieved pack
// (zond-juicemud, AleutianFOSS, bennypowers-cem) reaches for instead of
// hand-splitting the "module" line.
func loadGoModules(root string, files *FileSet) []goModuleRoot {
	var mods []goModuleRoot
	for _, p := range files.all {
		if path.Base(p) != "go.mod" {
			continue
		}
		raw, err := readProjectFile(root, p)
		if err != nil {
			continue
		}
		f, err := modfile.Parse(p, raw, nil)
		if err != nil || f.Module == nil {
			continue
		}
		mods = append(mods, goModuleRoot{modulePath: f.Module.Mod.Path, dir: path.Dir(p)})
	}
	return mods
}

// resolveGo joins the import path against the nearest enclosing go.mod's
// module path; a same-module import resolves to the matching local
// directory, anything else is external (stdlib or a third-party module).
func (r *Resolver) resolveGo(fromPath string, ref domain.ImportRef) domain.Resolution {
	mod := ref.RawModule
	var best *goModuleRoot
	for i := range r.goModules {
		m := &r.goModules[i]
		prefix := m.dir
		if prefix == "." {
			prefix = ""
		}
		if !strings.HasPrefix(cleanRel(fromPath), prefix) {
			continue
		}
		if best == nil || len(m.dir) > len(best.dir) {
			best = m
		}
	}
	if best == nil {
		return domain.Resolution{Kind: domain.ResolutionUnresolved, Reason: "no go.mod found for importer"}
	}
	if mod != best.modulePath && !strings.HasPrefix(mod, best.modulePath+"/") {
		return domain.Resolution{Kind: domain.ResolutionExternal}
	}
	rel := strings.TrimPrefix(mod, best.modulePath)
	rel = strings.TrimPrefix(rel, "/")
	dir := cleanRel(path.Join(best.dir, rel))
	for _, p := range r.files.all {
		if path.Dir(p) == dir && strings.HasSuffix(p, ".go") {
			return domain.Resolution{Kind: domain.ResolutionResolved, Path: dir}
		}
	}
	return domain.Resolution{Kind: domain.ResolutionUnresolved, Reason: "package directory not found: " + dir}
}
