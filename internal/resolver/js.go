package resolver

import (
	"path"
	"strings"

	"github.com/tidwall/jsonc"

	"github.com/deadroot/deadroot/domain"
)

// resolveJS implements spec.md §4.4's JavaScript-family strategy: relative
// resolution with extension search, then tsconfig paths/baseUrl, then
// package.json exports/main/module for specifiers that resolve into the
// project rather than node_modules.
func (r *Resolver) resolveJS(fromPath string, ref domain.ImportRef) domain.Resolution {
	mod := ref.RawModule
	base := path.Dir(fromPath)

	if strings.HasPrefix(mod, "./") || strings.HasPrefix(mod, "../") || mod == "." || mod == ".." {
		joined := cleanRel(path.Join(base, mod))
		if res, ok := r.tryJSCandidates(joined); ok {
			return res
		}
		return domain.Resolution{Kind: domain.ResolutionUnresolved, Reason: "relative specifier not found: " + mod}
	}

	if strings.HasPrefix(mod, "/") {
		joined := cleanRel(strings.TrimPrefix(mod, "/"))
		if res, ok := r.tryJSCandidates(joined); ok {
			return res
		}
	}

	// tsconfig paths/baseUrl, tried before treating the specifier as external.
	if r.jsConfigs != nil {
		if aliased, ok := r.jsConfigs.resolvePath(mod); ok {
			if res, ok := r.tryJSCandidates(aliased); ok {
				return res
			}
		}
		if r.jsConfigs.baseURL != "" {
			joined := cleanRel(path.Join(r.jsConfigs.baseURL, mod))
			if res, ok := r.tryJSCandidates(joined); ok {
				return res
			}
		}
		// package.json exports/main/module for a workspace-local package name.
		if pkgEntry, ok := r.jsConfigs.resolveWorkspacePackage(mod); ok {
			if res, ok := r.tryJSCandidates(pkgEntry); ok {
				return res
			}
		}
	}

	return domain.Resolution{Kind: domain.ResolutionExternal}
}

// tryJSCandidates applies extension search and the /index.* fallback to a
// bare (no-extension-assumed) relative path already joined against the
// importing file's directory.
func (r *Resolver) tryJSCandidates(joined string) (domain.Resolution, bool) {
	if r.files.Has(joined) {
		return domain.Resolution{Kind: domain.ResolutionResolved, Path: joined}, true
	}
	for _, ext := range jsExtensionSearchOrder {
		cand := joined + ext
		if r.files.Has(cand) {
			return domain.Resolution{Kind: domain.ResolutionResolved, Path: cand}, true
		}
	}
	for _, ext := range jsExtensionSearchOrder {
		cand := cleanRel(path.Join(joined, "index"+ext))
		if r.files.Has(cand) {
			return domain.Resolution{Kind: domain.ResolutionResolved, Path: cand}, true
		}
	}
	return domain.Resolution{}, false
}

// jsManifests bundles the parsed tsconfig.json and package.json files
// discovered under the project root, used only by the JS-family strategy.
type jsManifests struct {
	baseURL      string
	paths        map[string][]string // tsconfig "paths" alias -> candidate targets, "*" already stripped
	workspaceDir string
	pkgExports   map[string]string // package.json "exports"/"main"/"module" keyed by bare package name, if this project IS that package
}

// loadJSManifests parses the project's root tsconfig.json and package.json,
// if present, using tidwall/jsonc so comments and trailing commas (routine
// in real tsconfig.json files) don't abort the parse the way encoding/json
// would.
func loadJSManifests(root string, files *FileSet) *jsManifests {
	m := &jsManifests{paths: make(map[string][]string), pkgExports: make(map[string]string)}
	if files.Has("tsconfig.json") {
		if raw, err := readProjectFile(root, "tsconfig.json"); err == nil {
			if doc, ok := parseLooseJSON(jsonc.ToJSON(raw)); ok {
				applyTSConfig(m, doc)
			}
		}
	}
	if files.Has("package.json") {
		if raw, err := readProjectFile(root, "package.json"); err == nil {
			if doc, ok := parseLooseJSON(jsonc.ToJSON(raw)); ok {
				applyPackageJSON(m, doc)
			}
		}
	}
	return m
}

func applyTSConfig(m *jsManifests, doc map[string]interface{}) {
	co, _ := doc["compilerOptions"].(map[string]interface{})
	if co == nil {
		return
	}
	if bu, ok := co["baseUrl"].(string); ok {
		m.baseURL = cleanRel(bu)
	}
	pathsRaw, _ := co["paths"].(map[string]interface{})
	for alias, targets := range pathsRaw {
		list, _ := targets.([]interface{})
		key := strings.TrimSuffix(alias, "/*")
		for _, t := range list {
			if s, ok := t.(string); ok {
				m.paths[key] = append(m.paths[key], strings.TrimSuffix(s, "/*"))
			}
		}
	}
}

// applyPackageJSON records this workspace package's own name against its
// "main"/"module"/"exports" entry point, so a monorepo self-import (a
// package importing its own published name) still resolves locally instead
// of falling through to "external".
func applyPackageJSON(m *jsManifests, doc map[string]interface{}) {
	name, _ := doc["name"].(string)
	if name == "" {
		return
	}
	entry := ""
	if s, ok := doc["module"].(string); ok && s != "" {
		entry = s
	} else if s, ok := doc["main"].(string); ok && s != "" {
		entry = s
	}
	if exp, ok := doc["exports"].(map[string]interface{}); ok {
		if dot, ok := exp["."]; ok {
			switch v := dot.(type) {
			case string:
				entry = v
			case map[string]interface{}:
				for _, cond := range []string{"import", "default", "types"} {
					if s, ok := v[cond].(string); ok && s != "" {
						entry = s
						break
					}
				}
			}
		}
	}
	if entry != "" {
		m.pkgExports[name] = cleanRel(strings.TrimPrefix(entry, "./"))
	}
}

// resolvePath applies tsconfig "paths" aliasing: the longest matching alias
// prefix wins, as in tsc, and its first target is used.
func (m *jsManifests) resolvePath(mod string) (string, bool) {
	best, found := "", false
	for alias := range m.paths {
		if (mod == alias || strings.HasPrefix(mod, alias+"/")) && (!found || len(alias) > len(best)) {
			best, found = alias, true
		}
	}
	if !found || len(m.paths[best]) == 0 {
		return "", false
	}
	suffix := strings.TrimPrefix(strings.TrimPrefix(mod, best), "/")
	joined := m.paths[best][0]
	if suffix != "" {
		joined = path.Join(joined, suffix)
	}
	return cleanRel(joined), true
}

// resolveWorkspacePackage is a best-effort check for a bare specifier that
// names this project's own package.json "name" field (monorepo
// self-imports); anything else is left to fall through to "external".
func (m *jsManifests) resolveWorkspacePackage(mod string) (string, bool) {
	entry, ok := m.pkgExports[mod]
	return entry, ok
}
