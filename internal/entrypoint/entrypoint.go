// Package entrypoint implements spec.md §4.6's EntryPointFinder: it tags
// every file that becomes a root of the reachability BFS, recording every
// reason (not just the first) that qualifies it, in the fixed order the
// spec lists so Evidence/EntryPointReasons output stays order-stable.
package entrypoint

import (
	"path"
	"regexp"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/tidwall/jsonc"

	"github.com/deadroot/deadroot/domain"
	igraph "github.com/deadroot/deadroot/internal/graph"
)

// Reason tags, in the fixed append order spec.md §4.6 enumerates.
const (
	ReasonManifestEntry   = "manifest-entry"
	ReasonBundlerConfig   = "bundler-config"
	ReasonTestFile        = "test-file"
	ReasonCICDConfig      = "ci-cd-config"
	ReasonFrameworkAnnot  = "framework-annotation"
	ReasonDIContainerCall = "di-container-call"
	ReasonDynamicField    = "dynamic-package-field"
	ReasonUserDynamic     = "user-dynamic-pattern"
	ReasonMainMarker      = "language-main-entry"
)

var defaultBundlerConfigs = []string{
	"webpack.config.js", "webpack.config.ts", "webpack.config.mjs", "webpack.config.cjs",
	"vite.config.js", "vite.config.ts", "vite.config.mjs",
	"rollup.config.js", "rollup.config.ts", "rollup.config.mjs",
	"esbuild.config.js", "esbuild.config.ts",
}

var cicdPatterns = []string{
	".github/workflows/*.yml", ".github/workflows/*.yaml",
	"Jenkinsfile", "Dockerfile", "docker-compose.yml", "docker-compose.yaml",
	"k8s/**/*.yaml", "k8s/**/*.yml", "kubernetes/**/*.yaml", "kubernetes/**/*.yml",
}

var defaultDIDecorators = []string{
	"Injectable", "Component", "Controller", "Service", "Module",
	"RestController", "Configuration", "Repository", "Bean",
}

var defaultDIContainerPatterns = []string{
	`Container\.get<`, `container\.resolve<`, `moduleRef\.get<`, `container\.get\(`,
}

var defaultDynamicPackageFields = []string{
	"nodes", "plugins", "credentials", "extensions", "adapters", "connectors",
}

var defaultTestGlobs = []string{
	"**/*.test.*", "**/*.spec.*", "**/__tests__/**", "**/test_*.py", "**/*_test.go", "**/tests/**",
}

// ReadFile lets EntryPointFinder inspect raw manifest/config bytes without
// depending on the walker package; the caller supplies it bound to the
// project root (production code passes os.ReadFile, tests pass a stub).
type ReadFile func(relPath string) ([]byte, bool)

// Finder seeds entry points over a built ModuleGraph.
type Finder struct {
	cfg      domain.AnalysisConfig
	read     ReadFile
	diCallRe []*regexp.Regexp
}

// New creates a Finder. cfg's zero-value slices fall back to the built-in
// defaults mirroring spec.md §6.
func New(cfg domain.AnalysisConfig, read ReadFile) *Finder {
	f := &Finder{cfg: cfg, read: read}
	patterns := cfg.DIContainerPatterns
	if len(patterns) == 0 {
		patterns = defaultDIContainerPatterns
	}
	for _, p := range patterns {
		if re, err := regexp.Compile(p); err == nil {
			f.diCallRe = append(f.diCallRe, re)
		}
	}
	return f
}

// Seed walks every node in g and tags entry points, returning the number of
// files marked as roots.
func (f *Finder) Seed(g *igraph.ModuleGraph) int {
	nodes := g.Nodes()
	byPath := make(map[string]*domain.ModuleNode, len(nodes))
	for _, n := range nodes {
		byPath[n.File.Path] = n
	}

	f.tagManifestEntries(byPath)
	f.tagBundlerConfigs(byPath)
	f.tagTestFiles(byPath)
	f.tagCICDConfigs(byPath)
	f.tagFrameworkAnnotations(byPath)
	f.tagDIContainerCalls(byPath)
	f.tagDynamicPackageFields(byPath)
	f.tagUserDynamicPatterns(byPath)
	f.tagMainMarkers(byPath)

	count := 0
	for _, n := range nodes {
		if n.IsEntryPoint() {
			count++
		}
	}
	return count
}

func (f *Finder) testGlobs() []string {
	out := append([]string(nil), defaultTestGlobs...)
	for _, globs := range f.cfg.TestPatterns {
		out = append(out, globs...)
	}
	return out
}

// tagManifestEntries covers package.json bin/main/module/exports/scripts.
// Only the root package.json is read: pyproject.toml, setup.py and
// Cargo.toml entries are not consulted. Go files flagged hasMainEntry are
// handled separately by tagMainMarkers since that signal comes from the
// parser, not a manifest.
func (f *Finder) tagManifestEntries(nodes map[string]*domain.ModuleNode) {
	for _, rel := range []string{"package.json"} {
		raw, ok := f.read(rel)
		if !ok {
			continue
		}
		var doc map[string]interface{}
		if !unmarshalLoose(jsonc.ToJSON(raw), &doc) {
			continue
		}
		dir := path.Dir(rel)
		for _, field := range []string{"main", "module"} {
			if s, ok := doc[field].(string); ok {
				markManifest(nodes, dir, s)
			}
		}
		if bin, ok := doc["bin"].(string); ok {
			markManifest(nodes, dir, bin)
		}
		if bin, ok := doc["bin"].(map[string]interface{}); ok {
			for _, v := range bin {
				if s, ok := v.(string); ok {
					markManifest(nodes, dir, s)
				}
			}
		}
		if scripts, ok := doc["scripts"].(map[string]interface{}); ok {
			for _, v := range scripts {
				if s, ok := v.(string); ok {
					for _, tok := range strings.Fields(s) {
						markManifest(nodes, dir, tok)
					}
				}
			}
		}
		if exports, ok := doc["exports"].(map[string]interface{}); ok {
			walkExportsForEntries(exports, func(s string) { markManifest(nodes, dir, s) })
		}
	}
}

func walkExportsForEntries(v interface{}, mark func(string)) {
	switch t := v.(type) {
	case string:
		mark(t)
	case map[string]interface{}:
		for _, child := range t {
			walkExportsForEntries(child, mark)
		}
	case []interface{}:
		for _, child := range t {
			walkExportsForEntries(child, mark)
		}
	}
}

func markManifest(nodes map[string]*domain.ModuleNode, dir, target string) {
	if target == "" {
		return
	}
	rel := path.Clean(path.Join(dir, strings.TrimPrefix(target, "./")))
	if n, ok := nodes[rel]; ok {
		n.AddEntryPointReason(ReasonManifestEntry)
	}
}

func (f *Finder) tagBundlerConfigs(nodes map[string]*domain.ModuleNode) {
	configs := f.cfg.BundlerConfigs
	if len(configs) == 0 {
		configs = defaultBundlerConfigs
	}
	for p, n := range nodes {
		for _, c := range configs {
			if path.Base(p) == c {
				n.AddEntryPointReason(ReasonBundlerConfig)
			}
		}
	}
}

func (f *Finder) tagTestFiles(nodes map[string]*domain.ModuleNode) {
	globs := f.testGlobs()
	for p, n := range nodes {
		for _, g := range globs {
			if ok, _ := doublestar.Match(g, p); ok {
				n.AddEntryPointReason(ReasonTestFile)
				break
			}
		}
	}
}

func (f *Finder) tagCICDConfigs(nodes map[string]*domain.ModuleNode) {
	for p, n := range nodes {
		for _, g := range cicdPatterns {
			if ok, _ := doublestar.Match(g, p); ok {
				n.AddEntryPointReason(ReasonCICDConfig)
				break
			}
		}
	}
}

// tagFrameworkAnnotations tags files whose ParseResult.Annotations contain a
// configured DI decorator name.
func (f *Finder) tagFrameworkAnnotations(nodes map[string]*domain.ModuleNode) {
	decorators := f.cfg.DIDecorators
	if len(decorators) == 0 {
		decorators = defaultDIDecorators
	}
	set := make(map[string]bool, len(decorators))
	for _, d := range decorators {
		set[d] = true
	}
	for _, n := range nodes {
		if n.File.ParseResult == nil {
			continue
		}
		for _, ann := range n.File.ParseResult.Annotations {
			if set[ann.Name] {
				n.AddEntryPointReason(ReasonFrameworkAnnot)
				break
			}
		}
	}
}

// tagDIContainerCalls does a substring/regex scan over each file's raw bytes
// for configured DI container-resolution call shapes.
func (f *Finder) tagDIContainerCalls(nodes map[string]*domain.ModuleNode) {
	if len(f.diCallRe) == 0 {
		return
	}
	for p, n := range nodes {
		raw, ok := f.read(p)
		if !ok {
			continue
		}
		text := string(raw)
		for _, re := range f.diCallRe {
			if re.MatchString(text) {
				n.AddEntryPointReason(ReasonDIContainerCall)
				break
			}
		}
	}
}

// tagDynamicPackageFields recurses into configured package.json fields
// (default: nodes/plugins/credentials/extensions/adapters/connectors),
// treating every string leaf as a project-relative path reference.
func (f *Finder) tagDynamicPackageFields(nodes map[string]*domain.ModuleNode) {
	fields := f.cfg.DynamicPackageFields
	if len(fields) == 0 {
		fields = defaultDynamicPackageFields
	}
	raw, ok := f.read("package.json")
	if !ok {
		return
	}
	var doc map[string]interface{}
	if !unmarshalLoose(jsonc.ToJSON(raw), &doc) {
		return
	}
	for _, field := range fields {
		if v, ok := doc[field]; ok {
			walkExportsForEntries(v, func(s string) {
				rel := path.Clean(strings.TrimPrefix(s, "./"))
				if n, ok := nodes[rel]; ok {
					n.AddEntryPointReason(ReasonDynamicField)
				}
			})
		}
	}
}

func (f *Finder) tagUserDynamicPatterns(nodes map[string]*domain.ModuleNode) {
	for p, n := range nodes {
		for _, g := range f.cfg.DynamicPatterns {
			if ok, _ := doublestar.Match(g, p); ok {
				n.AddEntryPointReason(ReasonUserDynamic)
				break
			}
		}
	}
}

func (f *Finder) tagMainMarkers(nodes map[string]*domain.ModuleNode) {
	for _, n := range nodes {
		if n.File.ParseResult != nil && n.File.ParseResult.Metadata.HasMainEntry {
			n.AddEntryPointReason(ReasonMainMarker)
		}
	}
}
