package langs

import (
	"embed"
	"sync"

	"github.com/deadroot/deadroot/domain"
	"gopkg.in/yaml.v3"
)

// rulesFS embeds the per-language rule bundles consumed by the regex tier.
// Adding support for a new regex-tier language means dropping in a new
// *.yaml file here and adding its extension to extensionTable in router.go.
//
//go:embed rules/*.yaml
var rulesFS embed.FS

// ImportPattern is one regex rule identifying an import/include/use
// statement for a language, along with the ImportKind it should be tagged
// with and which capture group holds the module specifier.
type ImportPattern struct {
	Regex      string           `yaml:"regex"`
	Kind       domain.ImportKind `yaml:"kind"`
	ModuleGroup int             `yaml:"moduleGroup"`
}

// DeclPattern is one regex rule identifying a top-level declaration.
type DeclPattern struct {
	Regex     string `yaml:"regex"`
	Kind      string `yaml:"kind"`
	NameGroup int    `yaml:"nameGroup"`
	Public    string `yaml:"public"` // "always" | "capitalized" | "keyword"
}

// Rules is one language's regex-tier grammar: import patterns, top-level
// declaration patterns, test-file signals, and framework annotation names.
type Rules struct {
	Language        domain.Language `yaml:"language"`
	ImportPatterns  []ImportPattern `yaml:"imports"`
	DeclPatterns    []DeclPattern   `yaml:"declarations"`
	MainMarkers     []string        `yaml:"mainMarkers"`
	TestFileGlobs   []string        `yaml:"testFileGlobs"`
	FrameworkFlags  map[string][]string `yaml:"frameworkFlags"` // flag name -> substrings that set it
	VisibilityDefault string        `yaml:"visibilityDefault"`
	CommentPrefix   string          `yaml:"commentPrefix"`
	// DepthMode tells the regex tier how to reject a DeclPatterns match that
	// looks like a top-level declaration but is actually nested inside
	// another block: "indent" rejects any match with leading whitespace
	// (Python, where nesting is indentation), "brace" rejects any match
	// whose brace depth at the match start is non-zero (Rust, where nesting
	// is {}-delimited). Empty means the language's declaration patterns
	// already anchor to column zero on their own (e.g. Go's `^func`).
	DepthMode string `yaml:"depthMode"`
}

var (
	registryOnce sync.Once
	registry     map[domain.Language]*Rules
)

// Registry returns the parsed rule bundle for every embedded language,
// loaded once and shared (read-only) across all parser workers, following
// the "initialised LanguageRegistry value passed through the pipeline, no
// process-wide singletons" design note of spec.md §9 — this value is built
// once at first use but handed to callers explicitly, never consulted via a
// package-level global inside the parser itself.
func Registry() map[domain.Language]*Rules {
	registryOnce.Do(func() {
		registry = loadRegistry()
	})
	return registry
}

func loadRegistry() map[domain.Language]*Rules {
	out := make(map[domain.Language]*Rules)
	entries, err := rulesFS.ReadDir("rules")
	if err != nil {
		return out
	}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		data, err := rulesFS.ReadFile("rules/" + entry.Name())
		if err != nil {
			continue
		}
		var r Rules
		if err := yaml.Unmarshal(data, &r); err != nil {
			continue
		}
		out[r.Language] = &r
	}
	return out
}

// RulesFor returns the regex-tier rule bundle for lang, or a generic
// fallback bundle (best-effort import/declaration recognition only) if no
// dedicated bundle was embedded for it.
func RulesFor(lang domain.Language) *Rules {
	if r, ok := Registry()[lang]; ok {
		return r
	}
	return genericFallback
}

var genericFallback = &Rules{
	ImportPatterns: []ImportPattern{
		{Regex: `(?:^|\n)\s*(?:import|include|require|use)\s+["']?([\w./\\-]+)["']?`, Kind: domain.ImportStatic, ModuleGroup: 1},
	},
	VisibilityDefault: "keyword",
}
