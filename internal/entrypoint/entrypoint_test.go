package entrypoint

import (
	"testing"

	"github.com/deadroot/deadroot/domain"
	igraph "github.com/deadroot/deadroot/internal/graph"
)

func buildGraph(paths ...string) *igraph.ModuleGraph {
	g := igraph.New()
	for _, p := range paths {
		g.AddFile(&domain.SourceFile{Path: p, Language: domain.LanguageTypeScript})
	}
	return g
}

func TestSeedManifestEntry(t *testing.T) {
	g := buildGraph("src/index.ts", "src/util.ts")
	files := map[string][]byte{
		"package.json": []byte(`{"main": "src/index.ts"}`),
	}
	read := func(p string) ([]byte, bool) { b, ok := files[p]; return b, ok }

	f := New(domain.AnalysisConfig{}, read)
	count := f.Seed(g)

	if count != 1 {
		t.Fatalf("Seed() count = %d, want 1", count)
	}
	n := g.Node("src/index.ts")
	if !n.IsEntryPoint() || n.EntryPointReasons[0] != ReasonManifestEntry {
		t.Errorf("src/index.ts reasons = %v", n.EntryPointReasons)
	}
	if g.Node("src/util.ts").IsEntryPoint() {
		t.Error("src/util.ts should not be an entry point")
	}
}

func TestSeedTestFileAndMainMarker(t *testing.T) {
	g := buildGraph("src/app.test.ts", "src/main.ts")
	g.Node("src/main.ts").File.ParseResult = &domain.ParseResult{
		Metadata: domain.ParseMetadata{HasMainEntry: true},
	}
	read := func(string) ([]byte, bool) { return nil, false }

	f := New(domain.AnalysisConfig{}, read)
	f.Seed(g)

	if !g.Node("src/app.test.ts").IsEntryPoint() {
		t.Error("test file should be an entry point")
	}
	if !g.Node("src/main.ts").IsEntryPoint() {
		t.Error("file with hasMainEntry should be an entry point")
	}
}

func TestSeedUserDynamicPattern(t *testing.T) {
	g := buildGraph("scripts/migrate.ts")
	read := func(string) ([]byte, bool) { return nil, false }
	f := New(domain.AnalysisConfig{DynamicPatterns: []string{"scripts/**"}}, read)
	f.Seed(g)

	n := g.Node("scripts/migrate.ts")
	if !n.IsEntryPoint() || n.EntryPointReasons[0] != ReasonUserDynamic {
		t.Errorf("reasons = %v", n.EntryPointReasons)
	}
}
