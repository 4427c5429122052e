package reachability

import (
	"testing"

	"github.com/deadroot/deadroot/domain"
	igraph "github.com/deadroot/deadroot/internal/graph"
)

func TestAssignUnreachablePlainFile(t *testing.T) {
	g := igraph.New()
	entry := node(g, "src/index.ts")
	entry.AddEntryPointReason("manifest-entry")
	node(g, "src/dead.ts")

	res := New(g).Run()
	verdicts, _ := Assign(g, res, domain.AnalysisConfig{}, nil)

	if len(verdicts) != 1 {
		t.Fatalf("Assign() verdicts = %v, want 1", verdicts)
	}
	v := verdicts[0]
	if v.Node.File.Path != "src/dead.ts" || v.Verdict.FileStatus != domain.StatusUnreachable {
		t.Errorf("verdict = %+v", v)
	}
	if v.Verdict.Confidence != 0.9 {
		t.Errorf("confidence = %v, want 0.9", v.Verdict.Confidence)
	}
}

func TestAssignDynamicPatternDowngradesToPossiblyLive(t *testing.T) {
	g := igraph.New()
	entry := node(g, "src/index.ts")
	entry.AddEntryPointReason("manifest-entry")
	node(g, "scripts/seed.ts")

	res := New(g).Run()
	cfg := domain.AnalysisConfig{DynamicPatterns: []string{"scripts/**"}}
	verdicts, _ := Assign(g, res, cfg, nil)

	if len(verdicts) != 1 || verdicts[0].Verdict.FileStatus != domain.StatusPossiblyLive {
		t.Fatalf("verdicts = %+v", verdicts)
	}
}

func TestAssignSkipsTypesAndParseErrorFiles(t *testing.T) {
	g := igraph.New()
	entry := node(g, "src/index.ts")
	entry.AddEntryPointReason("manifest-entry")

	types := g.AddFile(&domain.SourceFile{Path: "src/types.d.ts", Language: domain.LanguageTypes, Bytes: 5})
	types.File.ParseResult = &domain.ParseResult{}

	broken := g.AddFile(&domain.SourceFile{Path: "src/broken.ts", Language: domain.LanguageTypeScript, Bytes: 5})
	broken.File.ParseResult = &domain.ParseResult{Metadata: domain.ParseMetadata{ParseError: "timeout"}}

	res := New(g).Run()
	verdicts, diagnostics := Assign(g, res, domain.AnalysisConfig{}, nil)

	if len(verdicts) != 0 {
		t.Errorf("expected no verdicts, got %+v", verdicts)
	}
	found := false
	for _, d := range diagnostics {
		if d.Path == "src/broken.ts" && d.Kind == domain.DiagnosticParseError {
			found = true
		}
	}
	if !found {
		t.Errorf("expected a parse-error diagnostic for src/broken.ts, got %+v", diagnostics)
	}
}

func TestAssignPartiallyUnreachableForLiveFileWithDeadExport(t *testing.T) {
	g := igraph.New()
	entry := node(g, "src/index.ts")
	entry.AddEntryPointReason("manifest-entry")
	node(g, "src/util.ts",
		domain.ExportDecl{Name: "used", Kind: domain.ExportFunction},
		domain.ExportDecl{Name: "unused", Kind: domain.ExportFunction},
	)
	g.AddEdge("src/index.ts",
		domain.ImportRef{RawModule: "./util", NamedSymbols: []domain.NamedSymbol{{Name: "used"}}},
		domain.Resolution{Kind: domain.ResolutionResolved, Path: "src/util.ts"})

	res := New(g).Run()
	verdicts, _ := Assign(g, res, domain.AnalysisConfig{}, nil)

	if len(verdicts) != 1 || verdicts[0].Verdict.FileStatus != domain.StatusPartiallyUnreachable {
		t.Fatalf("verdicts = %+v", verdicts)
	}
}
