package assembler

import (
	"testing"

	"github.com/deadroot/deadroot/domain"
	igraph "github.com/deadroot/deadroot/internal/graph"
	"github.com/deadroot/deadroot/internal/reachability"
)

func node(g *igraph.ModuleGraph, p string, lang domain.Language, bytes int64) *domain.ModuleNode {
	n := g.AddFile(&domain.SourceFile{Path: p, Language: lang, Bytes: bytes, LineCount: 10})
	n.File.ParseResult = &domain.ParseResult{}
	return n
}

func TestBuildTotalsCountsLanguagesAndReachability(t *testing.T) {
	g := igraph.New()
	entry := node(g, "src/index.ts", domain.LanguageTypeScript, 100)
	entry.AddEntryPointReason("manifest-entry")
	node(g, "src/dead.ts", domain.LanguageTypeScript, 50)

	res := reachability.New(g).Run()
	report := Assemble(g, res, nil, nil, false)

	if report.Totals.TotalFiles != 2 {
		t.Errorf("TotalFiles = %d, want 2", report.Totals.TotalFiles)
	}
	if report.Totals.ReachableCount != 1 {
		t.Errorf("ReachableCount = %d, want 1", report.Totals.ReachableCount)
	}
	if report.Totals.EntryPointCount != 1 {
		t.Errorf("EntryPointCount = %d, want 1", report.Totals.EntryPointCount)
	}
	if report.Totals.FilesByLanguage[domain.LanguageTypeScript] != 2 {
		t.Errorf("FilesByLanguage[ts] = %d, want 2", report.Totals.FilesByLanguage[domain.LanguageTypeScript])
	}
}

func TestBuildDeadFilesSortedByLanguageThenPath(t *testing.T) {
	g := igraph.New()
	entry := node(g, "src/index.go", domain.LanguageGo, 10)
	entry.AddEntryPointReason("main-marker")
	b := node(g, "src/b.py", domain.LanguagePython, 10)
	a := node(g, "src/a.go", domain.LanguageGo, 10)

	verdicts := []reachability.FileVerdict{
		{Node: b, Verdict: domain.Verdict{FileStatus: domain.StatusUnreachable, Confidence: 0.9, Evidence: domain.NewEvidence()}},
		{Node: a, Verdict: domain.Verdict{FileStatus: domain.StatusUnreachable, Confidence: 0.9, Evidence: domain.NewEvidence()}},
	}

	report := Assemble(g, reachability.Result{FileReachable: map[string]bool{}}, verdicts, nil, false)

	if len(report.DeadFiles) != 2 {
		t.Fatalf("DeadFiles = %+v", report.DeadFiles)
	}
	if report.DeadFiles[0].Path != "src/a.go" || report.DeadFiles[1].Path != "src/b.py" {
		t.Errorf("order = %s, %s", report.DeadFiles[0].Path, report.DeadFiles[1].Path)
	}
}

func TestBuildDeadFilesListsOnlyDeadExportsForPartiallyUnreachable(t *testing.T) {
	g := igraph.New()
	n := node(g, "src/util.ts", domain.LanguageTypeScript, 10)
	n.File.ParseResult.Exports = []domain.ExportDecl{
		{Name: "used", Kind: domain.ExportFunction},
		{Name: "unused", Kind: domain.ExportFunction},
	}
	n.ExportStatus = map[string]*domain.ExportStatus{
		"used":   {Reachable: true},
		"unused": {Reachable: false, DeadReason: "no reachable named-import edge targets this export"},
	}

	verdicts := []reachability.FileVerdict{
		{Node: n, Verdict: domain.Verdict{FileStatus: domain.StatusPartiallyUnreachable, Confidence: 0.7, Evidence: domain.NewEvidence()}},
	}
	report := Assemble(g, reachability.Result{FileReachable: map[string]bool{"src/util.ts": true}}, verdicts, nil, false)

	if len(report.DeadFiles) != 1 {
		t.Fatalf("DeadFiles = %+v", report.DeadFiles)
	}
	exports := report.DeadFiles[0].Exports
	if len(exports) != 1 || exports[0].Name != "unused" {
		t.Errorf("exports = %+v, want only 'unused'", exports)
	}
}

func TestBuildDeadFunctionsExcludesImportedAndExportedNames(t *testing.T) {
	g := igraph.New()
	entry := node(g, "src/index.go", domain.LanguageGo, 10)
	entry.AddEntryPointReason("main-marker")
	lib := node(g, "src/lib.go", domain.LanguageGo, 10)
	lib.File.ParseResult.Declarations = []domain.Declaration{
		{Name: "Used", Kind: "function", Line: 5},
		{Name: "unused", Kind: "function", Line: 9},
	}
	g.AddEdge("src/index.go",
		domain.ImportRef{RawModule: "./lib", NamedSymbols: []domain.NamedSymbol{{Name: "Used"}}},
		domain.Resolution{Kind: domain.ResolutionResolved, Path: "src/lib.go"})

	res := reachability.New(g).Run()
	report := Assemble(g, res, nil, nil, false)

	if len(report.DeadFunctions) != 1 || report.DeadFunctions[0].Name != "unused" {
		t.Errorf("DeadFunctions = %+v, want only 'unused'", report.DeadFunctions)
	}
}

func TestBuildDeadFunctionsSkipsUnreliableLanguages(t *testing.T) {
	g := igraph.New()
	entry := node(g, "src/index.ts", domain.LanguageTypeScript, 10)
	entry.AddEntryPointReason("manifest-entry")
	java := node(g, "src/Main.java", domain.LanguageJava, 10)
	java.File.ParseResult.Declarations = []domain.Declaration{{Name: "helper", Kind: "function", Line: 3}}
	g.AddEdge("src/index.ts",
		domain.ImportRef{RawModule: "./Main"},
		domain.Resolution{Kind: domain.ResolutionResolved, Path: "src/Main.java"})

	res := reachability.New(g).Run()
	report := Assemble(g, res, nil, nil, false)

	if len(report.DeadFunctions) != 0 {
		t.Errorf("DeadFunctions = %+v, want none for Java", report.DeadFunctions)
	}
}

func TestAssembleCarriesCancelledAndDiagnostics(t *testing.T) {
	g := igraph.New()
	diags := []domain.Diagnostic{{Kind: domain.DiagnosticParseError, Path: "x.ts", Reason: "timeout"}}
	report := Assemble(g, reachability.Result{FileReachable: map[string]bool{}}, nil, diags, true)

	if !report.Cancelled {
		t.Error("Cancelled = false, want true")
	}
	if len(report.Diagnostics) != 1 {
		t.Errorf("Diagnostics = %+v", report.Diagnostics)
	}
}
