package graph

import (
	"testing"

	"github.com/deadroot/deadroot/domain"
)

func addFile(mg *ModuleGraph, path string) {
	mg.AddFile(&domain.SourceFile{Path: path, Language: domain.LanguageTypeScript})
}

func TestAddEdgeConnectsResolvedFiles(t *testing.T) {
	mg := New()
	addFile(mg, "a.ts")
	addFile(mg, "b.ts")

	mg.AddEdge("a.ts", domain.ImportRef{RawModule: "./b"}, domain.Resolution{Kind: domain.ResolutionResolved, Path: "b.ts"})

	a := mg.Node("a.ts")
	b := mg.Node("b.ts")
	if len(a.Outgoing) != 1 || a.Outgoing[0].To != "b.ts" {
		t.Fatalf("a.Outgoing = %+v", a.Outgoing)
	}
	if len(b.Incoming) != 1 || b.Incoming[0].From != "a.ts" {
		t.Fatalf("b.Incoming = %+v", b.Incoming)
	}
}

func TestAddEdgeExternalRecordedButNotConnected(t *testing.T) {
	mg := New()
	addFile(mg, "a.ts")
	mg.AddEdge("a.ts", domain.ImportRef{RawModule: "react"}, domain.Resolution{Kind: domain.ResolutionExternal})

	a := mg.Node("a.ts")
	if len(a.Outgoing) != 1 || a.Outgoing[0].To != "" {
		t.Fatalf("expected one outgoing edge with no target, got %+v", a.Outgoing)
	}
}

func TestDetectCyclesFindsTwoNodeCycle(t *testing.T) {
	mg := New()
	addFile(mg, "a.ts")
	addFile(mg, "b.ts")
	mg.AddEdge("a.ts", domain.ImportRef{RawModule: "./b"}, domain.Resolution{Kind: domain.ResolutionResolved, Path: "b.ts"})
	mg.AddEdge("b.ts", domain.ImportRef{RawModule: "./a"}, domain.Resolution{Kind: domain.ResolutionResolved, Path: "a.ts"})

	cycles := mg.DetectCycles()
	if len(cycles) != 1 {
		t.Fatalf("DetectCycles() = %v, want 1 cycle", cycles)
	}
	if len(cycles[0].Files) != 2 {
		t.Errorf("cycle files = %v, want 2", cycles[0].Files)
	}
}

func TestDetectCyclesIgnoresAcyclicGraph(t *testing.T) {
	mg := New()
	addFile(mg, "a.ts")
	addFile(mg, "b.ts")
	mg.AddEdge("a.ts", domain.ImportRef{RawModule: "./b"}, domain.Resolution{Kind: domain.ResolutionResolved, Path: "b.ts"})

	if cycles := mg.DetectCycles(); len(cycles) != 0 {
		t.Fatalf("DetectCycles() = %v, want none", cycles)
	}
}
