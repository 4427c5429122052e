// Package assembler implements spec.md §4.9's ResultAssembler: it takes the
// finished ModuleGraph plus the ReachabilityEngine/VerdictAssigner output and
// shapes the single, order-stable AnalysisReport value that reporters
// consume. It never mutates the graph and never reaches back into the core.
package assembler

import (
	"sort"

	"github.com/deadroot/deadroot/domain"
	igraph "github.com/deadroot/deadroot/internal/graph"
	"github.com/deadroot/deadroot/internal/reachability"
)

// functionCaptureLanguages names the languages spec.md §4.9 calls out as
// reliable enough for top-level-function dead-code reporting.
var functionCaptureLanguages = map[domain.Language]bool{
	domain.LanguageJavaScript: true,
	domain.LanguageTypeScript: true,
	domain.LanguageVue:        true,
	domain.LanguagePython:     true,
	domain.LanguageGo:         true,
	domain.LanguageRust:       true,
}

// Assemble builds the final AnalysisReport from the walked graph, the
// reachability result, the verdicts VerdictAssigner produced, and every
// diagnostic accumulated by upstream stages. cancelled is surfaced as-is on
// the report per spec.md §5's cooperative-cancellation contract.
func Assemble(
	g *igraph.ModuleGraph,
	result reachability.Result,
	verdicts []reachability.FileVerdict,
	diagnostics []domain.Diagnostic,
	cancelled bool,
) domain.AnalysisReport {
	totals := buildTotals(g, result)
	deadFiles := buildDeadFiles(verdicts)
	deadFunctions := buildDeadFunctions(g, result)

	return domain.AnalysisReport{
		Totals:        totals,
		DeadFiles:     deadFiles,
		DeadFunctions: deadFunctions,
		Diagnostics:   diagnostics,
		Cancelled:     cancelled,
	}
}

func buildTotals(g *igraph.ModuleGraph, result reachability.Result) domain.Totals {
	t := domain.Totals{FilesByLanguage: make(map[domain.Language]int)}
	for _, n := range g.Nodes() {
		t.TotalFiles++
		t.TotalBytes += n.File.Bytes
		t.FilesByLanguage[n.File.Language]++
		if n.IsEntryPoint() {
			t.EntryPointCount++
		}
		if result.FileReachable[n.File.Path] {
			t.ReachableCount++
		}
	}
	return t
}

// buildDeadFiles converts each FileVerdict into a domain.DeadFile, sorted by
// (language, path) per spec.md §5's ordering guarantee. For a
// partially-unreachable file, only the exports VerdictAssigner marked dead
// are listed.
func buildDeadFiles(verdicts []reachability.FileVerdict) []domain.DeadFile {
	files := make([]domain.DeadFile, 0, len(verdicts))
	for _, fv := range verdicts {
		n := fv.Node
		df := domain.DeadFile{
			Path:       n.File.Path,
			Size:       n.File.Bytes,
			Lines:      n.File.LineCount,
			Language:   n.File.Language,
			Verdict:    fv.Verdict.FileStatus,
			Confidence: fv.Verdict.Confidence,
			Evidence:   fv.Verdict.Evidence,
		}
		if fv.Verdict.FileStatus == domain.StatusPartiallyUnreachable && n.File.ParseResult != nil {
			for _, exp := range n.File.ParseResult.Exports {
				st := n.ExportStatus[exp.Name]
				if st == nil || st.Reachable {
					continue
				}
				df.Exports = append(df.Exports, domain.DeadExport{
					Name:   exp.Name,
					Kind:   exp.Kind,
					Line:   exp.Line,
					Reason: st.DeadReason,
				})
			}
		}
		files = append(files, df)
	}

	sort.Slice(files, func(i, j int) bool {
		if files[i].Language != files[j].Language {
			return files[i].Language < files[j].Language
		}
		return files[i].Path < files[j].Path
	})
	return files
}

// buildDeadFunctions reports top-level declarations, in a live file, whose
// name is never the target of a named import edge reaching that file and
// which no reachable re-export path exposes, restricted to the languages
// spec.md §4.9 considers reliable for top-level-function capture.
func buildDeadFunctions(g *igraph.ModuleGraph, result reachability.Result) []domain.DeadFunction {
	var out []domain.DeadFunction

	for _, n := range g.Nodes() {
		if !result.FileReachable[n.File.Path] {
			continue
		}
		if !functionCaptureLanguages[n.File.Language] {
			continue
		}
		if n.File.ParseResult == nil {
			continue
		}

		targeted := namedImportTargets(g, n.File.Path)
		exported := exportedNames(n.File.ParseResult)

		for _, decl := range n.File.ParseResult.Declarations {
			if decl.Kind != "function" {
				continue
			}
			if targeted[decl.Name] {
				continue
			}
			if st := n.ExportStatus[decl.Name]; st != nil && st.Reachable {
				continue
			}
			if exported[decl.Name] {
				continue
			}
			out = append(out, domain.DeadFunction{File: n.File.Path, Name: decl.Name, Line: decl.Line})
		}
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].File != out[j].File {
			return out[i].File < out[j].File
		}
		return out[i].Line < out[j].Line
	})
	return out
}

// namedImportTargets collects every name any other file imports from target,
// across the whole graph, so a locally-unexported top-level function that is
// nonetheless pulled in by name (rare, but some languages allow reaching into
// a neighbor file without a formal export list) is not misreported.
func namedImportTargets(g *igraph.ModuleGraph, target string) map[string]bool {
	names := make(map[string]bool)
	for _, n := range g.Nodes() {
		for _, edge := range n.Outgoing {
			if edge.To != target {
				continue
			}
			for _, sym := range edge.Via.NamedSymbols {
				names[sym.Name] = true
			}
		}
	}
	return names
}

func exportedNames(pr *domain.ParseResult) map[string]bool {
	names := make(map[string]bool, len(pr.Exports))
	for _, exp := range pr.Exports {
		if exp.Name == domain.ReexportAllName {
			continue
		}
		names[exp.Name] = true
	}
	return names
}
