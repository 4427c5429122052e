// Package reachability implements spec.md §4.7's ReachabilityEngine: a
// breadth-first traversal from the EntryPointFinder's root set across the
// ModuleGraph, tracking both file-level and per-(file, export) reachability,
// including re-export chain resolution. The cycle-safe visited-set pattern
// (keyed by "path|exportName", trails cloned rather than mutated) follows
// the reexport resolver helpers in the retrieved pack's JS re-export
// resolver tests.
package reachability

import (
	"github.com/deadroot/deadroot/domain"
	igraph "github.com/deadroot/deadroot/internal/graph"
)

// Result holds the file-reachability set ReachabilityEngine produces;
// per-export reachability is recorded on each node's ExportStatus map.
type Result struct {
	FileReachable map[string]bool
}

// Engine performs the BFS traversal.
type Engine struct {
	g *igraph.ModuleGraph
}

// New creates an Engine bound to an already-built ModuleGraph.
func New(g *igraph.ModuleGraph) *Engine {
	return &Engine{g: g}
}

// Run seeds the BFS from every current entry-point node, marks file
// reachability, and resolves export reachability (including re-export
// chains) for every reachable file. It mutates each domain.ModuleNode's
// ExportStatus map in place, per spec.md §4.7.
func (e *Engine) Run() Result {
	nodes := e.g.Nodes()
	reachable := make(map[string]bool)

	var queue []string
	for _, n := range nodes {
		if n.IsEntryPoint() {
			if !reachable[n.File.Path] {
				reachable[n.File.Path] = true
				queue = append(queue, n.File.Path)
			}
		}
	}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		n := e.g.Node(cur)
		if n == nil {
			continue
		}
		for _, edge := range n.Outgoing {
			if edge.To == "" || edge.To == cur {
				continue // self-edges ignored for reachability, per spec.md §4.5
			}
			if !reachable[edge.To] {
				reachable[edge.To] = true
				queue = append(queue, edge.To)
			}
		}
	}

	e.markExportReachability(reachable)
	return Result{FileReachable: reachable}
}

// markExportReachability walks every edge out of a reachable file and marks
// the exports it names (or, for dynamic/glob/side-effect/namespace imports
// and imports naming no symbols such as a bare require(), every export of
// the target) as reachable, resolving re-export chains with a cycle-safe
// visited set. A re-export edge marks nothing by itself: only the names a
// consumer requests are followed through it.
func (e *Engine) markExportReachability(reachable map[string]bool) {
	resolver := &reexportResolver{g: e.g, visited: make(map[string]bool)}

	for _, n := range e.g.Nodes() {
		if !reachable[n.File.Path] {
			continue
		}
		for _, edge := range n.Outgoing {
			if edge.To == "" || edge.To == n.File.Path {
				continue
			}
			target := e.g.Node(edge.To)
			if target == nil {
				continue
			}
			switch {
			case edge.Via.Kind == domain.ImportReexport || edge.Via.Kind == domain.ImportReexportAll:
				continue
			case edge.Via.IsDynamic || edge.Via.IsGlob || edge.Via.Kind == domain.ImportSideEffect || edge.Via.Kind == domain.ImportRequireContext:
				markAllExports(target)
			case len(edge.Via.NamedSymbols) == 0:
				markAllExports(target)
			default:
				for _, sym := range edge.Via.NamedSymbols {
					name := sym.Name
					if name == "*" {
						markAllExports(target)
						continue
					}
					resolver.markReachable(target, name, nil)
				}
			}
		}
	}
}

func markAllExports(n *domain.ModuleNode) {
	if n.File.ParseResult == nil {
		return
	}
	for _, exp := range n.File.ParseResult.Exports {
		if exp.Name == domain.ReexportAllName {
			continue
		}
		ensureStatus(n, exp.Name).Reachable = true
	}
}

func ensureStatus(n *domain.ModuleNode, name string) *domain.ExportStatus {
	if n.ExportStatus == nil {
		n.ExportStatus = make(map[string]*domain.ExportStatus)
	}
	st, ok := n.ExportStatus[name]
	if !ok {
		st = &domain.ExportStatus{}
		n.ExportStatus[name] = st
	}
	return st
}

// reexportResolver resolves `export { a } from 'x'` and `export * from 'x'`
// chains without looping forever on a cycle, following the pack's
// visited-set-keyed-by-"path|name" pattern.
type reexportResolver struct {
	g       *igraph.ModuleGraph
	visited map[string]bool
}

// markReachable marks name as reachable on n if n itself declares it
// directly; otherwise it follows n's re-export declarations (specific named
// re-export first, then a `*` re-export) to find the real owner.
func (r *reexportResolver) markReachable(n *domain.ModuleNode, name string, trail []string) {
	key := n.File.Path + "|" + name
	if r.visited[key] {
		return
	}
	r.visited[key] = true

	if n.File.ParseResult == nil {
		return
	}

	declared := false
	var reexportAll *domain.Edge
	var reexportNamed *domain.Edge
	for i := range n.File.ParseResult.Exports {
		exp := n.File.ParseResult.Exports[i]
		if exp.Kind != domain.ExportReexport && exp.Kind != domain.ExportReexportAll && exp.Name == name {
			declared = true
		}
	}
	for i := range n.Outgoing {
		edge := &n.Outgoing[i]
		if edge.Via.Kind != domain.ImportReexport && edge.Via.Kind != domain.ImportReexportAll {
			continue
		}
		for _, exp := range n.File.ParseResult.Exports {
			if exp.SourceModule == "" || exp.SourceModule != edge.Via.RawModule {
				continue
			}
			if exp.Kind == domain.ExportReexportAll {
				reexportAll = edge
			} else if exp.Name == name {
				reexportNamed = edge
			}
		}
	}

	ensureStatus(n, name).Reachable = true

	if declared {
		return
	}
	next := append(append([]string(nil), trail...), n.File.Path)
	if reexportNamed != nil && reexportNamed.To != "" {
		if target := r.g.Node(reexportNamed.To); target != nil {
			r.markReachable(target, name, next)
			return
		}
	}
	if reexportAll != nil && reexportAll.To != "" {
		if target := r.g.Node(reexportAll.To); target != nil {
			r.markReachable(target, name, next)
		}
	}
}
