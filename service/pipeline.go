// Package service orchestrates spec.md §2's full data flow — FileWalker,
// LanguageRouter, ParserBank, ImportResolver, ModuleGraph, EntryPointFinder,
// ReachabilityEngine, VerdictAssigner, ResultAssembler — into the single
// Analyze entry point the app/cmd layers call. Parsing runs on a worker pool
// (golang.org/x/sync/errgroup, per spec.md §5); resolution, graph
// construction, and reachability run single-threaded on the caller's
// goroutine afterward, per the same section.
package service

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"runtime"
	"sync/atomic"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"golang.org/x/sync/errgroup"

	"github.com/deadroot/deadroot/domain"
	"github.com/deadroot/deadroot/internal/assembler"
	"github.com/deadroot/deadroot/internal/entrypoint"
	igraph "github.com/deadroot/deadroot/internal/graph"
	"github.com/deadroot/deadroot/internal/parser"
	"github.com/deadroot/deadroot/internal/reachability"
	"github.com/deadroot/deadroot/internal/resolver"
	"github.com/deadroot/deadroot/internal/walker"
)

const (
	defaultMaxParsers   = 8
	defaultParseTimeout = 5 * time.Second
)

// Analyzer runs the whole whole-project reachability pipeline against one
// project root.
type Analyzer struct{}

// NewAnalyzer creates an Analyzer. It carries no state of its own: every
// Analyze call builds a fresh walker/graph/resolver scoped to that run.
func NewAnalyzer() *Analyzer { return &Analyzer{} }

type walkedFile struct {
	path string
	size int64
	lang domain.Language
}

// Analyze walks root, parses every discovered file, resolves imports, builds
// the module graph, seeds entry points, computes reachability and verdicts,
// and returns the assembled AnalysisReport. progress may be nil. A cancelled
// ctx yields a partial report with Cancelled=true rather than an error, per
// spec.md §5.
func (a *Analyzer) Analyze(ctx context.Context, root string, cfg domain.AnalysisConfig, progress domain.ProgressFunc) (domain.AnalysisReport, error) {
	emit := progress
	if emit == nil {
		emit = func(domain.ProgressEvent) {}
	}

	emit(domain.ProgressEvent{Phase: domain.PhaseWalk})
	w := walker.New(cfg)
	var files []walkedFile
	diags, err := w.Walk(root, func(path string, size int64, lang domain.Language) {
		files = append(files, walkedFile{path: path, size: size, lang: lang})
	})
	if err != nil {
		return domain.AnalysisReport{}, err
	}

	cancelled := isCancelled(ctx)

	results := make([]*domain.ParseResult, len(files))
	lineCounts := make([]int, len(files))
	if !cancelled {
		emit(domain.ProgressEvent{Phase: domain.PhaseParse, Total: len(files)})
		a.parseAll(ctx, root, cfg, files, results, lineCounts, &diags, emit)
		cancelled = isCancelled(ctx)
	}

	emit(domain.ProgressEvent{Phase: domain.PhaseBuildGraph, Total: len(files)})
	g, res, allPaths := a.buildGraph(root, files, results, lineCounts)

	if !cancelled {
		emit(domain.ProgressEvent{Phase: domain.PhaseResolve, Total: len(files)})
		a.resolveImports(g, res, files, results, &diags)
		cancelled = isCancelled(ctx)
	}

	read := fileReader(root)

	if !cancelled {
		emit(domain.ProgressEvent{Phase: domain.PhaseSeedEntries})
		entrypoint.New(cfg, read).Seed(g)
	}

	rresult := reachability.Result{FileReachable: make(map[string]bool)}
	var verdicts []reachability.FileVerdict
	if !cancelled {
		emit(domain.ProgressEvent{Phase: domain.PhaseReachability})
		rresult = reachability.New(g).Run()

		emit(domain.ProgressEvent{Phase: domain.PhaseVerdict})
		configTexts := readConfigTexts(read, allPaths)
		var vdiags []domain.Diagnostic
		verdicts, vdiags = reachability.Assign(g, rresult, cfg, configTexts)
		diags = append(diags, vdiags...)
	}
	cancelled = isCancelled(ctx)

	emit(domain.ProgressEvent{Phase: domain.PhaseAssemble})
	return assembler.Assemble(g, rresult, verdicts, diags, cancelled), nil
}

func isCancelled(ctx context.Context) bool {
	select {
	case <-ctx.Done():
		return true
	default:
		return false
	}
}

// parseAll distributes files across a bounded worker pool, one goroutine per
// file, each reading its own bytes and parsing under its own timeout. Workers
// write only to their own index of results/lineCounts/fileDiags, so no
// locking is needed; per-file diagnostics are appended to diags after Wait,
// and the shared progress counter is updated atomically.
func (a *Analyzer) parseAll(
	ctx context.Context,
	root string,
	cfg domain.AnalysisConfig,
	files []walkedFile,
	results []*domain.ParseResult,
	lineCounts []int,
	diags *[]domain.Diagnostic,
	emit domain.ProgressFunc,
) {
	maxParsers := cfg.ParallelParsers
	if maxParsers <= 0 {
		maxParsers = runtime.NumCPU()
		if maxParsers > defaultMaxParsers {
			maxParsers = defaultMaxParsers
		}
	}
	timeout := time.Duration(cfg.ParseTimeoutMs) * time.Millisecond
	if timeout <= 0 {
		timeout = defaultParseTimeout
	}

	bank := parser.NewBank()
	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(maxParsers)

	fileDiags := make([]*domain.Diagnostic, len(files))
	var done int64

	for i := range files {
		i := i
		g.Go(func() error {
			select {
			case <-gCtx.Done():
				return nil
			default:
			}

			src, rerr := os.ReadFile(filepath.Join(root, files[i].path))
			if rerr != nil {
				fileDiags[i] = &domain.Diagnostic{Kind: domain.DiagnosticIOError, Path: files[i].path, Reason: rerr.Error()}
				return nil
			}
			lineCounts[i] = bytes.Count(src, []byte("\n")) + 1

			fctx, cancel := context.WithTimeout(gCtx, timeout)
			defer cancel()
			results[i] = bank.Parse(fctx, files[i].path, files[i].lang, src)

			n := atomic.AddInt64(&done, 1)
			emit(domain.ProgressEvent{Phase: domain.PhaseParse, Current: int(n), Total: len(files), Detail: files[i].path})
			return nil
		})
	}
	_ = g.Wait()

	for _, d := range fileDiags {
		if d != nil {
			*diags = append(*diags, *d)
		}
	}
}

// buildGraph registers every walked file as a graph node and constructs the
// Resolver over the complete file set, before any edges are added.
func (a *Analyzer) buildGraph(
	root string,
	files []walkedFile,
	results []*domain.ParseResult,
	lineCounts []int,
) (*igraph.ModuleGraph, *resolver.Resolver, []string) {
	g := igraph.New()
	allPaths := make([]string, len(files))
	for i, f := range files {
		allPaths[i] = f.path
	}
	fileSet := resolver.NewFileSet(allPaths)
	res := resolver.New(root, fileSet)

	for i, f := range files {
		g.AddFile(&domain.SourceFile{
			Path: f.path, Language: f.lang, Bytes: f.size,
			LineCount: lineCounts[i], ParseResult: results[i],
		})
	}
	return g, res, allPaths
}

// resolveImports walks every successfully-parsed file's imports, resolving
// each (or expanding it, for glob imports) and recording the outcome as a
// graph edge. Resolution failures and empty glob expansions become
// diagnostics rather than aborting the run, per spec.md §4.4/§7.
func (a *Analyzer) resolveImports(
	g *igraph.ModuleGraph,
	res *resolver.Resolver,
	files []walkedFile,
	results []*domain.ParseResult,
	diags *[]domain.Diagnostic,
) {
	for i, f := range files {
		pr := results[i]
		if pr == nil || pr.HasParseError() {
			continue
		}
		for _, imp := range pr.Imports {
			if imp.IsGlob {
				matches := res.ExpandGlob(f.path, imp)
				if len(matches) == 0 {
					*diags = append(*diags, domain.Diagnostic{
						Kind: domain.DiagnosticEmptyGlobExpansion, Path: f.path,
						Reason: "glob import " + imp.RawModule + " matched no files",
					})
					continue
				}
				for _, m := range matches {
					g.AddEdge(f.path, imp, domain.Resolution{Kind: domain.ResolutionResolved, Path: m})
				}
				continue
			}

			resolution := res.Resolve(f.path, f.lang, imp)
			if resolution.Kind == domain.ResolutionUnresolved {
				*diags = append(*diags, domain.Diagnostic{
					Kind: domain.DiagnosticResolutionFailure, Path: f.path, Reason: resolution.Reason,
				})
			}
			g.AddEdge(f.path, imp, resolution)
		}
	}
}

func fileReader(root string) entrypoint.ReadFile {
	return func(relPath string) ([]byte, bool) {
		b, err := os.ReadFile(filepath.Join(root, relPath))
		if err != nil {
			return nil, false
		}
		return b, true
	}
}

// readConfigTexts reads every walked path matching one of
// reachability.ConfigReferencePatterns, for VerdictAssigner's
// "referenced in config" check.
func readConfigTexts(read entrypoint.ReadFile, allPaths []string) map[string]string {
	texts := make(map[string]string)
	for _, pat := range reachability.ConfigReferencePatterns {
		for _, p := range allPaths {
			if ok, _ := doublestar.Match(pat, p); !ok {
				continue
			}
			if b, ok := read(p); ok {
				texts[p] = string(b)
			}
		}
	}
	return texts
}
