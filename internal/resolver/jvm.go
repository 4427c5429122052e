package resolver

import (
	"path"
	"strings"

	"github.com/deadroot/deadroot/domain"
)

// jvmSourceRoots mirrors the conventional Maven/Gradle layout spec.md §4.4
// names: each module root may carry both a main and a test tree, in either
// java or kotlin.
var jvmSourceRoots = []string{
	"src/main/java", "src/main/kotlin", "src/test/java", "src/test/kotlin",
}

// resolveJVM implements spec.md §4.4's Java/Kotlin strategy: a fully
// qualified class name maps to a file under one of the conventional source
// roots, tried against every module root discovered in the walked tree (a
// multi-module Gradle/Maven project has one such tree per module).
func (r *Resolver) resolveJVM(fromPath string, ref domain.ImportRef) domain.Resolution {
	fqn := ref.RawModule
	if fqn == "" {
		return domain.Resolution{Kind: domain.ResolutionUnresolved, Reason: "empty import"}
	}
	relPath := strings.ReplaceAll(fqn, ".", "/")

	for _, moduleRoot := range r.jvmModuleRoots(fromPath) {
		for _, src := range jvmSourceRoots {
			base := cleanRel(path.Join(moduleRoot, src))
			for _, ext := range []string{".java", ".kt"} {
				cand := cleanRel(base + "/" + relPath + ext)
				if r.files.Has(cand) {
					return domain.Resolution{Kind: domain.ResolutionResolved, Path: cand}
				}
			}
		}
	}
	if looksLikeStdlibOrThirdParty(fqn) {
		return domain.Resolution{Kind: domain.ResolutionExternal}
	}
	return domain.Resolution{Kind: domain.ResolutionUnresolved, Reason: "class not found: " + fqn}
}

// jvmModuleRoots returns every directory in the walked tree that directly
// contains one of jvmSourceRoots, in sorted walked-path order, with "."
// appended if not already present; fromPath does not affect the order.
func (r *Resolver) jvmModuleRoots(fromPath string) []string {
	seen := make(map[string]bool)
	var roots []string
	add := func(root string) {
		if !seen[root] {
			seen[root] = true
			roots = append(roots, root)
		}
	}
	for _, p := range r.files.all {
		for _, src := range jvmSourceRoots {
			switch {
			case strings.HasPrefix(p, src+"/"):
				add(".")
			case strings.Contains(p, "/"+src+"/"):
				add(p[:strings.Index(p, "/"+src+"/")])
			}
		}
	}
	add(".")
	return roots
}

func looksLikeStdlibOrThirdParty(fqn string) bool {
	switch {
	case strings.HasPrefix(fqn, "java."), strings.HasPrefix(fqn, "javax."),
		strings.HasPrefix(fqn, "kotlin."), strings.HasPrefix(fqn, "kotlinx."):
		return true
	default:
		return strings.Count(fqn, ".") >= 2
	}
}
