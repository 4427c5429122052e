package reachability

import (
	"path"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/deadroot/deadroot/domain"
	igraph "github.com/deadroot/deadroot/internal/graph"
)

// ConfigReferencePatterns names the config files VerdictAssigner's
// "referenced in config" check searches; callers build the configTexts map
// passed to Assign by reading every walked file matching one of these.
var ConfigReferencePatterns = []string{
	"tsconfig.json", "tsconfig.*.json", "jest.config.*", "vitest.config.*", "babel.config.*",
}

var defaultGeneratedPatterns = []string{
	"**/*.pb.go", "**/*_pb2.py", "**/*.generated.*", "**/dist/**", "**/*.min.js",
}

// FileVerdict pairs a node's Verdict with the per-export verdicts spec.md
// §4.8 requires for partially-unreachable files.
type FileVerdict struct {
	Node    *domain.ModuleNode
	Verdict domain.Verdict
}

// Assign implements spec.md §4.8's VerdictAssigner: for every file whose
// file-reachability is false, compute a confidence-scored verdict; for every
// reachable file with some unreached exports, compute a partially-unreachable
// verdict. Excluded files (per the edge-case policies) get no verdict;
// parse-error and zero-byte files among them are returned as diagnostics so
// ResultAssembler can surface them without listing them as dead. configTexts holds the raw contents of every file
// matching a "referenced in config" pattern (tsconfig*.json, jest.config.*,
// ...), keyed by path — the walker/parser stage already read these files
// once, so VerdictAssigner is handed the text rather than re-reading disk.
func Assign(g *igraph.ModuleGraph, result Result, cfg domain.AnalysisConfig, configTexts map[string]string) ([]FileVerdict, []domain.Diagnostic) {
	var verdicts []FileVerdict
	var diagnostics []domain.Diagnostic

	generated := cfg.GeneratedPatterns
	if len(generated) == 0 {
		generated = defaultGeneratedPatterns
	}

	for _, n := range g.Nodes() {
		p := n.File.Path

		if n.File.Language == domain.LanguageTypes || n.File.Language == domain.LanguageUnknown {
			continue
		}
		if n.IsEntryPoint() && hasReason(n, "test-file") {
			continue
		}
		if matchesAny(p, generated) {
			continue
		}
		if n.File.ParseResult.HasParseError() {
			diagnostics = append(diagnostics, domain.Diagnostic{
				Kind: domain.DiagnosticParseError, Path: p, Reason: n.File.ParseResult.Metadata.ParseError,
			})
			continue
		}
		if n.File.Bytes == 0 {
			diagnostics = append(diagnostics, domain.Diagnostic{
				Kind: domain.DiagnosticIOError, Path: p, Reason: "zero-byte file",
			})
			continue
		}

		if !result.FileReachable[p] {
			verdicts = append(verdicts, assignUnreachable(n, cfg, configTexts))
			continue
		}

		if fv, ok := assignPartiallyUnreachable(n); ok {
			verdicts = append(verdicts, fv)
		}
	}

	return verdicts, diagnostics
}

func hasReason(n *domain.ModuleNode, reason string) bool {
	for _, r := range n.EntryPointReasons {
		if r == reason {
			return true
		}
	}
	return false
}

func matchesAny(p string, patterns []string) bool {
	for _, pat := range patterns {
		if ok, _ := doublestar.Match(pat, p); ok {
			return true
		}
	}
	return false
}

func assignUnreachable(n *domain.ModuleNode, cfg domain.AnalysisConfig, configFiles map[string]string) FileVerdict {
	status := domain.StatusUnreachable
	confidence := 0.9
	evidence := domain.NewEvidence()
	evidence.Add("entryPointsTested", true, "")

	dynPatterns := cfg.DynamicPatterns
	if matched, pattern := matchedPattern(n.File.Path, dynPatterns); matched {
		status = domain.StatusPossiblyLive
		confidence = 0.4
		evidence.Add("dynamicCheck.matchedPattern", true, "matches dynamic pattern "+pattern)
	}

	if status == domain.StatusUnreachable && isDIAnnotated(n, cfg) {
		status = domain.StatusPossiblyLive
		if confidence > 0.5 {
			confidence = 0.5
		}
		evidence.Add("frameworkAnnotation", true, "file declares a DI-eligible annotated class")
	}

	if status == domain.StatusUnreachable {
		base := strings.TrimSuffix(path.Base(n.File.Path), path.Ext(n.File.Path))
		if referencedIn, ok := configReference(base, configFiles); ok {
			status = domain.StatusPossiblyLive
			if confidence > 0.5 {
				confidence = 0.5
			}
			evidence.Add("referencedInConfig", true, "basename referenced in "+referencedIn)
		}
	}

	confidence = domain.Clamp01(confidence)
	return FileVerdict{Node: n, Verdict: domain.Verdict{FileStatus: status, Confidence: confidence, Evidence: evidence}}
}

func matchedPattern(p string, patterns []string) (bool, string) {
	for _, pat := range patterns {
		if ok, _ := doublestar.Match(pat, p); ok {
			return true, pat
		}
	}
	return false, ""
}

func isDIAnnotated(n *domain.ModuleNode, cfg domain.AnalysisConfig) bool {
	if n.File.ParseResult == nil {
		return false
	}
	decorators := cfg.DIDecorators
	if len(decorators) == 0 {
		decorators = defaultDIDecorators
	}
	set := make(map[string]bool, len(decorators))
	for _, d := range decorators {
		set[d] = true
	}
	for _, ann := range n.File.ParseResult.Annotations {
		if set[ann.Name] {
			return true
		}
	}
	return false
}

var defaultDIDecorators = []string{
	"Injectable", "Component", "Controller", "Service", "Module",
	"RestController", "Configuration", "Repository", "Bean",
}

func configReference(base string, configFiles map[string]string) (string, bool) {
	for name, text := range configFiles {
		if text != "" && strings.Contains(text, base) {
			return name, true
		}
	}
	return "", false
}

// assignPartiallyUnreachable reports a reachable file that has at least one
// declared, non-reexport export with no recorded reachable status.
func assignPartiallyUnreachable(n *domain.ModuleNode) (FileVerdict, bool) {
	if n.File.ParseResult == nil {
		return FileVerdict{}, false
	}
	anyDead := false
	for _, exp := range n.File.ParseResult.Exports {
		if exp.Name == domain.ReexportAllName {
			continue
		}
		st := ensureStatus(n, exp.Name)
		if !st.Reachable {
			anyDead = true
			st.DeadReason = "no reachable named-import edge targets this export"
		}
	}
	if !anyDead {
		return FileVerdict{}, false
	}
	evidence := domain.NewEvidence()
	evidence.Add("reachableFileWithDeadExports", true, "file is reachable but some exports have no consumer")
	return FileVerdict{
		Node: n,
		Verdict: domain.Verdict{
			FileStatus: domain.StatusPartiallyUnreachable,
			Confidence: domain.Clamp01(0.7),
			Evidence:   evidence,
		},
	}, true
}
