package domain

// DeadExport is one dead export listed against a DeadFile or a
// partially-unreachable live file.
type DeadExport struct {
	Name   string `json:"name"`
	Kind   ExportKind `json:"kind"`
	Line   int    `json:"line"`
	Reason string `json:"reason,omitempty"`
}

// DeadFile is one file reported as unreachable, possibly-live, or
// partially-unreachable.
type DeadFile struct {
	Path       string       `json:"path"`
	Size       int64        `json:"size"`
	Lines      int          `json:"lines"`
	Language   Language     `json:"language"`
	Verdict    FileStatus   `json:"verdict"`
	Confidence float64      `json:"confidence"`
	Evidence   Evidence     `json:"evidence"`
	Exports    []DeadExport `json:"exports,omitempty"`
}

// DeadFunction is one top-level function on a live file that no reachable
// edge names and which reaches no live re-export path.
type DeadFunction struct {
	File string `json:"file"`
	Name string `json:"name"`
	Line int    `json:"line"`
}

// DiagnosticKind enumerates the recoverable-failure categories of spec.md §7.
type DiagnosticKind string

const (
	DiagnosticIOError            DiagnosticKind = "io-error"
	DiagnosticParseError         DiagnosticKind = "parse-error"
	DiagnosticResolutionFailure  DiagnosticKind = "resolution-failure"
	DiagnosticEmptyGlobExpansion DiagnosticKind = "empty-glob-expansion"
)

// Diagnostic is one recoverable failure or noteworthy event surfaced instead
// of aborting the scan.
type Diagnostic struct {
	Kind   DiagnosticKind `json:"kind"`
	Path   string         `json:"path"`
	Reason string         `json:"reason"`
}

// Totals holds aggregate counters for the report.
type Totals struct {
	FilesByLanguage map[Language]int `json:"filesByLanguage"`
	TotalBytes      int64            `json:"totalBytes"`
	EntryPointCount int              `json:"entryPointCount"`
	ReachableCount  int              `json:"reachableCount"`
	TotalFiles      int              `json:"totalFiles"`
}

// AnalysisReport is the single pure value ResultAssembler hands to reporters.
// It is never mutated after construction.
type AnalysisReport struct {
	Totals        Totals         `json:"totals"`
	DeadFiles     []DeadFile     `json:"deadFiles"`
	DeadFunctions []DeadFunction `json:"deadFunctions"`
	Diagnostics   []Diagnostic   `json:"diagnostics"`
	Cancelled     bool           `json:"cancelled"`
}
