// Package errs implements the error taxonomy of spec.md §7. Every
// recoverable failure is captured as a typed value and attributed to the
// offending path rather than raised as a panic; only ProjectNotFound,
// out-of-memory, and cancellation are fatal to a scan.
package errs

import "fmt"

// ProjectNotFound is returned when the project root does not exist. It is
// the only parse-time condition that aborts the scan with no report.
type ProjectNotFound struct {
	Root string
}

func (e *ProjectNotFound) Error() string {
	return fmt.Sprintf("project root not found: %s", e.Root)
}

// IoError wraps a file-level I/O failure encountered while walking or
// reading a file. It is always recorded in diagnostics; the offending file
// is skipped, not fatal.
type IoError struct {
	Path   string
	Reason error
}

func (e *IoError) Error() string {
	return fmt.Sprintf("io error reading %s: %v", e.Path, e.Reason)
}

func (e *IoError) Unwrap() error { return e.Reason }

// ParseError records a parser failure. The file is kept with an empty
// ParseResult and excluded from dead-candidate consideration.
type ParseError struct {
	Path   string
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error in %s: %s", e.Path, e.Reason)
}

// Timeout is a ParseError whose Reason is fixed to "timeout", per spec.md §7
// ("Timeout(path): treated as ParseError").
func Timeout(path string) *ParseError {
	return &ParseError{Path: path, Reason: "timeout"}
}

// ResolutionFailure records that an ImportRef could not be resolved to a
// project file or a recognized external package. It never affects
// reachability; the edge is stored unresolved.
type ResolutionFailure struct {
	RawModule string
	FromPath  string
	Reason    string
}

func (e *ResolutionFailure) Error() string {
	return fmt.Sprintf("could not resolve %q imported from %s: %s", e.RawModule, e.FromPath, e.Reason)
}

// Cancelled is not an error returned from a function call; it is surfaced as
// a property of the partial AnalysisReport (Cancelled=true). This type exists
// only so internal plumbing can propagate a cancellation signal with the
// standard error-handling idiom before it is translated into that property.
type Cancelled struct{}

func (e *Cancelled) Error() string { return "scan cancelled" }
