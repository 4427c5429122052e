package domain

// ResolutionKind is the outcome of resolving an ImportRef's rawModule to a
// concrete location, per spec.md §4.4.
type ResolutionKind string

const (
	ResolutionResolved   ResolutionKind = "resolved"
	ResolutionExternal   ResolutionKind = "external"
	ResolutionUnresolved ResolutionKind = "unresolved"
)

// Resolution is the result of resolving one ImportRef.
type Resolution struct {
	Kind   ResolutionKind `json:"kind"`
	Path   string         `json:"path,omitempty"`   // set iff Kind == ResolutionResolved
	Reason string         `json:"reason,omitempty"` // set iff Kind == ResolutionUnresolved
}

// Edge is a directed reference from one file to another (or to an external
// module / an unresolved specifier) discovered via one ImportRef.
type Edge struct {
	From       string      `json:"from"`
	To         string      `json:"to,omitempty"` // empty when resolution is external/unresolved
	Via        ImportRef   `json:"via"`
	Resolution Resolution  `json:"resolution"`
}

// ExportStatus records whether one export of a file is reachable, set by
// ReachabilityEngine.
type ExportStatus struct {
	Reachable  bool   `json:"reachable"`
	DeadReason string `json:"deadReason,omitempty"`
}

// ModuleNode is one file's position in the ModuleGraph.
type ModuleNode struct {
	File              *SourceFile             `json:"file"`
	Outgoing          []Edge                  `json:"outgoing"`
	Incoming          []Edge                  `json:"incoming"`
	ExportStatus      map[string]*ExportStatus `json:"exportStatus"`
	EntryPointReasons []string                `json:"entryPointReasons,omitempty"`
}

// NewModuleNode creates an empty ModuleNode for f.
func NewModuleNode(f *SourceFile) *ModuleNode {
	return &ModuleNode{
		File:         f,
		ExportStatus: make(map[string]*ExportStatus),
	}
}

// IsEntryPoint reports whether any reason tags this node as a root.
func (n *ModuleNode) IsEntryPoint() bool {
	return len(n.EntryPointReasons) > 0
}

// AddEntryPointReason appends reason if not already recorded, preserving the
// fixed append order spec.md §4.6/§5 requires for order-stable output.
func (n *ModuleNode) AddEntryPointReason(reason string) {
	for _, r := range n.EntryPointReasons {
		if r == reason {
			return
		}
	}
	n.EntryPointReasons = append(n.EntryPointReasons, reason)
}
