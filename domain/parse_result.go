package domain

// ImportKind classifies how a module reference was written in source,
// following the closed enum spec.md §3 requires in place of duck-typed
// dispatch on the AST shape.
type ImportKind string

const (
	ImportStatic          ImportKind = "static"
	ImportDynamic         ImportKind = "dynamic"
	ImportGlob            ImportKind = "glob"
	ImportSideEffect      ImportKind = "side-effect"
	ImportReexport        ImportKind = "reexport"
	ImportReexportAll     ImportKind = "reexport-all"
	ImportRequire         ImportKind = "require"
	ImportRequireContext  ImportKind = "require-context"
	ImportInclude         ImportKind = "include"
	ImportPart            ImportKind = "part"
	ImportUse             ImportKind = "use"
	ImportMod             ImportKind = "mod"
)

// NamedSymbol is one selectively-imported or re-exported binding.
type NamedSymbol struct {
	Name  string `json:"name"`
	Alias string `json:"alias,omitempty"`
}

// ImportRef is one import/include/use statement as written in source.
type ImportRef struct {
	RawModule    string        `json:"rawModule"`
	Kind         ImportKind    `json:"kind"`
	Line         int           `json:"line"`
	IsDynamic    bool          `json:"isDynamic"`
	IsGlob       bool          `json:"isGlob"`
	NamedSymbols []NamedSymbol `json:"namedSymbols,omitempty"`
}

// ExportKind classifies an export declaration.
type ExportKind string

const (
	ExportFunction     ExportKind = "function"
	ExportClass        ExportKind = "class"
	ExportVariable     ExportKind = "variable"
	ExportType         ExportKind = "type"
	ExportInterface    ExportKind = "interface"
	ExportEnum         ExportKind = "enum"
	ExportDefaultKind  ExportKind = "default"
	ExportReexport     ExportKind = "reexport"
	ExportReexportAll  ExportKind = "reexport-all"
	ExportMacro        ExportKind = "macro"
	ExportNamespace    ExportKind = "namespace"
	ExportModule       ExportKind = "module"
)

// ReexportAllName is the sentinel ExportDecl.Name for `export * from '...'`.
const ReexportAllName = "*"

// ExportDecl is one export declaration.
type ExportDecl struct {
	Name         string     `json:"name"`
	Kind         ExportKind `json:"kind"`
	Line         int        `json:"line"`
	IsDefault    bool       `json:"isDefault"`
	SourceModule string     `json:"sourceModule,omitempty"`
}

// Declaration is a top-level function, class, struct, trait, or type.
type Declaration struct {
	Name    string `json:"name"`
	Kind    string `json:"kind"`
	Line    int    `json:"line"`
	EndLine int    `json:"endLine"`
	Public  bool   `json:"public"`
}

// Annotation is a decorator/attribute occurrence attached to a declaration.
type Annotation struct {
	Name      string   `json:"name"`
	Arguments []string `json:"arguments,omitempty"`
	Line      int      `json:"line"`
}

// ParseMetadata carries language-specific flags a parser reports where
// applicable; see spec.md §4.3.
type ParseMetadata struct {
	ParseError        string `json:"parseError,omitempty"`
	HasMainEntry       bool   `json:"hasMainEntry,omitempty"`
	IsTestFile         bool   `json:"isTestFile,omitempty"`
	IsDjangoModel      bool   `json:"isDjangoModel,omitempty"`
	IsFastAPI          bool   `json:"isFastAPI,omitempty"`
	IsSpring           bool   `json:"isSpring,omitempty"`
	UsesWire           bool   `json:"usesWire,omitempty"`
	IsVueSFC           bool   `json:"isVueSFC,omitempty"`
	VisibilityDefault  string `json:"visibilityDefault,omitempty"`
}

// ParseResult is the output of parsing one SourceFile.
type ParseResult struct {
	Imports      []ImportRef   `json:"imports"`
	Exports      []ExportDecl  `json:"exports"`
	Declarations []Declaration `json:"declarations"`
	Annotations  []Annotation  `json:"annotations,omitempty"`
	Metadata     ParseMetadata `json:"metadata"`
}

// HasParseError reports whether the parse tier recorded a recoverable error
// (including a parse timeout) rather than panicking or aborting the walk.
func (p *ParseResult) HasParseError() bool {
	return p != nil && p.Metadata.ParseError != ""
}
