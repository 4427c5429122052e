package parser

import (
	"regexp"
	"strings"

	"github.com/deadroot/deadroot/domain"
)

// decoratorPattern finds `@Name(...)` or `@Name` occurrences at the start of
// a line, the shape TypeScript/JS decorators and Python/Java-style
// annotations share closely enough to scan for textually rather than via a
// dedicated grammar rule (tree-sitter-javascript exposes decorators as plain
// children of the declaration they annotate, not as a distinctly walkable
// top-level node list).
var decoratorPattern = regexp.MustCompile(`(?m)^\s*@(\w+)(\(([^)]*)\))?`)

// ExtractModule walks an AST built by ASTBuilder and produces the
// domain.ParseResult spec.md §4.3 requires from the JS/TS AST tier. offset
// is added to every reported line number (nonzero for the embedded <script>
// block of a Vue SFC).
func ExtractModule(root *Node, source []byte, offset int) *domain.ParseResult {
	result := &domain.ParseResult{}
	if root == nil {
		return result
	}

	// Top-level declarations and imports/exports/dynamic-import calls only;
	// this intentionally does not recurse into nested function bodies for
	// declaration extraction (spec.md's top-level-only contract), but does
	// use Node.Walk for import/export/call discovery since those can appear
	// nested inside conditional blocks and still count (e.g. a guarded
	// `require(...)`).
	root.Walk(func(n *Node) bool {
		switch n.Type {
		case NodeImportDeclaration:
			result.Imports = append(result.Imports, buildImportRef(n, offset))
		case NodeExportNamedDeclaration, NodeExportAllDeclaration:
			if ref, ok := buildReexportImportRef(n, offset); ok {
				result.Imports = append(result.Imports, ref)
			}
			result.Exports = append(result.Exports, buildExportDecls(n, offset)...)
		case NodeExportDefaultDeclaration:
			result.Exports = append(result.Exports, buildExportDecls(n, offset)...)
		case NodeCallExpression:
			if ref, ok := buildDynamicImportRef(n, offset); ok {
				result.Imports = append(result.Imports, ref)
			}
		}
		return true
	})

	for _, decl := range topLevelDeclarations(root) {
		result.Declarations = append(result.Declarations, declFromNode(decl, offset))
	}

	for _, match := range decoratorPattern.FindAllSubmatch(source, -1) {
		ann := domain.Annotation{Name: string(match[1])}
		if len(match) > 3 && len(match[3]) > 0 {
			for _, arg := range strings.Split(string(match[3]), ",") {
				arg = strings.TrimSpace(arg)
				if arg != "" {
					ann.Arguments = append(ann.Arguments, arg)
				}
			}
		}
		result.Annotations = append(result.Annotations, ann)
	}

	result.Metadata = buildMetadata(root, result, source)
	return result
}

func stripQuotes(raw string) string {
	raw = strings.TrimSpace(raw)
	if len(raw) >= 2 {
		first, last := raw[0], raw[len(raw)-1]
		if (first == '"' || first == '\'' || first == '`') && first == last {
			return raw[1 : len(raw)-1]
		}
	}
	return raw
}

func literalString(n *Node) (string, bool) {
	if n == nil {
		return "", false
	}
	if n.Type == NodeStringLiteral || n.Type == NodeLiteral {
		return stripQuotes(n.Raw), true
	}
	return "", false
}

func buildImportRef(n *Node, offset int) domain.ImportRef {
	ref := domain.ImportRef{
		Kind: domain.ImportStatic,
		Line: n.Location.StartLine + offset,
	}
	if src, ok := literalString(n.Source); ok {
		ref.RawModule = src
	}
	if len(n.Specifiers) == 0 && ref.RawModule != "" {
		ref.Kind = domain.ImportSideEffect
	}
	for _, spec := range n.Specifiers {
		sym := domain.NamedSymbol{}
		switch spec.Type {
		case NodeImportDefaultSpecifier:
			sym.Name = "default"
			sym.Alias = spec.Name
		case NodeImportNamespaceSpecifier:
			sym.Name = "*"
			sym.Alias = spec.Name
		case NodeImportSpecifier:
			if spec.Imported != nil {
				sym.Name = spec.Imported.Name
			} else {
				sym.Name = spec.Name
			}
			sym.Alias = spec.Name
		default:
			continue
		}
		ref.NamedSymbols = append(ref.NamedSymbols, sym)
	}
	return ref
}

// buildReexportImportRef turns a `export { a, b } from 'x'` or
// `export * from 'x'` declaration into the ImportRef ModuleGraph needs to
// connect the barrel file to the module it re-exports from; a plain
// `export { a, b }` with no source has nothing to resolve and is skipped.
func buildReexportImportRef(n *Node, offset int) (domain.ImportRef, bool) {
	src, ok := literalString(n.Source)
	if !ok || src == "" {
		return domain.ImportRef{}, false
	}
	kind := domain.ImportReexport
	if n.Type == NodeExportAllDeclaration {
		kind = domain.ImportReexportAll
	}
	return domain.ImportRef{RawModule: src, Kind: kind, Line: n.Location.StartLine + offset}, true
}

func buildExportDecls(n *Node, offset int) []domain.ExportDecl {
	line := n.Location.StartLine + offset
	sourceModule := ""
	if src, ok := literalString(n.Source); ok {
		sourceModule = src
	}

	if n.Type == NodeExportAllDeclaration {
		return []domain.ExportDecl{{
			Name:         domain.ReexportAllName,
			Kind:         domain.ExportReexportAll,
			Line:         line,
			SourceModule: sourceModule,
		}}
	}

	if n.Type == NodeExportDefaultDeclaration {
		name := "default"
		if n.Declaration != nil && n.Declaration.Name != "" {
			name = n.Declaration.Name
		}
		return []domain.ExportDecl{{
			Name:      name,
			Kind:      domain.ExportDefaultKind,
			Line:      line,
			IsDefault: true,
		}}
	}

	// Named export. Either a declaration (export function/class/const foo)
	// or a re-export clause (export { a, b } from 'x').
	if len(n.Specifiers) > 0 {
		var decls []domain.ExportDecl
		kind := domain.ExportReexport
		if sourceModule == "" {
			kind = domain.ExportVariable
		}
		for _, spec := range n.Specifiers {
			decls = append(decls, domain.ExportDecl{
				Name:         spec.Name,
				Kind:         kind,
				Line:         line,
				SourceModule: sourceModule,
			})
		}
		return decls
	}

	if n.Declaration != nil {
		names := declarationNames(n.Declaration)
		kind := exportKindForDeclaration(n.Declaration)
		var decls []domain.ExportDecl
		for _, name := range names {
			decls = append(decls, domain.ExportDecl{Name: name, Kind: kind, Line: line})
		}
		return decls
	}

	return nil
}

func exportKindForDeclaration(n *Node) domain.ExportKind {
	switch n.Type {
	case NodeClass, NodeClassExpression:
		return domain.ExportClass
	case NodeFunction, NodeAsyncFunction, NodeGeneratorFunction, NodeFunctionExpression, NodeArrowFunction:
		return domain.ExportFunction
	case NodeInterfaceDeclaration:
		return domain.ExportInterface
	case NodeTypeAlias:
		return domain.ExportType
	case NodeEnumDeclaration:
		return domain.ExportEnum
	default:
		return domain.ExportVariable
	}
}

func declarationNames(n *Node) []string {
	switch n.Type {
	case NodeVariableDeclaration:
		var names []string
		for _, d := range n.Declarations {
			if name := declaratorName(d); name != "" {
				names = append(names, name)
			}
		}
		return names
	default:
		if n.Name != "" {
			return []string{n.Name}
		}
		return nil
	}
}

// buildDynamicImportRef recognizes import(...), require(...),
// require.resolve(...), require.context(...), import.meta.glob(...), and
// glob.sync(...)/globSync(...) call shapes.
func buildDynamicImportRef(n *Node, offset int) (domain.ImportRef, bool) {
	line := n.Location.StartLine + offset
	callee := n.Callee
	if callee == nil {
		return domain.ImportRef{}, false
	}

	firstArgModule := func() (string, bool) {
		if len(n.Arguments) == 0 {
			return "", false
		}
		return literalString(n.Arguments[0])
	}

	switch callee.Type {
	case NodeIdentifier:
		switch callee.Name {
		case "require":
			if mod, ok := firstArgModule(); ok {
				return domain.ImportRef{RawModule: mod, Kind: domain.ImportRequire, Line: line}, true
			}
		case "import":
			mod, ok := firstArgModule()
			return domain.ImportRef{RawModule: mod, Kind: domain.ImportDynamic, Line: line, IsDynamic: !ok || mod == ""}, true
		case "globSync":
			mod, _ := firstArgModule()
			return domain.ImportRef{RawModule: mod, Kind: domain.ImportGlob, Line: line, IsGlob: true}, true
		}
	case NodeMemberExpression:
		obj, prop := memberParts(callee)
		switch {
		case obj == "require" && prop == "resolve":
			if mod, ok := firstArgModule(); ok {
				return domain.ImportRef{RawModule: mod, Kind: domain.ImportRequire, Line: line}, true
			}
		case obj == "require" && prop == "context":
			mod, _ := firstArgModule()
			return domain.ImportRef{RawModule: mod, Kind: domain.ImportRequireContext, Line: line, IsGlob: true}, true
		case (obj == "import.meta" || obj == "import") && prop == "glob":
			mod, _ := firstArgModule()
			return domain.ImportRef{RawModule: mod, Kind: domain.ImportGlob, Line: line, IsGlob: true}, true
		case obj == "glob" && (prop == "sync" || prop == "globSync"):
			mod, _ := firstArgModule()
			return domain.ImportRef{RawModule: mod, Kind: domain.ImportGlob, Line: line, IsGlob: true}, true
		}
	}
	return domain.ImportRef{}, false
}

// memberParts returns a best-effort ("object", "property") pair for a
// MemberExpression callee, flattening `import.meta` into a single object
// name since the JS grammar nests `meta` as a property of `import`.
func memberParts(n *Node) (string, string) {
	obj := ""
	if n.Object != nil {
		if n.Object.Type == NodeMemberExpression {
			o2, p2 := memberParts(n.Object)
			obj = o2 + "." + p2
		} else if n.Object.Name != "" {
			obj = n.Object.Name
		}
	}
	prop := ""
	if n.Property != nil {
		prop = n.Property.Name
	}
	return obj, prop
}

// topLevelDeclarations returns the function/class/variable declarations that
// are direct children of the program body, plus the arrow-function decision
// recorded in DESIGN.md: an arrow function assigned to a top-level
// const/let/var binding is eligible; one nested inside an object/class
// literal property is not (those never appear in this top-level scan).
func topLevelDeclarations(root *Node) []*Node {
	var out []*Node
	stmts := root.Body
	if len(stmts) == 0 {
		stmts = root.Children
	}
	for _, stmt := range stmts {
		switch stmt.Type {
		case NodeFunction, NodeAsyncFunction, NodeGeneratorFunction, NodeClass:
			out = append(out, stmt)
		case NodeVariableDeclaration:
			out = append(out, stmt)
		case NodeExportNamedDeclaration, NodeExportDefaultDeclaration:
			if stmt.Declaration != nil {
				switch stmt.Declaration.Type {
				case NodeFunction, NodeAsyncFunction, NodeGeneratorFunction, NodeClass, NodeVariableDeclaration:
					out = append(out, stmt.Declaration)
				}
			}
		}
	}
	return out
}

func declFromNode(n *Node, offset int) domain.Declaration {
	name := n.Name
	kind := "function"
	switch n.Type {
	case NodeClass, NodeClassExpression:
		kind = "class"
	case NodeVariableDeclaration:
		kind = "variable"
		if len(n.Declarations) > 0 {
			name = declaratorName(n.Declarations[0])
			if declaratorValueIsFunction(n.Declarations[0]) {
				kind = "function"
			}
		}
	}
	return domain.Declaration{
		Name:    name,
		Kind:    kind,
		Line:    n.Location.StartLine + offset,
		EndLine: n.Location.EndLine + offset,
		Public:  !strings.HasPrefix(name, "_"),
	}
}

// declaratorName returns the bound name of a variable declarator. ASTBuilder
// builds declarators as generic nodes, so the name is the first identifier
// child rather than the node's own Name field.
func declaratorName(d *Node) string {
	if d.Name != "" {
		return d.Name
	}
	for _, c := range d.Children {
		if c.Type == NodeIdentifier {
			return c.Name
		}
	}
	return ""
}

// declaratorValueIsFunction reports whether a declarator's initializer is an
// arrow function or a function expression.
func declaratorValueIsFunction(d *Node) bool {
	for _, c := range d.Children {
		if c.Type == NodeArrowFunction || c.Type == NodeFunctionExpression {
			return true
		}
	}
	return false
}

func buildMetadata(root *Node, result *domain.ParseResult, source []byte) domain.ParseMetadata {
	meta := domain.ParseMetadata{}
	for _, d := range result.Declarations {
		if d.Name == "main" {
			meta.HasMainEntry = true
		}
	}
	return meta
}
