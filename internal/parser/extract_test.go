package parser_test

import (
	"testing"

	"github.com/deadroot/deadroot/domain"
	"github.com/deadroot/deadroot/internal/parser"
	"github.com/deadroot/deadroot/internal/testutil"
)

func TestExtractModuleFindsStaticImportsAndNamedExports(t *testing.T) {
	src := `import { readFile } from 'fs';
import def, { named as alias } from './local';

export function doWork() {
  return readFile;
}

export const answer = 42;
`
	ast := testutil.CreateTestAST(t, src)
	result := parser.ExtractModule(ast, []byte(src), 0)

	if len(result.Imports) != 2 {
		t.Fatalf("Imports = %d, want 2", len(result.Imports))
	}
	if result.Imports[0].RawModule != "fs" {
		t.Errorf("Imports[0].RawModule = %q, want fs", result.Imports[0].RawModule)
	}
	if result.Imports[1].RawModule != "./local" {
		t.Errorf("Imports[1].RawModule = %q, want ./local", result.Imports[1].RawModule)
	}

	if fn := testutil.FindFunctionInAST(ast, "doWork"); fn == nil {
		t.Error("expected to find doWork in the AST")
	}

	var names []string
	for _, exp := range result.Exports {
		names = append(names, exp.Name)
	}
	testutil.AssertTrue(t, contains(names, "doWork"), "expected doWork among exports, got "+join(names))
	testutil.AssertTrue(t, contains(names, "answer"), "expected answer among exports, got "+join(names))
}

func TestExtractModuleRecognizesDynamicImportShapes(t *testing.T) {
	src := `const mod = require('./plugin');
const lazy = import('./lazy-module');
const ctx = require.context('./dir', true, /\.js$/);
`
	ast := testutil.CreateTestAST(t, src)
	result := parser.ExtractModule(ast, []byte(src), 0)

	var kinds []domain.ImportKind
	for _, imp := range result.Imports {
		kinds = append(kinds, imp.Kind)
	}
	testutil.AssertTrue(t, containsKind(kinds, domain.ImportRequire), "expected a require() import")
	testutil.AssertTrue(t, containsKind(kinds, domain.ImportDynamic), "expected a dynamic import()")
	testutil.AssertTrue(t, containsKind(kinds, domain.ImportRequireContext), "expected a require.context() import")
}

func TestExtractModuleCountsTopLevelFunctionsOnly(t *testing.T) {
	src := `function outer() {
  function inner() {}
  return inner;
}
const arrow = () => {};
`
	ast, err := testutil.CreateTestASTNoFail(src)
	testutil.AssertNoError(t, err)
	if ast == nil {
		t.Fatal("expected a non-nil AST")
	}

	if n := testutil.CountFunctionsInAST(ast); n < 2 {
		t.Errorf("CountFunctionsInAST = %d, want at least 2 (outer and inner both present in the raw AST)", n)
	}

	result := parser.ExtractModule(ast, []byte(src), 0)
	var names []string
	for _, d := range result.Declarations {
		names = append(names, d.Name)
	}
	testutil.AssertTrue(t, contains(names, "outer"), "expected outer in top-level declarations, got "+join(names))
	testutil.AssertFalse(t, contains(names, "inner"), "inner should not appear in top-level declarations")
}

func TestExtractModuleEmitsReexportImports(t *testing.T) {
	src := `export { helper } from './helper';
export * from './all-of-it';
export { local };
`
	ast := testutil.CreateTestAST(t, src)
	result := parser.ExtractModule(ast, []byte(src), 0)

	var named, all *domain.ImportRef
	for i := range result.Imports {
		imp := &result.Imports[i]
		switch imp.Kind {
		case domain.ImportReexport:
			named = imp
		case domain.ImportReexportAll:
			all = imp
		}
	}
	if named == nil {
		t.Fatal("expected a named reexport ImportRef for './helper'")
	}
	testutil.AssertEqual(t, "./helper", named.RawModule)
	if all == nil {
		t.Fatal("expected a reexport-all ImportRef for './all-of-it'")
	}
	testutil.AssertEqual(t, "./all-of-it", all.RawModule)

	var exportKinds []domain.ExportKind
	for _, exp := range result.Exports {
		exportKinds = append(exportKinds, exp.Kind)
	}
	testutil.AssertTrue(t, containsExportKind(exportKinds, domain.ExportReexport), "expected a reexport ExportDecl")
	testutil.AssertTrue(t, containsExportKind(exportKinds, domain.ExportReexportAll), "expected a reexport-all ExportDecl")

	// A plain `export { local }` with no source module resolves nothing and
	// must not produce a dangling ImportRef.
	for _, imp := range result.Imports {
		if imp.Kind == domain.ImportReexport {
			testutil.AssertTrue(t, imp.RawModule != "", "reexport ImportRef must carry a source module")
		}
	}
}

func containsExportKind(items []domain.ExportKind, target domain.ExportKind) bool {
	for _, it := range items {
		if it == target {
			return true
		}
	}
	return false
}

func TestExtractModuleParsesDecoratorAnnotations(t *testing.T) {
	src := `@Injectable()
class Service {}
`
	ast := testutil.CreateTestAST(t, src)
	result := parser.ExtractModule(ast, []byte(src), 0)

	if len(result.Annotations) != 1 {
		t.Fatalf("Annotations = %d, want 1", len(result.Annotations))
	}
	testutil.AssertEqual(t, "Injectable", result.Annotations[0].Name)
}

func contains(items []string, target string) bool {
	for _, it := range items {
		if it == target {
			return true
		}
	}
	return false
}

func containsKind(items []domain.ImportKind, target domain.ImportKind) bool {
	for _, it := range items {
		if it == target {
			return true
		}
	}
	return false
}

func join(items []string) string {
	out := ""
	for i, it := range items {
		if i > 0 {
			out += ","
		}
		out += it
	}
	return out
}
