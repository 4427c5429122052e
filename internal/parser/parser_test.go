package parser

import (
	"testing"
)

// TestParseSimpleFunctionProducesTopLevelDeclaration guards the shape
// topLevelDeclarations (extract.go) walks directly: a function statement
// must land in ast.Body, not just be reachable via Walk, or declaration
// extraction silently misses it.
func TestParseSimpleFunctionProducesTopLevelDeclaration(t *testing.T) {
	code := `function hello() { return 42; }`

	parser := NewParser()
	defer parser.Close()

	ast, err := parser.ParseString(code)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if ast == nil {
		t.Fatal("AST is nil")
	}

	if ast.Type != NodeProgram {
		t.Errorf("Expected NodeProgram, got %s", ast.Type)
	}

	if len(ast.Body) == 0 {
		t.Fatal("Expected at least one statement in body")
	}

	// Check if first statement is a function
	funcNode := ast.Body[0]
	if funcNode.Type != NodeFunction {
		t.Errorf("Expected NodeFunction, got %s", funcNode.Type)
	}

	if funcNode.Name != "hello" {
		t.Errorf("Expected function name 'hello', got '%s'", funcNode.Name)
	}
	if funcNode.Location.StartLine != 1 {
		t.Errorf("Location.StartLine = %d, want 1 (buildImportRef/declFromNode rely on this to report line numbers)", funcNode.Location.StartLine)
	}
}

func TestParseIfStatement(t *testing.T) {
	code := `
	function greet(name) {
		if (name) {
			return "Hello, " + name;
		} else {
			return "Hello, stranger";
		}
	}
	`

	parser := NewParser()
	defer parser.Close()

	ast, err := parser.ParseString(code)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if ast == nil || len(ast.Body) == 0 {
		t.Fatal("AST is nil or empty")
	}

	funcNode := ast.Body[0]
	if funcNode.Name != "greet" {
		t.Errorf("Expected function name 'greet', got '%s'", funcNode.Name)
	}

	// Check if function has body with if statement
	if len(funcNode.Body) == 0 {
		t.Fatal("Function body is empty")
	}

	// Find if statement in function body
	found := false
	funcNode.Walk(func(n *Node) bool {
		if n.Type == NodeIfStatement {
			found = true
			return false
		}
		return true
	})

	if !found {
		t.Error("Expected to find if statement in function body")
	}
}

// TestParseArrowFunctionBoundToTopLevelConst checks the arrow-function
// decision recorded in topLevelDeclarations: an arrow function assigned to a
// top-level const is reachable both via Walk (as a function node) and as a
// NodeVariableDeclaration in ast.Body, the shape declFromNode expects.
func TestParseArrowFunctionBoundToTopLevelConst(t *testing.T) {
	code := `const add = (a, b) => { return a + b; };`

	parser := NewParser()
	defer parser.Close()

	ast, err := parser.ParseString(code)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	found := false
	ast.Walk(func(n *Node) bool {
		if n.Type == NodeArrowFunction {
			found = true
			if len(n.Params) != 2 {
				t.Errorf("Expected 2 parameters, got %d", len(n.Params))
			}
			return false
		}
		return true
	})
	if !found {
		t.Error("Expected to find arrow function")
	}

	top := topLevelDeclarations(ast)
	if len(top) != 1 || top[0].Type != NodeVariableDeclaration {
		t.Errorf("topLevelDeclarations = %+v, want a single NodeVariableDeclaration for 'add'", top)
	}
}

// TestParseFileCountsNestedAndTopLevelFunctions mirrors the mixed
// top-level/nested/method shape a real module file presents to ExtractModule:
// IsFunction (Walk-driven) must see every function regardless of nesting,
// while topLevelDeclarations (used by declFromNode) only picks up the
// module-level ones.
func TestParseFileCountsNestedAndTopLevelFunctions(t *testing.T) {
	content := []byte(`
function outer() {
  function inner() { return 1; }
  return inner;
}

class Widget {
  render() { return null; }
}

const helper = () => outer();
`)

	parser := NewParser()
	defer parser.Close()

	ast, err := parser.ParseFile("widget.js", content)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if ast == nil {
		t.Fatal("AST is nil")
	}

	functionCount := 0
	ast.Walk(func(n *Node) bool {
		if n.IsFunction() {
			functionCount++
		}
		return true
	})

	if functionCount < 4 {
		t.Errorf("Expected at least 4 functions (outer, inner, render, helper), found %d", functionCount)
	}

	top := topLevelDeclarations(ast)
	if len(top) != 3 {
		t.Errorf("topLevelDeclarations = %d, want 3 (outer, Widget, helper); inner must not appear", len(top))
	}
}

// TestParseForLoop guards the control-flow node shape Walk must traverse
// correctly so a require()/import() nested inside a loop body is still
// discoverable by extract.go's dynamic-import scan.
func TestParseForLoop(t *testing.T) {
	code := `
	for (let i = 0; i < 10; i++) {
		console.log(i);
	}
	`

	parser := NewParser()
	defer parser.Close()

	ast, err := parser.ParseString(code)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	found := false
	ast.Walk(func(n *Node) bool {
		if n.Type == NodeForStatement {
			found = true
			if n.Init == nil {
				t.Error("Expected for loop to have init")
			}
			if n.Test == nil {
				t.Error("Expected for loop to have test")
			}
			if n.Update == nil {
				t.Error("Expected for loop to have update")
			}
			return false
		}
		return true
	})

	if !found {
		t.Error("Expected to find for statement")
	}
}

// TestParseTryCatch guards the same nested-traversal requirement for
// try/catch/finally bodies, the other common home for a guarded
// require()/import() call.
func TestParseTryCatch(t *testing.T) {
	code := `
	try {
		throw new Error("oops");
	} catch (e) {
		console.error(e);
	} finally {
		cleanup();
	}
	`

	parser := NewParser()
	defer parser.Close()

	ast, err := parser.ParseString(code)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	found := false
	ast.Walk(func(n *Node) bool {
		if n.Type == NodeTryStatement {
			found = true
			if n.Handler == nil {
				t.Error("Expected try statement to have handler (catch)")
			}
			if n.Finalizer == nil {
				t.Error("Expected try statement to have finalizer (finally)")
			}
			return false
		}
		return true
	})

	if !found {
		t.Error("Expected to find try statement")
	}
}
