package parser

import (
	"testing"

	"github.com/deadroot/deadroot/domain"
)

func declNames(decls []domain.Declaration) []string {
	var names []string
	for _, d := range decls {
		names = append(names, d.Name)
	}
	return names
}

func TestRegexParserPythonRejectsNestedMethodsAsTopLevel(t *testing.T) {
	src := `def module_level():
    pass


class Foo:
    def method(self):
        pass

    def other(self):
        pass
`
	result := NewRegexParser(domain.LanguagePython).Parse("foo.py", []byte(src))
	names := declNames(result.Declarations)

	if !contains(names, "module_level") {
		t.Errorf("declarations = %v, want module_level", names)
	}
	if !contains(names, "Foo") {
		t.Errorf("declarations = %v, want Foo", names)
	}
	if contains(names, "method") || contains(names, "other") {
		t.Errorf("declarations = %v, methods nested under class Foo must not be reported top-level", names)
	}
}

func TestRegexParserRustRejectsNestedItemsAsTopLevel(t *testing.T) {
	src := `fn top_level() {}

struct Widget {}

impl Widget {
    pub fn method(&self) {}

    fn helper(&self) {}
}
`
	result := NewRegexParser(domain.LanguageRust).Parse("widget.rs", []byte(src))
	names := declNames(result.Declarations)

	if !contains(names, "top_level") {
		t.Errorf("declarations = %v, want top_level", names)
	}
	if !contains(names, "Widget") {
		t.Errorf("declarations = %v, want Widget", names)
	}
	if contains(names, "method") || contains(names, "helper") {
		t.Errorf("declarations = %v, fns nested inside impl Widget must not be reported top-level", names)
	}
}

func contains(items []string, target string) bool {
	for _, it := range items {
		if it == target {
			return true
		}
	}
	return false
}
