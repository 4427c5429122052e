package parser

import (
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/dlclark/regexp2"

	"github.com/deadroot/deadroot/domain"
	"github.com/deadroot/deadroot/internal/langs"
)

// RegexParser implements the regex tier of spec.md §4.3: a single engine
// generic over a per-language langs.Rules bundle, used for every language
// outside the JavaScript family. Rule patterns are compiled with regexp2 in
// Multiline mode; none of the embedded bundles uses lookaround.
type RegexParser struct {
	lang domain.Language
}

// NewRegexParser creates a regex-tier parser bound to lang.
func NewRegexParser(lang domain.Language) *RegexParser {
	return &RegexParser{lang: lang}
}

// Parse never returns an error: malformed input yields a ParseResult with
// Metadata.ParseError set and whatever partial data matched, per spec.md's
// "never throw on malformed input" contract.
func (p *RegexParser) Parse(path string, source []byte) *domain.ParseResult {
	rules := langs.RulesFor(p.lang)
	result := &domain.ParseResult{}
	text := string(source)
	lineOf := newLineIndexer(text)

	for _, ip := range rules.ImportPatterns {
		re, err := regexp2.Compile(ip.Regex, regexp2.Multiline)
		if err != nil {
			result.Metadata.ParseError = "invalid rule: " + err.Error()
			continue
		}
		for m, _ := re.FindStringMatch(text); m != nil; m, _ = re.FindNextMatch(m) {
			groups := m.Groups()
			module := ""
			if ip.ModuleGroup > 0 && ip.ModuleGroup < len(groups) {
				module = groups[ip.ModuleGroup].String()
			}
			if module == "" {
				continue
			}
			result.Imports = append(result.Imports, domain.ImportRef{
				RawModule: module,
				Kind:      ip.Kind,
				Line:      lineOf(m.Index),
				IsDynamic: ip.Kind == domain.ImportDynamic,
				IsGlob:    ip.Kind == domain.ImportGlob,
			})
		}
	}

	var braceDepthAt func(int) int
	if rules.DepthMode == "brace" {
		braceDepthAt = braceDepthIndexer(text)
	}

	for _, dp := range rules.DeclPatterns {
		re, err := regexp2.Compile(dp.Regex, regexp2.Multiline)
		if err != nil {
			continue
		}
		for m, _ := re.FindStringMatch(text); m != nil; m, _ = re.FindNextMatch(m) {
			if !atDeclDepth(rules.DepthMode, m, braceDepthAt) {
				continue
			}
			groups := m.Groups()
			name := ""
			if dp.NameGroup > 0 && dp.NameGroup < len(groups) {
				name = groups[dp.NameGroup].String()
			}
			if name == "" {
				continue
			}
			line := lineOf(m.Index)
			decl := domain.Declaration{
				Name:    name,
				Kind:    dp.Kind,
				Line:    line,
				EndLine: line,
				Public:  isPublic(dp.Public, name, rules.VisibilityDefault),
			}
			result.Declarations = append(result.Declarations, decl)

			// A top-level exported declaration in these languages doubles
			// as its own export: there is no separate export statement the
			// way ESM has one, so ImportResolver/ReachabilityEngine treat
			// every public top-level declaration as an implicit export.
			if decl.Public {
				result.Exports = append(result.Exports, domain.ExportDecl{
					Name: name,
					Kind: exportKindForDeclKind(dp.Kind),
					Line: line,
				})
			}
		}
	}

	for _, marker := range rules.MainMarkers {
		if strings.Contains(text, marker) {
			result.Metadata.HasMainEntry = true
			break
		}
	}
	for flag, substrings := range rules.FrameworkFlags {
		for _, s := range substrings {
			if strings.Contains(text, s) {
				setFrameworkFlag(&result.Metadata, flag)
				break
			}
		}
	}
	result.Metadata.VisibilityDefault = rules.VisibilityDefault
	result.Metadata.IsTestFile = matchesAnyGlob(path, rules.TestFileGlobs)

	return result
}

func exportKindForDeclKind(kind string) domain.ExportKind {
	switch kind {
	case "class", "struct", "trait":
		return domain.ExportClass
	case "type":
		return domain.ExportType
	default:
		return domain.ExportFunction
	}
}

func setFrameworkFlag(meta *domain.ParseMetadata, flag string) {
	switch flag {
	case "isDjangoModel":
		meta.IsDjangoModel = true
	case "isFastAPI":
		meta.IsFastAPI = true
	case "isSpring":
		meta.IsSpring = true
	case "usesWire":
		meta.UsesWire = true
	}
}

// isPublic approximates each language's export-visibility default. This is
// deliberately conservative: languages whose defaults require more than a
// substring check (e.g. Kotlin's internal/private modifiers appearing
// earlier on the same line) fall back to "public unless an explicit
// private/internal keyword precedes the name on that declaration line",
// which the rule's NameGroup capture already anchors to.
func isPublic(rule, name, languageDefault string) bool {
	mode := rule
	if mode == "" {
		mode = languageDefault
	}
	switch mode {
	case "always":
		return true
	case "capitalized":
		return len(name) > 0 && strings.ToUpper(name[:1]) == name[:1]
	case "capitalized-or-no-underscore":
		// A capitalized name never starts with '_', so this is the
		// leading-underscore test alone.
		return len(name) > 0 && !strings.HasPrefix(name, "_")
	case "no-leading-underscore":
		return !strings.HasPrefix(name, "_")
	default:
		return true
	}
}

func matchesAnyGlob(path string, patterns []string) bool {
	for _, pat := range patterns {
		if ok, _ := doublestar.Match(pat, path); ok {
			return true
		}
	}
	return false
}

// atDeclDepth rejects a DeclPatterns match that is nested inside another
// block rather than a genuine top-level declaration, per mode:
//   - "indent": the match (which always starts at column 0 thanks to the
//     rule's leading `^\s*`) must have consumed no leading whitespace, i.e.
//     a Python `def`/`class` indented under another block is rejected.
//   - "brace": the brace depth at the match's start offset must be zero,
//     i.e. a Rust `fn`/`struct`/`trait` nested inside another item's body
//     is rejected.
//   - "" (unset): the rule's own regex already anchors to column zero
//     (e.g. Go's `^func`), so no extra check is needed.
func atDeclDepth(mode string, m *regexp2.Match, braceDepthAt func(int) int) bool {
	switch mode {
	case "indent":
		return leadingWhitespace(m.String()) == 0
	case "brace":
		return braceDepthAt(m.Index) == 0
	default:
		return true
	}
}

// leadingWhitespace counts the spaces/tabs before the first non-blank
// character of s. A `^\s*` match may begin on a preceding blank line, so
// only the indentation after the last line break counts.
func leadingWhitespace(s string) int {
	n := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case ' ', '\t':
			n++
		case '\r', '\n':
			n = 0
		default:
			return n
		}
	}
	return n
}

// braceDepthIndexer returns a function mapping a rune offset (regexp2
// reports match positions in runes) to the net '{'/'}' depth immediately
// before it. This is a plain running count, blind
// to braces inside string or comment literals, but sufficient to tell a
// module-level Rust item from one nested inside an impl/fn/mod body, which
// is all DeclPatterns matching needs it for.
func braceDepthIndexer(text string) func(offset int) int {
	runes := []rune(text)
	depths := make([]int, len(runes)+1)
	depth := 0
	for i, r := range runes {
		depths[i] = depth
		switch r {
		case '{':
			depth++
		case '}':
			if depth > 0 {
				depth--
			}
		}
	}
	depths[len(runes)] = depth
	return func(offset int) int {
		if offset < 0 {
			offset = 0
		}
		if offset >= len(depths) {
			offset = len(depths) - 1
		}
		return depths[offset]
	}
}

// newLineIndexer returns a function mapping a rune offset in text (regexp2
// reports match positions in runes) to a 1-based line number, computed once
// up front so repeated lookups during rule matching stay O(log n) rather
// than O(n) each.
func newLineIndexer(text string) func(offset int) int {
	offsets := []int{0}
	for i, c := range []rune(text) {
		if c == '\n' {
			offsets = append(offsets, i+1)
		}
	}
	return func(offset int) int {
		lo, hi := 0, len(offsets)-1
		for lo < hi {
			mid := (lo + hi + 1) / 2
			if offsets[mid] <= offset {
				lo = mid
			} else {
				hi = mid - 1
			}
		}
		return lo + 1
	}
}
