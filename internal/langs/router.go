// Package langs maps file extensions to a domain.Language tag and embeds the
// per-language regex rule bundles the regex parser tier is driven by.
package langs

import (
	"path/filepath"
	"strings"

	"github.com/deadroot/deadroot/domain"
)

// astTierLanguages is the JavaScript family, the only set handled by the
// tree-sitter AST tier. Everything else in extensionTable routes to the
// regex tier.
var astTierLanguages = map[domain.Language]bool{
	domain.LanguageJavaScript: true,
	domain.LanguageTypeScript: true,
	domain.LanguageVue:        true,
}

// extensionTable is the pure extension -> language lookup spec.md §4.2
// requires. Extensions are matched case-insensitively.
var extensionTable = map[string]domain.Language{
	".js":   domain.LanguageJavaScript,
	".mjs":  domain.LanguageJavaScript,
	".cjs":  domain.LanguageJavaScript,
	".jsx":  domain.LanguageJavaScript,
	".ts":   domain.LanguageTypeScript,
	".tsx":  domain.LanguageTypeScript,
	".mts":  domain.LanguageTypeScript,
	".cts":  domain.LanguageTypeScript,
	".vue":  domain.LanguageVue,
	".py":   domain.LanguagePython,
	".go":   domain.LanguageGo,
	".rs":   domain.LanguageRust,
	".java": domain.LanguageJava,
	".kt":   domain.LanguageKotlin,
	".kts":  domain.LanguageKotlin,
	".php":  domain.LanguagePHP,
	".rb":   domain.LanguageRuby,
	".cs":   domain.LanguageCSharp,
	".dart": domain.LanguageDart,
	".swift": domain.LanguageSwift,
	".scala": domain.LanguageScala,
	".ex":   domain.LanguageElixir,
	".exs":  domain.LanguageElixir,
	".hs":   domain.LanguageHaskell,
	".lua":  domain.LanguageLua,
	".c":    domain.LanguageC,
	".h":    domain.LanguageC,
	".cpp":  domain.LanguageCPP,
	".cc":   domain.LanguageCPP,
	".hpp":  domain.LanguageCPP,
	".pl":   domain.LanguagePerl,
	".pm":   domain.LanguagePerl,
	".r":    domain.LanguageR,
	".R":    domain.LanguageR,
	".clj":  domain.LanguageClojure,
	".cljs": domain.LanguageClojure,
	".fs":   domain.LanguageFSharp,
	".fsx":  domain.LanguageFSharp,
	".ml":   domain.LanguageOCaml,
	".mli":  domain.LanguageOCaml,
	".jl":   domain.LanguageJulia,
	".zig":  domain.LanguageZig,
	".nim":  domain.LanguageNim,
	".erl":  domain.LanguageErlang,
	".hrl":  domain.LanguageErlang,
	".groovy": domain.LanguageGroovy,
	".gradle": domain.LanguageGroovy,
	".cr":   domain.LanguageCrystal,
	".v":    domain.LanguageV,
	".m":    domain.LanguageObjC,
	".mm":   domain.LanguageObjC,
	".sh":   domain.LanguageShell,
	".bash": domain.LanguageShell,
	".ps1":  domain.LanguagePowerShell,
	".cob":  domain.LanguageCOBOL,
	".cbl":  domain.LanguageCOBOL,
	".f":    domain.LanguageFortran,
	".f90":  domain.LanguageFortran,
	".vb":   domain.LanguageVBNET,
	".d.ts": domain.LanguageTypes,
}

// RouteFile maps a project-relative path to its Language tag. It returns
// domain.LanguageUnknown for extensions outside the supported set; such
// files are still counted in totals but not analyzed.
func RouteFile(path string) domain.Language {
	base := filepath.Base(path)
	if strings.HasSuffix(base, ".d.ts") {
		return domain.LanguageTypes
	}
	ext := strings.ToLower(filepath.Ext(path))
	if lang, ok := extensionTable[ext]; ok {
		return lang
	}
	return domain.LanguageUnknown
}

// IsASTTier reports whether lang is handled by the tree-sitter AST parser
// rather than the regex tier.
func IsASTTier(lang domain.Language) bool {
	return astTierLanguages[lang]
}
