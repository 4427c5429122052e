package domain

// Language is the tag LanguageRouter assigns to a file extension.
type Language string

const (
	LanguageJavaScript Language = "javascript"
	LanguageTypeScript Language = "typescript"
	LanguageVue        Language = "vue"
	LanguagePython     Language = "python"
	LanguageGo         Language = "go"
	LanguageRust       Language = "rust"
	LanguageJava       Language = "java"
	LanguageKotlin     Language = "kotlin"
	LanguagePHP        Language = "php"
	LanguageRuby       Language = "ruby"
	LanguageCSharp     Language = "csharp"
	LanguageDart       Language = "dart"
	LanguageSwift      Language = "swift"
	LanguageScala      Language = "scala"
	LanguageElixir     Language = "elixir"
	LanguageHaskell    Language = "haskell"
	LanguageLua        Language = "lua"
	LanguageC          Language = "c"
	LanguageCPP        Language = "cpp"
	LanguagePerl       Language = "perl"
	LanguageR          Language = "r"
	LanguageClojure    Language = "clojure"
	LanguageFSharp     Language = "fsharp"
	LanguageOCaml      Language = "ocaml"
	LanguageJulia      Language = "julia"
	LanguageZig        Language = "zig"
	LanguageNim        Language = "nim"
	LanguageErlang     Language = "erlang"
	LanguageGroovy     Language = "groovy"
	LanguageCrystal    Language = "crystal"
	LanguageV          Language = "v"
	LanguageObjC       Language = "objc"
	LanguageShell      Language = "shell"
	LanguagePowerShell Language = "powershell"
	LanguageCOBOL      Language = "cobol"
	LanguageFortran    Language = "fortran"
	LanguageVBNET      Language = "vbnet"
	LanguageTypes      Language = "types" // .d.ts and other pure-declaration files
	LanguageUnknown    Language = ""
)

// SourceFile is a single file discovered by the walker. ParseResult is set
// exactly once, during the parse stage, and never mutated afterward.
type SourceFile struct {
	Path        string `json:"path"`
	Language    Language `json:"language"`
	Bytes       int64    `json:"bytes"`
	LineCount   int      `json:"lineCount"`
	ParseResult *ParseResult `json:"-"`
}

// BoolPtr returns a pointer to b, for optional config fields that need to
// distinguish "unset" from "false".
func BoolPtr(b bool) *bool { return &b }

// IntPtr returns a pointer to i.
func IntPtr(i int) *int { return &i }
