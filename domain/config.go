package domain

// AnalysisConfig is the recognized set of options spec.md §6 defines. Zero
// values mean "use built-in defaults"; internal/config merges this with the
// embedded defaults and any project .deadroot.toml / environment overrides.
type AnalysisConfig struct {
	IgnorePatterns       []string            `mapstructure:"ignorePatterns"`
	DynamicPatterns      []string            `mapstructure:"dynamicPatterns"`
	DIDecorators         []string            `mapstructure:"diDecorators"`
	DIContainerPatterns  []string            `mapstructure:"diContainerPatterns"`
	DynamicPackageFields []string            `mapstructure:"dynamicPackageFields"`
	TestPatterns         map[string][]string `mapstructure:"testPatterns"`
	BundlerConfigs       []string            `mapstructure:"bundlerConfigs"`
	GeneratedPatterns    []string            `mapstructure:"generatedPatterns"`

	MaxFileBytes   int64 `mapstructure:"maxFileBytes"`
	ParseTimeoutMs int64 `mapstructure:"parseTimeoutMs"`
	ParallelParsers int  `mapstructure:"parallelParsers"`
}

// ProgressPhase tags the pipeline stage a ProgressEvent was emitted from.
type ProgressPhase string

const (
	PhaseWalk          ProgressPhase = "walk"
	PhaseRoute         ProgressPhase = "route"
	PhaseParse         ProgressPhase = "parse"
	PhaseResolve       ProgressPhase = "resolve"
	PhaseBuildGraph    ProgressPhase = "build-graph"
	PhaseSeedEntries   ProgressPhase = "seed-entries"
	PhaseReachability  ProgressPhase = "reachability"
	PhaseVerdict       ProgressPhase = "verdict"
	PhaseAssemble      ProgressPhase = "assemble"
)

// ProgressEvent is the payload passed to the optional progress callback.
type ProgressEvent struct {
	Phase   ProgressPhase
	Current int
	Total   int
	Detail  string
}

// ProgressFunc is the optional progress callback spec.md §6 describes.
type ProgressFunc func(ProgressEvent)
