package constants

// Tool name and related constants
const (
	// ToolName is the name of this tool
	ToolName = "deadroot"

	// ConfigFileName is the default config file name
	ConfigFileName = ".deadroot.toml"

	// EnvVarPrefix is the prefix for environment variables
	EnvVarPrefix = "DEADROOT"
)
