// Package config loads spec.md §6's AnalysisConfig: an embedded set of
// defaults, overridable by a project .deadroot.toml and DEADROOT_-prefixed
// environment variables, following the teacher's viper-based layering.
package config

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/deadroot/deadroot/domain"
	"github.com/deadroot/deadroot/internal/constants"
)

//go:embed default.toml
var defaultTOML []byte

// Scaffold returns a copy of the embedded default.toml, for the CLI's init
// command to write out as a starting project config.
func Scaffold() []byte {
	return append([]byte(nil), defaultTOML...)
}

// Default returns the built-in AnalysisConfig with no project overrides
// applied, parsed fresh from the embedded default.toml on every call so
// callers may freely mutate the returned value.
func Default() (domain.AnalysisConfig, error) {
	v := viper.New()
	v.SetConfigType("toml")
	if err := v.ReadConfig(strings.NewReader(string(defaultTOML))); err != nil {
		return domain.AnalysisConfig{}, fmt.Errorf("parse embedded default config: %w", err)
	}
	var cfg domain.AnalysisConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return domain.AnalysisConfig{}, fmt.Errorf("unmarshal embedded default config: %w", err)
	}
	return cfg, nil
}

// Load resolves the AnalysisConfig for analyzing targetPath: start from the
// embedded defaults, layer in the nearest .deadroot.toml found by walking up
// from targetPath (or the explicit configPath, if given), then let
// DEADROOT_-prefixed environment variables override individual keys. Every
// layer is additive over the last; a project file need only set the keys it
// wants to change.
func Load(configPath, targetPath string) (domain.AnalysisConfig, error) {
	v := viper.New()
	v.SetConfigType("toml")
	if err := v.ReadConfig(strings.NewReader(string(defaultTOML))); err != nil {
		return domain.AnalysisConfig{}, fmt.Errorf("parse embedded default config: %w", err)
	}

	if configPath == "" {
		configPath = discover(targetPath)
	}
	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.MergeInConfig(); err != nil {
			return domain.AnalysisConfig{}, fmt.Errorf("read config file %s: %w", configPath, err)
		}
	}

	v.SetEnvPrefix(constants.EnvVarPrefix)
	v.AutomaticEnv()

	var cfg domain.AnalysisConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return domain.AnalysisConfig{}, fmt.Errorf("unmarshal config: %w", err)
	}
	return cfg, nil
}

// discover walks upward from targetPath (a file or directory) looking for
// constants.ConfigFileName, stopping at the filesystem root.
func discover(targetPath string) string {
	if targetPath == "" {
		targetPath = "."
	}
	abs, err := filepath.Abs(targetPath)
	if err != nil {
		return ""
	}
	if info, err := os.Stat(abs); err == nil && !info.IsDir() {
		abs = filepath.Dir(abs)
	}

	for dir := abs; ; {
		candidate := filepath.Join(dir, constants.ConfigFileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}
