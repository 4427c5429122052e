// Package app is the use-case layer between cmd/deadroot and the service
// pipeline: it validates input, resolves configuration, and hands the
// project root to service.Analyzer, matching the teacher's
// cmd→app→service→domain layering.
package app

import (
	"context"
	"fmt"
	"os"

	"github.com/deadroot/deadroot/domain"
	"github.com/deadroot/deadroot/internal/config"
	"github.com/deadroot/deadroot/service"
)

// AnalyzeRequest is the input to AnalyzeUseCase.Execute.
type AnalyzeRequest struct {
	// ProjectRoot is the directory to scan.
	ProjectRoot string
	// ConfigPath overrides project-file discovery when non-empty.
	ConfigPath string
	// Progress receives stage-transition events; may be nil.
	Progress domain.ProgressFunc
}

// Validate checks the request is well-formed before any analysis begins.
func (r AnalyzeRequest) Validate() error {
	if r.ProjectRoot == "" {
		return fmt.Errorf("project root must not be empty")
	}
	info, err := os.Stat(r.ProjectRoot)
	if err != nil {
		return fmt.Errorf("project root %q: %w", r.ProjectRoot, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("project root %q is not a directory", r.ProjectRoot)
	}
	return nil
}

// AnalyzeUseCase orchestrates one whole-project reachability scan: load
// configuration, then run the pipeline.
type AnalyzeUseCase struct {
	analyzer *service.Analyzer
}

// NewAnalyzeUseCase creates an AnalyzeUseCase.
func NewAnalyzeUseCase() *AnalyzeUseCase {
	return &AnalyzeUseCase{analyzer: service.NewAnalyzer()}
}

// Execute validates req, loads the effective AnalysisConfig (embedded
// defaults layered with any project .deadroot.toml and environment
// overrides), and returns the assembled report.
func (uc *AnalyzeUseCase) Execute(ctx context.Context, req AnalyzeRequest) (domain.AnalysisReport, error) {
	if err := req.Validate(); err != nil {
		return domain.AnalysisReport{}, err
	}

	cfg, err := config.Load(req.ConfigPath, req.ProjectRoot)
	if err != nil {
		return domain.AnalysisReport{}, fmt.Errorf("load configuration: %w", err)
	}

	return uc.analyzer.Analyze(ctx, req.ProjectRoot, cfg, req.Progress)
}
