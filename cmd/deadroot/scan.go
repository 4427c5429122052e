package main

import (
	"encoding/json"
	"fmt"
	"os"
	"os/signal"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/deadroot/deadroot/app"
	"github.com/deadroot/deadroot/domain"
)

var (
	scanConfigPath string
	scanOutputPath string
	scanQuiet      bool
)

func scanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scan [path]",
		Short: "Scan a project and report unreachable files and exports",
		Long: `scan walks the project at path (default: current directory), parses every
source file, resolves imports, builds the module graph, seeds entry points,
and reports every file or export no entry point can reach.

The report is printed as JSON, matching the analysis report schema.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runScan,
	}

	cmd.Flags().StringVarP(&scanConfigPath, "config", "c", "", "Path to a .deadroot.toml config file (default: discovered from the project root)")
	cmd.Flags().StringVarP(&scanOutputPath, "output", "o", "", "Write the JSON report here instead of stdout")
	cmd.Flags().BoolVarP(&scanQuiet, "quiet", "q", false, "Suppress the progress bar")

	return cmd
}

func runScan(cmd *cobra.Command, args []string) error {
	root := "."
	if len(args) == 1 {
		root = args[0]
	}

	ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer cancel()

	var bar *progressbar.ProgressBar
	progress := func(e domain.ProgressEvent) {
		if scanQuiet {
			return
		}
		switch e.Phase {
		case domain.PhaseParse:
			if bar == nil && e.Total > 0 {
				bar = progressbar.NewOptions(e.Total,
					progressbar.OptionSetWriter(os.Stderr),
					progressbar.OptionSetDescription("parsing"),
					progressbar.OptionShowCount(),
				)
			}
			if bar != nil && e.Current > 0 {
				_ = bar.Set(e.Current)
			}
		case domain.PhaseAssemble:
			if bar != nil {
				_ = bar.Finish()
			}
		default:
			fmt.Fprintf(os.Stderr, "%s\n", e.Phase)
		}
	}

	uc := app.NewAnalyzeUseCase()
	report, err := uc.Execute(ctx, app.AnalyzeRequest{ProjectRoot: root, ConfigPath: scanConfigPath, Progress: progress})
	if err != nil {
		return err
	}

	out := os.Stdout
	if scanOutputPath != "" {
		f, err := os.Create(scanOutputPath)
		if err != nil {
			return fmt.Errorf("create output file: %w", err)
		}
		defer f.Close()
		out = f
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(report); err != nil {
		return fmt.Errorf("encode report: %w", err)
	}

	if report.Cancelled {
		return fmt.Errorf("scan was cancelled; report is partial")
	}
	return nil
}
