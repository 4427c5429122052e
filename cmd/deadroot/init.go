package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/manifoldco/promptui"
	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"

	"github.com/deadroot/deadroot/internal/config"
	"github.com/deadroot/deadroot/internal/constants"
)

func initCmd() *cobra.Command {
	var force, interactive bool
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Generate a deadroot configuration file",
		Long: `Generate a documented deadroot configuration file with sensible defaults.

By default, creates .deadroot.toml in the current directory. Use
--interactive for a guided setup wizard that asks a couple of questions
before writing the file.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit(force, interactive)
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite an existing config file")
	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "Interactive setup wizard")
	return cmd
}

func runInit(force, interactive bool) error {
	if _, err := os.Stat(constants.ConfigFileName); err == nil && !force {
		return fmt.Errorf("%s already exists; use --force to overwrite", constants.ConfigFileName)
	}

	body := config.Scaffold()
	if interactive {
		overridden, err := runInitWizard(body)
		if err != nil {
			return err
		}
		body = overridden
	}

	if err := os.WriteFile(constants.ConfigFileName, body, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", constants.ConfigFileName, err)
	}
	fmt.Printf("Wrote %s\n", constants.ConfigFileName)
	return nil
}

// runInitWizard asks a handful of questions about the project and merges
// the answers into the embedded defaults, decoded into a generic document
// so a couple of user choices can override specific keys without producing
// a TOML file with duplicate top-level keys.
func runInitWizard(base []byte) ([]byte, error) {
	var doc map[string]interface{}
	if err := toml.Unmarshal(base, &doc); err != nil {
		return nil, fmt.Errorf("parse scaffold: %w", err)
	}

	dynamicPrompt := promptui.Select{
		Label: "Does this project load plugins/modules dynamically (e.g. a plugins/ or scripts/ directory)?",
		Items: []string{"No", "Yes"},
	}
	_, dynamicAnswer, err := dynamicPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("wizard cancelled: %w", err)
	}
	if dynamicAnswer == "Yes" {
		doc["dynamicPatterns"] = []string{"**/plugins/**", "**/scripts/**"}
	}

	sizePrompt := promptui.Prompt{
		Label:   "Max file size to analyze, in bytes",
		Default: "2097152",
		Validate: func(s string) error {
			if n, err := strconv.ParseInt(s, 10, 64); err != nil || n <= 0 {
				return fmt.Errorf("must be a positive integer")
			}
			return nil
		},
	}
	maxBytesStr, err := sizePrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("wizard cancelled: %w", err)
	}
	maxBytes, _ := strconv.ParseInt(maxBytesStr, 10, 64)
	doc["maxFileBytes"] = maxBytes

	return toml.Marshal(doc)
}
