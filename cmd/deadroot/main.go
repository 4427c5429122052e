package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/deadroot/deadroot/internal/version"
)

func main() {
	rootCmd := &cobra.Command{
		Use:     "deadroot",
		Short:   "deadroot - whole-project dead-code reachability analyzer",
		Long:    `deadroot walks a project, builds its module graph, and reports files and exports no entry point can reach.`,
		Version: version.GetVersion(),
	}

	rootCmd.AddCommand(scanCmd())
	rootCmd.AddCommand(initCmd())
	rootCmd.AddCommand(versionCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func versionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			verbose, _ := cmd.Flags().GetBool("verbose")
			if verbose {
				fmt.Println(version.GetFullVersion())
			} else {
				fmt.Printf("deadroot version %s\n", version.GetVersion())
			}
		},
	}
	cmd.Flags().BoolP("verbose", "v", false, "Show detailed version information")
	return cmd
}
