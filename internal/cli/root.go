// Package cli implements the Tempo command-line interface using Cobra.
// Each subcommand maps to a tracker capability (log, goal, stats, ...).
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "tempo",
	Short: "Tempo — local-first focus tracker",
	Long: `Tempo tracks your focus sessions and goals on-device.
Log sessions, keep streaks alive, and unlock achievements.
All data stays in ~/.tempo — zero network, zero accounts.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command. Called from main.go.
func Execute(version string) {
	rootCmd.Version = version

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
