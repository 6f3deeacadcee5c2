// Package cli implements the Curie command-line interface using Cobra.
// Each subcommand maps to one pipeline operation (evaluate, allocate,
// record, leaderboard, etc.).
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "curie",
	Short: "Curie — contribution evaluation and reward recognition",
	Long: `Curie scores contributed research artifacts, converts scores into
epoch-based token rewards, and maintains durable recognition state
(badges, priority ranking, legacy status) per contributor.`,
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
