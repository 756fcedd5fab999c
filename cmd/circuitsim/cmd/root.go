package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "circuitsim",
	Short: "circuitsim - schematic circuit analysis",
	Long: `circuitsim runs the analysis engine of the schematic editor against a
saved schematic file.

Examples:
  circuitsim dc circuit.json                          # DC operating point
  circuitsim ac circuit.json --start 1 --stop 1e6     # AC sweep
  circuitsim tran circuit.json --tstop 1e-3           # transient run`,
	Version: "0.1.0",
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
