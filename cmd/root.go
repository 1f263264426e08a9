// Package cmd holds the fraudsight command-line interface.
package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "fraudsight",
	Short: "Fraud monitoring dashboard backend",
	Long: `FraudSight serves the fraud monitoring dashboard API: it reconciles
flagged transactions against user transaction history, synthesizes stable
pseudo-IP addresses for flagged activity, and exposes the aggregated views
the dashboard renders.`,
}

// Execute runs the root command. Called once from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
