// Package cmd holds the CLI. The commands are a thin wrapper over the app
// service; all decision logic lives in core.
package cmd

import (
	"github.com/spf13/cobra"
)

var cfgPath string

var rootCmd = &cobra.Command{
	Use:   "pitchstream",
	Short: "Streaming pitcher decision engine",
	Long: "pitchstream allocates a weekly budget of roster adds across candidate\n" +
		"starting pitchers, balancing blowup risk, snipe risk and slot capacity.",
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "config.yaml", "configuration file")
}

// Execute runs the CLI.
func Execute() error { return rootCmd.Execute() }
