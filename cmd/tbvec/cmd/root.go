/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/aheien/tbvec/pkg/di"
	"github.com/aheien/tbvec/pkg/logging"
)

// container holds the application dependencies, injected from main
var container *di.Container

// SetContainer injects the dependency container. Must be called before Execute.
func SetContainer(c *di.Container) {
	container = c
}

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "tbvec",
	Short: "tbvec - testbench vector toolkit",
	Long: `tbvec converts between plain text and the binary-text vector format
used to drive a simulated hardware interface, and validates reconstructed
messages with a rolling checksum.

Each text line becomes a length announcement record followed by one data
record per byte; decoding reassembles the framed messages and reports a
checksum for each.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level, _ := cmd.Flags().GetString("log-level")
		logging.New("tbvec", level)
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	// Global logging flag
	rootCmd.PersistentFlags().String("log-level", "info", "Log level (trace, debug, info, warn, error)")
}
