/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aheien/tbvec/pkg/config"
)

// initCmd represents the init command
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Bootstrap the tbvec configuration",
	Long: `Create the tbvec configuration file with a generated API key.

This command will:
- Create the configuration directory if needed
- Generate a secure API key for the REST server
- Write the configuration file with restrictive permissions

Examples:
  tbvec init
  tbvec init --data-dir ./mydata --config ./tbvec.yaml
  tbvec init --force --print-key`,
	RunE: func(cmd *cobra.Command, args []string) error {
		dataDir, _ := cmd.Flags().GetString("data-dir")
		configPath, _ := cmd.Flags().GetString("config")
		force, _ := cmd.Flags().GetBool("force")
		printKey, _ := cmd.Flags().GetBool("print-key")

		if configPath == "" {
			configPath = config.GetDefaultConfigPath()
		}

		if config.ConfigExists(configPath) && !force {
			cmd.Printf("Configuration already exists at %s. Use --force to recreate.\n", configPath)
			return nil
		}

		cfg, err := config.BootstrapConfig(configPath, dataDir)
		if err != nil {
			return fmt.Errorf("failed to bootstrap config: %w", err)
		}

		cmd.Printf("✅ Configuration created at %s\n", configPath)
		cmd.Printf("📁 Data directory: %s\n", cfg.DataDir)

		if printKey {
			cmd.Printf("\n🔑 API key: %s\n", cfg.Security.APIKey)
			cmd.Printf("⚠️  Store this key securely! It is also saved in %s\n", configPath)
		}

		cmd.Printf("\nYou can now start the server with:\n")
		cmd.Printf("  tbvec serve --config %s\n", configPath)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd)

	initCmd.Flags().StringP("data-dir", "d", "./data", "Data directory for the run journal")
	initCmd.Flags().String("config", "", "Path to config file (default: OS-specific location)")
	initCmd.Flags().Bool("force", false, "Recreate the configuration even if it already exists")
	initCmd.Flags().Bool("print-key", false, "Print the generated API key to console")
}
