/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/aheien/tbvec/pkg/api"
	"github.com/aheien/tbvec/pkg/config"
	"github.com/aheien/tbvec/pkg/logging"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long: `Start the tbvec REST API server.

The server exposes the encode, decode, and hash pipeline over HTTP and
records decode and hash runs in the journal. All /api/v1 routes require
the configured X-API-Key header; /metrics is open for Prometheus scraping.

Examples:
  tbvec serve
  tbvec serve --config ./tbvec.yaml
  tbvec serve --port 9000 --api-key mysecretkey --no-journal`,
	RunE: func(cmd *cobra.Command, args []string) error {
		configPath, _ := cmd.Flags().GetString("config")
		if configPath == "" {
			configPath = config.GetDefaultConfigPath()
		}

		cfg := config.DefaultConfig()
		if config.ConfigExists(configPath) {
			loaded, err := config.LoadConfig(configPath)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			cfg = loaded
		}

		// Command line flags override the config file
		if cmd.Flags().Changed("port") {
			cfg.Port, _ = cmd.Flags().GetInt("port")
		}
		if cmd.Flags().Changed("bind") {
			cfg.Bind, _ = cmd.Flags().GetString("bind")
		}
		if cmd.Flags().Changed("data-dir") {
			cfg.DataDir, _ = cmd.Flags().GetString("data-dir")
		}
		if cmd.Flags().Changed("api-key") {
			cfg.Security.APIKey, _ = cmd.Flags().GetString("api-key")
		}

		if cfg.Security.APIKey == "" || cfg.Security.APIKey == "auto" {
			return fmt.Errorf("no API key configured: run 'tbvec init' first or pass --api-key")
		}

		// The config file's log level applies unless --log-level was given
		logger := log.Logger
		if !cmd.Flags().Changed("log-level") {
			logger = logging.New("tbvec", cfg.Logging.Level)
		}

		if container == nil {
			return fmt.Errorf("dependency container not initialized")
		}

		noJournal, _ := cmd.Flags().GetBool("no-journal")
		var recorder api.Recorder
		if !noJournal {
			j, err := container.GetJournalOpener()(filepath.Join(cfg.DataDir, "journal"))
			if err != nil {
				return fmt.Errorf("failed to open journal: %w", err)
			}
			defer j.Close()
			recorder = j
		}

		serverConfig := api.ServerConfig{
			Port:          cfg.Port,
			Bind:          cfg.Bind,
			APIKey:        cfg.Security.APIKey,
			CommentPrefix: cfg.CommentPrefix,
		}

		starter := container.GetServerFactory().CreateServerStarter()
		return starter.StartServer(recorder, serverConfig, logger)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("config", "", "Path to config file (default: OS-specific location)")
	serveCmd.Flags().IntP("port", "p", 8080, "Port to listen on")
	serveCmd.Flags().String("bind", "127.0.0.1", "Address to bind the server to")
	serveCmd.Flags().StringP("data-dir", "d", "./data", "Data directory for the run journal")
	serveCmd.Flags().String("api-key", "", "API key for request authentication")
	serveCmd.Flags().Bool("no-journal", false, "Disable run journaling")
}
