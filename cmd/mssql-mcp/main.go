/*-------------------------------------------------------------------------
 *
 * MSSQL MCP Server
 *
 * Copyright (c) 2025, the mssql-mcp authors
 * This software is released under The PostgreSQL License
 *
 *-------------------------------------------------------------------------
 */

package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"mssql-mcp/internal/config"
	"mssql-mcp/internal/database"
	"mssql-mcp/internal/logging"
	"mssql-mcp/internal/mcp"
	"mssql-mcp/internal/tools"
)

var configFile string

var rootCmd = &cobra.Command{
	Use:   "mssql-mcp",
	Short: "MCP server exposing read-only SQL Server access over stdio",
	Long: `mssql-mcp speaks the Model Context Protocol over stdin/stdout and gives
an AI assistant guarded access to a SQL Server database: ad-hoc read-only
queries, schema exploration, and a simple natural-language query heuristic.
Every statement passes a read-only safety check and runs under row and
time ceilings; nothing that could modify data or schema ever reaches the
server.`,
	RunE: run,
}

func init() {
	rootCmd.Flags().StringVarP(&configFile, "config", "c", "",
		"Path to configuration file")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true

	// Optional .env file; environment variables win over the config file
	_ = godotenv.Load()

	cfg, err := config.Load(configFile)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if cfg.LogLevel != "" {
		logging.SetLevel(logging.ParseLevel(cfg.LogLevel))
	}

	dbClient := database.NewClient()
	defer dbClient.Close()

	connect := func(c *config.Config) {
		connCfg := database.ConnectionConfig{
			Server:   c.Database.Server,
			Port:     c.Database.Port,
			Database: c.Database.Database,
			User:     c.Database.User,
			Password: c.Database.Password,
			Encrypt:  c.Database.Encrypt,
		}
		if err := dbClient.Configure(connCfg); err != nil {
			logging.Error("initial_connect_failed", "target", connCfg.Redacted(), "error", err.Error())
		}
	}

	// Connect eagerly in the background when the config carries connection
	// settings; otherwise the connect_database tool does it on demand.
	if cfg.HasConnection() {
		go connect(cfg)
	}

	if configFile != "" {
		watcher, err := config.NewFileWatcher(configFile, func() error {
			reloaded, err := config.Load(configFile)
			if err != nil {
				return err
			}
			if reloaded.LogLevel != "" {
				logging.SetLevel(logging.ParseLevel(reloaded.LogLevel))
			}
			if reloaded.HasConnection() {
				connect(reloaded)
			}
			return nil
		})
		if err != nil {
			logging.Warn("config_watch_unavailable", "path", configFile, "error", err.Error())
		} else {
			watcher.Start()
			defer watcher.Stop()
		}
	}

	registry := tools.DefaultRegistry(dbClient)

	server := mcp.NewServer(registry)
	if err := server.Run(); err != nil {
		return fmt.Errorf("server error: %w", err)
	}

	return nil
}
