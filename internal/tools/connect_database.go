/*-------------------------------------------------------------------------
 *
 * MSSQL MCP Server
 *
 * Copyright (c) 2025, the mssql-mcp authors
 * This software is released under The PostgreSQL License
 *
 *-------------------------------------------------------------------------
 */

package tools

import (
	"fmt"

	"mssql-mcp/internal/config"
	"mssql-mcp/internal/database"
	"mssql-mcp/internal/logging"
)

// ConnectDatabaseTool creates the connect_database tool
func ConnectDatabaseTool(dbClient *database.Client) Tool {
	return Tool{
		Definition: toolDefinition("connect_database", `Connect to a SQL Server instance.

<usecase>
Use connect_database to establish or replace the server's database
connection:
- Connect to a database when no connection was configured at startup
- Switch to a different server, database, or login mid-session
</usecase>

<examples>
✓ connect_database(server="db.example.com", user="reader", password="...")
✓ connect_database(server="localhost", port=1433, database="Northwind", user="sa", password="...")
</examples>

<important>
- The connection is verified with a ping before it replaces the current one
- All other database tools fail until a connection has been configured
- Only read-only SELECT/WITH queries are ever executed over this connection
</important>`,
			map[string]interface{}{
				"server": map[string]interface{}{
					"type":        "string",
					"description": "Hostname or IP address of the SQL Server instance",
				},
				"port": map[string]interface{}{
					"type":        "number",
					"description": "TCP port (default: 1433)",
					"default":     config.DefaultPort,
				},
				"database": map[string]interface{}{
					"type":        "string",
					"description": "Database name (default: master)",
					"default":     config.DefaultDatabase,
				},
				"user": map[string]interface{}{
					"type":        "string",
					"description": "SQL Server login name",
				},
				"password": map[string]interface{}{
					"type":        "string",
					"description": "Password for the login",
				},
				"encrypt": map[string]interface{}{
					"type":        "string",
					"description": "Connection encryption mode: disable, false, or true (default: disable)",
					"default":     config.DefaultEncrypt,
				},
			},
			[]string{"server", "user"},
		),
		Handler: func(args map[string]interface{}) (string, error) {
			server, err := StringParam(args, "server")
			if err != nil {
				return "", err
			}
			user, err := StringParam(args, "user")
			if err != nil {
				return "", err
			}
			port, err := OptionalIntParam(args, "port", config.DefaultPort)
			if err != nil {
				return "", err
			}
			dbName, err := OptionalStringParam(args, "database", config.DefaultDatabase)
			if err != nil {
				return "", err
			}
			password, err := OptionalStringParam(args, "password", "")
			if err != nil {
				return "", err
			}
			encrypt, err := OptionalStringParam(args, "encrypt", config.DefaultEncrypt)
			if err != nil {
				return "", err
			}

			cfg := database.ConnectionConfig{
				Server:   server,
				Port:     port,
				Database: dbName,
				User:     user,
				Password: password,
				Encrypt:  encrypt,
			}

			if err := dbClient.Configure(cfg); err != nil {
				return "", fmt.Errorf("failed to connect: %w", err)
			}

			logging.Info("database_connected", "target", cfg.Redacted())

			return fmt.Sprintf("Connected to %s", cfg.Redacted()), nil
		},
	}
}
