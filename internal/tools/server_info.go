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
	"context"
	"fmt"

	"mssql-mcp/internal/database"
)

// ServerInfoTool creates the server_info tool
func ServerInfoTool(dbClient *database.Client) Tool {
	return Tool{
		Definition: toolDefinition("server_info",
			"Get information about the connected SQL Server instance: version, current database, and login.",
			map[string]interface{}{},
			nil,
		),
		Handler: func(args map[string]interface{}) (string, error) {
			const query = "SELECT @@VERSION AS [version], DB_NAME() AS [database], SYSTEM_USER AS [login]"

			rows, err := dbClient.Execute(context.Background(), query, 1, database.DefaultTimeoutSecs)
			if err != nil {
				return "", err
			}
			if len(rows) == 0 {
				return "", fmt.Errorf("server returned no information")
			}

			return renderJSON(rows[0])
		},
	}
}
