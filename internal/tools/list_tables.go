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

	"mssql-mcp/internal/database"
	"mssql-mcp/internal/mcp"
)

// ListTablesTool creates the list_tables tool
func ListTablesTool(dbClient *database.Client) Tool {
	return Tool{
		Definition: toolDefinition("list_tables", `List the user tables in the connected database.

<usecase>
Use list_tables to discover what data is available:
- See every base table, optionally filtered to one schema
- Find the right table name before describing or querying it
</usecase>

<examples>
✓ list_tables() → All tables across all schemas
✓ list_tables(schema="sales") → Tables in the sales schema only
</examples>`,
			map[string]interface{}{
				"schema": map[string]interface{}{
					"type":        "string",
					"description": "Optional schema name to filter by",
				},
			},
			nil,
		),
		Handler: func(args map[string]interface{}) (string, error) {
			schema, err := OptionalStringParam(args, "schema", "")
			if err != nil {
				return "", err
			}

			tables, err := dbClient.ListTables(context.Background(), schema)
			if err != nil {
				return "", err
			}
			if len(tables) == 0 {
				return mcp.NoResultsText, nil
			}

			names := make([]string, 0, len(tables))
			for _, t := range tables {
				names = append(names, t.Qualified())
			}

			return renderJSON(names)
		},
	}
}
