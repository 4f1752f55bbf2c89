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

// SchemaOverviewTool creates the schema_overview tool
func SchemaOverviewTool(dbClient *database.Client) Tool {
	return Tool{
		Definition: toolDefinition("schema_overview", `Get a complete overview of the database schema in one call.

<usecase>
Use schema_overview to load the whole schema at once:
- Every table with all of its columns
- Every foreign-key relationship, attached to its table
- Keyed by qualified table name (schema.table)
</usecase>

<examples>
✓ schema_overview() → {"dbo.Orders": {columns: [...], foreignKeys: [...]}, ...}
</examples>

<important>
- Large schemas produce large payloads; prefer list_tables plus
  describe_table when you only need a few tables
</important>`,
			map[string]interface{}{},
			nil,
		),
		Handler: func(args map[string]interface{}) (string, error) {
			overview, err := dbClient.SchemaOverview(context.Background())
			if err != nil {
				return "", err
			}
			if len(overview) == 0 {
				return mcp.NoResultsText, nil
			}

			return renderJSON(overview)
		},
	}
}
