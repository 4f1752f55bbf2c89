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

// ListStoredProceduresTool creates the list_stored_procedures tool
func ListStoredProceduresTool(dbClient *database.Client) Tool {
	return Tool{
		Definition: toolDefinition("list_stored_procedures", `List the stored procedures in the connected database.

<usecase>
Use list_stored_procedures to survey the database's procedural surface:
- See every stored procedure, optionally filtered to one schema
- Find a procedure name before fetching its definition
</usecase>

<examples>
✓ list_stored_procedures() → All procedures across all schemas
✓ list_stored_procedures(schema="reporting") → Procedures in one schema
</examples>

<important>
- Procedures are listed only, never executed; EXEC is always rejected
</important>`,
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

			procs, err := dbClient.ListProcedures(context.Background(), schema)
			if err != nil {
				return "", err
			}
			if len(procs) == 0 {
				return mcp.NoResultsText, nil
			}

			names := make([]string, 0, len(procs))
			for _, p := range procs {
				names = append(names, p.Qualified())
			}

			return renderJSON(names)
		},
	}
}
