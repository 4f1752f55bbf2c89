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

// GetProcedureDefinitionTool creates the get_procedure_definition tool
func GetProcedureDefinitionTool(dbClient *database.Client) Tool {
	return Tool{
		Definition: toolDefinition("get_procedure_definition", `Fetch the T-SQL source of a stored procedure.

<usecase>
Use get_procedure_definition to understand what a procedure does:
- Read its full CREATE PROCEDURE text
- Reconstruct business logic as read-only SELECT queries
</usecase>

<examples>
✓ get_procedure_definition(procedure="usp_GetOrders")
✓ get_procedure_definition(procedure="reporting.usp_MonthlySummary")
</examples>

<important>
- The definition is returned for reading only; this server never executes
  procedures
- An unknown or encrypted procedure returns a "not found" message
</important>`,
			map[string]interface{}{
				"procedure": map[string]interface{}{
					"type":        "string",
					"description": "Procedure name, optionally schema-qualified (schema.procedure)",
				},
			},
			[]string{"procedure"},
		),
		Handler: func(args map[string]interface{}) (string, error) {
			procedure, err := StringParam(args, "procedure")
			if err != nil {
				return "", err
			}

			ref := database.SplitObjectName(procedure)
			definition, err := dbClient.ProcedureDefinition(context.Background(), ref)
			if err != nil {
				return "", err
			}
			if definition == "" {
				return fmt.Sprintf("procedure not found: %s", ref.Qualified()), nil
			}

			return definition, nil
		},
	}
}
