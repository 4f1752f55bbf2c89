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

// DescribeTableTool creates the describe_table tool
func DescribeTableTool(dbClient *database.Client) Tool {
	return Tool{
		Definition: toolDefinition("describe_table", `Describe the columns of a table.

<usecase>
Use describe_table before writing queries against an unfamiliar table:
- See every column with its data type, nullability, and maximum length
- Confirm exact column names and spellings
</usecase>

<examples>
✓ describe_table(table="Orders") → Columns of dbo.Orders
✓ describe_table(table="sales.Invoices") → Columns of sales.Invoices
</examples>

<important>
- Bare table names default to the dbo schema
- An unknown table returns a "not found" message, not an error
</important>`,
			map[string]interface{}{
				"table": map[string]interface{}{
					"type":        "string",
					"description": "Table name, optionally schema-qualified (schema.table)",
				},
			},
			[]string{"table"},
		),
		Handler: func(args map[string]interface{}) (string, error) {
			table, err := StringParam(args, "table")
			if err != nil {
				return "", err
			}

			ref := database.SplitObjectName(table)
			columns, err := dbClient.DescribeTable(context.Background(), ref)
			if err != nil {
				return "", err
			}
			if len(columns) == 0 {
				return fmt.Sprintf("table not found: %s", ref.Qualified()), nil
			}

			return renderJSON(columns)
		},
	}
}
