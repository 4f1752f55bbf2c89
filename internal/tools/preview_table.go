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

// Preview fetches a small slice by default; the executor ceiling still
// applies when callers ask for more.
const defaultPreviewRows = 100

// PreviewTableTool creates the preview_table tool
func PreviewTableTool(dbClient *database.Client) Tool {
	return Tool{
		Definition: toolDefinition("preview_table", `Fetch a sample of rows from a table.

<usecase>
Use preview_table to eyeball real data before writing queries:
- Check what values a column actually holds
- Verify data shape after describe_table
</usecase>

<examples>
✓ preview_table(table="Customers") → First 100 rows of dbo.Customers
✓ preview_table(table="sales.Invoices", max_rows=10) → First 10 rows
</examples>

<important>
- Rows come back in storage order; add ORDER BY via sql_query when order matters
- max_rows is clamped to 1-1000 (default: 100)
</important>`,
			map[string]interface{}{
				"table": map[string]interface{}{
					"type":        "string",
					"description": "Table name, optionally schema-qualified (schema.table)",
				},
				"max_rows": map[string]interface{}{
					"type":        "number",
					"description": "Maximum number of rows to return (1-1000, default: 100)",
					"default":     defaultPreviewRows,
				},
			},
			[]string{"table"},
		),
		Handler: func(args map[string]interface{}) (string, error) {
			table, err := StringParam(args, "table")
			if err != nil {
				return "", err
			}
			maxRows, err := OptionalIntParam(args, "max_rows", defaultPreviewRows)
			if err != nil {
				return "", err
			}
			if maxRows <= 0 {
				maxRows = defaultPreviewRows
			}
			maxRows = database.ClampMaxRows(maxRows)

			ref := database.SplitObjectName(table)
			query := fmt.Sprintf("SELECT TOP %d * FROM %s", maxRows, database.QuoteTable(ref))

			rows, err := dbClient.Execute(context.Background(), query, maxRows, database.DefaultTimeoutSecs)
			if err != nil {
				return "", err
			}

			return renderRows(rows)
		},
	}
}
