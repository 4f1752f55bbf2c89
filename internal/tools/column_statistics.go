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

// ColumnStatisticsTool creates the column_statistics tool
func ColumnStatisticsTool(dbClient *database.Client) Tool {
	return Tool{
		Definition: toolDefinition("column_statistics", `Compute per-column statistics for a table.

<usecase>
Use column_statistics to profile a table's contents without fetching rows:
- Row count and null count for every column
- Min, max, and average for numeric columns
- Distinct-value count for non-numeric columns
</usecase>

<examples>
✓ column_statistics(table="Orders")
✓ column_statistics(table="sales.Invoices")
</examples>

<important>
- Scans the whole table once per column; can be slow on very large tables
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
			stats, err := dbClient.ColumnStatistics(context.Background(), ref)
			if err != nil {
				return "", err
			}
			if len(stats) == 0 {
				return fmt.Sprintf("table not found: %s", ref.Qualified()), nil
			}

			return renderJSON(stats)
		},
	}
}
