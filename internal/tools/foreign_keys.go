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

// ListForeignKeysTool creates the list_foreign_keys tool
func ListForeignKeysTool(dbClient *database.Client) Tool {
	return Tool{
		Definition: toolDefinition("list_foreign_keys", `List the foreign-key relationships of a table, in both directions.

<usecase>
Use list_foreign_keys to map how a table connects to the rest of the schema:
- Find the tables this table references (outbound keys)
- Find the tables that reference this table (inbound keys)
- Plan JOIN clauses from the actual declared relationships
</usecase>

<examples>
✓ list_foreign_keys(table="Orders") → e.g. outbound to Customers, inbound from OrderDetails
✓ list_foreign_keys(table="sales.Invoices")
</examples>

<important>
- Each relationship is tagged with its direction: "outbound" (this table
  references another) or "inbound" (another table references this one)
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
			fks, err := dbClient.ListForeignKeys(context.Background(), ref)
			if err != nil {
				return "", err
			}
			if len(fks) == 0 {
				return mcp.NoResultsText, nil
			}

			return renderJSON(fks)
		},
	}
}
