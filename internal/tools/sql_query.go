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
	"mssql-mcp/internal/logging"
)

// SQLQueryTool creates the sql_query tool for running ad-hoc read-only SQL
func SQLQueryTool(dbClient *database.Client) Tool {
	return Tool{
		Definition: toolDefinition("sql_query", `Execute a read-only SQL query against the connected database.

<usecase>
Use sql_query for ad-hoc data retrieval:
- Run SELECT statements to fetch and filter data
- Run WITH (common table expression) queries for multi-step analysis
- Join tables, aggregate, and sort as needed
</usecase>

<examples>
✓ sql_query(query="SELECT TOP 10 * FROM Orders ORDER BY OrderDate DESC")
✓ sql_query(query="SELECT Country, COUNT(*) AS n FROM Customers GROUP BY Country", max_rows=50)
✓ sql_query(query="WITH recent AS (SELECT * FROM Orders WHERE OrderDate > '2025-01-01') SELECT COUNT(*) AS c FROM recent", timeout_seconds=10)
</examples>

<important>
- Only SELECT and WITH statements are accepted; anything that could modify
  data or schema is rejected before it reaches the server
- Results are capped at max_rows (1-1000, default 1000) and the query is
  cancelled after timeout_seconds (1-60, default 30)
- Results come back as a JSON array of row objects in column order
</important>`,
			map[string]interface{}{
				"query": map[string]interface{}{
					"type":        "string",
					"description": "The SELECT or WITH statement to execute",
				},
				"max_rows": map[string]interface{}{
					"type":        "number",
					"description": "Maximum number of rows to return (1-1000, default: 1000)",
					"default":     database.DefaultRowLimit,
				},
				"timeout_seconds": map[string]interface{}{
					"type":        "number",
					"description": "Query timeout in seconds (1-60, default: 30)",
					"default":     database.DefaultTimeoutSecs,
				},
			},
			[]string{"query"},
		),
		Handler: func(args map[string]interface{}) (string, error) {
			query, err := StringParam(args, "query")
			if err != nil {
				return "", err
			}
			maxRows, err := OptionalIntParam(args, "max_rows", database.DefaultRowLimit)
			if err != nil {
				return "", err
			}
			timeoutSeconds, err := OptionalIntParam(args, "timeout_seconds", database.DefaultTimeoutSecs)
			if err != nil {
				return "", err
			}

			rows, err := dbClient.Execute(context.Background(), query, maxRows, timeoutSeconds)
			if err != nil {
				return "", err
			}

			logging.Info("sql_query_executed", "rows", len(rows))

			return renderRows(rows)
		},
	}
}
