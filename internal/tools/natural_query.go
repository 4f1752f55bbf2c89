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
	"strings"

	"mssql-mcp/internal/database"
	"mssql-mcp/internal/logging"
	"mssql-mcp/internal/nlsql"
)

// NaturalQueryTool creates the natural_query tool
func NaturalQueryTool(dbClient *database.Client) Tool {
	return Tool{
		Definition: toolDefinition("natural_query", `Turn a plain-language question into a SQL query.

<usecase>
Use natural_query for quick exploration when you don't know the schema yet:
- Mention a table name in the question and get a SELECT over it
- Inspect the generated SQL before running it, or execute directly
</usecase>

<examples>
✓ natural_query(question="show me the orders") → Generated SELECT over Orders
✓ natural_query(question="list customers", limit=20, execute=true) → SQL plus results
</examples>

<important>
- This is a simple keyword heuristic, not a language model: it matches table
  names mentioned in the question and selects the first columns
- Generated SQL passes through the same read-only guard as sql_query
- Default limit is 100 rows, clamped to 1-1000
</important>`,
			map[string]interface{}{
				"question": map[string]interface{}{
					"type":        "string",
					"description": "A plain-language question, ideally mentioning a table name",
				},
				"limit": map[string]interface{}{
					"type":        "number",
					"description": "Maximum number of rows to select (1-1000, default: 100)",
					"default":     nlsql.DefaultLimit,
				},
				"execute": map[string]interface{}{
					"type":        "boolean",
					"description": "Execute the generated SQL and include its results (default: false)",
					"default":     false,
				},
			},
			[]string{"question"},
		),
		Handler: func(args map[string]interface{}) (string, error) {
			question, err := StringParam(args, "question")
			if err != nil {
				return "", err
			}
			limit, err := OptionalIntParam(args, "limit", nlsql.DefaultLimit)
			if err != nil {
				return "", err
			}
			execute, err := OptionalBoolParam(args, "execute", false)
			if err != nil {
				return "", err
			}

			tables, err := dbClient.AllColumns(context.Background())
			if err != nil {
				return "", err
			}

			query, err := nlsql.Generate(tables, question, limit)
			if err != nil {
				return "", err
			}

			// Generate only emits SELECT TOP ... statements, but the guard
			// has the final word on anything headed for the server.
			if !database.IsReadOnly(query) {
				return "", fmt.Errorf("generated statement failed the read-only check: %s", query)
			}

			logging.Info("natural_query_generated", "execute", execute)

			var sb strings.Builder
			sb.WriteString("SQL:\n")
			sb.WriteString(query)

			if execute {
				rows, err := dbClient.Execute(context.Background(), query, limit, database.DefaultTimeoutSecs)
				if err != nil {
					return "", err
				}
				results, err := renderRows(rows)
				if err != nil {
					return "", err
				}
				sb.WriteString("\n\nResults:\n")
				sb.WriteString(results)
			}

			return sb.String(), nil
		},
	}
}
