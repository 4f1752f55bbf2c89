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
	"encoding/json"
	"fmt"

	"mssql-mcp/internal/database"
	"mssql-mcp/internal/mcp"
)

// renderJSON pretty-prints a value as a tool text payload. Structured
// results are deliberately double-encoded: the protocol carries exactly one
// text content item, and the text is itself JSON.
func renderJSON(v interface{}) (string, error) {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode result: %w", err)
	}
	return string(out), nil
}

// renderRows renders a result set, substituting the no-results sentinel for
// an empty set
func renderRows(rows []database.Row) (string, error) {
	if len(rows) == 0 {
		return mcp.NoResultsText, nil
	}
	return renderJSON(rows)
}
