/*-------------------------------------------------------------------------
 *
 * MSSQL MCP Server
 *
 * Copyright (c) 2025, the mssql-mcp authors
 * This software is released under The PostgreSQL License
 *
 *-------------------------------------------------------------------------
 */

package mcp

// NewToolText wraps a string as the single text content item every tool
// success payload carries
func NewToolText(text string) ToolResponse {
	return ToolResponse{
		Content: []ContentItem{
			{
				Type: "text",
				Text: text,
			},
		},
	}
}

// NoResultsText is the distinguished payload for a query that ran
// successfully but produced zero rows
const NoResultsText = "(no results)"
