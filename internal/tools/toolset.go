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
	"mssql-mcp/internal/database"
)

// DefaultRegistry builds the registry with the full tool set. Registration
// order is the order tools/list reports, so it is fixed here.
func DefaultRegistry(dbClient *database.Client) *Registry {
	registry := NewRegistry()

	for _, tool := range []Tool{
		ConnectDatabaseTool(dbClient),
		SQLQueryTool(dbClient),
		ListTablesTool(dbClient),
		DescribeTableTool(dbClient),
		PreviewTableTool(dbClient),
		ListStoredProceduresTool(dbClient),
		GetProcedureDefinitionTool(dbClient),
		ListForeignKeysTool(dbClient),
		ColumnStatisticsTool(dbClient),
		SchemaOverviewTool(dbClient),
		NaturalQueryTool(dbClient),
		ServerInfoTool(dbClient),
	} {
		registry.Register(tool.Definition.Name, tool)
	}

	return registry
}
