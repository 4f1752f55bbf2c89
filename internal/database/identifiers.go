/*-------------------------------------------------------------------------
 *
 * MSSQL MCP Server
 *
 * Copyright (c) 2025, the mssql-mcp authors
 * This software is released under The PostgreSQL License
 *
 *-------------------------------------------------------------------------
 */

package database

import (
	"strings"
)

// DefaultSchema is assumed for bare object names
const DefaultSchema = "dbo"

// SplitObjectName parses "schema.table" or a bare "table" into a TableRef,
// splitting on the first dot only. Bare names default to the dbo schema.
// The same convention applies to procedure names.
func SplitObjectName(name string) TableRef {
	name = strings.TrimSpace(name)
	if idx := strings.Index(name, "."); idx >= 0 {
		return TableRef{Schema: name[:idx], Name: name[idx+1:]}
	}
	return TableRef{Schema: DefaultSchema, Name: name}
}

// QuoteIdentifier bracket-quotes an identifier for interpolation into
// generated statements. Catalog APIs do not parameterize object names, so
// this is the one place identifiers are string-built; embedded closing
// brackets are escaped by doubling.
func QuoteIdentifier(name string) string {
	return "[" + strings.ReplaceAll(name, "]", "]]") + "]"
}

// QuoteTable bracket-quotes both parts of a qualified table reference
func QuoteTable(ref TableRef) string {
	return QuoteIdentifier(ref.Schema) + "." + QuoteIdentifier(ref.Name)
}
