/*-------------------------------------------------------------------------
 *
 * MSSQL MCP Server
 *
 * Copyright (c) 2025, the mssql-mcp authors
 * This software is released under The PostgreSQL License
 *
 *-------------------------------------------------------------------------
 */

// Package nlsql turns a free-text question into a candidate SELECT
// statement by matching question tokens against table names. It is a
// deliberately naive token heuristic, not natural-language understanding:
// the generated statement is meant to be inspected, and it always passes
// through the read-only guard before execution.
package nlsql

import (
	"fmt"
	"strings"
	"unicode"

	"mssql-mcp/internal/database"
)

const (
	// MaxColumns caps how many columns the generated SELECT projects
	MaxColumns = 8

	// DefaultLimit is the TOP value when the caller does not supply one
	DefaultLimit = 100

	// MaxLimit is the ceiling for the TOP value
	MaxLimit = 1000
)

// ClampLimit resolves a requested row limit into [1, MaxLimit]
func ClampLimit(requested int) int {
	if requested <= 0 {
		return DefaultLimit
	}
	if requested > MaxLimit {
		return MaxLimit
	}
	return requested
}

// Tokenize lowercases a question and splits it on whitespace and common
// punctuation. Underscores survive so table names like order_items match.
func Tokenize(question string) []string {
	lower := strings.ToLower(question)
	return strings.FieldsFunc(lower, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_'
	})
}

// PickTable chooses the candidate table for a question: the first table in
// catalog order whose unqualified lowercased name appears among the
// question tokens, falling back to the first table when nothing matches.
// The boolean reports whether an actual token match occurred.
func PickTable(tables []database.TableColumns, question string) (database.TableColumns, bool) {
	tokens := Tokenize(question)
	tokenSet := make(map[string]bool, len(tokens))
	for _, tok := range tokens {
		tokenSet[tok] = true
	}

	for _, t := range tables {
		if tokenSet[strings.ToLower(t.Table.Name)] {
			return t, true
		}
	}

	if len(tables) > 0 {
		return tables[0], false
	}
	return database.TableColumns{}, false
}

// Generate emits a TOP-limited SELECT against the table the question most
// plausibly refers to. The caller is expected to re-check the statement
// with the read-only guard; by construction it should always pass.
func Generate(tables []database.TableColumns, question string, limit int) (string, error) {
	if len(tables) == 0 {
		return "", fmt.Errorf("no tables available to build a query from")
	}

	candidate, _ := PickTable(tables, question)
	if len(candidate.Columns) == 0 {
		return "", fmt.Errorf("table %s has no columns", candidate.Table.Qualified())
	}

	n := len(candidate.Columns)
	if n > MaxColumns {
		n = MaxColumns
	}
	quoted := make([]string, n)
	for i := 0; i < n; i++ {
		quoted[i] = database.QuoteIdentifier(candidate.Columns[i].ColumnName)
	}

	return fmt.Sprintf("SELECT TOP %d %s FROM %s",
		ClampLimit(limit),
		strings.Join(quoted, ", "),
		database.QuoteTable(candidate.Table)), nil
}
