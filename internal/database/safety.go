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

// deniedKeywords is a substring denylist, not a tokenizer. A match anywhere
// in the statement rejects it, even inside string literals or identifiers.
// Over-rejection is acceptable; letting a mutating statement through is not.
var deniedKeywords = []string{
	"INSERT",
	"UPDATE",
	"DELETE",
	"MERGE",
	"EXEC",
	"EXECUTE",
	"CREATE",
	"ALTER",
	"DROP",
	"TRUNCATE",
	"GRANT",
	"REVOKE",
	"DENY",
	"BACKUP",
	"RESTORE",
	"DBCC",
}

// StripComments removes SQL comments from a statement: each line is
// truncated at the first "--", then every /* ... */ span is removed. An
// unterminated /* truncates the statement at the opening marker (fail
// closed). The result is trimmed. Stripping is idempotent.
func StripComments(sql string) string {
	lines := strings.Split(sql, "\n")
	for i, line := range lines {
		if idx := strings.Index(line, "--"); idx >= 0 {
			lines[i] = line[:idx]
		}
	}
	out := strings.Join(lines, "\n")

	for {
		start := strings.Index(out, "/*")
		if start < 0 {
			break
		}
		end := strings.Index(out[start+2:], "*/")
		if end < 0 {
			out = out[:start]
			break
		}
		out = out[:start] + out[start+2+end+2:]
	}

	return strings.TrimSpace(out)
}

// IsReadOnly reports whether a SQL statement is verifiably read-only. It is
// a lexical classifier: the comment-stripped statement must start with
// SELECT or WITH, and the original text must not contain any denylisted
// keyword anywhere. Pure and total; it never touches the database.
func IsReadOnly(sql string) bool {
	if strings.TrimSpace(sql) == "" {
		return false
	}

	stripped := StripComments(sql)
	if stripped == "" {
		return false
	}

	upperStripped := strings.ToUpper(stripped)
	if !strings.HasPrefix(upperStripped, "SELECT") && !strings.HasPrefix(upperStripped, "WITH") {
		return false
	}

	// Scan the original text, not the stripped form, so a denied keyword
	// hidden in a comment still rejects the statement.
	upper := strings.ToUpper(sql)
	for _, kw := range deniedKeywords {
		if strings.Contains(upper, kw) {
			return false
		}
	}

	return true
}
