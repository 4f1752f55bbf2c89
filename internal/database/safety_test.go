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
	"testing"
)

func TestIsReadOnlyAccepts(t *testing.T) {
	tests := []struct {
		name string
		sql  string
	}{
		{"simple select", "SELECT 1"},
		{"lowercase select", "select * from dbo.Employees"},
		{"mixed case", "SeLeCt name FROM sys.tables"},
		{"leading whitespace", "   \t SELECT 1"},
		{"cte prefix", "WITH cte AS (SELECT 1 AS n) SELECT n FROM cte"},
		{"lowercase cte", "with x as (select 1 as n) select * from x"},
		{"line comment before select", "-- preamble\nSELECT 1"},
		{"block comment before select", "/* preamble */ SELECT 1"},
		{"select with joins", "SELECT a.id FROM dbo.Orders a JOIN dbo.Customers b ON a.cid = b.id"},
		{"select top", "SELECT TOP 10 * FROM dbo.Products"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !IsReadOnly(tt.sql) {
				t.Errorf("IsReadOnly(%q) = false, want true", tt.sql)
			}
		})
	}
}

func TestIsReadOnlyRejects(t *testing.T) {
	tests := []struct {
		name string
		sql  string
	}{
		{"empty", ""},
		{"whitespace only", "   \n\t  "},
		{"comment only", "-- just a comment"},
		{"block comment only", "/* nothing here */"},
		{"insert", "INSERT INTO dbo.T VALUES (1)"},
		{"update", "UPDATE dbo.T SET x = 1"},
		{"delete", "DELETE FROM dbo.T"},
		{"drop", "DROP TABLE Employees"},
		{"truncate", "TRUNCATE TABLE dbo.T"},
		{"merge", "MERGE dbo.T AS target USING dbo.S AS src ON 1=1 WHEN MATCHED THEN DELETE;"},
		{"exec", "EXEC sp_who"},
		{"execute", "EXECUTE sp_help"},
		{"dbcc", "DBCC CHECKDB"},
		{"backup", "BACKUP DATABASE master TO DISK = 'x.bak'"},
		{"grant", "GRANT SELECT ON dbo.T TO public"},
		{"leading keyword not select", "SHOW TABLES"},
		{"declare", "DECLARE @x INT; SELECT @x"},

		// Denied keywords anywhere reject, even inside literals or
		// identifiers. Conservative on purpose.
		{"drop in string literal", "SELECT 'DROP' AS label"},
		{"delete in identifier", "SELECT deleted_at FROM dbo.T"},
		{"exec in column name", "SELECT executive FROM dbo.Staff"},
		{"select hiding update", "SELECT 1; UPDATE dbo.T SET x = 1"},
		{"keyword hidden in comment", "SELECT 1 -- DROP TABLE T"},
		{"keyword hidden in block comment", "SELECT 1 /* DROP TABLE T */"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if IsReadOnly(tt.sql) {
				t.Errorf("IsReadOnly(%q) = true, want false", tt.sql)
			}
		})
	}
}

func TestStripComments(t *testing.T) {
	tests := []struct {
		name string
		sql  string
		want string
	}{
		{"no comments", "SELECT 1", "SELECT 1"},
		{"line comment", "SELECT 1 -- trailing", "SELECT 1"},
		{"line comment on own line", "-- header\nSELECT 1", "SELECT 1"},
		{"block comment", "SELECT /* inline */ 1", "SELECT  1"},
		{"multiple block comments", "/* a */ SELECT /* b */ 1", "SELECT  1"},
		{"multiline block comment", "SELECT /* spans\nlines */ 1", "SELECT  1"},
		{"unterminated block truncates", "SELECT 1 /* runaway", "SELECT 1"},
		{"unterminated after content", "SELECT a, b /* oops\nFROM T", "SELECT a, b"},
		{"empty input", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StripComments(tt.sql); got != tt.want {
				t.Errorf("StripComments(%q) = %q, want %q", tt.sql, got, tt.want)
			}
		})
	}
}

func TestStripCommentsIdempotent(t *testing.T) {
	inputs := []string{
		"SELECT 1 -- comment",
		"/* a */ SELECT /* b */ 1 -- c",
		"SELECT 1 /* unterminated",
		"-- only a comment",
		"WITH x AS (SELECT 1) SELECT * FROM x",
	}

	for _, in := range inputs {
		once := StripComments(in)
		twice := StripComments(once)
		if once != twice {
			t.Errorf("StripComments not idempotent for %q: first %q, second %q", in, once, twice)
		}
	}
}

func TestIsReadOnlyIsPure(t *testing.T) {
	// Repeated calls with interleaved inputs must be order-independent
	if !IsReadOnly("SELECT 1") {
		t.Fatal("SELECT 1 should be accepted")
	}
	if IsReadOnly("DROP TABLE T") {
		t.Fatal("DROP should be rejected")
	}
	if !IsReadOnly("SELECT 1") {
		t.Error("acceptance changed after a rejection; classifier is not stateless")
	}
}
