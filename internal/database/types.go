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
	"bytes"
	"encoding/json"
	"errors"
)

// Typed error kinds surfaced to the protocol layer. The guard rejection is
// kept distinct from execution failures so callers can tell "your query was
// not allowed" apart from "your query failed to run".
var (
	ErrNotConfigured     = errors.New("no database connection configured: call the connect_database tool first")
	ErrStatementRejected = errors.New("statement rejected: only read-only SELECT/WITH queries are allowed")
)

// TableRef identifies a table or procedure as schema + unqualified name
type TableRef struct {
	Schema string
	Name   string
}

// Qualified returns the schema-qualified object name
func (r TableRef) Qualified() string {
	return r.Schema + "." + r.Name
}

// ColumnInfo describes one column of a table
type ColumnInfo struct {
	Table      string `json:"table"`
	ColumnName string `json:"column"`
	DataType   string `json:"dataType"`
	IsNullable bool   `json:"isNullable"`
	MaxLength  *int64 `json:"maxLength,omitempty"`
}

// TableColumns pairs a table with its columns in ordinal order
type TableColumns struct {
	Table   TableRef
	Columns []ColumnInfo
}

// ForeignKey describes one side of a foreign-key relationship
type ForeignKey struct {
	Name             string `json:"name"`
	Direction        string `json:"direction"` // "outbound" or "inbound"
	Table            string `json:"table"`
	Column           string `json:"column"`
	ReferencedTable  string `json:"referencedTable"`
	ReferencedColumn string `json:"referencedColumn"`
}

// ColumnStatistics holds per-column statistics computed by the catalog reader
type ColumnStatistics struct {
	ColumnName    string   `json:"column"`
	DataType      string   `json:"dataType"`
	RowCount      int64    `json:"rowCount"`
	NullCount     int64    `json:"nullCount"`
	Minimum       *float64 `json:"min,omitempty"`
	Maximum       *float64 `json:"max,omitempty"`
	Average       *float64 `json:"avg,omitempty"`
	DistinctCount *int64   `json:"distinctCount,omitempty"`
}

// Row is an ordered mapping of column name to value. JSON marshalling
// preserves column order; plain maps would not.
type Row struct {
	Columns []string
	Values  []interface{}
}

// Get returns the value for a column name, or nil when absent
func (r Row) Get(column string) interface{} {
	for i, c := range r.Columns {
		if c == column {
			return r.Values[i]
		}
	}
	return nil
}

// MarshalJSON emits the row as an object with keys in column order
func (r Row) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, col := range r.Columns {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(col)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		val, err := json.Marshal(r.Values[i])
		if err != nil {
			return nil, err
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
