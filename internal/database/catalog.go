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
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"
)

// FK direction tags, present on every relationship row
const (
	DirectionOutbound = "outbound"
	DirectionInbound  = "inbound"
)

// numericTypeMarkers classify a reported type name as numeric for the
// purposes of column statistics. Substring heuristic, not a type-system
// check: "bigint", "smallmoney" and friends all match.
var numericTypeMarkers = []string{"int", "decimal", "numeric", "float", "real", "money"}

// IsNumericType reports whether a database type name counts as numeric
func IsNumericType(dataType string) bool {
	lower := strings.ToLower(dataType)
	for _, marker := range numericTypeMarkers {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return false
}

// catalogContext bounds introspection queries with the default timeout.
// Metadata is read fresh on every call; staleness is not tolerated, so
// nothing here is ever cached.
func catalogContext(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, time.Duration(DefaultTimeoutSecs)*time.Second)
}

// ListTables returns base tables, optionally filtered to one schema
func (c *Client) ListTables(ctx context.Context, schema string) ([]TableRef, error) {
	db, err := c.DB()
	if err != nil {
		return nil, err
	}

	ctx, cancel := catalogContext(ctx)
	defer cancel()

	query := `
		SELECT TABLE_SCHEMA, TABLE_NAME
		FROM INFORMATION_SCHEMA.TABLES
		WHERE TABLE_TYPE = 'BASE TABLE'
		  AND (@schema = '' OR TABLE_SCHEMA = @schema)
		ORDER BY TABLE_SCHEMA, TABLE_NAME`

	rows, err := db.QueryContext(ctx, query, sql.Named("schema", schema))
	if err != nil {
		return nil, fmt.Errorf("failed to list tables: %w", err)
	}
	defer rows.Close()

	var tables []TableRef
	for rows.Next() {
		var ref TableRef
		if err := rows.Scan(&ref.Schema, &ref.Name); err != nil {
			return nil, fmt.Errorf("failed to scan table row: %w", err)
		}
		tables = append(tables, ref)
	}
	return tables, rows.Err()
}

// DescribeTable returns column metadata for one table in ordinal order.
// An unknown table yields an empty slice, never an error.
func (c *Client) DescribeTable(ctx context.Context, ref TableRef) ([]ColumnInfo, error) {
	db, err := c.DB()
	if err != nil {
		return nil, err
	}

	ctx, cancel := catalogContext(ctx)
	defer cancel()

	query := `
		SELECT COLUMN_NAME, DATA_TYPE, IS_NULLABLE, CHARACTER_MAXIMUM_LENGTH
		FROM INFORMATION_SCHEMA.COLUMNS
		WHERE TABLE_SCHEMA = @schema AND TABLE_NAME = @table
		ORDER BY ORDINAL_POSITION`

	rows, err := db.QueryContext(ctx, query,
		sql.Named("schema", ref.Schema), sql.Named("table", ref.Name))
	if err != nil {
		return nil, fmt.Errorf("failed to describe table: %w", err)
	}
	defer rows.Close()

	var columns []ColumnInfo
	for rows.Next() {
		var (
			col       ColumnInfo
			nullable  string
			maxLength sql.NullInt64
		)
		if err := rows.Scan(&col.ColumnName, &col.DataType, &nullable, &maxLength); err != nil {
			return nil, fmt.Errorf("failed to scan column row: %w", err)
		}
		col.Table = ref.Qualified()
		col.IsNullable = nullable == "YES"
		if maxLength.Valid {
			v := maxLength.Int64
			col.MaxLength = &v
		}
		columns = append(columns, col)
	}
	return columns, rows.Err()
}

// ListProcedures returns stored procedures, optionally filtered to one schema
func (c *Client) ListProcedures(ctx context.Context, schema string) ([]TableRef, error) {
	db, err := c.DB()
	if err != nil {
		return nil, err
	}

	ctx, cancel := catalogContext(ctx)
	defer cancel()

	query := `
		SELECT ROUTINE_SCHEMA, ROUTINE_NAME
		FROM INFORMATION_SCHEMA.ROUTINES
		WHERE ROUTINE_TYPE = 'PROCEDURE'
		  AND (@schema = '' OR ROUTINE_SCHEMA = @schema)
		ORDER BY ROUTINE_SCHEMA, ROUTINE_NAME`

	rows, err := db.QueryContext(ctx, query, sql.Named("schema", schema))
	if err != nil {
		return nil, fmt.Errorf("failed to list procedures: %w", err)
	}
	defer rows.Close()

	var procs []TableRef
	for rows.Next() {
		var ref TableRef
		if err := rows.Scan(&ref.Schema, &ref.Name); err != nil {
			return nil, fmt.Errorf("failed to scan procedure row: %w", err)
		}
		procs = append(procs, ref)
	}
	return procs, rows.Err()
}

// ProcedureDefinition fetches the source text of a stored procedure.
// An unknown procedure yields an empty string, never an error.
func (c *Client) ProcedureDefinition(ctx context.Context, ref TableRef) (string, error) {
	db, err := c.DB()
	if err != nil {
		return "", err
	}

	ctx, cancel := catalogContext(ctx)
	defer cancel()

	query := `
		SELECT sm.definition
		FROM sys.sql_modules sm
		JOIN sys.objects o ON o.object_id = sm.object_id
		JOIN sys.schemas s ON s.schema_id = o.schema_id
		WHERE s.name = @schema AND o.name = @name`

	var definition sql.NullString
	err = db.QueryRowContext(ctx, query,
		sql.Named("schema", ref.Schema), sql.Named("name", ref.Name)).Scan(&definition)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to fetch procedure definition: %w", err)
	}
	return definition.String, nil
}

const foreignKeyQuery = `
	SELECT
		fk.name AS fk_name,
		sp.name AS parent_schema, tp.name AS parent_table, cp.name AS parent_column,
		sr.name AS ref_schema, tr.name AS ref_table, cr.name AS ref_column
	FROM sys.foreign_keys fk
	JOIN sys.foreign_key_columns fkc ON fkc.constraint_object_id = fk.object_id
	JOIN sys.tables tp ON tp.object_id = fk.parent_object_id
	JOIN sys.schemas sp ON sp.schema_id = tp.schema_id
	JOIN sys.columns cp ON cp.object_id = fkc.parent_object_id AND cp.column_id = fkc.parent_column_id
	JOIN sys.tables tr ON tr.object_id = fk.referenced_object_id
	JOIN sys.schemas sr ON sr.schema_id = tr.schema_id
	JOIN sys.columns cr ON cr.object_id = fkc.referenced_object_id AND cr.column_id = fkc.referenced_column_id`

// scanForeignKeys drains a foreign-key result set, tagging each row with
// its direction relative to the subject table (empty subject tags
// everything as outbound, which is what the full overview wants).
func scanForeignKeys(rows *sql.Rows, subject TableRef) ([]ForeignKey, error) {
	var fks []ForeignKey
	for rows.Next() {
		var name, parentSchema, parentTable, parentColumn, refSchema, refTable, refColumn string
		if err := rows.Scan(&name, &parentSchema, &parentTable, &parentColumn,
			&refSchema, &refTable, &refColumn); err != nil {
			return nil, fmt.Errorf("failed to scan foreign key row: %w", err)
		}

		direction := DirectionOutbound
		if subject.Name != "" && !(parentSchema == subject.Schema && parentTable == subject.Name) {
			direction = DirectionInbound
		}

		fks = append(fks, ForeignKey{
			Name:             name,
			Direction:        direction,
			Table:            parentSchema + "." + parentTable,
			Column:           parentColumn,
			ReferencedTable:  refSchema + "." + refTable,
			ReferencedColumn: refColumn,
		})
	}
	return fks, rows.Err()
}

// ListForeignKeys returns every relationship touching a table, inbound and
// outbound, each row tagged with its direction.
func (c *Client) ListForeignKeys(ctx context.Context, ref TableRef) ([]ForeignKey, error) {
	db, err := c.DB()
	if err != nil {
		return nil, err
	}

	ctx, cancel := catalogContext(ctx)
	defer cancel()

	query := foreignKeyQuery + `
	WHERE (sp.name = @schema AND tp.name = @table)
	   OR (sr.name = @schema AND tr.name = @table)
	ORDER BY fk.name`

	rows, err := db.QueryContext(ctx, query,
		sql.Named("schema", ref.Schema), sql.Named("table", ref.Name))
	if err != nil {
		return nil, fmt.Errorf("failed to list foreign keys: %w", err)
	}
	defer rows.Close()

	return scanForeignKeys(rows, ref)
}

// AllColumns returns column metadata for every table, grouped per table in
// catalog order with columns in ordinal order.
func (c *Client) AllColumns(ctx context.Context) ([]TableColumns, error) {
	db, err := c.DB()
	if err != nil {
		return nil, err
	}

	ctx, cancel := catalogContext(ctx)
	defer cancel()

	query := `
		SELECT c.TABLE_SCHEMA, c.TABLE_NAME, c.COLUMN_NAME, c.DATA_TYPE,
		       c.IS_NULLABLE, c.CHARACTER_MAXIMUM_LENGTH
		FROM INFORMATION_SCHEMA.COLUMNS c
		JOIN INFORMATION_SCHEMA.TABLES t
		  ON t.TABLE_SCHEMA = c.TABLE_SCHEMA AND t.TABLE_NAME = c.TABLE_NAME
		WHERE t.TABLE_TYPE = 'BASE TABLE'
		ORDER BY c.TABLE_SCHEMA, c.TABLE_NAME, c.ORDINAL_POSITION`

	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to read column metadata: %w", err)
	}
	defer rows.Close()

	var (
		tables  []TableColumns
		current *TableColumns
	)
	for rows.Next() {
		var (
			schema, table string
			col           ColumnInfo
			nullable      string
			maxLength     sql.NullInt64
		)
		if err := rows.Scan(&schema, &table, &col.ColumnName, &col.DataType,
			&nullable, &maxLength); err != nil {
			return nil, fmt.Errorf("failed to scan column metadata row: %w", err)
		}

		ref := TableRef{Schema: schema, Name: table}
		col.Table = ref.Qualified()
		col.IsNullable = nullable == "YES"
		if maxLength.Valid {
			v := maxLength.Int64
			col.MaxLength = &v
		}

		if current == nil || current.Table != ref {
			tables = append(tables, TableColumns{Table: ref})
			current = &tables[len(tables)-1]
		}
		current.Columns = append(current.Columns, col)
	}
	return tables, rows.Err()
}

// ColumnStatistics computes per-column statistics for one table: row count
// and null count for every column, min/max/average for numeric columns,
// distinct-value count for the rest. The per-column aggregate statements are
// the one place identifiers are interpolated, so they are bracket-quoted.
func (c *Client) ColumnStatistics(ctx context.Context, ref TableRef) ([]ColumnStatistics, error) {
	columns, err := c.DescribeTable(ctx, ref)
	if err != nil {
		return nil, err
	}
	if len(columns) == 0 {
		return nil, nil
	}

	db, err := c.DB()
	if err != nil {
		return nil, err
	}

	ctx, cancel := catalogContext(ctx)
	defer cancel()

	quotedTable := QuoteTable(ref)
	stats := make([]ColumnStatistics, 0, len(columns))

	for _, col := range columns {
		quotedCol := QuoteIdentifier(col.ColumnName)
		stat := ColumnStatistics{ColumnName: col.ColumnName, DataType: col.DataType}

		if IsNumericType(col.DataType) {
			query := fmt.Sprintf(`
				SELECT COUNT_BIG(*), COUNT_BIG(%[1]s),
				       MIN(CAST(%[1]s AS FLOAT)),
				       MAX(CAST(%[1]s AS FLOAT)),
				       AVG(CAST(%[1]s AS FLOAT))
				FROM %[2]s`, quotedCol, quotedTable)

			var (
				total, nonNull   int64
				minV, maxV, avgV sql.NullFloat64
			)
			if err := db.QueryRowContext(ctx, query).Scan(&total, &nonNull, &minV, &maxV, &avgV); err != nil {
				return nil, fmt.Errorf("failed to compute statistics for %s: %w", col.ColumnName, err)
			}
			stat.RowCount = total
			stat.NullCount = total - nonNull
			if minV.Valid {
				stat.Minimum = &minV.Float64
			}
			if maxV.Valid {
				stat.Maximum = &maxV.Float64
			}
			if avgV.Valid {
				stat.Average = &avgV.Float64
			}
		} else {
			query := fmt.Sprintf(`
				SELECT COUNT_BIG(*), COUNT_BIG(%[1]s), COUNT_BIG(DISTINCT %[1]s)
				FROM %[2]s`, quotedCol, quotedTable)

			var total, nonNull, distinct int64
			if err := db.QueryRowContext(ctx, query).Scan(&total, &nonNull, &distinct); err != nil {
				return nil, fmt.Errorf("failed to compute statistics for %s: %w", col.ColumnName, err)
			}
			stat.RowCount = total
			stat.NullCount = total - nonNull
			stat.DistinctCount = &distinct
		}

		stats = append(stats, stat)
	}

	return stats, nil
}

// OverviewEntry is one table in the full schema overview
type OverviewEntry struct {
	Columns     []ColumnInfo `json:"columns"`
	ForeignKeys []ForeignKey `json:"foreignKeys,omitempty"`
}

// SchemaOverview returns every table's columns plus every foreign key,
// keyed by qualified table name.
func (c *Client) SchemaOverview(ctx context.Context) (map[string]OverviewEntry, error) {
	tables, err := c.AllColumns(ctx)
	if err != nil {
		return nil, err
	}

	db, err := c.DB()
	if err != nil {
		return nil, err
	}

	fkCtx, cancel := catalogContext(ctx)
	defer cancel()

	rows, err := db.QueryContext(fkCtx, foreignKeyQuery+"\n\tORDER BY fk.name")
	if err != nil {
		return nil, fmt.Errorf("failed to list foreign keys: %w", err)
	}
	defer rows.Close()

	fks, err := scanForeignKeys(rows, TableRef{})
	if err != nil {
		return nil, err
	}

	overview := make(map[string]OverviewEntry, len(tables))
	for _, t := range tables {
		overview[t.Table.Qualified()] = OverviewEntry{Columns: t.Columns}
	}
	for _, fk := range fks {
		entry := overview[fk.Table]
		entry.ForeignKeys = append(entry.ForeignKeys, fk)
		overview[fk.Table] = entry
	}

	return overview, nil
}
