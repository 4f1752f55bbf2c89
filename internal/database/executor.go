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
	"errors"
	"fmt"
	"time"
	"unicode/utf8"

	"mssql-mcp/internal/logging"
)

// Execution ceilings. Requested values are clamped into these ranges;
// absent or non-positive values take the defaults.
const (
	MaxRowLimit        = 1000
	DefaultRowLimit    = 1000
	MaxTimeoutSecs     = 60
	DefaultTimeoutSecs = 30
)

// ClampMaxRows resolves a requested row limit into [1, MaxRowLimit]
func ClampMaxRows(requested int) int {
	if requested <= 0 {
		return DefaultRowLimit
	}
	if requested > MaxRowLimit {
		return MaxRowLimit
	}
	return requested
}

// ClampTimeout resolves a requested timeout into [1, MaxTimeoutSecs] seconds
func ClampTimeout(requested int) int {
	if requested <= 0 {
		return DefaultTimeoutSecs
	}
	if requested > MaxTimeoutSecs {
		return MaxTimeoutSecs
	}
	return requested
}

// Execute runs a read-only statement under row and time ceilings and
// returns the result set as ordered rows. The statement is re-validated
// against the safety classifier on every call; callers are never trusted to
// have validated upstream. Zero rows is a non-error outcome (empty slice).
func (c *Client) Execute(ctx context.Context, query string, maxRows, timeoutSeconds int) ([]Row, error) {
	if !IsReadOnly(query) {
		return nil, ErrStatementRejected
	}

	db, err := c.DB()
	if err != nil {
		return nil, err
	}

	maxRows = ClampMaxRows(maxRows)
	timeoutSeconds = ClampTimeout(timeoutSeconds)

	ctx, cancel := context.WithTimeout(ctx, time.Duration(timeoutSeconds)*time.Second)
	defer cancel()

	// SET ROWCOUNT is session state, so pin a single connection for the
	// governor, the query, and the reset.
	conn, err := db.Conn(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to acquire connection: %w", err)
	}
	defer conn.Close()

	// Server-side row governor: the engine stops producing rows past the
	// limit instead of relying on client-side truncation alone.
	if _, err := conn.ExecContext(ctx, fmt.Sprintf("SET ROWCOUNT %d", maxRows)); err != nil {
		return nil, fmt.Errorf("failed to set row limit: %w", err)
	}
	// Reset the governor on every exit path, failures included, before the
	// connection returns to the pool; a leaked ROWCOUNT would silently
	// truncate unrelated queries on the same session. Best effort, on a
	// fresh context: the deadline may already have fired.
	defer func() {
		_, _ = conn.ExecContext(context.Background(), "SET ROWCOUNT 0")
	}()

	start := time.Now()
	rows, err := conn.QueryContext(ctx, query)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, fmt.Errorf("query timed out after %d seconds; retry with a larger timeout_seconds", timeoutSeconds)
		}
		return nil, fmt.Errorf("query failed: %w", err)
	}
	defer rows.Close()

	// Columns first, in stable left-to-right order
	columns, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("failed to read columns: %w", err)
	}

	results := make([]Row, 0, 64)
	for rows.Next() {
		raw := make([]interface{}, len(columns))
		ptrs := make([]interface{}, len(columns))
		for i := range raw {
			ptrs[i] = &raw[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}

		values := make([]interface{}, len(columns))
		for i := range raw {
			values[i] = normalizeValue(raw[i])
		}
		results = append(results, Row{Columns: columns, Values: values})

		// Client-side stop as well; the governor already bounds the server
		if len(results) >= maxRows {
			break
		}
	}

	if err := rows.Err(); err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, fmt.Errorf("query timed out after %d seconds; retry with a larger timeout_seconds", timeoutSeconds)
		}
		return nil, fmt.Errorf("failed to iterate rows: %w", err)
	}

	logging.Debug("query executed",
		"rows", len(results),
		"max_rows", maxRows,
		"duration_ms", time.Since(start).Milliseconds())

	return results, nil
}

// normalizeValue maps driver values into JSON-friendly scalars. NULL stays
// nil, never a sentinel string.
func normalizeValue(v interface{}) interface{} {
	switch x := v.(type) {
	case nil:
		return nil
	case []byte:
		if utf8.Valid(x) {
			return string(x)
		}
		return fmt.Sprintf("0x%x", x)
	case time.Time:
		return x.Format(time.RFC3339Nano)
	default:
		return x
	}
}
