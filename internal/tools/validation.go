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
	"fmt"

	"mssql-mcp/internal/mcp"
)

// Argument decoding for the untyped key-value bags arriving with
// tools/call. All presence and type checks live here so individual tools
// never repeat them. JSON numbers arrive as float64 and are coerced.

// ParameterError reports a missing or mistyped tool argument. It unwraps
// to mcp.ErrInvalidParams so the dispatcher reports it with the
// invalid-params code.
type ParameterError struct {
	Parameter string
	Message   string
}

func (e *ParameterError) Error() string { return e.Message }
func (e *ParameterError) Unwrap() error { return mcp.ErrInvalidParams }

func missingParameter(name string) *ParameterError {
	return &ParameterError{
		Parameter: name,
		Message:   fmt.Sprintf("missing required parameter: %s", name),
	}
}

func wrongType(name, want string) *ParameterError {
	return &ParameterError{
		Parameter: name,
		Message:   fmt.Sprintf("parameter '%s' must be %s", name, want),
	}
}

// StringParam extracts a required string argument
func StringParam(args map[string]interface{}, name string) (string, error) {
	raw, present := args[name]
	if !present {
		return "", missingParameter(name)
	}
	value, ok := raw.(string)
	if !ok || value == "" {
		return "", wrongType(name, "a non-empty string")
	}
	return value, nil
}

// OptionalStringParam extracts an optional string argument
func OptionalStringParam(args map[string]interface{}, name, defaultValue string) (string, error) {
	raw, present := args[name]
	if !present || raw == nil {
		return defaultValue, nil
	}
	value, ok := raw.(string)
	if !ok {
		return "", wrongType(name, "a string")
	}
	return value, nil
}

// OptionalIntParam extracts an optional integer argument, coercing JSON
// float64 values
func OptionalIntParam(args map[string]interface{}, name string, defaultValue int) (int, error) {
	raw, present := args[name]
	if !present || raw == nil {
		return defaultValue, nil
	}
	switch v := raw.(type) {
	case float64:
		return int(v), nil
	case int:
		return v, nil
	default:
		return 0, wrongType(name, "a number")
	}
}

// OptionalBoolParam extracts an optional boolean argument
func OptionalBoolParam(args map[string]interface{}, name string, defaultValue bool) (bool, error) {
	raw, present := args[name]
	if !present || raw == nil {
		return defaultValue, nil
	}
	value, ok := raw.(bool)
	if !ok {
		return false, wrongType(name, "a boolean")
	}
	return value, nil
}
