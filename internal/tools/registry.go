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

// ErrUnknownTool is returned when tools/call names a tool that is not
// registered. It unwraps to mcp.ErrInvalidParams so the dispatcher reports
// it with the invalid-params code.
var ErrUnknownTool error = unknownToolError{}

type unknownToolError struct{}

func (unknownToolError) Error() string { return "unknown tool" }
func (unknownToolError) Unwrap() error { return mcp.ErrInvalidParams }

// toolDefinition builds a tool descriptor with an object-typed input schema
func toolDefinition(name, description string, properties map[string]interface{}, required []string) mcp.Tool {
	return mcp.Tool{
		Name:        name,
		Description: description,
		InputSchema: mcp.InputSchema{
			Type:       "object",
			Properties: properties,
			Required:   required,
		},
	}
}

// Handler executes a tool and returns its text payload. Errors propagate
// to the protocol engine, which shapes them into error envelopes.
type Handler func(args map[string]interface{}) (string, error)

// Tool represents a registered MCP tool
type Tool struct {
	Definition mcp.Tool
	Handler    Handler
}

// Registry manages the fixed set of tools. It is built once at startup and
// read-only afterwards; List returns descriptors in registration order.
type Registry struct {
	tools map[string]Tool
	order []string
}

// NewRegistry creates a new tool registry
func NewRegistry() *Registry {
	return &Registry{
		tools: make(map[string]Tool),
	}
}

// Register adds a tool to the registry
func (r *Registry) Register(name string, tool Tool) {
	if _, exists := r.tools[name]; !exists {
		r.order = append(r.order, name)
	}
	r.tools[name] = tool
}

// Get retrieves a tool by name
func (r *Registry) Get(name string) (Tool, bool) {
	tool, exists := r.tools[name]
	return tool, exists
}

// List returns all registered tool definitions in registration order
func (r *Registry) List() []mcp.Tool {
	tools := make([]mcp.Tool, 0, len(r.order))
	for _, name := range r.order {
		tools = append(tools, r.tools[name].Definition)
	}
	return tools
}

// Execute runs a tool by name with the given arguments and wraps its
// return value as the single text content item of the response
func (r *Registry) Execute(name string, args map[string]interface{}) (mcp.ToolResponse, error) {
	tool, exists := r.Get(name)
	if !exists {
		return mcp.ToolResponse{}, fmt.Errorf("%w: %s", ErrUnknownTool, name)
	}

	text, err := tool.Handler(args)
	if err != nil {
		return mcp.ToolResponse{}, err
	}

	return mcp.NewToolText(text), nil
}
