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
	"errors"
	"strings"
	"testing"

	"mssql-mcp/internal/mcp"
)

func TestNewRegistry(t *testing.T) {
	registry := NewRegistry()

	if registry == nil {
		t.Fatal("NewRegistry() returned nil")
	}

	if registry.tools == nil {
		t.Error("tools map is nil")
	}

	if len(registry.tools) != 0 {
		t.Errorf("tools map should be empty, got %d entries", len(registry.tools))
	}
}

func TestRegister(t *testing.T) {
	registry := NewRegistry()

	tool := Tool{
		Definition: mcp.Tool{
			Name:        "test_tool",
			Description: "A test tool",
		},
		Handler: func(args map[string]interface{}) (string, error) {
			return "", nil
		},
	}

	registry.Register("test_tool", tool)

	if len(registry.tools) != 1 {
		t.Errorf("Expected 1 tool, got %d", len(registry.tools))
	}

	retrieved, exists := registry.tools["test_tool"]
	if !exists {
		t.Error("Tool 'test_tool' was not registered")
	}

	if retrieved.Definition.Name != "test_tool" {
		t.Errorf("Tool name = %q, want %q", retrieved.Definition.Name, "test_tool")
	}
}

func TestGet(t *testing.T) {
	registry := NewRegistry()

	registry.Register("existing_tool", Tool{
		Definition: mcp.Tool{Name: "existing_tool"},
		Handler: func(args map[string]interface{}) (string, error) {
			return "", nil
		},
	})

	t.Run("existing tool", func(t *testing.T) {
		retrieved, exists := registry.Get("existing_tool")
		if !exists {
			t.Error("Get() returned exists=false for existing tool")
		}
		if retrieved.Definition.Name != "existing_tool" {
			t.Errorf("Tool name = %q, want %q", retrieved.Definition.Name, "existing_tool")
		}
	})

	t.Run("non-existent tool", func(t *testing.T) {
		_, exists := registry.Get("non_existent")
		if exists {
			t.Error("Get() returned exists=true for non-existent tool")
		}
	})
}

func TestListPreservesRegistrationOrder(t *testing.T) {
	registry := NewRegistry()

	names := []string{"zeta", "alpha", "mid"}
	for _, name := range names {
		registry.Register(name, Tool{
			Definition: mcp.Tool{Name: name},
			Handler: func(args map[string]interface{}) (string, error) {
				return "", nil
			},
		})
	}

	listed := registry.List()
	if len(listed) != len(names) {
		t.Fatalf("List() returned %d tools, want %d", len(listed), len(names))
	}

	for i, name := range names {
		if listed[i].Name != name {
			t.Errorf("List()[%d].Name = %q, want %q", i, listed[i].Name, name)
		}
	}
}

func TestRegisterSameNameKeepsPosition(t *testing.T) {
	registry := NewRegistry()

	registry.Register("first", Tool{Definition: mcp.Tool{Name: "first"}})
	registry.Register("second", Tool{Definition: mcp.Tool{Name: "second"}})
	registry.Register("first", Tool{Definition: mcp.Tool{Name: "first", Description: "replaced"}})

	listed := registry.List()
	if len(listed) != 2 {
		t.Fatalf("List() returned %d tools, want 2", len(listed))
	}
	if listed[0].Name != "first" || listed[1].Name != "second" {
		t.Errorf("order = [%q, %q], want [first, second]", listed[0].Name, listed[1].Name)
	}
	if listed[0].Description != "replaced" {
		t.Errorf("re-registration did not replace the definition")
	}
}

func TestExecuteWrapsTextPayload(t *testing.T) {
	registry := NewRegistry()

	registry.Register("echo", Tool{
		Definition: mcp.Tool{Name: "echo"},
		Handler: func(args map[string]interface{}) (string, error) {
			return "hello", nil
		},
	})

	resp, err := registry.Execute("echo", map[string]interface{}{})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if len(resp.Content) != 1 {
		t.Fatalf("Content length = %d, want 1", len(resp.Content))
	}
	if resp.Content[0].Type != "text" || resp.Content[0].Text != "hello" {
		t.Errorf("Content[0] = %+v, want text item %q", resp.Content[0], "hello")
	}
}

func TestExecutePropagatesHandlerError(t *testing.T) {
	registry := NewRegistry()

	handlerErr := errors.New("something failed")
	registry.Register("broken", Tool{
		Definition: mcp.Tool{Name: "broken"},
		Handler: func(args map[string]interface{}) (string, error) {
			return "", handlerErr
		},
	})

	_, err := registry.Execute("broken", map[string]interface{}{})
	if !errors.Is(err, handlerErr) {
		t.Errorf("Execute() error = %v, want %v", err, handlerErr)
	}
}

func TestExecuteUnknownTool(t *testing.T) {
	registry := NewRegistry()

	_, err := registry.Execute("nope", map[string]interface{}{})
	if err == nil {
		t.Fatal("Execute() on unknown tool should error")
	}
	if !strings.Contains(err.Error(), "nope") {
		t.Errorf("error %q should name the unknown tool", err.Error())
	}
	if !errors.Is(err, ErrUnknownTool) {
		t.Errorf("error %v should match ErrUnknownTool", err)
	}
	if !errors.Is(err, mcp.ErrInvalidParams) {
		t.Errorf("error %v should unwrap to mcp.ErrInvalidParams for the -32602 code", err)
	}
}
