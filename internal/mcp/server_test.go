/*-------------------------------------------------------------------------
 *
 * MSSQL MCP Server
 *
 * Copyright (c) 2025, the mssql-mcp authors
 * This software is released under The PostgreSQL License
 *
 *-------------------------------------------------------------------------
 */

package mcp

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"
)

// fakeProvider is a ToolProvider with scripted behavior
type fakeProvider struct {
	tools    []Tool
	executed []string
	respond  func(name string, args map[string]interface{}) (ToolResponse, error)
}

func (f *fakeProvider) List() []Tool {
	return f.tools
}

func (f *fakeProvider) Execute(name string, args map[string]interface{}) (ToolResponse, error) {
	f.executed = append(f.executed, name)
	if f.respond != nil {
		return f.respond(name, args)
	}
	return NewToolText("ok"), nil
}

// serve runs the loop over the given input and returns the output lines
func serve(t *testing.T, provider ToolProvider, input string) []string {
	t.Helper()

	var out bytes.Buffer
	server := NewServerWithIO(provider, strings.NewReader(input), &out)
	if err := server.Run(); err != nil {
		t.Fatalf("Run() error: %v", err)
	}

	raw := strings.TrimRight(out.String(), "\n")
	if raw == "" {
		return nil
	}
	return strings.Split(raw, "\n")
}

func decodeResponse(t *testing.T, line string) JSONRPCResponse {
	t.Helper()

	var resp JSONRPCResponse
	if err := json.Unmarshal([]byte(line), &resp); err != nil {
		t.Fatalf("response line is not valid JSON: %v\nline: %s", err, line)
	}
	return resp
}

func TestBlankLinesProduceNoOutput(t *testing.T) {
	lines := serve(t, &fakeProvider{}, "\n   \n\t\n")
	if len(lines) != 0 {
		t.Errorf("expected no output for blank lines, got %d lines", len(lines))
	}
}

func TestMalformedLineProducesNoResponse(t *testing.T) {
	input := "this is not json\n{\"id\":5,\"method\":\"tools/list\"}\n"
	lines := serve(t, &fakeProvider{}, input)

	if len(lines) != 1 {
		t.Fatalf("expected exactly 1 response (for the valid line), got %d", len(lines))
	}

	resp := decodeResponse(t, lines[0])
	if resp.ID != float64(5) {
		t.Errorf("response id = %v, want 5", resp.ID)
	}
}

func TestInitialize(t *testing.T) {
	input := `{"id":1,"method":"initialize","params":{"protocolVersion":"2024-11-05","clientInfo":{"name":"test","version":"0.1"}}}` + "\n"
	lines := serve(t, &fakeProvider{}, input)

	if len(lines) != 1 {
		t.Fatalf("expected 1 response, got %d", len(lines))
	}

	resp := decodeResponse(t, lines[0])
	if resp.Error != nil {
		t.Fatalf("initialize returned error: %v", resp.Error)
	}

	result, ok := resp.Result.(map[string]interface{})
	if !ok {
		t.Fatal("initialize result is not an object")
	}
	if result["protocolVersion"] != "2024-11-05" {
		t.Errorf("protocolVersion = %v", result["protocolVersion"])
	}
	serverInfo, _ := result["serverInfo"].(map[string]interface{})
	if serverInfo["name"] != ServerName {
		t.Errorf("serverInfo.name = %v, want %s", serverInfo["name"], ServerName)
	}
	caps, _ := result["capabilities"].(map[string]interface{})
	if _, present := caps["tools"]; !present {
		t.Error("capabilities should declare tools")
	}
}

func TestToolsList(t *testing.T) {
	provider := &fakeProvider{
		tools: []Tool{
			{Name: "sql_query", Description: "run a query"},
			{Name: "list_tables", Description: "list tables"},
		},
	}

	lines := serve(t, provider, `{"id":2,"method":"tools/list"}`+"\n")
	resp := decodeResponse(t, lines[0])

	result, _ := resp.Result.(map[string]interface{})
	tools, _ := result["tools"].([]interface{})
	if len(tools) != 2 {
		t.Fatalf("expected 2 tools, got %d", len(tools))
	}
	first, _ := tools[0].(map[string]interface{})
	if first["name"] != "sql_query" {
		t.Errorf("first tool = %v, want sql_query (list order preserved)", first["name"])
	}
}

func TestToolCallSuccess(t *testing.T) {
	provider := &fakeProvider{
		respond: func(name string, args map[string]interface{}) (ToolResponse, error) {
			return NewToolText(`[{"x":1}]`), nil
		},
	}

	input := `{"id":2,"method":"tools/call","params":{"name":"sql_query","arguments":{"query":"SELECT 1 AS x"}}}` + "\n"
	lines := serve(t, provider, input)

	resp := decodeResponse(t, lines[0])
	if resp.ID != float64(2) {
		t.Errorf("id = %v, want 2", resp.ID)
	}
	if resp.Error != nil {
		t.Fatalf("unexpected error: %v", resp.Error)
	}

	result, _ := resp.Result.(map[string]interface{})
	content, _ := result["content"].([]interface{})
	if len(content) != 1 {
		t.Fatalf("expected a single content item, got %d", len(content))
	}
	item, _ := content[0].(map[string]interface{})
	if item["type"] != "text" {
		t.Errorf("content type = %v, want text", item["type"])
	}
	if !strings.Contains(item["text"].(string), `"x":1`) {
		t.Errorf("content text = %v, want row data", item["text"])
	}
}

func TestToolCallFailureBecomesErrorEnvelope(t *testing.T) {
	provider := &fakeProvider{
		respond: func(name string, args map[string]interface{}) (ToolResponse, error) {
			return ToolResponse{}, errors.New("statement rejected: only read-only SELECT/WITH queries are allowed")
		},
	}

	input := `{"id":1,"method":"tools/call","params":{"name":"sql_query","arguments":{"query":"DROP TABLE Employees"}}}` + "\n"
	lines := serve(t, provider, input)

	resp := decodeResponse(t, lines[0])
	if resp.ID != float64(1) {
		t.Errorf("id = %v, want 1", resp.ID)
	}
	if resp.Error == nil {
		t.Fatal("expected an error envelope")
	}
	if !strings.Contains(resp.Error.Message, "rejected") {
		t.Errorf("error message = %q, want rejection notice", resp.Error.Message)
	}
	if resp.Result != nil {
		t.Error("error envelope must not also carry a result")
	}
}

func TestToolCallErrorCodes(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
	}{
		{
			name:     "invalid params failures use -32602",
			err:      fmt.Errorf("unknown tool: nope: %w", ErrInvalidParams),
			wantCode: CodeInvalidParams,
		},
		{
			name:     "execution failures use -32603",
			err:      errors.New("query failed: invalid object name"),
			wantCode: CodeInternalError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			provider := &fakeProvider{
				respond: func(name string, args map[string]interface{}) (ToolResponse, error) {
					return ToolResponse{}, tt.err
				},
			}

			input := `{"id":4,"method":"tools/call","params":{"name":"nope","arguments":{}}}` + "\n"
			lines := serve(t, provider, input)

			resp := decodeResponse(t, lines[0])
			if resp.Error == nil {
				t.Fatal("expected an error envelope")
			}
			if resp.Error.Code != tt.wantCode {
				t.Errorf("code = %d, want %d", resp.Error.Code, tt.wantCode)
			}
		})
	}
}

func TestToolCallWithoutIDProducesNoResponse(t *testing.T) {
	provider := &fakeProvider{}

	input := `{"method":"tools/call","params":{"name":"sql_query","arguments":{"query":"SELECT 1"}}}` + "\n"
	lines := serve(t, provider, input)

	if len(lines) != 0 {
		t.Fatalf("expected no output for id-less tools/call, got %d lines", len(lines))
	}
	if len(provider.executed) != 1 {
		t.Errorf("tool should still execute, executed = %v", provider.executed)
	}
}

func TestInitializeWithoutIDProducesNoResponse(t *testing.T) {
	lines := serve(t, &fakeProvider{}, `{"method":"initialize","params":{}}`+"\n")
	if len(lines) != 0 {
		t.Errorf("expected no output for id-less initialize, got %d lines", len(lines))
	}
}

func TestUnknownMethod(t *testing.T) {
	lines := serve(t, &fakeProvider{}, `{"id":3,"method":"bogus/method"}`+"\n")

	resp := decodeResponse(t, lines[0])
	if resp.Error == nil {
		t.Fatal("expected an error envelope for unknown method")
	}
	if resp.Error.Code != CodeMethodNotFound {
		t.Errorf("code = %d, want %d", resp.Error.Code, CodeMethodNotFound)
	}
	if !strings.Contains(resp.Error.Message, "bogus/method") {
		t.Errorf("error message should cite the method, got %q", resp.Error.Message)
	}
}

func TestUnknownMethodWithoutIDIsSilent(t *testing.T) {
	lines := serve(t, &fakeProvider{}, `{"method":"bogus/notification"}`+"\n")
	if len(lines) != 0 {
		t.Errorf("expected no output for id-less unknown method, got %d lines", len(lines))
	}
}

func TestNotificationInitializedIsSilent(t *testing.T) {
	lines := serve(t, &fakeProvider{}, `{"method":"notifications/initialized"}`+"\n")
	if len(lines) != 0 {
		t.Errorf("expected no output for initialized notification, got %d lines", len(lines))
	}
}

func TestIDEchoedVerbatim(t *testing.T) {
	provider := &fakeProvider{}
	input := `{"id":7,"method":"tools/list"}` + "\n" +
		`{"id":7,"method":"tools/list"}` + "\n"

	lines := serve(t, provider, input)
	if len(lines) != 2 {
		t.Fatalf("expected 2 responses, got %d", len(lines))
	}
	for _, line := range lines {
		resp := decodeResponse(t, line)
		if resp.ID != float64(7) {
			t.Errorf("id = %v, want 7", resp.ID)
		}
	}
}

func TestStrictlySequentialResponses(t *testing.T) {
	provider := &fakeProvider{
		respond: func(name string, args map[string]interface{}) (ToolResponse, error) {
			return NewToolText(name), nil
		},
	}

	input := `{"id":1,"method":"tools/call","params":{"name":"first","arguments":{}}}` + "\n" +
		`{"id":2,"method":"tools/call","params":{"name":"second","arguments":{}}}` + "\n"

	lines := serve(t, provider, input)
	if len(lines) != 2 {
		t.Fatalf("expected 2 responses, got %d", len(lines))
	}

	if got := decodeResponse(t, lines[0]).ID; got != float64(1) {
		t.Errorf("first response id = %v, want 1", got)
	}
	if got := decodeResponse(t, lines[1]).ID; got != float64(2) {
		t.Errorf("second response id = %v, want 2", got)
	}
	if len(provider.executed) != 2 || provider.executed[0] != "first" || provider.executed[1] != "second" {
		t.Errorf("execution order = %v, want [first second]", provider.executed)
	}
}
