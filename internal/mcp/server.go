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
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"mssql-mcp/internal/logging"
)

const (
	ProtocolVersion = "2024-11-05"
	ServerName      = "mssql-mcp-server"
	ServerVersion   = "1.0.0"
)

// ToolProvider is an interface for listing and executing tools
type ToolProvider interface {
	List() []Tool
	Execute(name string, args map[string]interface{}) (ToolResponse, error)
}

// Server handles MCP protocol communication over a line-delimited
// JSON-RPC channel. Requests are processed strictly one at a time: a
// response is written before the next input line is read.
type Server struct {
	tools ToolProvider
	in    io.Reader
	out   io.Writer
}

// NewServer creates a new MCP server speaking on stdin/stdout
func NewServer(tools ToolProvider) *Server {
	return &Server{
		tools: tools,
		in:    os.Stdin,
		out:   os.Stdout,
	}
}

// NewServerWithIO creates a server bound to explicit streams, for tests
func NewServerWithIO(tools ToolProvider, in io.Reader, out io.Writer) *Server {
	return &Server{tools: tools, in: in, out: out}
}

// Run starts the serve loop and returns when input is exhausted
func (s *Server) Run() error {
	scanner := bufio.NewScanner(s.in)
	scanner.Buffer(make([]byte, 0, ScannerInitialBufferSize), ScannerMaxBufferSize)

	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}

		var req JSONRPCRequest
		if err := json.Unmarshal([]byte(line), &req); err != nil {
			// No id to correlate against, so the line is dropped with a
			// diagnostic only; the main channel stays silent.
			logging.Warn("dropping undecodable request line", "error", err.Error())
			continue
		}

		s.handleRequest(req)
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("scanner error: %w", err)
	}

	return nil
}

func (s *Server) handleRequest(req JSONRPCRequest) {
	logging.Debug("dispatching request", "method", req.Method, "id", req.ID)

	switch req.Method {
	case "initialize":
		s.handleInitialize(req)
	case "notifications/initialized":
		// Client notification - no response needed
	case "tools/list":
		s.handleToolsList(req)
	case "tools/call":
		s.handleToolCall(req)
	default:
		s.sendError(req.ID, CodeMethodNotFound, "Method not found: "+req.Method, nil)
	}
}

func (s *Server) handleInitialize(req JSONRPCRequest) {
	paramsBytes, err := json.Marshal(req.Params)
	if err != nil {
		s.sendError(req.ID, CodeInvalidParams, "Invalid params", err.Error())
		return
	}
	var params InitializeParams
	if err := json.Unmarshal(paramsBytes, &params); err != nil {
		s.sendError(req.ID, CodeInvalidParams, "Invalid params", err.Error())
		return
	}

	// Accept the client's protocol version for compatibility
	protocolVersion := params.ProtocolVersion
	if protocolVersion == "" {
		protocolVersion = ProtocolVersion
	}

	result := InitializeResult{
		ProtocolVersion: protocolVersion,
		Capabilities: map[string]interface{}{
			"tools": map[string]interface{}{},
		},
		ServerInfo: Implementation{
			Name:    ServerName,
			Version: ServerVersion,
		},
	}

	s.sendResponse(req.ID, result)
}

func (s *Server) handleToolsList(req JSONRPCRequest) {
	s.sendResponse(req.ID, ToolsListResult{Tools: s.tools.List()})
}

func (s *Server) handleToolCall(req JSONRPCRequest) {
	paramsBytes, err := json.Marshal(req.Params)
	if err != nil {
		s.sendError(req.ID, CodeInvalidParams, "Invalid params", err.Error())
		return
	}
	var params ToolCallParams
	if err := json.Unmarshal(paramsBytes, &params); err != nil {
		s.sendError(req.ID, CodeInvalidParams, "Invalid params", err.Error())
		return
	}

	// The dispatch boundary: any failure inside a tool becomes an error
	// envelope correlated to the request id, never a crash. Request-shape
	// failures (unknown tool, bad arguments) carry the invalid-params code;
	// everything else is an execution failure.
	response, err := s.tools.Execute(params.Name, params.Arguments)
	if err != nil {
		logging.Info("tool call failed", "tool", params.Name, "error", err.Error())
		code := CodeInternalError
		if errors.Is(err, ErrInvalidParams) {
			code = CodeInvalidParams
		}
		s.sendError(req.ID, code, err.Error(), nil)
		return
	}

	s.sendResponse(req.ID, response)
}

func (s *Server) sendResponse(id, result interface{}) {
	// Responses are only ever correlated to a concrete id; an id-less
	// request is a notification and gets nothing back.
	if id == nil {
		return
	}

	resp := JSONRPCResponse{
		JSONRPC: "2.0",
		ID:      id,
		Result:  result,
	}

	data, err := json.Marshal(resp)
	if err != nil {
		logging.Error("failed to marshal response", "error", err.Error())
		return
	}
	fmt.Fprintln(s.out, string(data))
}

func (s *Server) sendError(id interface{}, code int, message string, data interface{}) {
	if id == nil {
		return
	}

	resp := JSONRPCResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error: &RPCError{
			Code:    code,
			Message: message,
			Data:    data,
		},
	}

	respData, err := json.Marshal(resp)
	if err != nil {
		logging.Error("failed to marshal error response", "error", err.Error())
		return
	}
	fmt.Fprintln(s.out, string(respData))
}
