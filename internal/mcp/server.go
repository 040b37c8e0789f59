// Package mcp provides the structured-protocol front end: JSON-RPC 2.0 tool
// invocation over newline-delimited stdio. Each registered tool is exposed
// as a named operation with its full input schema; argument validation runs
// before the executor through the same dispatch path the HTTP front end
// uses, so the two surfaces cannot diverge.
package mcp

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"shopify-mcp/internal/envelope"
	"shopify-mcp/internal/errs"
	"shopify-mcp/internal/registry"
	"shopify-mcp/internal/schema"
)

// protocolVersion is the MCP protocol revision reported by initialize.
const protocolVersion = "2024-11-05"

// toolDefinition is one entry of a tools/list result, carrying the full
// input schema so the protocol client can enforce it.
type toolDefinition struct {
	Name        string      `json:"name"`
	Description string      `json:"description"`
	InputSchema schema.JSON `json:"inputSchema"`
}

// Server reads JSON-RPC requests line by line and answers each one before
// reading the next. It has no session state beyond the registry it serves.
type Server struct {
	reg    *registry.Registry
	reader *bufio.Reader
	writer *bufio.Writer
	name   string
}

// NewServer creates a stdio server over os.Stdin and os.Stdout.
func NewServer(reg *registry.Registry) *Server {
	return NewServerWithIO(reg, os.Stdin, os.Stdout)
}

// NewServerWithIO creates a server over custom streams, primarily for tests.
func NewServerWithIO(reg *registry.Registry, r io.Reader, w io.Writer) *Server {
	return &Server{
		reg:    reg,
		reader: bufio.NewReader(r),
		writer: bufio.NewWriter(w),
		name:   "shopify-mcp",
	}
}

// Run processes requests until the input stream ends or ctx is canceled.
func (s *Server) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		line, err := s.reader.ReadString('\n')
		if err != nil {
			if err == io.EOF {
				return nil
			}
			return err
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		var req Request
		if err := json.Unmarshal([]byte(line), &req); err != nil {
			s.sendError(nil, CodeParseError, "Parse error", err.Error())
			continue
		}
		if req.JSONRPC != "2.0" {
			s.sendError(req.ID, CodeInvalidRequest, "Invalid Request", "invalid jsonrpc version")
			continue
		}

		s.handle(ctx, &req)
	}
}

func (s *Server) handle(ctx context.Context, req *Request) {
	switch req.Method {
	case "initialize":
		s.send(&Response{ID: req.ID, Result: s.initializeResult()})
	case "tools/list":
		s.send(&Response{ID: req.ID, Result: s.toolsListResult()})
	case "tools/call":
		s.handleToolsCall(ctx, req)
	default:
		s.sendError(req.ID, CodeMethodNotFound, "Method not found", fmt.Sprintf("unknown method: %s", req.Method))
	}
}

// initializeResult is a fixed handshake reply; this server does not perform
// capability negotiation beyond advertising tool support.
func (s *Server) initializeResult() map[string]any {
	return map[string]any{
		"protocolVersion": protocolVersion,
		"capabilities":    map[string]any{"tools": map[string]any{}},
		"serverInfo":      map[string]any{"name": s.name, "version": "1.0.0"},
	}
}

func (s *Server) toolsListResult() map[string]any {
	tools := make([]toolDefinition, 0, s.reg.Len())
	for _, t := range s.reg.List() {
		tools = append(tools, toolDefinition{
			Name:        t.Name,
			Description: t.Description,
			InputSchema: t.InputSchema,
		})
	}
	return map[string]any{"tools": tools}
}

func (s *Server) handleToolsCall(ctx context.Context, req *Request) {
	if req.Params == nil || req.Params.Name == "" {
		s.sendError(req.ID, CodeInvalidParams, "Tool name is required", nil)
		return
	}
	args, _ := req.Params.Arguments.(map[string]any)

	result, err := s.reg.Dispatch(ctx, req.Params.Name, args)
	if err != nil {
		s.sendError(req.ID, codeFor(err), errs.MessageOf(err), errs.DetailOf(err))
		return
	}
	body, err := envelope.Result(result)
	if err != nil {
		s.sendError(req.ID, CodeInternalError, errs.MessageOf(err), errs.DetailOf(err))
		return
	}
	s.send(&Response{ID: req.ID, Result: body})
}

// codeFor maps the error taxonomy onto JSON-RPC error codes.
func codeFor(err error) int {
	switch errs.KindOf(err) {
	case errs.KindNotFound:
		return CodeMethodNotFound
	case errs.KindValidation, errs.KindBadRequest:
		return CodeInvalidParams
	default:
		return CodeInternalError
	}
}

func (s *Server) send(resp *Response) {
	if resp.JSONRPC == "" {
		resp.JSONRPC = "2.0"
	}
	data, err := json.Marshal(resp)
	if err != nil {
		// A response that cannot marshal is replaced by an internal error.
		data, _ = json.Marshal(&Response{
			JSONRPC: "2.0",
			ID:      resp.ID,
			Error:   &RPCError{Code: CodeInternalError, Message: err.Error()},
		})
	}
	_, _ = s.writer.Write(append(data, '\n'))
	_ = s.writer.Flush()
}

func (s *Server) sendError(id any, code int, message string, data any) {
	if d, ok := data.(string); ok && d == "" {
		data = nil
	}
	s.send(&Response{ID: id, Error: &RPCError{Code: code, Message: message, Data: data}})
}
