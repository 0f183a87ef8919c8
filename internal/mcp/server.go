// Package mcp serves the word lookup as a Model Context Protocol tool over
// newline-delimited JSON-RPC 2.0.
package mcp

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"runtime/debug"

	"github.com/rs/zerolog"

	"github.com/verte-zerg/spellbee/internal/model"
	"github.com/verte-zerg/spellbee/internal/toolerr"
)

const maxMessageSize = 8 * 1024 * 1024

// Solver answers longest-word queries.
type Solver interface {
	Solve(ctx context.Context, q model.Query) (model.Answer, error)
}

// Server is an MCP server exposing the get_longest_word tool.
type Server struct {
	solver      Solver
	logger      zerolog.Logger
	version     string
	maxMessage  int
	initialized bool
}

// ServerOption configures optional server behavior.
type ServerOption func(*Server)

// WithLogger sets the diagnostic logger. Logs must never go to the
// transport output.
func WithLogger(logger zerolog.Logger) ServerOption {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithVersion sets the version reported in serverInfo.
func WithVersion(version string) ServerOption {
	return func(s *Server) {
		s.version = version
	}
}

// NewServer creates a server answering tool calls with solver.
func NewServer(solver Solver, opts ...ServerOption) *Server {
	s := &Server{solver: solver, logger: zerolog.Nop(), version: "dev", maxMessage: maxMessageSize}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

type stdioConn struct {
	in  io.ReadCloser
	out io.WriteCloser
}

// Stdio returns a connection over the process's stdin and stdout.
func Stdio() io.ReadWriteCloser {
	return stdioConn{in: os.Stdin, out: os.Stdout}
}

func (c stdioConn) Read(p []byte) (int, error)  { return c.in.Read(p) }
func (c stdioConn) Write(p []byte) (int, error) { return c.out.Write(p) }

func (c stdioConn) Close() error {
	return errors.Join(c.in.Close(), c.out.Close())
}

// Serve processes requests from conn until the input ends or ctx is done,
// then closes conn. Both endings return nil.
func (s *Server) Serve(ctx context.Context, conn io.ReadWriteCloser) error {
	defer func() {
		if err := conn.Close(); err != nil {
			s.logger.Debug().Err(err).Msg("closing connection")
		}
	}()

	lines := make(chan inbound)
	readDone := make(chan error, 1)
	go func() {
		reader := bufio.NewReader(conn)
		for {
			msg, err := readMessage(reader, s.maxMessage)
			if err != nil {
				if errors.Is(err, io.EOF) {
					err = nil
				}
				readDone <- err
				return
			}
			select {
			case lines <- msg:
			case <-ctx.Done():
				return
			}
		}
	}()

	encoder := json.NewEncoder(conn)
	for {
		select {
		case <-ctx.Done():
			s.logger.Info().Msg("shutdown requested, closing transport")
			return nil
		case err := <-readDone:
			if err != nil {
				return fmt.Errorf("reading requests: %w", err)
			}
			s.logger.Info().Msg("input closed")
			return nil
		case msg := <-lines:
			if msg.oversized {
				s.logger.Warn().Int("limit", s.maxMessage).Msg("dropped oversized request")
				if err := writeError(encoder, json.RawMessage("null"), codeInvalidRequest,
					fmt.Sprintf("request exceeds %d bytes", s.maxMessage)); err != nil {
					return err
				}
				continue
			}
			if err := s.handleLine(ctx, encoder, msg.line); err != nil {
				return err
			}
		}
	}
}

type inbound struct {
	line      []byte
	oversized bool
}

// readMessage reads one newline-terminated message. A message longer than
// limit is consumed up to its newline and reported as oversized without
// being buffered. A final message without a newline is still returned.
func readMessage(r *bufio.Reader, limit int) (inbound, error) {
	var msg inbound
	for {
		chunk, err := r.ReadSlice('\n')
		if !msg.oversized {
			if len(msg.line)+len(bytes.TrimRight(chunk, "\r\n")) > limit {
				msg.oversized = true
				msg.line = nil
			} else {
				msg.line = append(msg.line, chunk...)
			}
		}
		switch {
		case errors.Is(err, bufio.ErrBufferFull):
			continue
		case err == nil:
		case errors.Is(err, io.EOF) && (len(msg.line) > 0 || msg.oversized):
		default:
			return inbound{}, err
		}
		msg.line = bytes.TrimRight(msg.line, "\r\n")
		return msg, nil
	}
}

// handleLine decodes and answers one message. Only write failures are
// returned; protocol problems are reported to the peer.
func (s *Server) handleLine(ctx context.Context, encoder *json.Encoder, line []byte) error {
	if len(line) == 0 {
		return nil
	}

	var req request
	if err := json.Unmarshal(line, &req); err != nil {
		return writeError(encoder, json.RawMessage("null"), codeParseError, "parse error: "+err.Error())
	}

	if req.JSONRPC != "2.0" {
		if req.isNotification() {
			return nil
		}
		return writeError(encoder, req.ID, codeInvalidRequest, "unsupported JSON-RPC version")
	}

	if req.isNotification() {
		s.logger.Debug().Str("method", req.Method).Msg("notification")
		return nil
	}

	return s.dispatch(ctx, encoder, &req)
}

func (s *Server) dispatch(ctx context.Context, encoder *json.Encoder, req *request) error {
	switch req.Method {
	case "initialize":
		return s.handleInitialize(encoder, req)
	case "ping":
		return writeResult(encoder, req.ID, map[string]any{})
	case "tools/list":
		if !s.initialized {
			return writeError(encoder, req.ID, codeInvalidRequest, "server not initialized (call initialize first)")
		}
		return writeResult(encoder, req.ID, toolsListResult{Tools: []toolDescription{longestWordToolDescription()}})
	case "tools/call":
		if !s.initialized {
			return writeError(encoder, req.ID, codeInvalidRequest, "server not initialized (call initialize first)")
		}
		return s.handleToolsCall(ctx, encoder, req)
	default:
		return writeError(encoder, req.ID, codeMethodNotFound, "unknown method: "+req.Method)
	}
}

func (s *Server) handleInitialize(encoder *json.Encoder, req *request) error {
	if len(req.Params) == 0 {
		return writeError(encoder, req.ID, codeInvalidParams, "params required for initialize")
	}
	var params initializeParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return writeError(encoder, req.ID, codeInvalidParams, "invalid initialize params: "+err.Error())
	}

	s.initialized = true
	s.logger.Info().
		Str("client", params.ClientInfo.Name).
		Str("client_version", params.ClientInfo.Version).
		Str("requested_protocol", params.ProtocolVersion).
		Msg("client initialized")

	return writeResult(encoder, req.ID, initializeResult{
		ProtocolVersion: protocolVersion,
		Capabilities: serverCapabilities{
			Tools: &toolCapability{},
		},
		ServerInfo: serverInfo{
			Name:    "spellbee",
			Version: s.version,
		},
	})
}

func (s *Server) handleToolsCall(ctx context.Context, encoder *json.Encoder, req *request) error {
	if len(req.Params) == 0 {
		return writeError(encoder, req.ID, codeInvalidParams, "params required for tools/call")
	}
	var params toolsCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return writeError(encoder, req.ID, codeInvalidParams, "invalid tools/call params: "+err.Error())
	}

	if params.Name != LongestWordTool {
		return writeError(encoder, req.ID, codeMethodNotFound,
			fmt.Sprintf("Unknown tool: %s (supported: %s)", params.Name, LongestWordTool))
	}

	return writeResult(encoder, req.ID, s.callTool(ctx, params.Arguments))
}

// callTool runs the tool, converting errors and panics into an error result.
func (s *Server) callTool(ctx context.Context, arguments json.RawMessage) (result toolsCallResult) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error().
				Interface("panic", r).
				Bytes("stack", debug.Stack()).
				Msg("tool call panicked")
			result = buildToolResult("", toolerr.Internal("internal error: %v", r))
		}
	}()

	output, err := s.runLongestWord(ctx, arguments)
	if err != nil {
		s.logger.Warn().Err(err).Str("category", string(toolerr.CategoryOf(err))).Msg("tool call failed")
	} else {
		s.logger.Debug().Str("result", output).Msg("tool call answered")
	}
	return buildToolResult(output, err)
}

func buildToolResult(output string, runErr error) toolsCallResult {
	if runErr != nil {
		return toolsCallResult{
			Content: []contentBlock{{Type: "text", Text: "Error: " + runErr.Error()}},
			IsError: true,
			ErrorInfo: &errorInfo{
				Category:  string(toolerr.CategoryOf(runErr)),
				Retryable: toolerr.Retryable(runErr),
			},
		}
	}
	return toolsCallResult{Content: []contentBlock{{Type: "text", Text: output}}}
}

func writeResult(encoder *json.Encoder, id json.RawMessage, result any) error {
	return encoder.Encode(response{
		JSONRPC: "2.0",
		ID:      id,
		Result:  result,
	})
}

func writeError(encoder *json.Encoder, id json.RawMessage, code int, message string) error {
	return encoder.Encode(response{
		JSONRPC: "2.0",
		ID:      id,
		Error:   &rpcError{Code: code, Message: message},
	})
}
