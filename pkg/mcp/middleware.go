package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/ursazoo/compdoc/pkg/mcplog"
)

// loggingMiddleware records every tool call in the JSONL call log and the
// debug log. Log failures never affect the result.
func (s *Server) loggingMiddleware() server.ToolHandlerMiddleware {
	return func(next server.ToolHandlerFunc) server.ToolHandlerFunc {
		return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			start := mcplog.Now()
			result, err := next(ctx, req)

			if logErr := s.calls.Record(req.Params.Name, req.GetArguments(), start, result, err); logErr != nil {
				s.logger.Warn("failed to write MCP call log", "error", logErr)
			}
			s.logger.Debug("MCP tool call",
				"tool", req.Params.Name,
				"duration_ms", mcplog.Now().Sub(start).Milliseconds(),
				"is_error", result != nil && result.IsError)
			return result, err
		}
	}
}
