// Package mcp exposes documentation generation as MCP tools over stdio.
package mcp

import (
	"log/slog"

	"github.com/mark3labs/mcp-go/server"

	"github.com/ursazoo/compdoc/pkg/catalog"
	"github.com/ursazoo/compdoc/pkg/mcplog"
	"github.com/ursazoo/compdoc/pkg/pipeline"
)

// ServerName is the MCP server name advertised to clients.
const ServerName = "compdoc"

// Version is reported to clients. It is overridden at build time.
var Version = "0.1.0-dev"

// Generator runs documentation jobs. *pipeline.Service implements it.
type Generator interface {
	All() (*pipeline.Report, error)
	Component(name string) (*pipeline.Report, error)
	Staged() (*pipeline.Report, error)
	Document(name string) (string, error)
	Query() (*catalog.QueryService, error)
}

// Server implements the MCP server for compdoc.
type Server struct {
	mcpServer *server.MCPServer
	gen       Generator
	calls     *mcplog.Logger // nil disables the call log
	logger    *slog.Logger
}

// NewServer creates a server backed by gen. calls may be nil.
func NewServer(gen Generator, calls *mcplog.Logger, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{gen: gen, calls: calls, logger: logger}

	s.mcpServer = server.NewMCPServer(
		ServerName,
		Version,
		server.WithToolCapabilities(false),
		server.WithRecovery(),
		server.WithToolHandlerMiddleware(s.loggingMiddleware()),
	)

	s.mcpServer.AddTools(
		server.ServerTool{Tool: generateAllTool(), Handler: s.handleGenerateAll},
		server.ServerTool{Tool: generateComponentTool(), Handler: s.handleGenerateComponent},
		server.ServerTool{Tool: generateStagedTool(), Handler: s.handleGenerateStaged},
		server.ServerTool{Tool: getComponentDocTool(), Handler: s.handleGetComponentDoc},
		server.ServerTool{Tool: listComponentsTool(), Handler: s.handleListComponents},
		server.ServerTool{Tool: searchComponentsTool(), Handler: s.handleSearchComponents},
	)

	return s
}

// MCPServer returns the underlying server, e.g. for in-process clients.
func (s *Server) MCPServer() *server.MCPServer { return s.mcpServer }

// ServeStdio serves on stdin/stdout until the input is closed.
func (s *Server) ServeStdio() error {
	s.logger.Info("MCP server listening on stdio", "name", ServerName, "version", Version)
	return server.ServeStdio(s.mcpServer)
}
