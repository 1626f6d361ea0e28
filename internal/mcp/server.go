package mcp

import (
	"context"

	mcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/olivermillard/mention/internal/directory"
	"go.uber.org/zap"
)

const serverName = "mention"

// Server exposes mention resolution as MCP tools.
type Server struct {
	server *mcp.Server
	tools  *ToolContext
}

// NewServer registers the tools against provider.
func NewServer(provider directory.Provider, version string, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	server := mcp.NewServer(&mcp.Implementation{Name: serverName, Version: version}, nil)
	tools := &ToolContext{Provider: provider, Logger: logger}
	RegisterTools(server, tools)
	return &Server{server: server, tools: tools}
}

// Run serves over stdio until ctx is cancelled or the client disconnects.
func (s *Server) Run(ctx context.Context) error {
	s.tools.Logger.Info("mcp server starting", zap.String("name", serverName))
	return s.server.Run(ctx, &mcp.StdioTransport{})
}
