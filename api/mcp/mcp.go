// Package mcp exposes the recommendation engine and the connection
// classifier as MCP (Model Context Protocol) tools.
package mcp

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/vdk888/knowledge/pkg/recommend"
	"github.com/vdk888/knowledge/pkg/storage"
	"github.com/vdk888/knowledge/pkg/utils"
)

type Config struct {
	// Store backs the concept_connections tool.
	Store storage.Driver

	// Engine backs the recommend_concepts tool.
	Engine *recommend.Engine

	// Noop for empty MCP server
	Noop bool

	Logger *slog.Logger
}

type Server struct {
	config    Config
	mcpServer *mcp.Server
	handler   *mcp.StreamableHTTPHandler
}

// NewServer creates a new MCP server with the knowledge graph tools.
func NewServer(c Config) (*Server, error) {
	s := &Server{
		config: c,
	}

	mcpServer := mcp.NewServer(
		&mcp.Implementation{
			Name:    "knowledge",
			Version: utils.Version,
		},
		&mcp.ServerOptions{},
	)

	if !c.Noop {
		if c.Store == nil {
			return nil, errors.New("storage driver is required")
		}
		if c.Engine == nil {
			return nil, errors.New("recommendation engine is required")
		}
		if c.Logger == nil {
			return nil, errors.New("logger is required")
		}

		mcp.AddTool(mcpServer, &mcp.Tool{
			Name:        recommendToolName,
			Description: recommendDescription,
		}, s.handleRecommend)

		mcp.AddTool(mcpServer, &mcp.Tool{
			Name:        connectionsToolName,
			Description: connectionsDescription,
		}, s.handleConnections)
	}

	s.mcpServer = mcpServer

	// Stateless: every request is served by the same tool set.
	s.handler = mcp.NewStreamableHTTPHandler(
		func(_ *http.Request) *mcp.Server {
			return mcpServer
		},
		&mcp.StreamableHTTPOptions{
			Stateless: true,
		},
	)

	return s, nil
}

// Handler returns the HTTP handler for the MCP server.
func (s *Server) Handler() http.Handler {
	return s.handler
}
