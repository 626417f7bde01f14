package api

import (
	"fmt"
	"log/slog"

	"github.com/gofiber/adaptor/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vdk888/knowledge/api/mcp"
	"github.com/vdk888/knowledge/pkg/eventstream"
	"github.com/vdk888/knowledge/pkg/recommend"
	"github.com/vdk888/knowledge/pkg/storage"
)

// Server is the API server for the concept graph.
type Server struct {
	config    Config
	store     storage.Driver
	engine    *recommend.Engine
	publisher eventstream.Publisher
	logger    *slog.Logger
	app       *fiber.App
}

// NewServer creates a new API server.
// The store is injected so the caller owns its lifecycle; the publisher
// receives an event after every successful progress write.
func NewServer(config Config, store storage.Driver, publisher eventstream.Publisher, logger *slog.Logger) (*Server, error) {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
	})

	engine := recommend.NewEngine(store, logger)

	mcpServer, err := mcp.NewServer(mcp.Config{
		Store:  store,
		Engine: engine,
		Noop:   config.DisableMCP,
		Logger: logger,
	})
	if err != nil {
		return nil, fmt.Errorf("creating MCP server: %w", err)
	}

	s := &Server{
		config:    config,
		store:     store,
		engine:    engine,
		publisher: publisher,
		logger:    logger,
		app:       app,
	}

	app.Use(s.requestID)

	app.Get("/ping", s.handlePing)
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))
	app.All("/mcp", adaptor.HTTPHandler(mcpServer.Handler()))

	app.Get("/domains", s.handleGetDomains)
	app.Get("/graph", s.handleGetGraph)

	app.Get("/concepts", s.handleListConcepts)
	app.Get("/concepts/search", s.handleSearchConcepts)
	app.Get("/concepts/:id", s.handleGetConcept)
	app.Get("/concepts/:id/connections", s.handleGetConnections)
	app.Post("/concepts", s.handleCreateConcept)

	app.Post("/relationships", s.handleCreateRelationship)

	app.Get("/users/:userID/progress", s.handleGetProgress)
	app.Post("/users/:userID/progress", s.handleCreateProgress)
	app.Patch("/progress/:id", s.handleUpdateProgress)
	app.Get("/users/:userID/recommendations", s.handleGetRecommendations)

	return s, nil
}

// Run starts the API server on the configured address.
func (s *Server) Run() error {
	s.logger.Info("starting API server", "listen", s.config.ListenAddr)
	return s.app.Listen(s.config.ListenAddr)
}

// Shutdown gracefully shuts down the API server.
func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}
