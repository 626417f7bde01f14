package api

import (
	"github.com/gofiber/fiber/v2"
)

// handlePing returns a simple health check response.
func (s *Server) handlePing(c *fiber.Ctx) error {
	return c.JSON("pong")
}

// handleGetDomains handles GET /domains.
func (s *Server) handleGetDomains(c *fiber.Ctx) error {
	domains, err := s.store.GetDomains(c.Context())
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(domains)
}

// handleGetGraph handles GET /graph: every concept as a node and every
// relationship as a link between concept ids.
func (s *Server) handleGetGraph(c *fiber.Ctx) error {
	graph, err := s.store.GetKnowledgeGraph(c.Context())
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(graph)
}
