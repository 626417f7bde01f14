package api

import (
	"github.com/gofiber/fiber/v2"

	"github.com/vdk888/knowledge/pkg/connections"
	"github.com/vdk888/knowledge/pkg/knowledge"
	"github.com/vdk888/knowledge/pkg/storage"
)

// handleListConcepts handles GET /concepts, optionally filtered by ?domain=.
func (s *Server) handleListConcepts(c *fiber.Ctx) error {
	var (
		concepts []knowledge.Concept
		err      error
	)

	if domain := c.Query("domain"); domain != "" {
		concepts, err = s.store.GetConceptsByDomain(c.Context(), domain)
	} else {
		concepts, err = s.store.GetConcepts(c.Context())
	}
	if err != nil {
		return s.fail(c, err)
	}

	return c.JSON(concepts)
}

// handleSearchConcepts handles GET /concepts/search?q=.
func (s *Server) handleSearchConcepts(c *fiber.Ctx) error {
	q := c.Query("q")
	if q == "" {
		return badRequest(c, "q parameter is required")
	}

	concepts, err := s.store.SearchConcepts(c.Context(), q)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(concepts)
}

func (s *Server) handleGetConcept(c *fiber.Ctx) error {
	id, err := idParam(c, "id")
	if err != nil {
		return badRequest(c, err.Error())
	}

	concept, err := s.store.GetConcept(c.Context(), id)
	if err != nil {
		return s.fail(c, err)
	}
	if concept == nil {
		return s.fail(c, storage.NotFoundError{Entity: "concept", ID: id})
	}

	return c.JSON(concept)
}

// handleGetConnections handles GET /concepts/:id/connections.
func (s *Server) handleGetConnections(c *fiber.Ctx) error {
	id, err := idParam(c, "id")
	if err != nil {
		return badRequest(c, err.Error())
	}

	concept, err := s.store.GetConcept(c.Context(), id)
	if err != nil {
		return s.fail(c, err)
	}
	if concept == nil {
		return s.fail(c, storage.NotFoundError{Entity: "concept", ID: id})
	}

	conns, err := connections.Classify(c.Context(), s.store, id)
	if err != nil {
		return s.fail(c, err)
	}

	return c.JSON(conns)
}

// handleCreateConcept handles POST /concepts.
func (s *Server) handleCreateConcept(c *fiber.Ctx) error {
	var in knowledge.NewConcept
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "invalid request body")
	}

	concept, err := s.store.CreateConcept(c.Context(), in)
	if err != nil {
		return s.fail(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(concept)
}

// handleCreateRelationship handles POST /relationships.
func (s *Server) handleCreateRelationship(c *fiber.Ctx) error {
	var in knowledge.NewConceptRelationship
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "invalid request body")
	}

	rel, err := s.store.CreateConceptRelationship(c.Context(), in)
	if err != nil {
		return s.fail(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(rel)
}
