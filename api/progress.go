package api

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/vdk888/knowledge/pkg/eventstream"
	"github.com/vdk888/knowledge/pkg/knowledge"
)

// CreateProgressRequest is the body of POST /users/:userID/progress.
type CreateProgressRequest struct {
	ConceptID int64      `json:"conceptId"`
	IsLearned bool       `json:"isLearned"`
	LearnedAt *time.Time `json:"learnedAt,omitempty"`
}

func (s *Server) handleGetProgress(c *fiber.Ctx) error {
	userID, err := idParam(c, "userID")
	if err != nil {
		return badRequest(c, err.Error())
	}

	rows, err := s.store.GetUserProgress(c.Context(), userID)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(rows)
}

// handleCreateProgress handles POST /users/:userID/progress. Posting twice
// for the same concept updates the existing row.
func (s *Server) handleCreateProgress(c *fiber.Ctx) error {
	userID, err := idParam(c, "userID")
	if err != nil {
		return badRequest(c, err.Error())
	}

	var req CreateProgressRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}

	p, err := s.store.CreateUserProgress(c.Context(), knowledge.NewUserProgress{
		UserID:    userID,
		ConceptID: req.ConceptID,
		IsLearned: req.IsLearned,
		LearnedAt: req.LearnedAt,
	})
	if err != nil {
		return s.fail(c, err)
	}

	s.publishProgress(c.Context(), *p, eventstream.ProgressUpserted, requestIDOf(c))
	return c.Status(fiber.StatusCreated).JSON(p)
}

// handleUpdateProgress handles PATCH /progress/:id.
func (s *Server) handleUpdateProgress(c *fiber.Ctx) error {
	id, err := idParam(c, "id")
	if err != nil {
		return badRequest(c, err.Error())
	}

	var update knowledge.ProgressUpdate
	if err := c.BodyParser(&update); err != nil {
		return badRequest(c, "invalid request body")
	}

	p, err := s.store.UpdateUserProgress(c.Context(), id, update)
	if err != nil {
		return s.fail(c, err)
	}

	s.publishProgress(c.Context(), *p, eventstream.ProgressPatched, requestIDOf(c))
	return c.JSON(p)
}

// publishProgress emits a progress event. The write already succeeded, so a
// publish failure is only logged.
func (s *Server) publishProgress(ctx context.Context, p knowledge.UserProgress, action eventstream.ProgressAction, requestID string) {
	if s.publisher == nil {
		return
	}

	event := eventstream.NewProgressEvent(p, action, requestID, time.Now().UTC())
	if err := s.publisher.PublishProgress(ctx, event); err != nil {
		s.logger.Warn("failed to publish progress event",
			"progress_id", p.ID,
			"request_id", requestID,
			"error", err,
		)
	}
}

// handleGetRecommendations handles GET /users/:userID/recommendations.
func (s *Server) handleGetRecommendations(c *fiber.Ctx) error {
	userID, err := idParam(c, "userID")
	if err != nil {
		return badRequest(c, err.Error())
	}

	recs, err := s.engine.ForUser(c.Context(), userID)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(recs)
}
