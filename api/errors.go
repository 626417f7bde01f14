package api

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/vdk888/knowledge/pkg/knowledge"
	"github.com/vdk888/knowledge/pkg/storage"
)

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// fail maps err onto a status code. Backend faults are logged and hidden
// behind a generic message.
func (s *Server) fail(c *fiber.Ctx, err error) error {
	var (
		nf  storage.NotFoundError
		ce  storage.ConflictError
		inv *knowledge.ValidationError
	)

	switch {
	case errors.As(err, &nf):
		return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{Error: nf.Error()})
	case errors.As(err, &inv):
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: inv.Error()})
	case errors.As(err, &ce):
		return c.Status(fiber.StatusConflict).JSON(ErrorResponse{Error: ce.Error()})
	}

	s.logger.Error("request failed",
		"method", c.Method(),
		"path", c.Path(),
		"request_id", requestIDOf(c),
		"error", err,
	)
	return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Error: "internal server error"})
}

func badRequest(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: msg})
}

// idParam parses a positive int64 path parameter.
func idParam(c *fiber.Ctx, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Params(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%s must be a positive integer", name)
	}
	return id, nil
}
