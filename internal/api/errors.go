package api

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/nocturne-journal/nocturne/internal/contract"
)

const (
	msgMethodNotAllowed = "Method not allowed"
	msgInternal         = "Internal server error"
)

type errorBody struct {
	Error string `json:"error"`
}

func methodNotAllowed(c *fiber.Ctx) error {
	return fiber.NewError(fiber.StatusMethodNotAllowed, msgMethodNotAllowed)
}

// handleError is the single place errors become status codes. Anything that
// is not a validation or routing error is logged in full and answered with a
// generic 500 so model output and store details never reach the client.
func (s *Server) handleError(c *fiber.Ctx, err error) error {
	var verr *contract.ValidationError
	if errors.As(err, &verr) {
		return c.Status(fiber.StatusBadRequest).JSON(errorBody{Error: verr.Message})
	}

	var ferr *fiber.Error
	if errors.As(err, &ferr) && ferr.Code < fiber.StatusInternalServerError {
		return c.Status(ferr.Code).JSON(errorBody{Error: ferr.Message})
	}

	s.logger.ErrorContext(c.UserContext(), "request_failed",
		"method", c.Method(),
		"path", c.Path(),
		"error", err.Error(),
	)
	return c.Status(fiber.StatusInternalServerError).JSON(errorBody{Error: msgInternal})
}
