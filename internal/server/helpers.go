package server

import (
	"errors"

	"mesa/internal/middleware"
	"mesa/internal/models"

	"github.com/gofiber/fiber/v2"
)

// errResponseWritten is a sentinel indicating the HTTP response was already
// committed by a helper. Handlers must return nil after seeing it.
var errResponseWritten = errors.New("response already written")

// actor returns the authenticated username stored by the auth middleware.
// On a missing local it writes a 401 and returns errResponseWritten.
func (s *Server) actor(c *fiber.Ctx) (string, error) {
	username, ok := c.Locals(middleware.UsernameLocal).(string)
	if !ok || username == "" {
		_ = models.RespondWithError(c, fiber.StatusUnauthorized,
			models.NewUnauthorizedError("authentication required"))
		return "", errResponseWritten
	}
	return username, nil
}

// parseID extracts a positive integer route parameter. On failure it writes
// a 400 JSON response and returns errResponseWritten.
func (s *Server) parseID(c *fiber.Ctx, param string) (int, error) {
	id, err := c.ParamsInt(param)
	if err != nil || id <= 0 {
		_ = models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid "+param))
		return 0, errResponseWritten
	}
	return id, nil
}
