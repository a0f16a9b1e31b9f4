package server

import (
	"mesa/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GetRestaurants returns a page of the catalog, optionally filtered by the
// q query over name, city, and cuisine style.
func (s *Server) GetRestaurants(c *fiber.Ctx) error {
	page, err := s.restaurants.Search(
		c.UserContext(),
		c.Query("q"),
		c.QueryInt("page", 1),
		c.QueryInt("page_size", 0),
	)
	if err != nil {
		return models.RespondAppError(c, err)
	}
	return c.JSON(page)
}

// GetRestaurant returns one catalog entry.
func (s *Server) GetRestaurant(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	restaurant, err := s.restaurants.Get(c.UserContext(), uint(id))
	if err != nil {
		return models.RespondAppError(c, err)
	}
	return c.JSON(restaurant)
}
