package server

import (
	"mesa/internal/models"

	"github.com/gofiber/fiber/v2"
)

type friendRequest struct {
	Friend string `json:"friend"`
}

// GetFriends returns the caller's friend list.
func (s *Server) GetFriends(c *fiber.Ctx) error {
	username, err := s.actor(c)
	if err != nil {
		return nil
	}
	friends, err := s.friends.List(c.UserContext(), username)
	if err != nil {
		return models.RespondAppError(c, err)
	}
	if friends == nil {
		friends = []string{}
	}
	return c.JSON(fiber.Map{"friends": friends})
}

// AddFriend adds a friend to the caller's list and returns the updated list.
func (s *Server) AddFriend(c *fiber.Ctx) error {
	username, err := s.actor(c)
	if err != nil {
		return nil
	}
	var req friendRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	friends, err := s.friends.Add(c.UserContext(), username, req.Friend)
	if err != nil {
		return models.RespondAppError(c, err)
	}
	return c.JSON(fiber.Map{"friends": friends})
}

// RemoveFriend drops a friend from the caller's list.
func (s *Server) RemoveFriend(c *fiber.Ctx) error {
	username, err := s.actor(c)
	if err != nil {
		return nil
	}
	friend := c.Params("friend")
	friends, err := s.friends.Remove(c.UserContext(), username, friend)
	if err != nil {
		return models.RespondAppError(c, err)
	}
	if friends == nil {
		friends = []string{}
	}
	return c.JSON(fiber.Map{"friends": friends})
}
