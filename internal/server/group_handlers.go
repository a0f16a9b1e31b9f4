package server

import (
	"mesa/internal/models"

	"github.com/gofiber/fiber/v2"
)

type createGroupRequest struct {
	GroupName string   `json:"group_name"`
	Members   []string `json:"members"`
}

// CreateGroup makes a new group with the caller as creator.
func (s *Server) CreateGroup(c *fiber.Ctx) error {
	username, err := s.actor(c)
	if err != nil {
		return nil
	}
	var req createGroupRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	group, err := s.groups.Create(c.UserContext(), req.GroupName, username, req.Members)
	if err != nil {
		return models.RespondAppError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(group)
}

// GetMyGroups lists the groups the caller belongs to.
func (s *Server) GetMyGroups(c *fiber.Ctx) error {
	username, err := s.actor(c)
	if err != nil {
		return nil
	}
	groups, err := s.groups.ListFor(c.UserContext(), username)
	if err != nil {
		return models.RespondAppError(c, err)
	}
	if groups == nil {
		groups = []models.Group{}
	}
	return c.JSON(fiber.Map{"groups": groups})
}

// LeaveGroup removes the caller from a group.
func (s *Server) LeaveGroup(c *fiber.Ctx) error {
	username, err := s.actor(c)
	if err != nil {
		return nil
	}
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	if err := s.groups.Leave(c.UserContext(), id, username); err != nil {
		return models.RespondAppError(c, err)
	}
	return c.JSON(fiber.Map{"left": id})
}

// DeleteGroup removes a group the caller created.
func (s *Server) DeleteGroup(c *fiber.Ctx) error {
	username, err := s.actor(c)
	if err != nil {
		return nil
	}
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	if err := s.groups.Delete(c.UserContext(), id, username); err != nil {
		return models.RespondAppError(c, err)
	}
	return c.JSON(fiber.Map{"deleted": id})
}

// RecommendForGroup returns the classifier's cuisine pick for a group.
func (s *Server) RecommendForGroup(c *fiber.Ctx) error {
	if _, err := s.actor(c); err != nil {
		return nil
	}
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	rec, err := s.engine.Recommend(c.UserContext(), id)
	if err != nil {
		return models.RespondAppError(c, err)
	}
	return c.JSON(rec)
}

// GroupPreferences returns the per-cuisine aggregate for a group's members.
func (s *Server) GroupPreferences(c *fiber.Ctx) error {
	if _, err := s.actor(c); err != nil {
		return nil
	}
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	group, err := s.groups.Get(c.UserContext(), id)
	if err != nil {
		return models.RespondAppError(c, err)
	}
	stats, err := s.engine.AggregatePreferences(c.UserContext(), group.Members)
	if err != nil {
		return models.RespondAppError(c, err)
	}
	return c.JSON(fiber.Map{"group_id": id, "preferences": stats})
}

type groupDietaryRequest struct {
	Members []string `json:"members"`
}

// GroupDietary returns the union of the given members' dietary preferences.
func (s *Server) GroupDietary(c *fiber.Ctx) error {
	if _, err := s.actor(c); err != nil {
		return nil
	}
	var req groupDietaryRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	prefs, err := s.accounts.GroupDietary(c.UserContext(), req.Members)
	if err != nil {
		return models.RespondAppError(c, err)
	}
	if prefs == nil {
		prefs = []string{}
	}
	return c.JSON(fiber.Map{"dietary_preferences": prefs})
}
