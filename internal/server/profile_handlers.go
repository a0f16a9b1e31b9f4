package server

import (
	"strings"

	"mesa/internal/models"
	"mesa/internal/service"

	"github.com/gofiber/fiber/v2"
)

type updateProfileRequest struct {
	NewUsername        string    `json:"new_username"`
	NewPassword        string    `json:"new_password"`
	ProfilePicture     *string   `json:"profile_picture"`
	FavoriteCuisines   *[]string `json:"favorite_cuisines"`
	DietaryPreferences *[]string `json:"dietary_preferences"`
}

// UpdateProfile updates the caller's profile. A new_username triggers the
// rename cascade across all tables; the response carries the username the
// client should use from now on.
func (s *Server) UpdateProfile(c *fiber.Ctx) error {
	username, err := s.actor(c)
	if err != nil {
		return nil
	}

	var req updateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	update := service.ProfileUpdate{
		Username:           username,
		NewUsername:        req.NewUsername,
		NewPassword:        req.NewPassword,
		ProfilePicture:     req.ProfilePicture,
		FavoriteCuisines:   req.FavoriteCuisines,
		DietaryPreferences: req.DietaryPreferences,
	}
	if err := s.accounts.UpdateProfile(c.UserContext(), update); err != nil {
		return models.RespondAppError(c, err)
	}

	current := username
	if req.NewUsername != "" {
		current = req.NewUsername
	}
	token, err := s.generateToken(current)
	if err != nil {
		return models.RespondAppError(c, models.NewInternalError(err))
	}
	return c.JSON(fiber.Map{"username": current, "token": token})
}

type cuisinesRequest struct {
	FavoriteCuisines []string `json:"favorite_cuisines"`
}

// UpdateFavorites replaces the caller's ordered favorite-cuisine list.
func (s *Server) UpdateFavorites(c *fiber.Ctx) error {
	username, err := s.actor(c)
	if err != nil {
		return nil
	}
	var req cuisinesRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	if err := s.accounts.UpdateFavorites(c.UserContext(), username, req.FavoriteCuisines); err != nil {
		return models.RespondAppError(c, err)
	}
	return c.JSON(fiber.Map{"favorite_cuisines": req.FavoriteCuisines})
}

type dietaryRequest struct {
	DietaryPreferences []string `json:"dietary_preferences"`
}

// UpdateDietary replaces the caller's dietary preferences.
func (s *Server) UpdateDietary(c *fiber.Ctx) error {
	username, err := s.actor(c)
	if err != nil {
		return nil
	}
	var req dietaryRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	if err := s.accounts.UpdateDietary(c.UserContext(), username, req.DietaryPreferences); err != nil {
		return models.RespondAppError(c, err)
	}
	return c.JSON(fiber.Map{"dietary_preferences": req.DietaryPreferences})
}

// GetUsernames lists personal account usernames.
func (s *Server) GetUsernames(c *fiber.Ctx) error {
	names, err := s.accounts.ListUsernames(c.UserContext(), true)
	if err != nil {
		return models.RespondAppError(c, err)
	}
	return c.JSON(fiber.Map{"usernames": names})
}

// GetAllUsernames lists every username, company accounts included.
func (s *Server) GetAllUsernames(c *fiber.Ctx) error {
	names, err := s.accounts.ListUsernames(c.UserContext(), false)
	if err != nil {
		return models.RespondAppError(c, err)
	}
	return c.JSON(fiber.Map{"usernames": names})
}

// FilterUsersByDietary returns users matching any of the comma-separated
// preferences in the query string.
func (s *Server) FilterUsersByDietary(c *fiber.Ctx) error {
	prefs := strings.Split(c.Query("preferences"), ",")
	users, err := s.accounts.FilterByDietary(c.UserContext(), prefs)
	if err != nil {
		return models.RespondAppError(c, err)
	}

	out := make([]fiber.Map, 0, len(users))
	for _, u := range users {
		out = append(out, fiber.Map{
			"username":            u.Username,
			"account_type":        u.AccountType,
			"dietary_preferences": u.DietaryPreferences,
		})
	}
	return c.JSON(fiber.Map{"users": out})
}
