package server

import (
	"time"

	"mesa/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

type registerRequest struct {
	Username    string `json:"username"`
	Password    string `json:"password"`
	AccountType string `json:"account_type"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Register creates a new account.
func (s *Server) Register(c *fiber.Ctx) error {
	var req registerRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	user, err := s.accounts.Register(c.UserContext(), req.Username, req.Password, req.AccountType)
	if err != nil {
		return models.RespondAppError(c, err)
	}

	token, err := s.generateToken(user.Username)
	if err != nil {
		return models.RespondAppError(c, models.NewInternalError(err))
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"token":        token,
		"username":     user.Username,
		"account_type": user.AccountType,
	})
}

// Login verifies credentials and issues a token along with the profile
// fields the client needs immediately.
func (s *Server) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	user, err := s.accounts.Authenticate(c.UserContext(), req.Username, req.Password)
	if err != nil {
		return models.RespondAppError(c, err)
	}

	token, err := s.generateToken(user.Username)
	if err != nil {
		return models.RespondAppError(c, models.NewInternalError(err))
	}
	return c.JSON(fiber.Map{
		"token":               token,
		"username":            user.Username,
		"account_type":        user.AccountType,
		"profile_picture":     user.ProfilePicture,
		"favorite_cuisines":   user.FavoriteCuisines,
		"dietary_preferences": user.DietaryPreferences,
	})
}

func (s *Server) generateToken(username string) (string, error) {
	claims := jwt.MapClaims{
		"sub": username,
		"jti": uuid.New().String(),
		"iat": time.Now().Unix(),
		"exp": time.Now().Add(24 * time.Hour).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.config.JWTSecret))
}
