package server

import (
	"mesa/internal/models"

	"github.com/gofiber/fiber/v2"
)

type createPostRequest struct {
	Text      string `json:"post_text"`
	ImageData string `json:"image_data"`
}

// CreatePost adds a post for the caller.
func (s *Server) CreatePost(c *fiber.Ctx) error {
	username, err := s.actor(c)
	if err != nil {
		return nil
	}
	var req createPostRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	post, err := s.posts.Create(c.UserContext(), username, req.Text, req.ImageData)
	if err != nil {
		return models.RespondAppError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(post)
}

// GetPosts returns the feed, newest first. An optional username query
// narrows it to one author.
func (s *Server) GetPosts(c *fiber.Ctx) error {
	var (
		posts []models.Post
		err   error
	)
	if author := c.Query("username"); author != "" {
		posts, err = s.posts.ListFor(c.UserContext(), author)
	} else {
		posts, err = s.posts.List(c.UserContext())
	}
	if err != nil {
		return models.RespondAppError(c, err)
	}
	if posts == nil {
		posts = []models.Post{}
	}
	return c.JSON(fiber.Map{"posts": posts})
}

// DeletePost removes the caller's post.
func (s *Server) DeletePost(c *fiber.Ctx) error {
	username, err := s.actor(c)
	if err != nil {
		return nil
	}
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	if err := s.posts.Delete(c.UserContext(), id, username); err != nil {
		return models.RespondAppError(c, err)
	}
	return c.JSON(fiber.Map{"deleted": id})
}
