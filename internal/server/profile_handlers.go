// Package server contains the HTTP handlers for the application's API endpoints.
package server

import (
	"inkwell/internal/models"
	"inkwell/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetUserProfile handles GET /api/users/:username
func (s *Server) GetUserProfile(c *fiber.Ctx) error {
	username := c.Params("username")

	user, err := s.profileService.GetByUsername(c.Context(), username)
	if err != nil {
		return mapServiceError(c, err)
	}

	return c.JSON(user)
}

// GetUserPosts handles GET /api/users/:username/posts. Profile owners see
// every post they wrote; visitors only see the publicly visible ones.
func (s *Server) GetUserPosts(c *fiber.Ctx) error {
	ctx := c.Context()
	username := c.Params("username")
	page := parsePagination(c, defaultPageSize)
	currentUserID, _ := s.optionalUserID(c)

	user, posts, err := s.postService.ListUserPosts(ctx, username, currentUserID, page.Limit, page.Offset)
	if err != nil {
		return mapServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"user":  user,
		"posts": posts,
	})
}

// GetMyProfile handles GET /api/users/me
func (s *Server) GetMyProfile(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	user, err := s.profileService.GetByID(c.Context(), userID)
	if err != nil {
		return mapServiceError(c, err)
	}

	return c.JSON(user)
}

// UpdateMyProfile handles PUT /api/users/me
func (s *Server) UpdateMyProfile(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var req struct {
		FirstName *string `json:"first_name"`
		LastName  *string `json:"last_name"`
		Email     *string `json:"email"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	user, err := s.profileService.UpdateOwnProfile(c.Context(), service.UpdateProfileInput{
		UserID:    userID,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
	})
	if err != nil {
		return mapServiceError(c, err)
	}

	return c.JSON(user)
}
