// Package server contains the HTTP handlers for the application's API endpoints.
package server

import (
	"github.com/gofiber/fiber/v2"
)

// GetCategories handles GET /api/categories
func (s *Server) GetCategories(c *fiber.Ctx) error {
	categories, err := s.categoryRepo.ListPublished(c.Context())
	if err != nil {
		return mapServiceError(c, err)
	}
	return c.JSON(categories)
}

// GetCategoryPosts handles GET /api/categories/:slug/posts
func (s *Server) GetCategoryPosts(c *fiber.Ctx) error {
	ctx := c.Context()
	slug := c.Params("slug")
	page := parsePagination(c, defaultPageSize)

	category, posts, err := s.postService.ListCategoryPosts(ctx, slug, page.Limit, page.Offset)
	if err != nil {
		return mapServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"category": category,
		"posts":    posts,
	})
}

// GetLocations handles GET /api/locations
func (s *Server) GetLocations(c *fiber.Ctx) error {
	locations, err := s.locationRepo.ListPublished(c.Context())
	if err != nil {
		return mapServiceError(c, err)
	}
	return c.JSON(locations)
}
