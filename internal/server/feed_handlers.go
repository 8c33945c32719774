package server

import (
	"foodmedia/internal/models"
	"foodmedia/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetFeed handles GET /api/feed?page=N&category=ID
func (s *Server) GetFeed(c *fiber.Ctx) error {
	in := service.FeedInput{
		ViewerID: currentUserID(c),
		Page:     c.QueryInt("page", 0),
	}

	if raw := c.QueryInt("category", 0); raw > 0 {
		categoryID := uint(raw)
		in.CategoryID = &categoryID
	}

	page, err := s.feedService.GetFeed(c.Context(), in)
	if err != nil {
		return models.RespondWithError(c, models.StatusForError(err), err)
	}

	return c.JSON(page)
}

// GetDiscoveryFeed handles GET /api/feed/discover. The route ships enabled
// and can be switched off via the discovery_feed flag.
func (s *Server) GetDiscoveryFeed(c *fiber.Ctx) error {
	viewerID := currentUserID(c)

	if !s.featureFlags.EnabledOrDefault("discovery_feed", viewerID, true) {
		return models.RespondWithError(c, fiber.StatusNotFound,
			models.NewNotFoundError("Feed", "discover"))
	}

	page, err := s.feedService.GetDiscoveryFeed(c.Context(), viewerID)
	if err != nil {
		return models.RespondWithError(c, models.StatusForError(err), err)
	}

	return c.JSON(page)
}
