package server

import (
	"foodmedia/internal/models"

	"github.com/gofiber/fiber/v2"
)

// FollowUser handles POST /api/users/:id/follow. Following twice is a no-op.
func (s *Server) FollowUser(c *fiber.Ctx) error {
	followerID := c.Locals("userID").(uint)

	followeeID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.followService.Follow(c.UserContext(), followerID, followeeID); err != nil {
		return models.RespondWithError(c, models.StatusForError(err), err)
	}

	return c.JSON(fiber.Map{"following": true})
}

// UnfollowUser handles DELETE /api/users/:id/follow
func (s *Server) UnfollowUser(c *fiber.Ctx) error {
	followerID := c.Locals("userID").(uint)

	followeeID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.followService.Unfollow(c.UserContext(), followerID, followeeID); err != nil {
		return models.RespondWithError(c, models.StatusForError(err), err)
	}

	return c.JSON(fiber.Map{"following": false})
}

// GetFollowers handles GET /api/users/:id/followers
func (s *Server) GetFollowers(c *fiber.Ctx) error {
	userID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	users, err := s.followService.ListFollowers(c.UserContext(), userID)
	if err != nil {
		return models.RespondWithError(c, models.StatusForError(err), err)
	}

	return c.JSON(users)
}

// GetFollowing handles GET /api/users/:id/following
func (s *Server) GetFollowing(c *fiber.Ctx) error {
	userID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	users, err := s.followService.ListFollowees(c.UserContext(), userID)
	if err != nil {
		return models.RespondWithError(c, models.StatusForError(err), err)
	}

	return c.JSON(users)
}

// GetFollowCounts handles GET /api/users/:id/follow-counts
func (s *Server) GetFollowCounts(c *fiber.Ctx) error {
	userID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	counts, err := s.followService.Counts(c.UserContext(), userID)
	if err != nil {
		return models.RespondWithError(c, models.StatusForError(err), err)
	}

	return c.JSON(counts)
}
