package server

import (
	"context"
	"errors"
	"strings"
	"time"

	"foodmedia/internal/models"
	"foodmedia/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetAllUsers handles GET /api/users
func (s *Server) GetAllUsers(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	page := parsePagination(c, 100)

	users, err := s.userService.ListUsers(ctx, page.Limit, page.Offset)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return c.Status(fiber.StatusGatewayTimeout).JSON(fiber.Map{
				"error": "Request timeout",
			})
		}
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	return c.JSON(users)
}

// GetUserProfile handles GET /api/users/:id, returning the user with their
// most recent posts preloaded.
func (s *Server) GetUserProfile(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	user, err := s.userService.GetProfile(c.Context(), id, profilePostLimit)
	if err != nil {
		return models.RespondWithError(c, models.StatusForError(err), err)
	}

	return c.JSON(user)
}

const profilePostLimit = 20

// GetMyProfile handles GET /api/users/me
func (s *Server) GetMyProfile(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	user, err := s.userService.GetUserByID(c.Context(), userID)
	if err != nil {
		return models.RespondWithError(c, models.StatusForError(err), err)
	}

	return c.JSON(user)
}

type profileRequest struct {
	DisplayName string `json:"display_name"`
	Bio         string `json:"bio"`
	AvatarURL   string `json:"avatar_url"`
}

// CompleteMyProfile handles POST /api/users/me/complete-profile. Display
// name is required; a missing avatar falls back to the configured default.
func (s *Server) CompleteMyProfile(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var req profileRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	user, err := s.userService.CompleteProfile(c.Context(), service.CompleteProfileInput{
		UserID:      userID,
		DisplayName: req.DisplayName,
		Bio:         req.Bio,
		AvatarURL:   req.AvatarURL,
	})
	if err != nil {
		return models.RespondWithError(c, models.StatusForError(err), err)
	}

	return c.JSON(user)
}

// UpdateMyProfile handles PUT /api/users/me. Empty fields are left unchanged.
func (s *Server) UpdateMyProfile(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var req profileRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	user, err := s.userService.UpdateProfile(c.Context(), service.UpdateProfileInput{
		UserID:      userID,
		DisplayName: req.DisplayName,
		Bio:         req.Bio,
		AvatarURL:   req.AvatarURL,
	})
	if err != nil {
		return models.RespondWithError(c, models.StatusForError(err), err)
	}

	return c.JSON(user)
}

// GetMySavedPosts handles GET /api/users/me/saved-posts
func (s *Server) GetMySavedPosts(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	page := parsePagination(c, 20)

	posts, err := s.savedRepo.ListByUser(c.Context(), userID, page.Limit, page.Offset)
	if err != nil {
		return models.RespondWithError(c, models.StatusForError(err), err)
	}

	return c.JSON(posts)
}

// PromoteToAdmin handles POST /api/users/:id/promote-admin (admin only)
// Admin check is enforced by AdminRequired middleware on the route.
func (s *Server) PromoteToAdmin(c *fiber.Ctx) error {
	targetID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	target, err := s.userService.SetAdmin(c.Context(), targetID, true)
	if err != nil {
		return models.RespondWithError(c, models.StatusForError(err), err)
	}

	return c.JSON(fiber.Map{"message": "User promoted to admin", "user": target})
}

// DemoteFromAdmin handles POST /api/users/:id/demote-admin (admin only)
// Admin check is enforced by AdminRequired middleware on the route.
func (s *Server) DemoteFromAdmin(c *fiber.Ctx) error {
	targetID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	if strings.EqualFold(s.config.Env, "development") && targetID == 1 {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("cannot demote protected development root admin user"))
	}

	target, err := s.userService.SetAdmin(c.Context(), targetID, false)
	if err != nil {
		return models.RespondWithError(c, models.StatusForError(err), err)
	}

	return c.JSON(fiber.Map{"message": "User demoted from admin", "user": target})
}
