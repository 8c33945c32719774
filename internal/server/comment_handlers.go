package server

import (
	"foodmedia/internal/models"
	"foodmedia/internal/service"

	"github.com/gofiber/fiber/v2"
)

// CreateComment creates a comment on a post (protected)
func (s *Server) CreateComment(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Content string `json:"content"`
	}
	if parseErr := c.BodyParser(&req); parseErr != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest, models.NewValidationError("Invalid request body"))
	}

	created, err := s.commentService.CreateComment(c.UserContext(), service.CreateCommentInput{
		UserID:  userID,
		PostID:  postID,
		Content: req.Content,
	})
	if err != nil {
		return models.RespondWithError(c, models.StatusForError(err), err)
	}

	return c.Status(fiber.StatusCreated).JSON(created)
}

// GetComments returns all comments for a post (public)
func (s *Server) GetComments(c *fiber.Ctx) error {
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	comments, err := s.commentService.ListComments(c.UserContext(), postID)
	if err != nil {
		return models.RespondWithError(c, models.StatusForError(err), err)
	}

	return c.JSON(comments)
}

// DeleteComment deletes a comment (owner or admin)
func (s *Server) DeleteComment(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	commentID, err := s.parseID(c, "commentId")
	if err != nil {
		return nil
	}

	if _, err := s.commentService.DeleteComment(c.UserContext(), service.DeleteCommentInput{
		UserID:    userID,
		CommentID: commentID,
	}); err != nil {
		return models.RespondWithError(c, models.StatusForError(err), err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}
