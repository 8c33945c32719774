package server

import (
	"io"
	"strings"

	"foodmedia/internal/models"
	"foodmedia/internal/service"

	"github.com/gofiber/fiber/v2"
)

// UploadImage handles POST /api/uploads/images. The file is converted to
// webp and stored under its content hash, so re-uploading the same bytes
// returns the same URLs.
func (s *Server) UploadImage(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	file, err := c.FormFile("image")
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest, models.NewValidationError("No file uploaded"))
	}

	src, err := file.Open()
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest, models.NewValidationError("Unable to read uploaded file"))
	}
	defer func() { _ = src.Close() }()

	content, err := io.ReadAll(src)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest, models.NewValidationError("Unable to read uploaded file"))
	}

	uploaded, err := s.imageService.Upload(c.UserContext(), service.UploadImageInput{
		UserID:      userID,
		Filename:    file.Filename,
		ContentType: file.Header.Get("Content-Type"),
		Content:     content,
	})
	if err != nil {
		return models.RespondWithError(c, models.StatusForError(err), err)
	}

	return c.Status(fiber.StatusCreated).JSON(uploaded)
}

// ServeImage handles GET /uploads/:hash/:file, serving the stored webp
// rendition from disk.
func (s *Server) ServeImage(c *fiber.Ctx) error {
	hash := strings.TrimSpace(c.Params("hash"))

	rendition := "master"
	if strings.HasPrefix(c.Params("file"), "thumb") {
		rendition = "thumb"
	}

	path, err := s.imageService.ResolveForServing(hash, rendition)
	if err != nil {
		return models.RespondWithError(c, models.StatusForError(err), err)
	}

	c.Set(fiber.HeaderContentType, "image/webp")
	c.Set(fiber.HeaderCacheControl, "public, max-age=31536000, immutable")
	return c.SendFile(path)
}
