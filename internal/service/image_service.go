package service

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"image"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"foodmedia/internal/models"
	"foodmedia/internal/observability"

	"github.com/chai2010/webp"
	xdraw "golang.org/x/image/draw"
	_ "golang.org/x/image/webp" // register WebP decoder
)

const (
	DefaultUploadDir    = "/tmp/foodmedia/uploads"
	MaxUploadSizeBytes  = 10 * 1024 * 1024
	MasterMaxSize       = 2048
	ThumbnailMaxSize    = 640
	WebPEncodingQuality = 70
	uploadedURLPattern  = "/uploads/%s/%s"
)

type UploadImageInput struct {
	UserID      uint
	Filename    string
	ContentType string
	Content     []byte
}

// UploadedImage describes the stored files for one upload. URL points at the
// master rendition and is what goes into post.image_url or user.avatar_url.
type UploadedImage struct {
	Hash         string `json:"hash"`
	URL          string `json:"url"`
	ThumbnailURL string `json:"thumbnail_url"`
	Width        int    `json:"width"`
	Height       int    `json:"height"`
	SizeBytes    int64  `json:"size_bytes"`
}

// ImageService validates uploads and writes webp renditions under uploadDir.
// Files are content-addressed by hash, so re-uploading the same bytes is
// idempotent and never duplicates storage.
type ImageService struct {
	uploadDir string
}

func NewImageService(uploadDir string) *ImageService {
	if uploadDir == "" {
		uploadDir = DefaultUploadDir
	}
	return &ImageService{uploadDir: uploadDir}
}

// Upload validates, decodes, resizes and stores an image. The master is
// capped at 2048px on the long edge and a 640px thumbnail is written next
// to it, both as webp.
func (s *ImageService) Upload(ctx context.Context, in UploadImageInput) (*UploadedImage, error) {
	if err := ctx.Err(); err != nil {
		return nil, models.NewInternalError(err)
	}
	if in.UserID == 0 {
		return nil, models.NewValidationError("Invalid user")
	}
	if len(in.Content) == 0 {
		observability.UploadsTotal.WithLabelValues("rejected").Inc()
		return nil, models.NewValidationError("No file uploaded")
	}
	if int64(len(in.Content)) > MaxUploadSizeBytes {
		observability.UploadsTotal.WithLabelValues("rejected").Inc()
		return nil, models.NewValidationError(fmt.Sprintf("File too large (max %dMB)", MaxUploadSizeBytes/(1024*1024)))
	}

	detectedType := http.DetectContentType(in.Content)
	if !isAllowedImageMIME(detectedType) {
		observability.UploadsTotal.WithLabelValues("rejected").Inc()
		return nil, models.NewValidationError("Invalid image type")
	}

	decoded, format, err := image.Decode(bytes.NewReader(in.Content))
	if err != nil {
		observability.UploadsTotal.WithLabelValues("rejected").Inc()
		return nil, models.NewValidationError("Invalid image file")
	}
	if !isSupportedDecodedFormat(format) {
		observability.UploadsTotal.WithLabelValues("rejected").Inc()
		return nil, models.NewValidationError("Unsupported image format")
	}
	if provided := normalizeContentType(in.ContentType); strings.HasPrefix(provided, "image/") &&
		!isMatchingContentType(provided, decodedFormatToMime(format)) {
		observability.UploadsTotal.WithLabelValues("rejected").Inc()
		return nil, models.NewValidationError("Image content type mismatch")
	}

	hash := contentHash(in.Content)
	master := resizeToFit(decoded, MasterMaxSize, MasterMaxSize)
	thumb := resizeToFit(decoded, ThumbnailMaxSize, ThumbnailMaxSize)

	masterBytes, err := encodeWebP(master, WebPEncodingQuality)
	if err != nil {
		observability.UploadsTotal.WithLabelValues("failed").Inc()
		return nil, models.NewInternalError(err)
	}
	thumbBytes, err := encodeWebP(thumb, WebPEncodingQuality)
	if err != nil {
		observability.UploadsTotal.WithLabelValues("failed").Inc()
		return nil, models.NewInternalError(err)
	}

	masterAbs := filepath.Join(s.uploadDir, hash, "master.webp")
	thumbAbs := filepath.Join(s.uploadDir, hash, "thumb.webp")
	if err := writeBytesToFile(masterAbs, masterBytes); err != nil {
		observability.UploadsTotal.WithLabelValues("failed").Inc()
		return nil, models.NewInternalError(err)
	}
	if err := writeBytesToFile(thumbAbs, thumbBytes); err != nil {
		_ = os.Remove(masterAbs)
		observability.UploadsTotal.WithLabelValues("failed").Inc()
		return nil, models.NewInternalError(err)
	}

	observability.UploadsTotal.WithLabelValues("stored").Inc()
	mb := master.Bounds()
	return &UploadedImage{
		Hash:         hash,
		URL:          fmt.Sprintf(uploadedURLPattern, hash, "master.webp"),
		ThumbnailURL: fmt.Sprintf(uploadedURLPattern, hash, "thumb.webp"),
		Width:        mb.Dx(),
		Height:       mb.Dy(),
		SizeBytes:    int64(len(masterBytes)),
	}, nil
}

// ResolveForServing maps a hash and rendition name to the file on disk.
// The hash is validated as lowercase hex so crafted values cannot traverse
// out of the upload directory.
func (s *ImageService) ResolveForServing(hash, rendition string) (string, error) {
	if !isValidImageHash(hash) {
		return "", models.NewValidationError("Invalid image hash")
	}
	name := "master.webp"
	if rendition == "thumb" {
		name = "thumb.webp"
	}
	fullPath := filepath.Join(s.uploadDir, hash, name)
	if _, err := os.Stat(fullPath); err != nil {
		if os.IsNotExist(err) {
			return "", models.NewNotFoundError("Image", hash)
		}
		return "", models.NewInternalError(err)
	}
	return fullPath, nil
}

// isValidImageHash checks that the hash is strictly lowercase hex.
func isValidImageHash(hash string) bool {
	if len(hash) == 0 || len(hash) > 128 {
		return false
	}
	for _, c := range hash {
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') {
			return false
		}
	}
	return true
}

func resizeToFit(src image.Image, maxWidth, maxHeight int) image.Image {
	bounds := src.Bounds()
	w := bounds.Dx()
	h := bounds.Dy()
	if w <= 0 || h <= 0 {
		return src
	}
	if w <= maxWidth && h <= maxHeight {
		return src
	}

	scaleW := float64(maxWidth) / float64(w)
	scaleH := float64(maxHeight) / float64(h)
	scale := scaleW
	if scaleH < scale {
		scale = scaleH
	}
	newW := int(float64(w) * scale)
	newH := int(float64(h) * scale)
	if newW < 1 {
		newW = 1
	}
	if newH < 1 {
		newH = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, newW, newH))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, bounds, xdraw.Over, nil)
	return dst
}

func encodeWebP(img image.Image, quality int) ([]byte, error) {
	buf := bytes.NewBuffer(nil)
	if err := webp.Encode(buf, img, &webp.Options{Quality: float32(quality)}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func isAllowedImageMIME(contentType string) bool {
	switch normalizeContentType(contentType) {
	case "image/jpeg", "image/jpg", "image/png", "image/gif", "image/webp":
		return true
	default:
		return false
	}
}

func normalizeContentType(contentType string) string {
	if contentType == "" {
		return ""
	}
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return strings.ToLower(strings.TrimSpace(contentType))
	}
	return strings.ToLower(strings.TrimSpace(mediaType))
}

func isMatchingContentType(provided, detected string) bool {
	p := normalizeContentType(provided)
	d := normalizeContentType(detected)
	if p == d {
		return true
	}
	return (p == "image/jpg" && d == "image/jpeg") || (p == "image/jpeg" && d == "image/jpg")
}

func isSupportedDecodedFormat(format string) bool {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "jpeg", "jpg", "png", "gif", "webp":
		return true
	default:
		return false
	}
}

func decodedFormatToMime(format string) string {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "jpeg", "jpg":
		return "image/jpeg"
	case "png":
		return "image/png"
	case "gif":
		return "image/gif"
	case "webp":
		return "image/webp"
	default:
		return ""
	}
}

func contentHash(content []byte) string {
	sum := sha256.Sum256(content)
	return hex.EncodeToString(sum[:])
}

func writeBytesToFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}
