package models

import "time"

// PostMediaType tags the kind of attachment stored in a PostMedia row.
type PostMediaType string

const (
	// PostMediaImage marks an image attachment.
	PostMediaImage PostMediaType = "image"
	// PostMediaVideo marks a video attachment.
	PostMediaVideo PostMediaType = "video"
)

// PostMedia is an auxiliary attachment on a post beyond the main image.
type PostMedia struct {
	ID        uint          `gorm:"primaryKey" json:"id"`
	PostID    uint          `gorm:"not null;index" json:"post_id"`
	URL       string        `gorm:"not null" json:"url"`
	Type      PostMediaType `gorm:"type:varchar(20);not null;default:'image'" json:"type"`
	CreatedAt time.Time     `json:"created_at"`

	Post Post `gorm:"foreignKey:PostID" json:"post,omitempty"`
}
