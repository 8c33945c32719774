package models

import "time"

// SavedPost is a user's bookmark on a post. The (user, post) pair is unique;
// like Like rows, bookmarks are hard-deleted on toggle-off.
type SavedPost struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_saved_user_post" json:"user_id"`
	PostID    uint      `gorm:"not null;uniqueIndex:idx_saved_user_post" json:"post_id"`
	CreatedAt time.Time `json:"created_at"`

	// Relationships
	User User `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Post Post `gorm:"foreignKey:PostID" json:"post,omitempty"`
}
