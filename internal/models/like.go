package models

import "time"

// Like marks that a user liked a post.
// The combination of UserID and PostID must be unique, which is what keeps a
// post's like list free of duplicate user references even when two like
// requests for the same post race.
type Like struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_like_user_post" json:"user"`
	PostID    uint      `gorm:"not null;uniqueIndex:idx_like_user_post" json:"-"`
	CreatedAt time.Time `json:"created_at"`
}
