package models

import (
	"time"
)

// Mention represents a user being mentioned in a post caption.
// The mentions feed is ordered by mention creation time, not post time.
type Mention struct {
	ID        string    `gorm:"type:varchar(26);primaryKey;column:id"`
	UserID    string    `gorm:"type:varchar(26);not null;index:mentions_user_created_ix,priority:1;column:user_id"`
	PostID    string    `gorm:"type:varchar(26);not null;column:post_id"`
	AuthorID  string    `gorm:"type:varchar(26);not null;column:author_id"`
	CreatedAt time.Time `gorm:"not null;index:mentions_user_created_ix,priority:2;column:created_at"`

	// Relationships
	User *User `gorm:"foreignKey:UserID;references:ID"`
	Post *Post `gorm:"foreignKey:PostID;references:ID"`
}

// TableName specifies the table name for Mention
func (Mention) TableName() string {
	return "mentions"
}
