package models

import (
	"time"
)

// HashtagFollow represents a user following a hashtag
type HashtagFollow struct {
	UserID    string    `gorm:"type:varchar(26);primaryKey;column:user_id"`
	Tag       string    `gorm:"type:varchar(64);primaryKey;column:tag"`
	CreatedAt time.Time `gorm:"not null;column:created_at"`

	// Relationships
	User *User `gorm:"foreignKey:UserID;references:ID"`
}

// TableName specifies the table name for HashtagFollow
func (HashtagFollow) TableName() string {
	return "hashtag_follows"
}
