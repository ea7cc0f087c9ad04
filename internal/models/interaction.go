package models

import (
	"time"
)

// Interaction kind constants
const (
	InteractionKindLike = "like"
	InteractionKindSave = "save"
)

// Like represents a viewer liking a piece of content
type Like struct {
	UserID    string    `gorm:"type:varchar(26);primaryKey;column:user_id"`
	PostID    string    `gorm:"type:varchar(26);primaryKey;index;column:post_id"`
	CreatedAt time.Time `gorm:"not null;column:created_at"`
}

// TableName specifies the table name for Like
func (Like) TableName() string {
	return "likes"
}

// Save represents a viewer saving a piece of content
type Save struct {
	UserID    string    `gorm:"type:varchar(26);primaryKey;column:user_id"`
	PostID    string    `gorm:"type:varchar(26);primaryKey;index;column:post_id"`
	CreatedAt time.Time `gorm:"not null;column:created_at"`
}

// TableName specifies the table name for Save
func (Save) TableName() string {
	return "saves"
}

// Comment represents a comment on a piece of content
type Comment struct {
	ID        string    `gorm:"type:varchar(26);primaryKey;column:id"`
	PostID    string    `gorm:"type:varchar(26);not null;index;column:post_id"`
	UserID    string    `gorm:"type:varchar(26);not null;column:user_id"`
	Body      string    `gorm:"type:varchar(2200);not null;column:body"`
	CreatedAt time.Time `gorm:"not null;column:created_at"`
}

// TableName specifies the table name for Comment
func (Comment) TableName() string {
	return "comments"
}

// InteractionCounts aggregates per-item interaction totals
type InteractionCounts struct {
	Likes    int64
	Comments int64
	Saves    int64
}
