package models

import (
	"time"
)

// Reel represents a short-form video item
type Reel struct {
	ID           string    `gorm:"type:varchar(26);primaryKey;column:id"`
	AuthorID     string    `gorm:"type:varchar(26);not null;index:reels_author_created_ix,priority:1;column:author_id"`
	Caption      string    `gorm:"type:varchar(2200);not null;default:'';column:caption"`
	VideoURL     string    `gorm:"type:varchar(1024);not null;column:video_url"`
	ThumbnailURL string    `gorm:"type:varchar(1024);not null;default:'';column:thumbnail_url"`
	DurationMS   int64     `gorm:"not null;default:0;column:duration_ms"`
	Width        int       `gorm:"not null;default:0;column:width"`
	Height       int       `gorm:"not null;default:0;column:height"`
	ShareCount   int64     `gorm:"not null;default:0;column:share_count"`
	ViewCount    int64     `gorm:"not null;default:0;column:view_count"`
	IsArchived   bool      `gorm:"not null;default:false;column:is_archived"`
	IsDeleted    bool      `gorm:"not null;default:false;column:is_deleted"`
	CreatedAt    time.Time `gorm:"not null;index:reels_author_created_ix,priority:2;column:created_at"`
	UpdatedAt    time.Time `gorm:"not null;column:updated_at"`

	// Relationships
	Author *User `gorm:"foreignKey:AuthorID;references:ID"`
}

// TableName specifies the table name for Reel
func (Reel) TableName() string {
	return "reels"
}
