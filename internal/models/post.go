package models

import (
	"time"
)

// Media kind constants
const (
	MediaKindImage = "image"
	MediaKindVideo = "video"
)

// Post represents a standard feed post
type Post struct {
	ID         string    `gorm:"type:varchar(26);primaryKey;column:id"`
	AuthorID   string    `gorm:"type:varchar(26);not null;index:posts_author_created_ix,priority:1;column:author_id"`
	Caption    string    `gorm:"type:varchar(2200);not null;default:'';column:caption"`
	ShareCount int64     `gorm:"not null;default:0;column:share_count"`
	ViewCount  int64     `gorm:"not null;default:0;column:view_count"`
	IsArchived bool      `gorm:"not null;default:false;column:is_archived"`
	IsDeleted  bool      `gorm:"not null;default:false;column:is_deleted"`
	CreatedAt  time.Time `gorm:"not null;index:posts_author_created_ix,priority:2;column:created_at"`
	UpdatedAt  time.Time `gorm:"not null;column:updated_at"`

	// Relationships
	Author   *User         `gorm:"foreignKey:AuthorID;references:ID"`
	Media    []PostMedia   `gorm:"foreignKey:PostID;references:ID"`
	Hashtags []PostHashtag `gorm:"foreignKey:PostID;references:ID"`
}

// TableName specifies the table name for Post
func (Post) TableName() string {
	return "posts"
}

// PostMedia represents one media entry of a post, ordered by position
type PostMedia struct {
	ID           string `gorm:"type:varchar(26);primaryKey;column:id"`
	PostID       string `gorm:"type:varchar(26);not null;index;column:post_id"`
	Position     int    `gorm:"not null;default:0;column:position"`
	Kind         string `gorm:"type:varchar(8);not null;column:kind"`
	URL          string `gorm:"type:varchar(1024);not null;column:url"`
	ThumbnailURL string `gorm:"type:varchar(1024);not null;default:'';column:thumbnail_url"`
	DurationMS   int64  `gorm:"not null;default:0;column:duration_ms"`
	Width        int    `gorm:"not null;default:0;column:width"`
	Height       int    `gorm:"not null;default:0;column:height"`
}

// TableName specifies the table name for PostMedia
func (PostMedia) TableName() string {
	return "post_media"
}

// PostHashtag represents a post-to-hashtag mapping
type PostHashtag struct {
	PostID string `gorm:"type:varchar(26);primaryKey;column:post_id"`
	Tag    string `gorm:"type:varchar(64);primaryKey;column:tag"`
}

// TableName specifies the table name for PostHashtag
func (PostHashtag) TableName() string {
	return "post_hashtags"
}

// MediaUserTag represents a user tag anchored to a media element of a post.
// Coordinates are either normalized (0..1) or pixel values, per IsNormalized.
type MediaUserTag struct {
	ID           string  `gorm:"type:varchar(26);primaryKey;column:id"`
	PostID       string  `gorm:"type:varchar(26);not null;index;column:post_id"`
	MediaIndex   int     `gorm:"not null;default:0;column:media_index"`
	UserID       string  `gorm:"type:varchar(26);not null;column:user_id"`
	X            float64 `gorm:"not null;column:x"`
	Y            float64 `gorm:"not null;column:y"`
	Width        float64 `gorm:"not null;default:0;column:width"`
	Height       float64 `gorm:"not null;default:0;column:height"`
	IsNormalized bool    `gorm:"not null;default:true;column:is_normalized"`

	// Relationships
	User *User `gorm:"foreignKey:UserID;references:ID"`
}

// TableName specifies the table name for MediaUserTag
func (MediaUserTag) TableName() string {
	return "post_media_tags"
}
