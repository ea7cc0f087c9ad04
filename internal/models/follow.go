package models

import (
	"time"
)

// Follow represents a follow relationship
type Follow struct {
	FollowerID  string    `gorm:"type:varchar(26);primaryKey;column:follower_id"`
	FollowingID string    `gorm:"type:varchar(26);primaryKey;column:following_id"`
	CreatedAt   time.Time `gorm:"not null;column:created_at"`

	// Relationships
	Follower  *User `gorm:"foreignKey:FollowerID;references:ID"`
	Following *User `gorm:"foreignKey:FollowingID;references:ID"`
}

// TableName specifies the table name for Follow
func (Follow) TableName() string {
	return "follows"
}

// Block represents a directed block relationship. A block in either
// direction hides the blocked party's content from the other.
type Block struct {
	BlockerID string    `gorm:"type:varchar(26);primaryKey;column:blocker_id"`
	BlockedID string    `gorm:"type:varchar(26);primaryKey;column:blocked_id"`
	CreatedAt time.Time `gorm:"not null;column:created_at"`

	// Relationships
	Blocker *User `gorm:"foreignKey:BlockerID;references:ID"`
	Blocked *User `gorm:"foreignKey:BlockedID;references:ID"`
}

// TableName specifies the table name for Block
func (Block) TableName() string {
	return "blocks"
}
