package models

import (
	"time"
)

// User represents a Circlesfera account
type User struct {
	ID          string    `gorm:"type:varchar(26);primaryKey;column:id"`
	Handle      string    `gorm:"type:varchar(30);not null;uniqueIndex:users_handle_ux;column:handle"`
	DisplayName string    `gorm:"type:varchar(50);not null;default:'';column:display_name"`
	Bio         string    `gorm:"type:varchar(160);not null;default:'';column:bio"`
	AvatarURL   string    `gorm:"type:varchar(1024);not null;default:'';column:avatar_url"`
	IsVerified  bool      `gorm:"not null;default:false;column:is_verified"`
	IsPrivate   bool      `gorm:"not null;default:false;column:is_private"`
	CreatedAt   time.Time `gorm:"not null;column:created_at"`
	UpdatedAt   time.Time `gorm:"not null;column:updated_at"`
}

// TableName specifies the table name for User
func (User) TableName() string {
	return "users"
}
