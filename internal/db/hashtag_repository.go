package db

import (
	"context"

	"github.com/Circlesfera/circlesfera-backend-sub000/internal/models"
)

// HashtagRepository provides hashtag subscription database operations
type HashtagRepository struct {
	*Repository
}

// NewHashtagRepository creates a new hashtag repository
func NewHashtagRepository(repo *Repository) *HashtagRepository {
	return &HashtagRepository{Repository: repo}
}

// FindFollowedTags retrieves the hashtags a user follows
func (r *HashtagRepository) FindFollowedTags(ctx context.Context, userID string) ([]string, error) {
	var tags []string
	err := r.db.WithContext(ctx).Model(&models.HashtagFollow{}).
		Where("user_id = ?", userID).
		Pluck("tag", &tags).Error
	if err != nil {
		return nil, err
	}
	return tags, nil
}
