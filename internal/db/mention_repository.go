package db

import (
	"context"
	"time"

	"github.com/Circlesfera/circlesfera-backend-sub000/internal/models"
)

// MentionRepository provides mention database operations
type MentionRepository struct {
	*Repository
}

// NewMentionRepository creates a new mention repository
func NewMentionRepository(repo *Repository) *MentionRepository {
	return &MentionRepository{Repository: repo}
}

// FindMentions retrieves a page of mentions of the given user ordered by
// mention creation time, newest first. The mentions feed preserves this
// order even when the referenced posts have different timestamps.
func (r *MentionRepository) FindMentions(ctx context.Context, userID string, cursor *time.Time, limit int) ([]*models.Mention, bool, error) {
	query := r.db.WithContext(ctx).Model(&models.Mention{}).
		Where("user_id = ?", userID)
	if cursor != nil {
		query = query.Where("created_at < ?", *cursor)
	}

	var mentions []*models.Mention
	if err := query.Order("created_at DESC, id DESC").Limit(limit + 1).Find(&mentions).Error; err != nil {
		return nil, false, err
	}
	if len(mentions) > limit {
		return mentions[:limit], true, nil
	}
	return mentions, false, nil
}
