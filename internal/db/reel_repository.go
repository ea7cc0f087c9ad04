package db

import (
	"context"
	"time"

	"github.com/Circlesfera/circlesfera-backend-sub000/internal/models"
)

// ReelRepository provides short-form content database operations
type ReelRepository struct {
	*Repository
}

// NewReelRepository creates a new reel repository
func NewReelRepository(repo *Repository) *ReelRepository {
	return &ReelRepository{Repository: repo}
}

// FindReels retrieves a page of reels, newest first. A nil authorIDs slice
// means no author restriction; excludeAuthorIDs filters blocked authors at
// the query layer.
func (r *ReelRepository) FindReels(ctx context.Context, authorIDs, excludeAuthorIDs []string, cursor *time.Time, limit int) ([]*models.Reel, bool, error) {
	query := r.db.WithContext(ctx).Model(&models.Reel{}).
		Where("is_deleted = ? AND is_archived = ?", false, false)
	if authorIDs != nil {
		if len(authorIDs) == 0 {
			return []*models.Reel{}, false, nil
		}
		query = query.Where("author_id IN ?", authorIDs)
	}
	if len(excludeAuthorIDs) > 0 {
		query = query.Where("author_id NOT IN ?", excludeAuthorIDs)
	}
	if cursor != nil {
		query = query.Where("created_at < ?", *cursor)
	}

	var reels []*models.Reel
	if err := query.Order("created_at DESC, id DESC").Limit(limit + 1).Find(&reels).Error; err != nil {
		return nil, false, err
	}
	if len(reels) > limit {
		return reels[:limit], true, nil
	}
	return reels, false, nil
}
