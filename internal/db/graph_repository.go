package db

import (
	"context"

	"github.com/Circlesfera/circlesfera-backend-sub000/internal/models"
)

// GraphRepository provides social graph database operations
type GraphRepository struct {
	*Repository
}

// NewGraphRepository creates a new graph repository
func NewGraphRepository(repo *Repository) *GraphRepository {
	return &GraphRepository{Repository: repo}
}

// FindFollowingIDs retrieves the IDs of users the given user follows
func (r *GraphRepository) FindFollowingIDs(ctx context.Context, userID string) ([]string, error) {
	var ids []string
	err := r.db.WithContext(ctx).Model(&models.Follow{}).
		Where("follower_id = ?", userID).
		Pluck("following_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

// FindFollowerIDs retrieves the IDs of users following the given user
func (r *GraphRepository) FindFollowerIDs(ctx context.Context, userID string) ([]string, error) {
	var ids []string
	err := r.db.WithContext(ctx).Model(&models.Follow{}).
		Where("following_id = ?", userID).
		Pluck("follower_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

// FindBlockedIDs retrieves the IDs of users the given user has blocked
func (r *GraphRepository) FindBlockedIDs(ctx context.Context, userID string) ([]string, error) {
	var ids []string
	err := r.db.WithContext(ctx).Model(&models.Block{}).
		Where("blocker_id = ?", userID).
		Pluck("blocked_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

// FindBlockerIDs retrieves the IDs of users who have blocked the given user
func (r *GraphRepository) FindBlockerIDs(ctx context.Context, userID string) ([]string, error) {
	var ids []string
	err := r.db.WithContext(ctx).Model(&models.Block{}).
		Where("blocked_id = ?", userID).
		Pluck("blocker_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

// FindMutualBlocks retrieves the union of blocked and blocker IDs. A block
// in either direction suppresses visibility both ways.
func (r *GraphRepository) FindMutualBlocks(ctx context.Context, userID string) ([]string, error) {
	blocked, err := r.FindBlockedIDs(ctx, userID)
	if err != nil {
		return nil, err
	}
	blockers, err := r.FindBlockerIDs(ctx, userID)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool, len(blocked)+len(blockers))
	union := make([]string, 0, len(blocked)+len(blockers))
	for _, id := range blocked {
		if !seen[id] {
			seen[id] = true
			union = append(union, id)
		}
	}
	for _, id := range blockers {
		if !seen[id] {
			seen[id] = true
			union = append(union, id)
		}
	}
	return union, nil
}
