package db

import (
	"context"
	"fmt"

	"github.com/Circlesfera/circlesfera-backend-sub000/internal/models"
)

// InteractionRepository provides like/save/comment database operations
type InteractionRepository struct {
	*Repository
}

// NewInteractionRepository creates a new interaction repository
func NewInteractionRepository(repo *Repository) *InteractionRepository {
	return &InteractionRepository{Repository: repo}
}

// FindLikedPostIDs retrieves which of the given post IDs the user has liked
func (r *InteractionRepository) FindLikedPostIDs(ctx context.Context, userID string, postIDs []string) ([]string, error) {
	if len(postIDs) == 0 {
		return []string{}, nil
	}
	var ids []string
	err := r.db.WithContext(ctx).Model(&models.Like{}).
		Where("user_id = ? AND post_id IN ?", userID, postIDs).
		Pluck("post_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

// FindSavedPostIDs retrieves which of the given post IDs the user has saved
func (r *InteractionRepository) FindSavedPostIDs(ctx context.Context, userID string, postIDs []string) ([]string, error) {
	if len(postIDs) == 0 {
		return []string{}, nil
	}
	var ids []string
	err := r.db.WithContext(ctx).Model(&models.Save{}).
		Where("user_id = ? AND post_id IN ?", userID, postIDs).
		Pluck("post_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

type countRow struct {
	PostID string `gorm:"column:post_id"`
	N      int64  `gorm:"column:n"`
}

// CountByPostIDs aggregates like/comment/save counts per post ID in three
// grouped queries, never one query per item.
func (r *InteractionRepository) CountByPostIDs(ctx context.Context, postIDs []string) (map[string]models.InteractionCounts, error) {
	counts := make(map[string]models.InteractionCounts, len(postIDs))
	if len(postIDs) == 0 {
		return counts, nil
	}

	var likeRows []countRow
	err := r.db.WithContext(ctx).Model(&models.Like{}).
		Select("post_id, count(*) AS n").
		Where("post_id IN ?", postIDs).
		Group("post_id").
		Scan(&likeRows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range likeRows {
		c := counts[row.PostID]
		c.Likes = row.N
		counts[row.PostID] = c
	}

	var commentRows []countRow
	err = r.db.WithContext(ctx).Model(&models.Comment{}).
		Select("post_id, count(*) AS n").
		Where("post_id IN ?", postIDs).
		Group("post_id").
		Scan(&commentRows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range commentRows {
		c := counts[row.PostID]
		c.Comments = row.N
		counts[row.PostID] = c
	}

	var saveRows []countRow
	err = r.db.WithContext(ctx).Model(&models.Save{}).
		Select("post_id, count(*) AS n").
		Where("post_id IN ?", postIDs).
		Group("post_id").
		Scan(&saveRows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range saveRows {
		c := counts[row.PostID]
		c.Saves = row.N
		counts[row.PostID] = c
	}

	return counts, nil
}

// Exists reports whether the user has an interaction of the given kind with
// the given post
func (r *InteractionRepository) Exists(ctx context.Context, userID, postID, kind string) (bool, error) {
	var count int64
	var err error
	switch kind {
	case models.InteractionKindLike:
		err = r.db.WithContext(ctx).Model(&models.Like{}).
			Where("user_id = ? AND post_id = ?", userID, postID).
			Count(&count).Error
	case models.InteractionKindSave:
		err = r.db.WithContext(ctx).Model(&models.Save{}).
			Where("user_id = ? AND post_id = ?", userID, postID).
			Count(&count).Error
	default:
		return false, fmt.Errorf("unknown interaction kind: %s", kind)
	}
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
