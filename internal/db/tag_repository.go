package db

import (
	"context"

	"github.com/Circlesfera/circlesfera-backend-sub000/internal/models"
)

// TagRepository provides spatial media tag database operations
type TagRepository struct {
	*Repository
}

// NewTagRepository creates a new tag repository
func NewTagRepository(repo *Repository) *TagRepository {
	return &TagRepository{Repository: repo}
}

// FindByPostIDs retrieves media user tags for a batch of posts, with each
// tag's user resolved through one intermediate batched lookup rather than a
// round trip per tag.
func (r *TagRepository) FindByPostIDs(ctx context.Context, postIDs []string) (map[string][]*models.MediaUserTag, error) {
	result := make(map[string][]*models.MediaUserTag, len(postIDs))
	if len(postIDs) == 0 {
		return result, nil
	}

	var tags []*models.MediaUserTag
	err := r.db.WithContext(ctx).
		Where("post_id IN ?", postIDs).
		Order("post_id, media_index, id").
		Find(&tags).Error
	if err != nil {
		return nil, err
	}
	if len(tags) == 0 {
		return result, nil
	}

	// Batch the tagged-user lookup
	userIDSet := make(map[string]bool, len(tags))
	userIDs := make([]string, 0, len(tags))
	for _, tag := range tags {
		if !userIDSet[tag.UserID] {
			userIDSet[tag.UserID] = true
			userIDs = append(userIDs, tag.UserID)
		}
	}

	var users []*models.User
	if err := r.db.WithContext(ctx).Where("id IN ?", userIDs).Find(&users).Error; err != nil {
		return nil, err
	}
	userMap := make(map[string]*models.User, len(users))
	for _, user := range users {
		userMap[user.ID] = user
	}

	for _, tag := range tags {
		tag.User = userMap[tag.UserID]
		result[tag.PostID] = append(result[tag.PostID], tag)
	}
	return result, nil
}
