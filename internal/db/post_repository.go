package db

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/Circlesfera/circlesfera-backend-sub000/internal/models"
)

// PostRepository provides post-related database operations
type PostRepository struct {
	*Repository
}

// NewPostRepository creates a new post repository
func NewPostRepository(repo *Repository) *PostRepository {
	return &PostRepository{Repository: repo}
}

// visible scopes a query to non-deleted, non-archived posts
func visible(db *gorm.DB) *gorm.DB {
	return db.Where("is_deleted = ? AND is_archived = ?", false, false)
}

// before applies the strictly-older cursor predicate
func before(db *gorm.DB, cursor *time.Time) *gorm.DB {
	if cursor == nil {
		return db
	}
	return db.Where("created_at < ?", *cursor)
}

// pageQuery applies deterministic ordering and the limit+1 page probe
func pageQuery(db *gorm.DB, limit int) *gorm.DB {
	return db.Order("created_at DESC, id DESC").Limit(limit + 1)
}

// trimPage cuts the probe row and reports whether more rows exist
func trimPage(posts []*models.Post, limit int) ([]*models.Post, bool) {
	if len(posts) > limit {
		return posts[:limit], true
	}
	return posts, false
}

// GetByID retrieves a post by ID, including its media
func (r *PostRepository) GetByID(ctx context.Context, id string) (*models.Post, error) {
	var post models.Post
	err := r.db.WithContext(ctx).
		Preload("Media", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		Preload("Hashtags").
		Where("id = ? AND is_deleted = ?", id, false).
		First(&post).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &post, nil
}

// FindFeed retrieves a page of posts authored by any of the given authors,
// newest first, strictly older than the cursor when one is supplied.
func (r *PostRepository) FindFeed(ctx context.Context, authorIDs []string, cursor *time.Time, limit int) ([]*models.Post, bool, error) {
	if len(authorIDs) == 0 {
		return []*models.Post{}, false, nil
	}

	query := visible(r.db.WithContext(ctx).Model(&models.Post{})).
		Preload("Media", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		Preload("Hashtags").
		Where("author_id IN ?", authorIDs)
	query = pageQuery(before(query, cursor), limit)

	var posts []*models.Post
	if err := query.Find(&posts).Error; err != nil {
		return nil, false, err
	}
	page, hasMore := trimPage(posts, limit)
	return page, hasMore, nil
}

// FindExplore retrieves a page of posts excluding the given authors,
// surfacing content the viewer does not already follow.
func (r *PostRepository) FindExplore(ctx context.Context, excludeAuthorIDs []string, cursor *time.Time, limit int) ([]*models.Post, bool, error) {
	query := visible(r.db.WithContext(ctx).Model(&models.Post{})).
		Preload("Media", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		Preload("Hashtags")
	if len(excludeAuthorIDs) > 0 {
		query = query.Where("author_id NOT IN ?", excludeAuthorIDs)
	}
	query = pageQuery(before(query, cursor), limit)

	var posts []*models.Post
	if err := query.Find(&posts).Error; err != nil {
		return nil, false, err
	}
	page, hasMore := trimPage(posts, limit)
	return page, hasMore, nil
}

// FindByHashtags retrieves a page of posts carrying any of the given tags,
// excluding the given authors to avoid double-counting followed content.
func (r *PostRepository) FindByHashtags(ctx context.Context, tags []string, excludeAuthorIDs []string, cursor *time.Time, limit int) ([]*models.Post, bool, error) {
	if len(tags) == 0 {
		return []*models.Post{}, false, nil
	}

	query := visible(r.db.WithContext(ctx).Model(&models.Post{})).
		Preload("Media", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		Preload("Hashtags").
		Joins("INNER JOIN post_hashtags ON post_hashtags.post_id = posts.id").
		Where("post_hashtags.tag IN ?", tags).
		Distinct("posts.*")
	if len(excludeAuthorIDs) > 0 {
		query = query.Where("posts.author_id NOT IN ?", excludeAuthorIDs)
	}
	query = pageQuery(before(query, cursor), limit)

	var posts []*models.Post
	if err := query.Find(&posts).Error; err != nil {
		return nil, false, err
	}
	page, hasMore := trimPage(posts, limit)
	return page, hasMore, nil
}

// FindByHashtag retrieves a page of posts carrying a single tag
func (r *PostRepository) FindByHashtag(ctx context.Context, tag string, cursor *time.Time, limit int) ([]*models.Post, bool, error) {
	return r.FindByHashtags(ctx, []string{tag}, nil, cursor, limit)
}

// FindByAuthorID retrieves a page of one author's posts, optionally
// excluding a single post ID (used by the related-content resolver).
func (r *PostRepository) FindByAuthorID(ctx context.Context, authorID, excludeID string, cursor *time.Time, limit int) ([]*models.Post, bool, error) {
	query := visible(r.db.WithContext(ctx).Model(&models.Post{})).
		Preload("Media", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		Preload("Hashtags").
		Where("author_id = ?", authorID)
	if excludeID != "" {
		query = query.Where("id <> ?", excludeID)
	}
	query = pageQuery(before(query, cursor), limit)

	var posts []*models.Post
	if err := query.Find(&posts).Error; err != nil {
		return nil, false, err
	}
	page, hasMore := trimPage(posts, limit)
	return page, hasMore, nil
}

// FindManyByIDs retrieves posts by IDs; order is unspecified
func (r *PostRepository) FindManyByIDs(ctx context.Context, ids []string) ([]*models.Post, error) {
	if len(ids) == 0 {
		return []*models.Post{}, nil
	}
	var posts []*models.Post
	err := r.db.WithContext(ctx).
		Preload("Media", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		Preload("Hashtags").
		Where("id IN ? AND is_deleted = ?", ids, false).
		Find(&posts).Error
	if err != nil {
		return nil, err
	}
	return posts, nil
}

// SearchPosts retrieves posts whose caption matches the query text
func (r *PostRepository) SearchPosts(ctx context.Context, query string, limit int) ([]*models.Post, error) {
	var posts []*models.Post
	err := visible(r.db.WithContext(ctx).Model(&models.Post{})).
		Preload("Media", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		Where("caption ILIKE ?", "%"+query+"%").
		Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&posts).Error
	if err != nil {
		return nil, err
	}
	return posts, nil
}

// Create creates a new post
func (r *PostRepository) Create(ctx context.Context, post *models.Post) error {
	return r.db.WithContext(ctx).Create(post).Error
}

// UpdateCaption updates a post's caption
func (r *PostRepository) UpdateCaption(ctx context.Context, id, caption string) error {
	return r.db.WithContext(ctx).Model(&models.Post{}).
		Where("id = ?", id).
		Update("caption", caption).Error
}

// SetArchived archives or unarchives a post
func (r *PostRepository) SetArchived(ctx context.Context, id string, archived bool) error {
	return r.db.WithContext(ctx).Model(&models.Post{}).
		Where("id = ?", id).
		Update("is_archived", archived).Error
}

// Delete soft-deletes a post
func (r *PostRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Model(&models.Post{}).
		Where("id = ?", id).
		Update("is_deleted", true).Error
}
