package feed

import (
	"context"
	"time"

	"github.com/Circlesfera/circlesfera-backend-sub000/internal/models"
)

// Collaborator interfaces consumed by the engine. The engine receives these
// via its constructor so tests can substitute doubles; there are no package
// level repository singletons.

// ContentSource exposes cursor-paginated post queries
type ContentSource interface {
	GetByID(ctx context.Context, id string) (*models.Post, error)
	FindFeed(ctx context.Context, authorIDs []string, cursor *time.Time, limit int) ([]*models.Post, bool, error)
	FindExplore(ctx context.Context, excludeAuthorIDs []string, cursor *time.Time, limit int) ([]*models.Post, bool, error)
	FindByHashtags(ctx context.Context, tags []string, excludeAuthorIDs []string, cursor *time.Time, limit int) ([]*models.Post, bool, error)
	FindByHashtag(ctx context.Context, tag string, cursor *time.Time, limit int) ([]*models.Post, bool, error)
	FindByAuthorID(ctx context.Context, authorID, excludeID string, cursor *time.Time, limit int) ([]*models.Post, bool, error)
	FindManyByIDs(ctx context.Context, ids []string) ([]*models.Post, error)
	SearchPosts(ctx context.Context, query string, limit int) ([]*models.Post, error)
}

// ReelSource exposes cursor-paginated short-form queries
type ReelSource interface {
	FindReels(ctx context.Context, authorIDs, excludeAuthorIDs []string, cursor *time.Time, limit int) ([]*models.Reel, bool, error)
}

// GraphSource resolves follow and block relationships
type GraphSource interface {
	FindFollowingIDs(ctx context.Context, userID string) ([]string, error)
	FindFollowerIDs(ctx context.Context, userID string) ([]string, error)
	FindBlockedIDs(ctx context.Context, userID string) ([]string, error)
	FindBlockerIDs(ctx context.Context, userID string) ([]string, error)
	FindMutualBlocks(ctx context.Context, userID string) ([]string, error)
}

// HashtagSource resolves hashtag subscriptions
type HashtagSource interface {
	FindFollowedTags(ctx context.Context, userID string) ([]string, error)
}

// InteractionSource reports viewer interaction state and aggregate counts
type InteractionSource interface {
	FindLikedPostIDs(ctx context.Context, userID string, postIDs []string) ([]string, error)
	FindSavedPostIDs(ctx context.Context, userID string, postIDs []string) ([]string, error)
	CountByPostIDs(ctx context.Context, postIDs []string) (map[string]models.InteractionCounts, error)
	Exists(ctx context.Context, userID, postID, kind string) (bool, error)
}

// UserSource resolves author identities in batch
type UserSource interface {
	GetByIDs(ctx context.Context, ids []string) ([]*models.User, error)
}

// MentionSource exposes cursor-paginated mention queries
type MentionSource interface {
	FindMentions(ctx context.Context, userID string, cursor *time.Time, limit int) ([]*models.Mention, bool, error)
}

// MediaTagSource resolves spatial media tags in batch
type MediaTagSource interface {
	FindByPostIDs(ctx context.Context, postIDs []string) (map[string][]*models.MediaUserTag, error)
}

// CacheStore is the key-value capability used for first-page caching and
// mutation-triggered invalidation
type CacheStore interface {
	GetJSON(key string, dest interface{}) error
	SetJSON(key string, value interface{}, ttl time.Duration) error
	BuildKey(parts ...string) string
	DeleteByPattern(ctx context.Context, pattern string) error
}
