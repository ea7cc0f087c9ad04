package feed

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/Circlesfera/circlesfera-backend-sub000/pkg/logging"
)

// Invalidator evicts cached feed pages after a content mutation. Eviction
// is a best-effort side effect of the write path: failures are logged and
// never surfaced to the mutating caller.
type Invalidator struct {
	cache   CacheStore
	graph   GraphSource
	timeout time.Duration
	logger  *zap.Logger
}

// NewInvalidator creates a new cache invalidator
func NewInvalidator(cache CacheStore, graph GraphSource, timeout time.Duration) *Invalidator {
	return &Invalidator{
		cache:   cache,
		graph:   graph,
		timeout: timeout,
		logger:  logging.WithComponent("feed-invalidator"),
	}
}

// ContentMutated schedules invalidation of every cached feed page keyed to
// the author, across all feed kinds and sort modes, without blocking the
// write path.
func (inv *Invalidator) ContentMutated(authorID string) {
	if inv == nil || inv.cache == nil {
		return
	}
	go inv.invalidate(authorID)
}

// invalidate evicts the author's own cached pages and those of every
// follower, since follower home feeds embed the author's content. Follower
// resolution failing degrades to author-only eviction.
func (inv *Invalidator) invalidate(authorID string) {
	ctx, cancel := context.WithTimeout(context.Background(), inv.timeout)
	defer cancel()

	viewerIDs := []string{authorID}
	followers, err := inv.graph.FindFollowerIDs(ctx, authorID)
	if err != nil {
		inv.logger.Warn("follower resolution failed during invalidation",
			zap.String("author", authorID),
			zap.Error(err))
	} else {
		viewerIDs = append(viewerIDs, followers...)
	}

	for _, viewerID := range viewerIDs {
		pattern := inv.cache.BuildKey("feed", "*", viewerID, "*")
		if err := inv.cache.DeleteByPattern(ctx, pattern); err != nil {
			inv.logger.Warn("feed cache invalidation failed",
				zap.String("author", authorID),
				zap.String("viewer", viewerID),
				zap.Error(err))
		}
	}
}
