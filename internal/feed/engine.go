package feed

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Circlesfera/circlesfera-backend-sub000/internal/models"
	"github.com/Circlesfera/circlesfera-backend-sub000/pkg/config"
	"github.com/Circlesfera/circlesfera-backend-sub000/pkg/logging"
	"github.com/Circlesfera/circlesfera-backend-sub000/pkg/telemetry"
)

// ErrNotFound is returned when referenced content does not exist
var ErrNotFound = errors.New("content not found")

// Deps are the collaborators the engine orchestrates
type Deps struct {
	Posts        ContentSource
	Reels        ReelSource
	Graph        GraphSource
	Hashtags     HashtagSource
	Interactions InteractionSource
	Users        UserSource
	Mentions     MentionSource
	MediaTags    MediaTagSource
	Cache        CacheStore
}

// Engine assembles ranked, paginated content streams. It gathers candidates
// from independently-paginated sources, merges them by creation timestamp,
// filters blocked participants, decorates the result for the viewer and
// caches cursor-less first pages.
type Engine struct {
	posts        ContentSource
	reels        ReelSource
	graph        GraphSource
	hashtags     HashtagSource
	interactions InteractionSource
	users        UserSource
	mentions     MentionSource
	mediaTags    MediaTagSource
	cache        CacheStore
	cfg          config.FeedConfig
	logger       *zap.Logger
}

// NewEngine creates a new feed assembly engine
func NewEngine(deps Deps, cfg config.FeedConfig) *Engine {
	return &Engine{
		posts:        deps.Posts,
		reels:        deps.Reels,
		graph:        deps.Graph,
		hashtags:     deps.Hashtags,
		interactions: deps.Interactions,
		users:        deps.Users,
		mentions:     deps.Mentions,
		mediaTags:    deps.MediaTags,
		cache:        deps.Cache,
		cfg:          cfg,
		logger:       logging.WithComponent("feed-engine"),
	}
}

// normalize clamps the query to configured bounds and applies defaults
func (e *Engine) normalize(q FeedQuery) FeedQuery {
	if q.Limit <= 0 {
		q.Limit = e.cfg.DefaultLimit
	}
	if q.Limit > e.cfg.MaxLimit {
		q.Limit = e.cfg.MaxLimit
	}
	if q.SortBy == "" {
		q.SortBy = SortRecent
	}
	return q
}

// cacheKey builds the first-page cache key shape: (kind, viewer, sort, limit)
func (e *Engine) cacheKey(kind Kind, viewerID string, q FeedQuery) string {
	return e.cache.BuildKey("feed", string(kind), viewerID, string(q.SortBy), strconv.Itoa(q.Limit))
}

// cachedPage attempts a first-page cache lookup. Cache failures are treated
// as misses; the cache is an optimization, never a correctness dependency.
func (e *Engine) cachedPage(kind Kind, viewerID string, q FeedQuery) *FeedPage {
	if e.cache == nil {
		return nil
	}
	var page FeedPage
	if err := e.cache.GetJSON(e.cacheKey(kind, viewerID, q), &page); err != nil {
		return nil
	}
	return &page
}

// storePage caches a first page with the configured TTL, best effort
func (e *Engine) storePage(kind Kind, viewerID string, q FeedQuery, page *FeedPage) {
	if e.cache == nil {
		return
	}
	if err := e.cache.SetJSON(e.cacheKey(kind, viewerID, q), page, e.cfg.CacheTTL); err != nil {
		e.logger.Warn("feed cache store failed",
			zap.String("kind", string(kind)),
			zap.String("viewer", viewerID),
			zap.Error(err))
	}
}

// branch wraps one fan-out query with a bounded timeout and the degrade
// policy: a failed or timed-out branch contributes nothing but does not
// abort the page; the failure count decides whether the whole request dies.
func (e *Engine) branch(ctx context.Context, name string, failures *int32, fn func(ctx context.Context) error) func() error {
	return func() error {
		bctx, cancel := context.WithTimeout(ctx, e.cfg.BranchTimeout)
		defer cancel()
		if err := fn(bctx); err != nil {
			atomic.AddInt32(failures, 1)
			e.logger.Warn("feed source degraded", zap.String("source", name), zap.Error(err))
		}
		return nil
	}
}

// HomeFeed assembles the followed-author + followed-hashtag + short-form
// blend for a viewer.
func (e *Engine) HomeFeed(ctx context.Context, viewerID string, q FeedQuery) (*FeedPage, error) {
	ctx, span := telemetry.StartSpan(ctx, "feed.home")
	defer span.End()

	q = e.normalize(q)
	cursor, err := DecodeCursor(q.Cursor)
	if err != nil {
		return nil, err
	}

	// First page with the cached sort shape is served from cache when warm
	cacheable := cursor == nil && q.SortBy == SortRecent
	if cacheable {
		if page := e.cachedPage(KindHome, viewerID, q); page != nil {
			return page, nil
		}
	}

	// Resolve graph and subscriptions concurrently
	var excluded, following, followedTags []string
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		excluded, err = e.graph.FindMutualBlocks(gctx, viewerID)
		return err
	})
	g.Go(func() error {
		var err error
		following, err = e.graph.FindFollowingIDs(gctx, viewerID)
		return err
	})
	g.Go(func() error {
		var err error
		followedTags, err = e.hashtags.FindFollowedTags(gctx, viewerID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to resolve viewer graph: %w", err)
	}

	// Self-inclusion: a viewer who follows nobody still sees their own posts
	following = append(following, viewerID)
	excludedSet := toSet(excluded)

	// Fan out the content sources concurrently. The authored query
	// over-fetches at 2x limit to leave room for de-duplication against the
	// hashtag results; the hashtag query excludes followed authors to avoid
	// double-counting. The hashtag branch is only dispatched when the viewer
	// follows tags, so the total-failure check counts dispatched branches.
	var (
		authored, tagged         []*models.Post
		reelRows                 []*models.Reel
		authoredMore, taggedMore bool
		reelsMore                bool
		failures                 int32
	)
	dispatched := int32(2)
	if len(followedTags) > 0 {
		dispatched++
	}
	fan, fctx := errgroup.WithContext(ctx)
	fan.Go(e.branch(fctx, "followed-authors", &failures, func(bctx context.Context) error {
		var err error
		authored, authoredMore, err = e.posts.FindFeed(bctx, following, cursor, 2*q.Limit)
		if err != nil {
			authoredMore = true
		}
		return err
	}))
	fan.Go(e.branch(fctx, "followed-hashtags", &failures, func(bctx context.Context) error {
		if len(followedTags) == 0 {
			return nil
		}
		var err error
		tagged, taggedMore, err = e.posts.FindByHashtags(bctx, followedTags, following, cursor, q.Limit)
		if err != nil {
			taggedMore = true
		}
		return err
	}))
	fan.Go(e.branch(fctx, "reels", &failures, func(bctx context.Context) error {
		var err error
		reelRows, reelsMore, err = e.reels.FindReels(bctx, following, excluded, cursor, q.Limit)
		if err != nil {
			reelsMore = true
		}
		return err
	}))
	_ = fan.Wait() // branches degrade instead of returning errors
	if failures == dispatched {
		return nil, fmt.Errorf("all feed sources failed for viewer %s", viewerID)
	}

	// Union, de-duplicate and filter the standard-post side before merging;
	// the short-form side was pre-filtered at fan-out.
	postCands := unionCandidates(postCandidates(authored), postCandidates(tagged))
	postCands = dropBlocked(postCands, excludedSet)
	reelCands := reelCandidates(reelRows)

	merged, leftover := mergeByTime(postCands, reelCands, q.Limit)
	hasMore := authoredMore || taggedMore || reelsMore || leftover

	items, err := e.decorate(ctx, viewerID, merged)
	if err != nil {
		return nil, err
	}

	page := e.buildPage(items, merged, hasMore)
	if cacheable {
		e.storePage(KindHome, viewerID, q, page)
	}
	return page, nil
}

// ExploreFeed surfaces content from authors the viewer does not follow
func (e *Engine) ExploreFeed(ctx context.Context, viewerID string, q FeedQuery) (*FeedPage, error) {
	ctx, span := telemetry.StartSpan(ctx, "feed.explore")
	defer span.End()

	q = e.normalize(q)
	cursor, err := DecodeCursor(q.Cursor)
	if err != nil {
		return nil, err
	}

	cacheable := cursor == nil && q.SortBy == SortRecent
	if cacheable {
		if page := e.cachedPage(KindExplore, viewerID, q); page != nil {
			return page, nil
		}
	}

	var excluded, following []string
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		excluded, err = e.graph.FindMutualBlocks(gctx, viewerID)
		return err
	})
	g.Go(func() error {
		var err error
		following, err = e.graph.FindFollowingIDs(gctx, viewerID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to resolve viewer graph: %w", err)
	}

	// Followed and blocked authors are excluded at the query layer, plus the
	// viewer's own content
	excludeAuthors := append(append(following, excluded...), viewerID)
	posts, hasMore, err := e.posts.FindExplore(ctx, excludeAuthors, cursor, q.Limit)
	if err != nil {
		return nil, err
	}

	cands := postCandidates(posts)
	items, err := e.decorate(ctx, viewerID, cands)
	if err != nil {
		return nil, err
	}

	page := e.buildPage(items, cands, hasMore)
	if cacheable {
		e.storePage(KindExplore, viewerID, q, page)
	}
	return page, nil
}

// HashtagFeed assembles a single hashtag's content stream
func (e *Engine) HashtagFeed(ctx context.Context, viewerID, tag string, q FeedQuery) (*FeedPage, error) {
	ctx, span := telemetry.StartSpan(ctx, "feed.hashtag")
	defer span.End()

	q = e.normalize(q)
	cursor, err := DecodeCursor(q.Cursor)
	if err != nil {
		return nil, err
	}

	excluded, err := e.graph.FindMutualBlocks(ctx, viewerID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve viewer graph: %w", err)
	}

	posts, hasMore, err := e.posts.FindByHashtag(ctx, tag, cursor, q.Limit)
	if err != nil {
		return nil, err
	}

	cands := dropBlocked(postCandidates(posts), toSet(excluded))
	items, err := e.decorate(ctx, viewerID, cands)
	if err != nil {
		return nil, err
	}
	return e.buildPage(items, cands, hasMore), nil
}

// MentionsFeed assembles posts the viewer was mentioned in, preserving
// mention-creation order even when the referenced posts' own timestamps
// differ. The cursor tracks mention time, not content time.
func (e *Engine) MentionsFeed(ctx context.Context, viewerID string, q FeedQuery) (*FeedPage, error) {
	ctx, span := telemetry.StartSpan(ctx, "feed.mentions")
	defer span.End()

	q = e.normalize(q)
	cursor, err := DecodeCursor(q.Cursor)
	if err != nil {
		return nil, err
	}

	excluded, err := e.graph.FindMutualBlocks(ctx, viewerID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve viewer graph: %w", err)
	}
	excludedSet := toSet(excluded)

	mentions, hasMore, err := e.mentions.FindMentions(ctx, viewerID, cursor, q.Limit)
	if err != nil {
		return nil, err
	}
	if len(mentions) == 0 {
		return &FeedPage{Data: []FeedItem{}, NextCursor: nil}, nil
	}

	postIDs := make([]string, 0, len(mentions))
	for _, m := range mentions {
		postIDs = append(postIDs, m.PostID)
	}
	posts, err := e.posts.FindManyByIDs(ctx, postIDs)
	if err != nil {
		return nil, err
	}
	postMap := make(map[string]*models.Post, len(posts))
	for _, p := range posts {
		postMap[p.ID] = p
	}

	// Walk mention records newest-first, keeping their order
	cands := make([]candidate, 0, len(mentions))
	seen := make(map[string]bool, len(mentions))
	var lastMention time.Time
	for _, m := range mentions {
		lastMention = m.CreatedAt
		post := postMap[m.PostID]
		if post == nil || seen[post.ID] || excludedSet[post.AuthorID] {
			continue
		}
		seen[post.ID] = true
		cands = append(cands, postCandidate(post))
	}

	items, err := e.decorate(ctx, viewerID, cands)
	if err != nil {
		return nil, err
	}

	page := &FeedPage{Data: items, NextCursor: nil}
	if hasMore {
		token := EncodeCursor(lastMention)
		page.NextCursor = &token
	}
	return page, nil
}

// ReelsFeed assembles the short-form stream, excluding blocked authors at
// the query layer.
func (e *Engine) ReelsFeed(ctx context.Context, viewerID string, q FeedQuery) (*FeedPage, error) {
	ctx, span := telemetry.StartSpan(ctx, "feed.reels")
	defer span.End()

	q = e.normalize(q)
	cursor, err := DecodeCursor(q.Cursor)
	if err != nil {
		return nil, err
	}

	cacheable := cursor == nil && q.SortBy == SortRecent
	if cacheable {
		if page := e.cachedPage(KindReels, viewerID, q); page != nil {
			return page, nil
		}
	}

	excluded, err := e.graph.FindMutualBlocks(ctx, viewerID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve viewer graph: %w", err)
	}

	reels, hasMore, err := e.reels.FindReels(ctx, nil, excluded, cursor, q.Limit)
	if err != nil {
		return nil, err
	}

	cands := reelCandidates(reels)
	items, err := e.decorate(ctx, viewerID, cands)
	if err != nil {
		return nil, err
	}

	page := e.buildPage(items, cands, hasMore)
	if cacheable {
		e.storePage(KindReels, viewerID, q, page)
	}
	return page, nil
}

// SearchPosts returns decorated posts whose caption matches the query text
func (e *Engine) SearchPosts(ctx context.Context, viewerID, query string, limit int) ([]FeedItem, error) {
	ctx, span := telemetry.StartSpan(ctx, "feed.search")
	defer span.End()

	if limit <= 0 {
		limit = e.cfg.DefaultLimit
	}
	if limit > e.cfg.MaxLimit {
		limit = e.cfg.MaxLimit
	}

	excluded, err := e.graph.FindMutualBlocks(ctx, viewerID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve viewer graph: %w", err)
	}

	posts, err := e.posts.SearchPosts(ctx, query, limit)
	if err != nil {
		return nil, err
	}

	cands := dropBlocked(postCandidates(posts), toSet(excluded))
	return e.decorate(ctx, viewerID, cands)
}

// PostViewerState reports whether the viewer has liked or saved one post
func (e *Engine) PostViewerState(ctx context.Context, viewerID, postID string) (*ViewerState, error) {
	ctx, span := telemetry.StartSpan(ctx, "feed.viewer_state")
	defer span.End()

	post, err := e.posts.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, ErrNotFound
	}

	liked, err := e.interactions.Exists(ctx, viewerID, postID, models.InteractionKindLike)
	if err != nil {
		return nil, err
	}
	saved, err := e.interactions.Exists(ctx, viewerID, postID, models.InteractionKindSave)
	if err != nil {
		return nil, err
	}
	return &ViewerState{IsLiked: liked, IsSaved: saved}, nil
}

// buildPage computes the next cursor from the last emitted candidate
func (e *Engine) buildPage(items []FeedItem, cands []candidate, hasMore bool) *FeedPage {
	page := &FeedPage{Data: items, NextCursor: nil}
	if hasMore && len(cands) > 0 {
		token := EncodeCursor(cands[len(cands)-1].createdAt)
		page.NextCursor = &token
	}
	return page
}

func postCandidates(posts []*models.Post) []candidate {
	cands := make([]candidate, 0, len(posts))
	for _, p := range posts {
		cands = append(cands, postCandidate(p))
	}
	return cands
}

func reelCandidates(reels []*models.Reel) []candidate {
	cands := make([]candidate, 0, len(reels))
	for _, r := range reels {
		cands = append(cands, reelCandidate(r))
	}
	return cands
}

// dropBlocked removes candidates authored by anyone in the exclusion set
func dropBlocked(cands []candidate, excluded map[string]bool) []candidate {
	if len(excluded) == 0 {
		return cands
	}
	kept := cands[:0]
	for _, c := range cands {
		if !excluded[c.authorID()] {
			kept = append(kept, c)
		}
	}
	return kept
}

func toSet(ids []string) map[string]bool {
	set := make(map[string]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set
}
