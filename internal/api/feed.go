package api

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Circlesfera/circlesfera-backend-sub000/internal/feed"
	"github.com/Circlesfera/circlesfera-backend-sub000/pkg/config"
	"github.com/Circlesfera/circlesfera-backend-sub000/pkg/logging"
)

// FeedAPI exposes the feed assembly engine over HTTP
type FeedAPI struct {
	engine *feed.Engine
	cfg    config.FeedConfig
	logger *zap.Logger
}

// NewFeedAPI creates a new feed API
func NewFeedAPI(engine *feed.Engine, cfg config.FeedConfig) *FeedAPI {
	return &FeedAPI{
		engine: engine,
		cfg:    cfg,
		logger: logging.WithComponent("feed-api"),
	}
}

// viewerID extracts the authenticated viewer. Session issuance lives
// upstream; the gateway forwards the resolved identity in a header.
func viewerID(c *gin.Context) (string, *Error) {
	id := c.GetHeader("X-Viewer-ID")
	if id == "" {
		return "", NewInvalidInput("missing viewer identity")
	}
	return id, nil
}

// parseQuery validates pagination parameters before the engine runs
func (f *FeedAPI) parseQuery(c *gin.Context) (feed.FeedQuery, *Error) {
	q := feed.FeedQuery{
		Limit:  f.cfg.DefaultLimit,
		SortBy: feed.SortRecent,
	}

	if raw := c.Query("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 1 || limit > f.cfg.MaxLimit {
			return q, NewInvalidInput("limit must be an integer between 1 and " + strconv.Itoa(f.cfg.MaxLimit))
		}
		q.Limit = limit
	}

	if raw := c.Query("sortBy"); raw != "" {
		switch feed.SortMode(raw) {
		case feed.SortRecent, feed.SortRelevance:
			q.SortBy = feed.SortMode(raw)
		default:
			return q, NewInvalidInput("sortBy must be one of: recent, relevance")
		}
	}

	if raw := c.Query("cursor"); raw != "" {
		if _, err := feed.DecodeCursor(raw); err != nil {
			return q, NewInvalidInput("malformed cursor")
		}
		q.Cursor = raw
	}

	return q, nil
}

// Home handles GET /api/v1/feed
func (f *FeedAPI) Home(c *gin.Context) {
	viewer, apiErr := viewerID(c)
	if apiErr != nil {
		respondError(c, apiErr)
		return
	}
	q, apiErr := f.parseQuery(c)
	if apiErr != nil {
		respondError(c, apiErr)
		return
	}

	page, err := f.engine.HomeFeed(c.Request.Context(), viewer, q)
	if err != nil {
		f.logger.Error("home feed failed", zap.String("viewer", viewer), zap.Error(err))
		respondError(c, err)
		return
	}
	c.JSON(200, page)
}

// Explore handles GET /api/v1/explore
func (f *FeedAPI) Explore(c *gin.Context) {
	viewer, apiErr := viewerID(c)
	if apiErr != nil {
		respondError(c, apiErr)
		return
	}
	q, apiErr := f.parseQuery(c)
	if apiErr != nil {
		respondError(c, apiErr)
		return
	}

	page, err := f.engine.ExploreFeed(c.Request.Context(), viewer, q)
	if err != nil {
		f.logger.Error("explore feed failed", zap.String("viewer", viewer), zap.Error(err))
		respondError(c, err)
		return
	}
	c.JSON(200, page)
}

// Hashtag handles GET /api/v1/hashtags/:tag/posts
func (f *FeedAPI) Hashtag(c *gin.Context) {
	viewer, apiErr := viewerID(c)
	if apiErr != nil {
		respondError(c, apiErr)
		return
	}
	tag := c.Param("tag")
	if tag == "" {
		respondError(c, NewInvalidInput("missing hashtag"))
		return
	}
	q, apiErr := f.parseQuery(c)
	if apiErr != nil {
		respondError(c, apiErr)
		return
	}

	page, err := f.engine.HashtagFeed(c.Request.Context(), viewer, tag, q)
	if err != nil {
		f.logger.Error("hashtag feed failed", zap.String("tag", tag), zap.Error(err))
		respondError(c, err)
		return
	}
	c.JSON(200, page)
}

// Mentions handles GET /api/v1/mentions
func (f *FeedAPI) Mentions(c *gin.Context) {
	viewer, apiErr := viewerID(c)
	if apiErr != nil {
		respondError(c, apiErr)
		return
	}
	q, apiErr := f.parseQuery(c)
	if apiErr != nil {
		respondError(c, apiErr)
		return
	}

	page, err := f.engine.MentionsFeed(c.Request.Context(), viewer, q)
	if err != nil {
		f.logger.Error("mentions feed failed", zap.String("viewer", viewer), zap.Error(err))
		respondError(c, err)
		return
	}
	c.JSON(200, page)
}

// Reels handles GET /api/v1/reels
func (f *FeedAPI) Reels(c *gin.Context) {
	viewer, apiErr := viewerID(c)
	if apiErr != nil {
		respondError(c, apiErr)
		return
	}
	q, apiErr := f.parseQuery(c)
	if apiErr != nil {
		respondError(c, apiErr)
		return
	}

	page, err := f.engine.ReelsFeed(c.Request.Context(), viewer, q)
	if err != nil {
		f.logger.Error("reels feed failed", zap.String("viewer", viewer), zap.Error(err))
		respondError(c, err)
		return
	}
	c.JSON(200, page)
}

// Related handles GET /api/v1/posts/:id/related
func (f *FeedAPI) Related(c *gin.Context) {
	viewer, apiErr := viewerID(c)
	if apiErr != nil {
		respondError(c, apiErr)
		return
	}
	postID := c.Param("id")

	limit := f.cfg.DefaultLimit
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > f.cfg.MaxLimit {
			respondError(c, NewInvalidInput("limit must be an integer between 1 and "+strconv.Itoa(f.cfg.MaxLimit)))
			return
		}
		limit = parsed
	}

	items, err := f.engine.RelatedPosts(c.Request.Context(), viewer, postID, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(200, gin.H{"data": items})
}

// ViewerState handles GET /api/v1/posts/:id/viewer-state
func (f *FeedAPI) ViewerState(c *gin.Context) {
	viewer, apiErr := viewerID(c)
	if apiErr != nil {
		respondError(c, apiErr)
		return
	}

	state, err := f.engine.PostViewerState(c.Request.Context(), viewer, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(200, state)
}

// Search handles GET /api/v1/search/posts
func (f *FeedAPI) Search(c *gin.Context) {
	viewer, apiErr := viewerID(c)
	if apiErr != nil {
		respondError(c, apiErr)
		return
	}
	query := c.Query("q")
	if query == "" {
		respondError(c, NewInvalidInput("missing search query"))
		return
	}

	limit := f.cfg.DefaultLimit
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > f.cfg.MaxLimit {
			respondError(c, NewInvalidInput("limit must be an integer between 1 and "+strconv.Itoa(f.cfg.MaxLimit)))
			return
		}
		limit = parsed
	}

	items, err := f.engine.SearchPosts(c.Request.Context(), viewer, query, limit)
	if err != nil {
		f.logger.Error("post search failed", zap.String("viewer", viewer), zap.Error(err))
		respondError(c, err)
		return
	}
	c.JSON(200, gin.H{"data": items})
}
