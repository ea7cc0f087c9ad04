package api

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Circlesfera/circlesfera-backend-sub000/internal/cache"
	"github.com/Circlesfera/circlesfera-backend-sub000/internal/db"
	"github.com/Circlesfera/circlesfera-backend-sub000/internal/feed"
	"github.com/Circlesfera/circlesfera-backend-sub000/pkg/config"
	"github.com/Circlesfera/circlesfera-backend-sub000/pkg/logging"
)

// Router sets up API routes
type Router struct {
	feedAPI *FeedAPI
	postAPI *PostAPI
	userAPI *UserAPI
	db      *db.DB
	cache   *cache.Cache
	logger  *zap.Logger
}

// NewRouter creates a new API router
func NewRouter(database *db.DB, redisCache *cache.Cache, engine *feed.Engine, invalidator *feed.Invalidator, cfg *config.Config) *Router {
	repo := db.NewRepository(database.DB)
	return &Router{
		feedAPI: NewFeedAPI(engine, cfg.Feed),
		postAPI: NewPostAPI(db.NewPostRepository(repo), invalidator),
		userAPI: NewUserAPI(db.NewUserRepository(repo)),
		db:      database,
		cache:   redisCache,
		logger:  logging.GetLogger().With(zap.String("component", "api-router")),
	}
}

// SetupRoutes sets up all API routes
func (r *Router) SetupRoutes(engine *gin.Engine) {
	// Health check endpoints
	engine.GET("/health", r.healthHandler)
	engine.GET("/.well-known/healthcheck.json", r.healthHandler)

	v1 := engine.Group("/api/v1")
	{
		v1.GET("/feed", r.feedAPI.Home)
		v1.GET("/explore", r.feedAPI.Explore)
		v1.GET("/hashtags/:tag/posts", r.feedAPI.Hashtag)
		v1.GET("/mentions", r.feedAPI.Mentions)
		v1.GET("/reels", r.feedAPI.Reels)
		v1.GET("/search/posts", r.feedAPI.Search)

		v1.GET("/me", r.userAPI.Me)
		v1.GET("/users/:handle", r.userAPI.GetByHandle)

		v1.GET("/posts/:id/related", r.feedAPI.Related)
		v1.GET("/posts/:id/viewer-state", r.feedAPI.ViewerState)
		v1.POST("/posts", r.postAPI.Create)
		v1.PATCH("/posts/:id", r.postAPI.UpdateCaption)
		v1.DELETE("/posts/:id", r.postAPI.Delete)
		v1.POST("/posts/:id/archive", r.postAPI.Archive)
		v1.POST("/posts/:id/unarchive", r.postAPI.Unarchive)
	}
}

// healthHandler handles health check requests
func (r *Router) healthHandler(c *gin.Context) {
	status := "OK"
	code := 200

	if err := r.db.Health(c.Request.Context()); err != nil {
		r.logger.Error("database health check failed", zap.Error(err))
		status = "DEGRADED"
		code = 503
	}
	if r.cache != nil {
		if err := r.cache.Health(c.Request.Context()); err != nil {
			r.logger.Warn("cache health check failed", zap.Error(err))
		}
	}

	c.JSON(code, gin.H{
		"status":  status,
		"service": "circlesfera-feed-api",
	})
}
