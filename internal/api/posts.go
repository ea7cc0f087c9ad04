package api

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Circlesfera/circlesfera-backend-sub000/internal/db"
	"github.com/Circlesfera/circlesfera-backend-sub000/internal/feed"
	"github.com/Circlesfera/circlesfera-backend-sub000/internal/models"
	"github.com/Circlesfera/circlesfera-backend-sub000/pkg/logging"
)

// PostAPI exposes content mutations. Every successful mutation dispatches
// feed cache invalidation for the author as a fire-and-forget side effect.
type PostAPI struct {
	posts       *db.PostRepository
	invalidator *feed.Invalidator
	logger      *zap.Logger
}

// NewPostAPI creates a new post mutation API
func NewPostAPI(posts *db.PostRepository, invalidator *feed.Invalidator) *PostAPI {
	return &PostAPI{
		posts:       posts,
		invalidator: invalidator,
		logger:      logging.WithComponent("post-api"),
	}
}

type createMediaRequest struct {
	Kind         string `json:"kind"`
	URL          string `json:"url"`
	ThumbnailURL string `json:"thumbnailUrl"`
	DurationMS   int64  `json:"durationMs"`
	Width        int    `json:"width"`
	Height       int    `json:"height"`
}

type createPostRequest struct {
	Caption string               `json:"caption"`
	Media   []createMediaRequest `json:"media"`
}

// Create handles POST /api/v1/posts
func (p *PostAPI) Create(c *gin.Context) {
	viewer, apiErr := viewerID(c)
	if apiErr != nil {
		respondError(c, apiErr)
		return
	}

	var req createPostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, NewInvalidInput("malformed request body"))
		return
	}
	if len(req.Media) == 0 {
		respondError(c, NewInvalidInput("a post requires at least one media entry"))
		return
	}
	for _, m := range req.Media {
		if m.Kind != models.MediaKindImage && m.Kind != models.MediaKindVideo {
			respondError(c, NewInvalidInput("media kind must be image or video"))
			return
		}
		if m.URL == "" {
			respondError(c, NewInvalidInput("media url is required"))
			return
		}
	}

	now := time.Now().UTC()
	post := &models.Post{
		ID:        uuid.NewString(),
		AuthorID:  viewer,
		Caption:   req.Caption,
		CreatedAt: now,
		UpdatedAt: now,
	}
	for i, m := range req.Media {
		post.Media = append(post.Media, models.PostMedia{
			ID:           uuid.NewString(),
			PostID:       post.ID,
			Position:     i,
			Kind:         m.Kind,
			URL:          m.URL,
			ThumbnailURL: m.ThumbnailURL,
			DurationMS:   m.DurationMS,
			Width:        m.Width,
			Height:       m.Height,
		})
	}

	if err := p.posts.Create(c.Request.Context(), post); err != nil {
		p.logger.Error("post create failed", zap.String("author", viewer), zap.Error(err))
		respondError(c, NewInternal("failed to create post"))
		return
	}

	p.invalidator.ContentMutated(viewer)
	c.JSON(201, gin.H{"id": post.ID})
}

type updateCaptionRequest struct {
	Caption string `json:"caption"`
}

// authorize loads the post and checks the viewer owns it
func (p *PostAPI) authorize(c *gin.Context, viewer string) (*models.Post, bool) {
	post, err := p.posts.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		p.logger.Error("post lookup failed", zap.String("post", c.Param("id")), zap.Error(err))
		respondError(c, NewInternal("failed to load post"))
		return nil, false
	}
	if post == nil {
		respondError(c, NewNotFound("post not found"))
		return nil, false
	}
	if post.AuthorID != viewer {
		respondError(c, NewForbidden("only the author may modify this post"))
		return nil, false
	}
	return post, true
}

// UpdateCaption handles PATCH /api/v1/posts/:id
func (p *PostAPI) UpdateCaption(c *gin.Context) {
	viewer, apiErr := viewerID(c)
	if apiErr != nil {
		respondError(c, apiErr)
		return
	}
	var req updateCaptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, NewInvalidInput("malformed request body"))
		return
	}

	post, ok := p.authorize(c, viewer)
	if !ok {
		return
	}
	if err := p.posts.UpdateCaption(c.Request.Context(), post.ID, req.Caption); err != nil {
		p.logger.Error("caption update failed", zap.String("post", post.ID), zap.Error(err))
		respondError(c, NewInternal("failed to update post"))
		return
	}

	p.invalidator.ContentMutated(viewer)
	c.JSON(200, gin.H{"id": post.ID})
}

// Delete handles DELETE /api/v1/posts/:id
func (p *PostAPI) Delete(c *gin.Context) {
	viewer, apiErr := viewerID(c)
	if apiErr != nil {
		respondError(c, apiErr)
		return
	}
	post, ok := p.authorize(c, viewer)
	if !ok {
		return
	}
	if err := p.posts.Delete(c.Request.Context(), post.ID); err != nil {
		p.logger.Error("post delete failed", zap.String("post", post.ID), zap.Error(err))
		respondError(c, NewInternal("failed to delete post"))
		return
	}

	p.invalidator.ContentMutated(viewer)
	c.JSON(200, gin.H{"id": post.ID})
}

// Archive handles POST /api/v1/posts/:id/archive
func (p *PostAPI) Archive(c *gin.Context) {
	p.setArchived(c, true)
}

// Unarchive handles POST /api/v1/posts/:id/unarchive
func (p *PostAPI) Unarchive(c *gin.Context) {
	p.setArchived(c, false)
}

func (p *PostAPI) setArchived(c *gin.Context, archived bool) {
	viewer, apiErr := viewerID(c)
	if apiErr != nil {
		respondError(c, apiErr)
		return
	}
	post, ok := p.authorize(c, viewer)
	if !ok {
		return
	}
	if err := p.posts.SetArchived(c.Request.Context(), post.ID, archived); err != nil {
		p.logger.Error("post archive toggle failed", zap.String("post", post.ID), zap.Error(err))
		respondError(c, NewInternal("failed to update post"))
		return
	}

	p.invalidator.ContentMutated(viewer)
	c.JSON(200, gin.H{"id": post.ID})
}
