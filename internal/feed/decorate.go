package feed

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/Circlesfera/circlesfera-backend-sub000/internal/models"
)

// decorate attaches author identity, viewer liked/saved flags, aggregate
// counts and spatial media tags to the final candidate set. One batched call
// per concern, issued concurrently; never one call per item.
func (e *Engine) decorate(ctx context.Context, viewerID string, cands []candidate) ([]FeedItem, error) {
	if len(cands) == 0 {
		return []FeedItem{}, nil
	}

	ids := make([]string, 0, len(cands))
	postIDs := make([]string, 0, len(cands))
	authorIDSet := make(map[string]bool, len(cands))
	authorIDs := make([]string, 0, len(cands))
	for _, c := range cands {
		ids = append(ids, c.id)
		if c.post != nil {
			postIDs = append(postIDs, c.id)
		}
		if !authorIDSet[c.authorID()] {
			authorIDSet[c.authorID()] = true
			authorIDs = append(authorIDs, c.authorID())
		}
	}

	var (
		authors   []*models.User
		likedIDs  []string
		savedIDs  []string
		counts    map[string]models.InteractionCounts
		mediaTags map[string][]*models.MediaUserTag
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		authors, err = e.users.GetByIDs(gctx, authorIDs)
		return err
	})
	g.Go(func() error {
		var err error
		likedIDs, err = e.interactions.FindLikedPostIDs(gctx, viewerID, ids)
		return err
	})
	g.Go(func() error {
		var err error
		savedIDs, err = e.interactions.FindSavedPostIDs(gctx, viewerID, ids)
		return err
	})
	g.Go(func() error {
		var err error
		counts, err = e.interactions.CountByPostIDs(gctx, ids)
		return err
	})
	g.Go(func() error {
		var err error
		mediaTags, err = e.mediaTags.FindByPostIDs(gctx, postIDs)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to decorate feed items: %w", err)
	}

	authorMap := make(map[string]*models.User, len(authors))
	for _, user := range authors {
		authorMap[user.ID] = user
	}
	likedSet := make(map[string]bool, len(likedIDs))
	for _, id := range likedIDs {
		likedSet[id] = true
	}
	savedSet := make(map[string]bool, len(savedIDs))
	for _, id := range savedIDs {
		savedSet[id] = true
	}

	// Build in candidate order; skip items whose author no longer resolves
	items := make([]FeedItem, 0, len(cands))
	for _, c := range cands {
		author := authorMap[c.authorID()]
		if author == nil {
			continue
		}
		var item FeedItem
		if c.post != nil {
			item = buildPostItem(c.post, author, mediaTags[c.id])
		} else {
			item = buildReelItem(c.reel, author)
		}
		agg := counts[c.id]
		item.Stats.Likes = agg.Likes
		item.Stats.Comments = agg.Comments
		item.Stats.Saves = agg.Saves
		item.IsLikedByViewer = likedSet[c.id]
		item.IsSavedByViewer = savedSet[c.id]
		items = append(items, item)
	}

	return items, nil
}

func buildAuthor(user *models.User) Author {
	return Author{
		ID:          user.ID,
		Handle:      user.Handle,
		DisplayName: user.DisplayName,
		AvatarURL:   user.AvatarURL,
		IsVerified:  user.IsVerified,
	}
}

func buildPostItem(post *models.Post, author *models.User, tags []*models.MediaUserTag) FeedItem {
	media := make([]Media, 0, len(post.Media))
	for i, m := range post.Media {
		entry := Media{
			ID:           m.ID,
			Kind:         m.Kind,
			URL:          m.URL,
			ThumbnailURL: m.ThumbnailURL,
			DurationMS:   m.DurationMS,
			Width:        m.Width,
			Height:       m.Height,
		}
		for _, tag := range tags {
			if tag.MediaIndex != i {
				continue
			}
			wireTag := MediaTag{
				ID:           tag.ID,
				UserID:       tag.UserID,
				X:            tag.X,
				Y:            tag.Y,
				Width:        tag.Width,
				Height:       tag.Height,
				IsNormalized: tag.IsNormalized,
			}
			if tag.User != nil {
				tagged := buildAuthor(tag.User)
				wireTag.User = &tagged
			}
			entry.Tags = append(entry.Tags, wireTag)
		}
		media = append(media, entry)
	}

	return FeedItem{
		ID:      post.ID,
		Source:  SourcePost,
		Author:  buildAuthor(author),
		Caption: post.Caption,
		Media:   media,
		Stats: Stats{
			Shares: post.ShareCount,
			Views:  post.ViewCount,
		},
		CreatedAt: post.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func buildReelItem(reel *models.Reel, author *models.User) FeedItem {
	return FeedItem{
		ID:      reel.ID,
		Source:  SourceReel,
		Author:  buildAuthor(author),
		Caption: reel.Caption,
		Media: []Media{{
			ID:           reel.ID,
			Kind:         models.MediaKindVideo,
			URL:          reel.VideoURL,
			ThumbnailURL: reel.ThumbnailURL,
			DurationMS:   reel.DurationMS,
			Width:        reel.Width,
			Height:       reel.Height,
		}},
		Stats: Stats{
			Shares: reel.ShareCount,
			Views:  reel.ViewCount,
		},
		CreatedAt: reel.CreatedAt.UTC().Format(time.RFC3339),
	}
}
