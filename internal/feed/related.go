package feed

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/Circlesfera/circlesfera-backend-sub000/internal/models"
	"github.com/Circlesfera/circlesfera-backend-sub000/pkg/telemetry"
)

// RelatedPosts returns up to limit items related to the given post: half
// from the same author's recent posts and half sharing any of the post's
// first two hashtags, de-duplicated and decorated like any feed page. No
// pagination; a single bounded call.
func (e *Engine) RelatedPosts(ctx context.Context, viewerID, postID string, limit int) ([]FeedItem, error) {
	ctx, span := telemetry.StartSpan(ctx, "feed.related")
	defer span.End()

	if limit <= 0 {
		limit = e.cfg.DefaultLimit
	}
	if limit > e.cfg.MaxLimit {
		limit = e.cfg.MaxLimit
	}

	post, err := e.posts.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, ErrNotFound
	}

	excluded, err := e.graph.FindMutualBlocks(ctx, viewerID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve viewer graph: %w", err)
	}
	excludedSet := toSet(excluded)

	authorHalf := (limit + 1) / 2
	tagHalf := limit - authorHalf

	tags := make([]string, 0, 2)
	for _, h := range post.Hashtags {
		if len(tags) == 2 {
			break
		}
		tags = append(tags, h.Tag)
	}

	var sameAuthor, sameTags []*models.Post
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		// Same-author recommendations are moot when the author is blocked
		if excludedSet[post.AuthorID] {
			return nil
		}
		var err error
		sameAuthor, _, err = e.posts.FindByAuthorID(gctx, post.AuthorID, post.ID, nil, authorHalf)
		return err
	})
	g.Go(func() error {
		if len(tags) == 0 || tagHalf == 0 {
			return nil
		}
		var err error
		sameTags, _, err = e.posts.FindByHashtags(gctx, tags, []string{post.AuthorID}, nil, tagHalf)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	authorCands := dropBlocked(postCandidates(sameAuthor), excludedSet)
	tagCands := dropBlocked(postCandidates(sameTags), excludedSet)
	// The item itself never recommends itself
	tagCands = dropID(tagCands, post.ID)

	merged, _ := mergeMany([][]candidate{authorCands, tagCands}, limit)
	return e.decorate(ctx, viewerID, merged)
}

func dropID(cands []candidate, id string) []candidate {
	kept := cands[:0]
	for _, c := range cands {
		if c.id != id {
			kept = append(kept, c)
		}
	}
	return kept
}
