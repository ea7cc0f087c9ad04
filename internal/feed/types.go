package feed

import (
	"time"

	"github.com/Circlesfera/circlesfera-backend-sub000/internal/models"
)

// Feed kinds
type Kind string

const (
	KindHome     Kind = "home"
	KindExplore  Kind = "explore"
	KindHashtag  Kind = "hashtag"
	KindMentions Kind = "mentions"
	KindReels    Kind = "reels"
)

// Sort modes
type SortMode string

const (
	SortRecent    SortMode = "recent"
	SortRelevance SortMode = "relevance"
)

// Source kinds of a feed item
const (
	SourcePost = "post"
	SourceReel = "reel"
)

// FeedQuery is the pagination input for all feed variants
type FeedQuery struct {
	Limit  int
	Cursor string
	SortBy SortMode
}

// Author is the public identity attached to a feed item
type Author struct {
	ID          string `json:"id"`
	Handle      string `json:"handle"`
	DisplayName string `json:"displayName"`
	AvatarURL   string `json:"avatarUrl"`
	IsVerified  bool   `json:"isVerified"`
}

// MediaTag is a user tag anchored to a media element
type MediaTag struct {
	ID           string  `json:"id"`
	UserID       string  `json:"userId"`
	User         *Author `json:"user,omitempty"`
	X            float64 `json:"x"`
	Y            float64 `json:"y"`
	Width        float64 `json:"width,omitempty"`
	Height       float64 `json:"height,omitempty"`
	IsNormalized bool    `json:"isNormalized"`
}

// Media is one media entry of a feed item
type Media struct {
	ID           string     `json:"id"`
	Kind         string     `json:"kind"`
	URL          string     `json:"url"`
	ThumbnailURL string     `json:"thumbnailUrl"`
	DurationMS   int64      `json:"durationMs,omitempty"`
	Width        int        `json:"width,omitempty"`
	Height       int        `json:"height,omitempty"`
	Tags         []MediaTag `json:"tags,omitempty"`
}

// Stats aggregates interaction totals for a feed item
type Stats struct {
	Likes    int64 `json:"likes"`
	Comments int64 `json:"comments"`
	Saves    int64 `json:"saves"`
	Shares   int64 `json:"shares"`
	Views    int64 `json:"views"`
}

// FeedItem is one unit of content rendered in a viewer's stream, decorated
// with viewer-specific state. It is a read projection assembled per request,
// never persisted.
type FeedItem struct {
	ID              string  `json:"id"`
	Source          string  `json:"source"`
	Author          Author  `json:"author"`
	Caption         string  `json:"caption"`
	Media           []Media `json:"media"`
	Stats           Stats   `json:"stats"`
	CreatedAt       string  `json:"createdAt"`
	IsLikedByViewer bool    `json:"isLikedByViewer"`
	IsSavedByViewer bool    `json:"isSavedByViewer"`
}

// FeedPage is one page of feed items plus the pagination token for the next
// page, null when the stream is exhausted.
type FeedPage struct {
	Data       []FeedItem `json:"data"`
	NextCursor *string    `json:"nextCursor"`
}

// ViewerState is the viewer's own interaction flags for a single content
// item, checked per item rather than through the batched feed decoration.
type ViewerState struct {
	IsLiked bool `json:"isLiked"`
	IsSaved bool `json:"isSaved"`
}

// candidate is one pre-merge content unit tagged with its origin source and
// true creation timestamp. Candidate sets are transient per-request state.
type candidate struct {
	id        string
	createdAt time.Time
	post      *models.Post
	reel      *models.Reel
}

func postCandidate(p *models.Post) candidate {
	return candidate{id: p.ID, createdAt: p.CreatedAt, post: p}
}

func reelCandidate(r *models.Reel) candidate {
	return candidate{id: r.ID, createdAt: r.CreatedAt, reel: r}
}

func (c candidate) authorID() string {
	if c.post != nil {
		return c.post.AuthorID
	}
	return c.reel.AuthorID
}
