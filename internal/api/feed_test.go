package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Circlesfera/circlesfera-backend-sub000/internal/feed"
	"github.com/Circlesfera/circlesfera-backend-sub000/internal/models"
	"github.com/Circlesfera/circlesfera-backend-sub000/pkg/config"
)

func init() {
	gin.SetMode(gin.TestMode)
}

var stubTime = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func stubPost() *models.Post {
	return &models.Post{
		ID:        "p1",
		AuthorID:  "a",
		Caption:   "hello",
		CreatedAt: stubTime,
		UpdatedAt: stubTime,
		Media: []models.PostMedia{{
			ID: "p1-m0", PostID: "p1",
			Kind: models.MediaKindImage, URL: "https://cdn.example/p1.jpg",
		}},
	}
}

// stubStore satisfies every engine port with one post by one author
type stubStore struct{}

func (stubStore) GetByID(ctx context.Context, id string) (*models.Post, error) {
	if id == "p1" {
		return stubPost(), nil
	}
	return nil, nil
}

func (stubStore) FindFeed(ctx context.Context, authorIDs []string, cursor *time.Time, limit int) ([]*models.Post, bool, error) {
	return []*models.Post{stubPost()}, false, nil
}

func (stubStore) FindExplore(ctx context.Context, excludeAuthorIDs []string, cursor *time.Time, limit int) ([]*models.Post, bool, error) {
	return []*models.Post{stubPost()}, false, nil
}

func (stubStore) FindByHashtags(ctx context.Context, tags []string, excludeAuthorIDs []string, cursor *time.Time, limit int) ([]*models.Post, bool, error) {
	return nil, false, nil
}

func (stubStore) FindByHashtag(ctx context.Context, tag string, cursor *time.Time, limit int) ([]*models.Post, bool, error) {
	return []*models.Post{stubPost()}, false, nil
}

func (stubStore) FindByAuthorID(ctx context.Context, authorID, excludeID string, cursor *time.Time, limit int) ([]*models.Post, bool, error) {
	return nil, false, nil
}

func (stubStore) FindManyByIDs(ctx context.Context, ids []string) ([]*models.Post, error) {
	return []*models.Post{stubPost()}, nil
}

func (stubStore) SearchPosts(ctx context.Context, query string, limit int) ([]*models.Post, error) {
	return []*models.Post{stubPost()}, nil
}

func (stubStore) FindReels(ctx context.Context, authorIDs, excludeAuthorIDs []string, cursor *time.Time, limit int) ([]*models.Reel, bool, error) {
	return nil, false, nil
}

func (stubStore) FindFollowingIDs(ctx context.Context, userID string) ([]string, error) {
	return []string{"a"}, nil
}

func (stubStore) FindFollowerIDs(ctx context.Context, userID string) ([]string, error) {
	return nil, nil
}

func (stubStore) FindBlockedIDs(ctx context.Context, userID string) ([]string, error) {
	return nil, nil
}

func (stubStore) FindBlockerIDs(ctx context.Context, userID string) ([]string, error) {
	return nil, nil
}

func (stubStore) FindMutualBlocks(ctx context.Context, userID string) ([]string, error) {
	return nil, nil
}

func (stubStore) FindFollowedTags(ctx context.Context, userID string) ([]string, error) {
	return nil, nil
}

func (stubStore) FindLikedPostIDs(ctx context.Context, userID string, postIDs []string) ([]string, error) {
	return nil, nil
}

func (stubStore) FindSavedPostIDs(ctx context.Context, userID string, postIDs []string) ([]string, error) {
	return nil, nil
}

func (stubStore) CountByPostIDs(ctx context.Context, postIDs []string) (map[string]models.InteractionCounts, error) {
	return map[string]models.InteractionCounts{}, nil
}

func (stubStore) Exists(ctx context.Context, userID, postID, kind string) (bool, error) {
	return false, nil
}

func (stubStore) GetByIDs(ctx context.Context, ids []string) ([]*models.User, error) {
	return []*models.User{{ID: "a", Handle: "h_a"}}, nil
}

func (stubStore) FindMentions(ctx context.Context, userID string, cursor *time.Time, limit int) ([]*models.Mention, bool, error) {
	return nil, false, nil
}

func (stubStore) FindByPostIDs(ctx context.Context, postIDs []string) (map[string][]*models.MediaUserTag, error) {
	return map[string][]*models.MediaUserTag{}, nil
}

func newTestRouter() *gin.Engine {
	cfg := config.FeedConfig{
		DefaultLimit:  10,
		MaxLimit:      50,
		CacheTTL:      time.Minute,
		BranchTimeout: time.Second,
	}
	engine := feed.NewEngine(feed.Deps{
		Posts:        stubStore{},
		Reels:        stubStore{},
		Graph:        stubStore{},
		Hashtags:     stubStore{},
		Interactions: stubStore{},
		Users:        stubStore{},
		Mentions:     stubStore{},
		MediaTags:    stubStore{},
	}, cfg)
	feedAPI := NewFeedAPI(engine, cfg)

	r := gin.New()
	r.GET("/api/v1/feed", feedAPI.Home)
	r.GET("/api/v1/explore", feedAPI.Explore)
	r.GET("/api/v1/hashtags/:tag/posts", feedAPI.Hashtag)
	r.GET("/api/v1/mentions", feedAPI.Mentions)
	r.GET("/api/v1/reels", feedAPI.Reels)
	r.GET("/api/v1/search/posts", feedAPI.Search)
	r.GET("/api/v1/posts/:id/related", feedAPI.Related)
	r.GET("/api/v1/posts/:id/viewer-state", feedAPI.ViewerState)
	return r
}

func doGet(t *testing.T, router *gin.Engine, target string, viewer string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	if viewer != "" {
		req.Header.Set("X-Viewer-ID", viewer)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

type errorBody struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func assertErrorCode(t *testing.T, rec *httptest.ResponseRecorder, status int, code string) {
	t.Helper()
	if rec.Code != status {
		t.Fatalf("status = %d, want %d (body: %s)", rec.Code, status, rec.Body.String())
	}
	var body errorBody
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("error body does not decode: %v", err)
	}
	if body.Error.Code != code {
		t.Errorf("error code = %q, want %q", body.Error.Code, code)
	}
}

func TestHome_ReturnsPage(t *testing.T) {
	router := newTestRouter()

	rec := doGet(t, router, "/api/v1/feed?limit=5", "v")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (body: %s)", rec.Code, rec.Body.String())
	}

	var page feed.FeedPage
	if err := json.Unmarshal(rec.Body.Bytes(), &page); err != nil {
		t.Fatalf("page body does not decode: %v", err)
	}
	if len(page.Data) != 1 || page.Data[0].ID != "p1" {
		t.Errorf("page data = %+v, want the single stub post", page.Data)
	}
	if page.NextCursor != nil {
		t.Errorf("nextCursor = %q, want null", *page.NextCursor)
	}
}

func TestHome_MissingViewerIdentity(t *testing.T) {
	rec := doGet(t, newTestRouter(), "/api/v1/feed", "")
	assertErrorCode(t, rec, http.StatusBadRequest, CodeInvalidInput)
}

func TestHome_RejectsBadPagination(t *testing.T) {
	router := newTestRouter()

	for _, target := range []string{
		"/api/v1/feed?limit=0",
		"/api/v1/feed?limit=999",
		"/api/v1/feed?limit=abc",
		"/api/v1/feed?sortBy=top",
		"/api/v1/feed?cursor=not-a-cursor",
	} {
		rec := doGet(t, router, target, "v")
		assertErrorCode(t, rec, http.StatusBadRequest, CodeInvalidInput)
	}
}

func TestExplore_ReturnsPage(t *testing.T) {
	rec := doGet(t, newTestRouter(), "/api/v1/explore", "v")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (body: %s)", rec.Code, rec.Body.String())
	}
}

func TestSearch_RequiresQuery(t *testing.T) {
	rec := doGet(t, newTestRouter(), "/api/v1/search/posts", "v")
	assertErrorCode(t, rec, http.StatusBadRequest, CodeInvalidInput)
}

func TestSearch_ReturnsItems(t *testing.T) {
	rec := doGet(t, newTestRouter(), "/api/v1/search/posts?q=hello", "v")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (body: %s)", rec.Code, rec.Body.String())
	}
	var body struct {
		Data []feed.FeedItem `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("search body does not decode: %v", err)
	}
	if len(body.Data) != 1 || body.Data[0].ID != "p1" {
		t.Errorf("search data = %+v, want the single stub post", body.Data)
	}
}

func TestRelated_UnknownPost(t *testing.T) {
	rec := doGet(t, newTestRouter(), "/api/v1/posts/nope/related", "v")
	assertErrorCode(t, rec, http.StatusNotFound, CodeNotFound)
}

func TestViewerState_ReturnsFlags(t *testing.T) {
	rec := doGet(t, newTestRouter(), "/api/v1/posts/p1/viewer-state", "v")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (body: %s)", rec.Code, rec.Body.String())
	}
	var state feed.ViewerState
	if err := json.Unmarshal(rec.Body.Bytes(), &state); err != nil {
		t.Fatalf("viewer state body does not decode: %v", err)
	}
	if state.IsLiked || state.IsSaved {
		t.Errorf("state = %+v, want both flags false for the stub viewer", state)
	}
}

func TestViewerState_UnknownPost(t *testing.T) {
	rec := doGet(t, newTestRouter(), "/api/v1/posts/nope/viewer-state", "v")
	assertErrorCode(t, rec, http.StatusNotFound, CodeNotFound)
}
