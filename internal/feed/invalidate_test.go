package feed

import (
	"context"
	"testing"
	"time"
)

func TestInvalidate_EvictsAuthorAndFollowerPages(t *testing.T) {
	store := newFakeStore()
	store.addUser("a")
	store.addUser("fan")
	store.addUser("other")
	store.follow("fan", "a")
	store.addPost("a1", "a", 10)
	store.addPost("o1", "other", 9)

	cache := newFakeCache()
	engine := newTestEngine(store, cache)

	// Warm first pages for the author, a follower and an unrelated viewer
	for _, viewer := range []string{"a", "fan", "other"} {
		if _, err := engine.HomeFeed(context.Background(), viewer, FeedQuery{Limit: 10}); err != nil {
			t.Fatalf("HomeFeed(%s) failed: %v", viewer, err)
		}
	}
	if cache.size() != 3 {
		t.Fatalf("warm cache holds %d pages, want 3", cache.size())
	}
	queries := store.callCount("FindFeed")

	inv := NewInvalidator(cache, store, time.Second)
	inv.invalidate("a")

	// Only the unrelated viewer's page survives
	if cache.size() != 1 {
		t.Fatalf("cache holds %d pages after invalidation, want 1", cache.size())
	}
	if _, err := engine.HomeFeed(context.Background(), "other", FeedQuery{Limit: 10}); err != nil {
		t.Fatalf("HomeFeed(other) failed: %v", err)
	}
	if got := store.callCount("FindFeed"); got != queries {
		t.Errorf("FindFeed calls = %d, want %d; the surviving page should still serve from cache", got, queries)
	}

	// Evicted viewers reassemble on their next request
	if _, err := engine.HomeFeed(context.Background(), "fan", FeedQuery{Limit: 10}); err != nil {
		t.Fatalf("HomeFeed(fan) failed: %v", err)
	}
	if got := store.callCount("FindFeed"); got != queries+1 {
		t.Errorf("FindFeed calls = %d after eviction, want %d", got, queries+1)
	}
}

func TestInvalidate_FollowerResolutionFailureDegradesToAuthor(t *testing.T) {
	store := newFakeStore()
	store.addUser("a")
	store.addUser("fan")
	store.follow("fan", "a")
	store.addPost("a1", "a", 10)

	cache := newFakeCache()
	engine := newTestEngine(store, cache)
	for _, viewer := range []string{"a", "fan"} {
		if _, err := engine.HomeFeed(context.Background(), viewer, FeedQuery{Limit: 10}); err != nil {
			t.Fatalf("HomeFeed(%s) failed: %v", viewer, err)
		}
	}

	store.fail["FindFollowerIDs"] = context.DeadlineExceeded

	inv := NewInvalidator(cache, store, time.Second)
	inv.invalidate("a")

	// The author's own pages still go; the follower keeps a stale page
	// until its TTL expires
	if cache.size() != 1 {
		t.Fatalf("cache holds %d pages, want 1", cache.size())
	}
}

func TestContentMutated_NilSafe(t *testing.T) {
	var inv *Invalidator
	inv.ContentMutated("a") // must not panic

	NewInvalidator(nil, newFakeStore(), time.Second).ContentMutated("a")
}
