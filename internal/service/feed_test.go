package service

import (
	"context"
	"testing"
	"time"

	"github.com/hyeonKii/SocialService/internal/model"
	"github.com/hyeonKii/SocialService/internal/repository/redisrepo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func feedFixture() []*model.Post {
	return []*model.Post{
		{ID: "p1", UID: "u1", Content: "first", CreatedAt: "2026. 8. 1. 오전 09:00:00", HashTags: []string{"go"}},
		{ID: "p2", UID: "u2", Content: "second", CreatedAt: "2026. 8. 2. 오전 09:00:00", HashTags: []string{"go", "redis"}},
		{ID: "p3", UID: "u1", Content: "third", CreatedAt: "2026. 8. 3. 오전 09:00:00", HashTags: []string{"Go"}},
	}
}

func TestComposeFeedAllScopeOrdersNewestFirst(t *testing.T) {
	posts := feedFixture()

	result := ComposeFeed(ScopeAll, "viewer", nil, posts)

	require.Len(t, result, 3)
	assert.Equal(t, "p3", result[0].ID)
	assert.Equal(t, "p2", result[1].ID)
	assert.Equal(t, "p1", result[2].ID)
}

func TestComposeFeedAllScopeKeepsArrivalOrderOnEqualTimestamps(t *testing.T) {
	posts := []*model.Post{
		{ID: "a", UID: "u1", CreatedAt: "2026. 8. 1. 오전 09:00:00"},
		{ID: "b", UID: "u2", CreatedAt: "2026. 8. 1. 오전 09:00:00"},
	}

	result := ComposeFeed(ScopeAll, "viewer", nil, posts)

	require.Len(t, result, 2)
	assert.Equal(t, "a", result[0].ID)
	assert.Equal(t, "b", result[1].ID)
}

func TestComposeFeedFollowingScopeFiltersByAuthor(t *testing.T) {
	posts := feedFixture()

	result := ComposeFeed(ScopeFollowing, "viewer", []string{"", "u2"}, posts)

	require.Len(t, result, 1)
	assert.Equal(t, "p2", result[0].ID)
}

func TestComposeFeedFollowingScopeEmptyFollowingIsEmpty(t *testing.T) {
	posts := feedFixture()

	assert.Empty(t, ComposeFeed(ScopeFollowing, "viewer", nil, posts))
	assert.Empty(t, ComposeFeed(ScopeFollowing, "viewer", []string{""}, posts))
}

func TestComposeFeedEmptyStringSentinelMatchesNoPost(t *testing.T) {
	posts := []*model.Post{
		{ID: "orphan", UID: "", CreatedAt: "2026. 8. 1. 오전 09:00:00"},
	}

	assert.Empty(t, ComposeFeed(ScopeFollowing, "viewer", []string{""}, posts))
}

func TestFilterByTagIsExactAndCaseSensitive(t *testing.T) {
	posts := feedFixture()

	result := FilterByTag("go", posts)

	require.Len(t, result, 2)
	assert.Equal(t, "p2", result[0].ID)
	assert.Equal(t, "p1", result[1].ID)

	result = FilterByTag("Go", posts)
	require.Len(t, result, 1)
	assert.Equal(t, "p3", result[0].ID)
}

func TestFilterByTagEmptyTagMatchesNothing(t *testing.T) {
	assert.Empty(t, FilterByTag("", feedFixture()))
}

func TestFeedWatchReplacesStaleSnapshots(t *testing.T) {
	postRepo := newFakePostRepo()
	rdb := newFakeRedis()
	repo := newTestRepository(postRepo, newFakeRelationshipRepo(), rdb)
	feeds := newFeedService(zap.NewNop(), repo)

	ctx := context.Background()
	first, err := postRepo.Create(ctx, model.Post{UID: "u1", Content: "hello", CreatedAt: "2026. 8. 1. 오전 09:00:00"})
	require.NoError(t, err)

	stream, err := feeds.Watch(ctx, ScopeAll, "viewer")
	require.NoError(t, err)
	defer stream.Close()

	initial := <-stream.C
	require.Len(t, initial, 1)
	assert.Equal(t, first.ID, initial[0].ID)

	_, err = postRepo.Create(ctx, model.Post{UID: "u2", Content: "newer", CreatedAt: "2026. 8. 2. 오전 09:00:00"})
	require.NoError(t, err)
	rdb.Publish(ctx, redisrepo.POSTS_CHANNEL, "changed")

	select {
	case snapshot := <-stream.C:
		require.Len(t, snapshot, 2)
		assert.Equal(t, "newer", snapshot[0].Content)
	case <-time.After(time.Second):
		t.Fatal("no snapshot after posts change")
	}
}

func TestFollowRefreshesOpenFollowingFeedWatch(t *testing.T) {
	postRepo := newFakePostRepo()
	relRepo := newFakeRelationshipRepo()
	rdb := newFakeRedis()
	repo := newTestRepository(postRepo, relRepo, rdb)
	feeds := newFeedService(zap.NewNop(), repo)
	relationships := newRelationshipService(zap.NewNop(), repo, &fakePublisher{})

	ctx := context.Background()
	_, err := postRepo.Create(ctx, model.Post{UID: "u2", Content: "hello", CreatedAt: "2026. 8. 1. 오전 09:00:00"})
	require.NoError(t, err)

	stream, err := feeds.Watch(ctx, ScopeFollowing, "u1")
	require.NoError(t, err)
	defer stream.Close()

	initial := <-stream.C
	assert.Empty(t, initial)

	require.NoError(t, relationships.Follow(ctx, &model.SessionUser{ID: "u1", Email: "alice@test.io"}, "u2"))

	select {
	case snapshot := <-stream.C:
		require.Len(t, snapshot, 1)
		assert.Equal(t, "u2", snapshot[0].UID)
	case <-time.After(time.Second):
		t.Fatal("no snapshot after follow")
	}
}

func TestFeedComposeRejectsUnknownScope(t *testing.T) {
	repo := newTestRepository(newFakePostRepo(), newFakeRelationshipRepo(), newFakeRedis())
	feeds := newFeedService(zap.NewNop(), repo)

	_, err := feeds.Compose(context.Background(), "trending", "viewer")

	assert.ErrorIs(t, err, ErrUnknownFeedScope)
}
