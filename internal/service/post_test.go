package service

import (
	"context"
	"testing"

	"github.com/hyeonKii/SocialService/internal/dto"
	"github.com/hyeonKii/SocialService/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newPostFixture() (Post, *fakePostRepo, *fakeStorage) {
	postRepo := newFakePostRepo()
	store := &fakeStorage{}
	repo := newTestRepository(postRepo, newFakeRelationshipRepo(), newFakeRedis())
	return newPostService(zap.NewNop(), repo, store), postRepo, store
}

func TestCreatePostFillsAuthorFields(t *testing.T) {
	posts, _, _ := newPostFixture()
	user := &model.SessionUser{ID: "u1", Email: "alice@test.io", PhotoURL: "https://img.test/u1"}

	created, err := posts.Create(context.Background(), user, dto.CreatePostRequest{
		Content:  "hello world",
		HashTags: []string{"go"},
	})

	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "u1", created.UID)
	assert.Equal(t, "alice@test.io", created.Email)
	assert.Equal(t, "https://img.test/u1", created.ProfileURL)
	assert.NotEmpty(t, created.CreatedAt)
	assert.Empty(t, created.Likes)
	assert.Zero(t, created.LikeCount)
}

func TestCreatePostRejectsNonDataURLImage(t *testing.T) {
	posts, _, _ := newPostFixture()
	user := &model.SessionUser{ID: "u1"}

	_, err := posts.Create(context.Background(), user, dto.CreatePostRequest{
		Content:      "hello",
		ImageDataURL: "https://evil.test/image.png",
	})

	assert.ErrorIs(t, err, ErrImageMustBeDataURL)
}

func TestToggleLikeIsAnInvolution(t *testing.T) {
	posts, postRepo, _ := newPostFixture()
	ctx := context.Background()
	created, err := postRepo.Create(ctx, model.Post{UID: "author", Content: "hi"})
	require.NoError(t, err)

	liked, err := posts.ToggleLike(ctx, created.ID, "viewer")
	require.NoError(t, err)
	assert.Equal(t, []string{"viewer"}, liked.Likes)
	assert.Equal(t, int64(1), liked.LikeCount)

	unliked, err := posts.ToggleLike(ctx, created.ID, "viewer")
	require.NoError(t, err)
	assert.Empty(t, unliked.Likes)
	assert.Zero(t, unliked.LikeCount)
}

func TestToggleLikeCountMatchesLikerSet(t *testing.T) {
	posts, postRepo, _ := newPostFixture()
	ctx := context.Background()
	created, err := postRepo.Create(ctx, model.Post{UID: "author", Content: "hi"})
	require.NoError(t, err)

	for _, uid := range []string{"a", "b", "c", "b"} {
		post, err := posts.ToggleLike(ctx, created.ID, uid)
		require.NoError(t, err)
		assert.Equal(t, int64(len(post.Likes)), post.LikeCount)
	}

	final, err := posts.FindByID(ctx, created.ID)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"a", "c"}, final.Likes)
	assert.Equal(t, int64(2), final.LikeCount)
}

func TestToggleLikeUnknownPost(t *testing.T) {
	posts, _, _ := newPostFixture()

	_, err := posts.ToggleLike(context.Background(), "missing", "viewer")

	assert.ErrorIs(t, err, ErrPostNotFound)
}

func TestEditPostOnlyByAuthor(t *testing.T) {
	posts, postRepo, _ := newPostFixture()
	ctx := context.Background()
	created, err := postRepo.Create(ctx, model.Post{UID: "author", Content: "hi"})
	require.NoError(t, err)

	content := "edited"
	_, err = posts.Edit(ctx, &model.SessionUser{ID: "intruder"}, created.ID, dto.EditPostRequest{Content: &content})
	assert.ErrorIs(t, err, ErrForbidden)

	updated, err := posts.Edit(ctx, &model.SessionUser{ID: "author"}, created.ID, dto.EditPostRequest{Content: &content})
	require.NoError(t, err)
	assert.Equal(t, "edited", updated.Content)
}

func TestEditPostEmptyImageRemovesBlob(t *testing.T) {
	posts, postRepo, store := newPostFixture()
	ctx := context.Background()
	created, err := postRepo.Create(ctx, model.Post{UID: "author", Content: "hi", ImageURL: "https://blobs.test/author/old"})
	require.NoError(t, err)

	removed := ""
	updated, err := posts.Edit(ctx, &model.SessionUser{ID: "author"}, created.ID, dto.EditPostRequest{ImageDataURL: &removed})

	require.NoError(t, err)
	assert.Empty(t, updated.ImageURL)
	assert.Equal(t, []string{"https://blobs.test/author/old"}, store.deleted)
}

func TestDeletePostRemovesBlobFirst(t *testing.T) {
	posts, postRepo, store := newPostFixture()
	ctx := context.Background()
	created, err := postRepo.Create(ctx, model.Post{UID: "author", Content: "hi", ImageURL: "https://blobs.test/author/img"})
	require.NoError(t, err)

	err = posts.Delete(ctx, &model.SessionUser{ID: "intruder"}, created.ID)
	assert.ErrorIs(t, err, ErrForbidden)

	require.NoError(t, posts.Delete(ctx, &model.SessionUser{ID: "author"}, created.ID))
	assert.Equal(t, []string{"https://blobs.test/author/img"}, store.deleted)
	_, err = posts.FindByID(ctx, created.ID)
	assert.ErrorIs(t, err, ErrPostNotFound)
}
