package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mesa/internal/models"
)

func newPostFixture(t *testing.T) (*fixture, *PostService) {
	t.Helper()
	f := newFixture(t)
	svc := NewPostService(f.users, f.posts)
	return f, svc
}

func TestCreatePost(t *testing.T) {
	f, svc := newPostFixture(t)
	ctx := context.Background()
	f.addUser(t, "alice")

	post, err := svc.Create(ctx, "alice", "first!", "")
	require.NoError(t, err)
	assert.Equal(t, 1, post.ID)
	assert.Equal(t, "alice", post.Username)

	_, err = time.Parse(time.RFC3339, post.Timestamp)
	assert.NoError(t, err, "timestamps are stored as RFC 3339")

	second, err := svc.Create(ctx, "alice", "again", "")
	require.NoError(t, err)
	assert.Equal(t, 2, second.ID)

	_, err = svc.Create(ctx, "alice", "", "")
	assert.True(t, models.IsCode(err, models.CodeValidation))

	_, err = svc.Create(ctx, "ghost", "boo", "")
	assert.True(t, models.IsCode(err, models.CodeNotFound))
}

func TestListPostsNewestFirst(t *testing.T) {
	f, svc := newPostFixture(t)
	ctx := context.Background()

	require.NoError(t, f.posts.Replace(ctx, []models.Post{
		{ID: 1, Username: "a", Text: "old", Timestamp: "2026-01-01T10:00:00Z"},
		{ID: 2, Username: "b", Text: "new", Timestamp: "2026-03-01T10:00:00Z"},
		{ID: 3, Username: "a", Text: "middle", Timestamp: "2026-02-01T10:00:00Z"},
	}))

	posts, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, posts, 3)
	assert.Equal(t, []int{2, 3, 1}, []int{posts[0].ID, posts[1].ID, posts[2].ID})

	mine, err := svc.ListFor(ctx, "a")
	require.NoError(t, err)
	require.Len(t, mine, 2)
	assert.Equal(t, "middle", mine[0].Text)
}

func TestDeletePostOwnership(t *testing.T) {
	f, svc := newPostFixture(t)
	ctx := context.Background()

	require.NoError(t, f.posts.Replace(ctx, []models.Post{
		{ID: 1, Username: "alice", Text: "mine", Timestamp: "2026-01-01T10:00:00Z"},
	}))

	err := svc.Delete(ctx, 1, "bob")
	require.Error(t, err)
	assert.True(t, models.IsCode(err, models.CodeForbidden))

	// A forbidden delete leaves the table unchanged.
	posts, err := f.posts.All(ctx)
	require.NoError(t, err)
	assert.Len(t, posts, 1)

	require.NoError(t, svc.Delete(ctx, 1, "alice"))
	posts, err = f.posts.All(ctx)
	require.NoError(t, err)
	assert.Empty(t, posts)

	err = svc.Delete(ctx, 1, "alice")
	assert.True(t, models.IsCode(err, models.CodeNotFound))
}
