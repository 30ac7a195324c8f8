package memory

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/VitaminP8/yatube/internal/post"
	"github.com/VitaminP8/yatube/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostMemoryStorage_CreatePost(t *testing.T) {
	stores := newTestStores()
	ctx := context.Background()
	authorID := stores.createTestUser(t, "leo")
	g, err := stores.groups.CreateGroup(ctx, "Cats", "cats", "")
	require.NoError(t, err)

	t.Run("Success post creation", func(t *testing.T) {
		p, err := stores.posts.CreatePost(ctx, authorID, "Hello", &g.ID, "posts/cat.gif")
		require.NoError(t, err)
		assert.NotZero(t, p.ID)
		assert.Equal(t, "Hello", p.Text)
		assert.Equal(t, "leo", p.Author.Username)
		require.NotNil(t, p.Group)
		assert.Equal(t, "cats", p.Group.Slug)
		assert.Equal(t, "posts/cat.gif", p.Image)

		fromStorage, err := stores.posts.GetPostByID(ctx, p.ID)
		require.NoError(t, err)
		assert.Equal(t, p.ID, fromStorage.ID)
		assert.Equal(t, p.Text, fromStorage.Text)
	})

	t.Run("Error: unknown author", func(t *testing.T) {
		_, err := stores.posts.CreatePost(ctx, 999, "Hello", nil, "")
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})
}

func TestPostMemoryStorage_GetPostByID(t *testing.T) {
	stores := newTestStores()

	_, err := stores.posts.GetPostByID(context.Background(), 42)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestPostMemoryStorage_UpdatePost(t *testing.T) {
	stores := newTestStores()
	ctx := context.Background()
	authorID := stores.createTestUser(t, "leo")
	g, err := stores.groups.CreateGroup(ctx, "Cats", "cats", "")
	require.NoError(t, err)

	p, err := stores.posts.CreatePost(ctx, authorID, "Before", &g.ID, "")
	require.NoError(t, err)

	t.Run("Clearing the group keeps the post", func(t *testing.T) {
		updated, err := stores.posts.UpdatePost(ctx, p.ID, "After", nil, "")
		require.NoError(t, err)
		assert.Equal(t, p.ID, updated.ID)
		assert.Equal(t, authorID, updated.AuthorID)
		assert.Equal(t, "After", updated.Text)
		assert.Nil(t, updated.GroupID)
		assert.Nil(t, updated.Group)
		assert.Equal(t, p.CreatedAt, updated.CreatedAt)
	})

	t.Run("Unknown post", func(t *testing.T) {
		_, err := stores.posts.UpdatePost(ctx, 999, "x", nil, "")
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})
}

func TestPostMemoryStorage_ListPosts(t *testing.T) {
	stores := newTestStores()
	ctx := context.Background()
	leo := stores.createTestUser(t, "leo")
	mia := stores.createTestUser(t, "mia")
	g, err := stores.groups.CreateGroup(ctx, "Cats", "cats", "")
	require.NoError(t, err)

	// фиксированные отметки времени, чтобы порядок был детерминированным
	base := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	tick := 0
	stores.posts.now = func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Minute)
	}

	for i := 0; i < 13; i++ {
		_, err := stores.posts.CreatePost(ctx, leo, fmt.Sprintf("leo %d", i), &g.ID, "")
		require.NoError(t, err)
	}
	_, err = stores.posts.CreatePost(ctx, mia, "mia 0", nil, "")
	require.NoError(t, err)

	t.Run("All posts newest first", func(t *testing.T) {
		total, err := stores.posts.CountPosts(ctx, post.Filter{})
		require.NoError(t, err)
		assert.Equal(t, 14, total)

		posts, err := stores.posts.ListPosts(ctx, post.Filter{}, 10, 0)
		require.NoError(t, err)
		require.Len(t, posts, 10)
		assert.Equal(t, "mia 0", posts[0].Text)
		assert.Equal(t, "leo 12", posts[1].Text)

		rest, err := stores.posts.ListPosts(ctx, post.Filter{}, 10, 10)
		require.NoError(t, err)
		assert.Len(t, rest, 4)
	})

	t.Run("Filter by group", func(t *testing.T) {
		total, err := stores.posts.CountPosts(ctx, post.Filter{GroupID: &g.ID})
		require.NoError(t, err)
		assert.Equal(t, 13, total)
	})

	t.Run("Filter by author", func(t *testing.T) {
		posts, err := stores.posts.ListPosts(ctx, post.Filter{AuthorID: &mia}, 10, 0)
		require.NoError(t, err)
		require.Len(t, posts, 1)
		assert.Equal(t, "mia", posts[0].Author.Username)
	})

	t.Run("Filter by follower", func(t *testing.T) {
		reader := stores.createTestUser(t, "reader")

		total, err := stores.posts.CountPosts(ctx, post.Filter{FollowerID: &reader})
		require.NoError(t, err)
		assert.Zero(t, total)

		_, err = stores.follows.Follow(ctx, reader, mia)
		require.NoError(t, err)

		posts, err := stores.posts.ListPosts(ctx, post.Filter{FollowerID: &reader}, 10, 0)
		require.NoError(t, err)
		require.Len(t, posts, 1)
		assert.Equal(t, "mia 0", posts[0].Text)
	})

	t.Run("Offset past the end", func(t *testing.T) {
		posts, err := stores.posts.ListPosts(ctx, post.Filter{}, 10, 100)
		require.NoError(t, err)
		assert.Empty(t, posts)
	})
}
