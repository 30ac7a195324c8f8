package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type testStores struct {
	users    *UserMemoryStorage
	groups   *GroupMemoryStorage
	follows  *FollowMemoryStorage
	posts    *PostMemoryStorage
	comments *CommentMemoryStorage
}

func newTestStores() *testStores {
	users := NewUserMemoryStorage()
	users.hashCost = bcrypt.MinCost
	groups := NewGroupMemoryStorage()
	follows := NewFollowMemoryStorage()
	posts := NewPostMemoryStorage(users, groups, follows)
	comments := NewCommentMemoryStorage(posts, users)

	return &testStores{
		users:    users,
		groups:   groups,
		follows:  follows,
		posts:    posts,
		comments: comments,
	}
}

// createTestUser создает пользователя и возвращает его ID
func (s *testStores) createTestUser(t *testing.T, username string) uint {
	u, err := s.users.CreateUser(context.Background(), username, "password123")
	require.NoError(t, err)
	return u.ID
}
