package memory

import (
	"context"
	"testing"

	"github.com/VitaminP8/yatube/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserMemoryStorage_CreateUser(t *testing.T) {
	stores := newTestStores()
	ctx := context.Background()

	t.Run("Success user creation", func(t *testing.T) {
		u, err := stores.users.CreateUser(ctx, "leo", "password123")
		require.NoError(t, err)
		assert.Equal(t, uint(1), u.ID)
		assert.Equal(t, "leo", u.Username)
		assert.NotEqual(t, "password123", u.Password, "password must be hashed")
		assert.False(t, u.CreatedAt.IsZero())
	})

	t.Run("Error: duplicate username", func(t *testing.T) {
		_, err := stores.users.CreateUser(ctx, "leo", "other")
		require.Error(t, err)
		assert.ErrorIs(t, err, storage.ErrAlreadyExists)
	})
}

func TestUserMemoryStorage_Authenticate(t *testing.T) {
	stores := newTestStores()
	ctx := context.Background()
	id := stores.createTestUser(t, "leo")

	t.Run("Correct password", func(t *testing.T) {
		u, err := stores.users.Authenticate(ctx, "leo", "password123")
		require.NoError(t, err)
		assert.Equal(t, id, u.ID)
	})

	t.Run("Wrong password", func(t *testing.T) {
		_, err := stores.users.Authenticate(ctx, "leo", "wrong")
		assert.ErrorIs(t, err, storage.ErrInvalidCredentials)
	})

	t.Run("Unknown user", func(t *testing.T) {
		_, err := stores.users.Authenticate(ctx, "nobody", "password123")
		assert.ErrorIs(t, err, storage.ErrInvalidCredentials)
	})
}

func TestUserMemoryStorage_Lookup(t *testing.T) {
	stores := newTestStores()
	ctx := context.Background()
	id := stores.createTestUser(t, "leo")

	u, err := stores.users.GetUserByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "leo", u.Username)

	u, err = stores.users.GetUserByUsername(ctx, "leo")
	require.NoError(t, err)
	assert.Equal(t, id, u.ID)

	_, err = stores.users.GetUserByID(ctx, 999)
	assert.ErrorIs(t, err, storage.ErrNotFound)

	_, err = stores.users.GetUserByUsername(ctx, "nobody")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}
