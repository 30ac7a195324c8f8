package postgres

import (
	"context"
	"testing"

	"github.com/VitaminP8/yatube/internal/storage"
	"github.com/VitaminP8/yatube/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestUserPostgresStorage_CreateUser(t *testing.T) {
	db := setupTestDB(t)
	users := NewUserPostgresStorage(db)
	users.hashCost = bcrypt.MinCost
	ctx := context.Background()

	t.Run("Success user creation", func(t *testing.T) {
		user, err := users.CreateUser(ctx, "leo", "password123")
		require.NoError(t, err)
		assert.NotZero(t, user.ID)

		// Проверяем, что пароль сохранен в виде хеша
		var dbUser models.User
		require.NoError(t, db.First(&dbUser, user.ID).Error)
		assert.NotEqual(t, "password123", dbUser.Password)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(dbUser.Password), []byte("password123")))
	})

	t.Run("Error: duplicate username", func(t *testing.T) {
		_, err := users.CreateUser(ctx, "leo", "password123")
		assert.ErrorIs(t, err, storage.ErrAlreadyExists)
	})
}

func TestUserPostgresStorage_Authenticate(t *testing.T) {
	db := setupTestDB(t)
	users := NewUserPostgresStorage(db)
	ctx := context.Background()
	id := createTestUser(t, db, "leo")

	user, err := users.Authenticate(ctx, "leo", "password123")
	require.NoError(t, err)
	assert.Equal(t, id, user.ID)

	_, err = users.Authenticate(ctx, "leo", "wrong")
	assert.ErrorIs(t, err, storage.ErrInvalidCredentials)

	_, err = users.Authenticate(ctx, "nobody", "password123")
	assert.ErrorIs(t, err, storage.ErrInvalidCredentials)
}

func TestUserPostgresStorage_Lookup(t *testing.T) {
	db := setupTestDB(t)
	users := NewUserPostgresStorage(db)
	ctx := context.Background()
	id := createTestUser(t, db, "leo")

	user, err := users.GetUserByUsername(ctx, "leo")
	require.NoError(t, err)
	assert.Equal(t, id, user.ID)

	user, err = users.GetUserByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "leo", user.Username)

	_, err = users.GetUserByUsername(ctx, "nobody")
	assert.ErrorIs(t, err, storage.ErrNotFound)

	_, err = users.GetUserByID(ctx, 999)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}
