package memory

import (
	"context"
	"testing"

	"github.com/VitaminP8/yatube/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGroupMemoryStorage(t *testing.T) {
	stores := newTestStores()
	ctx := context.Background()

	t.Run("Create and get by slug", func(t *testing.T) {
		g, err := stores.groups.CreateGroup(ctx, "Cats", "cats", "All about cats")
		require.NoError(t, err)

		found, err := stores.groups.GetGroupBySlug(ctx, "cats")
		require.NoError(t, err)
		assert.Equal(t, g.ID, found.ID)
		assert.Equal(t, "All about cats", found.Description)
	})

	t.Run("Duplicate slug", func(t *testing.T) {
		_, err := stores.groups.CreateGroup(ctx, "Other cats", "cats", "")
		assert.ErrorIs(t, err, storage.ErrAlreadyExists)
	})

	t.Run("Unknown slug", func(t *testing.T) {
		_, err := stores.groups.GetGroupBySlug(ctx, "dogs")
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})

	t.Run("List sorted by title", func(t *testing.T) {
		_, err := stores.groups.CreateGroup(ctx, "Birds", "birds", "")
		require.NoError(t, err)

		groups, err := stores.groups.ListGroups(ctx)
		require.NoError(t, err)
		require.Len(t, groups, 2)
		assert.Equal(t, "Birds", groups[0].Title)
		assert.Equal(t, "Cats", groups[1].Title)
	})
}
