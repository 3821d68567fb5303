package gallery

import (
	"context"
	"fmt"
	"testing"

	"github.com/dmitrijs2005/gallery/internal/logging"
	"github.com/dmitrijs2005/gallery/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryRepository_OpenSeedsFixtures(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository(logging.Discard())
	require.NoError(t, repo.Open(ctx))

	users, err := repo.ListUsers(ctx)
	require.NoError(t, err)
	require.Len(t, users, 5)

	for i, u := range users {
		assert.Equal(t, int64(i+1), u.ID)
		assert.Equal(t, fmt.Sprintf("User_%d", i+1), u.Name)

		albums, err := repo.AlbumsOfUser(ctx, u)
		require.NoError(t, err)
		require.Len(t, albums, 1)
		assert.Equal(t, fmt.Sprintf("Album_%d", u.ID), albums[0].Name)
		assert.Equal(t, u.Name, albums[0].OwnerName)

		require.Len(t, albums[0].Pictures, 2)
		assert.Equal(t, "Picture_1", albums[0].Pictures[0].Name)
		assert.Equal(t, "pictures/Picture_2.bmp", albums[0].Pictures[1].Path)
	}
}

func TestMemoryRepository_CloseDropsDataAndReopenReseeds(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository(nil)
	require.NoError(t, repo.Open(ctx))

	u, err := repo.CreateUser(ctx, "extra")
	require.NoError(t, err)
	assert.Equal(t, int64(6), u.ID)

	// A second Open keeps the current data.
	require.NoError(t, repo.Open(ctx))
	ok, err := repo.UserExists(ctx, u.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, repo.Close())
	require.NoError(t, repo.Open(ctx))

	users, err := repo.ListUsers(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 5)

	ok, err = repo.UserExists(ctx, u.ID)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMemoryRepository_PictureIDsAreStoreAssigned(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository(nil)
	require.NoError(t, repo.Open(ctx))

	p, err := repo.AddPictureToAlbum(ctx, "Album_1", models.Picture{ID: 1, Name: "new", Path: "pictures/new.bmp"})
	require.NoError(t, err)
	assert.Equal(t, int64(11), p.ID)
	assert.False(t, p.CreatedAt.IsZero())
}
