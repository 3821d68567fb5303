package gallery

import (
	"context"

	"github.com/dmitrijs2005/gallery/internal/models"
)

// Lifecycle brackets the backend's underlying resource.
type Lifecycle interface {
	// Open acquires the underlying resource. Opening an open backend is a no-op.
	Open(ctx context.Context) error

	// Close releases the underlying resource.
	Close() error

	// Clear removes every user, album, picture and tag. It is idempotent.
	Clear(ctx context.Context) error
}

// UserStore manages users. Deleting a user cascades to every album the user
// owns and every tag placed on or by the user.
type UserStore interface {
	CreateUser(ctx context.Context, name string) (models.User, error)
	DeleteUser(ctx context.Context, user models.User) error
	UserExists(ctx context.Context, userID int64) (bool, error)
	GetUser(ctx context.Context, userID int64) (models.User, error)
	ListUsers(ctx context.Context) ([]models.User, error)
}

// AlbumStore manages albums. Albums returned by OpenAlbum, AlbumsOfUser and
// ListAlbums are fully populated: pictures in insertion order, each with its
// tagged users, and the owner name resolved.
type AlbumStore interface {
	// CreateAlbum stores album with the current time as its creation date
	// unless one is already set, and returns the stored copy.
	CreateAlbum(ctx context.Context, album models.Album) (models.Album, error)
	DeleteAlbum(ctx context.Context, albumName string, ownerID int64) error
	OpenAlbum(ctx context.Context, albumName string) (models.Album, error)
	AlbumExists(ctx context.Context, albumName string, ownerID int64) (bool, error)
	AlbumsOfUser(ctx context.Context, user models.User) ([]models.Album, error)
	ListAlbums(ctx context.Context) ([]models.Album, error)
}

// PictureStore manages pictures and the tags placed on them. Albums are
// addressed by name; when several owners share a name the album with the
// lowest id is used.
type PictureStore interface {
	// AddPictureToAlbum stores picture in the named album and returns the
	// stored copy carrying the id assigned by the store.
	AddPictureToAlbum(ctx context.Context, albumName string, picture models.Picture) (models.Picture, error)
	RemovePictureFromAlbum(ctx context.Context, albumName, pictureName string) error
	TagUser(ctx context.Context, albumName, pictureName string, userID int64) error
	UntagUser(ctx context.Context, albumName, pictureName string, userID int64) error
}

// Statistics exposes read-only aggregates over the stored data.
type Statistics interface {
	CountOwnedAlbums(ctx context.Context, user models.User) (int, error)
	CountTaggedAlbums(ctx context.Context, user models.User) (int, error)
	CountTags(ctx context.Context, user models.User) (int, error)

	// AverageTagsPerAlbum is CountTags / CountTaggedAlbums, or 0 when the user
	// is tagged in no album.
	AverageTagsPerAlbum(ctx context.Context, user models.User) (float64, error)

	// TopTaggedUser and TopTaggedPicture break ties by the lowest id. Both fail
	// with a NotFound error when no tag exists.
	TopTaggedUser(ctx context.Context) (models.User, error)
	TopTaggedPicture(ctx context.Context) (models.Picture, error)

	PicturesTaggedByUser(ctx context.Context, user models.User) ([]models.Picture, error)
}

// DataAccess is the full capability contract implemented by every backend.
type DataAccess interface {
	Lifecycle
	UserStore
	AlbumStore
	PictureStore
	Statistics
}

var (
	_ DataAccess = (*SQLRepository)(nil)
	_ DataAccess = (*MemoryRepository)(nil)
)
