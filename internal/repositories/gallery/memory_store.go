package gallery

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/gallery/internal/common"
	"github.com/dmitrijs2005/gallery/internal/models"
)

func (m *MemoryRepository) CreateUser(ctx context.Context, name string) (models.User, error) {
	if err := m.check("create user"); err != nil {
		return models.User{}, err
	}
	if err := models.Validate(models.User{Name: name}); err != nil {
		return models.User{}, common.StorageError("create user", fmt.Errorf("%w: %v", common.ErrorInvalidValue, err))
	}
	return m.addUser(name), nil
}

func (m *MemoryRepository) DeleteUser(ctx context.Context, user models.User) error {
	if err := m.check("delete user"); err != nil {
		return err
	}
	if err := m.requireUser(user.ID); err != nil {
		return err
	}

	kept := m.albums[:0]
	for _, a := range m.albums {
		if a.ownerID == user.ID {
			continue
		}
		for _, p := range a.pictures {
			delete(p.tags, user.ID)
		}
		kept = append(kept, a)
	}
	clear(m.albums[len(kept):])
	m.albums = kept

	for i, u := range m.users {
		if u.ID == user.ID {
			m.users = append(m.users[:i], m.users[i+1:]...)
			break
		}
	}

	m.log.Debug(ctx, "user deleted", "user_id", user.ID)
	return nil
}

func (m *MemoryRepository) UserExists(ctx context.Context, userID int64) (bool, error) {
	if err := m.check("user exists"); err != nil {
		return false, err
	}
	_, ok := m.user(userID)
	return ok, nil
}

func (m *MemoryRepository) GetUser(ctx context.Context, userID int64) (models.User, error) {
	if err := m.check("get user"); err != nil {
		return models.User{}, err
	}
	u, ok := m.user(userID)
	if !ok {
		return models.User{}, common.NotFound("User", userID)
	}
	return u, nil
}

func (m *MemoryRepository) ListUsers(ctx context.Context) ([]models.User, error) {
	if err := m.check("list users"); err != nil {
		return nil, err
	}
	return append([]models.User{}, m.users...), nil
}

func (m *MemoryRepository) CreateAlbum(ctx context.Context, album models.Album) (models.Album, error) {
	if err := m.check("create album"); err != nil {
		return models.Album{}, err
	}
	if err := m.requireUser(album.OwnerID); err != nil {
		return models.Album{}, err
	}
	if m.albumIndex(album.Name, album.OwnerID) >= 0 {
		return models.Album{}, common.AlreadyExists("Album", album.Name)
	}
	if err := models.Validate(album); err != nil {
		return models.Album{}, common.StorageError("create album", fmt.Errorf("%w: %v", common.ErrorInvalidValue, err))
	}

	a := &memAlbum{ownerID: album.OwnerID, name: album.Name, createdAt: album.CreatedAt}
	if a.createdAt.IsZero() {
		a.createdAt = models.Now()
	}
	a.createdAt = models.Normalize(a.createdAt)
	m.albums = append(m.albums, a)
	return m.toAlbum(a), nil
}

func (m *MemoryRepository) DeleteAlbum(ctx context.Context, albumName string, ownerID int64) error {
	if err := m.check("delete album"); err != nil {
		return err
	}
	i := m.albumIndex(albumName, ownerID)
	if i < 0 {
		return common.NotFound("Album", albumName)
	}
	m.albums = append(m.albums[:i], m.albums[i+1:]...)

	m.log.Debug(ctx, "album deleted", "album", albumName, "owner_id", ownerID)
	return nil
}

func (m *MemoryRepository) OpenAlbum(ctx context.Context, albumName string) (models.Album, error) {
	if err := m.check("open album"); err != nil {
		return models.Album{}, err
	}
	a, err := m.albumByName(albumName)
	if err != nil {
		return models.Album{}, err
	}
	return m.toAlbum(a), nil
}

func (m *MemoryRepository) AlbumExists(ctx context.Context, albumName string, ownerID int64) (bool, error) {
	if err := m.check("album exists"); err != nil {
		return false, err
	}
	return m.albumIndex(albumName, ownerID) >= 0, nil
}

func (m *MemoryRepository) AlbumsOfUser(ctx context.Context, user models.User) ([]models.Album, error) {
	if err := m.check("albums of user"); err != nil {
		return nil, err
	}
	if err := m.requireUser(user.ID); err != nil {
		return nil, err
	}

	albums := []models.Album{}
	for _, a := range m.albums {
		if a.ownerID == user.ID {
			albums = append(albums, m.toAlbum(a))
		}
	}
	return albums, nil
}

func (m *MemoryRepository) ListAlbums(ctx context.Context) ([]models.Album, error) {
	if err := m.check("list albums"); err != nil {
		return nil, err
	}
	albums := make([]models.Album, 0, len(m.albums))
	for _, a := range m.albums {
		albums = append(albums, m.toAlbum(a))
	}
	return albums, nil
}

func (m *MemoryRepository) AddPictureToAlbum(ctx context.Context, albumName string, picture models.Picture) (models.Picture, error) {
	if err := m.check("add picture"); err != nil {
		return models.Picture{}, err
	}
	a, err := m.albumByName(albumName)
	if err != nil {
		return models.Picture{}, err
	}
	if a.pictureIndex(picture.Name) >= 0 {
		return models.Picture{}, common.AlreadyExists("Picture", picture.Name)
	}
	if err := models.Validate(picture); err != nil {
		return models.Picture{}, common.StorageError("add picture", fmt.Errorf("%w: %v", common.ErrorInvalidValue, err))
	}

	if picture.CreatedAt.IsZero() {
		picture.CreatedAt = models.Now()
	}
	picture.CreatedAt = models.Normalize(picture.CreatedAt)
	p := m.newPicture(picture)
	a.pictures = append(a.pictures, p)
	return m.toPicture(p), nil
}

func (m *MemoryRepository) RemovePictureFromAlbum(ctx context.Context, albumName, pictureName string) error {
	if err := m.check("remove picture"); err != nil {
		return err
	}
	a, err := m.albumByName(albumName)
	if err != nil {
		return err
	}
	i := a.pictureIndex(pictureName)
	if i < 0 {
		return common.NotFound("Picture", pictureName)
	}
	a.pictures = append(a.pictures[:i], a.pictures[i+1:]...)

	m.log.Debug(ctx, "picture removed", "album", albumName, "picture", pictureName)
	return nil
}

func (m *MemoryRepository) TagUser(ctx context.Context, albumName, pictureName string, userID int64) error {
	if err := m.check("tag user"); err != nil {
		return err
	}
	p, err := m.tagTarget(albumName, pictureName, userID)
	if err != nil {
		return err
	}
	if _, ok := p.tags[userID]; ok {
		return common.AlreadyExists("Tag", tagKey(pictureName, userID))
	}
	p.tags[userID] = struct{}{}
	return nil
}

func (m *MemoryRepository) UntagUser(ctx context.Context, albumName, pictureName string, userID int64) error {
	if err := m.check("untag user"); err != nil {
		return err
	}
	p, err := m.tagTarget(albumName, pictureName, userID)
	if err != nil {
		return err
	}
	if _, ok := p.tags[userID]; !ok {
		return common.NotFound("Tag", tagKey(pictureName, userID))
	}
	delete(p.tags, userID)
	return nil
}

func (m *MemoryRepository) tagTarget(albumName, pictureName string, userID int64) (*memPicture, error) {
	p, err := m.picture(albumName, pictureName)
	if err != nil {
		return nil, err
	}
	if err := m.requireUser(userID); err != nil {
		return nil, err
	}
	return p, nil
}
