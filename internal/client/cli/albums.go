package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/gallery/internal/common"
	"github.com/dmitrijs2005/gallery/internal/models"
)

func (a *App) CreateAlbum(ctx context.Context) error {
	userID, err := a.askID("Enter user id: ")
	if err != nil {
		return err
	}
	name, err := a.ask("Enter album name - ")
	if err != nil {
		return err
	}

	album, err := a.store.CreateAlbum(ctx, models.NewAlbum(userID, name))
	if err != nil {
		return err
	}
	a.say(green, "Album [%s] created successfully by user@%d", album.Name, album.OwnerID)
	return nil
}

// OpenAlbum closes the current album, if any, and opens one owned by the
// given user.
func (a *App) OpenAlbum(ctx context.Context) error {
	if a.isAlbumOpen() {
		if err := a.CloseAlbum(ctx); err != nil {
			return err
		}
	}

	userID, err := a.askID("Enter user id: ")
	if err != nil {
		return err
	}
	if err := a.requireUser(ctx, userID); err != nil {
		return err
	}
	name, err := a.ask("Enter album name - ")
	if err != nil {
		return err
	}

	exists, err := a.store.AlbumExists(ctx, name, userID)
	if err != nil {
		return err
	}
	if !exists {
		return common.NotFound("Album", name)
	}

	album, err := a.store.OpenAlbum(ctx, name)
	if err != nil {
		return err
	}
	a.album = album
	a.albumName = name
	a.say(green, "Album [%s] opened successfully.", name)
	if album.OwnerID != userID {
		// Picture commands address the album by name only.
		a.say(yellow, "Warning: album [%s] resolves to the one owned by user@%d, not user@%d.", name, album.OwnerID, userID)
	}
	return nil
}

func (a *App) CloseAlbum(ctx context.Context) error {
	if !a.isAlbumOpen() {
		return errAlbumNotOpen
	}
	name := a.albumName
	a.forgetOpenAlbum()
	a.say(green, "Album [%s] closed successfully.", name)
	return nil
}

func (a *App) DeleteAlbum(ctx context.Context) error {
	userID, err := a.askID("Enter user id: ")
	if err != nil {
		return err
	}
	if err := a.requireUser(ctx, userID); err != nil {
		return err
	}
	name, err := a.ask("Enter album name - ")
	if err != nil {
		return err
	}

	if a.isAlbumOpen() && a.album.OwnerID == userID && a.albumName == name {
		if err := a.CloseAlbum(ctx); err != nil {
			return err
		}
	}

	if err := a.store.DeleteAlbum(ctx, name, userID); err != nil {
		return err
	}
	a.say(green, "Album [%s] @%d deleted successfully.", name, userID)
	return nil
}

func (a *App) ListAlbums(ctx context.Context) error {
	albums, err := a.store.ListAlbums(ctx)
	if err != nil {
		return err
	}
	if len(albums) == 0 {
		a.say(yellow, "There are no albums.")
		return nil
	}

	a.say(green, "Album list:")
	a.say(green, "-----------")
	for _, album := range albums {
		a.say(green, "   + %s", album)
	}
	return nil
}

func (a *App) ListAlbumsOfUser(ctx context.Context) error {
	userID, err := a.askID("Enter user id: ")
	if err != nil {
		return err
	}
	user, err := a.store.GetUser(ctx, userID)
	if err != nil {
		return err
	}

	albums, err := a.store.AlbumsOfUser(ctx, user)
	if err != nil {
		return err
	}
	if len(albums) == 0 {
		return fmt.Errorf("user@%d has no albums", user.ID)
	}

	a.say(green, "Albums list of user@%d:", user.ID)
	a.say(green, "------------------------")
	for _, album := range albums {
		a.say(green, "   + [%s] - created on %s", album.Name, models.FormatTime(album.CreatedAt))
	}
	return nil
}

func (a *App) requireUser(ctx context.Context, userID int64) error {
	ok, err := a.store.UserExists(ctx, userID)
	if err != nil {
		return err
	}
	if !ok {
		return common.NotFound("User", userID)
	}
	return nil
}
