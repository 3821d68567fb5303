package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/gallery/internal/common"
	"github.com/dmitrijs2005/gallery/internal/models"
)

func (a *App) AddPicture(ctx context.Context) error {
	if err := a.refreshOpenAlbum(ctx); err != nil {
		return err
	}

	name, err := a.ask("Enter picture name: ")
	if err != nil {
		return err
	}
	if a.album.HasPicture(name) {
		return common.AlreadyExists("Picture", name)
	}
	path, err := a.ask("Enter picture path: ")
	if err != nil {
		return err
	}

	picture, err := a.store.AddPictureToAlbum(ctx, a.albumName, models.NewPicture(name, path))
	if err != nil {
		return err
	}
	a.say(green, "Picture [%d] successfully added to Album [%s].", picture.ID, a.albumName)
	return nil
}

func (a *App) RemovePicture(ctx context.Context) error {
	if err := a.refreshOpenAlbum(ctx); err != nil {
		return err
	}
	picture, err := a.askPicture()
	if err != nil {
		return err
	}

	if err := a.store.RemovePictureFromAlbum(ctx, a.albumName, picture.Name); err != nil {
		return err
	}
	a.say(green, "Picture <%s> successfully removed from Album [%s].", picture.Name, a.albumName)
	return nil
}

func (a *App) ListPictures(ctx context.Context) error {
	if err := a.refreshOpenAlbum(ctx); err != nil {
		return err
	}
	if len(a.album.Pictures) == 0 {
		return fmt.Errorf("there are no pictures in Album [%s]", a.albumName)
	}

	a.say(green, "List of pictures in Album [%s] of user@%d:", a.album.Name, a.album.OwnerID)
	for _, p := range a.album.Pictures {
		a.say(green, "   + Picture %s", p)
	}
	return nil
}

func (a *App) TagUser(ctx context.Context) error {
	picture, userID, err := a.askTag(ctx, "Enter user id to tag: ")
	if err != nil {
		return err
	}

	if err := a.store.TagUser(ctx, a.albumName, picture.Name, userID); err != nil {
		return err
	}
	a.say(green, "User @%d successfully tagged in picture <%s> in album [%s]", userID, picture.Name, a.albumName)
	return nil
}

func (a *App) UntagUser(ctx context.Context) error {
	picture, userID, err := a.askTag(ctx, "Enter user id: ")
	if err != nil {
		return err
	}

	if err := a.store.UntagUser(ctx, a.albumName, picture.Name, userID); err != nil {
		return err
	}
	a.say(green, "User @%d successfully untagged in picture <%s> in album [%s]", userID, picture.Name, a.albumName)
	return nil
}

func (a *App) ListTags(ctx context.Context) error {
	if err := a.refreshOpenAlbum(ctx); err != nil {
		return err
	}
	picture, err := a.askPicture()
	if err != nil {
		return err
	}
	if len(picture.TaggedUsers) == 0 {
		return fmt.Errorf("there is no user tagged in <%s>", picture.Name)
	}

	a.say(green, "Tagged users in picture <%s>:", picture.Name)
	for _, u := range picture.TaggedUsers {
		a.say(green, "%s", u)
	}
	return nil
}

// askTag refreshes the open album and reads the picture and user of a tag
// command.
func (a *App) askTag(ctx context.Context, userPrompt string) (models.Picture, int64, error) {
	if err := a.refreshOpenAlbum(ctx); err != nil {
		return models.Picture{}, 0, err
	}
	picture, err := a.askPicture()
	if err != nil {
		return models.Picture{}, 0, err
	}
	userID, err := a.askID(userPrompt)
	if err != nil {
		return models.Picture{}, 0, err
	}
	return picture, userID, nil
}
