package cli

import (
	"context"
	"fmt"
)

func (a *App) TopTaggedUser(ctx context.Context) error {
	user, err := a.store.TopTaggedUser(ctx)
	if err != nil {
		return err
	}
	a.say(green, "The top tagged user is: %s", user.Name)
	return nil
}

func (a *App) TopTaggedPicture(ctx context.Context) error {
	picture, err := a.store.TopTaggedPicture(ctx)
	if err != nil {
		return err
	}
	a.say(green, "The top tagged picture is: %s", picture.Name)
	return nil
}

func (a *App) PicturesTaggedByUser(ctx context.Context) error {
	userID, err := a.askID("Enter user id: ")
	if err != nil {
		return err
	}
	user, err := a.store.GetUser(ctx, userID)
	if err != nil {
		return err
	}

	pictures, err := a.store.PicturesTaggedByUser(ctx, user)
	if err != nil {
		return err
	}
	if len(pictures) == 0 {
		return fmt.Errorf("there is no picture tagged by user@%d", user.ID)
	}

	a.say(green, "List of pictures that user@%d tagged:", user.ID)
	for _, p := range pictures {
		a.say(green, "   + %s", p)
	}
	return nil
}
