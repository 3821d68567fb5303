package cli

import "context"

func (a *App) AddUser(ctx context.Context) error {
	name, err := a.ask("Enter user name: ")
	if err != nil {
		return err
	}

	user, err := a.store.CreateUser(ctx, name)
	if err != nil {
		return err
	}
	a.say(green, "User %s with id @%d created successfully.", user.Name, user.ID)
	return nil
}

// RemoveUser deletes a user with everything they own and every tag they
// placed. An open album of that user is closed first.
func (a *App) RemoveUser(ctx context.Context) error {
	userID, err := a.askID("Enter user id: ")
	if err != nil {
		return err
	}
	user, err := a.store.GetUser(ctx, userID)
	if err != nil {
		return err
	}

	if a.isAlbumOpen() && a.album.OwnerID == user.ID {
		if err := a.CloseAlbum(ctx); err != nil {
			return err
		}
	}

	if err := a.store.DeleteUser(ctx, user); err != nil {
		return err
	}
	a.say(green, "User @%d deleted successfully.", user.ID)
	return nil
}

func (a *App) ListUsers(ctx context.Context) error {
	users, err := a.store.ListUsers(ctx)
	if err != nil {
		return err
	}
	if len(users) == 0 {
		a.say(yellow, "There are no users.")
		return nil
	}

	a.say(green, "Users list:")
	a.say(green, "-----------")
	for _, u := range users {
		a.say(green, "   + %s", u)
	}
	return nil
}

func (a *App) UserStatistics(ctx context.Context) error {
	userID, err := a.askID("Enter user id: ")
	if err != nil {
		return err
	}
	user, err := a.store.GetUser(ctx, userID)
	if err != nil {
		return err
	}

	tagged, err := a.store.CountTaggedAlbums(ctx, user)
	if err != nil {
		return err
	}
	tags, err := a.store.CountTags(ctx, user)
	if err != nil {
		return err
	}
	avg, err := a.store.AverageTagsPerAlbum(ctx, user)
	if err != nil {
		return err
	}
	owned, err := a.store.CountOwnedAlbums(ctx, user)
	if err != nil {
		return err
	}

	a.say(green, "user @%d Statistics:", user.ID)
	a.say(green, "--------------------")
	a.say(blue, "  + Count of Albums Tagged: %d", tagged)
	a.say(blue, "  + Count of Tags: %d", tags)
	a.say(blue, "  + Average Tags per Album: %g", avg)
	a.say(blue, "  + Number of owned Albums: %d", owned)
	return nil
}
