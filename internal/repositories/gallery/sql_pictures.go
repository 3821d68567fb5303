package gallery

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/gallery/internal/common"
	"github.com/dmitrijs2005/gallery/internal/dbx"
	"github.com/dmitrijs2005/gallery/internal/models"
)

// AddPictureToAlbum stores picture in the named album. Tags carried by
// picture are not stored; use TagUser.
func (r *SQLRepository) AddPictureToAlbum(ctx context.Context, albumName string, picture models.Picture) (models.Picture, error) {
	stored := picture.Clone()
	stored.TaggedUsers = []models.User{}
	if stored.CreatedAt.IsZero() {
		stored.SetCreationDateNow()
	}
	stored.CreatedAt = models.Normalize(stored.CreatedAt)

	err := r.mutate(ctx, "add picture", func(ctx context.Context, tx dbx.DBTX) error {
		albumID, err := r.albumID(ctx, tx, albumName)
		if err != nil {
			return err
		}

		taken, err := r.exists(ctx, tx, `SELECT 1 AS found FROM pictures WHERE album_id = ? AND name = ?`, albumID, stored.Name)
		if err != nil {
			return fmt.Errorf("failed to look up picture: %w", err)
		}
		if taken {
			return common.AlreadyExists("Picture", stored.Name)
		}

		if err := models.Validate(stored); err != nil {
			return fmt.Errorf("%w: %v", common.ErrorInvalidValue, err)
		}

		id, err := r.insertID(ctx, tx, `INSERT INTO pictures (name, location, creation_date, album_id)
			VALUES (?, ?, ?, ?) RETURNING id`,
			stored.Name, stored.Path, models.FormatTime(stored.CreatedAt), albumID)
		if err != nil {
			return fmt.Errorf("failed to insert picture: %w", err)
		}
		stored.ID = id
		return nil
	})
	if err != nil {
		return models.Picture{}, err
	}
	return stored, nil
}

func (r *SQLRepository) RemovePictureFromAlbum(ctx context.Context, albumName, pictureName string) error {
	err := r.mutate(ctx, "remove picture", func(ctx context.Context, tx dbx.DBTX) error {
		albumID, err := r.albumID(ctx, tx, albumName)
		if err != nil {
			return err
		}
		pictureID, err := r.pictureID(ctx, tx, albumID, pictureName)
		if err != nil {
			return err
		}

		if _, err := r.exec(ctx, tx, `DELETE FROM tags WHERE picture_id = ?`, pictureID); err != nil {
			return fmt.Errorf("failed to delete tags: %w", err)
		}
		if _, err := r.exec(ctx, tx, `DELETE FROM pictures WHERE id = ?`, pictureID); err != nil {
			return fmt.Errorf("failed to delete picture: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	r.log.Debug(ctx, "picture removed", "album", albumName, "picture", pictureName)
	r.compact(ctx)
	return nil
}

func (r *SQLRepository) TagUser(ctx context.Context, albumName, pictureName string, userID int64) error {
	return r.mutate(ctx, "tag user", func(ctx context.Context, tx dbx.DBTX) error {
		pictureID, tagged, err := r.tagState(ctx, tx, albumName, pictureName, userID)
		if err != nil {
			return err
		}
		if tagged {
			return common.AlreadyExists("Tag", tagKey(pictureName, userID))
		}
		if _, err := r.exec(ctx, tx, `INSERT INTO tags (picture_id, user_id) VALUES (?, ?)`, pictureID, userID); err != nil {
			return fmt.Errorf("failed to insert tag: %w", err)
		}
		return nil
	})
}

func (r *SQLRepository) UntagUser(ctx context.Context, albumName, pictureName string, userID int64) error {
	return r.mutate(ctx, "untag user", func(ctx context.Context, tx dbx.DBTX) error {
		pictureID, tagged, err := r.tagState(ctx, tx, albumName, pictureName, userID)
		if err != nil {
			return err
		}
		if !tagged {
			return common.NotFound("Tag", tagKey(pictureName, userID))
		}
		if _, err := r.exec(ctx, tx, `DELETE FROM tags WHERE picture_id = ? AND user_id = ?`, pictureID, userID); err != nil {
			return fmt.Errorf("failed to delete tag: %w", err)
		}
		return nil
	})
}

// tagState resolves album, picture and user, then reports whether the user is
// already tagged in the picture.
func (r *SQLRepository) tagState(ctx context.Context, q dbx.DBTX, albumName, pictureName string, userID int64) (int64, bool, error) {
	albumID, err := r.albumID(ctx, q, albumName)
	if err != nil {
		return 0, false, err
	}
	pictureID, err := r.pictureID(ctx, q, albumID, pictureName)
	if err != nil {
		return 0, false, err
	}
	if err := r.requireUser(ctx, q, userID); err != nil {
		return 0, false, err
	}

	tagged, err := r.exists(ctx, q, `SELECT 1 AS found FROM tags WHERE picture_id = ? AND user_id = ?`, pictureID, userID)
	if err != nil {
		return 0, false, fmt.Errorf("failed to look up tag: %w", err)
	}
	return pictureID, tagged, nil
}

// albumID resolves an album name to the lowest matching id.
func (r *SQLRepository) albumID(ctx context.Context, q dbx.DBTX, albumName string) (int64, error) {
	rec, ok, err := r.queryOne(ctx, q, `SELECT id FROM albums WHERE name = ? ORDER BY id LIMIT 1`, albumName)
	if err != nil {
		return 0, fmt.Errorf("failed to look up album: %w", err)
	}
	id, found := rec.int64("id")
	if !ok || !found {
		return 0, common.NotFound("Album", albumName)
	}
	return id, nil
}

func (r *SQLRepository) pictureID(ctx context.Context, q dbx.DBTX, albumID int64, pictureName string) (int64, error) {
	rec, ok, err := r.queryOne(ctx, q, `SELECT id FROM pictures WHERE album_id = ? AND name = ?`, albumID, pictureName)
	if err != nil {
		return 0, fmt.Errorf("failed to look up picture: %w", err)
	}
	id, found := rec.int64("id")
	if !ok || !found {
		return 0, common.NotFound("Picture", pictureName)
	}
	return id, nil
}

func tagKey(pictureName string, userID int64) string {
	return fmt.Sprintf("%s@%d", pictureName, userID)
}
