package gallery

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/gallery/internal/common"
	"github.com/dmitrijs2005/gallery/internal/dbx"
	"github.com/dmitrijs2005/gallery/internal/models"
)

const albumColumns = `SELECT albums.id AS id, albums.name AS name, albums.user_id AS user_id,
	albums.creation_date AS creation_date, users.name AS owner_name
	FROM albums LEFT JOIN users ON users.id = albums.user_id`

func (r *SQLRepository) CreateAlbum(ctx context.Context, album models.Album) (models.Album, error) {
	stored := album.Clone()
	stored.Pictures = []models.Picture{}
	if stored.CreatedAt.IsZero() {
		stored.SetCreationDateNow()
	}
	stored.CreatedAt = models.Normalize(stored.CreatedAt)

	err := r.mutate(ctx, "create album", func(ctx context.Context, tx dbx.DBTX) error {
		owner, ok, err := r.queryOne(ctx, tx, `SELECT id, name FROM users WHERE id = ?`, stored.OwnerID)
		if err != nil {
			return fmt.Errorf("failed to look up owner: %w", err)
		}
		if !ok {
			return common.NotFound("User", stored.OwnerID)
		}
		stored.OwnerName, _ = owner.string("name")

		taken, err := r.exists(ctx, tx, `SELECT 1 AS found FROM albums WHERE user_id = ? AND name = ?`, stored.OwnerID, stored.Name)
		if err != nil {
			return fmt.Errorf("failed to look up album: %w", err)
		}
		if taken {
			return common.AlreadyExists("Album", stored.Name)
		}

		if err := models.Validate(stored); err != nil {
			return fmt.Errorf("%w: %v", common.ErrorInvalidValue, err)
		}

		_, err = r.exec(ctx, tx, `INSERT INTO albums (name, user_id, creation_date) VALUES (?, ?, ?)`,
			stored.Name, stored.OwnerID, models.FormatTime(stored.CreatedAt))
		if err != nil {
			return fmt.Errorf("failed to insert album: %w", err)
		}
		return nil
	})
	if err != nil {
		return models.Album{}, err
	}
	return stored, nil
}

// DeleteAlbum removes the album owned by ownerID with its pictures and tags.
func (r *SQLRepository) DeleteAlbum(ctx context.Context, albumName string, ownerID int64) error {
	err := r.mutate(ctx, "delete album", func(ctx context.Context, tx dbx.DBTX) error {
		rec, ok, err := r.queryOne(ctx, tx, `SELECT id FROM albums WHERE name = ? AND user_id = ?`, albumName, ownerID)
		if err != nil {
			return fmt.Errorf("failed to look up album: %w", err)
		}
		albumID, found := rec.int64("id")
		if !ok || !found {
			return common.NotFound("Album", albumName)
		}

		if _, err := r.exec(ctx, tx, `DELETE FROM tags WHERE picture_id IN (SELECT id FROM pictures WHERE album_id = ?)`, albumID); err != nil {
			return fmt.Errorf("failed to delete tags: %w", err)
		}
		if _, err := r.exec(ctx, tx, `DELETE FROM pictures WHERE album_id = ?`, albumID); err != nil {
			return fmt.Errorf("failed to delete pictures: %w", err)
		}
		if _, err := r.exec(ctx, tx, `DELETE FROM albums WHERE id = ?`, albumID); err != nil {
			return fmt.Errorf("failed to delete album: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	r.log.Debug(ctx, "album deleted", "album", albumName, "owner_id", ownerID)
	r.compact(ctx)
	return nil
}

// OpenAlbum returns the album with the given name. When several owners use
// the name, the album created first wins.
func (r *SQLRepository) OpenAlbum(ctx context.Context, albumName string) (models.Album, error) {
	db, err := r.conn("open album")
	if err != nil {
		return models.Album{}, err
	}

	rec, ok, err := r.queryOne(ctx, db, albumColumns+` WHERE albums.name = ? ORDER BY albums.id LIMIT 1`, albumName)
	if err != nil {
		return models.Album{}, common.StorageError("open album", err)
	}
	if !ok {
		return models.Album{}, common.NotFound("Album", albumName)
	}
	row, ok := albumFromRecord(rec)
	if !ok {
		return models.Album{}, common.NotFound("Album", albumName)
	}

	album, err := r.populate(ctx, db, row)
	if err != nil {
		return models.Album{}, common.StorageError("open album", err)
	}
	return album, nil
}

func (r *SQLRepository) AlbumExists(ctx context.Context, albumName string, ownerID int64) (bool, error) {
	db, err := r.conn("album exists")
	if err != nil {
		return false, err
	}
	ok, err := r.exists(ctx, db, `SELECT 1 AS found FROM albums WHERE name = ? AND user_id = ?`, albumName, ownerID)
	if err != nil {
		return false, common.StorageError("album exists", err)
	}
	return ok, nil
}

func (r *SQLRepository) AlbumsOfUser(ctx context.Context, user models.User) ([]models.Album, error) {
	db, err := r.conn("albums of user")
	if err != nil {
		return nil, err
	}
	if err := r.requireUser(ctx, db, user.ID); err != nil {
		return nil, common.StorageError("albums of user", err)
	}

	albums, err := r.loadAlbums(ctx, db, albumColumns+` WHERE albums.user_id = ? ORDER BY albums.id`, user.ID)
	if err != nil {
		return nil, common.StorageError("albums of user", err)
	}
	return albums, nil
}

func (r *SQLRepository) ListAlbums(ctx context.Context) ([]models.Album, error) {
	db, err := r.conn("list albums")
	if err != nil {
		return nil, err
	}
	albums, err := r.loadAlbums(ctx, db, albumColumns+` ORDER BY albums.id`)
	if err != nil {
		return nil, common.StorageError("list albums", err)
	}
	return albums, nil
}

// loadAlbums reads album rows and populates each one. Rows that cannot be
// mapped are skipped.
func (r *SQLRepository) loadAlbums(ctx context.Context, q dbx.DBTX, query string, args ...any) ([]models.Album, error) {
	recs, err := r.query(ctx, q, query, args...)
	if err != nil {
		return nil, err
	}

	albums := make([]models.Album, 0, len(recs))
	for _, rec := range recs {
		row, ok := albumFromRecord(rec)
		if !ok {
			continue
		}
		album, err := r.populate(ctx, q, row)
		if err != nil {
			return nil, err
		}
		albums = append(albums, album)
	}
	return albums, nil
}

// populate loads the pictures of an album in insertion order together with
// the users tagged in each of them.
func (r *SQLRepository) populate(ctx context.Context, q dbx.DBTX, row albumRow) (models.Album, error) {
	album := row.album

	recs, err := r.query(ctx, q, `SELECT id, name, location, creation_date FROM pictures
		WHERE album_id = ? ORDER BY id`, row.id)
	if err != nil {
		return models.Album{}, fmt.Errorf("failed to select pictures: %w", err)
	}
	for _, rec := range recs {
		if p, ok := pictureFromRecord(rec); ok {
			album.AddPicture(p)
		}
	}
	if len(album.Pictures) == 0 {
		return album, nil
	}

	tags, err := r.query(ctx, q, `SELECT tags.picture_id AS picture_id, users.id AS user_id, users.name AS user_name
		FROM tags
		INNER JOIN pictures ON pictures.id = tags.picture_id
		INNER JOIN users ON users.id = tags.user_id
		WHERE pictures.album_id = ? ORDER BY users.id`, row.id)
	if err != nil {
		return models.Album{}, fmt.Errorf("failed to select tags: %w", err)
	}
	for _, rec := range tags {
		pictureID, user, ok := taggedUserFromRecord(rec)
		if !ok {
			continue
		}
		for i := range album.Pictures {
			if album.Pictures[i].ID == pictureID {
				album.Pictures[i].TagUser(user)
			}
		}
	}
	return album, nil
}
