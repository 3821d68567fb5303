package gallery

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/gallery/internal/common"
	"github.com/dmitrijs2005/gallery/internal/dbx"
	"github.com/dmitrijs2005/gallery/internal/models"
)

func (r *SQLRepository) CountOwnedAlbums(ctx context.Context, user models.User) (int, error) {
	return r.userCount(ctx, "count owned albums", user.ID,
		`SELECT COUNT(*) AS count FROM albums WHERE user_id = ?`)
}

func (r *SQLRepository) CountTaggedAlbums(ctx context.Context, user models.User) (int, error) {
	return r.userCount(ctx, "count tagged albums", user.ID, countTaggedAlbums)
}

func (r *SQLRepository) CountTags(ctx context.Context, user models.User) (int, error) {
	return r.userCount(ctx, "count tags", user.ID, countTags)
}

func (r *SQLRepository) AverageTagsPerAlbum(ctx context.Context, user models.User) (float64, error) {
	albums, err := r.CountTaggedAlbums(ctx, user)
	if err != nil {
		return 0, err
	}
	if albums == 0 {
		return 0, nil
	}
	tags, err := r.CountTags(ctx, user)
	if err != nil {
		return 0, err
	}
	return float64(tags) / float64(albums), nil
}

func (r *SQLRepository) TopTaggedUser(ctx context.Context) (models.User, error) {
	db, err := r.conn("top tagged user")
	if err != nil {
		return models.User{}, err
	}

	rec, ok, err := r.queryOne(ctx, db, `SELECT users.id AS id, users.name AS name, COUNT(tags.picture_id) AS tag_count
		FROM users INNER JOIN tags ON users.id = tags.user_id
		GROUP BY users.id, users.name
		ORDER BY tag_count DESC, users.id ASC
		LIMIT 1`)
	if err != nil {
		return models.User{}, common.StorageError("top tagged user", err)
	}
	if !ok {
		return models.User{}, common.NotFound("Tag", nil)
	}
	user, ok := userFromRecord(rec)
	if !ok {
		return models.User{}, common.NotFound("Tag", nil)
	}
	return user, nil
}

func (r *SQLRepository) TopTaggedPicture(ctx context.Context) (models.Picture, error) {
	db, err := r.conn("top tagged picture")
	if err != nil {
		return models.Picture{}, err
	}

	rec, ok, err := r.queryOne(ctx, db, `SELECT pictures.id AS id, pictures.name AS name,
		pictures.location AS location, pictures.creation_date AS creation_date,
		COUNT(tags.user_id) AS tag_count
		FROM pictures INNER JOIN tags ON pictures.id = tags.picture_id
		GROUP BY pictures.id, pictures.name, pictures.location, pictures.creation_date
		ORDER BY tag_count DESC, pictures.id ASC
		LIMIT 1`)
	if err != nil {
		return models.Picture{}, common.StorageError("top tagged picture", err)
	}
	if !ok {
		return models.Picture{}, common.NotFound("Tag", nil)
	}
	picture, ok := pictureFromRecord(rec)
	if !ok {
		return models.Picture{}, common.NotFound("Tag", nil)
	}

	if err := r.loadTags(ctx, db, &picture); err != nil {
		return models.Picture{}, common.StorageError("top tagged picture", err)
	}
	return picture, nil
}

func (r *SQLRepository) PicturesTaggedByUser(ctx context.Context, user models.User) ([]models.Picture, error) {
	db, err := r.conn("pictures tagged by user")
	if err != nil {
		return nil, err
	}
	if err := r.requireUser(ctx, db, user.ID); err != nil {
		return nil, common.StorageError("pictures tagged by user", err)
	}

	recs, err := r.query(ctx, db, `SELECT pictures.id AS id, pictures.name AS name,
		pictures.location AS location, pictures.creation_date AS creation_date
		FROM pictures INNER JOIN tags ON pictures.id = tags.picture_id
		WHERE tags.user_id = ?
		ORDER BY pictures.id`, user.ID)
	if err != nil {
		return nil, common.StorageError("pictures tagged by user", err)
	}

	pictures := make([]models.Picture, 0, len(recs))
	for _, rec := range recs {
		p, ok := pictureFromRecord(rec)
		if !ok {
			continue
		}
		if err := r.loadTags(ctx, db, &p); err != nil {
			return nil, common.StorageError("pictures tagged by user", err)
		}
		pictures = append(pictures, p)
	}
	return pictures, nil
}

const (
	countTaggedAlbums = `SELECT COUNT(DISTINCT pictures.album_id) AS count
		FROM pictures INNER JOIN tags ON pictures.id = tags.picture_id
		WHERE tags.user_id = ?`
	countTags = `SELECT COUNT(*) AS count FROM tags WHERE user_id = ?`
)

// userCount runs a counting query about an existing user.
func (r *SQLRepository) userCount(ctx context.Context, op string, userID int64, query string) (int, error) {
	db, err := r.conn(op)
	if err != nil {
		return 0, err
	}
	if err := r.requireUser(ctx, db, userID); err != nil {
		return 0, common.StorageError(op, err)
	}
	n, err := r.count(ctx, db, query, userID)
	if err != nil {
		return 0, common.StorageError(op, err)
	}
	return n, nil
}

func (r *SQLRepository) loadTags(ctx context.Context, q dbx.DBTX, p *models.Picture) error {
	recs, err := r.query(ctx, q, `SELECT tags.picture_id AS picture_id, users.id AS user_id, users.name AS user_name
		FROM tags INNER JOIN users ON users.id = tags.user_id
		WHERE tags.picture_id = ? ORDER BY users.id`, p.ID)
	if err != nil {
		return fmt.Errorf("failed to select tags: %w", err)
	}
	for _, rec := range recs {
		if _, user, ok := taggedUserFromRecord(rec); ok {
			p.TagUser(user)
		}
	}
	return nil
}
