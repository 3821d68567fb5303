package gallery

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/gallery/internal/common"
	"github.com/dmitrijs2005/gallery/internal/dbx"
	"github.com/dmitrijs2005/gallery/internal/models"
)

func (r *SQLRepository) CreateUser(ctx context.Context, name string) (models.User, error) {
	user := models.User{Name: name}
	if err := models.Validate(user); err != nil {
		return models.User{}, common.StorageError("create user", fmt.Errorf("%w: %v", common.ErrorInvalidValue, err))
	}

	err := r.mutate(ctx, "create user", func(ctx context.Context, tx dbx.DBTX) error {
		id, err := r.insertID(ctx, tx, `INSERT INTO users (name) VALUES (?) RETURNING id`, name)
		if err != nil {
			return fmt.Errorf("failed to insert user: %w", err)
		}
		user.ID = id
		return nil
	})
	if err != nil {
		return models.User{}, err
	}
	return user, nil
}

// DeleteUser removes the user together with the albums it owns and every tag
// on or by the user.
func (r *SQLRepository) DeleteUser(ctx context.Context, user models.User) error {
	err := r.mutate(ctx, "delete user", func(ctx context.Context, tx dbx.DBTX) error {
		if err := r.requireUser(ctx, tx, user.ID); err != nil {
			return err
		}

		steps := []struct {
			what  string
			query string
		}{
			{"tags on owned pictures", `DELETE FROM tags WHERE picture_id IN (
				SELECT pictures.id FROM pictures
				INNER JOIN albums ON pictures.album_id = albums.id
				WHERE albums.user_id = ?)`},
			{"tags of user", `DELETE FROM tags WHERE user_id = ?`},
			{"pictures", `DELETE FROM pictures WHERE album_id IN (SELECT id FROM albums WHERE user_id = ?)`},
			{"albums", `DELETE FROM albums WHERE user_id = ?`},
			{"user", `DELETE FROM users WHERE id = ?`},
		}
		for _, s := range steps {
			if _, err := r.exec(ctx, tx, s.query, user.ID); err != nil {
				return fmt.Errorf("failed to delete %s: %w", s.what, err)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	r.log.Debug(ctx, "user deleted", "user_id", user.ID)
	r.compact(ctx)
	return nil
}

func (r *SQLRepository) UserExists(ctx context.Context, userID int64) (bool, error) {
	db, err := r.conn("user exists")
	if err != nil {
		return false, err
	}
	ok, err := r.userExists(ctx, db, userID)
	if err != nil {
		return false, common.StorageError("user exists", err)
	}
	return ok, nil
}

func (r *SQLRepository) GetUser(ctx context.Context, userID int64) (models.User, error) {
	db, err := r.conn("get user")
	if err != nil {
		return models.User{}, err
	}
	rec, ok, err := r.queryOne(ctx, db, `SELECT id, name FROM users WHERE id = ?`, userID)
	if err != nil {
		return models.User{}, common.StorageError("get user", err)
	}
	if !ok {
		return models.User{}, common.NotFound("User", userID)
	}
	user, ok := userFromRecord(rec)
	if !ok {
		return models.User{}, common.NotFound("User", userID)
	}
	return user, nil
}

func (r *SQLRepository) ListUsers(ctx context.Context) ([]models.User, error) {
	db, err := r.conn("list users")
	if err != nil {
		return nil, err
	}
	recs, err := r.query(ctx, db, `SELECT id, name FROM users ORDER BY id`)
	if err != nil {
		return nil, common.StorageError("list users", err)
	}

	users := make([]models.User, 0, len(recs))
	for _, rec := range recs {
		if u, ok := userFromRecord(rec); ok {
			users = append(users, u)
		}
	}
	return users, nil
}

func (r *SQLRepository) userExists(ctx context.Context, q dbx.DBTX, userID int64) (bool, error) {
	return r.exists(ctx, q, `SELECT 1 AS found FROM users WHERE id = ?`, userID)
}

// requireUser fails with NotFound when the user does not exist.
func (r *SQLRepository) requireUser(ctx context.Context, q dbx.DBTX, userID int64) error {
	ok, err := r.userExists(ctx, q, userID)
	if err != nil {
		return fmt.Errorf("failed to look up user: %w", err)
	}
	if !ok {
		return common.NotFound("User", userID)
	}
	return nil
}
