package gallery

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/gallery/internal/dbx"
	"github.com/dmitrijs2005/gallery/internal/models"
)

// record is a result row keyed by lower-cased column name. Columns that are
// NULL map to nil.
type record map[string]any

// scanRecords drains query results into records. The rows are closed before
// returning so the single connection is free for follow-up queries.
func scanRecords(ctx context.Context, q dbx.DBTX, query string, args ...any) ([]record, error) {
	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	var result []record
	for rows.Next() {
		vals := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range vals {
			ptrs[i] = &vals[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, err
		}

		rec := make(record, len(cols))
		for i, c := range cols {
			rec[strings.ToLower(c)] = vals[i]
		}
		result = append(result, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r record) int64(col string) (int64, bool) {
	switch v := r[col].(type) {
	case int64:
		return v, true
	case int32:
		return int64(v), true
	case int:
		return int64(v), true
	case float64:
		return int64(v), true
	case []byte:
		n, err := strconv.ParseInt(string(v), 10, 64)
		return n, err == nil
	case string:
		n, err := strconv.ParseInt(v, 10, 64)
		return n, err == nil
	default:
		return 0, false
	}
}

func (r record) string(col string) (string, bool) {
	switch v := r[col].(type) {
	case string:
		return v, true
	case []byte:
		return string(v), true
	case nil:
		return "", false
	default:
		return fmt.Sprint(v), true
	}
}

func (r record) time(col string) (time.Time, bool) {
	if t, ok := r[col].(time.Time); ok {
		return t.UTC(), true
	}
	s, ok := r.string(col)
	if !ok {
		return time.Time{}, false
	}
	t, err := models.ParseTime(s)
	return t, err == nil
}

func userFromRecord(rec record) (models.User, bool) {
	id, ok := rec.int64("id")
	if !ok {
		return models.User{}, false
	}
	name, ok := rec.string("name")
	if !ok || name == "" {
		return models.User{}, false
	}
	return models.User{ID: id, Name: name}, true
}

// taggedUserFromRecord reads the user side of a tags join.
func taggedUserFromRecord(rec record) (int64, models.User, bool) {
	pictureID, _ := rec.int64("picture_id")
	id, ok := rec.int64("user_id")
	if !ok {
		return 0, models.User{}, false
	}
	name, ok := rec.string("user_name")
	if !ok {
		return 0, models.User{}, false
	}
	return pictureID, models.User{ID: id, Name: name}, true
}

// albumRow is an albums row together with its surrogate id.
type albumRow struct {
	id    int64
	album models.Album
}

func albumFromRecord(rec record) (albumRow, bool) {
	id, ok := rec.int64("id")
	if !ok {
		return albumRow{}, false
	}
	name, ok := rec.string("name")
	if !ok || name == "" {
		return albumRow{}, false
	}
	ownerID, ok := rec.int64("user_id")
	if !ok {
		return albumRow{}, false
	}
	created, ok := rec.time("creation_date")
	if !ok {
		return albumRow{}, false
	}
	ownerName, _ := rec.string("owner_name")

	return albumRow{
		id: id,
		album: models.Album{
			OwnerID:   ownerID,
			OwnerName: ownerName,
			Name:      name,
			CreatedAt: created,
			Pictures:  []models.Picture{},
		},
	}, true
}

func pictureFromRecord(rec record) (models.Picture, bool) {
	id, ok := rec.int64("id")
	if !ok {
		return models.Picture{}, false
	}
	name, ok := rec.string("name")
	if !ok || name == "" {
		return models.Picture{}, false
	}
	path, ok := rec.string("location")
	if !ok || path == "" {
		return models.Picture{}, false
	}
	created, ok := rec.time("creation_date")
	if !ok {
		return models.Picture{}, false
	}
	return models.Picture{
		ID:          id,
		Name:        name,
		Path:        path,
		CreatedAt:   created,
		TaggedUsers: []models.User{},
	}, true
}
