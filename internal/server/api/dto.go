package api

// CreateUserRequest is the body of POST /users.
type CreateUserRequest struct {
	Name string `json:"name" validate:"required"`
}

// CreateAlbumRequest is the body of POST /albums.
type CreateAlbumRequest struct {
	UserID int64  `json:"user_id" validate:"gt=0"`
	Name   string `json:"name" validate:"required"`
}

// AddPictureRequest is the body of POST /albums/{name}/pictures.
type AddPictureRequest struct {
	Name string `json:"name" validate:"required"`
	Path string `json:"path" validate:"required"`
}

// TagUserRequest is the body of POST /albums/{name}/pictures/{picture}/tags.
type TagUserRequest struct {
	UserID int64 `json:"user_id" validate:"gt=0"`
}

// UserStatistics is returned by GET /users/{id}/statistics.
type UserStatistics struct {
	UserID              int64   `json:"user_id"`
	OwnedAlbums         int     `json:"owned_albums"`
	TaggedAlbums        int     `json:"tagged_albums"`
	Tags                int     `json:"tags"`
	AverageTagsPerAlbum float64 `json:"average_tags_per_album"`
}

type healthResponse struct {
	Status string `json:"status"`
}
