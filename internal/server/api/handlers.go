package api

import (
	"net/http"

	"github.com/dmitrijs2005/gallery/internal/models"
	"github.com/dmitrijs2005/gallery/internal/repositories/gallery"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	err := s.locked(func(store gallery.DataAccess) error {
		_, err := store.UserExists(r.Context(), 0)
		return err
	})
	if err != nil {
		s.logger.Warn(r.Context(), "health check failed", "error", err)
		s.writeJSON(w, r, http.StatusServiceUnavailable, healthResponse{Status: "unavailable"})
		return
	}
	s.writeJSON(w, r, http.StatusOK, healthResponse{Status: "ok"})
}

// ---- users ----

func (s *Server) handleCreateUser(w http.ResponseWriter, r *http.Request) {
	var req CreateUserRequest
	if err := decode(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	var user models.User
	err := s.locked(func(store gallery.DataAccess) (err error) {
		user, err = store.CreateUser(r.Context(), req.Name)
		return err
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.logger.Info(r.Context(), "user created", "user_id", user.ID)
	s.writeJSON(w, r, http.StatusCreated, user)
}

func (s *Server) handleListUsers(w http.ResponseWriter, r *http.Request) {
	var users []models.User
	err := s.locked(func(store gallery.DataAccess) (err error) {
		users, err = store.ListUsers(r.Context())
		return err
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, r, http.StatusOK, users)
}

func (s *Server) handleGetUser(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	var user models.User
	err = s.locked(func(store gallery.DataAccess) (err error) {
		user, err = store.GetUser(r.Context(), id)
		return err
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, r, http.StatusOK, user)
}

func (s *Server) handleDeleteUser(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	err = s.locked(func(store gallery.DataAccess) error {
		return store.DeleteUser(r.Context(), models.User{ID: id})
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.logger.Info(r.Context(), "user deleted", "user_id", id)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleAlbumsOfUser(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	var albums []models.Album
	err = s.locked(func(store gallery.DataAccess) (err error) {
		albums, err = store.AlbumsOfUser(r.Context(), models.User{ID: id})
		return err
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, r, http.StatusOK, albums)
}

// ---- albums ----

func (s *Server) handleCreateAlbum(w http.ResponseWriter, r *http.Request) {
	var req CreateAlbumRequest
	if err := decode(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	var album models.Album
	err := s.locked(func(store gallery.DataAccess) (err error) {
		album, err = store.CreateAlbum(r.Context(), models.NewAlbum(req.UserID, req.Name))
		return err
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.logger.Info(r.Context(), "album created", "album", album.Name, "owner_id", album.OwnerID)
	s.writeJSON(w, r, http.StatusCreated, album)
}

func (s *Server) handleListAlbums(w http.ResponseWriter, r *http.Request) {
	var albums []models.Album
	err := s.locked(func(store gallery.DataAccess) (err error) {
		albums, err = store.ListAlbums(r.Context())
		return err
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, r, http.StatusOK, albums)
}

func (s *Server) handleOpenAlbum(w http.ResponseWriter, r *http.Request) {
	name := pathParam(r, "name")

	var album models.Album
	err := s.locked(func(store gallery.DataAccess) (err error) {
		album, err = store.OpenAlbum(r.Context(), name)
		return err
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, r, http.StatusOK, album)
}

func (s *Server) handleDeleteAlbum(w http.ResponseWriter, r *http.Request) {
	name := pathParam(r, "name")
	ownerID, err := queryID(r, "user_id")
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	err = s.locked(func(store gallery.DataAccess) error {
		return store.DeleteAlbum(r.Context(), name, ownerID)
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.logger.Info(r.Context(), "album deleted", "album", name, "owner_id", ownerID)
	w.WriteHeader(http.StatusNoContent)
}

// ---- pictures and tags ----

func (s *Server) handleAddPicture(w http.ResponseWriter, r *http.Request) {
	albumName := pathParam(r, "name")
	var req AddPictureRequest
	if err := decode(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	var picture models.Picture
	err := s.locked(func(store gallery.DataAccess) (err error) {
		picture, err = store.AddPictureToAlbum(r.Context(), albumName, models.NewPicture(req.Name, req.Path))
		return err
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, r, http.StatusCreated, picture)
}

func (s *Server) handleRemovePicture(w http.ResponseWriter, r *http.Request) {
	albumName := pathParam(r, "name")
	pictureName := pathParam(r, "picture")

	err := s.locked(func(store gallery.DataAccess) error {
		return store.RemovePictureFromAlbum(r.Context(), albumName, pictureName)
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleTagUser(w http.ResponseWriter, r *http.Request) {
	albumName := pathParam(r, "name")
	pictureName := pathParam(r, "picture")
	var req TagUserRequest
	if err := decode(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	err := s.locked(func(store gallery.DataAccess) error {
		return store.TagUser(r.Context(), albumName, pictureName, req.UserID)
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleUntagUser(w http.ResponseWriter, r *http.Request) {
	albumName := pathParam(r, "name")
	pictureName := pathParam(r, "picture")
	userID, err := idParam(r, "userID")
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	err = s.locked(func(store gallery.DataAccess) error {
		return store.UntagUser(r.Context(), albumName, pictureName, userID)
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ---- statistics ----

func (s *Server) handleUserStatistics(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	stats := UserStatistics{UserID: id}
	user := models.User{ID: id}
	err = s.locked(func(store gallery.DataAccess) (err error) {
		ctx := r.Context()
		if stats.OwnedAlbums, err = store.CountOwnedAlbums(ctx, user); err != nil {
			return err
		}
		if stats.TaggedAlbums, err = store.CountTaggedAlbums(ctx, user); err != nil {
			return err
		}
		if stats.Tags, err = store.CountTags(ctx, user); err != nil {
			return err
		}
		stats.AverageTagsPerAlbum, err = store.AverageTagsPerAlbum(ctx, user)
		return err
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, r, http.StatusOK, stats)
}

func (s *Server) handlePicturesTaggedByUser(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	var pictures []models.Picture
	err = s.locked(func(store gallery.DataAccess) (err error) {
		pictures, err = store.PicturesTaggedByUser(r.Context(), models.User{ID: id})
		return err
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, r, http.StatusOK, pictures)
}

func (s *Server) handleTopTaggedUser(w http.ResponseWriter, r *http.Request) {
	var user models.User
	err := s.locked(func(store gallery.DataAccess) (err error) {
		user, err = store.TopTaggedUser(r.Context())
		return err
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, r, http.StatusOK, user)
}

func (s *Server) handleTopTaggedPicture(w http.ResponseWriter, r *http.Request) {
	var picture models.Picture
	err := s.locked(func(store gallery.DataAccess) (err error) {
		picture, err = store.TopTaggedPicture(r.Context())
		return err
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, r, http.StatusOK, picture)
}

func (s *Server) handleClear(w http.ResponseWriter, r *http.Request) {
	err := s.locked(func(store gallery.DataAccess) error {
		return store.Clear(r.Context())
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.logger.Warn(r.Context(), "database cleared", "request_id", RequestIDFrom(r.Context()))
	w.WriteHeader(http.StatusNoContent)
}
