package models

import (
	"fmt"
	"time"
)

// Album is a named, ordered collection of pictures owned by one user.
//
// An album is identified by (OwnerID, Name). OwnerName is resolved from the
// owner record every time an album is read; it is never stored.
type Album struct {
	OwnerID   int64     `json:"user_id" validate:"gt=0"`
	OwnerName string    `json:"owner_name"`
	Name      string    `json:"name" validate:"required"`
	CreatedAt time.Time `json:"creation_date"`
	Pictures  []Picture `json:"pictures"`
}

// NewAlbum returns an empty album stamped with the current time.
func NewAlbum(ownerID int64, name string) Album {
	a := Album{OwnerID: ownerID, Name: name}
	a.SetCreationDateNow()
	return a
}

// SetCreationDateNow stamps the album with the current UTC time.
func (a *Album) SetCreationDateNow() {
	a.CreatedAt = Now()
}

// HasPicture reports whether the album contains a picture with the given name.
func (a Album) HasPicture(name string) bool {
	_, ok := a.Picture(name)
	return ok
}

// Picture returns a copy of the picture with the given name.
func (a Album) Picture(name string) (Picture, bool) {
	for _, p := range a.Pictures {
		if p.Name == name {
			return p.Clone(), true
		}
	}
	return Picture{}, false
}

// AddPicture appends picture, keeping insertion order.
func (a *Album) AddPicture(picture Picture) {
	a.Pictures = append(a.Pictures, picture)
}

// RemovePicture removes the picture with the given name and reports whether
// it was present.
func (a *Album) RemovePicture(name string) bool {
	for i, p := range a.Pictures {
		if p.Name == name {
			a.Pictures = append(a.Pictures[:i], a.Pictures[i+1:]...)
			return true
		}
	}
	return false
}

// TagUserInPicture tags user in the named picture, if present.
func (a *Album) TagUserInPicture(user User, pictureName string) {
	for i := range a.Pictures {
		if a.Pictures[i].Name == pictureName {
			a.Pictures[i].TagUser(user)
		}
	}
}

// UntagUserInPicture removes the tag of userID from the named picture.
func (a *Album) UntagUserInPicture(userID int64, pictureName string) {
	for i := range a.Pictures {
		if a.Pictures[i].Name == pictureName {
			a.Pictures[i].UntagUser(userID)
		}
	}
}

// TagUserInAlbum tags user in every picture of the album.
func (a *Album) TagUserInAlbum(user User) {
	for i := range a.Pictures {
		a.Pictures[i].TagUser(user)
	}
}

// UntagUserInAlbum removes the tags of userID from every picture.
func (a *Album) UntagUserInAlbum(userID int64) {
	for i := range a.Pictures {
		a.Pictures[i].UntagUser(userID)
	}
}

// Clone returns a deep copy of the album.
func (a Album) Clone() Album {
	c := a
	if a.Pictures != nil {
		c.Pictures = make([]Picture, len(a.Pictures))
		for i, p := range a.Pictures {
			c.Pictures[i] = p.Clone()
		}
	}
	return c
}

func (a Album) String() string {
	return fmt.Sprintf("[%s] - created by user@%d on (%s)", a.Name, a.OwnerID, FormatTime(a.CreatedAt))
}
