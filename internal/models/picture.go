package models

import (
	"fmt"
	"sort"
	"time"
)

// Picture is an image file registered in an album.
//
// TaggedUsers holds the users tagged in the picture. It behaves as a set keyed
// by user id and is kept ordered by id.
type Picture struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name" validate:"required"`
	Path        string    `json:"path" validate:"required"`
	CreatedAt   time.Time `json:"creation_date"`
	TaggedUsers []User    `json:"tagged_users"`
}

// NewPicture returns a picture stamped with the current time.
func NewPicture(name, path string) Picture {
	p := Picture{Name: name, Path: path}
	p.SetCreationDateNow()
	return p
}

// SetCreationDateNow stamps the picture with the current UTC time.
func (p *Picture) SetCreationDateNow() {
	p.CreatedAt = Now()
}

// IsUserTagged reports whether the user with the given id is tagged.
func (p Picture) IsUserTagged(userID int64) bool {
	for _, u := range p.TaggedUsers {
		if u.ID == userID {
			return true
		}
	}
	return false
}

// TagUser adds user to the tag set. Tagging an already tagged user is a no-op.
func (p *Picture) TagUser(user User) {
	if p.IsUserTagged(user.ID) {
		return
	}
	p.TaggedUsers = append(p.TaggedUsers, user)
	sort.Slice(p.TaggedUsers, func(i, j int) bool {
		return p.TaggedUsers[i].ID < p.TaggedUsers[j].ID
	})
}

// UntagUser removes the user with the given id from the tag set.
func (p *Picture) UntagUser(userID int64) {
	for i, u := range p.TaggedUsers {
		if u.ID == userID {
			p.TaggedUsers = append(p.TaggedUsers[:i], p.TaggedUsers[i+1:]...)
			return
		}
	}
}

// TagsCount returns the number of users tagged in the picture.
func (p Picture) TagsCount() int {
	return len(p.TaggedUsers)
}

// Clone returns a deep copy of the picture.
func (p Picture) Clone() Picture {
	c := p
	if p.TaggedUsers != nil {
		c.TaggedUsers = make([]User, len(p.TaggedUsers))
		copy(c.TaggedUsers, p.TaggedUsers)
	}
	return c
}

func (p Picture) String() string {
	return fmt.Sprintf("[%d] - %s\tLocation: [%s]\tCreation Date: [%s]\tTags: [%d]",
		p.ID, p.Name, p.Path, FormatTime(p.CreatedAt), p.TagsCount())
}
