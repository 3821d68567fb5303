package models

import "fmt"

// User is a gallery member. ID is assigned by the store on creation.
type User struct {
	ID   int64  `json:"id"`
	Name string `json:"name" validate:"required"`
}

func (u User) String() string {
	return fmt.Sprintf("@%d - %s", u.ID, u.Name)
}
