package knowledge

import (
	"strings"
	"time"
)

// User anchors progress rows. Authentication lives outside this module.
type User struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Password  string    `json:"-"`
	Email     *string   `json:"email,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// NewUser is the input for creating a user.
type NewUser struct {
	Username string  `json:"username"`
	Password string  `json:"password"`
	Email    *string `json:"email,omitempty"`
}

func (u NewUser) Validate() error {
	if strings.TrimSpace(u.Username) == "" {
		return &ValidationError{Field: "username", Reason: "must not be empty"}
	}
	return nil
}

func (u NewUser) Build(id int64, createdAt time.Time) User {
	return User{
		ID:        id,
		Username:  u.Username,
		Password:  u.Password,
		Email:     u.Email,
		CreatedAt: createdAt,
	}
}
