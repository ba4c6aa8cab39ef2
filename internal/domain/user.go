// Package domain contains entity without logic, just meta-data
package domain

import (
	"errors"

	"github.com/google/uuid"
)

const (
	MaxUserIDLen   = 36
	MaxUsernameLen = 36
)

var (
	ErrUsernameTooLong = errors.New("username too long")
	ErrUsernameEmpty   = errors.New("username empty")
)

type UserID string

// User is one participant's identity inside a room: who they are and what
// color their strokes and cursor show up as.
type User struct {
	ID       UserID `json:"userId"`
	Username string `json:"username"`
	Color    string `json:"color"`
}

// NewGuest creates a placeholder identity for a session that has not sent
// hello yet.
func NewGuest() *User {
	return &User{ID: UserID(uuid.NewString()), Username: "guest"}
}

func (u *User) SetUsername(username string) error {
	if len(username) == 0 {
		return ErrUsernameEmpty
	}
	if len(username) > MaxUsernameLen {
		return ErrUsernameTooLong
	}
	u.Username = username
	return nil
}
