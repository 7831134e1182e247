package domain

import "time"

// User is a registered community member. Username and Email are unique across
// registered users. The administrator is never stored as a User row; it is
// synthesized from configuration at login (see Identity).
type User struct {
	ID           string
	Username     string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
