package domain

import "time"

// User is an end user who can sign in and approve authorization requests.
type User struct {
	ID           int64
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}
