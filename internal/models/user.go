package models

import (
	"time"
)

// MaxUsernameLength bounds usernames in characters.
const MaxUsernameLength = 255

// UserDB represents a user document in the database
type UserDB struct {
	UserID    string    `json:"id" db:"user_id"`            // Hex identifier token
	Username  string    `json:"username" db:"username"`     // Unique username
	Logs      Exercises `json:"logs" db:"logs"`             // Embedded exercise log, stored order
	CreatedAt time.Time `json:"created_at" db:"created_at"` // Creation timestamp
}
