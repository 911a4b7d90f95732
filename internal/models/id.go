package models

import (
	"encoding/hex"
	"regexp"
	"strings"

	"github.com/google/uuid"
)

// UserIDLength is the length of a user identifier token in hex characters.
const UserIDLength = 32

var userIDPattern = regexp.MustCompile(`^[0-9a-f]{32}$`)

// NewUserID returns a fresh identifier token: the 16 random bytes of a v4 UUID in hex.
func NewUserID() string {
	id := uuid.New()
	return hex.EncodeToString(id[:])
}

// NormalizeUserID lower-cases and trims an identifier taken from a request.
func NormalizeUserID(id string) string {
	return strings.ToLower(strings.TrimSpace(id))
}

// IsValidUserID reports whether id is a well-formed identifier token.
func IsValidUserID(id string) bool {
	return userIDPattern.MatchString(id)
}
