package models

import "errors"

// ErrUsernameTaken is returned by the store when the username unique constraint is violated.
var ErrUsernameTaken = errors.New("username already taken")
