package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

// Error taxonomy surfaced to the HTTP layer.
var (
	ErrValidation = errors.New("validation failed")
	ErrInvalidID  = errors.New("invalid user id format")
	ErrNotFound   = errors.New("user not found")
	ErrDuplicate  = errors.New("username already exists")
	ErrStore      = errors.New("store unavailable")
)

func validationError(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

func storeError(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrStore, op, err)
}

// withStoreTimeout bounds a single store interaction.
func withStoreTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, timeout)
}

// storableText reports whether s can be written to a text or JSONB column.
func storableText(s string) bool {
	return utf8.ValidString(s) && !strings.ContainsRune(s, 0)
}
