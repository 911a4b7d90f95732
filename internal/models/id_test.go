package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewUserID(t *testing.T) {
	seen := make(map[string]struct{})
	for i := 0; i < 100; i++ {
		id := NewUserID()
		assert.Len(t, id, UserIDLength)
		assert.True(t, IsValidUserID(id), id)
		seen[id] = struct{}{}
	}
	assert.Len(t, seen, 100)
}

func TestIsValidUserID(t *testing.T) {
	tests := []struct {
		id   string
		want bool
	}{
		{"0123456789abcdef0123456789abcdef", true},
		{"0123456789ABCDEF0123456789ABCDEF", false},
		{"0123456789abcdef", false},
		{"0123456789abcdef0123456789abcdeg", false},
		{"5f1e2b9c-0000-4000-8000-000000000000", false},
		{"", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, IsValidUserID(tt.id), tt.id)
	}
}

func TestNormalizeUserID(t *testing.T) {
	id := NormalizeUserID("  0123456789ABCDEF0123456789ABCDEF ")
	assert.Equal(t, "0123456789abcdef0123456789abcdef", id)
	assert.True(t, IsValidUserID(id))
}
