package state

import (
	"strings"

	"github.com/google/uuid"
)

// NewLessonID returns a fresh surface identifier.
func NewLessonID() string {
	return uuid.NewString()
}

// ValidLessonID reports whether id is usable as a storage key: non-empty,
// bounded, and free of path syntax.
func ValidLessonID(id string) bool {
	if id == "" || len(id) > 128 || id == "." || id == ".." {
		return false
	}
	return !strings.ContainsAny(id, `/\:`) && !strings.Contains(id, "..")
}
