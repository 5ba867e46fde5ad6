// Package persist defines the storage contract for drawings and the local
// implementations of it.
package persist

import (
	"context"
	"errors"
)

var (
	// ErrNotFound means nothing has been saved for the lesson yet.
	ErrNotFound = errors.New("drawing not found")
	// ErrInvalidLesson rejects ids that cannot be used as storage keys.
	ErrInvalidLesson = errors.New("invalid lesson id")
)

// Gateway stores one serialized drawing per lesson. Save overwrites.
type Gateway interface {
	Load(ctx context.Context, lesson string) ([]byte, error)
	Save(ctx context.Context, lesson string, data []byte) error
}
