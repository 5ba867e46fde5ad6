package persist

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"LessonBoard/internal/state"
)

// FileGateway keeps each lesson in <Dir>/<lesson>.json.
type FileGateway struct {
	Dir string
}

func NewFileGateway(dir string) *FileGateway {
	return &FileGateway{Dir: dir}
}

func (g *FileGateway) path(lesson string) (string, error) {
	if !state.ValidLessonID(lesson) {
		return "", fmt.Errorf("%w: %q", ErrInvalidLesson, lesson)
	}
	return filepath.Join(g.Dir, lesson+".json"), nil
}

func (g *FileGateway) Load(ctx context.Context, lesson string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	p, err := g.path(lesson)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(p)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load %s: %w", lesson, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", lesson, err)
	}
	return data, nil
}

// Save replaces the lesson file atomically.
func (g *FileGateway) Save(ctx context.Context, lesson string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	p, err := g.path(lesson)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(g.Dir, 0o755); err != nil {
		return fmt.Errorf("save %s: %w", lesson, err)
	}
	tmp, err := os.CreateTemp(g.Dir, lesson+".*.tmp")
	if err != nil {
		return fmt.Errorf("save %s: %w", lesson, err)
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("save %s: %w", lesson, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("save %s: %w", lesson, err)
	}
	if err := os.Rename(tmp.Name(), p); err != nil {
		return fmt.Errorf("save %s: %w", lesson, err)
	}
	return nil
}
