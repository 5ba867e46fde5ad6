package persist

import (
	"context"
	"fmt"
	"slices"
	"sync"
)

// MemoryGateway is a process-local Gateway.
type MemoryGateway struct {
	mu    sync.Mutex
	data  map[string][]byte
	fail  error
	saves int
}

func NewMemoryGateway() *MemoryGateway {
	return &MemoryGateway{data: make(map[string][]byte)}
}

// FailWith makes every following call return err. nil restores normal work.
func (g *MemoryGateway) FailWith(err error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.fail = err
}

// Saves counts successful saves.
func (g *MemoryGateway) Saves() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.saves
}

func (g *MemoryGateway) Load(ctx context.Context, lesson string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.fail != nil {
		return nil, g.fail
	}
	data, ok := g.data[lesson]
	if !ok {
		return nil, fmt.Errorf("load %s: %w", lesson, ErrNotFound)
	}
	return slices.Clone(data), nil
}

func (g *MemoryGateway) Save(ctx context.Context, lesson string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.fail != nil {
		return g.fail
	}
	g.data[lesson] = slices.Clone(data)
	g.saves++
	return nil
}
