package persist

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileGatewayRoundTrip(t *testing.T) {
	g := NewFileGateway(filepath.Join(t.TempDir(), "lessons"))
	ctx := context.Background()

	_, err := g.Load(ctx, "lesson-1")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, g.Save(ctx, "lesson-1", []byte(`{"drawings":[]}`)))
	require.NoError(t, g.Save(ctx, "lesson-1", []byte(`{"drawings":[1]}`)))

	data, err := g.Load(ctx, "lesson-1")
	require.NoError(t, err)
	assert.Equal(t, `{"drawings":[1]}`, string(data))

	entries, err := os.ReadDir(g.Dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temporary files must not be left behind")
}

func TestFileGatewayRejectsBadIDs(t *testing.T) {
	g := NewFileGateway(t.TempDir())
	ctx := context.Background()
	assert.ErrorIs(t, g.Save(ctx, "../escape", nil), ErrInvalidLesson)
	_, err := g.Load(ctx, "")
	assert.ErrorIs(t, err, ErrInvalidLesson)
}

func TestFileGatewayHonoursContext(t *testing.T) {
	g := NewFileGateway(t.TempDir())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, g.Save(ctx, "a", nil), context.Canceled)
}

func TestMemoryGateway(t *testing.T) {
	g := NewMemoryGateway()
	ctx := context.Background()
	_, err := g.Load(ctx, "x")
	assert.ErrorIs(t, err, ErrNotFound)

	in := []byte("abc")
	require.NoError(t, g.Save(ctx, "x", in))
	in[0] = 'z'
	data, err := g.Load(ctx, "x")
	require.NoError(t, err)
	assert.Equal(t, "abc", string(data))

	boom := errors.New("offline")
	g.FailWith(boom)
	assert.ErrorIs(t, g.Save(ctx, "x", nil), boom)
	assert.Equal(t, 1, g.Saves())
}

type slowGateway struct {
	*MemoryGateway
	delay time.Duration
}

func (g slowGateway) Save(ctx context.Context, lesson string, data []byte) error {
	select {
	case <-time.After(g.delay):
	case <-ctx.Done():
		return ctx.Err()
	}
	return g.MemoryGateway.Save(ctx, lesson, data)
}

func TestDispatcherDoesNotBlock(t *testing.T) {
	mem := NewMemoryGateway()
	d := NewDispatcher(slowGateway{mem, 50 * time.Millisecond}, time.Second)

	start := time.Now()
	d.Save("a", []byte("1"))
	assert.Less(t, time.Since(start), 40*time.Millisecond)
	assert.Zero(t, mem.Saves())

	d.Wait()
	assert.Equal(t, 1, mem.Saves())
}

func TestDispatcherDropsFailures(t *testing.T) {
	mem := NewMemoryGateway()
	mem.FailWith(errors.New("down"))
	d := NewDispatcher(mem, 0)
	d.Save("a", []byte("1"))
	d.Wait()

	mem.FailWith(nil)
	_, err := mem.Load(context.Background(), "a")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDispatcherTimeout(t *testing.T) {
	mem := NewMemoryGateway()
	d := NewDispatcher(slowGateway{mem, time.Second}, 10*time.Millisecond)
	d.Save("a", []byte("1"))
	d.Wait()
	assert.Zero(t, mem.Saves())
}
