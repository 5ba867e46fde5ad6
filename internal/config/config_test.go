package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func write(t *testing.T, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "board.toml")
	require.NoError(t, os.WriteFile(p, []byte(body), 0o644))
	return p
}

func TestDefaultsAreValid(t *testing.T) {
	require.NoError(t, Default().Validate())
}

func TestMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadOverrides(t *testing.T) {
	cfg, err := Load(write(t, `
[board]
tool = "eraser"
brush_color = "red"
brush_size = 6.5

[storage]
dir = "/tmp/lessons"
save_timeout = "3s"

[server]
port = 9000
advertise = false

[log]
level = "debug"
`))
	require.NoError(t, err)
	assert.Equal(t, "eraser", cfg.Board.Tool)
	assert.Equal(t, "red", cfg.Board.BrushColor)
	assert.Equal(t, 6.5, cfg.Board.BrushSize)
	assert.Equal(t, 10.0, cfg.Board.EraserRadius)
	assert.Equal(t, "/tmp/lessons", cfg.Storage.Dir)
	assert.Equal(t, 3*time.Second, cfg.Storage.SaveTimeout)
	assert.Equal(t, 9000, cfg.Server.Port)
	assert.False(t, cfg.Server.Advertise)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoadRejectsInvalid(t *testing.T) {
	_, err := Load(write(t, "[board]\ntool = \"lasso\"\nbrush_color = \"#12\"\nbrush_size = -1\n[server]\nport = 70000\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "board.tool")
	assert.Contains(t, err.Error(), "brush_color")
	assert.Contains(t, err.Error(), "brush_size")
	assert.Contains(t, err.Error(), "server.port")

	_, err = Load(write(t, "[board]\nbrushcolour = \"red\"\n"))
	assert.ErrorContains(t, err, "unknown keys")

	_, err = Load(write(t, "not toml = = ="))
	assert.Error(t, err)
}
