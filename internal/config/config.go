// Package config reads the board's TOML configuration.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	"LessonBoard/internal/state"
)

type Board struct {
	Tool         string  `toml:"tool"`
	BrushColor   string  `toml:"brush_color"`
	BrushSize    float64 `toml:"brush_size"`
	EraserRadius float64 `toml:"eraser_radius"`
	Background   string  `toml:"background"`
	Width        int     `toml:"width"`
	Height       int     `toml:"height"`
}

type Storage struct {
	Dir         string        `toml:"dir"`
	Remote      string        `toml:"remote"`
	Discover    bool          `toml:"discover"`
	SaveTimeout time.Duration `toml:"save_timeout"`
}

type Server struct {
	Port      int  `toml:"port"`
	Advertise bool `toml:"advertise"`
}

type Log struct {
	Level string `toml:"level"`
}

type Config struct {
	Board   Board   `toml:"board"`
	Storage Storage `toml:"storage"`
	Server  Server  `toml:"server"`
	Log     Log     `toml:"log"`
}

// Default is the configuration used when no file exists.
func Default() Config {
	dir := "lessons"
	if home, err := os.UserConfigDir(); err == nil {
		dir = filepath.Join(home, "lessonboard", "lessons")
	}
	return Config{
		Board: Board{
			Tool:         state.ToolBrush.String(),
			BrushColor:   state.DefaultColor,
			BrushSize:    state.DefaultBrushSize,
			EraserRadius: 10,
			Background:   "#FFFFFF",
			Width:        1024,
			Height:       720,
		},
		Storage: Storage{Dir: dir, SaveTimeout: 10 * time.Second},
		Server:  Server{Port: 8888, Advertise: true},
		Log:     Log{Level: "info"},
	}
}

// Load reads path over the defaults. A missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	md, err := toml.DecodeFile(path, &cfg)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return Config{}, fmt.Errorf("config %s: unknown keys %v", path, undecoded)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks value ranges.
func (c Config) Validate() error {
	var errs []error
	if _, err := state.ParseTool(c.Board.Tool); err != nil {
		errs = append(errs, fmt.Errorf("board.tool: %w", err))
	}
	if _, err := state.ParseColor(c.Board.BrushColor); err != nil {
		errs = append(errs, fmt.Errorf("board.brush_color: %w", err))
	}
	if _, err := state.ParseColor(c.Board.Background); err != nil {
		errs = append(errs, fmt.Errorf("board.background: %w", err))
	}
	if c.Board.BrushSize <= 0 {
		errs = append(errs, fmt.Errorf("board.brush_size must be positive, got %v", c.Board.BrushSize))
	}
	if c.Board.EraserRadius <= 0 {
		errs = append(errs, fmt.Errorf("board.eraser_radius must be positive, got %v", c.Board.EraserRadius))
	}
	if c.Board.Width <= 0 || c.Board.Height <= 0 {
		errs = append(errs, fmt.Errorf("board size %dx%d must be positive", c.Board.Width, c.Board.Height))
	}
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("server.port %d out of range", c.Server.Port))
	}
	if c.Storage.Dir == "" && c.Storage.Remote == "" && !c.Storage.Discover {
		errs = append(errs, errors.New("storage: one of dir, remote or discover is required"))
	}
	return errors.Join(errs...)
}
