package input

import (
	"context"
	"errors"
	"fmt"

	"LessonBoard/internal/logging"
	"LessonBoard/internal/persist"
	"LessonBoard/internal/render"
	"LessonBoard/internal/state"
)

// Loader fetches the serialized drawing of a lesson.
type Loader interface {
	Load(ctx context.Context, lesson string) ([]byte, error)
}

// Saver persists a serialized drawing without blocking the caller.
type Saver interface {
	Save(lesson string, data []byte)
}

// Options are the initial tool settings.
type Options struct {
	Tool         state.Tool
	Color        string
	BrushSize    float64
	EraserRadius float64
	PixelRatio   float64
}

// Controller owns the open lesson: its stroke store, the surface it is
// painted on and the tool state. It must be driven from a single goroutine.
type Controller struct {
	surface *render.Surface
	loader  Loader
	saver   Saver

	lesson string
	store  *state.Store

	tool         state.Tool
	color        string
	brushSize    float64
	eraserRadius float64
	ratio        float64

	capturing  bool
	lastEraser state.Point

	// OnChange runs after every change of the surface pixels.
	OnChange func()
}

func NewController(surface *render.Surface, loader Loader, saver Saver, opts Options) *Controller {
	c := &Controller{
		surface:      surface,
		loader:       loader,
		saver:        saver,
		tool:         state.ToolBrush,
		color:        state.DefaultColor,
		brushSize:    state.DefaultBrushSize,
		eraserRadius: 10,
		ratio:        1,
	}
	if opts.Tool == state.ToolEraser {
		c.tool = state.ToolEraser
	}
	if col, err := state.NormalizeColor(opts.Color); err == nil {
		c.color = col
	}
	if opts.BrushSize > 0 {
		c.brushSize = opts.BrushSize
	}
	if opts.EraserRadius > 0 {
		c.eraserRadius = opts.EraserRadius
	}
	if opts.PixelRatio > 0 {
		c.ratio = opts.PixelRatio
	}
	return c
}

// Open loads lesson and paints it. Storage or decode failures leave an empty
// drawing behind.
func (c *Controller) Open(ctx context.Context, lesson string) {
	c.Close()
	log := logging.Logger().With("lesson", lesson)

	var d state.Drawing
	data, err := c.loader.Load(ctx, lesson)
	switch {
	case errors.Is(err, persist.ErrNotFound):
		log.Debug("new lesson")
	case err != nil:
		log.Warn("load failed, starting empty", "err", err)
	default:
		if d, err = state.Deserialize(data); err != nil {
			log.Warn("stored drawing unreadable, starting empty", "err", err)
			d = nil
		}
	}

	c.lesson = lesson
	c.store = state.NewStore(d)
	c.surface.FullRedraw(c.store.Persistable())
	log.Info("lesson opened", "strokes", c.store.Len())
	c.changed()
}

// Close discards the in-memory drawing.
func (c *Controller) Close() {
	if c.store == nil {
		return
	}
	c.EndStroke()
	c.store = nil
	c.lesson = ""
	c.surface.FullRedraw(nil)
	c.changed()
}

// Lesson is the open lesson id, empty when none is open.
func (c *Controller) Lesson() string { return c.lesson }

// Drawing returns the renderable strokes of the open lesson.
func (c *Controller) Drawing() state.Drawing {
	if c.store == nil {
		return nil
	}
	return c.store.Persistable()
}

func (c *Controller) Surface() *render.Surface { return c.surface }

// BeginStroke starts capture at p. With the brush a new stroke is started;
// with the eraser only the position is remembered.
func (c *Controller) BeginStroke(p state.Point) {
	if c.store == nil {
		logging.Logger().Debug("pointer down without an open lesson")
		return
	}
	if c.capturing {
		c.EndStroke()
	}
	c.capturing = true
	switch c.tool {
	case state.ToolBrush:
		c.store.BeginStroke(c.color, c.brushSize, p)
		c.save()
	case state.ToolEraser:
		c.lastEraser = p
	}
}

// ContinueStroke feeds the next captured point. The brush paints just the new
// segment; the eraser rewrites the drawing and repaints everything.
func (c *Controller) ContinueStroke(p state.Point) {
	if c.store == nil || !c.capturing {
		return
	}
	switch c.tool {
	case state.ToolBrush:
		prev, st, ok := c.store.AppendPoint(p)
		if !ok {
			return
		}
		c.surface.Segment(st.Color, st.BrushSize, prev, p)
	case state.ToolEraser:
		d := state.Erase(c.store.Drawing(), p, c.eraserRadius*c.ratio)
		c.store.Replace(d)
		c.surface.FullRedraw(d)
		c.lastEraser = p
	}
	c.save()
	c.changed()
}

// EndStroke stops capture. It is safe to call repeatedly.
func (c *Controller) EndStroke() {
	if !c.capturing {
		return
	}
	c.capturing = false
	if c.store != nil && c.tool == state.ToolBrush {
		c.store.EndStroke()
	}
}

func (c *Controller) PointerDown(p state.Point) { c.BeginStroke(p) }
func (c *Controller) PointerMove(p state.Point) { c.ContinueStroke(p) }
func (c *Controller) PointerUp()                { c.EndStroke() }
func (c *Controller) PointerCancel()            { c.EndStroke() }

// Resize reallocates the surface and repaints the drawing on it.
func (c *Controller) Resize(w, h int) {
	c.surface.Resize(w, h, c.Drawing())
	c.changed()
}

// Clear removes every stroke, repaints and saves.
func (c *Controller) Clear() {
	if c.store == nil {
		return
	}
	c.capturing = false
	c.store.Clear()
	c.surface.FullRedraw(nil)
	c.save()
	c.changed()
}

// SetTool switches tools, ending any capture in progress.
func (c *Controller) SetTool(t state.Tool) {
	c.EndStroke()
	c.tool = t
}

func (c *Controller) Tool() state.Tool { return c.tool }

// SetColor sets the brush colour for strokes started afterwards.
func (c *Controller) SetColor(hex string) error {
	col, err := state.NormalizeColor(hex)
	if err != nil {
		logging.Logger().Warn("ignoring brush color", "err", err)
		return err
	}
	c.color = col
	return nil
}

func (c *Controller) Color() string { return c.color }

func (c *Controller) SetBrushSize(n float64) error {
	if n <= 0 {
		err := fmt.Errorf("brush size %v must be positive", n)
		logging.Logger().Warn("ignoring brush size", "err", err)
		return err
	}
	c.brushSize = n
	return nil
}

func (c *Controller) BrushSize() float64 { return c.brushSize }

// SetEraserRadius sets the radius in logical pixels; it is scaled by the
// pixel ratio when erasing.
func (c *Controller) SetEraserRadius(n float64) error {
	if n <= 0 {
		err := fmt.Errorf("eraser radius %v must be positive", n)
		logging.Logger().Warn("ignoring eraser radius", "err", err)
		return err
	}
	c.eraserRadius = n
	return nil
}

func (c *Controller) EraserRadius() float64 { return c.eraserRadius }

// SetPixelRatio records the device pixel ratio of the surface.
func (c *Controller) SetPixelRatio(r float64) {
	if r > 0 {
		c.ratio = r
	}
}

func (c *Controller) PixelRatio() float64 { return c.ratio }

// EraserPosition is the last sampled eraser centre.
func (c *Controller) EraserPosition() state.Point { return c.lastEraser }

func (c *Controller) save() {
	if c.saver == nil {
		return
	}
	data, err := state.Serialize(c.store.Persistable())
	if err != nil {
		logging.Logger().Error("serialize drawing", "lesson", c.lesson, "err", err)
		return
	}
	c.saver.Save(c.lesson, data)
}

func (c *Controller) changed() {
	if c.OnChange != nil {
		c.OnChange()
	}
}
