package state

import "fmt"

// Point is a surface-local position in surface pixels, origin at the top-left.
// Points may lie outside the visible surface.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Stroke is one continuous path with a constant colour and width.
type Stroke struct {
	Color     string  `json:"color"`
	BrushSize float64 `json:"brushSize"`
	Points    []Point `json:"points"`
}

// Drawable reports whether the stroke has enough points to form a segment.
// Strokes that are not drawable are never rendered or persisted.
func (s Stroke) Drawable() bool {
	return len(s.Points) >= 2
}

// Drawing is the ordered stroke list of one surface. Order is creation
// order and z-order.
type Drawing []Stroke

// Drawable returns the strokes with at least two points, in order.
func (d Drawing) Drawable() Drawing {
	out := make(Drawing, 0, len(d))
	for _, s := range d {
		if s.Drawable() {
			out = append(out, s)
		}
	}
	return out
}

// Tool is the active input tool.
type Tool int

const (
	ToolBrush Tool = iota
	ToolEraser
)

func (t Tool) String() string {
	switch t {
	case ToolBrush:
		return "brush"
	case ToolEraser:
		return "eraser"
	}
	return fmt.Sprintf("Tool(%d)", int(t))
}

// ParseTool maps "brush" or "eraser" to a Tool.
func ParseTool(name string) (Tool, error) {
	switch name {
	case "brush", "pen":
		return ToolBrush, nil
	case "eraser":
		return ToolEraser, nil
	}
	return ToolBrush, fmt.Errorf("unknown tool %q", name)
}
