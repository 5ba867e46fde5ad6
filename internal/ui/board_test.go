package ui

import (
	"context"
	"image/color"
	"testing"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/driver/mobile"
	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"LessonBoard/internal/input"
	"LessonBoard/internal/persist"
	"LessonBoard/internal/render"
	"LessonBoard/internal/state"
)

func newTestBoard(t *testing.T) *BoardWidget {
	t.Helper()
	test.NewTempApp(t)
	ctrl := input.NewController(render.NewSurface(10, 10, color.White), persist.NewMemoryGateway(), nil, input.Options{})
	ctrl.Open(context.Background(), "lesson")
	b := NewBoardWidget(ctrl)
	b.Resize(fyne.NewSize(100, 50))
	return b
}

// at returns the absolute position of the widget-local point (x, y).
func at(b *BoardWidget, x, y float32) fyne.Position {
	origin := fyne.CurrentApp().Driver().AbsolutePositionForObject(b)
	return origin.Add(fyne.NewPos(x, y))
}

func mouse(pos fyne.Position, button desktop.MouseButton) *desktop.MouseEvent {
	return &desktop.MouseEvent{PointEvent: fyne.PointEvent{AbsolutePosition: pos}, Button: button}
}

func drag(pos fyne.Position) *fyne.DragEvent {
	return &fyne.DragEvent{PointEvent: fyne.PointEvent{AbsolutePosition: pos}}
}

func touch(pos fyne.Position) *mobile.TouchEvent {
	return &mobile.TouchEvent{PointEvent: fyne.PointEvent{AbsolutePosition: pos}}
}

func TestPointerAndTouchMapToSamePoint(t *testing.T) {
	bounds := input.Bounds{X: 20, Y: 30, Width: 200, Height: 100}
	abs := fyne.NewPos(50, 45)

	p := input.PointFromEvent(pointerEvent(abs), bounds, 2)
	q := input.PointFromEvent(touchEvent(abs), bounds, 2)
	assert.Equal(t, state.Point{X: 60, Y: 30}, p)
	assert.Equal(t, p, q)
}

func TestGenerateResizesOnPixelSizeChange(t *testing.T) {
	b := newTestBoard(t)
	repaints := 0
	b.repaint = func() { repaints++ }

	img := b.generate(200, 100)
	assert.Equal(t, 200, img.Bounds().Dx())
	assert.Equal(t, 100, img.Bounds().Dy())
	assert.Equal(t, 2.0, b.Controller().PixelRatio())
	assert.Zero(t, repaints, "resizing inside the generator must not request another frame")

	assert.Same(t, img, b.generate(200, 100), "same size keeps the surface")

	img = b.generate(300, 150)
	assert.Equal(t, 300, img.Bounds().Dx())
	assert.Equal(t, 3.0, b.Controller().PixelRatio())
	assert.Zero(t, repaints)

	b.Controller().PointerDown(state.Point{X: 1, Y: 1})
	b.Controller().PointerMove(state.Point{X: 9, Y: 9})
	assert.Equal(t, 1, repaints)
}

func TestMouseDrivesController(t *testing.T) {
	b := newTestBoard(t)
	b.generate(200, 100)

	b.MouseDown(mouse(at(b, 5, 5), desktop.MouseButtonSecondary))
	b.Dragged(drag(at(b, 20, 10)))
	assert.Empty(t, b.Controller().Drawing(), "only the primary button draws")

	b.MouseDown(mouse(at(b, 5, 5), desktop.MouseButtonPrimary))
	b.Dragged(drag(at(b, 20, 10)))
	b.MouseUp(mouse(at(b, 20, 10), desktop.MouseButtonSecondary))
	b.Dragged(drag(at(b, 30, 10)))
	b.MouseUp(mouse(at(b, 30, 10), desktop.MouseButtonPrimary))
	b.Dragged(drag(at(b, 40, 40)))

	d := b.Controller().Drawing()
	require.Len(t, d, 1)
	assert.Equal(t, []state.Point{{X: 10, Y: 10}, {X: 40, Y: 20}, {X: 60, Y: 20}}, d[0].Points)
}

func TestLeavingOrDragEndStopsCapture(t *testing.T) {
	b := newTestBoard(t)
	b.generate(100, 50)

	b.MouseDown(mouse(at(b, 1, 1), desktop.MouseButtonPrimary))
	b.Dragged(drag(at(b, 5, 5)))
	b.MouseOut()
	b.Dragged(drag(at(b, 9, 9)))

	b.MouseDown(mouse(at(b, 20, 20), desktop.MouseButtonPrimary))
	b.Dragged(drag(at(b, 25, 25)))
	b.DragEnd()
	b.MouseUp(mouse(at(b, 25, 25), desktop.MouseButtonPrimary))
	b.Dragged(drag(at(b, 30, 30)))

	d := b.Controller().Drawing()
	require.Len(t, d, 2)
	assert.Len(t, d[0].Points, 2)
	assert.Len(t, d[1].Points, 2)
}

func TestTouchDrivesController(t *testing.T) {
	b := newTestBoard(t)
	b.generate(100, 50)

	b.TouchDown(touch(at(b, 2, 2)))
	b.Dragged(drag(at(b, 8, 4)))
	b.TouchCancel(touch(at(b, 8, 4)))
	b.Dragged(drag(at(b, 9, 9)))

	b.TouchDown(touch(at(b, 30, 30)))
	b.TouchUp(touch(at(b, 30, 30)))

	d := b.Controller().Drawing()
	require.Len(t, d, 1, "a tap without movement leaves no stroke")
	assert.Equal(t, []state.Point{{X: 2, Y: 2}, {X: 8, Y: 4}}, d[0].Points)
}

func TestToolLabels(t *testing.T) {
	for _, tool := range []state.Tool{state.ToolBrush, state.ToolEraser} {
		got, err := toolForLabel(labelForTool(tool))
		require.NoError(t, err)
		assert.Equal(t, tool, got)
	}
}
