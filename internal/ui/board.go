package ui

import (
	"image"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/driver/mobile"
	"fyne.io/fyne/v2/widget"

	"LessonBoard/internal/input"
	"LessonBoard/internal/state"
)

// BoardWidget shows a lesson surface and forwards mouse and touch input to
// its controller.
type BoardWidget struct {
	widget.BaseWidget
	ctrl       *input.Controller
	raster     *canvas.Raster
	statusBar  *widget.Label
	repaint    func()
	generating bool
}

var _ fyne.Widget = (*BoardWidget)(nil)
var _ fyne.Draggable = (*BoardWidget)(nil)
var _ desktop.Mouseable = (*BoardWidget)(nil)
var _ desktop.Hoverable = (*BoardWidget)(nil)
var _ mobile.Touchable = (*BoardWidget)(nil)

func NewBoardWidget(ctrl *input.Controller) *BoardWidget {
	b := &BoardWidget{
		ctrl:      ctrl,
		statusBar: widget.NewLabel("Ready"),
	}
	b.raster = canvas.NewRaster(b.generate)
	b.raster.SetMinSize(fyne.NewSize(300, 300))
	b.repaint = b.raster.Refresh
	ctrl.OnChange = b.refreshSurface
	b.ExtendBaseWidget(b)
	return b
}

func (b *BoardWidget) Controller() *input.Controller { return b.ctrl }

// StatusBar is the label the board reports to.
func (b *BoardWidget) StatusBar() *widget.Label { return b.statusBar }

// SetStatus may be called from any goroutine.
func (b *BoardWidget) SetStatus(text string) {
	fyne.Do(func() {
		b.statusBar.SetText(text)
	})
}

func (b *BoardWidget) refreshSurface() {
	if b.generating {
		return
	}
	b.repaint()
}

// generate is the resize hook: the raster asks for w×h device pixels and a
// size change repaints the whole drawing at the new size.
func (b *BoardWidget) generate(w, h int) image.Image {
	if logical := b.Size().Width; logical > 0 && w > 0 {
		b.ctrl.SetPixelRatio(float64(w) / float64(logical))
	}
	if sw, sh := b.ctrl.Surface().Size(); sw != w || sh != h {
		b.generating = true
		b.ctrl.Resize(w, h)
		b.generating = false
	}
	return b.ctrl.Surface().Image()
}

func (b *BoardWidget) bounds() input.Bounds {
	origin := fyne.NewPos(0, 0)
	if app := fyne.CurrentApp(); app != nil {
		origin = app.Driver().AbsolutePositionForObject(b)
	}
	size := b.Size()
	return input.Bounds{
		X:      float64(origin.X),
		Y:      float64(origin.Y),
		Width:  float64(size.Width),
		Height: float64(size.Height),
	}
}

// locate maps a client-space event into surface pixels.
func (b *BoardWidget) locate(ev input.Event) state.Point {
	return input.PointFromEvent(ev, b.bounds(), b.ctrl.PixelRatio())
}

func pointerEvent(abs fyne.Position) input.Event {
	return input.Event{ClientX: float64(abs.X), ClientY: float64(abs.Y)}
}

func touchEvent(abs fyne.Position) input.Event {
	return input.Event{Touches: []input.Touch{{ClientX: float64(abs.X), ClientY: float64(abs.Y)}}}
}

func (b *BoardWidget) MouseDown(e *desktop.MouseEvent) {
	if e.Button != desktop.MouseButtonPrimary {
		return
	}
	b.ctrl.PointerDown(b.locate(pointerEvent(e.AbsolutePosition)))
}

func (b *BoardWidget) MouseUp(e *desktop.MouseEvent) {
	if e.Button == desktop.MouseButtonPrimary {
		b.ctrl.PointerUp()
	}
}

func (b *BoardWidget) Dragged(e *fyne.DragEvent) {
	b.ctrl.PointerMove(b.locate(pointerEvent(e.AbsolutePosition)))
}

func (b *BoardWidget) DragEnd() { b.ctrl.PointerUp() }

func (b *BoardWidget) MouseIn(*desktop.MouseEvent)    {}
func (b *BoardWidget) MouseMoved(*desktop.MouseEvent) {}

// MouseOut ends capture when the pointer leaves the surface.
func (b *BoardWidget) MouseOut() { b.ctrl.PointerUp() }

func (b *BoardWidget) TouchDown(e *mobile.TouchEvent) {
	b.ctrl.PointerDown(b.locate(touchEvent(e.AbsolutePosition)))
}

func (b *BoardWidget) TouchUp(*mobile.TouchEvent)     { b.ctrl.PointerUp() }
func (b *BoardWidget) TouchCancel(*mobile.TouchEvent) { b.ctrl.PointerCancel() }

func (b *BoardWidget) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(b.raster)
}
