// Package render rasterizes drawings onto an in-memory pixel surface.
//
// Every stroke is painted segment by segment, each segment an independent
// round-capped line. Drawing the newest segment of the top stroke therefore
// performs exactly the operation a full redraw would perform last, and the
// two paths leave identical pixels.
package render

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/srwiley/rasterx"
	"golang.org/x/image/math/fixed"

	"LessonBoard/internal/logging"
	"LessonBoard/internal/state"
)

const minWidth = 1.0

// Surface is a resizable raster target.
type Surface struct {
	img        *image.RGBA
	background color.Color
	dasher     *rasterx.Dasher // segments
	filler     *rasterx.Filler // zero-length segments
}

// NewSurface allocates a w×h surface cleared to background.
func NewSurface(w, h int, background color.Color) *Surface {
	if background == nil {
		background = color.White
	}
	s := &Surface{background: background}
	s.allocate(w, h)
	return s
}

func (s *Surface) allocate(w, h int) {
	w, h = max(w, 0), max(h, 0)
	s.img = image.NewRGBA(image.Rect(0, 0, w, h))
	s.dasher, s.filler = nil, nil
	if w > 0 && h > 0 {
		scanner := rasterx.NewScannerGV(w, h, s.img, s.img.Bounds())
		s.dasher = rasterx.NewDasher(w, h, scanner)
		s.filler = rasterx.NewFiller(w, h, scanner)
	}
	s.clear()
}

// Image exposes the pixels. The returned image is replaced on Resize.
func (s *Surface) Image() *image.RGBA {
	return s.img
}

// Size returns the surface dimensions in pixels.
func (s *Surface) Size() (w, h int) {
	b := s.img.Bounds()
	return b.Dx(), b.Dy()
}

// Resize reallocates the surface and repaints d on it. Pixels never survive
// a dimension change.
func (s *Surface) Resize(w, h int, d state.Drawing) {
	s.allocate(w, h)
	s.FullRedraw(d)
}

func (s *Surface) clear() {
	draw.Draw(s.img, s.img.Bounds(), image.NewUniform(s.background), image.Point{}, draw.Src)
}

// FullRedraw clears the surface and paints every drawable stroke in order.
func (s *Surface) FullRedraw(d state.Drawing) {
	s.clear()
	for _, st := range d {
		if !st.Drawable() {
			continue
		}
		c := strokeColor(st.Color)
		for i := 1; i < len(st.Points); i++ {
			s.segment(c, st.BrushSize, st.Points[i-1], st.Points[i])
		}
	}
}

// Segment paints the single segment p0→p1 on top of the current pixels. Used
// while a brush stroke is being drawn.
func (s *Surface) Segment(col string, width float64, p0, p1 state.Point) {
	s.segment(strokeColor(col), width, p0, p1)
}

func (s *Surface) segment(c color.Color, width float64, p0, p1 state.Point) {
	if s.dasher == nil {
		return
	}
	width = max(width, minWidth)
	a, b := rasterx.ToFixedP(p0.X, p0.Y), rasterx.ToFixedP(p1.X, p1.Y)
	// Ends that meet in 26.6 fixed point give the stroker no direction.
	if a == b {
		s.filler.Clear()
		s.filler.Scanner.SetColor(c)
		rasterx.AddCircle(p0.X, p0.Y, width/2, s.filler)
		s.filler.Draw()
		return
	}
	s.dasher.Clear()
	s.dasher.SetStroke(fixed.Int26_6(width*64), 4*64,
		rasterx.RoundCap, rasterx.RoundCap, rasterx.RoundGap, rasterx.Round, nil, 0)
	s.dasher.Scanner.SetColor(c)
	s.dasher.Start(a)
	s.dasher.Line(b)
	s.dasher.Stop(false)
	s.dasher.Draw()
}

func strokeColor(s string) color.Color {
	c, err := state.ParseColor(s)
	if err != nil {
		logging.Logger().Debug("unparseable stroke color, painting black", "color", s)
		return color.Black
	}
	return c
}
