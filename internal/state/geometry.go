package state

import "math"

// Distance is the Euclidean distance between a and b. Every radius test in
// the board goes through it.
func Distance(a, b Point) float64 {
	return math.Hypot(a.X-b.X, a.Y-b.Y)
}

// Rect is an axis-aligned box in surface coordinates.
type Rect struct {
	Min, Max Point
}

// BoundsOf returns the smallest Rect containing every point. ok is false for
// an empty slice.
func BoundsOf(points []Point) (r Rect, ok bool) {
	if len(points) == 0 {
		return Rect{}, false
	}
	r = Rect{Min: points[0], Max: points[0]}
	for _, p := range points[1:] {
		r.Min.X = math.Min(r.Min.X, p.X)
		r.Min.Y = math.Min(r.Min.Y, p.Y)
		r.Max.X = math.Max(r.Max.X, p.X)
		r.Max.Y = math.Max(r.Max.Y, p.Y)
	}
	return r, true
}

// DistanceTo is the distance from p to the closest point of r, zero when p is
// inside.
func (r Rect) DistanceTo(p Point) float64 {
	closest := Point{
		X: math.Max(r.Min.X, math.Min(p.X, r.Max.X)),
		Y: math.Max(r.Min.Y, math.Min(p.Y, r.Max.Y)),
	}
	return Distance(p, closest)
}
