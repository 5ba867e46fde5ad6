// Package input turns pointer and touch input into drawing mutations.
package input

import "LessonBoard/internal/state"

// Touch is one contact point of a touch event in client coordinates.
type Touch struct {
	ClientX, ClientY float64
}

// Event is a pointer or touch event in client (window) coordinates. Touch
// events carry their contacts in Touches; pointer events leave it empty.
type Event struct {
	ClientX, ClientY float64
	Touches          []Touch
}

// Bounds is the surface rectangle in client coordinates.
type Bounds struct {
	X, Y, Width, Height float64
}

// PointFromEvent maps ev into surface pixels: the surface origin is
// subtracted and the result scaled by ratio, the device pixel ratio. With
// several touches the first one is used.
func PointFromEvent(ev Event, b Bounds, ratio float64) state.Point {
	x, y := ev.ClientX, ev.ClientY
	if len(ev.Touches) > 0 {
		x, y = ev.Touches[0].ClientX, ev.Touches[0].ClientY
	}
	if ratio <= 0 {
		ratio = 1
	}
	return state.Point{X: (x - b.X) * ratio, Y: (y - b.Y) * ratio}
}
