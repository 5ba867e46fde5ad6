package state

import "slices"

// Erase returns a new Drawing where every point within radius of center has
// been removed from every stroke. The remaining points of a stroke are split
// into maximal runs lying outside the disc; runs of two or more points
// become strokes with the original colour and width, shorter runs vanish.
//
// Only the disc at center is tested. Segments crossed between two eraser
// samples survive when none of their points fall inside either disc.
func Erase(d Drawing, center Point, radius float64) Drawing {
	out := make(Drawing, 0, len(d))
	for _, st := range d {
		out = eraseStroke(out, st, center, radius)
	}
	return out
}

func eraseStroke(out Drawing, st Stroke, center Point, radius float64) Drawing {
	if !st.Drawable() {
		return out
	}
	if box, _ := BoundsOf(st.Points); box.DistanceTo(center) > radius {
		st.Points = slices.Clone(st.Points)
		return append(out, st)
	}

	start := -1
	flush := func(end int) {
		if start >= 0 && end-start >= 2 {
			out = append(out, Stroke{
				Color:     st.Color,
				BrushSize: st.BrushSize,
				Points:    slices.Clone(st.Points[start:end]),
			})
		}
		start = -1
	}
	for i, p := range st.Points {
		if Distance(p, center) <= radius {
			flush(i)
			continue
		}
		if start < 0 {
			start = i
		}
	}
	flush(len(st.Points))
	return out
}
