package state

import (
	"slices"
	"sync"

	"LessonBoard/internal/logging"
)

// Store owns the authoritative Drawing of one surface.
//
// Snapshots handed out by Drawing have clipped point slices, so the store may
// keep appending to the open stroke without readers ever observing the new
// points through an old snapshot.
type Store struct {
	mu      sync.RWMutex
	strokes Drawing
	open    bool // the last stroke is still receiving points
}

// NewStore creates a store hydrated with d. Strokes without two points are
// dropped.
func NewStore(d Drawing) *Store {
	s := &Store{}
	s.strokes = adopt(d)
	return s
}

func adopt(d Drawing) Drawing {
	out := make(Drawing, 0, len(d))
	for _, st := range d {
		if !st.Drawable() {
			continue
		}
		st.Points = slices.Clone(st.Points)
		out = append(out, st)
	}
	return out
}

// Drawing returns the committed state, open stroke included.
func (s *Store) Drawing() Drawing {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(Drawing, len(s.strokes))
	for i, st := range s.strokes {
		st.Points = slices.Clip(st.Points)
		out[i] = st
	}
	return out
}

// Persistable returns the strokes that may be saved or rendered.
func (s *Store) Persistable() Drawing {
	return s.Drawing().Drawable()
}

// Len is the number of strokes, the open one included.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.strokes)
}

// BeginStroke appends a new single-point stroke and makes it the open one.
// A still-open stroke is closed first.
func (s *Store) BeginStroke(color string, brushSize float64, p Point) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closeLocked()
	s.strokes = append(s.strokes, Stroke{Color: color, BrushSize: brushSize, Points: []Point{p}})
	s.open = true
}

// AppendPoint extends the open stroke with p and returns the stroke's previous
// tail point together with the updated stroke. ok is false when no stroke is
// open.
func (s *Store) AppendPoint(p Point) (prev Point, st Stroke, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.open || len(s.strokes) == 0 {
		return Point{}, Stroke{}, false
	}
	last := &s.strokes[len(s.strokes)-1]
	prev = last.Points[len(last.Points)-1]
	last.Points = append(last.Points, p)
	st = *last
	st.Points = slices.Clip(st.Points)
	return prev, st, true
}

// EndStroke closes the open stroke. A stroke that never got a second point
// is removed. It reports whether a stroke was removed; calling it with no open
// stroke does nothing.
func (s *Store) EndStroke() (dropped bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closeLocked()
}

func (s *Store) closeLocked() bool {
	if !s.open {
		return false
	}
	s.open = false
	n := len(s.strokes)
	if n > 0 && !s.strokes[n-1].Drawable() {
		s.strokes = s.strokes[:n-1]
		logging.Logger().Debug("dropped single-point stroke")
		return true
	}
	return false
}

// Replace commits d as the whole drawing. Any open stroke is closed.
func (s *Store) Replace(d Drawing) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.strokes = adopt(d)
	s.open = false
}

// Clear empties the drawing.
func (s *Store) Clear() {
	s.Replace(nil)
}
