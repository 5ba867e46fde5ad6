package state

import (
	"bytes"
	"encoding/json"
	"fmt"

	"LessonBoard/internal/logging"
)

// Document is the persisted form of a Drawing.
type Document struct {
	Drawings Drawing `json:"drawings"`
}

// Serialize encodes the drawable strokes of d as a Document.
func Serialize(d Drawing) ([]byte, error) {
	data, err := json.Marshal(Document{Drawings: d.Drawable()})
	if err != nil {
		return nil, fmt.Errorf("encode drawing: %w", err)
	}
	return data, nil
}

type wirePoint struct {
	X *float64 `json:"x"`
	Y *float64 `json:"y"`
}

type wireStroke struct {
	Color     *string      `json:"color"`
	BrushSize *float64     `json:"brushSize"`
	Stroke    *float64     `json:"stroke"` // older files carried the width here
	Points    *[]wirePoint `json:"points"`
}

// Deserialize decodes a Document, or the older bare stroke array. Entries that
// cannot form a stroke are skipped; an error is returned only when the
// payload as a whole is not a stroke list.
func Deserialize(data []byte) (Drawing, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return Drawing{}, nil
	}

	var entries []json.RawMessage
	switch data[0] {
	case '[':
		if err := json.Unmarshal(data, &entries); err != nil {
			return nil, fmt.Errorf("decode stroke list: %w", err)
		}
	case '{':
		var doc struct {
			Drawings []json.RawMessage `json:"drawings"`
		}
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("decode drawing document: %w", err)
		}
		entries = doc.Drawings
	default:
		return nil, fmt.Errorf("decode drawing: unexpected %q", data[0])
	}

	d := make(Drawing, 0, len(entries))
	skipped := 0
	for _, raw := range entries {
		st, ok := decodeStroke(raw)
		if !ok {
			skipped++
			continue
		}
		d = append(d, st)
	}
	if skipped > 0 {
		logging.Logger().Warn("skipped malformed strokes", "skipped", skipped, "kept", len(d))
	}
	return d, nil
}

func decodeStroke(raw json.RawMessage) (Stroke, bool) {
	var w wireStroke
	if err := json.Unmarshal(raw, &w); err != nil {
		return Stroke{}, false
	}
	if w.Points == nil || len(*w.Points) < 2 {
		return Stroke{}, false
	}
	st := Stroke{Color: DefaultColor, BrushSize: DefaultBrushSize}
	st.Points = make([]Point, 0, len(*w.Points))
	for _, p := range *w.Points {
		if p.X == nil || p.Y == nil {
			return Stroke{}, false
		}
		st.Points = append(st.Points, Point{X: *p.X, Y: *p.Y})
	}
	if w.Color != nil {
		if _, err := ParseColor(*w.Color); err == nil {
			st.Color = *w.Color
		}
	}
	switch {
	case w.BrushSize != nil:
		st.BrushSize = *w.BrushSize
	case w.Stroke != nil:
		st.BrushSize = *w.Stroke
	}
	return st, true
}
