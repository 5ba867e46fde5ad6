package state

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSerializeRoundTrip(t *testing.T) {
	d := Drawing{
		{Color: "#FF0000", BrushSize: 2, Points: []Point{{0, 0}, {1.5, 2.25}, {3, -4}}},
		{Color: "#00ff00", BrushSize: 7.5, Points: []Point{{10, 10}}},
		{Color: "#0000FF", BrushSize: 1, Points: []Point{{-1, -1}, {5, 5}}},
	}
	data, err := Serialize(d)
	require.NoError(t, err)

	got, err := Deserialize(data)
	require.NoError(t, err)
	if diff := cmp.Diff(d.Drawable(), got); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestRoundTripKeepsNamesAndWidths(t *testing.T) {
	d := Drawing{
		{Color: "red", BrushSize: 0, Points: []Point{{0, 0}, {1, 1}}},
		{Color: "#abc", BrushSize: -2, Points: []Point{{0, 0}, {1, 1}}},
	}
	data, err := Serialize(d)
	require.NoError(t, err)
	got, err := Deserialize(data)
	require.NoError(t, err)
	if diff := cmp.Diff(d, got); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestSerializeEmpty(t *testing.T) {
	data, err := Serialize(nil)
	require.NoError(t, err)
	assert.JSONEq(t, `{"drawings":[]}`, string(data))
}

func TestSerializeShape(t *testing.T) {
	data, err := Serialize(Drawing{{Color: "#123456", BrushSize: 3, Points: []Point{{1, 2}, {3, 4}}}})
	require.NoError(t, err)
	assert.JSONEq(t, `{"drawings":[{"color":"#123456","brushSize":3,"points":[{"x":1,"y":2},{"x":3,"y":4}]}]}`, string(data))
}

func TestDeserializeDropsMalformed(t *testing.T) {
	in := `{"drawings":[
		{"color":"#000000","brushSize":2,"points":[{"x":0,"y":0},{"x":5,"y":5}]},
		{"color":"#FF0000","brushSize":2,"points":[{"x":0,"y":0}]},
		{"color":"#FF0000","brushSize":2},
		{"color":"#FF0000","brushSize":2,"points":[{"x":0},{"x":1,"y":1}]},
		{"color":"#FF0000","brushSize":2,"points":"nope"},
		42
	]}`
	got, err := Deserialize([]byte(in))
	require.NoError(t, err)
	want := Drawing{{Color: "#000000", BrushSize: 2, Points: []Point{{0, 0}, {5, 5}}}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Deserialize() mismatch (-want +got):\n%s", diff)
	}
}

func TestDeserializeLegacyArray(t *testing.T) {
	in := `[{"id":"a","owner_id":"host","color":"red","stroke":4,"points":[{"X":1,"Y":2},{"x":3,"y":4}]},
		{"color":"blue","stroke":2,"points":[{"x":1,"y":2},{"x":3,"y":4}]}]`
	got, err := Deserialize([]byte(in))
	require.NoError(t, err)
	want := Drawing{
		{Color: "red", BrushSize: 4, Points: []Point{{1, 2}, {3, 4}}},
		{Color: "blue", BrushSize: 2, Points: []Point{{1, 2}, {3, 4}}},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Deserialize() mismatch (-want +got):\n%s", diff)
	}
}

func TestDeserializeDefaults(t *testing.T) {
	got, err := Deserialize([]byte(`{"drawings":[{"color":"not-a-color","points":[{"x":0,"y":0},{"x":1,"y":1}]}]}`))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, DefaultColor, got[0].Color)
	assert.Equal(t, DefaultBrushSize, got[0].BrushSize)
}

func TestDeserializeEmptyAndInvalid(t *testing.T) {
	got, err := Deserialize([]byte("  "))
	require.NoError(t, err)
	assert.Empty(t, got)

	got, err = Deserialize([]byte(`{}`))
	require.NoError(t, err)
	assert.Empty(t, got)

	_, err = Deserialize([]byte(`"drawings"`))
	assert.Error(t, err)

	_, err = Deserialize([]byte(`{"drawings":`))
	assert.Error(t, err)
}
