package render

import (
	"encoding/json"
	"html/template"
	"testing"

	"github.com/woozymasta/pinmap/internal/leaflet"
	"github.com/woozymasta/pinmap/internal/widget"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scenarioWidget(t *testing.T) *widget.Widget {
	t.Helper()
	w := widget.New([]widget.Record{
		{Latitude: widget.Coord(51.5), Longitude: widget.Coord(-0.12), Name: "A", Address: "1 Road", Param: "id=1"},
		{Name: "B", Address: "2 Road", Param: "id=2"},
		{Latitude: widget.Coord(51.51), Longitude: widget.Coord(-0.13), Name: "C & D", Address: "3 Road", Param: "id=3"},
	}, widget.WithLogger(zerolog.Nop()))
	require.True(t, w.Initialize("map", 51.5, -0.12))
	return w
}

func TestNewState(t *testing.T) {
	w := scenarioWidget(t)
	w.ShowMarker(2)

	st := NewState(w)

	require.NotNil(t, st.Map)
	assert.Equal(t, "map", st.Map.Container)
	assert.Equal(t, leaflet.LatLng{Lat: 51.51, Lng: -0.13}, st.Map.Center)
	assert.Equal(t, widget.DefaultZoom, st.Map.Zoom)
	assert.Equal(t, widget.DefaultTileLayer(), st.Map.Tiles)
	assert.Equal(t, widget.DefaultIcon(), st.Map.Icon)

	assert.Equal(t, []MarkerState{
		{Index: 0, Position: leaflet.LatLng{Lat: 51.5, Lng: -0.12}, Popup: `<a href="?id=1">A</a><br />1 Road`},
		{Index: 2, Position: leaflet.LatLng{Lat: 51.51, Lng: -0.13}, Popup: `<a href="?id=3">C & D</a><br />3 Road`, Open: true},
	}, st.Markers)
}

func TestNewState_Uninitialized(t *testing.T) {
	w := widget.New([]widget.Record{{Latitude: widget.Coord(1), Longitude: widget.Coord(1), Name: "A"}},
		widget.WithLogger(zerolog.Nop()))

	st := NewState(w)
	assert.Nil(t, st.Map)
	assert.Empty(t, st.Markers)

	data, err := json.Marshal(st)
	require.NoError(t, err)
	assert.JSONEq(t, `{"map": null, "markers": []}`, string(data))

	records := NewRecords(w)
	require.Len(t, records, 1)
	assert.False(t, records[0].Placeable)
}

func TestNewRecords(t *testing.T) {
	records := NewRecords(scenarioWidget(t))

	require.Len(t, records, 3)
	assert.Equal(t, 0, records[0].Index)
	assert.True(t, records[0].Placeable)
	assert.Equal(t, template.URL("?id=1"), records[0].Href)

	assert.Equal(t, 1, records[1].Index)
	assert.False(t, records[1].Placeable)
	assert.Nil(t, records[1].Latitude)

	assert.Equal(t, 2, records[2].Index)
	assert.True(t, records[2].Placeable)
}

func TestStateJSON(t *testing.T) {
	st := NewState(scenarioWidget(t))

	data, err := json.Marshal(st)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))

	m := decoded["map"].(map[string]any)
	tiles := m["tiles"].(map[string]any)
	assert.Equal(t, widget.DefaultTileURL, tiles["url"])
	assert.Equal(t, float64(18), tiles["maxZoom"])
	assert.Equal(t, widget.DefaultAttribution, tiles["attribution"])

	icon := m["icon"].(map[string]any)
	assert.NotContains(t, icon, "shadowUrl")
	assert.Equal(t, map[string]any{"x": float64(15), "y": float64(32)}, icon["iconAnchor"])
	assert.Equal(t, map[string]any{"x": float64(0), "y": float64(-40)}, icon["popupAnchor"])
}

func TestRenderer_Page(t *testing.T) {
	r, err := New(Options{Title: "Shops"})
	require.NoError(t, err)

	page, err := r.Page(scenarioWidget(t))
	require.NoError(t, err)

	html := string(page)
	assert.Contains(t, html, "<title>Shops</title>")
	assert.Contains(t, html, `<div id="map" class="pinmap-map"></div>`)
	assert.Contains(t, html, `<a href="?id=1" onclick="return pinmap.showMarker(`)
	assert.Contains(t, html, `)">A</a>`)
	assert.Contains(t, html, `<span>B</span>`)
	assert.Contains(t, html, `C &amp; D`)
	assert.Contains(t, html, DefaultLeafletJS)
	assert.Contains(t, html, DefaultLeafletCSS)
	assert.Contains(t, html, "pinmap.start(")
	assert.Contains(t, html, "function showMarker(i)")
}

func TestRenderer_PageUnconfigured(t *testing.T) {
	r, err := New(Options{})
	require.NoError(t, err)

	w := widget.New([]widget.Record{{Name: "A", Param: "id=1"}}, widget.WithLogger(zerolog.Nop()))
	w.Initialize("", 0, 0)

	page, err := r.Page(w)
	require.NoError(t, err)

	html := string(page)
	assert.Contains(t, html, "<title>Map</title>")
	assert.NotContains(t, html, "pinmap-map\"")
	assert.Contains(t, html, `<span>A</span>`)
}

func TestRenderer_Minify(t *testing.T) {
	plain, err := New(Options{})
	require.NoError(t, err)
	minified, err := New(Options{Minify: true})
	require.NoError(t, err)

	w := scenarioWidget(t)

	full, err := plain.Page(w)
	require.NoError(t, err)
	small, err := minified.Page(w)
	require.NoError(t, err)

	assert.Less(t, len(small), len(full))
	assert.Contains(t, string(small), "pinmap.start(")
	assert.Contains(t, string(small), "showMarker")

	assert.NotEmpty(t, minified.Favicon())
	assert.LessOrEqual(t, len(minified.Favicon()), len(plain.Favicon()))
}
