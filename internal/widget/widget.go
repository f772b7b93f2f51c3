// Package widget implements the map widget: one map view, one tile layer and
// a marker with popup for every placeable point record.
package widget

import (
	"fmt"
	"sort"

	"github.com/woozymasta/pinmap/internal/leaflet"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
)

// Defaults for the map view, the background layer and the marker icon.
const (
	DefaultZoom        = 13
	DefaultTileURL     = "http://{s}.mqcdn.com/tiles/1.0.0/osm/{z}/{x}/{y}.png"
	DefaultMaxZoom     = 18
	DefaultAttribution = `Data, imagery and map information provided by <a href="http://open.mapquest.co.uk" target="_blank">MapQuest</a>, <a href="http://www.openstreetmap.org/" target="_blank">OpenStreetMap</a> and contributors, <a href="http://creativecommons.org/licenses/by-sa/2.0/" target="_blank">CC-BY-SA</a>`
	DefaultIconURL     = "http://maps.google.com/mapfiles/ms/micons/red-dot.png"
)

// DefaultSubdomains are the tile host aliases used to spread tile requests.
var DefaultSubdomains = []string{"otile1", "otile2", "otile3", "otile4"}

// DefaultTileLayer returns the background layer used when none is configured.
func DefaultTileLayer() leaflet.TileLayer {
	return leaflet.TileLayer{
		URLTemplate: DefaultTileURL,
		Subdomains:  append([]string(nil), DefaultSubdomains...),
		MaxZoom:     DefaultMaxZoom,
		Attribution: DefaultAttribution,
	}
}

// DefaultIcon returns the marker icon used when none is configured.
// The anchor puts the bottom centre of the image on the position.
func DefaultIcon() leaflet.Icon {
	return leaflet.Icon{
		IconURL:     DefaultIconURL,
		IconSize:    leaflet.Point{X: 32, Y: 32},
		IconAnchor:  leaflet.Point{X: 15, Y: 32},
		PopupAnchor: leaflet.Point{X: 0, Y: -40},
	}
}

// Option customises a Widget.
type Option func(*Widget)

// WithTileLayer replaces the background layer settings.
func WithTileLayer(t leaflet.TileLayer) Option {
	return func(w *Widget) { w.tileSettings = t }
}

// WithIcon replaces the marker icon.
func WithIcon(i leaflet.Icon) Option {
	return func(w *Widget) { w.icon = i }
}

// WithZoom replaces the initial zoom level. Non-positive values are ignored.
func WithZoom(z int) Option {
	return func(w *Widget) {
		if z > 0 {
			w.zoom = z
		}
	}
}

// WithLogger sets the logger used for diagnostics.
func WithLogger(l zerolog.Logger) Option {
	return func(w *Widget) { w.log = l }
}

// Widget holds the state of one map on one page.
// It is not safe for concurrent use.
type Widget struct {
	records      []Record
	tileSettings leaflet.TileLayer
	icon         leaflet.Icon
	zoom         int
	log          zerolog.Logger

	m         *leaflet.Map
	tiles     *leaflet.TileLayer
	markers   map[int]*leaflet.Marker
	positions map[int]leaflet.LatLng
}

// New creates an uninitialized widget over the given records.
// Record indexes are positions in this slice.
func New(records []Record, opts ...Option) *Widget {
	w := &Widget{
		records:      records,
		tileSettings: DefaultTileLayer(),
		icon:         DefaultIcon(),
		zoom:         DefaultZoom,
		log:          log.Logger,
		markers:      make(map[int]*leaflet.Marker),
		positions:    make(map[int]leaflet.LatLng),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Initialize builds the map view in containerID centred on the given
// coordinate and places markers for every placeable record.
// Empty container id or a zero coordinate leaves the widget unconfigured
// and returns false. Once a map exists further calls return true and change nothing.
func (w *Widget) Initialize(containerID string, centerLat, centerLng float64) bool {
	if w.m != nil {
		return true
	}
	if containerID == "" || centerLat == 0 || centerLng == 0 {
		w.log.Debug().
			Str("container", containerID).
			Float64("lat", centerLat).
			Float64("lng", centerLng).
			Msg("Map not configured, skipping initialization")
		return false
	}

	tiles := w.tileSettings
	w.tiles = &tiles
	w.m = leaflet.NewMap(containerID)
	w.m.SetView(leaflet.LatLng{Lat: centerLat, Lng: centerLng}, w.zoom).AddLayer(w.tiles)

	w.addMarkers()

	w.log.Debug().
		Str("container", containerID).
		Int("records", len(w.records)).
		Int("markers", len(w.markers)).
		Msg("Map initialized")

	return true
}

func (w *Widget) addMarkers() {
	for i, r := range w.records {
		if IsPlaceable(r) {
			w.AddMarker(i, r)
		}
	}
}

// AddMarker places a marker for r and stores it under index i.
// Unplaceable records and an uninitialized widget are ignored.
func (w *Widget) AddMarker(i int, r Record) {
	// Checked by addMarkers as well; callers outside the package may not.
	if !IsPlaceable(r) || w.m == nil {
		return
	}

	pos := leaflet.LatLng{Lat: *r.Latitude, Lng: *r.Longitude}

	marker := leaflet.NewMarker(pos, w.icon)
	w.m.AddLayer(marker)
	marker.BindPopup(PopupContent(r))

	w.markers[i] = marker
	w.positions[i] = pos
}

// ShowMarker opens the popup of the marker at index i and pans the map to it.
// An index without a marker is ignored. The result is always true: the
// triggering UI event has been handled and must not navigate.
func (w *Widget) ShowMarker(i int) bool {
	marker, ok := w.markers[i]
	if !ok {
		w.log.Debug().Int("index", i).Msg("No marker at index, ignoring show request")
		return true
	}

	marker.OpenPopup()
	w.m.PanTo(w.positions[i])
	return true
}

// PopupContent composes the popup HTML for a record. Name and address are
// inserted as given; escaping is up to whoever produced the record.
func PopupContent(r Record) string {
	return fmt.Sprintf(`<a href="?%s">%s</a><br />%s`, r.Param, r.Name, r.Address)
}

// Initialized reports whether Initialize built a map.
func (w *Widget) Initialized() bool { return w.m != nil }

// Map returns the map view or nil before initialization.
func (w *Widget) Map() *leaflet.Map { return w.m }

// TileLayer returns the background layer or nil before initialization.
func (w *Widget) TileLayer() *leaflet.TileLayer { return w.tiles }

// Icon returns the marker icon.
func (w *Widget) Icon() leaflet.Icon { return w.icon }

// Records returns the records the widget was built from.
func (w *Widget) Records() []Record { return w.records }

// Marker returns the marker stored at index i.
func (w *Widget) Marker(i int) (*leaflet.Marker, bool) {
	m, ok := w.markers[i]
	return m, ok
}

// Position returns the position stored at index i.
func (w *Widget) Position(i int) (leaflet.LatLng, bool) {
	p, ok := w.positions[i]
	return p, ok
}

// Indexes returns the record indexes that hold a marker, ascending.
func (w *Widget) Indexes() []int {
	out := lo.Keys(w.markers)
	sort.Ints(out)
	return out
}

// IndexByParam finds the first record whose Param equals param.
// This resolves the "?param" link in a popup back to its record.
func (w *Widget) IndexByParam(param string) (int, bool) {
	if param == "" {
		return -1, false
	}
	_, i, ok := lo.FindIndexOf(w.records, func(r Record) bool { return r.Param == param })
	return i, ok
}
