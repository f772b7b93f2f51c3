// Package leaflet models the subset of the Leaflet object model used by the map widget.
// Objects are built and mutated in Go, then serialized for the browser.
package leaflet

import (
	"errors"
	"html/template"
	"strings"
)

// LatLng is a geographic position in degrees.
type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Point is a pixel size or offset.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Icon describes a marker image. An empty ShadowURL means no shadow.
type Icon struct {
	IconURL     string `json:"iconUrl"`
	ShadowURL   string `json:"shadowUrl,omitempty"`
	IconSize    Point  `json:"iconSize"`
	IconAnchor  Point  `json:"iconAnchor"`
	PopupAnchor Point  `json:"popupAnchor"`
}

// Layer is anything that can be added to a Map.
type Layer interface {
	layer()
}

var (
	ErrNoTileTemplate = errors.New("tile url template is empty")
	ErrNoTileCoords   = errors.New("tile url template must contain {z}, {x} and {y}")
	ErrNoSubdomains   = errors.New("tile url template uses {s} but no subdomains are set")
	ErrInvalidMaxZoom = errors.New("tile layer max zoom must be positive")
	ErrNoAttribution  = errors.New("tile layer attribution is empty")
)

// TileLayer is the raster background of a map.
type TileLayer struct {
	URLTemplate string        `json:"url"`
	Subdomains  []string      `json:"subdomains,omitempty"`
	MaxZoom     int           `json:"maxZoom"`
	Attribution template.HTML `json:"attribution"`
}

func (*TileLayer) layer() {}

// Validate checks that the template can be expanded by the client library
// and that an attribution is set.
func (t *TileLayer) Validate() error {
	if t.URLTemplate == "" {
		return ErrNoTileTemplate
	}
	for _, p := range []string{"{z}", "{x}", "{y}"} {
		if !strings.Contains(t.URLTemplate, p) {
			return ErrNoTileCoords
		}
	}
	if strings.Contains(t.URLTemplate, "{s}") && len(t.Subdomains) == 0 {
		return ErrNoSubdomains
	}
	if t.MaxZoom <= 0 {
		return ErrInvalidMaxZoom
	}
	// the credit must be displayed with the map
	if strings.TrimSpace(string(t.Attribution)) == "" {
		return ErrNoAttribution
	}
	return nil
}

// Popup is an HTML overlay bound to a marker.
type Popup struct {
	Content string `json:"content"`
	Open    bool   `json:"open"`
}

// Marker is a pin at a fixed position.
type Marker struct {
	position LatLng
	icon     Icon
	popup    *Popup
	owner    *Map
}

func (*Marker) layer() {}

// NewMarker creates a marker that is not yet on any map.
func NewMarker(pos LatLng, icon Icon) *Marker {
	return &Marker{position: pos, icon: icon}
}

// Position returns the marker location.
func (m *Marker) Position() LatLng { return m.position }

// Icon returns the marker icon.
func (m *Marker) Icon() Icon { return m.icon }

// BindPopup attaches HTML content, replacing any previous popup.
func (m *Marker) BindPopup(content string) *Marker {
	if m.popup != nil && m.owner != nil && m.owner.open == m.popup {
		m.owner.open = nil
	}
	m.popup = &Popup{Content: content}
	return m
}

// Popup returns the bound popup or nil.
func (m *Marker) Popup() *Popup { return m.popup }

// OpenPopup opens the bound popup on the owning map, closing whichever popup
// was open before. It does nothing for a marker without a popup or map.
func (m *Marker) OpenPopup() *Marker {
	if m.popup == nil || m.owner == nil {
		return m
	}
	m.owner.openPopup(m.popup)
	return m
}

// Map is a map view bound to a page container.
type Map struct {
	containerID string
	center      LatLng
	zoom        int
	layers      []Layer
	open        *Popup
}

// NewMap creates a map bound to the given container id.
func NewMap(containerID string) *Map {
	return &Map{containerID: containerID}
}

// ContainerID returns the id of the page element that hosts the map.
func (m *Map) ContainerID() string { return m.containerID }

// Center returns the current view center.
func (m *Map) Center() LatLng { return m.center }

// Zoom returns the current zoom level.
func (m *Map) Zoom() int { return m.zoom }

// SetView sets center and zoom.
func (m *Map) SetView(center LatLng, zoom int) *Map {
	m.center = center
	m.zoom = zoom
	return m
}

// PanTo moves the center without changing zoom.
func (m *Map) PanTo(center LatLng) *Map {
	m.center = center
	return m
}

// AddLayer appends a layer. Adding a layer that is already present is a no-op.
func (m *Map) AddLayer(l Layer) *Map {
	if m.HasLayer(l) {
		return m
	}
	if mk, ok := l.(*Marker); ok {
		mk.owner = m
	}
	m.layers = append(m.layers, l)
	return m
}

// HasLayer reports whether l was added to the map.
func (m *Map) HasLayer(l Layer) bool {
	for _, have := range m.layers {
		if have == l {
			return true
		}
	}
	return false
}

// Layers returns the layers in insertion order.
func (m *Map) Layers() []Layer {
	out := make([]Layer, len(m.layers))
	copy(out, m.layers)
	return out
}

// ActivePopup returns the popup currently open on the map, if any.
func (m *Map) ActivePopup() *Popup { return m.open }

func (m *Map) openPopup(p *Popup) {
	if m.open != nil && m.open != p {
		m.open.Open = false
	}
	p.Open = true
	m.open = p
}
