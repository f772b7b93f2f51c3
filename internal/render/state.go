package render

import (
	"html/template"

	"github.com/woozymasta/pinmap/internal/leaflet"
	"github.com/woozymasta/pinmap/internal/widget"

	"github.com/samber/lo"
)

// State is the widget snapshot handed to the client script.
// Map is nil for an uninitialized widget.
type State struct {
	Map     *MapState     `json:"map"`
	Markers []MarkerState `json:"markers"`
}

// MapState describes the map view.
type MapState struct {
	Container string            `json:"container"`
	Center    leaflet.LatLng    `json:"center"`
	Zoom      int               `json:"zoom"`
	Tiles     leaflet.TileLayer `json:"tiles"`
	Icon      leaflet.Icon      `json:"icon"`
}

// MarkerState describes one placed marker under its record index.
type MarkerState struct {
	Index    int            `json:"index"`
	Position leaflet.LatLng `json:"position"`
	Popup    string         `json:"popup"`
	Open     bool           `json:"open"`
}

// RecordState is a record as listed next to the map.
type RecordState struct {
	Index     int          `json:"index"`
	Latitude  *float64     `json:"lat"`
	Longitude *float64     `json:"long"`
	Name      string       `json:"name"`
	Address   string       `json:"address"`
	Param     string       `json:"param"`
	Href      template.URL `json:"href"`
	Placeable bool         `json:"placeable"`
}

// NewState snapshots the widget.
func NewState(w *widget.Widget) State {
	st := State{Markers: []MarkerState{}}

	m := w.Map()
	if m == nil {
		return st
	}

	st.Map = &MapState{
		Container: m.ContainerID(),
		Center:    m.Center(),
		Zoom:      m.Zoom(),
		Tiles:     *w.TileLayer(),
		Icon:      w.Icon(),
	}

	for _, i := range w.Indexes() {
		marker, _ := w.Marker(i)
		ms := MarkerState{Index: i, Position: marker.Position()}
		if p := marker.Popup(); p != nil {
			ms.Popup = p.Content
			ms.Open = p.Open
		}
		st.Markers = append(st.Markers, ms)
	}

	return st
}

// NewRecords lists the widget records in order. Placeable is true only for
// records that got a marker, so an uninitialized widget lists none as placeable.
func NewRecords(w *widget.Widget) []RecordState {
	return lo.Map(w.Records(), func(r widget.Record, i int) RecordState {
		_, placed := w.Marker(i)
		return RecordState{
			Index:     i,
			Latitude:  r.Latitude,
			Longitude: r.Longitude,
			Name:      r.Name,
			Address:   r.Address,
			Param:     r.Param,
			Href:      template.URL("?" + r.Param),
			Placeable: placed,
		}
	})
}
