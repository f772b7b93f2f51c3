package geo

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGeometry_LatLon(t *testing.T) {
	lat, lon, err := NewPoint(51.5, -0.12).LatLon()
	require.NoError(t, err)
	assert.Equal(t, 51.5, lat)
	assert.Equal(t, -0.12, lon)

	var nilGeom *GeoJSONGeometry
	_, _, err = nilGeom.LatLon()
	assert.ErrorIs(t, err, ErrNotPoint)

	tests := []struct {
		name string
		geom GeoJSONGeometry
	}{
		{name: "line string", geom: GeoJSONGeometry{Type: "LineString", Coordinates: json.RawMessage(`[[1, 2], [3, 4]]`)}},
		{name: "polygon", geom: GeoJSONGeometry{Type: "Polygon", Coordinates: json.RawMessage(`[[[0, 0], [1, 0], [1, 1], [0, 0]]]`)}},
		{name: "short point", geom: GeoJSONGeometry{Type: "Point", Coordinates: json.RawMessage(`[1]`)}},
		{name: "nested point", geom: GeoJSONGeometry{Type: "Point", Coordinates: json.RawMessage(`[[1, 2]]`)}},
		{name: "missing coordinates", geom: GeoJSONGeometry{Type: "Point"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := tt.geom.LatLon()
			assert.ErrorIs(t, err, ErrNotPoint)
		})
	}
}

func TestFeatureCollection_Decode(t *testing.T) {
	data := `{
		"type": "FeatureCollection",
		"features": [
			{"type": "Feature", "geometry": {"type": "Point", "coordinates": [-0.12, 51.5]}, "properties": {"name": "A", "rank": 3}},
			{"type": "Feature", "geometry": null, "properties": {"name": "B"}},
			{"type": "Feature", "geometry": {"type": "MultiPolygon", "coordinates": [[[[0, 0], [1, 0], [1, 1], [0, 0]]]]}, "properties": {"name": "C"}}
		]
	}`

	var fc GeoJSONFeatureCollection
	require.NoError(t, json.Unmarshal([]byte(data), &fc))
	require.Len(t, fc.Features, 3)

	assert.Equal(t, "A", fc.Features[0].StringProperty("name"))
	assert.Equal(t, "", fc.Features[0].StringProperty("rank"))
	assert.Equal(t, "", fc.Features[0].StringProperty("missing"))
	assert.Nil(t, fc.Features[1].Geometry)
	require.NotNil(t, fc.Features[2].Geometry)
	assert.Equal(t, "MultiPolygon", fc.Features[2].Geometry.Type)
}
