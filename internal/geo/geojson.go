// Package geo handles GeoJSON structures for point records.
package geo

import (
	"encoding/json"
	"errors"
)

// ErrNotPoint is returned for a geometry that is not a two-dimensional point.
var ErrNotPoint = errors.New("geometry is not a point")

// GeoJSONFeatureCollection represents a collection of geographic features.
// It follows the standard GeoJSON structure.
type GeoJSONFeatureCollection struct {
	Type     string           `json:"type" yaml:"type"`
	Features []GeoJSONFeature `json:"features" yaml:"features"`
}

// GeoJSONFeature represents a single geographic feature with geometry and properties.
// A nil Geometry is the GeoJSON "unlocated" feature.
type GeoJSONFeature struct {
	Properties map[string]interface{} `json:"properties" yaml:"properties"`
	Type       string                 `json:"type" yaml:"type"`
	Geometry   *GeoJSONGeometry       `json:"geometry" yaml:"geometry"`
}

// GeoJSONGeometry represents the geometry of a feature (Point, Polygon, etc.).
// Coordinates are kept raw: their nesting depends on Type.
type GeoJSONGeometry struct {
	Type        string          `json:"type"`
	Coordinates json.RawMessage `json:"coordinates"`
}

// NewPoint returns a Point geometry. GeoJSON orders coordinates lon, lat.
func NewPoint(lat, lon float64) *GeoJSONGeometry {
	coords, _ := json.Marshal([]float64{lon, lat})
	return &GeoJSONGeometry{Type: "Point", Coordinates: coords}
}

// LatLon returns the coordinates of a Point geometry.
func (g *GeoJSONGeometry) LatLon() (lat, lon float64, err error) {
	if g == nil || g.Type != "Point" {
		return 0, 0, ErrNotPoint
	}

	var pos []float64
	if err := json.Unmarshal(g.Coordinates, &pos); err != nil || len(pos) < 2 {
		return 0, 0, ErrNotPoint
	}
	return pos[1], pos[0], nil
}

// StringProperty returns a property as a string, or "" when absent or not a string.
func (f GeoJSONFeature) StringProperty(key string) string {
	v, ok := f.Properties[key]
	if !ok {
		return ""
	}
	s, _ := v.(string)
	return s
}
