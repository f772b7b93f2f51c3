package points

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/woozymasta/pinmap/internal/geo"
	"github.com/woozymasta/pinmap/internal/widget"

	"github.com/samber/lo"
)

// GeoJSONFile reads a FeatureCollection from disk.
type GeoJSONFile string

// Load decodes the file.
func (f GeoJSONFile) Load(context.Context) ([]widget.Record, error) {
	file, err := os.Open(string(f))
	if err != nil {
		return nil, err
	}
	defer func() { _ = file.Close() }()

	return DecodeGeoJSON(file)
}

// GeoJSONURL downloads a FeatureCollection over HTTP.
type GeoJSONURL struct {
	Client *http.Client
	URL    string
}

// Load fetches and decodes the collection.
func (s GeoJSONURL) Load(ctx context.Context) ([]widget.Record, error) {
	client := s.Client
	if client == nil {
		client = http.DefaultClient
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.URL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/geo+json, application/json")

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch %s: status %d", s.URL, resp.StatusCode)
	}

	return DecodeGeoJSON(resp.Body)
}

// DecodeGeoJSON reads a FeatureCollection and converts it to records.
func DecodeGeoJSON(r io.Reader) ([]widget.Record, error) {
	var fc geo.GeoJSONFeatureCollection
	if err := json.NewDecoder(r).Decode(&fc); err != nil {
		return nil, fmt.Errorf("decode geojson: %w", err)
	}
	if fc.Type != "FeatureCollection" {
		return nil, fmt.Errorf("decode geojson: unexpected type %q", fc.Type)
	}

	return FromFeatureCollection(fc), nil
}

// FromFeatureCollection maps features to records in order. Features without
// a point geometry become records without coordinates.
func FromFeatureCollection(fc geo.GeoJSONFeatureCollection) []widget.Record {
	return lo.Map(fc.Features, func(f geo.GeoJSONFeature, _ int) widget.Record {
		r := widget.Record{
			Name:    f.StringProperty("name"),
			Address: f.StringProperty("address"),
			Param:   f.StringProperty("param"),
		}
		if lat, lon, err := f.Geometry.LatLon(); err == nil {
			r.Latitude = widget.Coord(lat)
			r.Longitude = widget.Coord(lon)
		}
		return r
	})
}

// ToFeatureCollection maps records to features in order. Records without
// both coordinates get a null geometry.
func ToFeatureCollection(records []widget.Record) geo.GeoJSONFeatureCollection {
	return geo.GeoJSONFeatureCollection{
		Type: "FeatureCollection",
		Features: lo.Map(records, func(r widget.Record, _ int) geo.GeoJSONFeature {
			f := geo.GeoJSONFeature{
				Type: "Feature",
				Properties: map[string]interface{}{
					"name":    r.Name,
					"address": r.Address,
					"param":   r.Param,
				},
			}
			if r.Latitude != nil && r.Longitude != nil {
				f.Geometry = geo.NewPoint(*r.Latitude, *r.Longitude)
			}
			return f
		}),
	}
}
