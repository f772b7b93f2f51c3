package points

import (
	"net/http"
	"testing"

	"github.com/woozymasta/pinmap/internal/config"
	"github.com/woozymasta/pinmap/internal/widget"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromConfig(t *testing.T) {
	inline := []widget.Record{{Name: "A"}}

	tests := []struct {
		name     string
		cfg      config.Config
		expected Source
	}{
		{
			name:     "inline",
			cfg:      config.Config{Points: inline},
			expected: Inline(inline),
		},
		{
			name:     "csv wins over inline",
			cfg:      config.Config{Points: inline, PointsCSV: "points.csv"},
			expected: CSVFile("points.csv"),
		},
		{
			name:     "geojson file wins over csv",
			cfg:      config.Config{PointsCSV: "points.csv", PointsGeoJSON: "points.geojson"},
			expected: GeoJSONFile("points.geojson"),
		},
		{
			name:     "geojson url",
			cfg:      config.Config{PointsGeoJSON: "https://example.com/points.geojson"},
			expected: GeoJSONURL{Client: http.DefaultClient, URL: "https://example.com/points.geojson"},
		},
		{
			name:     "database url without pool falls through",
			cfg:      config.Config{DatabaseURL: "postgres://localhost/pinmap", PointsCSV: "points.csv"},
			expected: CSVFile("points.csv"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FromConfig(&tt.cfg, http.DefaultClient, nil))
		})
	}
}

func TestInline_LoadCopies(t *testing.T) {
	src := Inline{{Name: "A"}, {Name: "B"}}

	records, err := src.Load(t.Context())
	require.NoError(t, err)
	records[0].Name = "changed"

	assert.Equal(t, "A", src[0].Name)
}

func TestSummary(t *testing.T) {
	placeable, skipped := Summary(sampleRecords())
	assert.Equal(t, 1, placeable)
	assert.Equal(t, 2, skipped)

	placeable, skipped = Summary(nil)
	assert.Zero(t, placeable)
	assert.Zero(t, skipped)
}

func TestFileSource(t *testing.T) {
	assert.Equal(t, GeoJSONFile("a.geojson"), FileSource("a.geojson"))
	assert.Equal(t, GeoJSONFile("dir/A.JSON"), FileSource("dir/A.JSON"))
	assert.Equal(t, CSVFile("a.csv"), FileSource("a.csv"))
	assert.Equal(t, CSVFile("points"), FileSource("points"))
}
