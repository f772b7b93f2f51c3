package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/woozymasta/pinmap/internal/leaflet"
	"github.com/woozymasta/pinmap/internal/widget"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleConfig = `
container: map
title: Shops
center:
  lat: 51.5
  lng: -0.12
points:
  - lat: 51.5
    long: -0.12
    name: A
    address: 1 Road
    param: id=1
  - lat: null
    long: null
    name: B
    address: 2 Road
    param: id=2
`

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sampleConfig), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "map", cfg.Container)
	assert.Equal(t, "Shops", cfg.Title)
	assert.Equal(t, Center{Lat: 51.5, Lng: -0.12}, cfg.Center)
	assert.True(t, cfg.Configured())

	require.Len(t, cfg.Points, 2)
	require.NotNil(t, cfg.Points[0].Latitude)
	assert.Equal(t, 51.5, *cfg.Points[0].Latitude)
	assert.Equal(t, -0.12, *cfg.Points[0].Longitude)
	assert.Equal(t, "id=1", cfg.Points[0].Param)
	assert.Nil(t, cfg.Points[1].Latitude)
	assert.Nil(t, cfg.Points[1].Longitude)
	assert.False(t, widget.IsPlaceable(cfg.Points[1]))
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestParse_Defaults(t *testing.T) {
	cfg, err := Parse([]byte("container: map\n"))
	require.NoError(t, err)

	assert.Equal(t, widget.DefaultZoom, cfg.Zoom)
	assert.Equal(t, "points", cfg.PointsTable)
	assert.False(t, cfg.Configured())

	assert.Equal(t, widget.DefaultTileLayer(), cfg.TileLayer())
	assert.Equal(t, widget.DefaultIcon(), cfg.MarkerIcon())
}

func TestParse_CustomTiles(t *testing.T) {
	data := `
zoom: 10
tiles:
  url: https://tile.openstreetmap.org/{z}/{x}/{y}.png
  attribution: '&copy; OpenStreetMap'
icon:
  url: /static/pin.png
  size: [24, 40]
  anchor: [12, 40]
`
	cfg, err := Parse([]byte(data))
	require.NoError(t, err)

	assert.Equal(t, 10, cfg.Zoom)
	assert.Equal(t, leaflet.TileLayer{
		URLTemplate: "https://tile.openstreetmap.org/{z}/{x}/{y}.png",
		MaxZoom:     widget.DefaultMaxZoom,
		Attribution: "&copy; OpenStreetMap",
	}, cfg.TileLayer())
	assert.Equal(t, leaflet.Icon{
		IconURL:     "/static/pin.png",
		IconSize:    leaflet.Point{X: 24, Y: 40},
		IconAnchor:  leaflet.Point{X: 12, Y: 40},
		PopupAnchor: leaflet.Point{X: 0, Y: -40},
	}, cfg.MarkerIcon())
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name string
		data string
		err  error
	}{
		{
			name: "subdomain placeholder without aliases",
			data: "tiles:\n  url: 'http://{s}.example/{z}/{x}/{y}.png'\n",
			err:  leaflet.ErrNoSubdomains,
		},
		{
			name: "template without coordinates",
			data: "tiles:\n  url: 'https://example/tiles.png'\n",
			err:  leaflet.ErrNoTileCoords,
		},
		{
			name: "custom template without attribution",
			data: "tiles:\n  url: 'https://tile.openstreetmap.org/{z}/{x}/{y}.png'\n",
			err:  leaflet.ErrNoAttribution,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data))
			assert.ErrorIs(t, err, tt.err)
		})
	}

	_, err := Parse([]byte("container: ["))
	assert.Error(t, err)
}

func TestConfig_WidgetOptions(t *testing.T) {
	cfg, err := Parse([]byte(sampleConfig))
	require.NoError(t, err)

	w := widget.New(cfg.Points, cfg.WidgetOptions()...)
	require.True(t, w.Initialize(cfg.Container, cfg.Center.Lat, cfg.Center.Lng))
	assert.Equal(t, []int{0}, w.Indexes())
	assert.Equal(t, cfg.Zoom, w.Map().Zoom())
}
