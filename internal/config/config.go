// Package config handles configuration loading and shared data structures.
package config

import (
	"fmt"
	"html/template"
	"os"

	"github.com/woozymasta/pinmap/internal/leaflet"
	"github.com/woozymasta/pinmap/internal/widget"

	"gopkg.in/yaml.v3"
)

// Config represents the root configuration file structure.
type Config struct {
	// Container is the id of the page element that hosts the map.
	Container string `yaml:"container" json:"container"`
	Title     string `yaml:"title,omitempty" json:"title,omitempty"`
	Center    Center `yaml:"center" json:"center"`
	Zoom      int    `yaml:"zoom,omitempty" json:"zoom"`
	Tiles     Tiles  `yaml:"tiles,omitempty" json:"tiles"`
	Icon      Icon   `yaml:"icon,omitempty" json:"icon"`

	// Point sources, first non-empty wins: database, GeoJSON, CSV, inline.
	Points        []widget.Record `yaml:"points,omitempty" json:"-"`
	PointsGeoJSON string          `yaml:"points_geojson,omitempty" json:"-"` // file path or http(s) URL
	PointsCSV     string          `yaml:"points_csv,omitempty" json:"-"`
	DatabaseURL   string          `yaml:"database_url,omitempty" json:"-"`
	PointsTable   string          `yaml:"points_table,omitempty" json:"-"`

	Minify bool `yaml:"minify,omitempty" json:"-"`
}

// Center is the initial map view center. Zero values mean "not configured".
type Center struct {
	Lat float64 `yaml:"lat" json:"lat"`
	Lng float64 `yaml:"lng" json:"lng"`
}

// Tiles configures the background tile layer.
type Tiles struct {
	URL         string   `yaml:"url,omitempty" json:"url"`
	Attribution string   `yaml:"attribution,omitempty" json:"attribution"`
	Subdomains  []string `yaml:"subdomains,omitempty" json:"subdomains,omitempty"`
	MaxZoom     int      `yaml:"max_zoom,omitempty" json:"max_zoom"`
}

// Icon configures the marker image. Size and anchors are [x, y] pairs.
type Icon struct {
	URL         string `yaml:"url,omitempty" json:"url"`
	Shadow      string `yaml:"shadow,omitempty" json:"shadow,omitempty"`
	Size        []int  `yaml:"size,omitempty" json:"size,omitempty"`
	Anchor      []int  `yaml:"anchor,omitempty" json:"anchor,omitempty"`
	PopupAnchor []int  `yaml:"popup_anchor,omitempty" json:"popup_anchor,omitempty"`
}

// Load reads and parses the YAML configuration file from the specified path.
// Defaults are applied and the tile layer is validated.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	return Parse(data)
}

// Parse decodes YAML configuration data.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// ApplyDefaults fills unset view, tile and icon settings.
// A custom tile URL keeps its own subdomains and must carry its own attribution.
func (c *Config) ApplyDefaults() {
	if c.Zoom <= 0 {
		c.Zoom = widget.DefaultZoom
	}
	if c.PointsTable == "" {
		c.PointsTable = "points"
	}

	if c.Tiles.URL == "" {
		c.Tiles.URL = widget.DefaultTileURL
		if len(c.Tiles.Subdomains) == 0 {
			c.Tiles.Subdomains = append([]string(nil), widget.DefaultSubdomains...)
		}
		if c.Tiles.Attribution == "" {
			c.Tiles.Attribution = widget.DefaultAttribution
		}
	}
	if c.Tiles.MaxZoom <= 0 {
		c.Tiles.MaxZoom = widget.DefaultMaxZoom
	}

	def := widget.DefaultIcon()
	if c.Icon.URL == "" {
		c.Icon.URL = def.IconURL
	}
	if len(c.Icon.Size) != 2 {
		c.Icon.Size = []int{def.IconSize.X, def.IconSize.Y}
	}
	if len(c.Icon.Anchor) != 2 {
		c.Icon.Anchor = []int{def.IconAnchor.X, def.IconAnchor.Y}
	}
	if len(c.Icon.PopupAnchor) != 2 {
		c.Icon.PopupAnchor = []int{def.PopupAnchor.X, def.PopupAnchor.Y}
	}
}

// Validate checks the tile layer settings. Missing container or center is
// not an error: such a config renders a page without a map.
func (c *Config) Validate() error {
	tl := c.TileLayer()
	if err := tl.Validate(); err != nil {
		return fmt.Errorf("tiles: %w", err)
	}
	return nil
}

// Configured reports whether container and center are all set.
func (c *Config) Configured() bool {
	return c.Container != "" && c.Center.Lat != 0 && c.Center.Lng != 0
}

// TileLayer converts the tile settings for the widget.
// The attribution is trusted HTML from the operator's config file.
func (c *Config) TileLayer() leaflet.TileLayer {
	return leaflet.TileLayer{
		URLTemplate: c.Tiles.URL,
		Subdomains:  c.Tiles.Subdomains,
		MaxZoom:     c.Tiles.MaxZoom,
		Attribution: template.HTML(c.Tiles.Attribution),
	}
}

// MarkerIcon converts the icon settings for the widget.
// Call after ApplyDefaults so that every pair has two elements.
func (c *Config) MarkerIcon() leaflet.Icon {
	return leaflet.Icon{
		IconURL:     c.Icon.URL,
		ShadowURL:   c.Icon.Shadow,
		IconSize:    pair(c.Icon.Size),
		IconAnchor:  pair(c.Icon.Anchor),
		PopupAnchor: pair(c.Icon.PopupAnchor),
	}
}

// WidgetOptions returns the widget options derived from the config.
func (c *Config) WidgetOptions() []widget.Option {
	return []widget.Option{
		widget.WithTileLayer(c.TileLayer()),
		widget.WithIcon(c.MarkerIcon()),
		widget.WithZoom(c.Zoom),
	}
}

func pair(v []int) leaflet.Point {
	if len(v) != 2 {
		return leaflet.Point{}
	}
	return leaflet.Point{X: v[0], Y: v[1]}
}
