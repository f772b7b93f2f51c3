// Package points loads the ordered point records shown on the map.
package points

import (
	"context"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/woozymasta/pinmap/internal/config"
	"github.com/woozymasta/pinmap/internal/widget"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
)

// Source yields point records in display order.
type Source interface {
	Load(ctx context.Context) ([]widget.Record, error)
}

// Inline serves records embedded in the configuration file.
type Inline []widget.Record

// Load returns a copy of the inline records.
func (s Inline) Load(context.Context) ([]widget.Record, error) {
	out := make([]widget.Record, len(s))
	copy(out, s)
	return out, nil
}

// FromConfig picks the record source by priority: database, GeoJSON, CSV, inline.
// pool may be nil when no database is configured.
func FromConfig(cfg *config.Config, client *http.Client, pool *pgxpool.Pool) Source {
	switch {
	case cfg.DatabaseURL != "" && pool != nil:
		log.Info().Str("table", cfg.PointsTable).Msg("Using points from database")
		return NewRepository(pool, cfg.PointsTable)

	case cfg.PointsGeoJSON != "":
		log.Info().Str("source", cfg.PointsGeoJSON).Msg("Using points from GeoJSON")
		if isURL(cfg.PointsGeoJSON) {
			return GeoJSONURL{Client: client, URL: cfg.PointsGeoJSON}
		}
		return GeoJSONFile(cfg.PointsGeoJSON)

	case cfg.PointsCSV != "":
		log.Info().Str("source", cfg.PointsCSV).Msg("Using points from CSV")
		return CSVFile(cfg.PointsCSV)

	default:
		log.Info().Int("count", len(cfg.Points)).Msg("Using inline points from config")
		return Inline(cfg.Points)
	}
}

// FileSource picks the file reader by extension: .geojson and .json are
// GeoJSON, anything else is CSV.
func FileSource(path string) Source {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".geojson", ".json":
		return GeoJSONFile(path)
	default:
		return CSVFile(path)
	}
}

// Summary counts records that can and cannot be placed.
func Summary(records []widget.Record) (placeable, skipped int) {
	placeable = lo.CountBy(records, widget.IsPlaceable)
	return placeable, len(records) - placeable
}

func isURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}
