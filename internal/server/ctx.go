package server

import (
	"github.com/rs/zerolog/log"
	"github.com/woozymasta/pinmap/internal/config"
	"github.com/woozymasta/pinmap/internal/points"
	"github.com/woozymasta/pinmap/internal/render"
	"github.com/woozymasta/pinmap/internal/widget"
)

// ServerContext holds dependencies for request handlers.
type ServerContext struct {
	Config    *config.Config
	Records   []widget.Record
	Renderer  *render.Renderer
	IndexHTML []byte
	IndexETag string
}

// NewServerContext prepares the renderer and pre-renders the default page.
// Records are shared read-only between requests; every request builds its
// own widget from them.
func NewServerContext(cfg *config.Config, records []widget.Record) (*ServerContext, error) {
	placeable, skipped := points.Summary(records)
	log.Info().
		Int("records", len(records)).
		Int("placeable", placeable).
		Int("skipped", skipped).
		Msg("Initializing server context")

	if !cfg.Configured() {
		log.Warn().
			Str("container", cfg.Container).
			Float64("lat", cfg.Center.Lat).
			Float64("lng", cfg.Center.Lng).
			Msg("Map container or center not configured, pages will render without a map")
	}

	renderer, err := render.New(render.Options{
		Title:  cfg.Title,
		Minify: cfg.Minify,
	})
	if err != nil {
		return nil, err
	}

	s := &ServerContext{
		Config:   cfg,
		Records:  records,
		Renderer: renderer,
	}

	s.IndexHTML, err = renderer.Page(s.NewWidget())
	if err != nil {
		return nil, err
	}
	s.IndexETag = etagFor(s.IndexHTML)

	pointsLoaded.Set(float64(len(records)))
	pointsPlaceable.Set(float64(placeable))

	log.Info().
		Int("page_bytes", len(s.IndexHTML)).
		Msg("Server context initialized successfully")

	return s, nil
}

// NewWidget builds and initializes a widget over the loaded records.
func (s *ServerContext) NewWidget() *widget.Widget {
	w := widget.New(s.Records, s.Config.WidgetOptions()...)
	w.Initialize(s.Config.Container, s.Config.Center.Lat, s.Config.Center.Lng)
	return w
}
