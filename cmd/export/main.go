package main

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/woozymasta/pinmap/internal/config"
	"github.com/woozymasta/pinmap/internal/logger"
	"github.com/woozymasta/pinmap/internal/points"
	"github.com/woozymasta/pinmap/internal/render"
	"github.com/woozymasta/pinmap/internal/widget"

	"github.com/jessevdk/go-flags"
	"github.com/rs/zerolog/log"
)

type Options struct {
	Logger logger.Logger `group:"Logger options"`

	ConfigFile string `short:"c" long:"config"    env:"CONFIG_FILE" description:"Path to configuration file" default:"config.yaml"`
	Output     string `short:"o" long:"out"       description:"Output HTML file. Writes to stdout if empty"`
	Marker     int    `short:"m" long:"marker"    description:"Record index whose popup is open on load" default:"-1"`
	NoMinify   bool   `short:"n" long:"no-minify" description:"Write the page without minification"`
}

func main() {
	var opts Options
	parser := flags.NewParser(&opts, flags.Default)
	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	opts.Logger.Setup()

	cfg, err := config.Load(opts.ConfigFile)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// static export never opens a database connection
	cfg.DatabaseURL = ""
	records, err := points.FromConfig(cfg, &http.Client{Timeout: 15 * time.Second}, nil).Load(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load points")
	}

	renderer, err := render.New(render.Options{
		Title:  cfg.Title,
		Minify: !opts.NoMinify,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to prepare renderer")
	}

	w := widget.New(records, cfg.WidgetOptions()...)
	w.Initialize(cfg.Container, cfg.Center.Lat, cfg.Center.Lng)
	if opts.Marker >= 0 {
		w.ShowMarker(opts.Marker)
	}

	page, err := renderer.Page(w)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to render page")
	}

	if opts.Output == "" {
		_, _ = os.Stdout.Write(page)
		return
	}

	if err := os.WriteFile(opts.Output, page, 0o644); err != nil {
		log.Fatal().Err(err).Str("path", opts.Output).Msg("Failed to write page")
	}

	placeable, skipped := points.Summary(records)
	log.Info().
		Str("path", opts.Output).
		Int("bytes", len(page)).
		Int("placeable", placeable).
		Int("skipped", skipped).
		Msg("Page exported")
}
