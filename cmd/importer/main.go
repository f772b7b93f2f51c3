package main

import (
	"context"
	"os"
	"time"

	"github.com/woozymasta/pinmap/internal/logger"
	"github.com/woozymasta/pinmap/internal/points"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jessevdk/go-flags"
	"github.com/rs/zerolog/log"
)

type Options struct {
	Logger logger.Logger `group:"Logger options"`

	DatabaseURL string        `short:"d" long:"database-url" env:"DATABASE_URL" description:"PostGIS connection string" required:"true"`
	Table       string        `short:"t" long:"table"        env:"POINTS_TABLE" description:"Points table name"         default:"points"`
	Timeout     time.Duration `long:"timeout"                env:"TIMEOUT"      description:"Import timeout"            default:"5m"`

	Args struct {
		Files []string `positional-arg-name:"FILE" description:"CSV or GeoJSON files, imported in order" required:"1"`
	} `positional-args:"yes"`
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

	ctx, cancel := context.WithTimeout(context.Background(), opts.Timeout)
	defer cancel()

	pool, err := pgxpool.New(ctx, opts.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer pool.Close()

	repo := points.NewRepository(pool, opts.Table)
	if err := repo.EnsureSchema(ctx); err != nil {
		log.Fatal().Err(err).Msg("Failed to prepare schema")
	}

	for _, path := range opts.Args.Files {
		source := points.FileSource(path)
		records, err := source.Load(ctx)
		if err != nil {
			log.Fatal().Err(err).Str("file", path).Msg("Failed to read points")
		}

		if err := repo.Insert(ctx, records); err != nil {
			log.Fatal().Err(err).Str("file", path).Msg("Failed to insert points")
		}

		placeable, skipped := points.Summary(records)
		log.Info().
			Str("file", path).
			Int("placeable", placeable).
			Int("skipped", skipped).
			Msg("Points imported")
	}

	total, err := repo.Count(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to count points")
	}

	log.Info().
		Str("table", opts.Table).
		Int("total", total).
		Msg("Importer finished successfully")
}
