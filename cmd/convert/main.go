package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/woozymasta/pinmap/internal/logger"
	"github.com/woozymasta/pinmap/internal/points"
	"github.com/woozymasta/pinmap/internal/widget"

	"github.com/jessevdk/go-flags"
	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"
)

type Options struct {
	Logger logger.Logger `group:"Logger options"`

	Input  string `short:"i" long:"in"     description:"Input file path. Reads from stdin if empty"`
	Output string `short:"o" long:"out"    description:"Output file path. Writes to stdout if empty"`
	From   string `short:"F" long:"from"   description:"Input format, guessed from the file extension if empty" choice:"csv" choice:"geojson"`
	Format string `short:"f" long:"format" description:"Output format" choice:"geojson" choice:"csv" choice:"yaml" default:"geojson"`
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

	// Read Input
	var in io.Reader = os.Stdin
	if opts.Input != "" {
		f, err := os.Open(opts.Input)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to open input file")
		}
		defer f.Close()
		in = f
	}

	records, err := decode(in, inputFormat(opts.From, opts.Input))
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to read points")
	}

	out, err := encode(records, opts.Format)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to encode points")
	}

	if opts.Output == "" {
		_, _ = os.Stdout.Write(out)
		return
	}

	if err := os.WriteFile(opts.Output, out, 0o644); err != nil {
		log.Fatal().Err(err).Msg("Failed to write output file")
	}

	placeable, skipped := points.Summary(records)
	log.Info().
		Str("path", opts.Output).
		Str("format", opts.Format).
		Int("placeable", placeable).
		Int("skipped", skipped).
		Msg("Points converted")
}

func inputFormat(from, path string) string {
	if from != "" {
		return from
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".geojson", ".json":
		return "geojson"
	default:
		return "csv"
	}
}

func decode(r io.Reader, format string) ([]widget.Record, error) {
	if format == "geojson" {
		return points.DecodeGeoJSON(r)
	}
	return points.ParseCSV(r)
}

func encode(records []widget.Record, format string) ([]byte, error) {
	switch format {
	case "yaml":
		return yaml.Marshal(struct {
			Points []widget.Record `yaml:"points"`
		}{records})

	case "csv":
		var buf bytes.Buffer
		if err := points.WriteCSV(&buf, records); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil

	case "geojson":
		data, err := json.MarshalIndent(points.ToFeatureCollection(records), "", "  ")
		if err != nil {
			return nil, err
		}
		return append(data, '\n'), nil

	default:
		return nil, fmt.Errorf("unsupported format %q", format)
	}
}
