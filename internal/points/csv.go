package points

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/woozymasta/pinmap/internal/widget"
)

// CSVColumns is the header written by WriteCSV. ParseCSV accepts these
// columns in any order; "lon" and "lng" are accepted for "long".
var CSVColumns = []string{"name", "address", "param", "lat", "long"}

// CSVFile reads records from a CSV file with a header row.
type CSVFile string

// Load parses the file.
func (f CSVFile) Load(context.Context) ([]widget.Record, error) {
	file, err := os.Open(string(f))
	if err != nil {
		return nil, err
	}
	defer func() { _ = file.Close() }()

	return ParseCSV(file)
}

// ParseCSV reads records in file order. Empty coordinate cells leave the
// coordinate unset.
func ParseCSV(r io.Reader) ([]widget.Record, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	cols := make(map[string]int, len(header))
	for i, h := range header {
		name := strings.ToLower(strings.TrimSpace(h))
		switch name {
		case "lon", "lng":
			name = "long"
		case "latitude":
			name = "lat"
		case "longitude":
			name = "long"
		}
		cols[name] = i
	}
	if _, ok := cols["name"]; !ok {
		return nil, errors.New("csv header has no name column")
	}

	var records []widget.Record
	for line := 2; ; line++ {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read record: %w", err)
		}

		cell := func(name string) string {
			i, ok := cols[name]
			if !ok || i >= len(row) {
				return ""
			}
			return strings.TrimSpace(row[i])
		}

		lat, err := parseCoord(cell("lat"))
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid latitude: %w", line, err)
		}
		lon, err := parseCoord(cell("long"))
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid longitude: %w", line, err)
		}

		records = append(records, widget.Record{
			Latitude:  lat,
			Longitude: lon,
			Name:      cell("name"),
			Address:   cell("address"),
			Param:     cell("param"),
		})
	}

	return records, nil
}

// WriteCSV writes records with the CSVColumns header.
func WriteCSV(w io.Writer, records []widget.Record) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(CSVColumns); err != nil {
		return err
	}
	for _, r := range records {
		if err := cw.Write([]string{r.Name, r.Address, r.Param, formatCoord(r.Latitude), formatCoord(r.Longitude)}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func parseCoord(s string) (*float64, error) {
	if s == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func formatCoord(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}
