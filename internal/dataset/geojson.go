// Package dataset turns pipeline GeoJSON into network segments.
package dataset

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"hydroroute.org/internal/network"
)

const (
	DefaultNameProperty = "Project_Na"
	DefaultYearProperty = "Commission"
	// UnknownName labels segments without a usable name property.
	UnknownName = "Unknown"
)

// Options selects the feature properties that carry segment metadata.
type Options struct {
	NameProperty string
	YearProperty string
}

func (o Options) withDefaults() Options {
	if o.NameProperty == "" {
		o.NameProperty = DefaultNameProperty
	}
	if o.YearProperty == "" {
		o.YearProperty = DefaultYearProperty
	}
	return o
}

// Dataset is a parsed pipeline collection.
type Dataset struct {
	Source   string
	Segments []network.Segment
	// Features is the number of features in the collection.
	Features int
	// Skipped counts features without line geometry.
	Skipped  int
	LoadedAt time.Time
	ModTime  time.Time
}

// Load reads a GeoJSON FeatureCollection from a local path or URL.
func Load(ctx context.Context, source string, opts Options, logger *slog.Logger) (*Dataset, error) {
	modTime, err := ModTime(source)
	if err != nil {
		return nil, err
	}

	b, err := rawData(ctx, source, logger)
	if err != nil {
		return nil, err
	}

	ds, err := Parse(b, opts)
	if err != nil {
		return nil, fmt.Errorf("error parsing dataset %s: %w", source, err)
	}
	ds.Source = source
	ds.ModTime = modTime

	if logger != nil {
		logger.Info("dataset loaded",
			slog.String("component", "dataset"),
			slog.String("source", source),
			slog.Int("features", ds.Features),
			slog.Int("segments", len(ds.Segments)),
			slog.Int("skipped", ds.Skipped))
	}
	return ds, nil
}

// Parse decodes a GeoJSON FeatureCollection. LineString and
// MultiLineString features become segments; every other geometry,
// including empty and missing ones, is skipped.
func Parse(data []byte, opts Options) (*Dataset, error) {
	opts = opts.withDefaults()

	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, err
	}

	ds := &Dataset{Features: len(fc.Features), LoadedAt: time.Now()}
	for i, f := range fc.Features {
		lines := featureLines(f.Geometry)
		if len(lines) == 0 {
			ds.Skipped++
			continue
		}
		ds.Segments = append(ds.Segments, network.Segment{
			ID:    featureID(f, i),
			Name:  ParseName(f.Properties[opts.NameProperty]),
			Year:  ParseYear(f.Properties[opts.YearProperty]),
			Lines: lines,
		})
	}
	return ds, nil
}

func featureLines(g orb.Geometry) []orb.LineString {
	switch geom := g.(type) {
	case orb.LineString:
		if len(geom) == 0 {
			return nil
		}
		return []orb.LineString{geom}
	case orb.MultiLineString:
		lines := make([]orb.LineString, 0, len(geom))
		for _, ls := range geom {
			if len(ls) > 0 {
				lines = append(lines, ls)
			}
		}
		return lines
	default:
		return nil
	}
}

func featureID(f *geojson.Feature, index int) string {
	switch id := f.ID.(type) {
	case nil:
		return "feature-" + strconv.Itoa(index)
	case float64:
		return strconv.FormatFloat(id, 'f', -1, 64)
	default:
		return fmt.Sprint(id)
	}
}

// ParseName returns the display name stored in a property value.
func ParseName(v any) string {
	switch name := v.(type) {
	case nil:
		return UnknownName
	case string:
		if strings.TrimSpace(name) == "" {
			return UnknownName
		}
		return name
	default:
		return fmt.Sprint(name)
	}
}

// ParseYear converts a commissioning property into a Year. Finite numbers
// are truncated and integer strings are parsed; anything else, including
// null, fractional strings and booleans, is unknown.
func ParseYear(v any) network.Year {
	switch year := v.(type) {
	case float64:
		if math.IsNaN(year) || math.IsInf(year, 0) || math.Abs(year) > math.MaxInt32 {
			return network.Year{}
		}
		return network.KnownYear(int(year))
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(year))
		if err != nil {
			return network.Year{}
		}
		return network.KnownYear(n)
	default:
		return network.Year{}
	}
}
