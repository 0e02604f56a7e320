package dataset

import (
	"bytes"
	"context"
	"log/slog"
	"math"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hydroroute.org/internal/logging"
	"hydroroute.org/internal/models"
	"hydroroute.org/internal/network"
)

func TestLoad(t *testing.T) {
	t.Run("loads line features from a local file", func(t *testing.T) {
		path := models.GetFixturePath(t, "pipelines.geojson")
		ds, err := Load(context.Background(), path, Options{}, nil)
		require.NoError(t, err)

		assert.Equal(t, path, ds.Source)
		assert.Equal(t, 5, ds.Features)
		assert.Equal(t, 1, ds.Skipped)
		require.Len(t, ds.Segments, 4)
		assert.False(t, ds.ModTime.IsZero())

		north := ds.Segments[0]
		assert.Equal(t, "NL-01", north.ID)
		assert.Equal(t, "North Corridor", north.Name)
		assert.Equal(t, network.KnownYear(2030), north.Year)
		require.Len(t, north.Lines, 1)
		assert.Equal(t, orb.Point{4.4777, 51.9244}, north.Lines[0][0])

		rhine := ds.Segments[1]
		assert.Equal(t, network.KnownYear(2035), rhine.Year)

		spur := ds.Segments[2]
		assert.Equal(t, "feature-2", spur.ID)
		assert.Len(t, spur.Lines, 2)
		assert.False(t, spur.Year.Valid)
	})

	t.Run("fixture builds a seven node network", func(t *testing.T) {
		ds, err := Load(context.Background(), models.GetFixturePath(t, "pipelines.geojson"), Options{}, nil)
		require.NoError(t, err)

		n, err := network.BuildNetwork(ds.Segments, 0.11)
		require.NoError(t, err)
		assert.Equal(t, 7, n.Graph().NodeCount())
		assert.Equal(t, 6, n.Graph().EdgeCount())
		assert.Equal(t, 2, n.Stats().DiscardedNodes)
	})

	t.Run("downloads a remote dataset", func(t *testing.T) {
		body, err := os.ReadFile(models.GetFixturePath(t, "pipelines.geojson"))
		require.NoError(t, err)
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/geo+json")
			_, _ = w.Write(body)
		}))
		defer server.Close()

		var logs bytes.Buffer
		logger := logging.NewStructuredLogger(&logs, slog.LevelDebug)
		ds, err := Load(context.Background(), server.URL+"/pipelines.geojson", Options{}, logger)
		require.NoError(t, err)
		assert.Len(t, ds.Segments, 4)
		assert.True(t, ds.ModTime.IsZero())
		assert.NotContains(t, logs.String(), "failed to close resource")
	})

	t.Run("reports a failed download", func(t *testing.T) {
		server := httptest.NewServer(http.NotFoundHandler())
		defer server.Close()

		_, err := Load(context.Background(), server.URL, Options{}, nil)
		assert.Error(t, err)
	})

	t.Run("reports a missing file", func(t *testing.T) {
		_, err := Load(context.Background(), models.GetFixturePath(t, "missing.geojson"), Options{}, nil)
		assert.Error(t, err)
	})
}

func TestParse(t *testing.T) {
	t.Run("uses configured property names", func(t *testing.T) {
		data := []byte(`{"type":"FeatureCollection","features":[
			{"type":"Feature","properties":{"title":"Custom","opens":"2031"},
			 "geometry":{"type":"LineString","coordinates":[[0,0],[1,1]]}}]}`)

		ds, err := Parse(data, Options{NameProperty: "title", YearProperty: "opens"})
		require.NoError(t, err)
		require.Len(t, ds.Segments, 1)
		assert.Equal(t, "Custom", ds.Segments[0].Name)
		assert.Equal(t, network.KnownYear(2031), ds.Segments[0].Year)
	})

	t.Run("skips features without usable lines", func(t *testing.T) {
		data := []byte(`{"type":"FeatureCollection","features":[
			{"type":"Feature","properties":{},"geometry":null},
			{"type":"Feature","properties":{},"geometry":{"type":"Polygon","coordinates":[[[0,0],[1,0],[1,1],[0,0]]]}},
			{"type":"Feature","properties":{},"geometry":{"type":"LineString","coordinates":[[0,0],[1,1]]}}]}`)

		ds, err := Parse(data, Options{})
		require.NoError(t, err)
		assert.Equal(t, 3, ds.Features)
		assert.Equal(t, 2, ds.Skipped)
		require.Len(t, ds.Segments, 1)
		assert.Equal(t, UnknownName, ds.Segments[0].Name)
	})

	t.Run("numeric ids keep every digit", func(t *testing.T) {
		data := []byte(`{"type":"FeatureCollection","features":[
			{"type":"Feature","id":1000000,"properties":{},"geometry":{"type":"LineString","coordinates":[[0,0],[1,1]]}},
			{"type":"Feature","id":12.5,"properties":{},"geometry":{"type":"LineString","coordinates":[[1,1],[2,2]]}},
			{"type":"Feature","id":"NL-01","properties":{},"geometry":{"type":"LineString","coordinates":[[2,2],[3,3]]}}]}`)

		ds, err := Parse(data, Options{})
		require.NoError(t, err)
		require.Len(t, ds.Segments, 3)
		assert.Equal(t, "1000000", ds.Segments[0].ID)
		assert.Equal(t, "12.5", ds.Segments[1].ID)
		assert.Equal(t, "NL-01", ds.Segments[2].ID)
	})

	t.Run("rejects malformed documents", func(t *testing.T) {
		_, err := Parse([]byte(`{"type":`), Options{})
		assert.Error(t, err)
	})
}

func TestParseYear(t *testing.T) {
	tests := []struct {
		name  string
		value any
		want  network.Year
	}{
		{name: "integer string", value: "2030", want: network.KnownYear(2030)},
		{name: "padded integer string", value: " 2032 ", want: network.KnownYear(2032)},
		{name: "whole number", value: 2035.0, want: network.KnownYear(2035)},
		{name: "fractional number truncates", value: 2036.7, want: network.KnownYear(2036)},
		{name: "huge number", value: 1e300, want: network.Year{}},
		{name: "huge negative number", value: -1e300, want: network.Year{}},
		{name: "fractional string", value: "2030.0", want: network.Year{}},
		{name: "free text", value: "after 2030", want: network.Year{}},
		{name: "null", value: nil, want: network.Year{}},
		{name: "not a number", value: math.NaN(), want: network.Year{}},
		{name: "boolean", value: true, want: network.Year{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseYear(tt.value))
		})
	}
}

func TestParseName(t *testing.T) {
	assert.Equal(t, "Rhine Link", ParseName("Rhine Link"))
	assert.Equal(t, UnknownName, ParseName(nil))
	assert.Equal(t, UnknownName, ParseName("  "))
	assert.Equal(t, "42", ParseName(42.0))
}
