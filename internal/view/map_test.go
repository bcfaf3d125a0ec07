package view

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/creek-quality-dashboard/internal/domain"
)

func mapDataset(phValue float64, phStatus domain.Status) *domain.Dataset {
	date := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	return &domain.Dataset{
		Stations: map[string]domain.Station{
			"SRA100": {Code: "SRA100", Name: "Station SRA100", Latitude: 37.8647308, Longitude: -122.0391426,
				Analytes: []string{"pH"}},
			"SRA190": {Code: "SRA190", Name: "Station SRA190", Latitude: 37.7714199, Longitude: -121.9883528,
				Analytes: []string{"pH"}},
		},
		LatestValues: map[string]map[string]domain.LatestValue{
			"SRA100": {"pH": {Value: phValue, Date: date, Status: phStatus}},
		},
		AnalyteRanges: domain.Ranges{"pH": {Min: ptr(6.5), Max: ptr(8.5)}},
	}
}

func TestBuildMarkers_StatusColors(t *testing.T) {
	t.Run("outside range is red", func(t *testing.T) {
		d := mapDataset(9.0, domain.StatusOutsideRange)
		markers := BuildMarkers(d, "pH")
		require.Len(t, markers, 2)

		assert.Equal(t, "SRA100", markers[0].Code)
		assert.Equal(t, domain.StatusOutsideRange, markers[0].Status)
		assert.Equal(t, "#dc3545", markers[0].Color)
	})

	t.Run("acceptable is green", func(t *testing.T) {
		d := mapDataset(7.0, domain.StatusAcceptable)
		markers := BuildMarkers(d, "pH")

		assert.Equal(t, domain.StatusAcceptable, markers[0].Status)
		assert.Equal(t, "#28a745", markers[0].Color)
	})

	t.Run("missing latest value is no_data", func(t *testing.T) {
		d := mapDataset(7.0, domain.StatusAcceptable)
		markers := BuildMarkers(d, "pH")

		assert.Equal(t, "SRA190", markers[1].Code)
		assert.Equal(t, domain.StatusNoData, markers[1].Status)
		assert.Equal(t, statusColors[domain.StatusNoData], markers[1].Color)
	})

	t.Run("no analyte selected is neutral", func(t *testing.T) {
		d := mapDataset(9.0, domain.StatusOutsideRange)
		markers := BuildMarkers(d, "")

		for _, m := range markers {
			assert.Equal(t, neutralColor, m.Color)
			assert.Empty(t, m.Status)
		}
	})
}

func TestRecolorMarkers_InPlace(t *testing.T) {
	d := mapDataset(9.0, domain.StatusOutsideRange)
	markers := BuildMarkers(d, "")
	require.Equal(t, neutralColor, markers[0].Color)

	RecolorMarkers(markers, d, "pH")
	assert.Equal(t, "#dc3545", markers[0].Color)
	assert.Len(t, markers, 2, "recolor never adds or removes markers")

	RecolorMarkers(markers, d, "")
	assert.Equal(t, neutralColor, markers[0].Color)
	assert.Empty(t, markers[0].Status)
}

func TestFitBounds(t *testing.T) {
	d := mapDataset(7.0, domain.StatusAcceptable)
	markers := BuildMarkers(d, "")

	v, ok := FitBounds(markers, BoundsPadding, MaxZoom)
	require.True(t, ok)

	// Bounds contain both stations with padding on each side.
	assert.Less(t, v.MinLat, 37.7714199)
	assert.Greater(t, v.MaxLat, 37.8647308)
	assert.Less(t, v.MinLon, -122.0391426)
	assert.Greater(t, v.MaxLon, -121.9883528)

	assert.InDelta(t, (v.MinLat+v.MaxLat)/2, v.CenterLat, 1e-9)
	assert.InDelta(t, (v.MinLon+v.MaxLon)/2, v.CenterLon, 1e-9)
	assert.LessOrEqual(t, v.Zoom, float64(MaxZoom))
	assert.GreaterOrEqual(t, v.Zoom, float64(0))
}

func TestFitBounds_Deterministic(t *testing.T) {
	d := mapDataset(7.0, domain.StatusAcceptable)
	markers := BuildMarkers(d, "")

	v1, _ := FitBounds(markers, BoundsPadding, MaxZoom)
	v2, _ := FitBounds(markers, BoundsPadding, MaxZoom)
	assert.Equal(t, v1, v2)
}

func TestFitBounds_SingleMarkerClampsToMaxZoom(t *testing.T) {
	markers := []Marker{{Code: "SRA100", Latitude: 37.86, Longitude: -122.04}}

	v, ok := FitBounds(markers, BoundsPadding, MaxZoom)
	require.True(t, ok)
	assert.Equal(t, float64(MaxZoom), v.Zoom)
	assert.Equal(t, 37.86, v.CenterLat)
	assert.Equal(t, -122.04, v.CenterLon)
}

func TestFitBounds_NoMarkers(t *testing.T) {
	_, ok := FitBounds(nil, BoundsPadding, MaxZoom)
	assert.False(t, ok)
}
