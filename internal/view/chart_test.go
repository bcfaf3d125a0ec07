package view

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/creek-quality-dashboard/internal/domain"
)

func ptr(v float64) *float64 { return &v }

func TestFitAxis(t *testing.T) {
	tests := []struct {
		name   string
		values []float64
		wantLo float64
		wantHi float64
		wantOK bool
	}{
		{"two values pad 10% of span", []float64{10, 20}, 9, 21, true},
		{"repeated value pads 10% of magnitude", []float64{5, 5, 5}, 4.5, 5.5, true},
		{"all zeros use fixed default", []float64{0, 0}, 0, 1, true},
		{"lower bound floored at zero", []float64{0.5, 100}, 0, 109.95, true},
		{"single value", []float64{20}, 18, 22, true},
		{"no values", nil, 0, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lo, hi, ok := FitAxis(tt.values)
			assert.Equal(t, tt.wantOK, ok)
			assert.InDelta(t, tt.wantLo, lo, 1e-9)
			assert.InDelta(t, tt.wantHi, hi, 1e-9)
		})
	}
}

func TestChartBuilder_ColorContinuity(t *testing.T) {
	b := NewChartBuilder()

	first := b.ColorFor("Temperature")
	second := b.ColorFor("pH")
	assert.NotEqual(t, first, second, "distinct analytes get distinct palette entries")

	// Repeated lookups, in any order, never reassign.
	assert.Equal(t, second, b.ColorFor("pH"))
	assert.Equal(t, first, b.ColorFor("Temperature"))
	assert.Equal(t, first, b.ColorFor("Temperature"))
}

func TestChartBuilder_PaletteWraps(t *testing.T) {
	b := NewChartBuilder()
	for i, name := range []string{"a", "b", "c", "d", "e", "f", "g"} {
		assert.Equal(t, seriesPalette[i], b.ColorFor(name))
	}
	assert.Equal(t, seriesPalette[0], b.ColorFor("h"))
}

func chartDataset() *domain.Dataset {
	date := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	return &domain.Dataset{
		Stations: map[string]domain.Station{
			"SRA100": {Code: "SRA100", Name: "Station SRA100",
				Analytes: []string{"Nitrate", "Turbidity", "pH"}},
		},
		Measurements: map[string]domain.Series{
			"SRA100": {
				"Nitrate":   {{Date: date.AddDate(0, 0, -7), Value: 10}, {Date: date, Value: 20}},
				"Turbidity": {{Date: date, Value: 5}},
				"pH":        {{Date: date, Value: 7.2}},
			},
		},
		AnalyteRanges: domain.Ranges{
			"Nitrate":   {Max: ptr(45), Unit: "mg/L"},
			"Turbidity": {Max: ptr(25), Unit: "NTU"},
			"pH":        {Min: ptr(6.5), Max: ptr(8.5)},
		},
	}
}

func TestChartBuilder_Build(t *testing.T) {
	d := chartDataset()
	b := NewChartBuilder()

	chart := b.Build(d, "SRA100", []string{"Nitrate"})
	require.Len(t, chart.Series, 1)
	assert.Equal(t, "SRA100", chart.StationCode)
	assert.Equal(t, "Nitrate", chart.Series[0].Analyte)
	assert.Len(t, chart.Series[0].Points, 2)

	// [10, 20]: span 10, pad 1.
	assert.InDelta(t, 9.0, chart.YMin, 1e-9)
	assert.InDelta(t, 21.0, chart.YMax, 1e-9)
	assert.Equal(t, "mg/L", chart.YLabel, "single visible analyte shows its unit")
}

func TestChartBuilder_Build_MixedUnits(t *testing.T) {
	d := chartDataset()
	b := NewChartBuilder()

	chart := b.Build(d, "SRA100", []string{"Nitrate", "Turbidity"})
	assert.Equal(t, "Value", chart.YLabel, "mixed units fall back to the generic label")
}

func TestChartBuilder_Build_UnitlessAnalyte(t *testing.T) {
	d := chartDataset()
	b := NewChartBuilder()

	chart := b.Build(d, "SRA100", []string{"pH"})
	assert.Equal(t, "Value", chart.YLabel)
}

func TestChartBuilder_Build_EmptySeriesIsPlaceholder(t *testing.T) {
	d := chartDataset()
	b := NewChartBuilder()

	chart := b.Build(d, "SRA100", []string{"Temperature"})
	require.Len(t, chart.Series, 1)
	assert.Empty(t, chart.Series[0].Points)
	assert.Zero(t, chart.YMin)
	assert.Zero(t, chart.YMax)
}

func TestChartBuilder_Build_NoVisibleAnalytes(t *testing.T) {
	d := chartDataset()
	b := NewChartBuilder()

	chart := b.Build(d, "SRA100", nil)
	assert.Empty(t, chart.Series)
	assert.Equal(t, "Value", chart.YLabel)
}

func TestChartBuilder_ToggleKeepsColorsAndRefitsAxis(t *testing.T) {
	d := chartDataset()
	b := NewChartBuilder()

	both := b.Build(d, "SRA100", []string{"Nitrate", "Turbidity"})
	require.Len(t, both.Series, 2)
	nitrateColor := both.Series[0].Color
	turbidityColor := both.Series[1].Color

	// Toggle Turbidity off: full rebuild, axis refits to Nitrate alone.
	only := b.Build(d, "SRA100", []string{"Nitrate"})
	require.Len(t, only.Series, 1)
	assert.Equal(t, nitrateColor, only.Series[0].Color)
	assert.InDelta(t, 9.0, only.YMin, 1e-9)
	assert.InDelta(t, 21.0, only.YMax, 1e-9)

	// Toggle it back on: both series restore their original colors.
	again := b.Build(d, "SRA100", []string{"Nitrate", "Turbidity"})
	require.Len(t, again.Series, 2)
	assert.Equal(t, nitrateColor, again.Series[0].Color)
	assert.Equal(t, turbidityColor, again.Series[1].Color)

	// [5, 10, 20]: span 15, pad 1.5.
	assert.InDelta(t, 3.5, again.YMin, 1e-9)
	assert.InDelta(t, 21.5, again.YMax, 1e-9)
}
