// Package view computes the dashboard's rendering-library-agnostic view
// models: chart series with stable colors and fitted axes, map markers with
// status colors and a deterministic viewport, and the station detail panel.
// The page glue renders these models verbatim, so the widget libraries stay
// swappable without touching any of the logic here.
package view

import (
	"math"
	"time"

	"github.com/couchcryptid/creek-quality-dashboard/internal/domain"
)

// seriesPalette is the fixed chart palette. Analytes receive colors by
// first-seen order and keep them for the whole session.
var seriesPalette = []string{
	"#36a2eb", // blue
	"#ff6384", // red
	"#4bc0c0", // teal
	"#ff9f40", // orange
	"#9966ff", // purple
	"#ffcd56", // yellow
	"#c9cbcf", // gray
}

// zeroSpanPad is the symmetric axis padding used when every visible value is
// exactly zero.
const zeroSpanPad = 1.0

// ChartPoint is one plotted sample.
type ChartPoint struct {
	Date  time.Time `json:"date"`
	Value float64   `json:"value"`
}

// ChartSeries is one analyte line on the chart.
type ChartSeries struct {
	Analyte string       `json:"analyte"`
	Color   string       `json:"color"`
	Points  []ChartPoint `json:"points"`
}

// Chart is the complete view model for the time-series chart of one station.
type Chart struct {
	StationCode string        `json:"station_code"`
	Series      []ChartSeries `json:"series"`
	YMin        float64       `json:"y_min"`
	YMax        float64       `json:"y_max"`
	YLabel      string        `json:"y_label"`
}

// ChartBuilder assigns series colors by first-seen analyte order. The
// mapping, once assigned, never changes for the lifetime of the builder
// (one session). Not safe for concurrent use; the session serializes access.
type ChartBuilder struct {
	colors map[string]string
}

// NewChartBuilder creates a builder with no colors assigned yet.
func NewChartBuilder() *ChartBuilder {
	return &ChartBuilder{colors: make(map[string]string)}
}

// ColorFor returns the analyte's color, assigning the next palette entry on
// first sight. The palette wraps when exhausted.
func (b *ChartBuilder) ColorFor(analyte string) string {
	if c, ok := b.colors[analyte]; ok {
		return c
	}
	c := seriesPalette[len(b.colors)%len(seriesPalette)]
	b.colors[analyte] = c
	return c
}

// Build assembles the chart for a station with the given visible analytes.
// Analytes the station has no measurements for contribute an empty series
// (rendered as a placeholder, never an error). Every call recomputes the
// axis fit over all visible values.
func (b *ChartBuilder) Build(d *domain.Dataset, code string, visible []string) Chart {
	chart := Chart{StationCode: code, YLabel: "Value"}

	var values []float64
	for _, analyte := range visible {
		ms := d.SeriesFor(code, analyte)
		s := ChartSeries{
			Analyte: analyte,
			Color:   b.ColorFor(analyte),
			Points:  make([]ChartPoint, 0, len(ms)),
		}
		for _, m := range ms {
			s.Points = append(s.Points, ChartPoint{Date: m.Date, Value: m.Value})
			values = append(values, m.Value)
		}
		chart.Series = append(chart.Series, s)
	}

	if lo, hi, ok := FitAxis(values); ok {
		chart.YMin = lo
		chart.YMax = hi
	}

	if unit, ok := sharedUnit(d.AnalyteRanges, visible); ok {
		chart.YLabel = unit
	}

	return chart
}

// FitAxis computes padded y-axis bounds over the visible values: 10% of the
// data span on each side, or 10% of the value's magnitude when the span is
// zero (a fixed default when that is zero too). The lower bound is floored
// at zero since all monitored quantities are non-negative. ok is false when
// there are no values.
func FitAxis(values []float64) (lo, hi float64, ok bool) {
	if len(values) == 0 {
		return 0, 0, false
	}

	min, max := values[0], values[0]
	for _, v := range values[1:] {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}

	span := max - min
	var pad float64
	switch {
	case span > 0:
		pad = span * 0.1
	case min != 0:
		pad = math.Abs(min) * 0.1
	default:
		pad = zeroSpanPad
	}

	lo = min - pad
	if lo < 0 {
		lo = 0
	}
	return lo, max + pad, true
}

// sharedUnit reports the single unit string shared by all visible analytes,
// if there is exactly one non-empty one.
func sharedUnit(ranges domain.Ranges, visible []string) (string, bool) {
	unit := ""
	for i, analyte := range visible {
		u := ranges[analyte].Unit
		if i == 0 {
			unit = u
			continue
		}
		if u != unit {
			return "", false
		}
	}
	return unit, unit != "" && len(visible) > 0
}
