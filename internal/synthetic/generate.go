// Package synthetic fabricates a self-consistent demo dataset for the
// dashboard when the real JSON resources are unavailable, and for fixture
// generation via cmd/genmock.
//
// Values follow a per-analyte seasonal sine plus gaussian noise around the
// midpoint of the acceptable range, so most readings classify as acceptable
// with occasional excursions. Generation is deterministic for a given seed.
package synthetic

import (
	"math"
	"math/rand"
	"sort"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/couchcryptid/creek-quality-dashboard/internal/domain"
)

// clock anchors the newest sample date so tests and genmock can freeze time.
var clock = clockwork.NewRealClock()

// SetClock swaps the time source. Pass nil to reset to real time.
func SetClock(c clockwork.Clock) {
	if c == nil {
		clock = clockwork.NewRealClock()
		return
	}
	clock = c
}

// Options controls the shape of a generated dataset.
type Options struct {
	// Weeks is the number of weekly samples per station/analyte series.
	// Zero means the default of 104 (two years).
	Weeks int
}

// Stations are the six fixed monitoring sites of the creek program, with
// their surveyed coordinates.
var Stations = []domain.Station{
	{Code: "SRA100", Name: "Station SRA100", Latitude: 37.8647308, Longitude: -122.0391426},
	{Code: "SRA120", Name: "Station SRA120", Latitude: 37.8407117, Longitude: -122.0205907},
	{Code: "SRA141", Name: "Station SRA141", Latitude: 37.8238159, Longitude: -121.9976948},
	{Code: "SRA160", Name: "Station SRA160", Latitude: 37.8122981, Longitude: -121.9852663},
	{Code: "SRA161", Name: "Station SRA161", Latitude: 37.811637, Longitude: -121.981522},
	{Code: "SRA190", Name: "Station SRA190", Latitude: 37.7714199, Longitude: -121.9883528},
}

// Ranges are the program's acceptable bounds per analyte.
var Ranges = domain.Ranges{
	"Dissolved Oxygen":      {Min: ptr(5), Unit: "mg/L"},
	"pH":                    {Min: ptr(6.5), Max: ptr(8.5)},
	"Specific Conductivity": {Min: ptr(150), Max: ptr(500), Unit: "uS/cm"},
	"Temperature":           {Max: ptr(24), Unit: "Deg C"},
	"Turbidity":             {Max: ptr(25), Unit: "NTU"},
	"Nitrate":               {Max: ptr(45), Unit: "mg/L"},
}

func ptr(v float64) *float64 { return &v }

// model holds the seasonal parameters for one analyte.
type model struct {
	base      float64 // annual mean
	amplitude float64 // seasonal swing
	noise     float64 // gaussian sigma
}

var models = map[string]model{
	"Dissolved Oxygen":      {base: 8.0, amplitude: 1.5, noise: 0.6},
	"pH":                    {base: 7.5, amplitude: 0.3, noise: 0.25},
	"Specific Conductivity": {base: 325, amplitude: 80, noise: 40},
	"Temperature":           {base: 15, amplitude: 6, noise: 1.5},
	"Turbidity":             {base: 10, amplitude: 5, noise: 4},
	"Nitrate":               {base: 20, amplitude: 8, noise: 6},
}

// Generate fabricates a complete dataset for the fixed station list. The
// same seed always yields identical values; the date axis is anchored at the
// package clock's current day.
func Generate(seed int64, opts Options) *domain.Dataset {
	weeks := opts.Weeks
	if weeks <= 0 {
		weeks = 104
	}

	rng := rand.New(rand.NewSource(seed))
	end := clock.Now().UTC().Truncate(24 * time.Hour)

	d := &domain.Dataset{
		Stations:      make(map[string]domain.Station, len(Stations)),
		Measurements:  make(map[string]domain.Series, len(Stations)),
		LatestValues:  make(map[string]map[string]domain.LatestValue, len(Stations)),
		AnalyteRanges: Ranges,
		Synthetic:     true,
	}

	analytes := make([]string, 0, len(Ranges))
	for a := range Ranges {
		analytes = append(analytes, a)
	}
	// Map iteration order is random; generation must not depend on it.
	sort.Strings(analytes)

	for si, st := range Stations {
		series := make(domain.Series, len(analytes))
		latest := make(map[string]domain.LatestValue, len(analytes))
		total := 0

		for _, analyte := range analytes {
			m := models[analyte]
			// Small per-station offset so stations are distinguishable.
			offset := m.noise * float64(si-len(Stations)/2) * 0.3

			ms := make([]domain.Measurement, 0, weeks)
			for w := weeks - 1; w >= 0; w-- {
				date := end.AddDate(0, 0, -7*w)
				ms = append(ms, domain.Measurement{
					Date:   date,
					Value:  sample(rng, m, offset, date),
					Source: "Synthetic",
				})
			}

			series[analyte] = ms
			total += len(ms)

			last := ms[len(ms)-1]
			latest[analyte] = domain.LatestValue{
				Value:  last.Value,
				Date:   last.Date,
				Status: Ranges.Classify(analyte, last.Value),
				Unit:   Ranges[analyte].Unit,
			}
		}

		st.Analytes = analytes
		st.MeasurementCount = total
		d.Stations[st.Code] = st
		d.Measurements[st.Code] = series
		d.LatestValues[st.Code] = latest
	}

	return d
}

// sample draws one value: seasonal sine over the day of year plus noise,
// floored at zero (all monitored quantities are non-negative).
func sample(rng *rand.Rand, m model, offset float64, date time.Time) float64 {
	season := math.Sin(2 * math.Pi * float64(date.YearDay()) / 365)
	v := m.base + offset + m.amplitude*season + rng.NormFloat64()*m.noise
	if v < 0 {
		return 0
	}
	// Keep fixture files readable.
	return math.Round(v*100) / 100
}
