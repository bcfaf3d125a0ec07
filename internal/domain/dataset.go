package domain

import (
	"sort"
	"time"
)

// Status classifies a station/analyte pair by its most recent value.
type Status string

const (
	StatusAcceptable   Status = "acceptable"
	StatusOutsideRange Status = "outside_range"
	StatusNoRange      Status = "no_range"
	StatusNoData       Status = "no_data"
)

// Station is a fixed geographic sampling location. Immutable after load.
type Station struct {
	Code             string   `json:"code"`
	Name             string   `json:"name"`
	Latitude         float64  `json:"latitude"`
	Longitude        float64  `json:"longitude"`
	Analytes         []string `json:"analytes"`
	MeasurementCount int      `json:"measurement_count"`
}

// Measurement is a single dated sample value. Source records which
// preprocessing sheet the sample came from and may be empty.
type Measurement struct {
	Date   time.Time `json:"date"`
	Value  float64   `json:"value"`
	Source string    `json:"source,omitempty"`
}

// LatestValue is the most recent measurement for a station/analyte pair,
// with its status precomputed during data preparation.
type LatestValue struct {
	Value  float64   `json:"value"`
	Date   time.Time `json:"date"`
	Status Status    `json:"status"`
	Unit   string    `json:"unit,omitempty"`
}

// AnalyteRange holds the acceptable bounds for one analyte. Either bound
// may be nil (open-ended).
type AnalyteRange struct {
	Min  *float64 `json:"min"`
	Max  *float64 `json:"max"`
	Unit string   `json:"unit,omitempty"`
}

// Series maps analyte name → chronological measurements for one station.
type Series = map[string][]Measurement

// Ranges maps analyte name → acceptable range.
type Ranges map[string]AnalyteRange

// Classify derives the status of a value for the named analyte. An analyte
// with no range entry is no_range; otherwise the value is acceptable iff it
// satisfies every present bound.
func (r Ranges) Classify(analyte string, value float64) Status {
	ar, ok := r[analyte]
	if !ok {
		return StatusNoRange
	}
	if ar.Min != nil && value < *ar.Min {
		return StatusOutsideRange
	}
	if ar.Max != nil && value > *ar.Max {
		return StatusOutsideRange
	}
	return StatusAcceptable
}

// Dataset is the aggregate of the four JSON resources. Written once by the
// loader and read-only thereafter.
type Dataset struct {
	Stations      map[string]Station                `json:"stations"`
	Measurements  map[string]Series                 `json:"measurements"`
	LatestValues  map[string]map[string]LatestValue `json:"latest_values"`
	AnalyteRanges Ranges                            `json:"analyte_ranges"`

	// Synthetic marks a dataset fabricated by the fallback generator.
	Synthetic bool `json:"synthetic,omitempty"`
}

// StationCodes returns all station codes in sorted order.
func (d *Dataset) StationCodes() []string {
	codes := make([]string, 0, len(d.Stations))
	for code := range d.Stations {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// AnalyteNames returns the sorted union of analytes monitored by any station.
func (d *Dataset) AnalyteNames() []string {
	seen := map[string]bool{}
	for _, st := range d.Stations {
		for _, a := range st.Analytes {
			seen[a] = true
		}
	}
	names := make([]string, 0, len(seen))
	for a := range seen {
		names = append(names, a)
	}
	sort.Strings(names)
	return names
}

// Latest returns the most recent value for a station/analyte pair.
func (d *Dataset) Latest(code, analyte string) (LatestValue, bool) {
	lv, ok := d.LatestValues[code][analyte]
	return lv, ok
}

// StatusFor reports the status of a station for the given analyte: the
// precomputed latest-value status, or no_data when the station has no latest
// value for the analyte.
func (d *Dataset) StatusFor(code, analyte string) Status {
	lv, ok := d.Latest(code, analyte)
	if !ok {
		return StatusNoData
	}
	return lv.Status
}

// SeriesFor returns the chronological measurements of one station/analyte
// pair. The returned slice is shared and must not be mutated.
func (d *Dataset) SeriesFor(code, analyte string) []Measurement {
	return d.Measurements[code][analyte]
}
