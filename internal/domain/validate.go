package domain

import (
	"fmt"
	"sort"
)

// Validate performs boundary checks on a freshly loaded dataset so malformed
// payloads fail fast instead of propagating zero values into views.
func (d *Dataset) Validate() error {
	if len(d.Stations) == 0 {
		return fmt.Errorf("dataset has no stations")
	}

	for code, st := range d.Stations {
		if st.Code != code {
			return fmt.Errorf("station %q: code field %q does not match key", code, st.Code)
		}
		if st.Latitude < -90 || st.Latitude > 90 {
			return fmt.Errorf("station %q: latitude %v out of range", code, st.Latitude)
		}
		if st.Longitude < -180 || st.Longitude > 180 {
			return fmt.Errorf("station %q: longitude %v out of range", code, st.Longitude)
		}
	}

	// Measurement and latest-value keys must refer to known stations.
	for code := range d.Measurements {
		if _, ok := d.Stations[code]; !ok {
			return fmt.Errorf("measurements reference unknown station %q", code)
		}
	}
	for code := range d.LatestValues {
		if _, ok := d.Stations[code]; !ok {
			return fmt.Errorf("latest values reference unknown station %q", code)
		}
	}

	// Series must be chronological; the axis-fit and latest-value logic
	// depend on ascending order.
	for code, series := range d.Measurements {
		analytes := make([]string, 0, len(series))
		for a := range series {
			analytes = append(analytes, a)
		}
		sort.Strings(analytes)
		for _, analyte := range analytes {
			ms := series[analyte]
			for i := 1; i < len(ms); i++ {
				if ms[i].Date.Before(ms[i-1].Date) {
					return fmt.Errorf("station %q analyte %q: measurements out of order at index %d", code, analyte, i)
				}
			}
		}
	}

	for analyte, ar := range d.AnalyteRanges {
		if ar.Min != nil && ar.Max != nil && *ar.Min > *ar.Max {
			return fmt.Errorf("analyte %q: range min %v exceeds max %v", analyte, *ar.Min, *ar.Max)
		}
	}

	return nil
}
