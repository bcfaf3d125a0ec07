// Package domain models creek water-quality monitoring data.
//
// # Data Source
//
// Measurements originate from a volunteer creek monitoring program. Field
// samples are recorded per station and analyte, then preprocessed offline
// into four JSON resources consumed by this service:
//
//	stations.json        station code → metadata (name, coordinates, analytes, count)
//	measurements.json    station code → analyte → chronological {date, value} series
//	latest_values.json   station code → analyte → most recent {value, date, unit, status}
//	analyte_ranges.json  analyte → {min, max, unit} acceptable bounds
//
// # Conventions
//
// Station codes ("SRA190", "SRA100", ...) are unique, stable identifiers
// shared across all four resources. Dates are ISO-8601 UTC strings produced
// by the preprocessing step (field times are recorded in Pacific local time
// and converted during preparation). Series are ordered ascending by date.
//
// Analyte names are normalized upstream; the canonical set monitored by the
// program is Dissolved Oxygen (mg/L), pH, Specific Conductivity (uS/cm),
// Temperature (Deg C), Turbidity (NTU), and Nitrate (mg/L).
//
// # Status Classification
//
// A station/analyte pair carries one of four statuses derived from its most
// recent value and the analyte's acceptable range:
//
//	acceptable     value inside [min, max]; open bounds are not checked
//	outside_range  value violates a present bound
//	no_range       the analyte has no entry in analyte_ranges.json
//	no_data        the station has no latest value for the analyte
//
// Either bound of a range may be absent: Dissolved Oxygen has only a lower
// bound (≥ 5 mg/L), Temperature only an upper bound (≤ 24 Deg C). A range
// entry with both bounds absent classifies every value as acceptable.
//
// latest_values.json ships statuses precomputed by the preprocessing step,
// but the classification rule itself lives here in [Ranges.Classify] so
// synthetic data generation and integrity validation agree with it.
//
// # Immutability
//
// All four resources are loaded once per process and never mutated
// afterwards. Every view computation reads the same Dataset value.
package domain
