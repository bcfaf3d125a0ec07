// Command validate performs end-to-end integrity checks across the four
// dashboard JSON resources: cross-resource station consistency, series
// ordering, latest-value agreement, and status classification correctness.
//
// Usage:
//
//	go run ./cmd/validate -data-dir data/mock
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fatih/color"

	"github.com/couchcryptid/creek-quality-dashboard/internal/domain"
)

// phase tracks pass/fail for a validation phase.
type phase struct {
	name   string
	errors []string
}

func (p *phase) errorf(format string, args ...any) {
	p.errors = append(p.errors, fmt.Sprintf(format, args...))
}

func (p *phase) passed() bool { return len(p.errors) == 0 }

func main() {
	dataDir := flag.String("data-dir", "", "directory containing the four JSON resources")
	flag.Parse()

	if *dataDir == "" {
		flag.Usage()
		os.Exit(1)
	}

	if code := run(*dataDir); code != 0 {
		os.Exit(code)
	}
}

func run(dataDir string) int {
	fmt.Println("=== Creek Dashboard Data Integrity Validation ===")
	fmt.Println()

	d, err := loadDataset(dataDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: %v\n", err)
		return 1
	}

	phases := []*phase{
		validateStationConsistency(d),
		validateSeriesOrdering(d),
		validateLatestValues(d),
		validateStatuses(d),
	}

	pass := color.New(color.FgGreen).SprintFunc()
	fail := color.New(color.FgRed, color.Bold).SprintFunc()

	allPassed := true
	for _, p := range phases {
		if p.passed() {
			fmt.Printf("%s %s\n", pass("PASS"), p.name)
			continue
		}
		allPassed = false
		fmt.Printf("%s %s (%d errors)\n", fail("FAIL"), p.name, len(p.errors))
		for _, e := range p.errors {
			fmt.Printf("    - %s\n", e)
		}
	}

	fmt.Println()
	if !allPassed {
		fmt.Println(fail("validation failed"))
		return 1
	}
	fmt.Println(pass("all phases passed"))
	return 0
}

func loadDataset(dir string) (*domain.Dataset, error) {
	d := &domain.Dataset{}

	var err error
	if d.Stations, err = loadJSON[map[string]domain.Station](filepath.Join(dir, "stations.json")); err != nil {
		return nil, err
	}
	if d.Measurements, err = loadJSON[map[string]domain.Series](filepath.Join(dir, "measurements.json")); err != nil {
		return nil, err
	}
	if d.LatestValues, err = loadJSON[map[string]map[string]domain.LatestValue](filepath.Join(dir, "latest_values.json")); err != nil {
		return nil, err
	}
	if d.AnalyteRanges, err = loadJSON[domain.Ranges](filepath.Join(dir, "analyte_ranges.json")); err != nil {
		return nil, err
	}
	return d, nil
}

func loadJSON[T any](path string) (T, error) {
	var v T
	data, err := os.ReadFile(path)
	if err != nil {
		return v, fmt.Errorf("load %s: %w", path, err)
	}
	if err := json.Unmarshal(data, &v); err != nil {
		return v, fmt.Errorf("parse %s: %w", path, err)
	}
	return v, nil
}

// validateStationConsistency checks that station codes are unique, stable
// identifiers shared across all four resources.
func validateStationConsistency(d *domain.Dataset) *phase {
	p := &phase{name: "station consistency"}

	if err := d.Validate(); err != nil {
		p.errorf("boundary validation: %v", err)
	}

	for code, st := range d.Stations {
		if _, ok := d.Measurements[code]; !ok {
			p.errorf("station %s has no measurements entry", code)
		}
		if _, ok := d.LatestValues[code]; !ok {
			p.errorf("station %s has no latest-values entry", code)
		}

		total := 0
		for _, analyte := range st.Analytes {
			total += len(d.SeriesFor(code, analyte))
		}
		if total != st.MeasurementCount {
			p.errorf("station %s: measurement_count %d but %d measurements present",
				code, st.MeasurementCount, total)
		}
	}
	return p
}

// validateSeriesOrdering checks ascending chronological order per series.
func validateSeriesOrdering(d *domain.Dataset) *phase {
	p := &phase{name: "series ordering"}
	for code, series := range d.Measurements {
		for analyte, ms := range series {
			for i := 1; i < len(ms); i++ {
				if ms[i].Date.Before(ms[i-1].Date) {
					p.errorf("%s/%s: sample %d (%s) precedes sample %d (%s)",
						code, analyte, i, ms[i].Date.Format("2006-01-02"),
						i-1, ms[i-1].Date.Format("2006-01-02"))
				}
			}
		}
	}
	return p
}

// validateLatestValues checks every latest value equals the final sample of
// its series and carries the range's unit.
func validateLatestValues(d *domain.Dataset) *phase {
	p := &phase{name: "latest-value agreement"}
	for code, byAnalyte := range d.LatestValues {
		for analyte, lv := range byAnalyte {
			ms := d.SeriesFor(code, analyte)
			if len(ms) == 0 {
				p.errorf("%s/%s: latest value with no measurement series", code, analyte)
				continue
			}
			last := ms[len(ms)-1]
			if lv.Value != last.Value {
				p.errorf("%s/%s: latest value %v != final sample %v", code, analyte, lv.Value, last.Value)
			}
			if !lv.Date.Equal(last.Date) {
				p.errorf("%s/%s: latest date %s != final sample date %s",
					code, analyte, lv.Date.Format("2006-01-02"), last.Date.Format("2006-01-02"))
			}
			if want := d.AnalyteRanges[analyte].Unit; lv.Unit != want {
				p.errorf("%s/%s: unit %q != range unit %q", code, analyte, lv.Unit, want)
			}
		}
	}
	return p
}

// validateStatuses recomputes every status from the classification rule.
func validateStatuses(d *domain.Dataset) *phase {
	p := &phase{name: "status classification"}
	for code, byAnalyte := range d.LatestValues {
		for analyte, lv := range byAnalyte {
			if want := d.AnalyteRanges.Classify(analyte, lv.Value); lv.Status != want {
				p.errorf("%s/%s: status %q, classification says %q (value %v)",
					code, analyte, lv.Status, want, lv.Value)
			}
		}
	}
	return p
}
