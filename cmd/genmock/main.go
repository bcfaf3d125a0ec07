// Command genmock writes a complete synthetic dataset, the four JSON
// resources the dashboard consumes, using the same generator the service
// falls back to. Fixtures and demo deployments therefore match fallback
// behavior.
//
// Usage:
//
//	go run ./cmd/genmock -out data/mock -seed 1 -weeks 104
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/couchcryptid/creek-quality-dashboard/internal/domain"
	"github.com/couchcryptid/creek-quality-dashboard/internal/synthetic"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	out := flag.String("out", "", "output directory for the four JSON files")
	seed := flag.Int64("seed", 1, "generator seed")
	weeks := flag.Int("weeks", 0, "weekly samples per series (default 104)")
	anchor := flag.String("anchor", "", "fix the newest sample date (RFC 3339); defaults to now")
	flag.Parse()

	if *out == "" {
		flag.Usage()
		return fmt.Errorf("missing required flag: -out")
	}

	// Fix the clock for reproducible date axes when an anchor is given.
	if *anchor != "" {
		t, err := time.Parse(time.RFC3339, *anchor)
		if err != nil {
			return fmt.Errorf("parse -anchor: %w", err)
		}
		synthetic.SetClock(clockwork.NewFakeClockAt(t))
		defer synthetic.SetClock(nil)
	}

	d := synthetic.Generate(*seed, synthetic.Options{Weeks: *weeks})

	files := map[string]any{
		"stations.json":       d.Stations,
		"measurements.json":   d.Measurements,
		"latest_values.json":  d.LatestValues,
		"analyte_ranges.json": d.AnalyteRanges,
	}
	for name, v := range files {
		if err := writeJSON(filepath.Join(*out, name), v); err != nil {
			return fmt.Errorf("writing %s: %w", name, err)
		}
		log.Printf("wrote %s", filepath.Join(*out, name))
	}

	printStats(d)
	return nil
}

func writeJSON(path string, v any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	return os.WriteFile(path, data, 0o600)
}

func printStats(d *domain.Dataset) {
	statusCounts := map[domain.Status]int{}
	total := 0
	for _, code := range d.StationCodes() {
		for _, analyte := range d.AnalyteNames() {
			total += len(d.SeriesFor(code, analyte))
			if lv, ok := d.Latest(code, analyte); ok {
				statusCounts[lv.Status]++
			}
		}
	}

	log.Printf("stations: %d, analytes: %d, measurements: %d",
		len(d.Stations), len(d.AnalyteNames()), total)
	for _, s := range []domain.Status{
		domain.StatusAcceptable, domain.StatusOutsideRange,
		domain.StatusNoRange, domain.StatusNoData,
	} {
		if n := statusCounts[s]; n > 0 {
			log.Printf("latest %s: %d", s, n)
		}
	}
}
