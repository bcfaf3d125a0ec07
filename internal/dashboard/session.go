package dashboard

import (
	"fmt"
	"sort"
	"sync"

	"github.com/couchcryptid/creek-quality-dashboard/internal/view"
)

// Session is one browser's UI state. Selection and chart colors live for the
// whole session: checking an analyte for one station persists as the default
// for the next station shown, and an analyte keeps its first-assigned series
// color across every redraw.
type Session struct {
	app *App

	mu            sync.Mutex
	chart         *view.ChartBuilder
	selected      map[string]bool
	activeAnalyte string // map dropdown selection; may be ""
	activeStation string // open detail panel; "" when closed
}

// NewSession creates a session seeded with the app's default analyte: it is
// both the initial marker coloring and the one default-checked checkbox.
func (a *App) NewSession() *Session {
	return &Session{
		app:           a,
		chart:         view.NewChartBuilder(),
		selected:      map[string]bool{a.defaultAnalyte: true},
		activeAnalyte: a.defaultAnalyte,
	}
}

// State is the initial payload for a freshly loaded page.
type State struct {
	Analytes       []string      `json:"analytes"`
	ActiveAnalyte  string        `json:"active_analyte"`
	Markers        []view.Marker `json:"markers"`
	Viewport       view.Viewport `json:"viewport"`
	Synthetic      bool          `json:"synthetic"`
	StationCount   int           `json:"station_count"`
	DefaultAnalyte string        `json:"default_analyte"`
}

// State assembles the initial dashboard state: analyte selector contents,
// markers colored by the active analyte, and the fitted viewport.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()

	d := s.app.Dataset()
	markers := view.BuildMarkers(d, s.activeAnalyte)
	s.app.metrics.MarkerBuilds.Inc()
	viewport, _ := view.FitBounds(markers, view.BoundsPadding, view.MaxZoom)

	return State{
		Analytes:       d.AnalyteNames(),
		ActiveAnalyte:  s.activeAnalyte,
		Markers:        markers,
		Viewport:       viewport,
		Synthetic:      d.Synthetic,
		StationCount:   len(d.Stations),
		DefaultAnalyte: s.app.defaultAnalyte,
	}
}

// MarkersUpdate is the result of an analyte selection change: recolored
// markers, plus the refreshed panel when a detail view is open.
type MarkersUpdate struct {
	Analyte string        `json:"analyte"`
	Markers []view.Marker `json:"markers"`
	Panel   *view.Panel   `json:"panel,omitempty"`
}

// SelectAnalyte switches the map's analyte: markers are recolored without a
// geometry rebuild, and an open detail panel refreshes for the new analyte.
func (s *Session) SelectAnalyte(analyte string) (MarkersUpdate, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	d := s.app.Dataset()
	if analyte != "" && !knownAnalyte(d.AnalyteNames(), analyte) {
		return MarkersUpdate{}, fmt.Errorf("unknown analyte %q", analyte)
	}

	s.activeAnalyte = analyte
	markers := view.BuildMarkers(d, "")
	view.RecolorMarkers(markers, d, analyte)
	s.app.metrics.MarkerBuilds.Inc()

	update := MarkersUpdate{Analyte: analyte, Markers: markers}
	if s.activeStation != "" {
		if panel, ok := view.BuildPanel(d, s.activeStation, s.isSelected); ok {
			s.app.metrics.PanelBuilds.Inc()
			update.Panel = &panel
		}
	}
	return update, nil
}

// Detail is the payload for an open station: sidebar panel plus the chart of
// the currently visible analytes.
type Detail struct {
	Panel view.Panel `json:"panel"`
	Chart view.Chart `json:"chart"`
}

// OpenStation opens the detail view for a station (marker click). The chart
// shows the session's selected analytes, restricted to ones the station has
// data for.
func (s *Session) OpenStation(code string) (Detail, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	d := s.app.Dataset()
	panel, ok := view.BuildPanel(d, code, s.isSelected)
	if !ok {
		return Detail{}, fmt.Errorf("unknown station %q", code)
	}
	s.app.metrics.PanelBuilds.Inc()

	s.activeStation = code
	return Detail{Panel: panel, Chart: s.buildChart(code)}, nil
}

// CloseStation closes the detail view (close control, Escape, or a click on
// the map surface outside any marker) and clears the chart.
func (s *Session) CloseStation() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.activeStation = ""
}

// ToggleAnalyte flips one checkbox in the session-global selection and
// rebuilds the open station's chart. Rebuilding is a full redraw; series
// keep their assigned colors and the axis refits to the new visible set.
func (s *Session) ToggleAnalyte(analyte string) (Detail, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	d := s.app.Dataset()
	if !knownAnalyte(d.AnalyteNames(), analyte) {
		return Detail{}, fmt.Errorf("unknown analyte %q", analyte)
	}

	s.selected[analyte] = !s.selected[analyte]
	return s.detailLocked()
}

// SetVisibleAnalytes replaces the selection set wholesale.
func (s *Session) SetVisibleAnalytes(analytes []string) (Detail, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	d := s.app.Dataset()
	next := make(map[string]bool, len(analytes))
	for _, a := range analytes {
		if !knownAnalyte(d.AnalyteNames(), a) {
			return Detail{}, fmt.Errorf("unknown analyte %q", a)
		}
		next[a] = true
	}

	s.selected = next
	return s.detailLocked()
}

// detailLocked rebuilds panel and chart for the active station after a
// selection change. With no open station it returns an empty detail; the
// selection change alone still took effect.
func (s *Session) detailLocked() (Detail, error) {
	if s.activeStation == "" {
		return Detail{}, nil
	}

	d := s.app.Dataset()
	panel, ok := view.BuildPanel(d, s.activeStation, s.isSelected)
	if !ok {
		return Detail{}, fmt.Errorf("unknown station %q", s.activeStation)
	}
	s.app.metrics.PanelBuilds.Inc()

	return Detail{Panel: panel, Chart: s.buildChart(s.activeStation)}, nil
}

// buildChart renders the chart of the selected analytes the station monitors.
func (s *Session) buildChart(code string) view.Chart {
	d := s.app.Dataset()

	var visible []string
	for _, a := range d.Stations[code].Analytes {
		if s.selected[a] {
			visible = append(visible, a)
		}
	}
	sort.Strings(visible)

	s.app.metrics.ChartBuilds.Inc()
	return s.chart.Build(d, code, visible)
}

func (s *Session) isSelected(analyte string) bool {
	return s.selected[analyte]
}

func knownAnalyte(names []string, analyte string) bool {
	for _, n := range names {
		if n == analyte {
			return true
		}
	}
	return false
}
