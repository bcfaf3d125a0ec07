package view

import (
	"math"

	"github.com/couchcryptid/creek-quality-dashboard/internal/domain"
)

// Marker colors by status, plus the neutral color used when no analyte is
// selected.
var statusColors = map[domain.Status]string{
	domain.StatusAcceptable:   "#28a745",
	domain.StatusOutsideRange: "#dc3545",
	domain.StatusNoRange:      "#6c757d",
	domain.StatusNoData:       "#adb5bd",
}

const neutralColor = "#3388ff"

// Marker is the view model for one station on the map.
type Marker struct {
	Code      string        `json:"code"`
	Name      string        `json:"name"`
	Latitude  float64       `json:"latitude"`
	Longitude float64       `json:"longitude"`
	Status    domain.Status `json:"status,omitempty"`
	Color     string        `json:"color"`
}

// BuildMarkers creates one marker per station, colored by the station's
// latest-value status for the given analyte, or neutral when analyte is
// empty. Markers are ordered by station code so output is deterministic.
func BuildMarkers(d *domain.Dataset, analyte string) []Marker {
	markers := make([]Marker, 0, len(d.Stations))
	for _, code := range d.StationCodes() {
		st := d.Stations[code]
		m := Marker{
			Code:      st.Code,
			Name:      st.Name,
			Latitude:  st.Latitude,
			Longitude: st.Longitude,
			Color:     neutralColor,
		}
		if analyte != "" {
			m.Status = d.StatusFor(code, analyte)
			m.Color = statusColors[m.Status]
		}
		markers = append(markers, m)
	}
	return markers
}

// RecolorMarkers updates status and color in place for a new analyte
// selection, without rebuilding marker geometry.
func RecolorMarkers(markers []Marker, d *domain.Dataset, analyte string) {
	for i := range markers {
		if analyte == "" {
			markers[i].Status = ""
			markers[i].Color = neutralColor
			continue
		}
		markers[i].Status = d.StatusFor(markers[i].Code, analyte)
		markers[i].Color = statusColors[markers[i].Status]
	}
}

// Viewport is a deterministic, non-animated map view: the padded bounding
// box of all markers plus a derived zoom level clamped to a ceiling.
type Viewport struct {
	MinLat    float64 `json:"min_lat"`
	MinLon    float64 `json:"min_lon"`
	MaxLat    float64 `json:"max_lat"`
	MaxLon    float64 `json:"max_lon"`
	CenterLat float64 `json:"center_lat"`
	CenterLon float64 `json:"center_lon"`
	Zoom      float64 `json:"zoom"`
}

// Default viewport fitting parameters.
const (
	BoundsPadding = 0.1 // fraction of span added on each side
	MaxZoom       = 14
)

// FitBounds computes the viewport bounding all markers, expanded by the
// padding fraction on each side, with zoom derived from the larger span and
// clamped to maxZoom. ok is false when there are no markers.
func FitBounds(markers []Marker, padding, maxZoom float64) (Viewport, bool) {
	if len(markers) == 0 {
		return Viewport{}, false
	}

	v := Viewport{
		MinLat: markers[0].Latitude, MaxLat: markers[0].Latitude,
		MinLon: markers[0].Longitude, MaxLon: markers[0].Longitude,
	}
	for _, m := range markers[1:] {
		v.MinLat = math.Min(v.MinLat, m.Latitude)
		v.MaxLat = math.Max(v.MaxLat, m.Latitude)
		v.MinLon = math.Min(v.MinLon, m.Longitude)
		v.MaxLon = math.Max(v.MaxLon, m.Longitude)
	}

	latPad := (v.MaxLat - v.MinLat) * padding
	lonPad := (v.MaxLon - v.MinLon) * padding
	v.MinLat -= latPad
	v.MaxLat += latPad
	v.MinLon -= lonPad
	v.MaxLon += lonPad

	v.CenterLat = (v.MinLat + v.MaxLat) / 2
	v.CenterLon = (v.MinLon + v.MaxLon) / 2
	v.Zoom = zoomFor(v.MaxLat-v.MinLat, v.MaxLon-v.MinLon, maxZoom)
	return v, true
}

// zoomFor derives a web-mercator style zoom level from the angular span:
// each level halves the visible span, starting from the full 360° world.
func zoomFor(latSpan, lonSpan, maxZoom float64) float64 {
	// Latitude covers half the angular range of longitude at the same zoom.
	span := math.Max(lonSpan, latSpan*2)
	if span <= 0 {
		return maxZoom
	}
	z := math.Floor(math.Log2(360 / span))
	if z > maxZoom {
		return maxZoom
	}
	if z < 0 {
		return 0
	}
	return z
}
