package view

import (
	"sort"
	"strings"
	"time"

	"github.com/couchcryptid/creek-quality-dashboard/internal/domain"
)

// PanelValue is the most recent reading of one analyte for the panel's
// station. HasData is false when the station has never measured the analyte;
// the page renders a placeholder row in that case.
type PanelValue struct {
	Analyte     string        `json:"analyte"`
	Value       float64       `json:"value"`
	Unit        string        `json:"unit,omitempty"`
	Date        time.Time     `json:"date"`
	Status      domain.Status `json:"status"`
	StatusClass string        `json:"status_class"`
	HasData     bool          `json:"has_data"`
}

// Checkbox is one analyte toggle in the panel. Checked state comes from the
// session-global selection set.
type Checkbox struct {
	Analyte string `json:"analyte"`
	Checked bool   `json:"checked"`
}

// Panel is the station detail view model: metadata, current values, and one
// checkbox per analyte the station has data for.
type Panel struct {
	Code             string       `json:"code"`
	Name             string       `json:"name"`
	Latitude         float64      `json:"latitude"`
	Longitude        float64      `json:"longitude"`
	MeasurementCount int          `json:"measurement_count"`
	Values           []PanelValue `json:"values"`
	Checkboxes       []Checkbox   `json:"checkboxes"`
}

// BuildPanel assembles the detail panel for a station. selected reports the
// session-global checkbox state per analyte. ok is false for unknown codes.
func BuildPanel(d *domain.Dataset, code string, selected func(string) bool) (Panel, bool) {
	st, ok := d.Stations[code]
	if !ok {
		return Panel{}, false
	}

	p := Panel{
		Code:             st.Code,
		Name:             st.Name,
		Latitude:         st.Latitude,
		Longitude:        st.Longitude,
		MeasurementCount: st.MeasurementCount,
	}

	analytes := append([]string(nil), st.Analytes...)
	sort.Strings(analytes)

	for _, analyte := range analytes {
		pv := PanelValue{Analyte: analyte, Status: domain.StatusNoData}
		if lv, ok := d.Latest(code, analyte); ok {
			pv.Value = lv.Value
			pv.Unit = lv.Unit
			pv.Date = lv.Date
			pv.Status = lv.Status
			pv.HasData = true
		}
		pv.StatusClass = StatusClass(pv.Status)
		p.Values = append(p.Values, pv)

		// Checkboxes only for analytes with actual measurements.
		if len(d.SeriesFor(code, analyte)) > 0 {
			p.Checkboxes = append(p.Checkboxes, Checkbox{
				Analyte: analyte,
				Checked: selected(analyte),
			})
		}
	}

	return p, true
}

// StatusClass maps a status to its CSS class name.
func StatusClass(s domain.Status) string {
	return "status-" + strings.ReplaceAll(string(s), "_", "-")
}
