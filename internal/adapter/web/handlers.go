package web

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// handlePage serves the dashboard shell. All data arrives via the JSON APIs.
func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := pageTemplate.Execute(w, nil); err != nil {
		s.logger.Error("render page", "error", err)
	}
}

// handleState returns the initial dashboard state for the session.
func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	if !s.ready(w, r) {
		return
	}
	sess := s.sessions.resolve(w, r)
	writeJSON(w, http.StatusOK, sess.State())
}

// handleMarkers recolors markers for the analyte in the query string. An
// empty analyte yields neutral markers.
func (s *Server) handleMarkers(w http.ResponseWriter, r *http.Request) {
	if !s.ready(w, r) {
		return
	}
	sess := s.sessions.resolve(w, r)

	update, err := sess.SelectAnalyte(r.URL.Query().Get("analyte"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	writeJSON(w, http.StatusOK, update)
}

// handleStation opens the detail view for a station (marker click).
func (s *Server) handleStation(w http.ResponseWriter, r *http.Request) {
	if !s.ready(w, r) {
		return
	}
	sess := s.sessions.resolve(w, r)

	detail, err := sess.OpenStation(r.PathValue("code"))
	if err != nil {
		writeError(w, http.StatusNotFound, err)
		return
	}
	writeJSON(w, http.StatusOK, detail)
}

// handleToggle flips one analyte checkbox and returns the rebuilt detail.
func (s *Server) handleToggle(w http.ResponseWriter, r *http.Request) {
	if !s.ready(w, r) {
		return
	}
	sess := s.sessions.resolve(w, r)

	analyte := r.URL.Query().Get("analyte")
	if analyte == "" {
		writeError(w, http.StatusBadRequest, errors.New("analyte query parameter is required"))
		return
	}

	detail, err := sess.ToggleAnalyte(analyte)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	writeJSON(w, http.StatusOK, detail)
}

// handleSetSelection replaces the visible analyte set wholesale.
func (s *Server) handleSetSelection(w http.ResponseWriter, r *http.Request) {
	if !s.ready(w, r) {
		return
	}
	sess := s.sessions.resolve(w, r)

	var body struct {
		Analytes []string `json:"analytes"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("decode body: %w", err))
		return
	}

	detail, err := sess.SetVisibleAnalytes(body.Analytes)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	writeJSON(w, http.StatusOK, detail)
}

// handleClose closes the detail panel (close control, Escape, or map click).
func (s *Server) handleClose(w http.ResponseWriter, r *http.Request) {
	if !s.ready(w, r) {
		return
	}
	sess := s.sessions.resolve(w, r)
	sess.CloseStation()
	writeJSON(w, http.StatusOK, map[string]string{"status": "closed"})
}

// ready guards data routes until the initial load has completed.
func (s *Server) ready(w http.ResponseWriter, r *http.Request) bool {
	if err := s.app.CheckReadiness(r.Context()); err != nil {
		writeError(w, http.StatusServiceUnavailable, err)
		return false
	}
	return true
}
