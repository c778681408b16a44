package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/couchcryptid/road-hazard-api/internal/domain"
)

const maxBodyBytes = 1 << 20

type healthResponse struct {
	Status      string `json:"status"`
	Environment string `json:"environment"`
	Version     string `json:"version"`
}

func (s *Server) handleRoot(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{
		Status:      "healthy",
		Environment: s.opts.Environment,
		Version:     apiVersion,
	})
}

func (s *Server) handleReportHazard(w http.ResponseWriter, r *http.Request) {
	var req domain.ReportHazardRequest
	if !s.decode(w, r, &req) {
		return
	}

	hazard, err := s.api.ReportHazard(r.Context(), req)
	if err != nil {
		if s.writeValidationError(w, err) {
			return
		}
		s.logger.Error("failed to insert hazard", "driver_id", req.DriverID, "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to save hazard report.")
		return
	}
	writeJSON(w, http.StatusCreated, hazard)
}

func (s *Server) handleNearbyHazards(w http.ResponseWriter, r *http.Request) {
	var req domain.NearbyHazardsRequest
	if !s.decode(w, r, &req) {
		return
	}

	result, err := s.api.NearbyHazards(r.Context(), req)
	if err != nil {
		if s.writeValidationError(w, err) {
			return
		}
		s.logger.Error("nearby hazards failed", "error", err)
		result = domain.NearbyHazards{RadiusKm: req.Radius(), Hazards: []domain.Hazard{}}
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleDriverHistory(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	limit := queryInt(q, "limit")
	offset := queryInt(q, "offset")

	writeJSON(w, http.StatusOK, s.api.DriverHistory(r.Context(), r.PathValue("driver_id"), limit, offset))
}

// queryInt reads a decimal query parameter. Missing or unparsable values
// read as 0, which the paging clamp treats as unset.
func queryInt(q url.Values, key string) int {
	n, err := strconv.Atoi(q.Get(key))
	if err != nil {
		return 0
	}
	return n
}

func (s *Server) handleGetSettings(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.api.DriverSettings(r.Context(), r.PathValue("driver_id")))
}

func (s *Server) handleUpdateSettings(w http.ResponseWriter, r *http.Request) {
	var patch domain.SettingsPatch
	if !s.decode(w, r, &patch) {
		return
	}

	settings, err := s.api.UpdateDriverSettings(r.Context(), r.PathValue("driver_id"), patch)
	if err != nil {
		if s.writeValidationError(w, err) {
			return
		}
		s.logger.Error("settings update failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	writeJSON(w, http.StatusOK, settings)
}

// decode reads a JSON body into v, answering 400 itself when the body is
// missing or malformed.
func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("Invalid request body: %v", err))
		return false
	}
	return true
}

func (s *Server) writeValidationError(w http.ResponseWriter, err error) bool {
	var vErr *domain.ValidationError
	if !errors.As(err, &vErr) {
		return false
	}
	writeError(w, http.StatusBadRequest, vErr.Message)
	return true
}
