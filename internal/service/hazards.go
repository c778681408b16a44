package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/couchcryptid/road-hazard-api/internal/domain"
)

// History paging bounds.
const (
	DefaultHistoryLimit = 100
	MaxHistoryLimit     = 500
)

// ReportHazard scores, classifies and stores a new report. Validation
// failures are returned as *domain.ValidationError and nothing is stored.
func (s *HazardService) ReportHazard(ctx context.Context, req domain.ReportHazardRequest) (domain.Hazard, error) {
	if err := domain.Validate(req); err != nil {
		return domain.Hazard{}, err
	}
	driverID := strings.TrimSpace(req.DriverID)
	if !domain.IsValidUUID(driverID) {
		return domain.Hazard{}, domain.NewValidationError("driver_id", "driver_id '%s' is not a valid UUID", req.DriverID)
	}

	s.logger.Info("hazard report", "driver_id", driverID, "hazard_type", req.HazardType)

	confidence, severity, err := domain.Analyse(ctx, s.scorer, req.HazardType, nil)
	if err != nil {
		return domain.Hazard{}, err
	}

	nh := domain.NewHazard{
		DriverID:        driverID,
		HazardType:      req.HazardType,
		SeverityLevel:   severity,
		ConfidenceScore: confidence,
		Latitude:        *req.Latitude,
		Longitude:       *req.Longitude,
	}
	if s.geocoder != nil {
		nh = domain.EnrichWithPlace(ctx, nh, s.geocoder, s.logger)
	}

	created, err := s.store.CreateHazard(ctx, nh)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidDriverID) {
			return domain.Hazard{}, &domain.ValidationError{Field: "driver_id", Message: err.Error()}
		}
		return domain.Hazard{}, fmt.Errorf("save hazard report: %w", err)
	}

	s.metrics.HazardsReported.WithLabelValues(string(created.HazardType), string(created.SeverityLevel)).Inc()
	s.metrics.Confidence.Observe(created.ConfidenceScore)

	if s.publisher != nil {
		if err := s.publisher.PublishHazard(ctx, created); err != nil {
			s.logger.Warn("hazard event not published", "hazard_id", created.ID, "error", err)
		}
	}
	return created, nil
}

// NearbyHazards lists reports around a point. Backend failures produce an
// empty result, never an error.
func (s *HazardService) NearbyHazards(ctx context.Context, req domain.NearbyHazardsRequest) (domain.NearbyHazards, error) {
	if err := domain.Validate(req); err != nil {
		return domain.NearbyHazards{}, err
	}
	if strings.TrimSpace(req.DriverID) == "" {
		return domain.NearbyHazards{}, domain.NewValidationError("driver_id", "driver_id cannot be empty")
	}

	radius := req.Radius()
	s.logger.Info("nearby hazards", "lat", *req.Latitude, "lon", *req.Longitude, "radius_km", radius)

	hazards := s.store.NearbyHazards(ctx, *req.Latitude, *req.Longitude, radius)
	return domain.NearbyHazards{
		TotalCount: len(hazards),
		RadiusKm:   radius,
		Hazards:    hazards,
	}, nil
}

// DriverHistory returns one page of a driver's reports. Out-of-range paging
// values are clamped; an unknown or malformed driver yields an empty page.
func (s *HazardService) DriverHistory(ctx context.Context, driverID string, limit, offset int) domain.DriverHistory {
	limit, offset = ClampPage(limit, offset)
	s.logger.Info("driver history", "driver_id", driverID, "limit", limit, "offset", offset)

	hazards := s.store.DriverHistory(ctx, driverID, limit, offset)
	return domain.DriverHistory{
		TotalCount: s.store.CountDriverHistory(ctx, driverID),
		Hazards:    hazards,
	}
}

// ClampPage bounds a history page request. A limit below 1 selects the
// default, a limit above the maximum is capped and a negative offset is 0.
func ClampPage(limit, offset int) (int, int) {
	switch {
	case limit < 1:
		limit = DefaultHistoryLimit
	case limit > MaxHistoryLimit:
		limit = MaxHistoryLimit
	}
	return limit, max(offset, 0)
}
