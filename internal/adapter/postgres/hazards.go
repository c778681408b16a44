package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/couchcryptid/road-hazard-api/internal/domain"
)

const hazardColumns = `id::text, driver_id::text, hazard_type, severity_level, confidence_score,
	latitude, longitude, coalesce(place_name, ''), created_at`

// CreateHazard stores a report through the insert_hazard procedure and
// returns the created row.
func (s *Store) CreateHazard(ctx context.Context, h domain.NewHazard) (domain.Hazard, error) {
	const op = "create_hazard"
	start := time.Now()

	driverID, ok := parseDriverID(h.DriverID)
	if !ok {
		s.observe(op, outcomeSkipped, start)
		return domain.Hazard{}, fmt.Errorf("%w: %q", ErrInvalidDriverID, h.DriverID)
	}

	var placeName *string
	if h.PlaceName != "" {
		placeName = &h.PlaceName
	}

	row := s.db.QueryRow(ctx,
		`SELECT `+hazardColumns+` FROM insert_hazard($1, $2, $3, $4, $5, $6, $7)`,
		driverID, h.Latitude, h.Longitude, string(h.HazardType), string(h.SeverityLevel), h.ConfidenceScore, placeName,
	)
	created, err := scanHazard(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			s.observe(op, outcomeEmpty, start)
			return domain.Hazard{}, errors.New("insert_hazard returned no row")
		}
		s.observe(op, outcomeError, start)
		s.logger.Error("insert_hazard failed", "driver_id", h.DriverID, "error", err)
		return domain.Hazard{}, fmt.Errorf("insert hazard: %w", err)
	}

	s.observe(op, outcomeSuccess, start)
	return created, nil
}

// NearbyHazards returns hazards within radiusKm of the point, nearest first.
// Failures are logged and produce an empty slice.
func (s *Store) NearbyHazards(ctx context.Context, lat, lon, radiusKm float64) []domain.Hazard {
	const op = "nearby_hazards"
	start := time.Now()

	rows, err := s.db.Query(ctx,
		`SELECT `+hazardColumns+` FROM get_hazards_within_radius($1, $2, $3)`,
		lat, lon, radiusKm,
	)
	hazards, err := collectHazards(rows, err)
	if err != nil {
		s.observe(op, outcomeError, start)
		s.logger.Error("get_hazards_within_radius failed", "lat", lat, "lon", lon, "radius_km", radiusKm, "error", err)
		return []domain.Hazard{}
	}

	s.observe(op, outcomeSuccess, start)
	return hazards
}

// DriverHistory returns one page of a driver's reports, newest first.
// An invalid driver ID or any failure produces an empty slice.
func (s *Store) DriverHistory(ctx context.Context, driverID string, limit, offset int) []domain.Hazard {
	const op = "driver_history"
	start := time.Now()

	id, ok := parseDriverID(driverID)
	if !ok {
		s.observe(op, outcomeSkipped, start)
		s.logger.Warn("driver history requested for invalid UUID, returning empty", "driver_id", driverID)
		return []domain.Hazard{}
	}

	rows, err := s.db.Query(ctx,
		`SELECT `+hazardColumns+` FROM hazards
		 WHERE driver_id = $1
		 ORDER BY created_at DESC
		 LIMIT $2 OFFSET $3`,
		id, limit, offset,
	)
	hazards, err := collectHazards(rows, err)
	if err != nil {
		s.observe(op, outcomeError, start)
		s.logger.Error("driver history query failed", "driver_id", driverID, "error", err)
		return []domain.Hazard{}
	}

	s.observe(op, outcomeSuccess, start)
	return hazards
}

// CountDriverHistory returns the exact number of reports by a driver.
// An invalid driver ID or any failure counts as zero.
func (s *Store) CountDriverHistory(ctx context.Context, driverID string) int {
	const op = "count_driver_history"
	start := time.Now()

	id, ok := parseDriverID(driverID)
	if !ok {
		s.observe(op, outcomeSkipped, start)
		return 0
	}

	var n int64
	if err := s.db.QueryRow(ctx, `SELECT count(*) FROM hazards WHERE driver_id = $1`, id).Scan(&n); err != nil {
		s.observe(op, outcomeError, start)
		s.logger.Error("count driver history failed", "driver_id", driverID, "error", err)
		return 0
	}

	s.observe(op, outcomeSuccess, start)
	return int(n)
}

func parseDriverID(s string) (uuid.UUID, bool) {
	if !domain.IsValidUUID(s) {
		return uuid.UUID{}, false
	}
	id, err := uuid.Parse(strings.TrimSpace(s))
	return id, err == nil
}

func scanHazard(row pgx.Row) (domain.Hazard, error) {
	var (
		h                    domain.Hazard
		hazardType, severity string
	)
	err := row.Scan(&h.ID, &h.DriverID, &hazardType, &severity, &h.ConfidenceScore,
		&h.Latitude, &h.Longitude, &h.PlaceName, &h.CreatedAt)
	if err != nil {
		return domain.Hazard{}, err
	}
	h.HazardType = domain.HazardType(hazardType)
	h.SeverityLevel = domain.Severity(severity)
	h.CreatedAt = h.CreatedAt.UTC()
	return h, nil
}

// collectHazards drains rows into a non-nil slice. queryErr is the error
// returned alongside rows by Query.
func collectHazards(rows pgx.Rows, queryErr error) ([]domain.Hazard, error) {
	if queryErr != nil {
		return nil, queryErr
	}
	defer rows.Close()

	hazards := []domain.Hazard{}
	for rows.Next() {
		h, err := scanHazard(rows)
		if err != nil {
			return nil, err
		}
		hazards = append(hazards, h)
	}
	return hazards, rows.Err()
}
