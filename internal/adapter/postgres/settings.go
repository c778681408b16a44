package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/couchcryptid/road-hazard-api/internal/domain"
)

const settingsColumns = `id::text, full_name, vehicle_type, auto_reporting, high_resolution,
	sound_alerts, cloud_backup, anonymous_mode, updated_at`

// DriverSettings returns the stored settings row, or nil when the driver has
// none, the ID is not a UUID, or the query fails.
func (s *Store) DriverSettings(ctx context.Context, driverID string) *domain.DriverSettings {
	const op = "get_driver_settings"
	start := time.Now()

	id, ok := parseDriverID(driverID)
	if !ok {
		s.observe(op, outcomeSkipped, start)
		s.logger.Warn("settings requested for invalid UUID", "driver_id", driverID)
		return nil
	}

	row := s.db.QueryRow(ctx, `SELECT `+settingsColumns+` FROM drivers WHERE id = $1`, id)
	settings, err := scanSettings(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			s.observe(op, outcomeEmpty, start)
			return nil
		}
		s.observe(op, outcomeError, start)
		s.logger.Error("get driver settings failed", "driver_id", driverID, "error", err)
		return nil
	}

	s.observe(op, outcomeSuccess, start)
	return &settings
}

// UpdateDriverSettings applies a partial update. When the driver has no row
// yet it falls back to creating one. Returns nil for an invalid ID or any
// failure.
func (s *Store) UpdateDriverSettings(ctx context.Context, driverID string, patch domain.SettingsPatch) *domain.DriverSettings {
	const op = "update_driver_settings"
	start := time.Now()

	id, ok := parseDriverID(driverID)
	if !ok {
		s.observe(op, outcomeSkipped, start)
		return nil
	}

	row := s.db.QueryRow(ctx,
		`UPDATE drivers SET
			full_name       = COALESCE($2, full_name),
			vehicle_type    = COALESCE($3, vehicle_type),
			auto_reporting  = COALESCE($4, auto_reporting),
			high_resolution = COALESCE($5, high_resolution),
			sound_alerts    = COALESCE($6, sound_alerts),
			cloud_backup    = COALESCE($7, cloud_backup),
			anonymous_mode  = COALESCE($8, anonymous_mode),
			updated_at      = now()
		 WHERE id = $1
		 RETURNING `+settingsColumns,
		patchArgs(id, patch)...,
	)
	settings, err := scanSettings(row)
	switch {
	case err == nil:
		s.observe(op, outcomeSuccess, start)
		return &settings
	case errors.Is(err, pgx.ErrNoRows):
		s.observe(op, outcomeEmpty, start)
		s.logger.Info("driver not found, attempting upsert", "driver_id", driverID)
		return s.upsertDriverSettings(ctx, id, patch)
	default:
		s.observe(op, outcomeError, start)
		s.logger.Error("update driver settings failed", "driver_id", driverID, "error", err)
		return nil
	}
}

// upsertDriverSettings creates the row with default profile values, or merges
// into it if a concurrent writer created it first.
func (s *Store) upsertDriverSettings(ctx context.Context, id uuid.UUID, patch domain.SettingsPatch) *domain.DriverSettings {
	const op = "upsert_driver_settings"
	start := time.Now()

	row := s.db.QueryRow(ctx,
		`INSERT INTO drivers (id, full_name, vehicle_type, auto_reporting, high_resolution,
			sound_alerts, cloud_backup, anonymous_mode, updated_at)
		 VALUES ($1, COALESCE($2, $9), COALESCE($3, $10), COALESCE($4, true), COALESCE($5, true),
			COALESCE($6, true), COALESCE($7, false), COALESCE($8, false), now())
		 ON CONFLICT (id) DO UPDATE SET
			full_name       = COALESCE($2, drivers.full_name),
			vehicle_type    = COALESCE($3, drivers.vehicle_type),
			auto_reporting  = COALESCE($4, drivers.auto_reporting),
			high_resolution = COALESCE($5, drivers.high_resolution),
			sound_alerts    = COALESCE($6, drivers.sound_alerts),
			cloud_backup    = COALESCE($7, drivers.cloud_backup),
			anonymous_mode  = COALESCE($8, drivers.anonymous_mode),
			updated_at      = now()
		 RETURNING `+settingsColumns,
		append(patchArgs(id, patch), domain.DefaultFullName, domain.DefaultVehicleType)...,
	)
	settings, err := scanSettings(row)
	if err != nil {
		s.observe(op, outcomeError, start)
		s.logger.Error("upsert driver settings failed", "driver_id", id.String(), "error", err)
		return nil
	}

	s.observe(op, outcomeSuccess, start)
	return &settings
}

func patchArgs(id uuid.UUID, p domain.SettingsPatch) []any {
	return []any{
		id,
		p.FullName,
		p.VehicleType,
		p.AutoReporting,
		p.HighResolution,
		p.SoundAlerts,
		p.CloudBackup,
		p.AnonymousMode,
	}
}

func scanSettings(row pgx.Row) (domain.DriverSettings, error) {
	var ds domain.DriverSettings
	err := row.Scan(&ds.DriverID, &ds.FullName, &ds.VehicleType, &ds.AutoReporting, &ds.HighResolution,
		&ds.SoundAlerts, &ds.CloudBackup, &ds.AnonymousMode, &ds.UpdatedAt)
	if err != nil {
		return domain.DriverSettings{}, err
	}
	ds.UpdatedAt = ds.UpdatedAt.UTC()
	return ds, nil
}
