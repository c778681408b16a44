package service

import (
	"context"

	"github.com/couchcryptid/road-hazard-api/internal/domain"
)

// DriverSettings returns the stored settings, or defaults when the driver
// has none or the store could not be read.
func (s *HazardService) DriverSettings(ctx context.Context, driverID string) domain.DriverSettings {
	if stored := s.store.DriverSettings(ctx, driverID); stored != nil {
		return *stored
	}
	s.logger.Info("driver settings not found, returning defaults", "driver_id", driverID)
	return domain.DefaultSettings(driverID, s.clock.Now())
}

// UpdateDriverSettings applies a partial update. When the write does not
// land, the caller still gets defaults overlaid with the requested values.
func (s *HazardService) UpdateDriverSettings(ctx context.Context, driverID string, patch domain.SettingsPatch) (domain.DriverSettings, error) {
	if patch.Empty() {
		return domain.DriverSettings{}, domain.NewValidationError("", "No settings fields provided.")
	}
	if err := domain.Validate(patch); err != nil {
		return domain.DriverSettings{}, err
	}

	s.logger.Info("driver settings update", "driver_id", driverID)
	if stored := s.store.UpdateDriverSettings(ctx, driverID, patch); stored != nil {
		return *stored, nil
	}

	s.logger.Warn("could not persist settings, echoing request", "driver_id", driverID)
	return patch.Apply(domain.DefaultSettings(driverID, s.clock.Now())), nil
}
