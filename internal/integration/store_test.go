//go:build integration

package integration_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/road-hazard-api/internal/adapter/postgres"
	"github.com/couchcryptid/road-hazard-api/internal/config"
	"github.com/couchcryptid/road-hazard-api/internal/domain"
	"github.com/couchcryptid/road-hazard-api/internal/observability"
)

const driverID = "3f2b8c4e-9a1d-4e6b-8f2a-1c3d5e7f9a0b"

func newStore(ctx context.Context, t *testing.T) *postgres.Store {
	t.Helper()
	dsn := startPostgres(ctx, t)
	require.NoError(t, postgres.Migrate(dsn, discardLogger()))
	// Second run is a no-op.
	require.NoError(t, postgres.Migrate(dsn, discardLogger()))

	pool, err := postgres.Connect(ctx, &config.Config{DatabaseURL: dsn, DBMaxConns: 4}, discardLogger())
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	return postgres.NewStore(pool, discardLogger(), observability.NewMetricsForTesting())
}

func TestStore_Hazards(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()
	store := newStore(ctx, t)

	require.NoError(t, store.CheckReadiness(ctx))

	// MG Road, Bengaluru, and a point about 1.1 km north of it.
	near, err := store.CreateHazard(ctx, domain.NewHazard{
		DriverID: driverID, HazardType: domain.HazardPothole, SeverityLevel: domain.SeverityHigh,
		ConfidenceScore: 0.88, Latitude: 12.9716, Longitude: 77.5946, PlaceName: "MG Road",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, near.ID)
	assert.Equal(t, driverID, near.DriverID)
	assert.Equal(t, "MG Road", near.PlaceName)
	assert.WithinDuration(t, time.Now(), near.CreatedAt, time.Minute)

	_, err = store.CreateHazard(ctx, domain.NewHazard{
		DriverID: driverID, HazardType: domain.HazardAccident, SeverityLevel: domain.SeverityCritical,
		ConfidenceScore: 0.97, Latitude: 12.9816, Longitude: 77.5946,
	})
	require.NoError(t, err)

	// Chennai, far outside any radius used below.
	_, err = store.CreateHazard(ctx, domain.NewHazard{
		DriverID: driverID, HazardType: domain.HazardWaterlogging, SeverityLevel: domain.SeverityMedium,
		ConfidenceScore: 0.79, Latitude: 13.0827, Longitude: 80.2707,
	})
	require.NoError(t, err)

	_, err = store.CreateHazard(ctx, domain.NewHazard{DriverID: "driver-42"})
	require.ErrorIs(t, err, postgres.ErrInvalidDriverID)

	within := store.NearbyHazards(ctx, 12.9716, 77.5946, 0.5)
	require.Len(t, within, 1)
	assert.Equal(t, near.ID, within[0].ID)

	within = store.NearbyHazards(ctx, 12.9716, 77.5946, 2)
	require.Len(t, within, 2)
	assert.Equal(t, near.ID, within[0].ID, "nearest first")

	history := store.DriverHistory(ctx, driverID, 2, 0)
	require.Len(t, history, 2)
	assert.Equal(t, domain.HazardWaterlogging, history[0].HazardType, "newest first")
	assert.Len(t, store.DriverHistory(ctx, driverID, 2, 2), 1)
	assert.Equal(t, 3, store.CountDriverHistory(ctx, driverID))

	assert.Empty(t, store.DriverHistory(ctx, "not-a-uuid", 10, 0))
	assert.Equal(t, 0, store.CountDriverHistory(ctx, "7d9f3c1a-2b4e-4f6a-8c0d-1e2f3a4b5c6d"))
}

func TestStore_Settings(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()
	store := newStore(ctx, t)

	const settingsDriver = "9b2e4d6f-1a3c-4e5b-8d7f-0a1b2c3d4e5f"
	assert.Nil(t, store.DriverSettings(ctx, settingsDriver))

	name := "Asha Rao"
	created := store.UpdateDriverSettings(ctx, settingsDriver, domain.SettingsPatch{FullName: &name})
	require.NotNil(t, created, "first write upserts")
	assert.Equal(t, "Asha Rao", *created.FullName)
	assert.Equal(t, domain.DefaultVehicleType, *created.VehicleType)
	assert.True(t, created.AutoReporting)
	assert.False(t, created.CloudBackup)

	backup := true
	updated := store.UpdateDriverSettings(ctx, settingsDriver, domain.SettingsPatch{CloudBackup: &backup})
	require.NotNil(t, updated)
	assert.Equal(t, "Asha Rao", *updated.FullName, "untouched fields survive")
	assert.True(t, updated.CloudBackup)
	assert.False(t, updated.UpdatedAt.Before(created.UpdatedAt))

	got := store.DriverSettings(ctx, settingsDriver)
	require.NotNil(t, got)
	assert.Equal(t, *updated, *got)
}
