package domain

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

func TestDefaultSettings(t *testing.T) {
	now := time.Date(2025, 3, 1, 8, 30, 0, 0, time.FixedZone("IST", 5*3600+1800))
	s := DefaultSettings(testDriverID, now)

	assert.Equal(t, testDriverID, s.DriverID)
	assert.Equal(t, DefaultFullName, *s.FullName)
	assert.Equal(t, DefaultVehicleType, *s.VehicleType)
	assert.True(t, s.AutoReporting)
	assert.True(t, s.HighResolution)
	assert.True(t, s.SoundAlerts)
	assert.False(t, s.CloudBackup)
	assert.False(t, s.AnonymousMode)
	assert.Equal(t, time.UTC, s.UpdatedAt.Location())
	assert.True(t, s.UpdatedAt.Equal(now))
}

func TestSettingsPatch_Empty(t *testing.T) {
	assert.True(t, SettingsPatch{}.Empty())
	assert.False(t, SettingsPatch{CloudBackup: ptr(false)}.Empty())
	assert.False(t, SettingsPatch{FullName: ptr("")}.Empty())
}

func TestSettingsPatch_Apply(t *testing.T) {
	now := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	base := DefaultSettings(testDriverID, now)

	got := SettingsPatch{
		FullName:      ptr("Asha Rao"),
		CloudBackup:   ptr(true),
		AutoReporting: ptr(false),
	}.Apply(base)

	want := base
	want.FullName = ptr("Asha Rao")
	want.CloudBackup = true
	want.AutoReporting = false

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Apply() mismatch (-want +got):\n%s", diff)
	}
	// The base value is not modified through shared pointers.
	assert.Equal(t, DefaultFullName, *base.FullName)
}
