package domain

import "time"

// DriverSettings is a driver's profile and feature preferences.
type DriverSettings struct {
	DriverID       string    `json:"driver_id"`
	FullName       *string   `json:"full_name"`
	VehicleType    *string   `json:"vehicle_type"`
	AutoReporting  bool      `json:"auto_reporting"`
	HighResolution bool      `json:"high_resolution"`
	SoundAlerts    bool      `json:"sound_alerts"`
	CloudBackup    bool      `json:"cloud_backup"`
	AnonymousMode  bool      `json:"anonymous_mode"`
	UpdatedAt      time.Time `json:"updated_at"`
}

const (
	DefaultFullName    = "New Driver"
	DefaultVehicleType = "SUV"
)

// DefaultSettings returns the profile served for drivers that have never
// saved settings.
func DefaultSettings(driverID string, now time.Time) DriverSettings {
	name, vehicle := DefaultFullName, DefaultVehicleType
	return DriverSettings{
		DriverID:       driverID,
		FullName:       &name,
		VehicleType:    &vehicle,
		AutoReporting:  true,
		HighResolution: true,
		SoundAlerts:    true,
		CloudBackup:    false,
		AnonymousMode:  false,
		UpdatedAt:      now.UTC(),
	}
}

// SettingsPatch is a partial settings update. Nil fields are left untouched.
type SettingsPatch struct {
	FullName       *string `json:"full_name" validate:"omitempty,max=200"`
	VehicleType    *string `json:"vehicle_type" validate:"omitempty,max=100"`
	AutoReporting  *bool   `json:"auto_reporting"`
	HighResolution *bool   `json:"high_resolution"`
	SoundAlerts    *bool   `json:"sound_alerts"`
	CloudBackup    *bool   `json:"cloud_backup"`
	AnonymousMode  *bool   `json:"anonymous_mode"`
}

// Empty reports whether the patch carries no fields.
func (p SettingsPatch) Empty() bool {
	return p.FullName == nil && p.VehicleType == nil &&
		p.AutoReporting == nil && p.HighResolution == nil &&
		p.SoundAlerts == nil && p.CloudBackup == nil && p.AnonymousMode == nil
}

// Apply overlays the patch onto s and returns the result.
func (p SettingsPatch) Apply(s DriverSettings) DriverSettings {
	if p.FullName != nil {
		v := *p.FullName
		s.FullName = &v
	}
	if p.VehicleType != nil {
		v := *p.VehicleType
		s.VehicleType = &v
	}
	if p.AutoReporting != nil {
		s.AutoReporting = *p.AutoReporting
	}
	if p.HighResolution != nil {
		s.HighResolution = *p.HighResolution
	}
	if p.SoundAlerts != nil {
		s.SoundAlerts = *p.SoundAlerts
	}
	if p.CloudBackup != nil {
		s.CloudBackup = *p.CloudBackup
	}
	if p.AnonymousMode != nil {
		s.AnonymousMode = *p.AnonymousMode
	}
	return s
}
