package domain

import (
	"context"
	"log/slog"
)

// EnrichWithPlace attaches a human-readable place name to a hazard about to
// be stored. A nil geocoder, a lookup error or an empty result leaves the
// hazard unchanged; reports are never rejected because geocoding failed.
func EnrichWithPlace(ctx context.Context, h NewHazard, geocoder ReverseGeocoder, logger *slog.Logger) NewHazard {
	if geocoder == nil {
		return h
	}

	result, err := geocoder.ReverseGeocode(ctx, h.Latitude, h.Longitude)
	if err != nil {
		logger.Warn("reverse geocoding failed",
			"driver_id", h.DriverID,
			"lat", h.Latitude,
			"lon", h.Longitude,
			"error", err,
		)
		return h
	}

	switch {
	case result.FormattedAddress != "":
		h.PlaceName = result.FormattedAddress
	case result.PlaceName != "":
		h.PlaceName = result.PlaceName
	}
	return h
}
