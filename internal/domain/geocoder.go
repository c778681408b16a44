package domain

import "context"

// GeocodingResult contains place details returned by a geocoding provider.
type GeocodingResult struct {
	FormattedAddress string
	PlaceName        string
	Relevance        float64 // 0.0–1.0 provider relevance score
}

// ReverseGeocoder resolves coordinates to place details.
type ReverseGeocoder interface {
	ReverseGeocode(ctx context.Context, lat, lon float64) (GeocodingResult, error)
}
