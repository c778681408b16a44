package domain

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

type mockGeocoder struct {
	result GeocodingResult
	err    error
	calls  int
}

func (m *mockGeocoder) ReverseGeocode(context.Context, float64, float64) (GeocodingResult, error) {
	m.calls++
	return m.result, m.err
}

func discardLogger() *slog.Logger { return slog.New(slog.NewTextHandler(io.Discard, nil)) }

func TestEnrichWithPlace(t *testing.T) {
	h := NewHazard{DriverID: testDriverID, Latitude: 12.97, Longitude: 77.59}

	t.Run("nil geocoder", func(t *testing.T) {
		assert.Equal(t, h, EnrichWithPlace(context.Background(), h, nil, discardLogger()))
	})

	t.Run("formatted address preferred", func(t *testing.T) {
		g := &mockGeocoder{result: GeocodingResult{FormattedAddress: "MG Road, Bengaluru", PlaceName: "MG Road"}}
		got := EnrichWithPlace(context.Background(), h, g, discardLogger())
		assert.Equal(t, "MG Road, Bengaluru", got.PlaceName)
		assert.Equal(t, 1, g.calls)
	})

	t.Run("place name fallback", func(t *testing.T) {
		g := &mockGeocoder{result: GeocodingResult{PlaceName: "MG Road"}}
		assert.Equal(t, "MG Road", EnrichWithPlace(context.Background(), h, g, discardLogger()).PlaceName)
	})

	t.Run("error leaves hazard unchanged", func(t *testing.T) {
		g := &mockGeocoder{err: errors.New("timeout")}
		assert.Equal(t, h, EnrichWithPlace(context.Background(), h, g, discardLogger()))
	})

	t.Run("empty result", func(t *testing.T) {
		g := &mockGeocoder{}
		assert.Empty(t, EnrichWithPlace(context.Background(), h, g, discardLogger()).PlaceName)
	})
}
