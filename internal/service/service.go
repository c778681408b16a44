package service

import (
	"context"
	"log/slog"

	"github.com/jonboulle/clockwork"

	"github.com/couchcryptid/road-hazard-api/internal/domain"
	"github.com/couchcryptid/road-hazard-api/internal/observability"
)

// HazardStore persists and queries hazard reports.
type HazardStore interface {
	CreateHazard(ctx context.Context, h domain.NewHazard) (domain.Hazard, error)
	NearbyHazards(ctx context.Context, lat, lon, radiusKm float64) []domain.Hazard
	DriverHistory(ctx context.Context, driverID string, limit, offset int) []domain.Hazard
	CountDriverHistory(ctx context.Context, driverID string) int
}

// SettingsStore reads and writes driver settings. Both methods return nil
// when nothing usable came back.
type SettingsStore interface {
	DriverSettings(ctx context.Context, driverID string) *domain.DriverSettings
	UpdateDriverSettings(ctx context.Context, driverID string, patch domain.SettingsPatch) *domain.DriverSettings
}

// Store is the full persistence gateway.
type Store interface {
	HazardStore
	SettingsStore
}

// HazardPublisher fans a stored hazard out to downstream consumers.
type HazardPublisher interface {
	PublishHazard(ctx context.Context, h domain.Hazard) error
}

// HazardService orchestrates validation, scoring, persistence and fan-out for
// every API operation.
type HazardService struct {
	store     Store
	scorer    domain.ConfidenceScorer
	geocoder  domain.ReverseGeocoder
	publisher HazardPublisher
	clock     clockwork.Clock
	logger    *slog.Logger
	metrics   *observability.Metrics
}

// Option configures optional collaborators.
type Option func(*HazardService)

// WithGeocoder attaches place names to new reports.
func WithGeocoder(g domain.ReverseGeocoder) Option {
	return func(s *HazardService) { s.geocoder = g }
}

// WithPublisher emits an event for every stored report.
func WithPublisher(p HazardPublisher) Option {
	return func(s *HazardService) { s.publisher = p }
}

// WithClock replaces the wall clock, for tests.
func WithClock(c clockwork.Clock) Option {
	return func(s *HazardService) { s.clock = c }
}

// New creates a HazardService.
func New(store Store, scorer domain.ConfidenceScorer, logger *slog.Logger, metrics *observability.Metrics, opts ...Option) *HazardService {
	s := &HazardService{
		store:   store,
		scorer:  scorer,
		clock:   clockwork.NewRealClock(),
		logger:  logger,
		metrics: metrics,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}
