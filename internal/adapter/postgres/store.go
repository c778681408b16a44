package postgres

import (
	"context"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/couchcryptid/road-hazard-api/internal/domain"
	"github.com/couchcryptid/road-hazard-api/internal/observability"
)

// ErrInvalidDriverID is returned on the write path when the driver identifier
// is not a UUID. Nothing is sent to the database in that case.
var ErrInvalidDriverID = domain.ErrInvalidDriverID

// DB is the subset of *pgxpool.Pool the store uses.
type DB interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Ping(ctx context.Context) error
}

// Store is the persistence gateway. Each method is a direct call into the
// database with no local transaction; read paths never return errors.
type Store struct {
	db      DB
	logger  *slog.Logger
	metrics *observability.Metrics
}

// NewStore wraps a pool (or any DB) shared across all requests.
func NewStore(db DB, logger *slog.Logger, metrics *observability.Metrics) *Store {
	return &Store{db: db, logger: logger, metrics: metrics}
}

// CheckReadiness reports whether the database answers a ping.
func (s *Store) CheckReadiness(ctx context.Context) error {
	return s.db.Ping(ctx)
}

// Store operation outcomes.
const (
	outcomeSuccess = "success"
	outcomeError   = "error"
	outcomeEmpty   = "empty"
	outcomeSkipped = "skipped"
)

func (s *Store) observe(op, outcome string, start time.Time) {
	s.metrics.StoreOperations.WithLabelValues(op, outcome).Inc()
	if outcome != outcomeSkipped {
		s.metrics.StoreDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())
	}
}
