// Command verify checks that the service can start: configuration loads,
// database credentials are real, the database answers, the schema and its
// functions are installed, and severity classification behaves as expected.
//
// Usage:
//
//	go run ./cmd/verify
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/couchcryptid/road-hazard-api/internal/adapter/postgres"
	"github.com/couchcryptid/road-hazard-api/internal/config"
	"github.com/couchcryptid/road-hazard-api/internal/domain"
)

// phase tracks pass/fail for a verification phase.
type phase struct {
	name   string
	errors []string
}

func (p *phase) errorf(format string, args ...any) {
	p.errors = append(p.errors, fmt.Sprintf(format, args...))
}

func (p *phase) passed() bool { return len(p.errors) == 0 }

func main() {
	os.Exit(run(os.Stdout))
}

func run(out io.Writer) int {
	fmt.Fprintln(out, "=== Road Hazard API Verification ===")
	fmt.Fprintln(out)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	cfgPhase := &phase{name: "Phase 1: Configuration"}
	cfg, err := config.Load()
	if err != nil {
		cfgPhase.errorf("%v", err)
	}

	phases := []*phase{cfgPhase}
	if cfg != nil {
		phases = append(phases, checkCredentials(cfg))

		dbPhase := &phase{name: "Phase 3: Database Connection"}
		logger := slog.New(slog.NewTextHandler(io.Discard, nil))
		pool, err := postgres.Connect(ctx, cfg, logger)
		if err != nil {
			dbPhase.errorf("%v", err)
		}
		phases = append(phases, dbPhase)

		if pool != nil {
			phases = append(phases, checkSchema(ctx, pool))
			pool.Close()
		}
	}
	phases = append(phases, checkClassifier())

	fmt.Fprintln(out)
	allPassed := true
	for _, p := range phases {
		status := "\033[32mPASS\033[0m"
		if !p.passed() {
			status = fmt.Sprintf("\033[31mFAIL (%d errors)\033[0m", len(p.errors))
			allPassed = false
		}
		fmt.Fprintf(out, "  %-42s %s\n", p.name, status)
	}

	for _, p := range phases {
		if p.passed() {
			continue
		}
		fmt.Fprintf(out, "\n--- %s ---\n", p.name)
		for i, e := range p.errors {
			fmt.Fprintf(out, "  [%d] %s\n", i+1, e)
		}
	}

	if allPassed {
		fmt.Fprintln(out, "\nReady. Start the service with: go run ./cmd/hazard-api")
		return 0
	}
	fmt.Fprintln(out, "\nVerification FAILED. Fix the issues above before starting.")
	return 1
}

// placeholderMarkers are fragments found in template credentials.
var placeholderMarkers = []string{"your-", "changeme", "<", "xxxx"}

func isPlaceholder(v string) bool {
	lower := strings.ToLower(v)
	for _, m := range placeholderMarkers {
		if strings.Contains(lower, m) {
			return true
		}
	}
	return false
}

func checkCredentials(cfg *config.Config) *phase {
	p := &phase{name: "Phase 2: Credentials"}
	if isPlaceholder(cfg.DatabaseURL) {
		p.errorf("DATABASE_URL still holds a template value")
	}
	if cfg.DatabaseKey != "" && isPlaceholder(cfg.DatabaseKey) {
		p.errorf("DATABASE_KEY still holds a template value")
	}
	if cfg.MapboxEnabled && isPlaceholder(cfg.MapboxToken) {
		p.errorf("MAPBOX_TOKEN still holds a template value")
	}
	return p
}

var (
	requiredTables    = []string{"drivers", "hazards"}
	requiredFunctions = []string{"insert_hazard", "get_hazards_within_radius", "haversine_km"}
)

func checkSchema(ctx context.Context, pool *pgxpool.Pool) *phase {
	p := &phase{name: "Phase 4: Schema and Functions"}

	for _, table := range requiredTables {
		var exists bool
		err := pool.QueryRow(ctx, `SELECT to_regclass($1) IS NOT NULL`, "public."+table).Scan(&exists)
		switch {
		case err != nil:
			p.errorf("table %s: %v", table, err)
		case !exists:
			p.errorf("table %s is missing (run with DB_AUTO_MIGRATE=true)", table)
		}
	}

	for _, fn := range requiredFunctions {
		var n int
		err := pool.QueryRow(ctx,
			`SELECT count(*) FROM pg_proc p JOIN pg_namespace n ON n.oid = p.pronamespace
			 WHERE n.nspname = 'public' AND p.proname = $1`, fn).Scan(&n)
		switch {
		case err != nil:
			p.errorf("function %s: %v", fn, err)
		case n == 0:
			p.errorf("function %s is missing (run with DB_AUTO_MIGRATE=true)", fn)
		}
	}
	return p
}

// classifierCases pins the severity table and both confidence shifts.
var classifierCases = []struct {
	hazardType domain.HazardType
	confidence float64
	want       domain.Severity
}{
	{domain.HazardAccident, 0.95, domain.SeverityCritical},
	{domain.HazardPothole, 0.95, domain.SeverityCritical},
	{domain.HazardPothole, 0.85, domain.SeverityHigh},
	{domain.HazardBrokenStreetlight, 0.75, domain.SeverityLow},
	{domain.HazardTrafficCongestion, 0.92, domain.SeverityHigh},
	{"unknown_type", 0.85, domain.SeverityMedium},
}

func checkClassifier() *phase {
	p := &phase{name: "Phase 5: Severity Classifier"}
	for _, c := range classifierCases {
		if got := domain.Classify(c.hazardType, c.confidence); got != c.want {
			p.errorf("classify(%q, %.2f) = %s, want %s", c.hazardType, c.confidence, got, c.want)
		}
	}
	return p
}
