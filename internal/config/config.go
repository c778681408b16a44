package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"os"
	"time"

	sharedcfg "github.com/couchcryptid/storm-data-shared/config"
	"github.com/joho/godotenv"
	"github.com/spf13/cast"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	DatabaseURL   string
	DatabaseKey   string
	DBMaxConns    int32
	DBAutoMigrate bool

	HTTPAddr        string
	Environment     string
	CORSOrigins     []string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration

	// Placeholder detector range until real inference is wired in.
	MockConfidenceMin float64
	MockConfidenceMax float64

	// Mapbox reverse geocoding configuration.
	MapboxToken     string
	MapboxEnabled   bool
	MapboxTimeout   time.Duration
	MapboxCacheSize int

	// Hazard event stream configuration.
	KafkaEnabled     bool
	KafkaBrokers     []string
	KafkaHazardTopic string
}

// Load reads configuration from a .env file (when present) and environment
// variables, applying defaults where unset.
func Load() (*Config, error) {
	// Variables already set in the environment take precedence over .env.
	_ = godotenv.Load(".env")

	shutdownTimeout, err := sharedcfg.ParseShutdownTimeout()
	if err != nil {
		return nil, err
	}

	port, err := cast.ToIntE(sharedcfg.EnvOrDefault("API_PORT", "8000"))
	if err != nil || port < 0 || port > 65535 {
		return nil, errors.New("invalid API_PORT")
	}

	maxConns, err := cast.ToInt32E(sharedcfg.EnvOrDefault("DB_MAX_CONNS", "10"))
	if err != nil || maxConns <= 0 {
		return nil, errors.New("invalid DB_MAX_CONNS")
	}

	autoMigrate, err := cast.ToBoolE(sharedcfg.EnvOrDefault("DB_AUTO_MIGRATE", "true"))
	if err != nil {
		return nil, errors.New("invalid DB_AUTO_MIGRATE")
	}

	confMin, err := cast.ToFloat64E(sharedcfg.EnvOrDefault("MOCK_AI_CONFIDENCE_MIN", "0.75"))
	if err != nil {
		return nil, errors.New("invalid MOCK_AI_CONFIDENCE_MIN")
	}
	confMax, err := cast.ToFloat64E(sharedcfg.EnvOrDefault("MOCK_AI_CONFIDENCE_MAX", "0.98"))
	if err != nil {
		return nil, errors.New("invalid MOCK_AI_CONFIDENCE_MAX")
	}
	if confMin < 0 || confMax > 1 || confMin > confMax {
		return nil, fmt.Errorf("MOCK_AI_CONFIDENCE_MIN/MAX must satisfy 0 <= min <= max <= 1, got %v and %v", confMin, confMax)
	}

	mapboxTimeout, err := time.ParseDuration(sharedcfg.EnvOrDefault("MAPBOX_TIMEOUT", "5s"))
	if err != nil || mapboxTimeout <= 0 {
		return nil, errors.New("invalid MAPBOX_TIMEOUT")
	}

	mapboxToken := os.Getenv("MAPBOX_TOKEN")
	mapboxEnabled := mapboxToken != ""
	if v := os.Getenv("MAPBOX_ENABLED"); v != "" {
		mapboxEnabled, err = cast.ToBoolE(v)
		if err != nil {
			return nil, errors.New("invalid MAPBOX_ENABLED")
		}
	}

	kafkaEnabled, err := cast.ToBoolE(sharedcfg.EnvOrDefault("KAFKA_ENABLED", "false"))
	if err != nil {
		return nil, errors.New("invalid KAFKA_ENABLED")
	}

	cfg := &Config{
		DatabaseURL:   os.Getenv("DATABASE_URL"),
		DatabaseKey:   os.Getenv("DATABASE_KEY"),
		DBMaxConns:    maxConns,
		DBAutoMigrate: autoMigrate,

		HTTPAddr:        net.JoinHostPort(sharedcfg.EnvOrDefault("API_HOST", "0.0.0.0"), cast.ToString(port)),
		Environment:     sharedcfg.EnvOrDefault("ENVIRONMENT", "development"),
		CORSOrigins:     parseCORSOrigins(os.Getenv("CORS_ORIGINS")),
		LogLevel:        sharedcfg.EnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:       sharedcfg.EnvOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout: shutdownTimeout,

		MockConfidenceMin: confMin,
		MockConfidenceMax: confMax,

		MapboxToken:     mapboxToken,
		MapboxEnabled:   mapboxEnabled,
		MapboxTimeout:   mapboxTimeout,
		MapboxCacheSize: parseMapboxCacheSize(),

		KafkaEnabled:     kafkaEnabled,
		KafkaBrokers:     sharedcfg.ParseBrokers(sharedcfg.EnvOrDefault("KAFKA_BROKERS", "localhost:9092")),
		KafkaHazardTopic: sharedcfg.EnvOrDefault("KAFKA_HAZARD_TOPIC", "road-hazards"),
	}

	if cfg.DatabaseURL == "" {
		return nil, errors.New("DATABASE_URL is required")
	}
	if cfg.MapboxEnabled && cfg.MapboxToken == "" {
		return nil, errors.New("MAPBOX_ENABLED is true but MAPBOX_TOKEN is not set")
	}
	if cfg.KafkaEnabled && len(cfg.KafkaBrokers) == 0 {
		return nil, errors.New("KAFKA_BROKERS is required when KAFKA_ENABLED is true")
	}
	if cfg.KafkaEnabled && cfg.KafkaHazardTopic == "" {
		return nil, errors.New("KAFKA_HAZARD_TOPIC is required when KAFKA_ENABLED is true")
	}

	return cfg, nil
}

// parseCORSOrigins accepts a JSON array of origins. Anything else, including
// an empty value, allows every origin.
func parseCORSOrigins(raw string) []string {
	var origins []string
	if raw == "" || json.Unmarshal([]byte(raw), &origins) != nil || len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}

func parseMapboxCacheSize() int {
	if n, err := cast.ToIntE(os.Getenv("MAPBOX_CACHE_SIZE")); err == nil && n > 0 {
		return n
	}
	return 1000
}
