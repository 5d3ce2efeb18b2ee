package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata"

	sharedcfg "github.com/couchcryptid/storm-data-shared/config"
)

// Record store drivers.
const (
	DriverPostgREST = "postgrest"
	DriverPostgres  = "postgres"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration

	// Record store configuration.
	StoreDriver      string
	SupabaseURL      string
	SupabaseKey      string
	StoreTimeout     time.Duration
	DatabaseURL      string
	DatabaseMaxConns int32

	// Submission events.
	KafkaBrokers     []string
	KafkaEnabled     bool
	KafkaSubmissions string

	DirectoryLimit      int
	Location            *time.Location
	SessionTTL          time.Duration
	SessionCookieSecure bool
}

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	shutdownTimeout, err := sharedcfg.ParseShutdownTimeout()
	if err != nil {
		return nil, err
	}

	storeTimeout, err := parsePositiveDuration("STORE_TIMEOUT", "10s")
	if err != nil {
		return nil, err
	}
	sessionTTL, err := parsePositiveDuration("SESSION_TTL", "2h")
	if err != nil {
		return nil, err
	}

	maxConns, err := parsePositiveInt("DATABASE_MAX_CONNS", 5)
	if err != nil {
		return nil, err
	}
	limit, err := parsePositiveInt("DIRECTORY_LIMIT", 100)
	if err != nil {
		return nil, err
	}

	tz := sharedcfg.EnvOrDefault("TIMEZONE", "America/Sao_Paulo")
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return nil, fmt.Errorf("invalid TIMEZONE %q: %w", tz, err)
	}

	var brokers []string
	if v := os.Getenv("KAFKA_BROKERS"); strings.TrimSpace(v) != "" {
		brokers = sharedcfg.ParseBrokers(v)
	}
	kafkaEnabled := len(brokers) > 0
	if v := os.Getenv("KAFKA_ENABLED"); v != "" {
		kafkaEnabled = v == "true"
	}

	cfg := &Config{
		HTTPAddr:        sharedcfg.EnvOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:        sharedcfg.EnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:       sharedcfg.EnvOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout: shutdownTimeout,

		StoreDriver:      strings.ToLower(sharedcfg.EnvOrDefault("STORE_DRIVER", DriverPostgREST)),
		SupabaseURL:      strings.TrimRight(os.Getenv("SUPABASE_URL"), "/"),
		SupabaseKey:      os.Getenv("SUPABASE_KEY"),
		StoreTimeout:     storeTimeout,
		DatabaseURL:      os.Getenv("DATABASE_URL"),
		DatabaseMaxConns: int32(maxConns), //nolint:gosec // bounded by parsePositiveInt

		KafkaBrokers:     brokers,
		KafkaEnabled:     kafkaEnabled,
		KafkaSubmissions: sharedcfg.EnvOrDefault("KAFKA_SUBMISSIONS_TOPIC", "relief-submissions"),

		DirectoryLimit:      limit,
		Location:            loc,
		SessionTTL:          sessionTTL,
		SessionCookieSecure: os.Getenv("SESSION_COOKIE_SECURE") == "true",
	}

	switch cfg.StoreDriver {
	case DriverPostgREST:
		if cfg.SupabaseURL == "" {
			return nil, errors.New("SUPABASE_URL is required when STORE_DRIVER is postgrest")
		}
		if cfg.SupabaseKey == "" {
			return nil, errors.New("SUPABASE_KEY is required when STORE_DRIVER is postgrest")
		}
	case DriverPostgres:
		if cfg.DatabaseURL == "" {
			return nil, errors.New("DATABASE_URL is required when STORE_DRIVER is postgres")
		}
	default:
		return nil, fmt.Errorf("invalid STORE_DRIVER %q", cfg.StoreDriver)
	}
	if cfg.KafkaEnabled && len(cfg.KafkaBrokers) == 0 {
		return nil, errors.New("KAFKA_ENABLED is true but KAFKA_BROKERS is not set")
	}
	if cfg.KafkaEnabled && cfg.KafkaSubmissions == "" {
		return nil, errors.New("KAFKA_SUBMISSIONS_TOPIC is required")
	}

	return cfg, nil
}

func parsePositiveDuration(name, def string) (time.Duration, error) {
	d, err := time.ParseDuration(sharedcfg.EnvOrDefault(name, def))
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid %s", name)
	}
	return d, nil
}

func parsePositiveInt(name string, def int) (int, error) {
	s := os.Getenv(name)
	if s == "" {
		return def, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 || n > 10000 {
		return 0, fmt.Errorf("invalid %s", name)
	}
	return n, nil
}
