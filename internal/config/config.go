package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"go.uber.org/fx"
)

// Config carries process-level settings resolved from the environment.
type Config struct {
	Environment string
	HTTPAddr    string

	// Database selects the backing store. When DatabaseDSN is empty the
	// service runs on a local sqlite file, which is the OSS default.
	DatabaseDriver string
	DatabaseDSN    string

	// Tracing exporter settings.
	TracingEnabled   bool
	OTLPEndpoint     string
	OTLPProtocol     string
	SamplingRatio    float64
	ServiceName      string
	ServiceVersion   string

	// Engine defaults applied when a request does not override them.
	DefaultTaxRatePercent float64
	NumberMaxAttempts     int
	CatalogCacheTTL       time.Duration
}

// Module provides Config to the fx graph.
var Module = fx.Module("config",
	fx.Provide(Load),
)

// Load resolves configuration from environment variables with local defaults.
func Load() Config {
	cfg := Config{
		Environment:           getenv("TAGIHIN_ENV", "development"),
		HTTPAddr:              getenv("TAGIHIN_HTTP_ADDR", ":8080"),
		DatabaseDriver:        getenv("TAGIHIN_DB_DRIVER", "sqlite"),
		DatabaseDSN:           getenv("TAGIHIN_DB_DSN", "tagihin.db"),
		TracingEnabled:        getenvBool("TAGIHIN_TRACING_ENABLED", false),
		OTLPEndpoint:          getenv("TAGIHIN_OTLP_ENDPOINT", ""),
		OTLPProtocol:          getenv("TAGIHIN_OTLP_PROTOCOL", "grpc"),
		SamplingRatio:         getenvFloat("TAGIHIN_SAMPLING_RATIO", 0.1),
		ServiceName:           getenv("TAGIHIN_SERVICE_NAME", "tagihin"),
		ServiceVersion:        getenv("TAGIHIN_SERVICE_VERSION", "dev"),
		DefaultTaxRatePercent: getenvFloat("TAGIHIN_TAX_RATE_PERCENT", 11),
		NumberMaxAttempts:     getenvInt("TAGIHIN_NUMBER_MAX_ATTEMPTS", 8),
		CatalogCacheTTL:       getenvDuration("TAGIHIN_CATALOG_CACHE_TTL", 5*time.Minute),
	}
	return cfg
}

// IsProduction reports whether the process runs with production settings.
func (c Config) IsProduction() bool {
	return strings.EqualFold(c.Environment, "production")
}

func getenv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func getenvBool(key string, fallback bool) bool {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return parsed
}

func getenvInt(key string, fallback int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return parsed
}

func getenvFloat(key string, fallback float64) float64 {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	parsed, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fallback
	}
	return parsed
}

func getenvDuration(key string, fallback time.Duration) time.Duration {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return parsed
}
