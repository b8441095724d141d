package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/zatekoja/clarat-search/internal/domain/entities"
)

// Config holds all application configuration
type Config struct {
	Env         string
	Server      ServerConfig
	Redis       RedisConfig
	Geolocation GeolocationConfig
	Search      SearchConfig
	Locale      LocaleConfig
	OTEL        OTELConfig
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Host           string
	Port           int
	AllowedOrigins []string
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// GeolocationConfig holds geolocation provider configuration
type GeolocationConfig struct {
	Provider        string
	APIKey          string
	CacheTTLSeconds int
}

// SearchConfig holds the filter policy the search form validates against.
type SearchConfig struct {
	MinAge         int
	MaxAge         int
	Languages      []string
	Encounters     []string
	DefaultSection string
}

// LocaleConfig holds locale file configuration
type LocaleConfig struct {
	// Dir optionally points at a directory of <locale>.yml files that
	// override the embedded translations.
	Dir string
}

// OTELConfig holds OpenTelemetry configuration
type OTELConfig struct {
	ServiceName    string
	ServiceVersion string
	Endpoint       string
	Enabled        bool
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	search := entities.DefaultFilterPolicy()
	cfg := &Config{
		Env: getEnv("APP_ENV", "development"),
		Server: ServerConfig{
			Host:           getEnv("SERVER_HOST", "0.0.0.0"),
			Port:           getEnvAsInt("SERVER_PORT", 8080),
			AllowedOrigins: getEnvAsSlice("ALLOWED_ORIGINS", []string{"*"}),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnvAsInt("REDIS_PORT", 6379),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
		},
		Geolocation: GeolocationConfig{
			Provider:        getEnv("GEOLOCATION_PROVIDER", "mock"),
			APIKey:          getEnv("GEOLOCATION_API_KEY", ""),
			CacheTTLSeconds: getEnvAsInt("GEOLOCATION_CACHE_TTL_SECONDS", 60*60*24*30),
		},
		Search: SearchConfig{
			MinAge:         getEnvAsInt("SEARCH_MIN_AGE", search.MinAge),
			MaxAge:         getEnvAsInt("SEARCH_MAX_AGE", search.MaxAge),
			Languages:      getEnvAsSlice("SEARCH_LANGUAGES", search.Languages),
			Encounters:     getEnvAsSlice("SEARCH_ENCOUNTERS", search.Encounters),
			DefaultSection: getEnv("SEARCH_DEFAULT_SECTION", search.DefaultSection),
		},
		Locale: LocaleConfig{
			Dir: getEnv("LOCALE_DIR", ""),
		},
		OTEL: OTELConfig{
			ServiceName:    getEnv("OTEL_SERVICE_NAME", "clarat-search"),
			ServiceVersion: getEnv("OTEL_SERVICE_VERSION", "1.0.0"),
			Endpoint:       getEnv("OTEL_ENDPOINT", ""),
			Enabled:        getEnvAsBool("OTEL_ENABLED", false),
		},
	}

	if cfg.Search.MinAge > cfg.Search.MaxAge {
		return nil, fmt.Errorf("invalid age bounds: SEARCH_MIN_AGE %d is greater than SEARCH_MAX_AGE %d",
			cfg.Search.MinAge, cfg.Search.MaxAge)
	}

	return cfg, nil
}

// RedisAddr returns the Redis address
func (c *RedisConfig) RedisAddr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

func getEnvAsSlice(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return append([]string(nil), defaultValue...)
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return append([]string(nil), defaultValue...)
	}
	return out
}
