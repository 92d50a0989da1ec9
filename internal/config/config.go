package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/swelljoe/wthr-favorites/internal/theme"
	"github.com/swelljoe/wthr-favorites/internal/weather"
)

const (
	StoreSQLite = "sqlite"
	StoreRedis  = "redis"
	StoreMemory = "memory"
)

const (
	defaultEnvFile     = ".env"
	defaultUserAgent   = "wthr.lol/1.0 (contact@wthr.lol)"
	defaultHTTPTimeout = 10 * time.Second
	defaultRateLimit   = 1.0
	defaultRateBurst   = 5
	defaultDBPath      = "wthr.db"
	defaultRedisAddr   = "localhost:6379"
	defaultRedisPrefix = "wthr:"
)

// ErrMissingAPIKey is returned by RequireAPIKey when no key is configured.
var ErrMissingAPIKey = errors.New("OPENWEATHER_API_KEY is not set")

// Config captures runtime settings for the wthr client.
type Config struct {
	APIKey      string
	BaseURL     string
	Lang        string
	UserAgent   string
	HTTPTimeout time.Duration
	RateLimit   float64
	RateBurst   int

	Store         string
	DBPath        string
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	RedisPrefix   string

	// SystemTheme is the platform's preferred theme, empty when unknown.
	SystemTheme theme.Preference
}

// Load reads the env file named by WTHR_ENV_FILE (default .env) when it
// exists, then loads configuration from the environment. Variables already
// set in the environment take precedence over the file.
func Load() (Config, error) {
	envFile := os.Getenv("WTHR_ENV_FILE")
	if envFile == "" {
		envFile = defaultEnvFile
	}
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("failed to load %s: %w", envFile, err)
	}
	return LoadFromEnv()
}

// LoadFromEnv loads runtime configuration from environment variables.
func LoadFromEnv() (Config, error) {
	var errs []error

	timeout, err := readDuration("WTHR_HTTP_TIMEOUT", defaultHTTPTimeout)
	errs = append(errs, err)
	rateLimit, err := readFloat("WTHR_RATE_LIMIT", defaultRateLimit)
	errs = append(errs, err)
	rateBurst, err := readInt("WTHR_RATE_BURST", defaultRateBurst, 1, 1000)
	errs = append(errs, err)
	redisDB, err := readInt("REDIS_DB", 0, 0, 15)
	errs = append(errs, err)

	store := strings.ToLower(getEnvOrDefault("WTHR_STORE", StoreSQLite))
	switch store {
	case StoreSQLite, StoreRedis, StoreMemory:
	default:
		errs = append(errs, fmt.Errorf("WTHR_STORE must be one of sqlite, redis, memory; got %q", store))
	}

	var systemTheme theme.Preference
	if raw := strings.TrimSpace(os.Getenv("WTHR_SYSTEM_THEME")); raw != "" {
		systemTheme, err = theme.ParsePreference(raw)
		if err != nil {
			errs = append(errs, fmt.Errorf("WTHR_SYSTEM_THEME: %w", err))
		}
	}

	if err := errors.Join(errs...); err != nil {
		return Config{}, err
	}

	return Config{
		APIKey:        strings.TrimSpace(os.Getenv("OPENWEATHER_API_KEY")),
		BaseURL:       getEnvOrDefault("OPENWEATHER_BASE_URL", weather.DefaultBaseURL),
		Lang:          getEnvOrDefault("WTHR_LANG", weather.DefaultLang),
		UserAgent:     getEnvOrDefault("WTHR_USER_AGENT", defaultUserAgent),
		HTTPTimeout:   timeout,
		RateLimit:     rateLimit,
		RateBurst:     rateBurst,
		Store:         store,
		DBPath:        getEnvOrDefault("DB_PATH", defaultDBPath),
		RedisAddr:     getEnvOrDefault("REDIS_ADDR", defaultRedisAddr),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		RedisDB:       redisDB,
		RedisPrefix:   getEnvOrDefault("REDIS_PREFIX", defaultRedisPrefix),
		SystemTheme:   systemTheme,
	}, nil
}

// RequireAPIKey fails when no OpenWeatherMap key is configured. Only
// commands that perform lookups need one.
func (c Config) RequireAPIKey() error {
	if c.APIKey == "" {
		return ErrMissingAPIKey
	}
	return nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func readInt(key string, fallback, min, max int) (int, error) {
	raw, ok := os.LookupEnv(key)
	if !ok || strings.TrimSpace(raw) == "" {
		return fallback, nil
	}

	parsed, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer: %w", key, err)
	}
	if parsed < min || parsed > max {
		return 0, fmt.Errorf("%s must be between %d and %d", key, min, max)
	}

	return parsed, nil
}

func readFloat(key string, fallback float64) (float64, error) {
	raw, ok := os.LookupEnv(key)
	if !ok || strings.TrimSpace(raw) == "" {
		return fallback, nil
	}

	parsed, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0, fmt.Errorf("%s must be a number: %w", key, err)
	}
	if parsed <= 0 {
		return 0, fmt.Errorf("%s must be greater than 0", key)
	}

	return parsed, nil
}

func readDuration(key string, fallback time.Duration) (time.Duration, error) {
	raw, ok := os.LookupEnv(key)
	if !ok || strings.TrimSpace(raw) == "" {
		return fallback, nil
	}

	parsed, err := time.ParseDuration(strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("%s must be a valid duration: %w", key, err)
	}
	if parsed <= 0 {
		return 0, fmt.Errorf("%s must be greater than 0", key)
	}

	return parsed, nil
}
