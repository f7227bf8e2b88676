// Package config loads the application configuration from the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Storage drivers.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

// Price providers.
const (
	ProviderHTTP   = "http"
	ProviderStatic = "static"
)

// Config holds the application configuration.
type Config struct {
	// Server settings
	Host string
	Port string

	// Logging
	LogEnv   string
	LogLevel string

	// Storage
	DBDriver   string
	DBPath     string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// Market data
	PriceProvider         string
	PriceURLTemplate      string
	PriceJSONPath         string
	StaticPrices          string // SYMBOL=price pairs separated by commas
	PriceCacheTTL         time.Duration
	PriceCacheSize        int
	PriceFetchConcurrency int
	PriceRatePerSecond    float64

	// API protection
	APIRatePerSecond  float64
	APIBurst          int
	TrustProxyHeaders bool // key rate limits on X-Forwarded-For / X-Real-IP

	// Calendar used to decide which buy dates are in the future
	Location *time.Location

	// Background refresh of portfolios with autoRefresh enabled
	AutoRefresh     bool
	RefreshTickRate time.Duration
}

// Load reads an optional .env file and then the process environment.
// Variables already set in the environment win over the file.
func Load(envFiles ...string) (*Config, error) {
	if err := godotenv.Load(envFiles...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("loading env file: %w", err)
	}

	cfg := &Config{
		Host:             getEnv("SERVER_HOST", ""),
		Port:             getEnv("SERVER_PORT", "8080"),
		LogEnv:           firstEnv("LOG_ENV", "APP_ENV"),
		LogLevel:         getEnv("LOG_LEVEL", ""),
		DBDriver:         strings.ToLower(getEnv("DB_DRIVER", DriverSQLite)),
		DBPath:           getEnv("DB_PATH", filepath.Join("data", "finblog.db")),
		DBHost:           getEnv("DB_HOST", "localhost"),
		DBPort:           getEnv("DB_PORT", "5432"),
		DBUser:           getEnv("DB_USER", "finblog"),
		DBPassword:       getEnv("DB_PASSWORD", "finblog"),
		DBName:           getEnv("DB_NAME", "finblog"),
		DBSSLMode:        getEnv("DB_SSL_MODE", "disable"),
		PriceProvider:    strings.ToLower(getEnv("PRICE_PROVIDER", ProviderHTTP)),
		PriceURLTemplate: getEnv("PRICE_URL_TEMPLATE", "https://query2.finance.yahoo.com/v8/finance/chart/{symbol}?interval=1d&range=1d"),
		PriceJSONPath:    getEnv("PRICE_JSON_PATH", "$.chart.result[0].meta.regularMarketPrice"),
		StaticPrices:     getEnv("STATIC_PRICES", ""),
	}

	var err error
	if cfg.PriceCacheTTL, err = getDuration("PRICE_CACHE_TTL", time.Minute); err != nil {
		return nil, err
	}
	if cfg.RefreshTickRate, err = getDuration("REFRESH_TICK", time.Minute); err != nil {
		return nil, err
	}
	if cfg.PriceCacheSize, err = getInt("PRICE_CACHE_SIZE", 512); err != nil {
		return nil, err
	}
	if cfg.PriceFetchConcurrency, err = getInt("PRICE_FETCH_CONCURRENCY", 4); err != nil {
		return nil, err
	}
	if cfg.APIBurst, err = getInt("API_BURST", 20); err != nil {
		return nil, err
	}
	if cfg.PriceRatePerSecond, err = getFloat("PRICE_RATE_PER_SEC", 5); err != nil {
		return nil, err
	}
	if cfg.APIRatePerSecond, err = getFloat("API_RATE_PER_SEC", 10); err != nil {
		return nil, err
	}
	if cfg.Location, err = time.LoadLocation(getEnv("TIMEZONE", "Local")); err != nil {
		return nil, fmt.Errorf("invalid TIMEZONE: %w", err)
	}
	if cfg.TrustProxyHeaders, err = getBool("TRUST_PROXY_HEADERS", false); err != nil {
		return nil, err
	}
	if cfg.AutoRefresh, err = getBool("AUTO_REFRESH", true); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects settings the application cannot run with.
func (c *Config) Validate() error {
	switch c.DBDriver {
	case DriverSQLite, DriverPostgres, DriverMemory:
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.DBDriver)
	}
	switch c.PriceProvider {
	case ProviderHTTP, ProviderStatic:
	default:
		return fmt.Errorf("unsupported PRICE_PROVIDER %q", c.PriceProvider)
	}
	if c.PriceProvider == ProviderHTTP && !strings.Contains(c.PriceURLTemplate, "{symbol}") {
		return fmt.Errorf("PRICE_URL_TEMPLATE must contain {symbol}")
	}
	if c.PriceFetchConcurrency <= 0 {
		return fmt.Errorf("PRICE_FETCH_CONCURRENCY must be positive")
	}
	if c.PriceCacheSize < 0 {
		return fmt.Errorf("PRICE_CACHE_SIZE must not be negative")
	}
	if c.PriceRatePerSecond <= 0 {
		return fmt.Errorf("PRICE_RATE_PER_SEC must be positive")
	}
	if c.APIRatePerSecond <= 0 {
		return fmt.Errorf("API_RATE_PER_SEC must be positive")
	}
	if c.APIBurst <= 0 {
		return fmt.Errorf("API_BURST must be positive")
	}
	if c.RefreshTickRate <= 0 {
		return fmt.Errorf("REFRESH_TICK must be positive")
	}
	return nil
}

// Address returns the address the HTTP server binds to.
func (c *Config) Address() string {
	return c.Host + ":" + c.Port
}

// PostgresDSN builds the connection string for the postgres driver.
func (c *Config) PostgresDSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSSLMode)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func firstEnv(keys ...string) string {
	for _, k := range keys {
		if v := os.Getenv(k); v != "" {
			return v
		}
	}
	return ""
}

func getDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}

func getInt(key string, defaultValue int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}

func getFloat(key string, defaultValue float64) (float64, error) {
	v := os.Getenv(key)
	if v == "" {
		return defaultValue, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return f, nil
}

func getBool(key string, defaultValue bool) (bool, error) {
	v := os.Getenv(key)
	if v == "" {
		return defaultValue, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("invalid %s: %w", key, err)
	}
	return b, nil
}
