package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.Address())
	assert.Equal(t, DriverSQLite, cfg.DBDriver)
	assert.Equal(t, filepath.Join("data", "finblog.db"), cfg.DBPath)
	assert.Equal(t, ProviderHTTP, cfg.PriceProvider)
	assert.Equal(t, time.Minute, cfg.PriceCacheTTL)
	assert.Equal(t, 512, cfg.PriceCacheSize)
	assert.Equal(t, 4, cfg.PriceFetchConcurrency)
	assert.Equal(t, 10.0, cfg.APIRatePerSecond)
	assert.False(t, cfg.TrustProxyHeaders)
	assert.Equal(t, time.Local, cfg.Location)
	assert.True(t, cfg.AutoRefresh)
}

func TestLoad_EnvFileAndOverrides(t *testing.T) {
	dir := t.TempDir()
	envFile := filepath.Join(dir, "test.env")
	require.NoError(t, os.WriteFile(envFile, []byte("SERVER_PORT=9090\nDB_DRIVER=memory\nPRICE_PROVIDER=static\n"), 0o600))

	t.Setenv("DB_DRIVER", "postgres")
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("PRICE_CACHE_TTL", "30s")
	t.Setenv("AUTO_REFRESH", "false")

	cfg, err := Load(envFile)
	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, DriverPostgres, cfg.DBDriver, "environment wins over file")
	assert.Equal(t, ProviderStatic, cfg.PriceProvider)
	assert.Equal(t, 30*time.Second, cfg.PriceCacheTTL)
	assert.False(t, cfg.AutoRefresh)
	assert.Contains(t, cfg.PostgresDSN(), "host=db.internal")
}

func TestLoad_InvalidValues(t *testing.T) {
	t.Chdir(t.TempDir())

	tests := map[string]string{
		"DB_DRIVER":               "oracle",
		"PRICE_PROVIDER":          "bloomberg",
		"PRICE_CACHE_TTL":         "soon",
		"PRICE_FETCH_CONCURRENCY": "0",
		"API_RATE_PER_SEC":        "fast",
		"AUTO_REFRESH":            "maybe",
		"PRICE_URL_TEMPLATE":      "https://example.com/quote",
		"TIMEZONE":                "Mars/Olympus_Mons",
	}
	for key, value := range tests {
		t.Run(key, func(t *testing.T) {
			t.Setenv(key, value)
			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestLoad_RatesMustBePositive(t *testing.T) {
	t.Chdir(t.TempDir())

	for _, key := range []string{"PRICE_RATE_PER_SEC", "API_RATE_PER_SEC", "API_BURST"} {
		for _, value := range []string{"0", "-1"} {
			t.Run(key+"="+value, func(t *testing.T) {
				t.Setenv(key, value)
				_, err := Load()
				require.Error(t, err)
				assert.Contains(t, err.Error(), key)
			})
		}
	}
}

func TestLoad_Timezone(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("TIMEZONE", "UTC")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, time.UTC, cfg.Location)
}
