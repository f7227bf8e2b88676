package db

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"

	"github.com/finblog/backend/internal/config"
)

type probe struct {
	ID   uint `gorm:"primaryKey"`
	Name string
}

func TestConnect_SQLiteFile(t *testing.T) {
	cfg := &config.Config{DBDriver: config.DriverSQLite, DBPath: filepath.Join(t.TempDir(), "nested", "test.db")}
	database, err := Connect(cfg, nil)
	require.NoError(t, err)
	defer database.Close()

	require.NoError(t, database.Health())
	require.NoError(t, database.Migrate(&probe{}))
	require.NoError(t, database.Create(&probe{Name: "ok"}).Error)

	var got probe
	require.NoError(t, database.First(&got).Error)
	assert.Equal(t, "ok", got.Name)

	sqlDB, err := database.GetSQLDB()
	require.NoError(t, err)
	assert.Equal(t, 1, sqlDB.Stats().MaxOpenConnections)
}

func TestConnect_MemoryDriverHasNoDatabase(t *testing.T) {
	_, err := Connect(&config.Config{DBDriver: config.DriverMemory}, nil)
	assert.Error(t, err)
}

func TestOpen_InMemory(t *testing.T) {
	database, err := Open(sqlite.Open("file::memory:"), nil, 1)
	require.NoError(t, err)
	require.NoError(t, database.Close())
	assert.Error(t, database.Health())
}
