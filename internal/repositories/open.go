package repositories

import (
	"go.uber.org/zap"

	"github.com/finblog/backend/internal/config"
	"github.com/finblog/backend/internal/db"
	"github.com/finblog/backend/internal/logger"
)

// Storage is an opened portfolio repository together with its lifecycle hooks.
type Storage struct {
	Repository PortfolioRepository
	// Health pings the database; nil for the memory driver.
	Health func() error
	Close  func() error
}

// Open builds the repository selected by cfg.DBDriver.
func Open(cfg *config.Config, log *zap.Logger) (*Storage, error) {
	log = logger.OrNop(log)
	if cfg.DBDriver == config.DriverMemory {
		log.Warn("Using in-memory storage; portfolios are lost on restart")
		return &Storage{
			Repository: NewMemoryPortfolioRepository(),
			Close:      func() error { return nil },
		}, nil
	}

	database, err := db.Connect(cfg, log)
	if err != nil {
		return nil, err
	}
	repo, err := NewPortfolioRepository(database)
	if err != nil {
		database.Close()
		return nil, err
	}
	log.Info("Database connection established", zap.String("driver", cfg.DBDriver))
	return &Storage{Repository: repo, Health: database.Health, Close: database.Close}, nil
}
