package services

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/finblog/backend/internal/logger"
)

// RefreshScheduler periodically refreshes the prices of every stored
// portfolio that has auto refresh enabled and whose last sync is older than
// its refresh interval.
type RefreshScheduler struct {
	portfolios *PortfolioService
	tick       time.Duration
	now        Clock
	logger     *zap.Logger
}

func NewRefreshScheduler(portfolios *PortfolioService, tick time.Duration, log *zap.Logger) *RefreshScheduler {
	if tick <= 0 {
		tick = time.Minute
	}
	return &RefreshScheduler{
		portfolios: portfolios,
		tick:       tick,
		now:        portfolios.now,
		logger:     logger.OrNop(log),
	}
}

// Run blocks until ctx is cancelled, checking portfolios on every tick.
func (r *RefreshScheduler) Run(ctx context.Context) {
	ticker := time.NewTicker(r.tick)
	defer ticker.Stop()

	r.logger.Info("refresh scheduler started", zap.Duration("tick", r.tick))
	for {
		select {
		case <-ctx.Done():
			r.logger.Info("refresh scheduler stopped")
			return
		case <-ticker.C:
			r.RunOnce(ctx)
		}
	}
}

// RunOnce refreshes every due portfolio and returns how many were refreshed.
func (r *RefreshScheduler) RunOnce(ctx context.Context) int {
	ids, err := r.portfolios.PortfolioIDs(ctx)
	if err != nil {
		r.logger.Error("failed to list portfolios", zap.Error(err))
		return 0
	}

	refreshed := 0
	for _, id := range ids {
		if ctx.Err() != nil {
			break
		}
		p, err := r.portfolios.GetPortfolio(ctx, id)
		if err != nil {
			r.logger.Error("failed to load portfolio", zap.String("portfolio", id), zap.Error(err))
			continue
		}
		if !p.Settings.AutoRefresh || len(p.Holdings) == 0 {
			continue
		}
		if r.now().Sub(p.LastSyncTimestamp) < p.Settings.RefreshInterval() {
			continue
		}
		if _, err := r.portfolios.RefreshPrices(ctx, id); err != nil {
			r.logger.Error("scheduled refresh failed", zap.String("portfolio", id), zap.Error(err))
			continue
		}
		refreshed++
	}
	return refreshed
}
