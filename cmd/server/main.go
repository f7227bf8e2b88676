// @title finblog API
// @version 1.0
// @description Financial calculators and a portfolio tracker for the finblog site.
// @BasePath /api
package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	_ "github.com/finblog/backend/docs"
	"github.com/finblog/backend/internal/config"
	"github.com/finblog/backend/internal/handlers"
	"github.com/finblog/backend/internal/logger"
	"github.com/finblog/backend/internal/repositories"
	"github.com/finblog/backend/internal/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	zl, err := logger.New(cfg.LogEnv, cfg.LogLevel)
	if err != nil {
		log.Fatal("Failed to build logger:", err)
	}
	defer zl.Sync() //nolint:errcheck

	storage, err := repositories.Open(cfg, zl)
	if err != nil {
		zl.Fatal("Failed to open portfolio storage", zap.Error(err))
	}
	defer storage.Close() //nolint:errcheck

	provider, err := services.NewPriceProvider(cfg)
	if err != nil {
		zl.Fatal("Failed to configure price provider", zap.Error(err))
	}
	prices := services.NewPriceService(
		provider,
		services.NewQuoteCache(cfg.PriceCacheTTL, cfg.PriceCacheSize, nil),
		rate.NewLimiter(rate.Limit(cfg.PriceRatePerSecond), 1),
		cfg.PriceFetchConcurrency,
		zl.Named("prices"))
	portfolios := services.NewPortfolioService(storage.Repository, prices, zl.Named("portfolio"),
		services.WithLocation(cfg.Location))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.AutoRefresh {
		scheduler := services.NewRefreshScheduler(portfolios, cfg.RefreshTickRate, zl.Named("refresh"))
		go scheduler.Run(ctx)
	}

	limiter := handlers.NewRateLimiter(cfg.APIRatePerSecond, cfg.APIBurst)
	limiter.TrustProxy = cfg.TrustProxyHeaders
	go sweepVisitors(ctx, limiter)

	router := handlers.NewRouter(handlers.RouterConfig{
		Calculator:  handlers.NewCalculatorHandler(zl),
		Portfolio:   handlers.NewPortfolioHandler(portfolios, zl),
		RateLimiter: limiter,
		Health:      storage.Health,
		Logger:      zl,
	})

	srv := &http.Server{
		Addr:              cfg.Address(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		zl.Info("Server starting", zap.String("addr", srv.Addr), zap.String("db_driver", cfg.DBDriver))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zl.Fatal("Server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	zl.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zl.Error("Graceful shutdown failed", zap.Error(err))
	}
}

func sweepVisitors(ctx context.Context, rl *handlers.RateLimiter) {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			rl.Sweep(now)
		}
	}
}
