// Package cli implements the fincalc command line: the blog calculators and
// the portfolio tracker, run against the same storage as the HTTP server.
package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/google/subcommands"
	"golang.org/x/time/rate"

	"github.com/finblog/backend/internal/calculator"
	"github.com/finblog/backend/internal/config"
	"github.com/finblog/backend/internal/errors"
	"github.com/finblog/backend/internal/logger"
	"github.com/finblog/backend/internal/repositories"
	"github.com/finblog/backend/internal/services"
)

// As a CLI application it has a very short lifecycle, so package level
// flags are fine.
var (
	portfolioID = flag.String("p", services.DefaultPortfolioID, "Portfolio to operate on")
	plain       = flag.Bool("plain", false, "Print markdown as is instead of rendering it for the terminal")
)

var (
	stdout io.Writer = os.Stdout
	stderr io.Writer = os.Stderr
)

// Register adds every fincalc subcommand to c.
func Register(c *subcommands.Commander) {
	for _, k := range calculator.Kinds {
		c.Register(&calcCmd{kind: k}, "calculators")
	}

	c.Register(&holdingsCmd{}, "portfolio")
	c.Register(&addCmd{}, "portfolio")
	c.Register(&updateCmd{}, "portfolio")
	c.Register(&deleteCmd{}, "portfolio")
	c.Register(&clearCmd{}, "portfolio")

	c.Register(&pricesCmd{}, "prices")
	c.Register(&refreshCmd{}, "prices")

	c.Register(&exportCmd{}, "snapshot")
	c.Register(&importCmd{}, "snapshot")
}

// openService opens the configured storage and price provider. Tests
// replace it with an in-memory service.
var openService = func(ctx context.Context) (*services.PortfolioService, func(), error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	level := cfg.LogLevel
	if level == "" {
		level = "warn"
	}
	log, err := logger.New(cfg.LogEnv, level)
	if err != nil {
		return nil, nil, err
	}

	storage, err := repositories.Open(cfg, log)
	if err != nil {
		return nil, nil, err
	}
	provider, err := services.NewPriceProvider(cfg)
	if err != nil {
		storage.Close()
		return nil, nil, err
	}
	prices := services.NewPriceService(provider, nil,
		rate.NewLimiter(rate.Limit(cfg.PriceRatePerSecond), 1),
		cfg.PriceFetchConcurrency, log.Named("prices"))

	closeFn := func() {
		storage.Close()
		log.Sync() //nolint:errcheck
	}
	return services.NewPortfolioService(storage.Repository, prices, log.Named("portfolio"),
		services.WithLocation(cfg.Location)), closeFn, nil
}

// withService runs fn against the selected portfolio service.
func withService(ctx context.Context, fn func(*services.PortfolioService) subcommands.ExitStatus) subcommands.ExitStatus {
	svc, closeFn, err := openService(ctx)
	if err != nil {
		fmt.Fprintf(stderr, "Error opening portfolio storage: %v\n", err)
		return subcommands.ExitFailure
	}
	defer closeFn()
	return fn(svc)
}

// failure reports err; invalid input exits with a usage error.
func failure(action string, err error) subcommands.ExitStatus {
	fmt.Fprintf(stderr, "Error %s: %v\n", action, err)
	if errors.IsValidation(err) || errors.IsImportFormat(err) {
		return subcommands.ExitUsageError
	}
	return subcommands.ExitFailure
}
