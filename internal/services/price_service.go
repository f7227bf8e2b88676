package services

import (
	"context"
	"sync"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/finblog/backend/internal/errors"
	"github.com/finblog/backend/internal/logger"
	"github.com/finblog/backend/internal/models"
)

// PriceService resolves symbols through a PriceProvider with a quote cache
// in front and a bounded, rate limited fan-out behind.
type PriceService struct {
	provider    PriceProvider
	cache       *QuoteCache
	limiter     *rate.Limiter
	concurrency int
	logger      *zap.Logger
}

// NewPriceService wires the collaborators. cache and limiter may be nil.
func NewPriceService(provider PriceProvider, cache *QuoteCache, limiter *rate.Limiter, concurrency int, log *zap.Logger) *PriceService {
	if concurrency <= 0 {
		concurrency = 1
	}
	return &PriceService{
		provider:    provider,
		cache:       cache,
		limiter:     limiter,
		concurrency: concurrency,
		logger:      logger.OrNop(log),
	}
}

// GetPrice returns the quote of a single symbol, from cache when fresh.
func (s *PriceService) GetPrice(ctx context.Context, symbol string) (Quote, error) {
	symbol = models.NormalizeSymbol(symbol)
	if q, ok := s.cache.Get(symbol); ok {
		return q, nil
	}
	if s.limiter != nil {
		if err := s.limiter.Wait(ctx); err != nil {
			return Quote{}, &errors.UpstreamPriceError{Symbol: symbol, Err: err}
		}
	}
	price, at, err := s.provider.GetPrice(ctx, symbol)
	if err != nil {
		return Quote{}, &errors.UpstreamPriceError{Symbol: symbol, Err: err}
	}
	q := Quote{Price: price, At: at}
	s.cache.Put(symbol, q)
	return q, nil
}

// BatchGetPrices resolves the distinct upper-cased symbols in parallel.
// A failing symbol never aborts the others; failures come back in input
// order.
func (s *PriceService) BatchGetPrices(ctx context.Context, symbols []string) (map[string]decimal.Decimal, []*errors.UpstreamPriceError) {
	seen := make(map[string]bool, len(symbols))
	var unique []string
	for _, sym := range symbols {
		sym = models.NormalizeSymbol(sym)
		if sym == "" || seen[sym] {
			continue
		}
		seen[sym] = true
		unique = append(unique, sym)
	}

	failures := make([]*errors.UpstreamPriceError, len(unique))
	prices := make(map[string]decimal.Decimal, len(unique))
	var mu sync.Mutex

	var g errgroup.Group
	g.SetLimit(s.concurrency)
	for i, sym := range unique {
		g.Go(func() error {
			q, err := s.GetPrice(ctx, sym)
			if err != nil {
				upstream, ok := err.(*errors.UpstreamPriceError)
				if !ok {
					upstream = &errors.UpstreamPriceError{Symbol: sym, Err: err}
				}
				failures[i] = upstream
				return nil
			}
			mu.Lock()
			prices[sym] = q.Price
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	var failed []*errors.UpstreamPriceError
	for _, f := range failures {
		if f != nil {
			failed = append(failed, f)
		}
	}
	s.logger.Debug("batch prices resolved",
		zap.Int("requested", len(unique)),
		zap.Int("resolved", len(prices)),
		zap.Int("failed", len(failed)))
	return prices, failed
}
