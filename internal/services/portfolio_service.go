package services

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/finblog/backend/internal/errors"
	"github.com/finblog/backend/internal/logger"
	"github.com/finblog/backend/internal/models"
	"github.com/finblog/backend/internal/repositories"
)

// DefaultPortfolioID is used when a caller does not name a portfolio.
const DefaultPortfolioID = "default"

// RefreshSummary reports the outcome of a market price refresh.
type RefreshSummary struct {
	Requested int                          `json:"requested"`
	Updated   int                          `json:"updated"`
	Failed    []*errors.UpstreamPriceError `json:"failed"`
}

// PortfolioService owns every mutation of stored portfolios. Mutations of
// the same portfolio run one at a time.
type PortfolioService struct {
	repo   repositories.PortfolioRepository
	prices PriceSource
	now    Clock
	loc    *time.Location
	newID  IDGenerator
	logger *zap.Logger

	mu    sync.Mutex
	locks map[string]*portfolioLock
}

// portfolioLock serialises the mutations of one portfolio. It is dropped
// from the map once nobody holds or waits for it.
type portfolioLock struct {
	mu   sync.Mutex
	refs int
}

// PortfolioOption customises a PortfolioService.
type PortfolioOption func(*PortfolioService)

// WithClock replaces the wall clock, mostly for tests.
func WithClock(c Clock) PortfolioOption {
	return func(s *PortfolioService) { s.now = c }
}

// WithLocation sets the time zone whose calendar day counts as today when
// buy dates are checked. The default is UTC.
func WithLocation(loc *time.Location) PortfolioOption {
	return func(s *PortfolioService) {
		if loc != nil {
			s.loc = loc
		}
	}
}

// WithIDGenerator replaces the uuid based id generator.
func WithIDGenerator(g IDGenerator) PortfolioOption {
	return func(s *PortfolioService) { s.newID = g }
}

// NewPortfolioService creates the service. prices may be nil, in which case
// RefreshPrices is unavailable but ApplyPrices still works.
func NewPortfolioService(repo repositories.PortfolioRepository, prices PriceSource, log *zap.Logger, opts ...PortfolioOption) *PortfolioService {
	s := &PortfolioService{
		repo:   repo,
		prices: prices,
		now:    func() time.Time { return time.Now().UTC() },
		loc:    time.UTC,
		newID:  uuid.NewString,
		logger: logger.OrNop(log),
		locks:  make(map[string]*portfolioLock),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *PortfolioService) lock(id string) func() {
	s.mu.Lock()
	l, ok := s.locks[id]
	if !ok {
		l = &portfolioLock{}
		s.locks[id] = l
	}
	l.refs++
	s.mu.Unlock()

	l.mu.Lock()
	return func() {
		l.mu.Unlock()
		s.mu.Lock()
		if l.refs--; l.refs == 0 {
			delete(s.locks, id)
		}
		s.mu.Unlock()
	}
}

// today is the calendar day of now in the service's time zone.
func (s *PortfolioService) today(now time.Time) models.Date {
	return models.DateOf(now.In(s.loc))
}

// GetPortfolio returns the stored portfolio, or the default empty one.
func (s *PortfolioService) GetPortfolio(ctx context.Context, id string) (*models.Portfolio, error) {
	p, err := s.repo.Load(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get portfolio: %w", err)
	}
	return p, nil
}

// ListHoldings returns every holding with its derived figures.
func (s *PortfolioService) ListHoldings(ctx context.Context, id string) ([]models.HoldingValuation, error) {
	p, err := s.GetPortfolio(ctx, id)
	if err != nil {
		return nil, err
	}
	out := make([]models.HoldingValuation, len(p.Holdings))
	for i, h := range p.Holdings {
		out[i] = models.Valuate(h)
	}
	return out, nil
}

// Metrics aggregates the valuation of the portfolio.
func (s *PortfolioService) Metrics(ctx context.Context, id string) (models.PortfolioMetrics, error) {
	p, err := s.GetPortfolio(ctx, id)
	if err != nil {
		return models.PortfolioMetrics{}, err
	}
	return models.ComputeMetrics(p.Holdings), nil
}

// mutate loads the portfolio under its lock, applies fn, stamps the sync
// time, validates and saves. Nothing is written when fn or validation fail.
func (s *PortfolioService) mutate(ctx context.Context, id string, fn func(p *models.Portfolio, now time.Time) error) (*models.Portfolio, error) {
	unlock := s.lock(id)
	defer unlock()

	p, err := s.repo.Load(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load portfolio: %w", err)
	}
	now := s.now()
	if err := fn(p, now); err != nil {
		return nil, err
	}
	p.LastSyncTimestamp = now
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, id, p); err != nil {
		return nil, fmt.Errorf("failed to save portfolio: %w", err)
	}
	return p, nil
}

// AddHolding validates the input and appends a new holding with a fresh id.
func (s *PortfolioService) AddHolding(ctx context.Context, id string, in models.HoldingInput) (models.HoldingRecord, error) {
	var created models.HoldingRecord
	_, err := s.mutate(ctx, id, func(p *models.Portfolio, now time.Time) error {
		if err := in.Validate(s.today(now)); err != nil {
			return err
		}
		created = models.NewHolding(s.newID(), in)
		p.Holdings = append(p.Holdings, created)
		return nil
	})
	if err != nil {
		return models.HoldingRecord{}, err
	}
	s.logger.Debug("holding added",
		zap.String("portfolio", id),
		zap.String("holding_id", created.ID),
		zap.String("symbol", created.Symbol))
	return created.Clone(), nil
}

// UpdateHolding merges the patch into the holding with the given id.
func (s *PortfolioService) UpdateHolding(ctx context.Context, id, holdingID string, patch models.HoldingPatch) (models.HoldingRecord, error) {
	var updated models.HoldingRecord
	_, err := s.mutate(ctx, id, func(p *models.Portfolio, now time.Time) error {
		idx := p.IndexOf(holdingID)
		if idx < 0 {
			return errors.NotFound("holding", holdingID)
		}
		h, err := patch.Apply(p.Holdings[idx], s.today(now), now)
		if err != nil {
			return err
		}
		p.Holdings[idx] = h
		updated = h
		return nil
	})
	if err != nil {
		return models.HoldingRecord{}, err
	}
	s.logger.Debug("holding updated", zap.String("portfolio", id), zap.String("holding_id", holdingID))
	return updated.Clone(), nil
}

// DeleteHolding removes the holding. Deleting an unknown id is not an error.
func (s *PortfolioService) DeleteHolding(ctx context.Context, id, holdingID string) error {
	removed := false
	_, err := s.mutate(ctx, id, func(p *models.Portfolio, _ time.Time) error {
		before := len(p.Holdings)
		p.Holdings = slices.DeleteFunc(p.Holdings, func(h models.HoldingRecord) bool { return h.ID == holdingID })
		removed = len(p.Holdings) != before
		return nil
	})
	if err != nil {
		return err
	}
	s.logger.Debug("holding deleted",
		zap.String("portfolio", id),
		zap.String("holding_id", holdingID),
		zap.Bool("existed", removed))
	return nil
}

// ApplyPrices sets the current price of every holding whose symbol appears
// in prices. Holdings of other symbols keep their previous price.
func (s *PortfolioService) ApplyPrices(ctx context.Context, id string, prices map[string]decimal.Decimal) (int, error) {
	for sym, price := range prices {
		if models.NormalizeSymbol(sym) == "" {
			return 0, errors.Invalid("prices", "empty symbol")
		}
		if !price.IsPositive() {
			return 0, errors.Invalid("prices."+sym, "price must be positive")
		}
	}
	updated := 0
	_, err := s.mutate(ctx, id, func(p *models.Portfolio, now time.Time) error {
		updated = p.ApplyPrices(prices, now)
		return nil
	})
	if err != nil {
		return 0, err
	}
	s.logger.Debug("prices applied",
		zap.String("portfolio", id),
		zap.Int("symbols", len(prices)),
		zap.Int("updated", updated))
	return updated, nil
}

// RefreshPrices asks the price source for every distinct symbol held and
// applies whatever it resolved. Symbols that fail keep their stale price
// and are listed in the summary.
func (s *PortfolioService) RefreshPrices(ctx context.Context, id string) (RefreshSummary, error) {
	if s.prices == nil {
		return RefreshSummary{}, fmt.Errorf("no price source configured")
	}
	p, err := s.GetPortfolio(ctx, id)
	if err != nil {
		return RefreshSummary{}, err
	}
	symbols := p.Symbols()
	summary := RefreshSummary{Requested: len(symbols), Failed: []*errors.UpstreamPriceError{}}
	if len(symbols) == 0 {
		return summary, nil
	}

	prices, failed := s.prices.BatchGetPrices(ctx, symbols)
	if failed != nil {
		summary.Failed = failed
	}
	for _, f := range summary.Failed {
		s.logger.Warn("price unavailable",
			zap.String("portfolio", id),
			zap.String("symbol", f.Symbol),
			zap.Error(f.Err))
	}

	summary.Updated, err = s.ApplyPrices(ctx, id, prices)
	if err != nil {
		return summary, err
	}
	s.logger.Info("prices refreshed",
		zap.String("portfolio", id),
		zap.Int("requested", summary.Requested),
		zap.Int("updated", summary.Updated),
		zap.Int("failed", len(summary.Failed)))
	return summary, nil
}

// UpdateSettings replaces the portfolio preferences.
func (s *PortfolioService) UpdateSettings(ctx context.Context, id string, settings models.Settings) (models.Settings, error) {
	settings.BaseCurrency = strings.ToUpper(strings.TrimSpace(settings.BaseCurrency))
	if err := settings.Validate(); err != nil {
		return models.Settings{}, err
	}
	p, err := s.mutate(ctx, id, func(p *models.Portfolio, _ time.Time) error {
		p.Settings = settings
		return nil
	})
	if err != nil {
		return models.Settings{}, err
	}
	s.logger.Debug("settings updated", zap.String("portfolio", id))
	return p.Settings, nil
}

// Clear drops the stored portfolio; the next load returns the default one.
func (s *PortfolioService) Clear(ctx context.Context, id string) error {
	unlock := s.lock(id)
	defer unlock()
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to clear portfolio: %w", err)
	}
	s.logger.Debug("portfolio cleared", zap.String("portfolio", id))
	return nil
}

// PortfolioIDs lists the stored portfolios.
func (s *PortfolioService) PortfolioIDs(ctx context.Context) ([]string, error) {
	return s.repo.List(ctx)
}
