package services

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/finblog/backend/internal/errors"
	"github.com/finblog/backend/internal/models"
	"github.com/finblog/backend/internal/repositories"
)

var fixedNow = time.Date(2025, 6, 30, 12, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return fixedNow }

// sequentialIDs yields h-1, h-2, ...
func sequentialIDs() IDGenerator {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("h-%d", n)
	}
}

// MockPriceProvider is a mock implementation of PriceProvider for testing
type MockPriceProvider struct {
	mock.Mock
}

func (m *MockPriceProvider) GetPrice(ctx context.Context, symbol string) (decimal.Decimal, time.Time, error) {
	args := m.Called(ctx, symbol)
	return args.Get(0).(decimal.Decimal), args.Get(1).(time.Time), args.Error(2)
}

// MockPriceSource is a mock implementation of PriceSource for testing
type MockPriceSource struct {
	mock.Mock
}

func (m *MockPriceSource) BatchGetPrices(ctx context.Context, symbols []string) (map[string]decimal.Decimal, []*errors.UpstreamPriceError) {
	args := m.Called(ctx, symbols)
	var failed []*errors.UpstreamPriceError
	if f := args.Get(1); f != nil {
		failed = f.([]*errors.UpstreamPriceError)
	}
	return args.Get(0).(map[string]decimal.Decimal), failed
}

// failingSaveRepo wraps a repository and fails every Save.
type failingSaveRepo struct {
	repositories.PortfolioRepository
}

func (r failingSaveRepo) Save(context.Context, string, *models.Portfolio) error {
	return fmt.Errorf("disk full")
}

func newTestService(prices PriceSource) (*PortfolioService, repositories.PortfolioRepository) {
	repo := repositories.NewMemoryPortfolioRepository()
	svc := NewPortfolioService(repo, prices, nil, WithClock(fixedClock), WithIDGenerator(sequentialIDs()))
	return svc, repo
}

func appleInput() models.HoldingInput {
	return models.HoldingInput{
		Symbol:   "AAPL",
		Name:     "Apple Inc.",
		Quantity: decimal.NewFromInt(10),
		BuyPrice: decimal.NewFromInt(150),
		BuyDate:  models.MustParseDate("2024-01-01"),
	}
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }
