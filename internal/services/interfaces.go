package services

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/finblog/backend/internal/errors"
)

// PriceProvider resolves the latest market price of a single symbol.
type PriceProvider interface {
	GetPrice(ctx context.Context, symbol string) (decimal.Decimal, time.Time, error)
}

// PriceSource resolves many symbols at once. Symbols it cannot price are
// reported as failures and left out of the returned map.
type PriceSource interface {
	BatchGetPrices(ctx context.Context, symbols []string) (map[string]decimal.Decimal, []*errors.UpstreamPriceError)
}

// Clock returns the current time.
type Clock func() time.Time

// IDGenerator returns a fresh unique holding id.
type IDGenerator func() string
