package services

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"

	"github.com/finblog/backend/internal/config"
	"github.com/finblog/backend/internal/errors"
)

func TestPriceService_BatchGetPrices(t *testing.T) {
	ctx := context.Background()
	provider := new(MockPriceProvider)
	provider.On("GetPrice", mock.Anything, "AAPL").Return(dec("180"), fixedNow, nil).Once()
	provider.On("GetPrice", mock.Anything, "MSFT").Return(decimal.Zero, time.Time{}, fmt.Errorf("unknown symbol")).Once()
	provider.On("GetPrice", mock.Anything, "TSLA").Return(dec("250.5"), fixedNow, nil).Once()

	svc := NewPriceService(provider, nil, rate.NewLimiter(rate.Inf, 1), 2, nil)
	prices, failed := svc.BatchGetPrices(ctx, []string{"aapl", "MSFT", "AAPL", " tsla", ""})

	assert.Len(t, prices, 2)
	assert.Equal(t, "180", prices["AAPL"].String())
	assert.Equal(t, "250.5", prices["TSLA"].String())
	require.Len(t, failed, 1)
	assert.Equal(t, "MSFT", failed[0].Symbol)
	assert.ErrorIs(t, failed[0], errors.ErrUpstreamPrice)
	provider.AssertExpectations(t)
}

func TestPriceService_UsesCache(t *testing.T) {
	ctx := context.Background()
	now := fixedNow
	cache := NewQuoteCache(time.Minute, 10, func() time.Time { return now })

	provider := new(MockPriceProvider)
	provider.On("GetPrice", mock.Anything, "AAPL").Return(dec("180"), fixedNow, nil).Once()
	svc := NewPriceService(provider, cache, nil, 1, nil)

	for range 3 {
		q, err := svc.GetPrice(ctx, "AAPL")
		require.NoError(t, err)
		assert.Equal(t, "180", q.Price.String())
	}
	provider.AssertNumberOfCalls(t, "GetPrice", 1)

	now = now.Add(time.Minute)
	provider.On("GetPrice", mock.Anything, "AAPL").Return(dec("181"), now, nil).Once()
	q, err := svc.GetPrice(ctx, "AAPL")
	require.NoError(t, err)
	assert.Equal(t, "181", q.Price.String())
	provider.AssertNumberOfCalls(t, "GetPrice", 2)
}

func TestPriceService_CancelledContextFailsEverySymbol(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	provider := new(MockPriceProvider)
	limiter := rate.NewLimiter(rate.Every(time.Hour), 1)
	limiter.Allow()
	svc := NewPriceService(provider, nil, limiter, 2, nil)

	prices, failed := svc.BatchGetPrices(ctx, []string{"AAPL", "MSFT"})
	assert.Empty(t, prices)
	assert.Len(t, failed, 2)
	provider.AssertNotCalled(t, "GetPrice", mock.Anything, mock.Anything)
}

func TestQuoteCache(t *testing.T) {
	now := fixedNow
	cache := NewQuoteCache(time.Minute, 2, func() time.Time { return now })

	cache.Put("A", Quote{Price: dec("1")})
	cache.Put("B", Quote{Price: dec("2")})
	_, ok := cache.Get("A")
	require.True(t, ok)

	cache.Put("C", Quote{Price: dec("3")})
	assert.Equal(t, 2, cache.Len())
	_, ok = cache.Get("B")
	assert.False(t, ok, "least recently used entry is evicted")

	now = now.Add(time.Minute)
	_, ok = cache.Get("A")
	assert.False(t, ok, "entry expires after the ttl")
	assert.Equal(t, 1, cache.Len())
}

func TestQuoteCache_Disabled(t *testing.T) {
	assert.Nil(t, NewQuoteCache(0, 10, nil))
	assert.Nil(t, NewQuoteCache(time.Minute, 0, nil))

	var cache *QuoteCache
	cache.Put("A", Quote{Price: dec("1")})
	_, ok := cache.Get("A")
	assert.False(t, ok)
	assert.Zero(t, cache.Len())
}

func TestHTTPPriceProvider_GetPrice(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/chart/AAPL":
			fmt.Fprint(w, `{"chart": {"result": [{"meta": {"regularMarketPrice": 189.84}}]}}`)
		case "/chart/TEXT":
			fmt.Fprint(w, `{"chart": {"result": [{"meta": {"regularMarketPrice": "12.5"}}]}}`)
		case "/chart/ZERO":
			fmt.Fprint(w, `{"chart": {"result": [{"meta": {"regularMarketPrice": 0}}]}}`)
		case "/chart/EMPTY":
			fmt.Fprint(w, `{"chart": {"result": []}}`)
		default:
			http.Error(w, `{"error": "not found"}`, http.StatusNotFound)
		}
	}))
	defer ts.Close()

	provider := NewHTTPPriceProvider(ts.URL+"/chart/{symbol}", "$.chart.result[0].meta.regularMarketPrice", ts.Client())
	provider.now = fixedClock
	ctx := context.Background()

	price, at, err := provider.GetPrice(ctx, "AAPL")
	require.NoError(t, err)
	assert.Equal(t, "189.84", price.String())
	assert.Equal(t, fixedNow, at)

	price, _, err = provider.GetPrice(ctx, "TEXT")
	require.NoError(t, err)
	assert.Equal(t, "12.5", price.String())

	for _, sym := range []string{"ZERO", "EMPTY", "NOPE"} {
		_, _, err := provider.GetPrice(ctx, sym)
		assert.Error(t, err, sym)
	}
}

func TestStaticPrices(t *testing.T) {
	prices, err := ParseStaticPrices("aapl=180, MSFT = 410.5,,")
	require.NoError(t, err)
	assert.Len(t, prices, 2)

	provider := NewStaticPriceProvider(prices)
	price, _, err := provider.GetPrice(context.Background(), "Aapl")
	require.NoError(t, err)
	assert.Equal(t, "180", price.String())

	_, _, err = provider.GetPrice(context.Background(), "TSLA")
	assert.Error(t, err)

	for _, bad := range []string{"AAPL", "=5", "AAPL=abc", "AAPL=0"} {
		_, err := ParseStaticPrices(bad)
		assert.Error(t, err, bad)
	}
}

func TestNewPriceProvider(t *testing.T) {
	p, err := NewPriceProvider(&config.Config{PriceProvider: config.ProviderStatic, StaticPrices: "aapl=180"})
	require.NoError(t, err)
	price, _, err := p.GetPrice(context.Background(), "AAPL")
	require.NoError(t, err)
	assert.Equal(t, "180", price.String())

	_, err = NewPriceProvider(&config.Config{PriceProvider: config.ProviderStatic, StaticPrices: "AAPL=-1"})
	assert.Error(t, err)

	p, err = NewPriceProvider(&config.Config{PriceProvider: config.ProviderHTTP, PriceURLTemplate: "http://quotes/{symbol}", PriceJSONPath: "$.price"})
	require.NoError(t, err)
	assert.IsType(t, &HTTPPriceProvider{}, p)
}
