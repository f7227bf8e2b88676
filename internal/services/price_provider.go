package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PaesslerAG/jsonpath"
	"github.com/shopspring/decimal"

	"github.com/finblog/backend/internal/config"
	"github.com/finblog/backend/internal/models"
)

// NewPriceProvider builds the provider selected by cfg.PriceProvider.
func NewPriceProvider(cfg *config.Config) (PriceProvider, error) {
	if cfg.PriceProvider == config.ProviderStatic {
		table, err := ParseStaticPrices(cfg.StaticPrices)
		if err != nil {
			return nil, err
		}
		return NewStaticPriceProvider(table), nil
	}
	return NewHTTPPriceProvider(cfg.PriceURLTemplate, cfg.PriceJSONPath, nil), nil
}

// HTTPPriceProvider fetches a JSON quote document per symbol and extracts
// the price with a JSONPath expression.
type HTTPPriceProvider struct {
	httpClient  *http.Client
	urlTemplate string
	path        string
	now         Clock
}

// NewHTTPPriceProvider creates a provider for urlTemplate, which must
// contain a {symbol} placeholder.
func NewHTTPPriceProvider(urlTemplate, path string, client *http.Client) *HTTPPriceProvider {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	return &HTTPPriceProvider{
		httpClient:  client,
		urlTemplate: urlTemplate,
		path:        path,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

func (p *HTTPPriceProvider) GetPrice(ctx context.Context, symbol string) (decimal.Decimal, time.Time, error) {
	addr := strings.ReplaceAll(p.urlTemplate, "{symbol}", url.PathEscape(symbol))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, addr, nil)
	if err != nil {
		return decimal.Zero, time.Time{}, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "finblog/1.0")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return decimal.Zero, time.Time{}, fmt.Errorf("failed to fetch price: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return decimal.Zero, time.Time{}, fmt.Errorf("API returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var doc any
	if err := json.NewDecoder(resp.Body).Decode(&doc); err != nil {
		return decimal.Zero, time.Time{}, fmt.Errorf("failed to decode response: %w", err)
	}
	price, err := extractPrice(doc, p.path)
	if err != nil {
		return decimal.Zero, time.Time{}, err
	}
	return price, p.now(), nil
}

// extractPrice evaluates path against doc and converts the result into a
// positive decimal.
func extractPrice(doc any, path string) (decimal.Decimal, error) {
	v, err := jsonpath.Get(path, doc)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to evaluate %q: %w", path, err)
	}
	// wildcard and slice expressions return a list; keep the first answer
	if list, ok := v.([]any); ok {
		if len(list) == 0 {
			return decimal.Zero, fmt.Errorf("no value at %q", path)
		}
		v = list[0]
	}

	var price decimal.Decimal
	switch x := v.(type) {
	case float64:
		price = decimal.NewFromFloat(x)
	case string:
		price, err = decimal.NewFromString(strings.TrimSpace(x))
		if err != nil {
			return decimal.Zero, fmt.Errorf("value at %q is not a number: %w", path, err)
		}
	default:
		return decimal.Zero, fmt.Errorf("value at %q is not a number: %v", path, v)
	}
	if !price.IsPositive() {
		return decimal.Zero, fmt.Errorf("non-positive price %s at %q", price, path)
	}
	return price, nil
}

// StaticPriceProvider serves prices from a fixed table.
type StaticPriceProvider struct {
	prices map[string]decimal.Decimal
	now    Clock
}

func NewStaticPriceProvider(prices map[string]decimal.Decimal) *StaticPriceProvider {
	table := make(map[string]decimal.Decimal, len(prices))
	for sym, price := range prices {
		table[models.NormalizeSymbol(sym)] = price
	}
	return &StaticPriceProvider{prices: table, now: func() time.Time { return time.Now().UTC() }}
}

func (p *StaticPriceProvider) GetPrice(_ context.Context, symbol string) (decimal.Decimal, time.Time, error) {
	price, ok := p.prices[models.NormalizeSymbol(symbol)]
	if !ok {
		return decimal.Zero, time.Time{}, fmt.Errorf("no static price for %s", symbol)
	}
	return price, p.now(), nil
}

// ParseStaticPrices reads "SYM=price" pairs separated by commas.
func ParseStaticPrices(s string) (map[string]decimal.Decimal, error) {
	out := make(map[string]decimal.Decimal)
	for _, pair := range strings.Split(s, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		sym, raw, ok := strings.Cut(pair, "=")
		sym = models.NormalizeSymbol(sym)
		if !ok || sym == "" {
			return nil, fmt.Errorf("invalid price pair %q, want SYMBOL=price", pair)
		}
		price, err := decimal.NewFromString(strings.TrimSpace(raw))
		if err != nil {
			return nil, fmt.Errorf("invalid price for %s: %w", sym, err)
		}
		if !price.IsPositive() {
			return nil, fmt.Errorf("price for %s must be positive", sym)
		}
		out[sym] = price
	}
	return out, nil
}
