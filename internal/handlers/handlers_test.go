package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/finblog/backend/internal/repositories"
	"github.com/finblog/backend/internal/services"
)

var testNow = time.Date(2025, 6, 30, 12, 0, 0, 0, time.UTC)

// newTestRouter serves a memory-backed portfolio whose market prices come
// from a static AAPL/MSFT table.
func newTestRouter(t *testing.T, health HealthCheck) http.Handler {
	t.Helper()
	table, err := services.ParseStaticPrices("AAPL=180,MSFT=400")
	require.NoError(t, err)

	prices := services.NewPriceService(services.NewStaticPriceProvider(table), nil, nil, 1, nil)
	svc := services.NewPortfolioService(
		repositories.NewMemoryPortfolioRepository(),
		prices, nil,
		services.WithClock(func() time.Time { return testNow }))
	return NewRouter(RouterConfig{
		Calculator: NewCalculatorHandler(nil),
		Portfolio:  NewPortfolioHandler(svc, nil),
		Health:     health,
	})
}

func do(t *testing.T, h http.Handler, method, path, body string, headers ...string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}
