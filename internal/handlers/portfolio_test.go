package handlers

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finblog/backend/internal/models"
	"github.com/finblog/backend/internal/services"
)

const appleJSON = `{"symbol": "aapl", "name": "Apple Inc.", "quantity": 10, "buyPrice": 150, "buyDate": "2024-01-01"}`

// portfolioBody is the subset of PortfolioResponse the tests look at.
type portfolioBody struct {
	Holdings []struct {
		ID           string            `json:"id"`
		Investment   string            `json:"investment"`
		CurrentValue string            `json:"currentValue"`
		ProfitLoss   map[string]string `json:"profitLoss"`
		PricingState string            `json:"pricingState"`
	} `json:"holdings"`
	LastSyncTimestamp string          `json:"lastSyncTimestamp"`
	Settings          models.Settings `json:"settings"`
	Metrics           struct {
		HoldingsCount int            `json:"holdingsCount"`
		BestPerformer map[string]any `json:"bestPerformer"`
	} `json:"metrics"`
}

func addApple(t *testing.T, h http.Handler, headers ...string) models.HoldingRecord {
	t.Helper()
	w := do(t, h, http.MethodPost, "/api/portfolio/holdings", appleJSON, headers...)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return decode[models.HoldingRecord](t, w)
}

func TestPortfolioHandler_Lifecycle(t *testing.T) {
	h := newTestRouter(t, nil)

	created := addApple(t, h)
	assert.Equal(t, "AAPL", created.Symbol)
	assert.NotEmpty(t, created.ID)

	w := do(t, h, http.MethodPost, "/api/portfolio/prices", `{"prices": {"AAPL": "180"}}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, 1, decode[PricesResponse](t, w).Updated)

	w = do(t, h, http.MethodGet, "/api/portfolio", "")
	require.Equal(t, http.StatusOK, w.Code)
	resp := decode[portfolioBody](t, w)
	require.Len(t, resp.Holdings, 1)
	hv := resp.Holdings[0]
	assert.Equal(t, "1500", hv.Investment)
	assert.Equal(t, "1800", hv.CurrentValue)
	assert.Equal(t, "300", hv.ProfitLoss["amount"])
	assert.Equal(t, "20", hv.ProfitLoss["percentage"])
	assert.Equal(t, string(models.Priced), hv.PricingState)
	assert.Equal(t, "2025-06-30T12:00:00Z", resp.LastSyncTimestamp)
	assert.Equal(t, models.DefaultSettings(), resp.Settings)
	assert.Equal(t, 1, resp.Metrics.HoldingsCount)
	assert.Equal(t, created.ID, resp.Metrics.BestPerformer["id"])

	w = do(t, h, http.MethodPatch, "/api/portfolio/holdings/"+created.ID, `{"quantity": "12"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "12", decode[models.HoldingRecord](t, w).Quantity.String())

	w = do(t, h, http.MethodGet, "/api/portfolio/metrics", "")
	require.Equal(t, http.StatusOK, w.Code)
	metrics := decode[map[string]any](t, w)
	assert.Equal(t, "1800", metrics["totalInvestment"])
	assert.Equal(t, "2160", metrics["totalCurrentValue"])

	for range 2 {
		w = do(t, h, http.MethodDelete, "/api/portfolio/holdings/"+created.ID, "")
		assert.Equal(t, http.StatusNoContent, w.Code)
	}

	w = do(t, h, http.MethodGet, "/api/portfolio/metrics", "")
	assert.Equal(t, float64(0), decode[map[string]any](t, w)["holdingsCount"])
}

func TestPortfolioHandler_Errors(t *testing.T) {
	h := newTestRouter(t, nil)

	w := do(t, h, http.MethodPatch, "/api/portfolio/holdings/missing", `{"quantity": "1"}`)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(t, h, http.MethodPost, "/api/portfolio/holdings", strings.Replace(appleJSON, "2024-01-01", "2030-01-01", 1))
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "buyDate", decode[ErrorResponse](t, w).Field)

	w = do(t, h, http.MethodPost, "/api/portfolio/holdings", `{"symbol": "AAPL", "name": "Apple", "quantity": -1, "buyPrice": 1, "buyDate": "2024-01-01"}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "quantity", decode[ErrorResponse](t, w).Field)

	w = do(t, h, http.MethodPost, "/api/portfolio/prices", `{"prices": {"AAPL": "-3"}}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, h, http.MethodPut, "/api/portfolio/settings", `{"autoRefresh": true, "refreshIntervalMinutes": 0, "baseCurrency": "USD"}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "refreshIntervalMinutes", decode[ErrorResponse](t, w).Field)

	w = do(t, h, http.MethodGet, "/api/portfolio/export?format=xml", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, h, http.MethodPost, "/api/portfolio", "")
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)

	w = do(t, h, http.MethodGet, "/api/nothing", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestPortfolioHandler_RefreshReportsFailures(t *testing.T) {
	h := newTestRouter(t, nil)
	addApple(t, h)
	w := do(t, h, http.MethodPost, "/api/portfolio/holdings", `{"symbol": "TSLA", "name": "Tesla", "quantity": 1, "buyPrice": 200, "buyDate": "2024-01-01"}`)
	require.Equal(t, http.StatusCreated, w.Code)

	w = do(t, h, http.MethodPost, "/api/portfolio/refresh", "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	summary := decode[services.RefreshSummary](t, w)
	assert.Equal(t, 2, summary.Requested)
	assert.Equal(t, 1, summary.Updated)
	require.Len(t, summary.Failed, 1)
	assert.Equal(t, "TSLA", summary.Failed[0].Symbol)
}

func TestPortfolioHandler_ExportImport(t *testing.T) {
	h := newTestRouter(t, nil)
	addApple(t, h)

	w := do(t, h, http.MethodGet, "/api/portfolio/export", "")
	require.Equal(t, http.StatusOK, w.Code)
	snapshot := w.Body.String()
	assert.Contains(t, snapshot, `"holdings"`)

	w = do(t, h, http.MethodGet, "/api/portfolio/export?format=csv", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/csv", w.Header().Get("Content-Type"))
	rows, err := csv.NewReader(w.Body).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "N/A", rows[1][5])

	// import into another portfolio, then a broken snapshot must not touch it
	other := []string{PortfolioIDHeader, "other"}
	w = do(t, h, http.MethodPost, "/api/portfolio/import", snapshot, other...)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = do(t, h, http.MethodPost, "/api/portfolio/import", `{"holdings": "nope"}`, other...)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, h, http.MethodGet, "/api/portfolio/export", "", other...)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, snapshot, w.Body.String())
}

func TestPortfolioHandler_PortfoliosAreIsolated(t *testing.T) {
	h := newTestRouter(t, nil)
	addApple(t, h, PortfolioIDHeader, "alice")

	w := do(t, h, http.MethodGet, "/api/portfolio/metrics", "", PortfolioIDHeader, "bob")
	assert.Equal(t, float64(0), decode[map[string]any](t, w)["holdingsCount"])

	w = do(t, h, http.MethodDelete, "/api/portfolio", "", PortfolioIDHeader, "alice")
	assert.Equal(t, http.StatusNoContent, w.Code)
	w = do(t, h, http.MethodGet, "/api/portfolio/metrics", "", PortfolioIDHeader, "alice")
	assert.Equal(t, float64(0), decode[map[string]any](t, w)["holdingsCount"])
}

func TestHealth(t *testing.T) {
	w := do(t, newTestRouter(t, nil), http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, w.Code)

	w = do(t, newTestRouter(t, func() error { return fmt.Errorf("db down") }), http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}
